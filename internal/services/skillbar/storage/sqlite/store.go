// Package sqlite provides a SQLite-backed skill storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/skillbar/internal/platform/errors"
	sqlitemigrate "github.com/louisbranch/skillbar/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/skillbar/internal/services/skillbar/domain/build"
	"github.com/louisbranch/skillbar/internal/services/skillbar/domain/skill"
	"github.com/louisbranch/skillbar/internal/services/skillbar/storage"
	"github.com/louisbranch/skillbar/internal/services/skillbar/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const skillColumns = `id, name, description, profession, attribute, type, elite,
	upkeep, adrenaline, energy, sacrifice, activation, recharge, overcast,
	special, weapon_req, combo`

// Store persists skill records in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// Open opens a SQLite skill store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutSkills upserts records in a single transaction.
func (s *Store) PutSkills(ctx context.Context, records []skill.Record) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin put skills: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO skills (`+skillColumns+`, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   description = excluded.description,
		   profession = excluded.profession,
		   attribute = excluded.attribute,
		   type = excluded.type,
		   elite = excluded.elite,
		   upkeep = excluded.upkeep,
		   adrenaline = excluded.adrenaline,
		   energy = excluded.energy,
		   sacrifice = excluded.sacrifice,
		   activation = excluded.activation,
		   recharge = excluded.recharge,
		   overcast = excluded.overcast,
		   special = excluded.special,
		   weapon_req = excluded.weapon_req,
		   combo = excluded.combo,
		   updated_at = excluded.updated_at`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare put skills: %w", err)
	}
	defer stmt.Close()

	updatedAt := toMillis(s.now())
	for _, r := range records {
		_, err := stmt.ExecContext(ctx,
			r.ID,
			strings.TrimSpace(r.Name),
			r.Description,
			int(r.Profession),
			int(r.Attribute),
			int(r.Type),
			r.Elite,
			r.Costs.Upkeep,
			r.Costs.Adrenaline,
			r.Costs.Energy,
			r.Costs.Sacrifice,
			r.Costs.Activation,
			r.Costs.Recharge,
			r.Costs.Overcast,
			int64(r.Special),
			int(r.WeaponReq),
			int(r.Combo),
			updatedAt,
		)
		if err != nil {
			_ = tx.Rollback()
			if isCheckViolation(err) {
				return 0, apperrors.WrapWithMetadata(
					apperrors.CodeSkillDataInvalid,
					"put skill",
					map[string]string{"Reason": "skill " + strconv.Itoa(r.ID) + " violates a table constraint"},
					err,
				)
			}
			return 0, fmt.Errorf("put skill %d: %w", r.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit put skills: %w", err)
	}
	return len(records), nil
}

// GetSkill returns one skill record.
func (s *Store) GetSkill(ctx context.Context, id int) (skill.Record, error) {
	if err := ctx.Err(); err != nil {
		return skill.Record{}, err
	}
	if s == nil || s.sqlDB == nil {
		return skill.Record{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = ?`, id)
	r, err := scanSkill(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return skill.Record{}, storage.ErrNotFound
		}
		return skill.Record{}, fmt.Errorf("get skill: %w", err)
	}
	return r, nil
}

// ListSkills returns every skill ordered by id.
func (s *Store) ListSkills(ctx context.Context) ([]skill.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT `+skillColumns+` FROM skills ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	var records []skill.Record
	for rows.Next() {
		r, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("list skills: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSkill(row rowScanner) (skill.Record, error) {
	var (
		r          skill.Record
		profession int
		attribute  int
		skillType  int
		special    int64
		weaponReq  int
		combo      int
	)
	if err := row.Scan(
		&r.ID,
		&r.Name,
		&r.Description,
		&profession,
		&attribute,
		&skillType,
		&r.Elite,
		&r.Costs.Upkeep,
		&r.Costs.Adrenaline,
		&r.Costs.Energy,
		&r.Costs.Sacrifice,
		&r.Costs.Activation,
		&r.Costs.Recharge,
		&r.Costs.Overcast,
		&special,
		&weaponReq,
		&combo,
	); err != nil {
		return skill.Record{}, err
	}
	r.Profession = build.Profession(profession)
	r.Attribute = build.Attribute(attribute)
	r.Type = skill.Type(skillType)
	r.Special = uint32(special)
	r.WeaponReq = skill.WeaponReq(weaponReq)
	r.Combo = skill.Combo(combo)
	return r, nil
}

func isCheckViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_CHECK, sqlite3lib.SQLITE_CONSTRAINT_NOTNULL:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "check constraint failed")
}

var _ storage.SkillStore = (*Store)(nil)
