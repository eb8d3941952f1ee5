// Package skillsimporter loads a skills.json dump into the skill store.
package skillsimporter

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/skillbar/internal/platform/config"
	"github.com/louisbranch/skillbar/internal/services/skillbar/domain/skill"
	"github.com/louisbranch/skillbar/internal/services/skillbar/storage"
	skillsqlite "github.com/louisbranch/skillbar/internal/services/skillbar/storage/sqlite"
)

// Config holds configuration for the skill importer.
type Config struct {
	Input  string `env:"SKILLBAR_CATALOG_INPUT"`
	DBPath string `env:"SKILLBAR_DB_PATH" envDefault:"data/skillbar.db"`
	DryRun bool
}

// ParseConfig reads environment defaults, then CLI flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Input, "input", cfg.Input, "path to skills.json")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "skill database path")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "validate without writing to the database")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.Input) == "" {
		return Config{}, errors.New("input is required")
	}
	return cfg, nil
}

// Run imports cfg.Input and writes a summary line to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}
	input := strings.TrimSpace(cfg.Input)
	if input == "" {
		return errors.New("input is required")
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	records, err := skill.DecodeJSON(f)
	if err != nil {
		return err
	}
	if err := validate(records); err != nil {
		return err
	}

	if cfg.DryRun {
		_, err = fmt.Fprintf(out, "validated %d skill(s)\n", len(records))
		return err
	}

	store, err := openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	written, err := importSkills(ctx, store, records)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "imported %d skill(s) into %s\n", written, cfg.DBPath)
	return err
}

func importSkills(ctx context.Context, store storage.SkillStore, records []skill.Record) (int, error) {
	written, err := store.PutSkills(ctx, records)
	if err != nil {
		return 0, fmt.Errorf("store skills: %w", err)
	}
	return written, nil
}

func validate(records []skill.Record) error {
	if len(records) == 0 {
		return errors.New("no skills found in input")
	}
	var problems []string
	for _, r := range records {
		if strings.TrimSpace(r.Name) == "" {
			problems = append(problems, fmt.Sprintf("skill %d: name is required", r.ID))
		}
		if !r.Profession.Valid() {
			problems = append(problems, fmt.Sprintf("skill %d: unknown profession %d", r.ID, r.Profession))
		}
		if r.Costs.Activation < 0 || r.Costs.Recharge < 0 || r.Costs.Energy < 0 {
			problems = append(problems, fmt.Sprintf("skill %d: costs must not be negative", r.ID))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid skills:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

func openStore(path string) (*skillsqlite.Store, error) {
	if strings.TrimSpace(path) == "" {
		path = filepath.Join("data", "skillbar.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := skillsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open skill store: %w", err)
	}
	return store, nil
}
