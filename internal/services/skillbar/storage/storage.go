// Package storage defines persistence contracts for skill reference data.
package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/skillbar/internal/services/skillbar/domain/skill"
)

// ErrNotFound indicates a requested skill record is missing.
var ErrNotFound = errors.New("record not found")

// SkillStore persists the skill catalog.
type SkillStore interface {
	// PutSkills inserts or replaces records and reports how many were written.
	PutSkills(ctx context.Context, records []skill.Record) (int, error)
	GetSkill(ctx context.Context, id int) (skill.Record, error)
	// ListSkills returns every record ordered by id.
	ListSkills(ctx context.Context) ([]skill.Record, error)
}
