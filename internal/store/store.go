// Package store persists the analysis run log in Postgres.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/sentilytics/pkg/models"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Store is the data access interface. All database operations go through here.
type Store interface {
	Ping(ctx context.Context) error

	CreateRun(ctx context.Context, run *models.AnalysisRun) error
	GetRun(ctx context.Context, id uuid.UUID) (*models.AnalysisRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]*models.AnalysisRun, error)
}

// RunFilter narrows ListRuns. Zero values match everything.
type RunFilter struct {
	Status      string
	Fingerprint string
	Limit       int
}

// normalizedLimit clamps Limit to [1, MaxListLimit], defaulting to DefaultListLimit.
func (f RunFilter) normalizedLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultListLimit
	case f.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return f.Limit
	}
}
