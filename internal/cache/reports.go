// Package cache keeps resolved report lists per user so repeated GET /reports
// calls skip the populate step.
//
// Entries are stored under a per-user generation. Readers take the generation
// before reading the store and write back under it; Invalidate moves the user
// to a new generation, so a list resolved before the invalidation is never
// served after it.
package cache

import (
	"context"

	"github.com/baharkarakas/projectify-backend/internal/models"
)

type Reports interface {
	// Generation returns the user's current generation.
	Generation(ctx context.Context, userID string) (int64, error)
	// Get returns the list cached under gen and whether it was present.
	Get(ctx context.Context, userID string, gen int64) ([]models.Report, bool, error)
	Set(ctx context.Context, userID string, gen int64, reports []models.Report) error
	// Invalidate advances the user's generation.
	Invalidate(ctx context.Context, userID string) error
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Generation(context.Context, string) (int64, error) { return 0, nil }
func (Noop) Get(context.Context, string, int64) ([]models.Report, bool, error) {
	return nil, false, nil
}
func (Noop) Set(context.Context, string, int64, []models.Report) error { return nil }
func (Noop) Invalidate(context.Context, string) error                  { return nil }
