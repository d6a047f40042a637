package history

import (
	"context"
	"time"

	"chartgen/internal/models"
)

// Provider retrieves recorded entity state samples for a time window.
//
// History returns the samples observed in the half-open window [start, end)
// keyed by entity id, plus a display name per entity. Entities with no
// recorded samples in the window are simply absent from the sample map.
// Display names fall back to the entity id when no friendly name is known.
type Provider interface {
	History(ctx context.Context, entityIDs []string, start, end time.Time) (map[string][]models.Sample, map[string]string, error)
}
