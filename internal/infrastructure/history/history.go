// Package history holds the collaborator that durably records finished
// comparisons. Durable storage is delegated to an external system; the
// default implementation only logs, so the pipeline produces correct batches
// whether or not anything is recorded.
package history

import (
	"context"
	"log"

	"github.com/precocerto/backend/internal/domain"
)

// LogRepository satisfies domain.HistoryRepository without durable storage
type LogRepository struct{}

// NewLogRepository creates the default, storage-free history repository
func NewLogRepository() *LogRepository {
	return &LogRepository{}
}

// SaveBatch records the batch in the service log only
func (r *LogRepository) SaveBatch(ctx context.Context, userID string, batch *domain.ComparisonBatch) error {
	log.Printf("[HISTORY] batch %s for user %s: %d items, total savings %.2f",
		batch.BatchID, userID, len(batch.Items), batch.TotalSavings)
	return nil
}
