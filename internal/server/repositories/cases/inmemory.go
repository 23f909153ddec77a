package cases

import (
	"context"
	"sync"

	"github.com/cjmtools/caseintake/internal/models"
)

// InMemoryRepository keeps records in process memory. Used when the server
// runs without a database DSN, for development and for tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records []models.CaseRecord
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Append(ctx context.Context, record *models.CaseRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *record)
	return nil
}

func (r *InMemoryRepository) SelectAll(ctx context.Context) ([]models.CaseRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.CaseRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}
