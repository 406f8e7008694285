// Package memory provides an in-process analysis history used when no
// database is configured.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sarensabesk/HireAI/internal/domain"
)

// AnalysisRepo keeps the most recent analyses in a bounded ring. Safe for
// concurrent use.
type AnalysisRepo struct {
	capacity int

	mu    sync.RWMutex
	items []domain.Analysis
}

// NewAnalysisRepo constructs a repo retaining up to capacity entries.
func NewAnalysisRepo(capacity int) *AnalysisRepo {
	if capacity <= 0 {
		capacity = 100
	}
	return &AnalysisRepo{capacity: capacity}
}

func (r *AnalysisRepo) Save(_ domain.Context, a domain.Analysis) (string, error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, a)
	if len(r.items) > r.capacity {
		r.items = r.items[len(r.items)-r.capacity:]
	}
	return a.ID, nil
}

// ListRecent returns up to limit analyses, newest first.
func (r *AnalysisRepo) ListRecent(_ domain.Context, limit int) ([]domain.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.items) {
		limit = len(r.items)
	}
	out := make([]domain.Analysis, 0, limit)
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.items[i])
	}
	return out, nil
}
