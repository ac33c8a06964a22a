// internal/storage/memory/memory.go
package memory

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/provial/novedades/internal/config"
	"github.com/provial/novedades/internal/model"
)

// Backend keeps the session's reports in memory and exports them to JSON on Close
type Backend struct {
	cfg     config.MemoryConfig
	now     func() time.Time
	reports []model.ReportArchive

	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg: cfg,
		now: time.Now,
	}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close exports the stored reports, if any
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.reports) == 0 {
		return nil
	}
	return b.exportJSON()
}

// SaveReport stores a copy of r
func (b *Backend) SaveReport(r *model.ReportArchive) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	b.reports = append(b.reports, *r)
	return nil
}

// ListReports returns the newest reports first
func (b *Backend) ListReports(limit int) ([]model.ReportArchive, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := slices.Clone(b.reports)
	slices.SortStableFunc(out, func(x, y model.ReportArchive) int {
		return cmp.Compare(y.GeneratedAt.UnixNano(), x.GeneratedAt.UnixNano())
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetExportedFilePath returns the file written by the last Close
func (b *Backend) GetExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
