// internal/storage/storage.go
package storage

import "github.com/provial/novedades/internal/model"

// Backend is the interface all report archive implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// SaveReport stores a generated message. A record without an id gets one.
	SaveReport(r *model.ReportArchive) error
	// ListReports returns the newest reports first; limit <= 0 returns all.
	ListReports(limit int) ([]model.ReportArchive, error)
}

// Exportable is an optional interface for backends that write their records
// to a file when closed.
type Exportable interface {
	GetExportedFilePath() string
}

// Discard is the backend used when archiving is disabled.
type Discard struct{}

func (Discard) Init() error                                    { return nil }
func (Discard) Close() error                                   { return nil }
func (Discard) SaveReport(*model.ReportArchive) error          { return nil }
func (Discard) ListReports(int) ([]model.ReportArchive, error) { return nil, nil }
