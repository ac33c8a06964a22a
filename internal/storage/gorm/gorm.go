// Package gormstorage implements the storage.Backend interface on top of a
// GORM connection, SQLite or Postgres alike.
package gormstorage

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/provial/novedades/internal/model"
)

// Dependencies holds what the backend needs from its owner.
type Dependencies struct {
	DB     *gorm.DB
	Logger zerolog.Logger
	// Close releases the connection; nil leaves it open.
	Close func() error
}

// Backend stores reports in the report_archive table.
type Backend struct {
	db    *gorm.DB
	log   zerolog.Logger
	close func() error
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	return &Backend{
		db:    deps.DB,
		log:   deps.Logger,
		close: deps.Close,
	}
}

// Init migrates the archive table.
func (b *Backend) Init() error {
	if err := b.db.AutoMigrate(&model.ReportArchive{}); err != nil {
		return fmt.Errorf("failed to migrate report archive: %w", err)
	}
	return nil
}

// Close releases the connection.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// SaveReport inserts r.
func (b *Backend) SaveReport(r *model.ReportArchive) error {
	if err := b.db.Create(r).Error; err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	b.log.Debug().Str("id", r.ID.String()).Str("variant", r.Variant).Msg("Report archived")
	return nil
}

// ListReports returns the newest reports first.
func (b *Backend) ListReports(limit int) ([]model.ReportArchive, error) {
	q := b.db.Order("generated_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []model.ReportArchive
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return out, nil
}
