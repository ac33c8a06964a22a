// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/provial/novedades/internal/config"
	"github.com/provial/novedades/internal/database"
	gormstorage "github.com/provial/novedades/internal/storage/gorm"
	"github.com/provial/novedades/internal/storage/memory"
)

// NewBackend creates a storage backend based on configuration. Database
// backends connect here; Init still has to be called.
func NewBackend(cfg config.StorageConfig, db config.DBConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "postgres", "sqlite":
		m := database.NewManager(log, cfg.SQLite.Path)
		var err error
		if cfg.Type == "postgres" {
			err = m.Connect(db)
		} else {
			err = m.ConnectSQLite()
		}
		if err != nil {
			return nil, fmt.Errorf("connecting %s archive: %w", cfg.Type, err)
		}
		return gormstorage.New(gormstorage.Dependencies{
			DB:     m.DB,
			Logger: log,
			Close:  m.Close,
		}), nil
	case "memory":
		return memory.New(cfg.Memory), nil
	case "none", "":
		return Discard{}, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
