package gormstorage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/provial/novedades/internal/database"
	"github.com/provial/novedades/internal/model"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	db, err := database.GetSqliteDB(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	b := New(Dependencies{DB: db, Logger: zerolog.Nop(), Close: sqlDB.Close})
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestSaveAndList(t *testing.T) {
	b := newTestBackend(t)
	base := time.Date(2026, time.October, 17, 8, 0, 0, 0, time.UTC)

	for i, variant := range []string{"detailed", "general", "detailed"} {
		r := &model.ReportArchive{
			Variant:     variant,
			GeneratedAt: base.Add(time.Duration(i) * time.Minute),
			Site:        "Morales",
			Text:        "mensaje",
			Snapshot:    datatypes.JSON(`{"site":"Morales"}`),
		}
		require.NoError(t, b.SaveReport(r))
		assert.NotEmpty(t, r.ID.String())
	}

	all, err := b.ListReports(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].GeneratedAt.Equal(base.Add(2*time.Minute)))
	assert.JSONEq(t, `{"site":"Morales"}`, string(all[0].Snapshot))

	latest, err := b.ListReports(1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, all[0].ID, latest[0].ID)
}

func TestCloseWithoutCloser(t *testing.T) {
	b := New(Dependencies{})
	assert.NoError(t, b.Close())
}
