package roster

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/provial/novedades/internal/database"
	"github.com/provial/novedades/internal/model"
)

func TestWriteSQLFuerza(t *testing.T) {
	res, err := newImporter(LayoutFuerza).Import(context.Background(), fuerzaSheets())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSQL(&buf, res))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "SET client_encoding = 'UTF8';\n\n"), out)
	assert.Contains(t, out, `UPDATE "usuario" SET "activo"=false WHERE rol_id = 3;`)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	inserts := lines[len(lines)-3:]
	for _, l := range inserts {
		assert.True(t, strings.HasPrefix(l, `INSERT INTO "usuario" ("username","password_hash","nombre_completo","chapa","rol_id","sede_id","activo","grupo","genero") VALUES (`), l)
		assert.Contains(t, l, `ON CONFLICT ("username") DO UPDATE SET "nombre_completo"="excluded"."nombre_completo"`)
		assert.True(t, strings.HasSuffix(l, `"updated_at"=CURRENT_TIMESTAMP;`), l)
	}
	assert.Contains(t, inserts[0], `('12345','hash','Juan Perez','12345',3,1,true,1,'M')`)
	assert.Contains(t, inserts[1], `'Ana O''brien'`)
	assert.Contains(t, inserts[2], `('45678','hash','Luis Gomez','45 678',3,3,false,2,NULL)`)
}

func TestWriteSQLLegacy(t *testing.T) {
	res := Result{
		Layout: LayoutLegacy,
		Users: []model.Usuario{
			{Username: "brigada_77", PasswordHash: "hash", NombreCompleto: "Carlos", Chapa: "77", RolID: 3, SedeID: 1, Activo: true},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSQL(&buf, res))
	out := buf.String()

	assert.NotContains(t, out, "UPDATE")
	assert.Contains(t, out, `INSERT INTO "usuario" ("username","password_hash","nombre_completo","chapa","rol_id","sede_id","activo") VALUES ('brigada_77','hash','Carlos','77',3,1,true) ON CONFLICT ("username") DO NOTHING;`)
}

func openUsers(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.GetSqliteDB(filepath.Join(t.TempDir(), "roster.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Usuario{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func users(t *testing.T, db *gorm.DB) map[string]model.Usuario {
	t.Helper()
	var rows []model.Usuario
	require.NoError(t, db.Find(&rows).Error)
	out := make(map[string]model.Usuario, len(rows))
	for _, u := range rows {
		out[u.Username] = u
	}
	return out
}

func TestApplyFuerza(t *testing.T) {
	db := openUsers(t)
	require.NoError(t, db.Create(&model.Usuario{Username: "99999", NombreCompleto: "Retirado", RolID: 3, SedeID: 1, Activo: true}).Error)
	require.NoError(t, db.Create(&model.Usuario{Username: "12345", NombreCompleto: "Nombre Viejo", PasswordHash: "kept", RolID: 3, SedeID: 5, Activo: true}).Error)
	require.NoError(t, db.Create(&model.Usuario{Username: "admin", NombreCompleto: "Admin", RolID: 1, SedeID: 1, Activo: true}).Error)

	res, err := newImporter(LayoutFuerza).Import(context.Background(), fuerzaSheets())
	require.NoError(t, err)
	require.NoError(t, Apply(context.Background(), db, res))

	got := users(t, db)
	require.Len(t, got, 5)
	assert.False(t, got["99999"].Activo, "brigade users missing from the roster are deactivated")
	assert.True(t, got["admin"].Activo)

	updated := got["12345"]
	assert.Equal(t, "Juan Perez", updated.NombreCompleto)
	assert.Equal(t, 1, updated.SedeID)
	assert.True(t, updated.Activo)
	assert.Equal(t, "kept", updated.PasswordHash, "an existing password is not reset")
	require.NotNil(t, updated.Genero)
	assert.Equal(t, "M", *updated.Genero)

	assert.Equal(t, 7, got["23456"].RolID)
	assert.False(t, got["23456"].Activo)
	assert.Nil(t, got["45678"].Genero)
}

func TestApplyLegacyKeepsExisting(t *testing.T) {
	db := openUsers(t)
	require.NoError(t, db.Create(&model.Usuario{Username: "brigada_77", NombreCompleto: "Original", RolID: 3, SedeID: 2, Activo: false}).Error)

	res := Result{
		Layout: LayoutLegacy,
		Users: []model.Usuario{
			{Username: "brigada_77", PasswordHash: "hash", NombreCompleto: "Nuevo", Chapa: "77", RolID: 3, SedeID: 1, Activo: true},
			{Username: "brigada_88", PasswordHash: "hash", NombreCompleto: "Otro", Chapa: "88", RolID: 3, SedeID: 1, Activo: true},
		},
	}
	require.NoError(t, Apply(context.Background(), db, res))

	got := users(t, db)
	require.Len(t, got, 2)
	assert.Equal(t, "Original", got["brigada_77"].NombreCompleto)
	assert.False(t, got["brigada_77"].Activo)
	assert.Equal(t, "Otro", got["brigada_88"].NombreCompleto)
}

func TestApplyRollsBack(t *testing.T) {
	db := openUsers(t)
	require.NoError(t, db.Create(&model.Usuario{Username: "99999", NombreCompleto: "Retirado", RolID: 3, SedeID: 1, Activo: true}).Error)
	require.NoError(t, db.Exec(`CREATE TRIGGER reject_bad BEFORE INSERT ON usuario WHEN NEW.username = 'bad' BEGIN SELECT RAISE(ABORT, 'rejected'); END`).Error)

	res := Result{
		Layout:        LayoutFuerza,
		BrigadeRoleID: 3,
		Users: []model.Usuario{
			{Username: "11111", NombreCompleto: "Uno", RolID: 3, SedeID: 1, Activo: true},
			{Username: "bad", NombreCompleto: "Malo", RolID: 3, SedeID: 1, Activo: true},
		},
	}
	require.Error(t, Apply(context.Background(), db, res))

	got := users(t, db)
	require.Len(t, got, 1)
	assert.True(t, got["99999"].Activo)
}
