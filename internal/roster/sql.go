package roster

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/provial/novedades/internal/database"
	"github.com/provial/novedades/internal/model"
)

var updatedColumns = []string{"nombre_completo", "rol_id", "sede_id", "activo", "grupo", "genero"}

var legacyColumns = []string{"username", "password_hash", "nombre_completo", "chapa", "rol_id", "sede_id", "activo"}

// deactivate soft-deletes every user of the role ahead of a full reload.
func deactivate(db *gorm.DB, roleID int) *gorm.DB {
	return db.Model(&model.Usuario{}).Where("rol_id = ?", roleID).UpdateColumn("activo", false)
}

// upsert inserts u keyed by username. A fuerza row refreshes an existing
// user, a legacy row never touches one.
func upsert(db *gorm.DB, u *model.Usuario, layout Layout) *gorm.DB {
	conflict := clause.OnConflict{Columns: []clause.Column{{Name: "username"}}}
	tx := db.Omit("created_at", "updated_at")
	if layout == LayoutLegacy {
		conflict.DoNothing = true
		tx = tx.Select(legacyColumns)
	} else {
		conflict.DoUpdates = append(clause.AssignmentColumns(updatedColumns), clause.Assignment{
			Column: clause.Column{Name: "updated_at"},
			Value:  gorm.Expr("CURRENT_TIMESTAMP"),
		})
	}
	return tx.Clauses(conflict).Create(u)
}

// WriteSQL renders res as a Postgres script.
func WriteSQL(w io.Writer, res Result) error {
	db, err := database.GetDryRunDB()
	if err != nil {
		return err
	}
	explain := func(tx *gorm.DB) (string, error) {
		if tx.Error != nil {
			return "", tx.Error
		}
		return db.Dialector.Explain(tx.Statement.SQL.String(), tx.Statement.Vars...) + ";", nil
	}

	bw := bufio.NewWriter(w)
	if res.Layout == LayoutLegacy {
		fmt.Fprint(bw, "-- Importacion de brigadas desde Excel\n\n")
	} else {
		stmt, err := explain(deactivate(db, res.BrigadeRoleID))
		if err != nil {
			return fmt.Errorf("rendering deactivation: %w", err)
		}
		fmt.Fprint(bw, "SET client_encoding = 'UTF8';\n\n")
		fmt.Fprint(bw, "-- Import Estado de Fuerza\n")
		fmt.Fprint(bw, "-- Deactivate old Brigada users first (soft delete)\n")
		fmt.Fprintf(bw, "%s\n\n", stmt)
	}

	for i := range res.Users {
		stmt, err := explain(upsert(db, &res.Users[i], res.Layout))
		if err != nil {
			return fmt.Errorf("rendering user %s: %w", res.Users[i].Username, err)
		}
		fmt.Fprintf(bw, "%s\n", stmt)
	}
	return bw.Flush()
}

// Apply runs the same statements WriteSQL renders inside one transaction.
// Nothing is written if any statement fails.
func Apply(ctx context.Context, db *gorm.DB, res Result) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if res.Layout != LayoutLegacy {
			if err := deactivate(tx, res.BrigadeRoleID).Error; err != nil {
				return fmt.Errorf("deactivating brigade users: %w", err)
			}
		}
		for i := range res.Users {
			if err := upsert(tx, &res.Users[i], res.Layout).Error; err != nil {
				return fmt.Errorf("upserting user %s: %w", res.Users[i].Username, err)
			}
		}
		return nil
	})
}
