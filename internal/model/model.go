package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []any{
	&Usuario{},
	&ReportArchive{},
}

////////////////////////
// ROSTER
////////////////////////

// Usuario is a row of the shared "usuario" table. The roster importer only
// ever upserts by username, so the table's serial id is not mapped. Columns
// carry no gorm defaults: a zero Activo must be written as false.
type Usuario struct {
	Username       string     `json:"username" gorm:"size:50;uniqueIndex;not null"`
	PasswordHash   string     `json:"-" gorm:"size:255;not null"`
	NombreCompleto string     `json:"nombreCompleto" gorm:"size:150;not null"`
	Chapa          string     `json:"chapa" gorm:"size:20"`
	RolID          int        `json:"rolId" gorm:"not null"`
	SedeID         int        `json:"sedeId" gorm:"not null"`
	Activo         bool       `json:"activo" gorm:"not null"`
	Grupo          *int       `json:"grupo"`
	Genero         *string    `json:"genero" gorm:"size:1"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

func (*Usuario) TableName() string {
	return "usuario"
}

////////////////////////
// REPORTS
////////////////////////

// ReportArchive is a generated message kept for later lookup, together with
// the snapshot it was rendered from.
type ReportArchive struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Variant     string         `json:"variant" gorm:"size:16;index:idx_report_variant"`
	GeneratedAt time.Time      `json:"generatedAt" gorm:"index:idx_report_generated_at"`
	Site        string         `json:"site" gorm:"size:64"`
	Unit        string         `json:"unit" gorm:"size:32"`
	Text        string         `json:"text" gorm:"type:text"`
	Snapshot    datatypes.JSON `json:"snapshot"`
}

func (*ReportArchive) TableName() string {
	return "report_archive"
}

// BeforeCreate assigns an id to records that have none.
func (r *ReportArchive) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
