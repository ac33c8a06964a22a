// Package roster turns the personnel spreadsheets ("estado de fuerza") into
// upserts of the usuario table, either as a SQL script or applied directly.
package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/provial/novedades/internal/model"
	"github.com/provial/novedades/internal/otel"
	"github.com/provial/novedades/internal/util"
)

var (
	ErrHeaderNotFound = errors.New("no header row with nombre and chapa")
	ErrNoGroupSheet   = errors.New("no sheet names a group")
	ErrUnknownLayout  = errors.New("unknown roster layout")
)

// Layout selects how a roster file is read.
type Layout string

const (
	// LayoutFuerza reads group sheets with a detected header row.
	LayoutFuerza Layout = "fuerza"
	// LayoutLegacy reads the first sheet with fixed columns.
	LayoutLegacy Layout = "legacy"
)

// ParseLayout accepts the layout names case-insensitively.
func ParseLayout(s string) (Layout, error) {
	switch l := Layout(strings.ToLower(strings.TrimSpace(s))); l {
	case LayoutFuerza, LayoutLegacy:
		return l, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownLayout)
}

// Options configures an Importer.
type Options struct {
	Layout        Layout
	DefaultSiteID int
	PasswordHash  string
}

// Result is what an import produced.
type Result struct {
	Layout        Layout
	Users         []model.Usuario
	Skipped       int
	SkippedSheets []string
	// BrigadeRoleID is the role whose users are deactivated before a fuerza
	// import.
	BrigadeRoleID int
}

// Importer converts roster sheets into users.
type Importer struct {
	catalog  *Catalog
	opts     Options
	log      zerolog.Logger
	counters *otel.Counters
}

// NewImporter creates an importer. log and counters may be zero/nil.
func NewImporter(catalog *Catalog, opts Options, log zerolog.Logger, counters *otel.Counters) *Importer {
	if opts.Layout == "" {
		opts.Layout = LayoutFuerza
	}
	return &Importer{catalog: catalog, opts: opts, log: log, counters: counters}
}

// Import reads the users out of sheets.
func (im *Importer) Import(ctx context.Context, sheets []Sheet) (Result, error) {
	var (
		res Result
		err error
	)
	switch im.opts.Layout {
	case LayoutFuerza:
		res, err = im.fuerza(sheets)
	case LayoutLegacy:
		res, err = im.legacy(sheets)
	default:
		return Result{}, fmt.Errorf("%q: %w", im.opts.Layout, ErrUnknownLayout)
	}
	if err != nil {
		return Result{}, err
	}

	im.counters.RosterRows(ctx, "imported", len(res.Users))
	im.counters.RosterRows(ctx, "skipped", res.Skipped)
	im.log.Info().
		Str("layout", string(res.Layout)).
		Int("users", len(res.Users)).
		Int("skipped", res.Skipped).
		Msg("Roster read")
	return res, nil
}

// sheetGroup derives the group from a sheet name: "1"/"UNO" or "2"/"DOS".
func sheetGroup(name string) (int, bool) {
	upper := strings.ToUpper(name)
	switch {
	case strings.Contains(name, "1") || strings.Contains(upper, "UNO"):
		return 1, true
	case strings.Contains(name, "2") || strings.Contains(upper, "DOS"):
		return 2, true
	}
	return 0, false
}

// findHeader returns the index of the first row mentioning both "nombre" and
// "chapa", and the column index of every normalized header.
func findHeader(rows [][]string) (int, map[string]int, bool) {
	for i, row := range rows {
		joined := strings.ToLower(strings.Join(row, " "))
		if !strings.Contains(joined, "nombre") || !strings.Contains(joined, "chapa") {
			continue
		}
		cols := make(map[string]int, len(row))
		for j, c := range row {
			key := strings.ToLower(strings.TrimSpace(c))
			if _, seen := cols[key]; !seen && key != "" {
				cols[key] = j
			}
		}
		return i, cols, true
	}
	return 0, nil, false
}

func (im *Importer) fuerza(sheets []Sheet) (Result, error) {
	res := Result{Layout: LayoutFuerza}
	brigade, err := im.catalog.RoleID(RoleBrigade)
	if err != nil {
		return Result{}, err
	}
	cop, err := im.catalog.RoleID(RoleCOP)
	if err != nil {
		return Result{}, err
	}
	res.BrigadeRoleID = brigade

	groupSheets, withHeader := 0, 0
	for _, sh := range sheets {
		group, ok := sheetGroup(sh.Name)
		if !ok {
			im.log.Warn().Str("sheet", sh.Name).Msg("Skipping sheet, no group detected")
			res.SkippedSheets = append(res.SkippedSheets, sh.Name)
			continue
		}
		groupSheets++

		header, cols, ok := findHeader(sh.Rows)
		if !ok {
			im.log.Warn().Str("sheet", sh.Name).Msg("Could not find header row")
			res.SkippedSheets = append(res.SkippedSheets, sh.Name)
			continue
		}
		withHeader++
		im.log.Info().Str("sheet", sh.Name).Int("group", group).Int("headerRow", header+1).Msg("Processing sheet")

		col := func(row []string, name string) string {
			i, ok := cols[name]
			if !ok {
				return ""
			}
			return util.TitleWords(cell(row, i))
		}
		for _, row := range sh.Rows[header+1:] {
			nombre := col(row, "nombre")
			chapa := util.TrimFloatSuffix(col(row, "chapa"))
			if nombre == "" || chapa == "" {
				res.Skipped++
				continue
			}
			sede := col(row, "sede/depto.")
			estado := strings.ToUpper(col(row, "estado"))

			u := model.Usuario{
				Username:       strings.ReplaceAll(chapa, " ", ""),
				PasswordHash:   im.opts.PasswordHash,
				NombreCompleto: nombre,
				Chapa:          chapa,
				RolID:          brigade,
				SedeID:         im.catalog.SiteID(sede, im.opts.DefaultSiteID),
				Activo:         strings.Contains(estado, "ACTIVO") && !strings.Contains(estado, "INACTIVO"),
				Grupo:          &group,
				Genero:         gender(col(row, "genero")),
			}
			if isCOP(sede) {
				u.RolID = cop
			}
			res.Users = append(res.Users, u)
		}
	}

	switch {
	case groupSheets == 0:
		return Result{}, ErrNoGroupSheet
	case withHeader == 0:
		return Result{}, ErrHeaderNotFound
	}
	return res, nil
}

func (im *Importer) legacy(sheets []Sheet) (Result, error) {
	res := Result{Layout: LayoutLegacy}
	if len(sheets) == 0 {
		return res, nil
	}
	brigade, err := im.catalog.RoleID(RoleBrigade)
	if err != nil {
		return Result{}, err
	}
	res.BrigadeRoleID = brigade
	central := im.catalog.SiteID("CENTRAL", im.opts.DefaultSiteID)

	for _, sh := range sheets[1:] {
		res.SkippedSheets = append(res.SkippedSheets, sh.Name)
	}
	rows := sheets[0].Rows
	if len(rows) > 0 {
		rows = rows[1:]
	}
	for _, row := range rows {
		chapa := util.TrimFloatSuffix(cell(row, 1))
		if chapa == "" {
			res.Skipped++
			continue
		}
		res.Users = append(res.Users, model.Usuario{
			Username:       "brigada_" + strings.ToLower(strings.ReplaceAll(chapa, " ", "")),
			PasswordHash:   im.opts.PasswordHash,
			NombreCompleto: cell(row, 2),
			Chapa:          chapa,
			RolID:          brigade,
			SedeID:         central,
			Activo:         true,
		})
	}
	return res, nil
}

func isCOP(site string) bool {
	upper := strings.ToUpper(site)
	return strings.Contains(upper, "COP") || strings.Contains(upper, "CENTRO DE OPERACIONES")
}

// gender reads "M"/"Masculino" and "F"/"Femenino"; anything else is NULL.
func gender(s string) *string {
	var g string
	switch upper := strings.ToUpper(s); {
	case strings.HasPrefix(upper, "M"):
		g = "M"
	case strings.HasPrefix(upper, "F"):
		g = "F"
	default:
		return nil
	}
	return &g
}
