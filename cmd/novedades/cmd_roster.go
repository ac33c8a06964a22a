package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/provial/novedades/internal/config"
	"github.com/provial/novedades/internal/database"
	"github.com/provial/novedades/internal/roster"
)

var (
	rosterFile    string
	rosterLayout  string
	rosterOutput  string
	rosterCatalog string
	rosterApply   bool
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Brigade roster tools",
}

var rosterImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Convert a roster workbook into user table statements",
	Long: `Reads a roster workbook (.xlsx, .xlsm) or CSV file and writes the SQL that
loads its people into the usuario table, or applies it directly with --apply.

The fuerza layout reads the GRUPO 1 / GRUPO 2 sheets, deactivates brigade
users missing from the roster and upserts the rest. The legacy layout reads
chapa and name from the first sheet and only inserts new users.`,
	Example: `  novedades roster import -f fuerza.xlsx -o usuarios.sql
  novedades roster import -f brigadas.csv --layout legacy --apply`,
	RunE: runRosterImport,
}

func init() {
	rosterImportCmd.Flags().StringVarP(&rosterFile, "file", "f", "", "roster workbook or CSV file")
	rosterImportCmd.Flags().StringVar(&rosterLayout, "layout", "", "fuerza or legacy (default from roster.layout)")
	rosterImportCmd.Flags().StringVarP(&rosterOutput, "output", "o", "", "SQL output file (default stdout)")
	rosterImportCmd.Flags().StringVar(&rosterCatalog, "catalog", "", "site and role catalog file (default from roster.catalogFile)")
	rosterImportCmd.Flags().BoolVar(&rosterApply, "apply", false, "write to the database instead of emitting SQL")
	_ = rosterImportCmd.MarkFlagRequired("file")

	rosterCmd.AddCommand(rosterImportCmd)
}

func runRosterImport(cmd *cobra.Command, args []string) error {
	ctx := contextOf(cmd)
	rc := config.GetRosterConfig()

	layoutName := rosterLayout
	if layoutName == "" {
		layoutName = rc.Layout
	}
	layout, err := roster.ParseLayout(layoutName)
	if err != nil {
		return err
	}

	catalogPath := rosterCatalog
	if catalogPath == "" {
		catalogPath = rc.CatalogFile
	}
	catalog, err := roster.LoadCatalog(catalogPath)
	if err != nil {
		return err
	}

	sheets, err := roster.ReadFile(rosterFile)
	if err != nil {
		return err
	}

	im := roster.NewImporter(catalog, roster.Options{
		Layout:        layout,
		DefaultSiteID: rc.DefaultSiteID,
		PasswordHash:  rc.DefaultPasswordHash,
	}, logger, counters)
	res, err := im.Import(ctx, sheets)
	if err != nil {
		return err
	}

	if rosterApply {
		if err := applyRoster(cmd, res); err != nil {
			return err
		}
	} else if err := writeRoster(cmd.OutOrStdout(), res); err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), successStyle.Render(
		fmt.Sprintf("%d usuarios procesados, %d filas omitidas", len(res.Users), res.Skipped)))
	for _, name := range res.SkippedSheets {
		fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render("Hoja ignorada: "+name))
	}
	return nil
}

func writeRoster(stdout io.Writer, res roster.Result) error {
	if rosterOutput == "" {
		return roster.WriteSQL(stdout, res)
	}
	f, err := os.Create(rosterOutput)
	if err != nil {
		return fmt.Errorf("creating SQL output: %w", err)
	}
	if err := roster.WriteSQL(f, res); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing SQL output: %w", err)
	}
	logger.Info().Str("path", rosterOutput).Int("users", len(res.Users)).Msg("Roster SQL written")
	return nil
}

func applyRoster(cmd *cobra.Command, res roster.Result) error {
	m := database.NewManager(logger, config.GetStorageConfig().SQLite.Path)
	if err := m.Connect(config.GetDBConfig()); err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close database")
		}
	}()

	// A fresh local database has no usuario table yet.
	if m.UsingSQLite {
		if err := m.Setup(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), warningStyle.Render("Postgres no disponible, usando "+m.SqliteFilePath))
	}
	return roster.Apply(contextOf(cmd), m.DB, res)
}
