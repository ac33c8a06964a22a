package main

import (
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/provial/novedades/internal/config"
	"github.com/provial/novedades/internal/form"
	"github.com/provial/novedades/internal/storage"
	"github.com/provial/novedades/pkg/core"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

var (
	reportFile    string
	reportCopy    bool
	reportArchive bool
	reportSummary bool
)

var reportCmd = &cobra.Command{
	Use:   "report <detailed|general>",
	Short: "Generate an incident message from a form document",
	Long: `Generates the message for the duty officer (detailed, also "encargado")
or the general broadcast from a YAML form document. Use -f - to read the
document from stdin.`,
	Example: `  novedades report general -f novedad.yaml --copy
  novedades report encargado -f novedad.yaml --archive`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportFile, "file", "f", "", "form document (YAML), - for stdin")
	reportCmd.Flags().BoolVar(&reportCopy, "copy", false, "copy the message to the clipboard (default from report.copyToClipboard)")
	reportCmd.Flags().BoolVar(&reportArchive, "archive", false, "store the message in the configured archive")
	reportCmd.Flags().BoolVar(&reportSummary, "summary", false, "print the vehicles, tow trucks and adjusters as tables")
	_ = reportCmd.MarkFlagRequired("file")
}

func runReport(cmd *cobra.Command, args []string) error {
	variant, ok := core.ParseVariant(args[0])
	if !ok {
		return fmt.Errorf("unknown message variant %q, use detailed or general", args[0])
	}

	doc, err := loadDocument(reportFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	f := form.New(form.WithLogger(logger), form.WithCounters(counters))
	if err := doc.apply(f); err != nil {
		return fmt.Errorf("filling form: %w", err)
	}

	msg, err := f.Generate(variant)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if reportSummary {
		printSummary(out, f)
	}
	printMessage(out, msg)

	if reportCopy || config.GetBool("report.copyToClipboard") {
		if err := clipboardWriteAll(msg.Text); err != nil {
			// The message is already on screen.
			logger.Warn().Err(err).Msg("Failed to copy message to clipboard")
			fmt.Fprintln(cmd.ErrOrStderr(), warningStyle.Render("No se pudo copiar al portapapeles"))
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), successStyle.Render("Mensaje copiado al portapapeles"))
		}
	}

	if reportArchive {
		path, err := archiveMessage(msg)
		if err != nil {
			return err
		}
		if path != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render("Archivo: "+path))
		}
	}
	return nil
}

func variantTitle(v core.Variant) string {
	if v == core.VariantDetailed {
		return "Mensaje para Encargado"
	}
	return "Mensaje General"
}

// printMessage writes the title and the message. The text itself is left
// unstyled so it can be pasted as is.
func printMessage(w io.Writer, msg form.Message) {
	fmt.Fprintln(w, titleStyle.Render(variantTitle(msg.Variant)))
	fmt.Fprintln(w)
	fmt.Fprintln(w, msg.Text)
}

func printSummary(w io.Writer, f *form.Form) {
	sections := []struct {
		title   string
		headers []string
		rows    [][]string
	}{
		{"Vehículos", []string{"#", "Tipo", "Placa", "Piloto"}, f.VehicleRows()},
		{"Grúas", []string{"#", "Tipo", "Placa", "Asignado a"}, f.TowTruckRows()},
		{"Ajustadores", []string{"#", "Nombre", "Empresa", "Asignado a"}, f.AdjusterRows()},
	}
	for _, s := range sections {
		if len(s.rows) == 0 {
			continue
		}
		fmt.Fprintln(w, titleStyle.Render(s.title))
		fmt.Fprintln(w, renderTable(s.headers, s.rows))
	}
}

// archiveMessage stores msg in the configured backend and returns the file
// the backend exported on close, if any.
func archiveMessage(msg form.Message) (string, error) {
	backend, err := openArchive()
	if err != nil {
		return "", err
	}

	rec, err := storage.RecordFromMessage(msg)
	if err != nil {
		_ = backend.Close()
		return "", err
	}
	if err := backend.SaveReport(rec); err != nil {
		_ = backend.Close()
		return "", fmt.Errorf("archiving report: %w", err)
	}
	if err := backend.Close(); err != nil {
		return "", fmt.Errorf("closing archive: %w", err)
	}

	logger.Info().
		Str("id", rec.ID.String()).
		Str("variant", rec.Variant).
		Msg("Report archived")

	if e, ok := backend.(storage.Exportable); ok {
		return e.GetExportedFilePath(), nil
	}
	return "", nil
}

func openArchive() (storage.Backend, error) {
	backend, err := storage.NewBackend(config.GetStorageConfig(), config.GetDBConfig(), logger)
	if err != nil {
		return nil, err
	}
	if err := backend.Init(); err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("initializing archive: %w", err)
	}
	return backend, nil
}
