// Command novedades generates PROVIAL incident messages from form documents,
// archives them and imports brigade rosters into the user table.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/provial/novedades/internal/config"
	"github.com/provial/novedades/internal/form"
	"github.com/provial/novedades/internal/logging"
	"github.com/provial/novedades/internal/obstruction"
	"github.com/provial/novedades/internal/otel"
	"github.com/provial/novedades/internal/registry"
)

var (
	// Global flags
	configDir string
	logLevel  string

	logManager = logging.NewManager()
	logger     = zerolog.Nop()
	logFile    *os.File
	counters   *otel.Counters
)

var rootCmd = &cobra.Command{
	Use:   "novedades",
	Short: "PROVIAL incident reports and roster import",
	Long: `novedades turns an incident form document into the message sent to the
duty officer or the general broadcast, keeps an archive of generated
messages and converts brigade rosters into user table statements.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			_ = logFile.Close()
			logFile = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory holding "+config.FileName+" and .env")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "DEBUG, INFO, WARN or ERROR (overrides logLevel)")

	rootCmd.AddCommand(reportCmd, rosterCmd, catalogCmd, archiveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads .env and the config file, then builds the session logger and
// the metric counters.
func setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(filepath.Join(configDir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	if err := config.Load(configDir); err != nil {
		return err
	}

	level := config.GetString("logLevel")
	if logLevel != "" {
		level = logLevel
	}

	var file io.Writer
	if dir := config.GetString("logsDir"); dir != "" {
		f, err := logging.OpenSessionLog(dir, "novedades", time.Now())
		if err != nil {
			return err
		}
		logFile, file = f, f
	}
	logger = logManager.Setup(cmd.ErrOrStderr(), file, level)

	c, err := otel.NewCounters(otel.Meter())
	if err != nil {
		return fmt.Errorf("creating counters: %w", err)
	}
	counters = c

	logger.Debug().Str("command", cmd.CommandPath()).Str("configDir", configDir).Msg("Session started")
	return nil
}

// describeError maps the failures the operator can fix in the form to the
// notices the paper-form workflow uses. warning is true for those.
func describeError(err error) (msg string, warning bool) {
	switch {
	case errors.Is(err, form.ErrMissingIncidentType):
		return "Debe seleccionar un tipo de incidente", true
	case errors.Is(err, form.ErrInvalidDate):
		return "Formato de fecha inválido. Use dd/mm/yyyy", true
	case errors.Is(err, form.ErrInvalidTime):
		return "Hora inválida", true
	case errors.Is(err, obstruction.ErrSingleLane):
		return "En una vía de un solo carril, solo puedes registrar una obstrucción.", true
	case errors.Is(err, obstruction.ErrCapacityExceeded):
		return "Solo se permiten 3 carriles: izquierdo, central y derecho", true
	case errors.Is(err, obstruction.ErrInvalidPercent):
		return "Ingresa un porcentaje entre 1 y 100", true
	case errors.Is(err, obstruction.ErrDuplicateLane):
		return "Ese carril ya está registrado en este sentido", true
	case errors.Is(err, obstruction.ErrOffRoad):
		return "El vehículo está fuera de la vía en ese sentido, no se pueden registrar carriles", true
	case errors.Is(err, registry.ErrNotFound), errors.Is(err, registry.ErrOutOfBounds):
		return "Por favor, selecciona un elemento existente de la lista.", true
	case errors.Is(err, registry.ErrInvalidAssignment):
		return "El vehículo asignado no existe en la lista", true
	}
	return err.Error(), false
}

func printError(w io.Writer, err error) {
	msg, warning := describeError(err)
	if warning {
		fmt.Fprintln(w, warningStyle.Render("Advertencia: "+msg))
		return
	}
	fmt.Fprintln(w, errorStyle.Render("Error: "+msg))
}

// contextOf returns the command context, which is nil when a command runs
// outside Execute.
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
