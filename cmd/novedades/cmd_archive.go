package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provial/novedades/pkg/core"
)

var archiveLimit int

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect archived messages",
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived messages, newest first",
	Long: `Lists the messages stored in the configured archive. Only the sqlite and
postgres backends keep messages between runs; the memory backend exports
each run to a JSON file instead.`,
	Args: cobra.NoArgs,
	RunE: runArchiveList,
}

func init() {
	archiveListCmd.Flags().IntVarP(&archiveLimit, "limit", "n", 20, "maximum messages to list, 0 for all")
	archiveCmd.AddCommand(archiveListCmd)
}

func runArchiveList(cmd *cobra.Command, args []string) error {
	backend, err := openArchive()
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close archive")
		}
	}()

	reports, err := backend.ListReports(archiveLimit)
	if err != nil {
		return fmt.Errorf("listing archive: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(reports) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("Sin mensajes archivados"))
		return nil
	}
	rows := make([][]string, len(reports))
	for i, r := range reports {
		rows[i] = []string{
			r.ID.String()[:8],
			r.GeneratedAt.Local().Format("02/01/2006 15:04"),
			variantTitle(core.Variant(r.Variant)),
			r.Site,
			r.Unit,
		}
	}
	fmt.Fprintln(out, renderTable([]string{"ID", "Generado", "Mensaje", "Sede", "Unidad"}, rows))
	return nil
}
