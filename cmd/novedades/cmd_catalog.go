package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/provial/novedades/internal/catalog"
)

var catalogSearch string

var catalogCmd = &cobra.Command{
	Use:   "catalog [list]",
	Short: "Show the option lists of the form",
	Long: `Without arguments, prints the names of the available lists. With a list
name, prints its options, optionally filtered with --search.`,
	Example: `  novedades catalog
  novedades catalog transito --search colision`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogSearch, "search", "s", "", "keep options containing this text")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprintln(out, titleStyle.Render("Listas"))
		for _, name := range catalog.Names() {
			fmt.Fprintln(out, "  "+name)
		}
		return nil
	}

	options, ok := catalog.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown list %q, available: %s", args[0], strings.Join(catalog.Names(), ", "))
	}
	options = catalog.Search(options, catalogSearch)
	if len(options) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("Sin resultados"))
		return nil
	}
	for _, o := range options {
		fmt.Fprintln(out, o)
	}
	return nil
}
