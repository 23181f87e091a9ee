package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/ecocafe/internal/catalog"
	"github.com/alexanderramin/ecocafe/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	var file string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print and validate the question catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := app.Catalog
			if file != "" {
				loaded, err := catalog.LoadFile(file)
				if err != nil {
					return err
				}
				c = loaded
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(c)
			}
			fmt.Fprint(out, formatter.FormatCatalog(c))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Validate and print a catalog YAML file instead")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}
