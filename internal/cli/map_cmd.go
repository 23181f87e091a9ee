package cli

import (
	"fmt"

	"github.com/alexanderramin/ecocafe/internal/cli/formatter"
	"github.com/alexanderramin/ecocafe/internal/service"
	"github.com/spf13/cobra"
)

func newMapCmd(app *App) *cobra.Command {
	var filter service.PointFilter

	cmd := &cobra.Command{
		Use:   "map",
		Short: "List surveyed cafes as map points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := app.Map.Points(cmd.Context(), filter)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPoints(points))
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Keyword, "keyword", "", "Filter by name or address")
	cmd.Flags().StringVar(&filter.Tag, "tag", "", "Filter by tag")

	cmd.AddCommand(&cobra.Command{
		Use:   "tags",
		Short: "List the tag filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTags(app.Map.TagPresets()))
			return nil
		},
	})

	return cmd
}
