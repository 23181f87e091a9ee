package cli

import (
	"fmt"

	"github.com/alexanderramin/ecocafe/internal/cli/formatter"
	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/spf13/cobra"
)

func newSurveyCmd(app *App) *cobra.Command {
	var name, address, search string
	var pick int

	cmd := &cobra.Command{
		Use:   "survey",
		Short: "Run the self-assessment survey",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var sel *domain.Selection
			if search != "" {
				place, err := choosePlace(cmd, app, search, pick)
				if err != nil {
					return asUserError(err)
				}
				sel = place.Selection()
			}

			m := newSurveyModel(ctx, app, sel)
			m.prefill(name, address)
			final, err := app.runProgram(m)
			if err != nil {
				return fmt.Errorf("running survey: %w", err)
			}
			if done, ok := final.(surveyModel); ok && done.submitted != nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatResult(done.submitted))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Cafe name")
	cmd.Flags().StringVar(&address, "address", "", "Address or note")
	cmd.Flags().StringVar(&search, "search", "", "Search for the cafe and bind the chosen place")
	cmd.Flags().IntVar(&pick, "pick", 0, "Choose the Nth search result without prompting")

	return cmd
}
