package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/ecocafe/internal/cli/formatter"
	"github.com/spf13/cobra"
)

var errNoEventStream = errors.New("event stream unavailable: set ECOCAFE_REDIS_URL")

func newEventsCmd(app *App) *cobra.Command {
	var n int64

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show recently submitted results from the event stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Events == nil {
				return errNoEventStream
			}
			events, err := app.Events.Recent(cmd.Context(), n)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEvents(events))
			return nil
		},
	}

	cmd.Flags().Int64VarP(&n, "count", "n", 10, "Number of events")

	return cmd
}
