package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import results from a JSON array (\"-\" reads stdin)",
		Long: "Import finalized survey results exported from another store. " +
			"The import is all-or-nothing: one invalid record stores none.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening import file: %w", err)
				}
				defer f.Close()
				r = f
			}

			var recs []*domain.ResultRecord
			if err := json.NewDecoder(r).Decode(&recs); err != nil {
				return fmt.Errorf("decoding import file: %w", err)
			}
			n, err := app.Submissions.Import(cmd.Context(), recs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d건 가져왔습니다.\n", n)
			return nil
		},
	}
}
