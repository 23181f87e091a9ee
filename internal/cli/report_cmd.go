package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ecocafe/internal/cli/formatter"
	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/alexanderramin/ecocafe/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	var in service.ReportInput
	var cafe string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Send a bug report or suggestion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(in.Message) == "" && app.interactive() {
				if err := reportForm(&in).Run(); err != nil {
					return err
				}
			}
			if cafe != "" {
				in.Selection = &domain.Selection{Name: cafe}
			}
			if _, err := app.Reports.Submit(cmd.Context(), in); err != nil {
				return asUserError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render(statusReportSent))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Context, "context", string(domain.ContextMenu), "Screen the report is about (survey, mapSearch, mapOverview, menu)")
	cmd.Flags().StringVar(&in.Message, "message", "", "Report text")
	cmd.Flags().StringVar(&cafe, "cafe", "", "Cafe the report refers to")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List received reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := app.Reports.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReports(reports))
			return nil
		},
	})

	return cmd
}

// reportForm collects the context and message of a report.
func reportForm(in *service.ReportInput) *huh.Form {
	contexts := []domain.ReportContext{
		domain.ContextSurvey, domain.ContextMapSearch, domain.ContextMapOverview, domain.ContextMenu,
	}
	options := make([]huh.Option[string], 0, len(contexts))
	for _, c := range contexts {
		options = append(options, huh.NewOption(c.Label(), string(c)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("화면").
				Options(options...).
				Value(&in.Context),
			huh.NewText().
				Title("의견").
				Placeholder("버그 신고, 개선 아이디어, 잘못된 정보 등을 알려주세요.").
				Value(&in.Message).
				Validate(validateReportMessage),
		),
	).WithTheme(ecocafeHuhTheme()).WithShowHelp(false)
}

func validateReportMessage(s string) error {
	if strings.TrimSpace(s) == "" {
		return service.ErrEmptyReport
	}
	return nil
}
