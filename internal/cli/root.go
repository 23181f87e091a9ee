package cli

import (
	"context"
	"log/slog"

	"github.com/alexanderramin/ecocafe/internal/cache"
	"github.com/alexanderramin/ecocafe/internal/catalog"
	"github.com/alexanderramin/ecocafe/internal/httpapi"
	"github.com/alexanderramin/ecocafe/internal/location"
	"github.com/alexanderramin/ecocafe/internal/places"
	"github.com/alexanderramin/ecocafe/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// EventSource lists recently submitted results.
type EventSource interface {
	Recent(ctx context.Context, n int64) ([]cache.SubmittedEvent, error)
}

// App holds the services and collaborators used by CLI commands.
type App struct {
	Catalog     *catalog.Catalog
	Submissions service.SubmissionService
	Reports     service.ReportService
	Map         service.MapService
	Places      places.Searcher
	Geolocator  location.Geolocator

	// Events is nil when no Redis stream is configured.
	Events EventSource

	Logger   *slog.Logger
	HTTPAddr string

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool

	// RunProgram runs a bubbletea model to completion. Nil uses a full-screen
	// tea.Program.
	RunProgram func(m tea.Model) (tea.Model, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runProgram(m tea.Model) (tea.Model, error) {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	return tea.NewProgram(m, tea.WithAltScreen()).Run()
}

func (a *App) searcher() places.Searcher {
	if a.Places == nil {
		return places.Unavailable{}
	}
	return a.Places
}

func (a *App) container() *httpapi.Container {
	return &httpapi.Container{
		Catalog:     a.Catalog,
		Submissions: a.Submissions,
		Reports:     a.Reports,
		Map:         a.Map,
		Places:      a.searcher(),
		Logger:      a.Logger,
	}
}

// NewRootCmd creates the top-level "ecocafe" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "ecocafe",
		Short:         "탄소중립 매장 체크리스트",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSurveyCmd(app),
		newSearchCmd(app),
		newMapCmd(app),
		newReportCmd(app),
		newCatalogCmd(app),
		newServeCmd(app),
		newImportCmd(app),
		newEventsCmd(app),
	)

	return root
}
