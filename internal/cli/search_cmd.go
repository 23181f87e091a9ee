package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/ecocafe/internal/cli/formatter"
	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/alexanderramin/ecocafe/internal/places"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// errNotConfirmed is returned when the user declines the chosen place.
var errNotConfirmed = errors.New("선택을 취소했습니다.")

func newSearchCmd(app *App) *cobra.Command {
	var near *domain.Coordinates

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search places by keyword (카페명, 주소)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := searchPlaces(cmd, app, strings.Join(args, " "), near)
			if err != nil {
				return asUserError(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlaces(found))
			return nil
		},
	}

	cmd.Flags().Var(newCoordsValue(&near), "near", "Bias results toward \"lat,lng\"")

	return cmd
}

// searchPlaces runs the search, animating a spinner on interactive
// terminals.
func searchPlaces(cmd *cobra.Command, app *App, query string, near *domain.Coordinates) ([]places.Place, error) {
	if app.interactive() {
		stop := formatter.StartSpinner(cmd.ErrOrStderr(), statusSearching)
		defer stop()
	}
	return app.searcher().Search(cmd.Context(), query, near)
}

// choosePlace searches for query and returns the place to bind: the Nth
// result when pick is set, a prompted choice on a terminal, and the first
// result otherwise.
func choosePlace(cmd *cobra.Command, app *App, query string, pick int) (places.Place, error) {
	var near *domain.Coordinates
	if app.Geolocator != nil {
		if c, err := app.Geolocator.CurrentPosition(cmd.Context()); err == nil {
			near = &c
		}
	}
	found, err := searchPlaces(cmd, app, query, near)
	if err != nil {
		return places.Place{}, err
	}
	if len(found) == 0 {
		return places.Place{}, places.ErrNoResults
	}

	switch {
	case pick > 0:
		if pick > len(found) {
			return places.Place{}, fmt.Errorf("--pick %d: only %d results", pick, len(found))
		}
		return found[pick-1], nil
	case app.interactive():
		return promptPlace(found)
	default:
		return found[0], nil
	}
}

func promptPlace(found []places.Place) (places.Place, error) {
	options := make([]huh.Option[int], 0, len(found))
	for i, p := range found {
		label := p.Name
		if p.Address != "" {
			label = fmt.Sprintf("%s (%s)", p.Name, p.Address)
		}
		options = append(options, huh.NewOption(label, i))
	}

	var idx int
	confirmed := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("검색 결과").
				Options(options...).
				Value(&idx),
		),
		huh.NewGroup(
			huh.NewConfirm().
				TitleFunc(func() string {
					return fmt.Sprintf("%s 카페가 맞습니까?", found[idx].Name)
				}, &idx).
				Affirmative("예").
				Negative("아니요").
				Value(&confirmed),
		),
	).WithTheme(ecocafeHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return places.Place{}, err
	}
	if !confirmed {
		return places.Place{}, errNotConfirmed
	}
	return found[idx], nil
}
