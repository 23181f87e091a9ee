// Package places implements the map/search collaborator: keyword search
// over a place directory, returning candidates a survey can bind to.
package places

import (
	"context"

	"github.com/alexanderramin/ecocafe/internal/domain"
)

// Place is one search candidate.
type Place struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// Selection converts a chosen place into the survey's external selection.
func (p Place) Selection() *domain.Selection {
	return &domain.Selection{ID: p.ID, Name: p.Name, Lat: p.Lat, Lng: p.Lng, Address: p.Address}
}

// Searcher finds places by keyword, optionally biased toward a position.
type Searcher interface {
	Search(ctx context.Context, query string, near *domain.Coordinates) ([]Place, error)
}

// Unavailable is the Searcher used when no API key is configured.
type Unavailable struct{}

func (Unavailable) Search(context.Context, string, *domain.Coordinates) ([]Place, error) {
	return nil, ErrSearchUnavailable
}
