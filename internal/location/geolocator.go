package location

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/ecocafe/internal/domain"
)

// ErrPositionUnavailable is returned when the device position cannot be
// acquired (no sensor, permission denied, timeout).
var ErrPositionUnavailable = errors.New("position unavailable")

// Geolocator is the single-shot device geolocation collaborator.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (domain.Coordinates, error)
}

// FixedGeolocator reports a preconfigured position.
type FixedGeolocator struct {
	Position domain.Coordinates
}

func (g FixedGeolocator) CurrentPosition(ctx context.Context) (domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: %w", ErrPositionUnavailable, err)
	}
	return g.Position, nil
}

// UnavailableGeolocator always fails, for hosts without a position source.
type UnavailableGeolocator struct{}

func (UnavailableGeolocator) CurrentPosition(context.Context) (domain.Coordinates, error) {
	return domain.Coordinates{}, ErrPositionUnavailable
}

// ParseCoordinates parses "lat,lng".
func ParseCoordinates(s string) (domain.Coordinates, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return domain.Coordinates{}, fmt.Errorf("coordinates %q: expected \"lat,lng\"", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("coordinates %q: invalid latitude: %w", s, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("coordinates %q: invalid longitude: %w", s, err)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return domain.Coordinates{}, fmt.Errorf("coordinates %q: out of range", s)
	}
	return domain.Coordinates{Lat: lat, Lng: lng}, nil
}

// NewGeolocator returns a FixedGeolocator for a non-empty "lat,lng" value and
// an UnavailableGeolocator otherwise.
func NewGeolocator(value string) (Geolocator, error) {
	if strings.TrimSpace(value) == "" {
		return UnavailableGeolocator{}, nil
	}
	c, err := ParseCoordinates(value)
	if err != nil {
		return nil, err
	}
	return FixedGeolocator{Position: c}, nil
}
