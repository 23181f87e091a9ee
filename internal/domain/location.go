package domain

import "fmt"

// Seoul City Hall, used when a stored result carries no usable coordinates.
const (
	DefaultLat = 37.5665
	DefaultLng = 126.9780
)

type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.5f,%.5f", c.Lat, c.Lng)
}

// Selection is a place chosen through the map/search collaborator. It takes
// precedence over manually entered subject info.
type Selection struct {
	ID      string  `json:"id,omitempty" bson:"id,omitempty"`
	Name    string  `json:"name" bson:"name"`
	Lat     float64 `json:"lat" bson:"lat"`
	Lng     float64 `json:"lng" bson:"lng"`
	Address string  `json:"address,omitempty" bson:"address,omitempty"`
}

// Coordinates returns the selection's position.
func (s Selection) Coordinates() Coordinates {
	return Coordinates{Lat: s.Lat, Lng: s.Lng}
}

// HasCoordinates reports whether the selection carries a non-zero position.
func (s Selection) HasCoordinates() bool {
	return s.Lat != 0 && s.Lng != 0
}

// SubjectInfo identifies the cafe being assessed.
type SubjectInfo struct {
	Name        string
	GPSEnabled  bool
	Coordinates *Coordinates
	Address     string
}
