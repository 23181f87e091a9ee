package cli

import (
	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/alexanderramin/ecocafe/internal/location"
	"github.com/spf13/pflag"
)

// coordsValue is a "lat,lng" flag. A nil target means the flag was not set.
type coordsValue struct {
	target **domain.Coordinates
}

var _ pflag.Value = coordsValue{}

func newCoordsValue(p **domain.Coordinates) coordsValue {
	return coordsValue{target: p}
}

func (v coordsValue) String() string {
	if v.target == nil || *v.target == nil {
		return ""
	}
	return (*v.target).String()
}

func (v coordsValue) Set(s string) error {
	c, err := location.ParseCoordinates(s)
	if err != nil {
		return err
	}
	*v.target = &c
	return nil
}

func (coordsValue) Type() string { return "lat,lng" }
