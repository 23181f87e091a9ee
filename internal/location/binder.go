// Package location reconciles an externally selected place and device
// geolocation into the subject record of a survey session.
package location

import (
	"context"

	"github.com/alexanderramin/ecocafe/internal/domain"
)

// Binder owns a session's SubjectInfo. An external selection always
// overrides device geolocation; geolocation is requested at most once per
// successful fix and never while a selection is bound.
//
// Binder is not safe for concurrent use; callers serialize access the same
// way they serialize engine transitions.
type Binder struct {
	geo      Geolocator
	subject  domain.SubjectInfo
	external *domain.Selection

	pending bool
	located bool
}

func NewBinder(geo Geolocator) *Binder {
	if geo == nil {
		geo = UnavailableGeolocator{}
	}
	return &Binder{geo: geo}
}

// Subject returns a copy of the current subject info.
func (b *Binder) Subject() domain.SubjectInfo {
	s := b.subject
	if s.Coordinates != nil {
		c := *s.Coordinates
		s.Coordinates = &c
	}
	return s
}

// External returns the bound external selection, if any.
func (b *Binder) External() *domain.Selection {
	if b.external == nil {
		return nil
	}
	sel := *b.external
	return &sel
}

func (b *Binder) SetName(name string) {
	b.subject.Name = name
}

func (b *Binder) SetAddress(address string) {
	b.subject.Address = address
}

// SetExternal binds a selection from the map collaborator and copies its
// identity into the subject. Binding an identical selection again is a
// no-op; nil clears the binding but keeps the subject fields.
func (b *Binder) SetExternal(sel *domain.Selection) {
	if sel == nil {
		b.external = nil
		return
	}
	if b.external != nil && *b.external == *sel {
		return
	}
	bound := *sel
	b.external = &bound
	coords := bound.Coordinates()
	b.subject.Name = bound.Name
	b.subject.Coordinates = &coords
	b.subject.Address = bound.Address
}

// BeginLocate reports whether a geolocation request should be issued now,
// and if so marks it outstanding. The caller is responsible for only asking
// while the session is on the cafe info step.
func (b *Binder) BeginLocate() bool {
	if b.external != nil || b.pending || b.located {
		return false
	}
	b.pending = true
	return true
}

// ApplyFix records the outcome of a geolocation request. A result that
// arrives after an external selection was bound is discarded.
func (b *Binder) ApplyFix(c domain.Coordinates, err error) {
	b.pending = false
	if b.external != nil {
		return
	}
	if err != nil {
		b.subject.GPSEnabled = false
		b.subject.Coordinates = nil
		return
	}
	b.located = true
	b.subject.GPSEnabled = true
	b.subject.Coordinates = &c
}

// Locate runs BeginLocate, the collaborator call and ApplyFix in one step.
// It reports whether a request was issued.
func (b *Binder) Locate(ctx context.Context) bool {
	if !b.BeginLocate() {
		return false
	}
	c, err := b.geo.CurrentPosition(ctx)
	b.ApplyFix(c, err)
	return true
}

// Geolocator returns the collaborator used for asynchronous requests.
func (b *Binder) Geolocator() Geolocator {
	return b.geo
}
