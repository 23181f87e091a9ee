package survey

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/ecocafe/internal/catalog"
	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/alexanderramin/ecocafe/internal/location"
)

// ErrSubjectRequired is returned when the survey is started without a cafe
// name or an external selection.
var ErrSubjectRequired = errors.New("cafe name or map selection required")

// ErrSubmitInFlight is returned when the session's result is already being
// submitted.
var ErrSubmitInFlight = errors.New("submission already in progress")

// Session ties one engine to the subject it assesses. It is owned by a
// single caller and discarded when the survey is submitted or abandoned.
type Session struct {
	*Engine
	binder *location.Binder

	submitting atomic.Bool
}

func NewSession(c *catalog.Catalog, geo location.Geolocator) *Session {
	return &Session{
		Engine: NewEngine(c),
		binder: location.NewBinder(geo),
	}
}

func (s *Session) Binder() *location.Binder { return s.binder }

// Subject returns the current subject info.
func (s *Session) Subject() domain.SubjectInfo { return s.binder.Subject() }

// Selection returns the bound external selection, if any.
func (s *Session) Selection() *domain.Selection { return s.binder.External() }

// SelectPlace binds an external selection; it overrides any device fix.
func (s *Session) SelectPlace(sel *domain.Selection) { s.binder.SetExternal(sel) }

func (s *Session) SetName(name string)       { s.binder.SetName(name) }
func (s *Session) SetAddress(address string) { s.binder.SetAddress(address) }

// CanStart reports whether the subject is identified well enough to begin.
func (s *Session) CanStart() bool {
	return s.binder.Subject().Name != "" || s.binder.External() != nil
}

// StartSurvey applies the subject guard before entering the first section.
func (s *Session) StartSurvey() error {
	if !s.CanStart() {
		return ErrSubjectRequired
	}
	return s.Engine.StartSurvey()
}

// BeginLocate reports whether a device geolocation request should be issued
// now. Requests are only made on the cafe info step.
func (s *Session) BeginLocate() bool {
	if s.State().Step != StepCafeInfo {
		return false
	}
	return s.binder.BeginLocate()
}

// Locate performs a synchronous geolocation request when one is due.
func (s *Session) Locate(ctx context.Context) bool {
	if s.State().Step != StepCafeInfo {
		return false
	}
	return s.binder.Locate(ctx)
}

// Record finalizes the session into a result record. Manually entered
// subject fields win over the selection's, and a selection with a position
// counts as GPS-enabled.
func (s *Session) Record(now time.Time) domain.ResultRecord {
	subject := s.binder.Subject()
	sel := s.binder.External()

	rec := domain.ResultRecord{
		SubjectName:       subject.Name,
		SubjectAddress:    subject.Address,
		GPSEnabled:        subject.GPSEnabled,
		Coordinates:       subject.Coordinates,
		RawAnswers:        s.answers.RawMap(),
		NormalizedAnswers: s.answers.NormalizedMap(),
		Grade:             s.Grade(),
		Selection:         sel,
		CreatedAt:         now.UTC(),
	}
	if sel != nil {
		rec.SubjectName = domain.CoalesceStr(subject.Name, sel.Name)
		rec.SubjectAddress = domain.CoalesceStr(subject.Address, sel.Address)
		if rec.Coordinates == nil {
			c := sel.Coordinates()
			rec.Coordinates = &c
		}
		rec.GPSEnabled = subject.GPSEnabled || sel.HasCoordinates()
	}
	return rec
}

// BeginSubmit claims the session's single submission slot. It returns
// ErrSubmitInFlight until EndSubmit releases the slot.
func (s *Session) BeginSubmit() error {
	if !s.submitting.CompareAndSwap(false, true) {
		return ErrSubmitInFlight
	}
	return nil
}

func (s *Session) EndSubmit() { s.submitting.Store(false) }

// Submitting reports whether a submission is outstanding.
func (s *Session) Submitting() bool { return s.submitting.Load() }
