package testutil

import (
	"time"

	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/google/uuid"
)

// Result options
type ResultOption func(*domain.ResultRecord)

func WithAddress(addr string) ResultOption {
	return func(r *domain.ResultRecord) {
		r.SubjectAddress = addr
	}
}

func WithCoordinates(lat, lng float64) ResultOption {
	return func(r *domain.ResultRecord) {
		r.Coordinates = &domain.Coordinates{Lat: lat, Lng: lng}
		r.GPSEnabled = true
	}
}

func WithoutCoordinates() ResultOption {
	return func(r *domain.ResultRecord) {
		r.Coordinates = nil
		r.GPSEnabled = false
	}
}

// WithAnswer records a raw label and its normalized value.
func WithAnswer(questionID, label string) ResultOption {
	return func(r *domain.ResultRecord) {
		r.RawAnswers[questionID] = label
		var v *bool
		switch label {
		case "예":
			b := true
			v = &b
		case "아니요":
			b := false
			v = &b
		}
		r.NormalizedAnswers[questionID] = v
	}
}

func WithGrade(tier domain.GradeTier, stars int, percent float64) ResultOption {
	return func(r *domain.ResultRecord) {
		r.Grade.Tier = tier
		r.Grade.Stars = stars
		r.Grade.Percent = percent
	}
}

func WithSelection(sel domain.Selection) ResultOption {
	return func(r *domain.ResultRecord) {
		r.Selection = &sel
	}
}

func WithTags(tags ...string) ResultOption {
	return func(r *domain.ResultRecord) {
		r.Tags = tags
	}
}

func WithCreatedAt(t time.Time) ResultOption {
	return func(r *domain.ResultRecord) {
		r.CreatedAt = t.UTC()
	}
}

func NewTestResult(name string, opts ...ResultOption) *domain.ResultRecord {
	r := &domain.ResultRecord{
		ID:                uuid.New().String(),
		SubjectName:       name,
		GPSEnabled:        true,
		Coordinates:       &domain.Coordinates{Lat: 37.5665, Lng: 126.9780},
		RawAnswers:        map[string]string{},
		NormalizedAnswers: map[string]*bool{},
		Grade: domain.Grade{
			Tier:    domain.TierBasic,
			Icon:    "🪴",
			Stars:   1,
			Message: "작은 습관부터 하나씩 실천해 보세요.",
			Percent: 50,
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report options
type ReportOption func(*domain.ReportRecord)

func WithReportContext(c domain.ReportContext) ReportOption {
	return func(r *domain.ReportRecord) {
		r.Context = c
		r.ContextLabel = c.Label()
	}
}

func WithReportSelection(sel domain.Selection) ReportOption {
	return func(r *domain.ReportRecord) {
		r.Selection = &sel
	}
}

func WithReportCreatedAt(t time.Time) ReportOption {
	return func(r *domain.ReportRecord) {
		r.CreatedAt = t.UTC()
	}
}

func NewTestReport(message string, opts ...ReportOption) *domain.ReportRecord {
	r := &domain.ReportRecord{
		ID:           uuid.New().String(),
		Context:      domain.ContextMenu,
		ContextLabel: domain.ContextMenu.Label(),
		Message:      message,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
