package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/ecocafe/internal/domain"
)

var (
	// ErrInvalidResult is returned for a result that cannot be stored.
	ErrInvalidResult = errors.New("invalid survey result")

	// ErrEmptyReport is returned for a report with a blank message.
	ErrEmptyReport = errors.New("report message is empty")
)

// AnswerSubmission is a survey completed outside the engine, such as one
// posted over HTTP. Normalized answers and the grade are derived from the
// catalog; clients never supply them.
type AnswerSubmission struct {
	CafeName    string              `json:"cafeName"`
	CafeAddress string              `json:"cafeAddress,omitempty"`
	Location    *domain.Coordinates `json:"location,omitempty"`
	Answers     map[string]string   `json:"answers"`
	Selection   *domain.Selection   `json:"selectedCafe,omitempty"`
}

type SubmissionService interface {
	// Submit stores a finalized record, assigning ID and CreatedAt when
	// missing. Calls from different sessions run concurrently; each session
	// guards its own in-flight submission.
	Submit(ctx context.Context, rec *domain.ResultRecord) (*domain.ResultRecord, error)
	SubmitAnswers(ctx context.Context, in AnswerSubmission) (*domain.ResultRecord, error)
	// Import stores records atomically.
	Import(ctx context.Context, recs []*domain.ResultRecord) (int, error)
}

// ReportInput is a feedback message written from some screen.
type ReportInput struct {
	Context   string            `json:"context"`
	Message   string            `json:"message"`
	Selection *domain.Selection `json:"selectedCafe,omitempty"`
}

type ReportService interface {
	Submit(ctx context.Context, in ReportInput) (*domain.ReportRecord, error)
	List(ctx context.Context) ([]*domain.ReportRecord, error)
}

// PointFilter narrows map points. Empty fields match everything.
type PointFilter struct {
	Keyword string
	Tag     string
}

type MapService interface {
	Points(ctx context.Context, filter PointFilter) ([]domain.ResultPoint, error)
	// TagPresets lists the tags offered as map filters, in catalog order.
	TagPresets() []string
}

// PointCache caches the unfiltered point list. Get reports the cache
// version on a miss; Set with a version older than the latest Invalidate
// must not become visible.
type PointCache interface {
	Get(ctx context.Context) (points []domain.ResultPoint, version int64, ok bool, err error)
	Set(ctx context.Context, version int64, points []domain.ResultPoint) error
	Invalidate(ctx context.Context) error
}

// ResultPublisher announces stored results to downstream consumers.
type ResultPublisher interface {
	PublishSubmitted(ctx context.Context, rec *domain.ResultRecord) error
}
