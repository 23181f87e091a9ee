package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ecocafe/internal/catalog"
	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/alexanderramin/ecocafe/internal/repository"
	"github.com/alexanderramin/ecocafe/internal/survey"
	"github.com/google/uuid"
)

type submissionService struct {
	results   repository.ResultRepo
	catalog   *catalog.Catalog
	cache     PointCache
	publisher ResultPublisher
	observer  UseCaseObserver
	now       func() time.Time
}

// SubmissionOption configures optional collaborators.
type SubmissionOption func(*submissionService)

func WithPointCache(c PointCache) SubmissionOption {
	return func(s *submissionService) { s.cache = c }
}

func WithPublisher(p ResultPublisher) SubmissionOption {
	return func(s *submissionService) { s.publisher = p }
}

func WithSubmissionObserver(o UseCaseObserver) SubmissionOption {
	return func(s *submissionService) {
		if o != nil {
			s.observer = o
		}
	}
}

func withClock(now func() time.Time) SubmissionOption {
	return func(s *submissionService) { s.now = now }
}

func NewSubmissionService(results repository.ResultRepo, c *catalog.Catalog, opts ...SubmissionOption) SubmissionService {
	s := &submissionService{
		results:  results,
		catalog:  c,
		observer: NoopUseCaseObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *submissionService) Submit(ctx context.Context, rec *domain.ResultRecord) (stored *domain.ResultRecord, err error) {
	startedAt := s.now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "submit-result",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = s.prepare(rec, startedAt); err != nil {
		return nil, err
	}
	fields["cafe"] = rec.SubjectName
	fields["result_id"] = rec.ID
	fields["tier"] = string(rec.Grade.Tier)

	if err = s.results.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("storing result: %w", err)
	}
	s.afterStore(ctx, fields, rec)
	return rec, nil
}

func (s *submissionService) SubmitAnswers(ctx context.Context, in AnswerSubmission) (*domain.ResultRecord, error) {
	rec, err := s.recordFromAnswers(in)
	if err != nil {
		return nil, err
	}
	return s.Submit(ctx, rec)
}

func (s *submissionService) Import(ctx context.Context, recs []*domain.ResultRecord) (n int, err error) {
	startedAt := s.now().UTC()
	fields := map[string]any{"count": len(recs)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-results",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	for i, rec := range recs {
		if err = s.prepare(rec, startedAt); err != nil {
			return 0, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	if err = s.results.CreateAll(ctx, recs); err != nil {
		return 0, fmt.Errorf("importing results: %w", err)
	}
	if s.cache != nil {
		if cerr := s.cache.Invalidate(ctx); cerr != nil {
			fields["cache_error"] = cerr.Error()
		}
	}
	return len(recs), nil
}

// prepare validates rec and fills server-assigned fields.
func (s *submissionService) prepare(rec *domain.ResultRecord, now time.Time) error {
	if rec == nil {
		return fmt.Errorf("%w: nil record", ErrInvalidResult)
	}
	if strings.TrimSpace(rec.SubjectName) == "" {
		return fmt.Errorf("%w: cafe name is required", ErrInvalidResult)
	}
	switch rec.Grade.Tier {
	case domain.TierExcellent, domain.TierGood, domain.TierBasic:
	default:
		return fmt.Errorf("%w: unknown grade %q", ErrInvalidResult, rec.Grade.Tier)
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.RawAnswers == nil {
		rec.RawAnswers = map[string]string{}
	}
	if rec.NormalizedAnswers == nil {
		rec.NormalizedAnswers = map[string]*bool{}
	}
	rec.Tags = DeriveTags(s.catalog, rec)
	return nil
}

// afterStore refreshes derived views. Failures are recorded on the use-case
// event but never fail a submission that is already stored.
func (s *submissionService) afterStore(ctx context.Context, fields map[string]any, rec *domain.ResultRecord) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			fields["cache_error"] = err.Error()
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishSubmitted(ctx, rec); err != nil {
			fields["publish_error"] = err.Error()
		}
	}
}

func (s *submissionService) recordFromAnswers(in AnswerSubmission) (*domain.ResultRecord, error) {
	for id, label := range in.Answers {
		if _, ok := s.catalog.Locate(id); !ok {
			return nil, fmt.Errorf("%w: unknown question %q", ErrInvalidResult, id)
		}
		if !survey.ValidLabel(label) {
			return nil, fmt.Errorf("%w: answer %q for %s", ErrInvalidResult, label, id)
		}
	}
	answers := survey.AnswerSetFrom(in.Answers)
	rec := &domain.ResultRecord{
		SubjectName:       domain.CoalesceStr(strings.TrimSpace(in.CafeName), selectionName(in.Selection)),
		SubjectAddress:    domain.CoalesceStr(strings.TrimSpace(in.CafeAddress), selectionAddress(in.Selection)),
		Coordinates:       in.Location,
		RawAnswers:        answers.RawMap(),
		NormalizedAnswers: answers.NormalizedMap(),
		Grade:             survey.ComputeGrade(s.catalog, answers),
		Selection:         in.Selection,
	}
	rec.GPSEnabled = in.Location != nil
	if in.Selection != nil {
		if rec.Coordinates == nil {
			c := in.Selection.Coordinates()
			rec.Coordinates = &c
		}
		rec.GPSEnabled = rec.GPSEnabled || in.Selection.HasCoordinates()
	}
	return rec, nil
}

func selectionName(sel *domain.Selection) string {
	if sel == nil {
		return ""
	}
	return sel.Name
}

func selectionAddress(sel *domain.Selection) string {
	if sel == nil {
		return ""
	}
	return sel.Address
}
