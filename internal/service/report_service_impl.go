package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/alexanderramin/ecocafe/internal/repository"
	"github.com/google/uuid"
)

type reportService struct {
	reports  repository.ReportRepo
	observer UseCaseObserver
	now      func() time.Time
}

func NewReportService(reports repository.ReportRepo, observers ...UseCaseObserver) ReportService {
	return &reportService{
		reports:  reports,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *reportService) Submit(ctx context.Context, in ReportInput) (rep *domain.ReportRecord, err error) {
	startedAt := s.now().UTC()
	reportCtx := normalizeReportContext(in.Context)
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "submit-report",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"context": string(reportCtx)},
		})
	}()

	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return nil, ErrEmptyReport
	}
	rep = &domain.ReportRecord{
		ID:           uuid.New().String(),
		Context:      reportCtx,
		ContextLabel: reportCtx.Label(),
		Message:      msg,
		Selection:    in.Selection,
		CreatedAt:    startedAt,
	}
	if err = s.reports.Create(ctx, rep); err != nil {
		return nil, fmt.Errorf("storing report: %w", err)
	}
	return rep, nil
}

func (s *reportService) List(ctx context.Context) ([]*domain.ReportRecord, error) {
	return s.reports.List(ctx)
}

// normalizeReportContext maps unknown contexts to the menu.
func normalizeReportContext(c string) domain.ReportContext {
	if domain.ValidReportContexts[c] {
		return domain.ReportContext(c)
	}
	return domain.ContextMenu
}
