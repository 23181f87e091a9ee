package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/ecocafe/internal/catalog"
	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/alexanderramin/ecocafe/internal/repository"
)

type mapService struct {
	results  repository.ResultRepo
	catalog  *catalog.Catalog
	cache    PointCache
	observer UseCaseObserver
}

// NewMapService builds the map query service. cache may be nil.
func NewMapService(results repository.ResultRepo, c *catalog.Catalog, cache PointCache, observers ...UseCaseObserver) MapService {
	return &mapService{
		results:  results,
		catalog:  c,
		cache:    cache,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *mapService) Points(ctx context.Context, filter PointFilter) (points []domain.ResultPoint, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"keyword": filter.Keyword, "tag": filter.Tag}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "map-points",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	all, err := s.allPoints(ctx, fields)
	if err != nil {
		return nil, err
	}
	points = make([]domain.ResultPoint, 0, len(all))
	for _, p := range all {
		if filter.Match(p) {
			points = append(points, p)
		}
	}
	fields["total"] = len(all)
	fields["matched"] = len(points)
	return points, nil
}

func (s *mapService) TagPresets() []string {
	return TagPresets(s.catalog)
}

// allPoints reads through the cache. Cache failures fall back to the store.
func (s *mapService) allPoints(ctx context.Context, fields map[string]any) ([]domain.ResultPoint, error) {
	var version int64
	useCache := s.cache != nil
	if useCache {
		cached, v, ok, err := s.cache.Get(ctx)
		version = v
		switch {
		case err != nil:
			fields["cache_error"] = err.Error()
			useCache = false
		case ok:
			fields["cache"] = "hit"
			return cached, nil
		default:
			fields["cache"] = "miss"
		}
	}

	recs, err := s.results.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing results: %w", err)
	}
	points := make([]domain.ResultPoint, 0, len(recs))
	for _, rec := range recs {
		points = append(points, ToPoint(s.catalog, rec))
	}

	if useCache {
		if err := s.cache.Set(ctx, version, points); err != nil {
			fields["cache_error"] = err.Error()
		}
	}
	return points, nil
}
