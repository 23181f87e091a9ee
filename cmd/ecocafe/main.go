package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexanderramin/ecocafe/internal/cache"
	"github.com/alexanderramin/ecocafe/internal/catalog"
	"github.com/alexanderramin/ecocafe/internal/cli"
	"github.com/alexanderramin/ecocafe/internal/config"
	"github.com/alexanderramin/ecocafe/internal/db"
	"github.com/alexanderramin/ecocafe/internal/location"
	"github.com/alexanderramin/ecocafe/internal/places"
	"github.com/alexanderramin/ecocafe/internal/repository"
	"github.com/alexanderramin/ecocafe/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return err
	}

	results, reports, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// Logs go to stderr so they never corrupt the TUI on stdout.
	var logOut io.Writer = io.Discard
	if cfg.LogUseCases {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelInfo}))
	var obs service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		obs = service.NewSlogUseCaseObserver(logger)
	}

	subOpts := []service.SubmissionOption{service.WithSubmissionObserver(obs)}
	var pointCache service.PointCache
	var events cli.EventSource
	if cfg.CacheEnabled() {
		rdb, err := cache.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		pointCache = cache.NewPointCache(rdb, cfg.CacheTTL)
		stream := cache.NewResultStream(rdb)
		events = stream
		subOpts = append(subOpts, service.WithPointCache(pointCache), service.WithPublisher(stream))
	}

	geo, err := location.NewGeolocator(cfg.Geo)
	if err != nil {
		return fmt.Errorf("ECOCAFE_GEO: %w", err)
	}

	searcher := places.NewKakaoSearcher(places.KakaoConfig{
		RESTKey:    cfg.KakaoRESTKey,
		Endpoint:   cfg.KakaoEndpoint,
		Timeout:    cfg.SearchTimeout,
		MaxRetries: cfg.KakaoMaxRetries,
	})

	app := &cli.App{
		Catalog:     cat,
		Submissions: service.NewSubmissionService(results, cat, subOpts...),
		Reports:     service.NewReportService(reports, obs),
		Map:         service.NewMapService(results, cat, pointCache, obs),
		Places:      searcher,
		Geolocator:  geo,
		Events:      events,
		Logger:      logger,
		HTTPAddr:    cfg.HTTPAddr,
	}

	// Detect interactive terminal for prompts and spinners.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// openStore connects the configured backend and returns its repositories
// with a close function.
func openStore(ctx context.Context, cfg config.Config) (repository.ResultRepo, repository.ReportRepo, func(), error) {
	switch cfg.Store {
	case config.StoreMongo:
		client, database, err := db.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		return repository.NewMongoResultRepo(database), repository.NewMongoReportRepo(database), closeFn, nil

	case config.StorePostgres:
		pool, err := db.ConnectPostgres(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, nil, err
		}
		return repository.NewPgResultRepo(pool), repository.NewPgReportRepo(pool), pool.Close, nil

	default:
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening database: %w", err)
		}
		uow := db.NewSQLiteUnitOfWork(database)
		closeFn := func() { _ = database.Close() }
		return repository.NewSQLiteResultRepoWithUoW(database, uow), repository.NewSQLiteReportRepo(database), closeFn, nil
	}
}
