package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/juju/clock"

	"ProfileScanner/internal/classify"
	"ProfileScanner/internal/config"
	"ProfileScanner/internal/enrich"
	"ProfileScanner/internal/infrastructure/httpapi"
	"ProfileScanner/internal/infrastructure/llm"
	"ProfileScanner/internal/infrastructure/scheduler"
	"ProfileScanner/internal/infrastructure/storage/memory"
	"ProfileScanner/internal/infrastructure/storage/postgres"
	"ProfileScanner/internal/infrastructure/telegram"
	"ProfileScanner/internal/infrastructure/websearch"
	"ProfileScanner/internal/logging"
	"ProfileScanner/internal/normalize"
	"ProfileScanner/internal/ports"
	"ProfileScanner/internal/score"
	"ProfileScanner/internal/search"
	"ProfileScanner/internal/upsert"
	"ProfileScanner/internal/usecase"
)

// Job names accepted by RunJob.
const (
	JobHarvest  = "harvest"
	JobSync     = "sync"
	JobEnrich   = "enrich"
	JobPrime    = "prime"
	JobRank     = "rank"
	JobPipeline = "pipeline"
	JobServe    = "serve"
	JobMigrate  = "migrate"
)

// Jobs lists the job names in usage order.
var Jobs = []string{JobHarvest, JobSync, JobEnrich, JobPrime, JobRank, JobPipeline, JobServe, JobMigrate}

// Options overrides collaborators, mainly for tests.
type Options struct {
	Store    ports.RecordStore
	Registry *search.Registry
	Client   ports.CompletionClient
	Notifier ports.Notifier
	Clock    clock.Clock
}

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg         config.Config
	logger      *slog.Logger
	clock       clock.Clock
	store       ports.RecordStore
	registry    *search.Registry
	coordinator *upsert.Coordinator
	client      ports.CompletionClient
	notifier    ports.Notifier
}

// New opens the store and builds the shared collaborators.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger, opts Options) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, "")
	}
	if opts.Clock == nil {
		opts.Clock = clock.WallClock
	}

	store := opts.Store
	if store == nil {
		var err error
		if store, err = openStore(ctx, cfg.Database); err != nil {
			return nil, err
		}
	}

	registry := opts.Registry
	if registry == nil {
		registry = search.NewRegistry()
		registry.Register(websearch.NewGoogle(websearch.GoogleConfig{
			Endpoint:          cfg.Search.Endpoint,
			APIKey:            cfg.Search.APIKey,
			CX:                cfg.Search.CX,
			RequestsPerSecond: cfg.Search.RequestsPerSecond,
			BackfillMeta:      cfg.Search.BackfillMeta,
		}, nil, baseLogger.With("component", "search.google")))
	}

	rules := normalize.DefaultRules()
	if len(cfg.Upsert.DescriptionMarkers) > 0 {
		rules.Description = normalize.DescriptionFunc(cfg.Upsert.DescriptionMarkers...)
	}
	coordinator, err := upsert.NewCoordinator(upsert.Config{
		Writer:          store,
		Differ:          upsert.NewDiffer(rules),
		Clock:           opts.Clock,
		PageSize:        cfg.Upsert.PageSize,
		BatchSize:       cfg.Upsert.BatchSize,
		MaxSkippedPages: cfg.Upsert.MaxSkippedPages,
		Logger:          baseLogger.With("component", "upsert"),
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	client := opts.Client
	if client == nil && cfg.Completion.APIKey != "" {
		client = llm.NewChatGPTClient(cfg.Completion)
	}

	notifier := opts.Notifier
	if notifier == nil && cfg.Notifications.Telegram.Enabled() {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	return &Application{
		cfg:         cfg,
		logger:      baseLogger,
		clock:       opts.Clock,
		store:       store,
		registry:    registry,
		coordinator: coordinator,
		client:      client,
		notifier:    notifier,
	}, nil
}

func openStore(ctx context.Context, db config.DatabaseConfig) (ports.RecordStore, error) {
	switch db.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nil
	case config.DriverPostgres, config.DriverPGX:
		store, err := postgres.Open(ctx, db.Driver, db.DSN, db.MaxOpenConns)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown database driver %q", db.Driver)
}

// Close releases the store.
func (a *Application) Close() error {
	return a.store.Close()
}

// Migrate applies the schema.
func (a *Application) Migrate(ctx context.Context) error {
	return a.store.EnsureSchema(ctx)
}

// Harvest runs every configured query once.
func (a *Application) Harvest(ctx context.Context) (upsert.Summary, error) {
	harvester, err := usecase.NewHarvester(usecase.HarvestDeps{
		Registry:         a.registry,
		ProviderName:     a.cfg.Search.Provider,
		Store:            a.store,
		Coordinator:      a.coordinator,
		Queries:          a.cfg.Search.Queries,
		MaxResults:       a.cfg.Search.MaxResults,
		SnapshotPageSize: a.cfg.Upsert.PageSize,
		Logger:           a.logger.With("component", "harvest"),
	})
	if err != nil {
		return upsert.Summary{}, err
	}
	return harvester.Run(ctx)
}

// Sync rebuilds processed_results from search_results.
func (a *Application) Sync(ctx context.Context) (upsert.Summary, error) {
	return usecase.NewSyncer(a.store, a.coordinator, a.cfg.Upsert.PageSize).Run(ctx)
}

// Enrich runs the named enrichment task.
func (a *Application) Enrich(ctx context.Context, name string) (enrich.Report, error) {
	settings := a.cfg.Task(name)
	task, err := enrich.NewTask(name, enrich.Settings{
		Model:       settings.Model,
		MaxTokens:   settings.MaxTokens,
		Temperature: settings.Temperature,
	})
	if err != nil {
		return enrich.Report{}, err
	}
	if a.client == nil {
		return enrich.Report{}, fmt.Errorf("completion api key not configured")
	}

	adapter, err := enrich.NewAdapter(enrich.Config{
		Store:             a.store,
		Client:            a.client,
		Workers:           a.cfg.Enrichment.Workers,
		RequestsPerSecond: a.cfg.Enrichment.RequestsPerSecond,
		Logger:            a.logger.With("component", "enrich", "task", name),
	})
	if err != nil {
		return enrich.Report{}, err
	}
	return adapter.Run(ctx, task)
}

// Prime flags prime profiles.
func (a *Application) Prime(ctx context.Context) (classify.Report, error) {
	return classify.NewPrimeClassifier(a.store, a.cfg.Prime.Keywords, a.logger.With("component", "prime")).Run(ctx)
}

// Rank scores one batch of unscored profiles.
func (a *Application) Rank(ctx context.Context) (score.Report, error) {
	if a.client == nil {
		return score.Report{}, fmt.Errorf("completion api key not configured")
	}

	w := a.cfg.Ranking.Weights
	ranker, err := score.NewRanker(score.Config{
		Store:  a.store,
		Client: a.client,
		Categories: []score.Category{
			{Key: score.CategoryEntrepreneurial, Weight: w.EntrepreneurialSuccess},
			{Key: score.CategoryEducation, Weight: w.EducationalBackground},
			{Key: score.CategoryWork, Weight: w.WorkExperience},
		},
		Limit:            a.cfg.Ranking.Limit,
		Region:           a.cfg.Ranking.Region,
		Country:          a.cfg.Ranking.Country,
		DescriptionLimit: a.cfg.Ranking.DescriptionLimit,
		Model:            a.cfg.Ranking.Model,
		MaxTokens:        a.cfg.Ranking.MaxTokens,
		Temperature:      a.cfg.Ranking.Temperature,
		Logger:           a.logger.With("component", "rank"),
	})
	if err != nil {
		return score.Report{}, err
	}
	return ranker.Run(ctx)
}

// step adapts a job returning a Stringer report into a pipeline step.
func step[R fmt.Stringer](name string, run func(context.Context) (R, error)) usecase.Step {
	return usecase.Step{Name: name, Run: func(ctx context.Context) (string, error) {
		report, err := run(ctx)
		if err != nil {
			return "", err
		}
		return report.String(), nil
	}}
}

func (a *Application) enrichStep(task string) usecase.Step {
	return step(JobEnrich+" "+task, func(ctx context.Context) (enrich.Report, error) {
		return a.Enrich(ctx, task)
	})
}

// PipelineSteps is harvest, profile enrichment, region enrichment.
func (a *Application) PipelineSteps() []usecase.Step {
	return []usecase.Step{
		step(JobHarvest, a.Harvest),
		a.enrichStep(config.TaskProfile),
		a.enrichStep(config.TaskRegion),
	}
}

func (a *Application) pipeline(steps ...usecase.Step) *usecase.Pipeline {
	return usecase.NewPipeline(usecase.PipelineDeps{
		Steps:    steps,
		Pause:    a.cfg.Pipeline.Pause,
		Clock:    a.clock,
		Notifier: a.notifier,
		Logger:   a.logger.With("component", "pipeline"),
	})
}

// RunJob runs one named job. Reports are published like pipeline runs.
func (a *Application) RunJob(ctx context.Context, job string, args []string) error {
	switch job {
	case JobMigrate:
		return a.Migrate(ctx)
	case JobServe:
		return a.Serve(ctx)
	case JobPipeline:
		return a.pipeline(a.PipelineSteps()...).Run(ctx)
	case JobHarvest:
		return a.pipeline(step(JobHarvest, a.Harvest)).Run(ctx)
	case JobSync:
		return a.pipeline(step(JobSync, a.Sync)).Run(ctx)
	case JobPrime:
		return a.pipeline(step(JobPrime, a.Prime)).Run(ctx)
	case JobRank:
		return a.pipeline(step(JobRank, a.Rank)).Run(ctx)
	case JobEnrich:
		if len(args) != 1 {
			return fmt.Errorf("enrich needs one task: %s, %s or %s", config.TaskProfile, config.TaskRegion, config.TaskEmployers)
		}
		return a.pipeline(a.enrichStep(args[0])).Run(ctx)
	}
	return fmt.Errorf("unknown job %q, expected one of %s", job, strings.Join(Jobs, ", "))
}

// Serve exposes the HTTP API and runs the pipeline on the configured
// interval until ctx ends.
func (a *Application) Serve(ctx context.Context) error {
	if err := a.Migrate(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	sched := usecase.NewScheduler(
		scheduler.NewIntervalScheduler(a.cfg.Scheduler.Interval, a.cfg.Scheduler.RunOnStart, a.clock),
		a.pipeline(a.PipelineSteps()...),
		a.cfg.Scheduler.Location(),
		a.logger.With("component", "scheduler"),
	)
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := sched.Stop(context.Background()); err != nil {
			a.logger.Warn("scheduler stop", "error", err)
		}
	}()

	api := httpapi.NewAPI(a.Harvest, a.logger.With("component", "http"))
	return httpapi.Serve(ctx, a.cfg.HTTP.Addr, httpapi.NewRouter(api), a.logger.With("component", "http"))
}
