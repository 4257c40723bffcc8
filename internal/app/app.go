package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/nfl-draft-league/external/jobqueue"
	"github.com/riskibarqy/nfl-draft-league/external/mysportsfeeds"
	"github.com/riskibarqy/nfl-draft-league/internal/config"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/draft"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/game"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/odds"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/season"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/standing"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/team"
	"github.com/riskibarqy/nfl-draft-league/internal/infrastructure/joblock"
	cacherepo "github.com/riskibarqy/nfl-draft-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/nfl-draft-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/nfl-draft-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/nfl-draft-league/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/nfl-draft-league/internal/platform/cache"
	idgen "github.com/riskibarqy/nfl-draft-league/internal/platform/id"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/logging"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/resilience"
	"github.com/riskibarqy/nfl-draft-league/internal/usecase"
)

type repositories struct {
	team       team.Repository
	standing   standing.Repository
	game       game.Repository
	odds       odds.Repository
	ownerships odds.OwnershipRepository
	draft      draft.Repository
	dispatches jobscheduler.Repository
	pinger     usecase.Pinger
}

// App holds the wired services shared by the API and the worker.
type App struct {
	cfg     config.Config
	logger  *logging.Logger
	db      *sqlx.DB
	closers []func() error

	DraftService    *usecase.DraftService
	StandingService *usecase.StandingService
	TeamService     *usecase.TeamService
	OddsService     *usecase.OddsService
	JobService      *usecase.JobService
	Readiness       usecase.Pinger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	calendar, err := season.NewCalendar(cfg.NFLWeekEndDates, cfg.NFLLocation)
	if err != nil {
		return nil, fmt.Errorf("build nfl calendar: %w", err)
	}

	a := &App{cfg: cfg, logger: logger}
	repos, err := a.buildRepositories(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	if cfg.CacheEnabled {
		repos = withCache(repos, basecache.NewStore(cfg.CacheTTL))
	}

	locker, err := a.buildJobLocker()
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	provider := mysportsfeeds.NewClient(mysportsfeeds.ClientConfig{
		BaseURL:    cfg.MySportsFeedsBaseURL,
		Season:     cfg.MySportsFeedsSeason,
		APIKey:     cfg.MySportsFeedsAPIKey,
		OddsSource: cfg.MySportsFeedsOddsSource,
		Timeout:    cfg.MySportsFeedsTimeout,
		MaxRetries: cfg.MySportsFeedsMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.MySportsFeedsCircuitEnabled,
			FailureThreshold: cfg.MySportsFeedsCircuitFailureCount,
			OpenTimeout:      cfg.MySportsFeedsCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.MySportsFeedsCircuitHalfOpenMaxReq,
		},
	})

	ingestion := usecase.NewIngestionService(
		provider,
		repos.game,
		repos.odds,
		repos.standing,
		repos.team,
		repos.pinger,
		calendar,
		usecase.IngestionConfig{OddsSource: cfg.MySportsFeedsOddsSource},
		logger,
	)

	a.DraftService = usecase.NewDraftService(repos.draft)
	a.StandingService = usecase.NewStandingService(repos.standing)
	a.TeamService = usecase.NewTeamService(repos.team)
	a.OddsService = usecase.NewOddsService(repos.odds, repos.ownerships, calendar)
	a.JobService = usecase.NewJobService(
		ingestion,
		a.buildJobQueue(),
		locker,
		repos.dispatches,
		idgen.NewTimeOrderedGenerator(""),
		usecase.JobServiceConfig{
			LockTTL:    cfg.JobLockTTL,
			MaxWorkers: cfg.JobRunAllWorkers,
		},
		logger,
	)
	a.Readiness = repos.pinger

	return a, nil
}

func (a *App) buildRepositories(ctx context.Context) (repositories, error) {
	if a.cfg.StorageDriver == config.StorageDriverMemory {
		data := memory.NewSeededDataset()
		oddsRepo := memory.NewOddsRepository(data)
		a.logger.Info("using in-memory storage")
		return repositories{
			team:       memory.NewTeamRepository(data),
			standing:   memory.NewStandingRepository(data),
			game:       memory.NewGameRepository(data),
			odds:       oddsRepo,
			ownerships: oddsRepo,
			draft:      memory.NewDraftRepository(data),
			dispatches: memory.NewJobDispatchRepository(data),
			pinger:     data,
		}, nil
	}

	db, err := openDatabase(ctx, a.cfg, a.logger)
	if err != nil {
		return repositories{}, err
	}
	a.db = db
	a.closers = append(a.closers, db.Close)

	if a.cfg.AppEnv == config.EnvDev {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			return repositories{}, err
		}
	}

	oddsRepo := postgres.NewOddsRepository(db)
	return repositories{
		team:       postgres.NewTeamRepository(db),
		standing:   postgres.NewStandingRepository(db),
		game:       postgres.NewGameRepository(db),
		odds:       oddsRepo,
		ownerships: oddsRepo,
		draft:      postgres.NewDraftRepository(db),
		dispatches: postgres.NewJobDispatchRepository(db),
		pinger:     postgres.NewHealthRepository(db),
	}, nil
}

func withCache(repos repositories, store *basecache.Store) repositories {
	cachedOdds := cacherepo.NewOddsRepository(repos.odds, repos.ownerships, store)
	repos.team = cacherepo.NewTeamRepository(repos.team, store)
	repos.standing = cacherepo.NewStandingRepository(repos.standing, store)
	repos.game = cacherepo.NewGameRepository(repos.game, store)
	repos.odds = cachedOdds
	repos.ownerships = cachedOdds
	repos.draft = cacherepo.NewDraftRepository(repos.draft, store)
	return repos
}

func (a *App) buildJobLocker() (usecase.JobLocker, error) {
	if a.cfg.RedisURL == "" {
		return joblock.NewLocalLocker(), nil
	}

	client, err := joblock.NewRedisClient(a.cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("build redis job lock client: %w", err)
	}
	a.closers = append(a.closers, client.Close)
	a.logger.Info("using redis job lock")

	return joblock.NewRedisLocker(client, a.cfg.ServiceName+":"), nil
}

func (a *App) buildJobQueue() usecase.JobQueue {
	if a.cfg.JobDispatchMode != config.JobDispatchQStash {
		return usecase.NewNoopJobQueue()
	}

	return jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
		BaseURL:          a.cfg.QStashBaseURL,
		Token:            a.cfg.QStashToken,
		TargetBaseURL:    a.cfg.QStashTargetBaseURL,
		Retries:          a.cfg.QStashRetries,
		InternalJobToken: a.cfg.InternalJobToken,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          a.cfg.QStashCircuitEnabled,
			FailureThreshold: a.cfg.QStashCircuitFailureCount,
			OpenTimeout:      a.cfg.QStashCircuitOpenTimeout,
			HalfOpenMaxReq:   a.cfg.QStashCircuitHalfOpenMaxReq,
		},
	}, a.logger)
}

func (a *App) HTTPServer() (*http.Server, error) {
	handler := httpapi.NewHandler(
		a.DraftService,
		a.StandingService,
		a.TeamService,
		a.OddsService,
		a.JobService,
		a.Readiness,
		a.logger,
	)
	router := httpapi.NewRouter(handler, a.logger, httpapi.RouterConfig{
		SwaggerEnabled:     a.cfg.SwaggerEnabled,
		MetricsEnabled:     a.cfg.MetricsEnabled,
		CORSAllowedOrigins: a.cfg.CORSAllowedOrigins,
		InternalJobToken:   a.cfg.InternalJobToken,
	})

	server := &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}
