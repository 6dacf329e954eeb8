package app

import (
	"context"
	"fmt"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/pickemhq/pickem/internal/config"
	"github.com/pickemhq/pickem/internal/domain/book"
	"github.com/pickemhq/pickem/internal/domain/chapter"
	"github.com/pickemhq/pickem/internal/domain/event"
	"github.com/pickemhq/pickem/internal/domain/grading"
	"github.com/pickemhq/pickem/internal/domain/pick"
	"github.com/pickemhq/pickem/internal/domain/team"
	"github.com/pickemhq/pickem/internal/domain/user"
	"github.com/pickemhq/pickem/internal/infrastructure/account/introspect"
	cacherepo "github.com/pickemhq/pickem/internal/infrastructure/repository/cache"
	"github.com/pickemhq/pickem/internal/infrastructure/repository/memory"
	"github.com/pickemhq/pickem/internal/infrastructure/repository/postgres"
	"github.com/pickemhq/pickem/internal/interfaces/httpapi"
	basecache "github.com/pickemhq/pickem/internal/platform/cache"
	idgen "github.com/pickemhq/pickem/internal/platform/id"
	"github.com/pickemhq/pickem/internal/platform/logging"
	"github.com/pickemhq/pickem/internal/platform/resilience"
	"github.com/pickemhq/pickem/internal/usecase"
)

type repositories struct {
	books    book.Repository
	chapters chapter.Repository
	events   event.Repository
	picks    pick.Repository
	gradings grading.Repository
	teams    team.Repository
	users    user.Repository
}

// NewHTTPServer wires repositories, services, and the HTTP router into a
// ready-to-run server. With DB_URL set it runs against Postgres, otherwise it
// falls back to in-memory repositories, which is enough for local poking.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		repos.teams = cacherepo.NewTeamRepository(repos.teams, basecache.NewStore(cfg.CacheTTL))
	}

	idGen := idgen.NewRandomGenerator()

	bookSvc := usecase.NewBookService(repos.books, repos.users, idGen, logger)
	chapterSvc := usecase.NewChapterService(repos.books, repos.chapters, repos.events, repos.teams, idGen, logger)
	teamSvc := usecase.NewTeamService(repos.teams, idGen, logger)
	submissionSvc := usecase.NewSubmissionService(repos.books, repos.chapters, repos.events, repos.picks, logger)
	answerSvc := usecase.NewAnswerService(repos.books, repos.chapters, repos.events, repos.picks, repos.gradings, logger)
	standingsSvc := usecase.NewStandingsService(repos.books, repos.chapters, repos.events, repos.picks, repos.gradings, repos.users, logger)

	verifier := introspect.NewClient(
		&http.Client{Timeout: cfg.AccountTimeout},
		introspect.Config{
			BaseURL:        cfg.AccountBaseURL,
			IntrospectPath: cfg.AccountIntrospectPath,
			CacheTTL:       cfg.AccountCacheTTL,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.AccountCircuitEnabled,
				FailureThreshold: cfg.AccountCircuitFailures,
				OpenTimeout:      cfg.AccountCircuitOpenFor,
				HalfOpenMaxReq:   cfg.AccountCircuitHalfOpen,
			},
		},
		logger,
	)

	handler := httpapi.NewHandler(bookSvc, chapterSvc, teamSvc, submissionSvc, answerSvc, standingsSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.DBURL == "" {
		return buildMemoryRepositories(ctx, cfg, logger)
	}
	return buildPostgresRepositories(ctx, cfg, logger)
}

func buildMemoryRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	books := memory.NewBookRepository()
	events := memory.NewEventRepository()
	picks := memory.NewPickRepository()
	chapters := memory.NewChapterRepository(events, picks)
	gradings := memory.NewGradingRepository(events, picks)
	teams := memory.NewTeamRepository()
	users := memory.NewUserRepository()

	if cfg.SeedDemoData {
		if err := memory.Seed(ctx, books, chapters, events, teams, users); err != nil {
			return repositories{}, fmt.Errorf("seed demo data: %w", err)
		}
		logger.Info("demo data seeded", "book_id", memory.SeedBookID)
	}
	logger.Info("using in-memory repositories", "reason", "DB_URL empty")

	return repositories{
		books:    books,
		chapters: chapters,
		events:   events,
		picks:    picks,
		gradings: gradings,
		teams:    teams,
		users:    users,
	}, nil
}

func buildPostgresRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, fmt.Errorf("connect postgres: %w", err)
	}

	if cfg.SeedDemoData {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
		}
	}
	logger.Info("using postgres repositories", "db", dbNameFromURL(cfg.DBURL))

	return repositories{
		books:    postgres.NewBookRepository(db),
		chapters: postgres.NewChapterRepository(db),
		events:   postgres.NewEventRepository(db),
		picks:    postgres.NewPickRepository(db),
		gradings: postgres.NewGradingRepository(db),
		teams:    postgres.NewTeamRepository(db),
		users:    postgres.NewUserRepository(db),
	}, nil
}
