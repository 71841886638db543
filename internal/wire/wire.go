// Package wire provides dependency injection for the studiodesk
// application. It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/example/studiodesk/internal/adapters/persistence"
	"github.com/example/studiodesk/internal/adapters/rest"
	"github.com/example/studiodesk/internal/adapters/sqlite"
	"github.com/example/studiodesk/internal/adapters/vault"
	"github.com/example/studiodesk/internal/app"
	"github.com/example/studiodesk/internal/cache"
	"github.com/example/studiodesk/internal/config"
	"github.com/example/studiodesk/internal/db"
	"github.com/example/studiodesk/internal/ports/primary"
	"github.com/example/studiodesk/internal/ports/secondary"
	"github.com/example/studiodesk/internal/server"
)

var (
	cfg                *config.Config
	hub                *app.Hub
	store              *cache.Store
	blobVault          secondary.BlobVault
	notifier           secondary.Notifier
	logger             secondary.Logger
	clientService      primary.ClientService
	affiliateService   primary.AffiliateService
	leadService        primary.LeadService
	packageService     primary.PackageService
	submissionService  primary.SubmissionService
	commentService     primary.CommentService
	workSessionService primary.WorkSessionService
	reportService      primary.ReportService
	once               sync.Once
)

// SetNotifier overrides the notifier used by the mutation pipeline. Must be
// called before the first service accessor; the CLI uses this to install its
// color notifier.
func SetNotifier(n secondary.Notifier) {
	notifier = n
}

// Config returns the loaded configuration, falling back to defaults when no
// config file exists yet.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Hub returns the singleton event hub.
func Hub() *app.Hub {
	once.Do(initServices)
	return hub
}

// Vault returns the singleton blob vault.
func Vault() secondary.BlobVault {
	once.Do(initServices)
	return blobVault
}

// Logger returns the singleton application logger.
func Logger() secondary.Logger {
	once.Do(initServices)
	return logger
}

// ClientService returns the singleton ClientService instance.
func ClientService() primary.ClientService {
	once.Do(initServices)
	return clientService
}

// AffiliateService returns the singleton AffiliateService instance.
func AffiliateService() primary.AffiliateService {
	once.Do(initServices)
	return affiliateService
}

// LeadService returns the singleton LeadService instance.
func LeadService() primary.LeadService {
	once.Do(initServices)
	return leadService
}

// PackageService returns the singleton PackageService instance.
func PackageService() primary.PackageService {
	once.Do(initServices)
	return packageService
}

// SubmissionService returns the singleton SubmissionService instance.
func SubmissionService() primary.SubmissionService {
	once.Do(initServices)
	return submissionService
}

// CommentService returns the singleton CommentService instance.
func CommentService() primary.CommentService {
	once.Do(initServices)
	return commentService
}

// WorkSessionService returns the singleton WorkSessionService instance.
func WorkSessionService() primary.WorkSessionService {
	once.Do(initServices)
	return workSessionService
}

// ReportService returns the singleton ReportService instance.
func ReportService() primary.ReportService {
	once.Do(initServices)
	return reportService
}

// ServerServices bundles every service for the HTTP server.
func ServerServices() server.Services {
	once.Do(initServices)
	return server.Services{
		Clients:      clientService,
		Affiliates:   affiliateService,
		Leads:        leadService,
		Packages:     packageService,
		Submissions:  submissionService,
		Comments:     commentService,
		WorkSessions: workSessionService,
		Reports:      reportService,
	}
}

// repositories groups the secondary persistence ports so the store backend
// can be swapped wholesale.
type repositories struct {
	clients     secondary.ClientRepository
	affiliates  secondary.AffiliateRepository
	leads       secondary.LeadRepository
	packages    secondary.PackageRepository
	submissions secondary.SubmissionRepository
	comments    secondary.CommentRepository
	sessions    secondary.WorkSessionRepository
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cfg = loadConfig()
	logger = newLogger()

	repos, err := buildRepositories(cfg)
	if err != nil {
		log.Fatalf("failed to initialize store: %v", err)
	}

	blobVault, err = vault.NewVaultFromConfig(context.Background(), cfg.Vault)
	if err != nil {
		log.Fatalf("failed to initialize vault: %v", err)
	}

	hub = app.NewHub()
	store = cache.NewStore()

	if notifier == nil {
		notifier = app.NewHubNotifier(hub)
	}

	timers := persistence.NewFileTimerStore(filepath.Join(baseDir(cfg), "timers.json"))
	clock := secondary.RealClock{}
	ids := secondary.UUIDGenerator{}

	coordinator := app.NewCoordinator(store, notifier, logger)
	fanout := app.NewFanout(viewerContext(cfg))

	clientService = app.NewClientService(repos.clients, repos.packages, coordinator, fanout, store, ids, logger)
	affiliateService = app.NewAffiliateService(repos.affiliates, repos.packages, coordinator, fanout, store, ids, logger)
	leadService = app.NewLeadService(repos.leads, repos.clients, fanout, store, ids, logger)
	packageService = app.NewPackageService(repos.packages, fanout, store, ids, logger)
	submissionService = app.NewSubmissionService(repos.submissions, blobVault, fanout, store, hub, ids, notifier, logger)
	commentService = app.NewCommentService(repos.comments, repos.submissions, ids)
	workSessionService = app.NewWorkSessionService(repos.sessions, timers, clock, ids, hub, logger)
	reportService = app.NewReportService(repos.clients, repos.affiliates, repos.packages, store, clock, logger)
}

func buildRepositories(cfg *config.Config) (repositories, error) {
	if cfg.Store.Type == "rest" {
		base, key := cfg.Store.BaseURL, cfg.Store.APIKey
		return repositories{
			clients:     rest.NewClientRepository(base, key, nil),
			affiliates:  rest.NewAffiliateRepository(base, key, nil),
			leads:       rest.NewLeadRepository(base, key, nil),
			packages:    rest.NewPackageRepository(base, key, nil),
			submissions: rest.NewSubmissionRepository(base, key, nil),
			comments:    rest.NewCommentRepository(base, key, nil),
			sessions:    rest.NewWorkSessionRepository(base, key, nil),
		}, nil
	}

	if cfg.Store.DBPath != "" && os.Getenv("STUDIODESK_DB_PATH") == "" {
		os.Setenv("STUDIODESK_DB_PATH", cfg.Store.DBPath)
	}
	database, err := db.GetDB()
	if err != nil {
		return repositories{}, err
	}
	return repositories{
		clients:     sqlite.NewClientRepository(database),
		affiliates:  sqlite.NewAffiliateRepository(database),
		leads:       sqlite.NewLeadRepository(database),
		packages:    sqlite.NewPackageRepository(database),
		submissions: sqlite.NewSubmissionRepository(database),
		comments:    sqlite.NewCommentRepository(database),
		sessions:    sqlite.NewWorkSessionRepository(database),
	}, nil
}

func loadConfig() *config.Config {
	path := os.Getenv("STUDIODESK_CONFIG")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			log.Fatalf("failed to locate config: %v", err)
		}
		path = p
	}

	c, err := config.ReadFromFile(path)
	if err != nil {
		// No config yet: run on defaults, `studiodesk init` writes a file.
		if errors.Is(err, os.ErrNotExist) {
			home, _ := os.UserHomeDir()
			return config.NewConfig("admin", filepath.Join(home, ".studiodesk"))
		}
		log.Fatalf("failed to load config: %v", err)
	}
	if err := c.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	return c
}

func baseDir(cfg *config.Config) string {
	if cfg.BaseDir != "" {
		return cfg.BaseDir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".studiodesk")
}

// viewerContext derives the fan-out viewer context from the configured
// admin identity.
func viewerContext(cfg *config.Config) *app.ViewerContext {
	if cfg.AdminID == "" {
		return nil
	}
	return &app.ViewerContext{ViewerID: cfg.AdminID, ViewerStatus: "active"}
}

// slogLogger adapts log/slog to the secondary.Logger port.
type slogLogger struct {
	l *slog.Logger
}

func newLogger() secondary.Logger {
	level := slog.LevelInfo
	if os.Getenv("STUDIODESK_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return &slogLogger{l: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))}
}

func (s *slogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *slogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s *slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }
