package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/warehouse-productivity/internal"
	"github.com/frahmantamala/warehouse-productivity/internal/auth"
	authPostgres "github.com/frahmantamala/warehouse-productivity/internal/auth/postgres"
	"github.com/frahmantamala/warehouse-productivity/internal/dashboard"
	"github.com/frahmantamala/warehouse-productivity/internal/entry"
	entryPostgres "github.com/frahmantamala/warehouse-productivity/internal/entry/postgres"
	"github.com/frahmantamala/warehouse-productivity/internal/section"
	sectionPostgres "github.com/frahmantamala/warehouse-productivity/internal/section/postgres"
	"github.com/frahmantamala/warehouse-productivity/internal/transport/middleware"
	"github.com/frahmantamala/warehouse-productivity/internal/transport/rest"
	"github.com/frahmantamala/warehouse-productivity/internal/transport/swagger"
	"github.com/frahmantamala/warehouse-productivity/internal/user"
	userPostgres "github.com/frahmantamala/warehouse-productivity/internal/user/postgres"
	"github.com/frahmantamala/warehouse-productivity/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	Gorm   *gorm.DB
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := swagger.ValidateSpec(context.Background(), "./api/openapi.yml"); err != nil {
		deps.Logger.Error("openapi spec validation failed", "error", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(deps.Gorm), tokenGen)
	authHandler := auth.NewHandler(authService)

	userService := user.NewService(userPostgres.NewUserRepository(deps.Gorm), cfg.Security.BCryptCost, deps.Logger)
	userHandler := user.NewHandler(userService)

	sectionRepo := sectionPostgres.NewSectionRepository(deps.Gorm)
	sectionService := section.NewService(sectionRepo, deps.Logger)
	sectionHandler := section.NewHandler(sectionService)

	entryRepo := entryPostgres.NewEntryRepository(deps.Gorm)
	entryService := entry.NewService(entryRepo, deps.Logger)
	entryHandler := entry.NewHandler(entryService)

	dashboardService := dashboard.NewService(entryRepo, sectionRepo, deps.Logger)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	deps.Router.Use(middleware.LoggingMiddleware(deps.Logger))

	rest.RegisterAllRoutes(deps.Router, deps.DB, authHandler, userHandler, dashboardHandler, sectionHandler, entryHandler, deps.Logger)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}

	gormDB, dbx, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Dependencies{
		Config: config,
		Gorm:   gormDB,
		DB:     dbx,
		Router: chi.NewRouter(),
		Logger: lg,
	}, nil
}

// initDB opens one database connection and hands it to both ORMs: GORM
// for the repositories and sqlx for the raw-SQL paths (health check,
// route guards, seeder).
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, *sqlx.DB, error) {
	gormCfg := &gorm.Config{TranslateError: true}

	if cfg.Driver == "sqlite" {
		gormDB, err := gorm.Open(gormsqlite.Open(cfg.Source), gormCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, nil, err
		}
		tunePool(sqlDB, cfg)
		return gormDB, sqlx.NewDb(sqlDB, "sqlite3"), nil
	}

	dbx, err := sqlx.Connect("pgx", cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}
	tunePool(dbx.DB, cfg)

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: dbx.DB}), gormCfg)
	if err != nil {
		_ = dbx.Close()
		return nil, nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return gormDB, dbx, nil
}

func tunePool(db interface {
	SetMaxIdleConns(int)
	SetMaxOpenConns(int)
	SetConnMaxLifetime(time.Duration)
	SetConnMaxIdleTime(time.Duration)
}, cfg internal.DatabaseConfig) {
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
}
