// internal/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "splitledger/internal/api"
	"splitledger/internal/api/handler"
	"splitledger/internal/auth"
	"splitledger/internal/config"
	"splitledger/internal/events"
	"splitledger/internal/metrics"
	"splitledger/internal/repository"
	"splitledger/internal/repository/postgres"
	"splitledger/internal/service"
	"splitledger/internal/util"
	"splitledger/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config  *config.AppConfig
	Logger  *slog.Logger
	DB      *sqlx.DB
	Metrics *metrics.Metrics
	Events  events.Publisher
	JWT     *auth.JWTManager

	// Repositories
	UserRepository       repository.UserRepository
	GroupRepository      repository.GroupRepository
	ExpenseRepository    repository.ExpenseRepository
	SettlementRepository repository.SettlementRepository

	// Services
	UserService       service.UserService
	GroupService      service.GroupService
	ExpenseService    service.ExpenseService
	BalanceService    service.BalanceService
	SettlementService service.SettlementService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{Logger: slog.Default()}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger(cfg.LogLevel, cfg.LogFormat)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Migrate and connect to Database
	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DB); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		app.Logger.Info("Database migrations applied.")
	}

	database, err := db.NewPostgresDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Event publisher and metrics
	app.Metrics = metrics.New()
	if cfg.AMQPURL != "" {
		publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return fmt.Errorf("failed to connect to event broker: %w", err)
		}
		app.Events = publisher
		app.Logger.Info("Event publisher connected.", "exchange", cfg.AMQPExchange)
	} else {
		app.Events = events.NoopPublisher{}
		app.Logger.Info("AMQP_URL not set, domain events are disabled.")
	}

	// 5. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository()
	app.GroupRepository = postgres.NewGroupRepository()
	app.ExpenseRepository = postgres.NewExpenseRepository()
	app.SettlementRepository = postgres.NewSettlementRepository()
	app.Logger.Info("Repositories initialized.")

	// 6. Initialize Services
	// Pass the concrete db.BeginTx, db.CommitTx, db.RollbackTx functions from pkg/db
	tx := service.NewTxManager(app.DB, db.BeginTx, db.CommitTx, db.RollbackTx)
	app.JWT = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	app.UserService = service.NewUserService(app.DB, app.UserRepository, app.JWT, app.Logger)
	app.GroupService = service.NewGroupService(tx, app.DB, app.UserRepository, app.GroupRepository, app.Events)
	app.ExpenseService = service.NewExpenseService(tx, app.DB, app.GroupRepository, app.ExpenseRepository, app.Events, app.Metrics, app.Logger)
	app.BalanceService = service.NewBalanceService(app.DB, app.UserRepository, app.ExpenseRepository, app.SettlementRepository)
	app.SettlementService = service.NewSettlementService(app.DB, app.UserRepository, app.SettlementRepository, app.Events, app.Metrics, app.Logger)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	app.HTTPHandler = router.NewRouter(router.Handlers{
		Auth:        handler.NewAuthHandler(app.UserService, app.Logger),
		Users:       handler.NewUserHandler(app.UserService, app.Logger),
		Groups:      handler.NewGroupHandler(app.GroupService, app.Logger),
		Expenses:    handler.NewExpenseHandler(app.ExpenseService, app.Logger),
		Balances:    handler.NewBalanceHandler(app.BalanceService, app.Logger),
		Settlements: handler.NewSettlementHandler(app.SettlementService, app.Logger),
	}, app.JWT, app.Metrics, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")

	var errs []error
	if app.Events != nil {
		if err := app.Events.Close(); err != nil {
			app.Logger.Error("Failed to close event publisher", "error", err)
			errs = append(errs, fmt.Errorf("failed to close event publisher: %w", err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
		} else {
			app.Logger.Info("Database connection closed.")
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	app.Logger.Info("Application shut down gracefully.")
	return nil
}
