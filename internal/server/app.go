// Package server wires the application together: configuration, database,
// repositories, services and the HTTP server, plus graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/myhome-soft/myhome/internal/logging"
	"github.com/myhome-soft/myhome/internal/server/config"
	"github.com/myhome-soft/myhome/internal/server/mail"
	"github.com/myhome-soft/myhome/internal/server/repositories"
	"github.com/myhome-soft/myhome/internal/server/rest"
	"github.com/myhome-soft/myhome/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *rest.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewForEnv(cfg.Env)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	manager := repositories.NewPostgresRepositoryManager()
	if err := manager.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var mailer mail.Sender
	if cfg.Env == "dev" {
		mailer = mail.NewMockSender(logger)
	} else {
		mailer, err = mail.NewSMTPSender(cfg)
		if err != nil {
			return nil, fmt.Errorf("mail init error: %w", err)
		}
	}

	tokenService := services.NewSecurityTokenService(manager, cfg)
	authService := services.NewAuthService(db, manager, cfg)
	userService := services.NewUserService(db, manager, tokenService, mailer, logger)
	communityService := services.NewCommunityService(db, manager)
	houseService := services.NewHouseService(db, manager)
	amenityService := services.NewAmenityService(db, manager)
	paymentService := services.NewPaymentService(db, manager)
	documentService := services.NewDocumentService(db, manager, cfg)

	server := rest.NewServer(cfg, logger,
		authService, userService, communityService, houseService,
		amenityService, paymentService, documentService)

	return &App{config: cfg, logger: logger, db: db, server: server}, nil
}

// Run serves until the context is cancelled or SIGINT/SIGTERM arrives, then
// drains in-flight requests and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			app.logger.Info(ctx, "signal received, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.server.Run()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http shutdown error", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "error", err)
	}

	app.logger.Info(shutdownCtx, "app stopped")
	return nil
}
