package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/0x13a/jobly/internal/company"
	"github.com/0x13a/jobly/internal/config"
	"github.com/0x13a/jobly/internal/database"
	"github.com/0x13a/jobly/internal/handler"
	"github.com/0x13a/jobly/internal/job"
	"github.com/0x13a/jobly/internal/server"
	"github.com/0x13a/jobly/internal/user"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load config")
	}
	logger := server.NewLogger(cfg.Env)

	if cfg.AutoMigrate {
		if err := database.Migrate(cfg.DatabaseURL); err != nil {
			logger.Fatal().Err(err).Msg("unable to migrate database")
		}
		logger.Info().Msg("database schema is up to date")
	}
	conn, err := database.GetDbConn(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to connect to postgres")
	}
	defer database.CloseDbConn(conn)

	svr := server.NewServer(
		cfg,
		conn,
		mux.NewRouter(),
		logger,
	)

	handler.RegisterRoutes(
		svr,
		company.NewRepository(conn, database.Postgres),
		job.NewRepository(conn, database.Postgres),
		user.NewRepository(conn, cfg.BcryptWorkFactor),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := svr.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server stopped")
	}
}
