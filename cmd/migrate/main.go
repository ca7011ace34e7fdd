package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/0x13a/jobly/internal/config"
	"github.com/0x13a/jobly/internal/database"
	"github.com/0x13a/jobly/internal/server"

	"github.com/golang-migrate/migrate/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type migrateLogger struct {
	logger zerolog.Logger
}

func (l migrateLogger) Printf(format string, v ...interface{}) {
	l.logger.Info().Msgf(format, v...)
}

func (l migrateLogger) Verbose() bool { return false }

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate <command> [args]

Commands:
  up           Apply all pending migrations
  down [N]     Roll back N migrations (default: 1)
  version      Print the current migration version
  force V      Set the version without running migrations`)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load config")
	}
	logger := server.NewLogger(cfg.Env)

	m, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("migration init failed")
	}
	defer m.Close()
	m.Log = migrateLogger{logger}

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal().Err(err).Msg("up failed")
		}
		logger.Info().Msg("migrations: up completed")
	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				logger.Fatal().Msgf("down: invalid steps argument %q", args[1])
			}
			steps = n
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal().Err(err).Msg("down failed")
		}
		logger.Info().Int("steps", steps).Msg("migrations: down completed")
	case "version":
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			logger.Fatal().Err(err).Msg("version failed")
		}
		fmt.Printf("version: %d  dirty: %v\n", v, dirty)
	case "force":
		if len(args) < 2 {
			logger.Fatal().Msg("force: version argument required")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			logger.Fatal().Msgf("force: invalid version %q", args[1])
		}
		if err := m.Force(v); err != nil {
			logger.Fatal().Err(err).Msg("force failed")
		}
		logger.Info().Int("version", v).Msg("migrations: forced")
	default:
		usage()
		os.Exit(1)
	}
}
