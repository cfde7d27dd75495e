package main

import (
	"errors"
	"os"

	"github.com/rs/zerolog"

	"trade-netting/internal/config"
	"trade-netting/internal/domain"
	"trade-netting/internal/gateway"
	"trade-netting/internal/logger"
	"trade-netting/internal/usecase"
)

// app holds the wired dependencies shared by the subcommands.
type app struct {
	cfg *config.Config
	log zerolog.Logger
	uc  *usecase.ReconciliationUseCase
}

// newApp loads the configuration and wires repository, usecase and logger.
func newApp() (*app, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.App.LogLevel
	if *logLevel != "" {
		level = *logLevel
	}
	log := logger.NewLogger(level, os.Stderr)

	repo := gateway.NewSpreadsheetTradeRepository(cfg.Input.SheetName)
	return &app{
		cfg: cfg,
		log: log,
		uc:  usecase.NewReconciliationUseCase(repo, cfg.Netting(), log),
	}, nil
}

// describe returns the operator-facing text of an input problem, and the
// error itself for anything else (a missing file, a permission problem).
func describe(err error) string {
	var schemaErr *domain.SchemaError
	var formatErr *domain.DataFormatError
	if errors.As(err, &schemaErr) || errors.As(err, &formatErr) {
		return domain.UserMessage(err)
	}
	return err.Error()
}
