package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"trade-netting/internal/domain"
	"trade-netting/internal/netting"
)

// ReconciliationUseCase orchestrates the netting of one uploaded blotter.
// It keeps no state between calls.
type ReconciliationUseCase struct {
	repo   TradeRepository
	engine *netting.Engine
	log    zerolog.Logger
}

// NewReconciliationUseCase creates a new instance of the usecase.
func NewReconciliationUseCase(repo TradeRepository, cfg netting.Config, log zerolog.Logger) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		repo:   repo,
		engine: netting.NewEngine(cfg),
		log:    log,
	}
}

// Reconcile nets the blotter stored at path.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, path string) (*domain.ReconciliationReport, error) {
	records, err := uc.repo.GetTrades(ctx, path)
	if err != nil {
		uc.log.Warn().Err(err).Str("source", path).Msg("could not load trades")
		return nil, fmt.Errorf("could not get trades: %w", err)
	}
	return uc.report(path, records), nil
}

// ReconcileUpload nets a blotter received as a stream, such as an HTTP upload.
func (uc *ReconciliationUseCase) ReconcileUpload(ctx context.Context, src io.Reader, filename string) (*domain.ReconciliationReport, error) {
	records, err := uc.repo.DecodeTrades(ctx, src, filename)
	if err != nil {
		uc.log.Warn().Err(err).Str("source", filename).Msg("could not decode trades")
		return nil, fmt.Errorf("could not decode trades: %w", err)
	}
	return uc.report(filename, records), nil
}

func (uc *ReconciliationUseCase) report(source string, records []domain.TradeRecord) *domain.ReconciliationReport {
	report := uc.engine.Report(records)
	uc.log.Info().
		Str("source", source).
		Int("rows_read", report.RowsRead).
		Int("rows_netted", report.RowsNetted).
		Int("tickers", len(report.Entries)).
		Int("discrepancies", len(report.Discrepancies)).
		Bool("balanced", report.Balanced).
		Msg("reconciliation completed")
	return report
}
