package usecase

import (
	"context"
	"io"

	"trade-netting/internal/domain"
)

// TradeRepository defines the interface for fetching the day's trade records.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go TradeRepository
type TradeRepository interface {
	GetTrades(ctx context.Context, path string) ([]domain.TradeRecord, error)
	DecodeTrades(ctx context.Context, src io.Reader, filename string) ([]domain.TradeRecord, error)
}
