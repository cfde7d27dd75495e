// Package netting verifies that each traded instrument of a daily blotter nets to
// zero quantity. It normalizes symbols to base tickers, aggregates quantities
// per side, joins both sides per ticker and formats the result for display.
//
// Everything in this package is a pure function of its inputs; an Engine holds
// only immutable configuration and may be shared freely.
package netting

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds the operation labels that select each side and the symbol
// suffixes stripped to obtain a base ticker.
type Config struct {
	BuyOperationLabels   []string
	SellOperationLabels  []string
	TickerSuffixPatterns []string // ordered, first match wins
}

// DefaultConfig returns the labels used by the broker's daily blotter export.
func DefaultConfig() Config {
	return Config{
		BuyOperationLabels:   []string{"Compra", "Compra Dólar MEP"},
		SellOperationLabels:  []string{"Venta", "Venta Dólar MEP"},
		TickerSuffixPatterns: []string{".D", "D", "O"},
	}
}

// Validate checks that both sides are selectable and that no label selects both.
func (c Config) Validate() error {
	if len(c.BuyOperationLabels) == 0 {
		return errors.New("at least one buy operation label is required")
	}
	if len(c.SellOperationLabels) == 0 {
		return errors.New("at least one sell operation label is required")
	}
	buys := make(map[string]bool, len(c.BuyOperationLabels))
	for _, label := range c.BuyOperationLabels {
		if strings.TrimSpace(label) == "" {
			return errors.New("buy operation labels must not be empty")
		}
		buys[strings.TrimSpace(label)] = true
	}
	for _, label := range c.SellOperationLabels {
		if strings.TrimSpace(label) == "" {
			return errors.New("sell operation labels must not be empty")
		}
		if buys[strings.TrimSpace(label)] {
			return fmt.Errorf("operation label %q is configured as both buy and sell", label)
		}
	}
	for _, suffix := range c.TickerSuffixPatterns {
		if suffix == "" {
			return errors.New("ticker suffix patterns must not be empty")
		}
	}
	return nil
}
