package netting

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"trade-netting/internal/domain"
)

// Engine nets a blotter according to a Config.
type Engine struct {
	normalizer *Normalizer
	sides      map[string]domain.Side
}

// NewEngine creates an engine for cfg. The config is copied; later changes to
// cfg do not affect the engine.
func NewEngine(cfg Config) *Engine {
	sides := make(map[string]domain.Side, len(cfg.BuyOperationLabels)+len(cfg.SellOperationLabels))
	for _, label := range cfg.BuyOperationLabels {
		sides[strings.TrimSpace(label)] = domain.SideBuy
	}
	for _, label := range cfg.SellOperationLabels {
		sides[strings.TrimSpace(label)] = domain.SideSell
	}
	return &Engine{
		normalizer: NewNormalizer(cfg.TickerSuffixPatterns),
		sides:      sides,
	}
}

// GenerateReport nets records with a one-off engine built from cfg.
func GenerateReport(records []domain.TradeRecord, cfg Config) *domain.ReconciliationReport {
	return NewEngine(cfg).Report(records)
}

// Normalize returns the base ticker of symbol.
func (e *Engine) Normalize(symbol string) string {
	return e.normalizer.Normalize(symbol)
}

// SideOf classifies an operation label. ok is false for operations that belong
// to neither side, such as dividends or fees.
func (e *Engine) SideOf(operationName string) (side domain.Side, ok bool) {
	side, ok = e.sides[strings.TrimSpace(operationName)]
	return side, ok
}

// Aggregate sums the quantities of the records of one side per base ticker.
// Detail text lists the contributing records in input order.
func (e *Engine) Aggregate(records []domain.TradeRecord, side domain.Side) map[string]domain.SideAggregate {
	aggregates := make(map[string]domain.SideAggregate)
	details := make(map[string][]string)

	for _, rec := range records {
		if s, ok := e.SideOf(rec.OperationName); !ok || s != side {
			continue
		}
		ticker := e.Normalize(rec.Symbol)
		agg, seen := aggregates[ticker]
		if !seen {
			agg = domain.SideAggregate{BaseTicker: ticker, TotalQuantity: decimal.Zero}
		}
		agg.TotalQuantity = agg.TotalQuantity.Add(rec.Quantity)
		aggregates[ticker] = agg
		details[ticker] = append(details[ticker], FormatQuantity(rec.Quantity)+" ("+rec.Symbol+")")
	}

	for ticker, agg := range aggregates {
		agg.DetailText = strings.Join(details[ticker], ", ")
		aggregates[ticker] = agg
	}
	return aggregates
}

// Reconcile joins buy and sell aggregates on base ticker. A ticker missing on
// one side gets a zero total and empty detail for that side. Entries are
// sorted by ticker and none are dropped.
func (e *Engine) Reconcile(buy, sell map[string]domain.SideAggregate) []domain.NetEntry {
	tickers := make([]string, 0, len(buy)+len(sell))
	for ticker := range buy {
		tickers = append(tickers, ticker)
	}
	for ticker := range sell {
		if _, ok := buy[ticker]; !ok {
			tickers = append(tickers, ticker)
		}
	}
	sort.Strings(tickers)

	entries := make([]domain.NetEntry, 0, len(tickers))
	for _, ticker := range tickers {
		entry := domain.NetEntry{
			BaseTicker: ticker,
			BuyTotal:   decimal.Zero,
			SellTotal:  decimal.Zero,
		}
		if b, ok := buy[ticker]; ok {
			entry.BuyTotal = b.TotalQuantity
			entry.BuyDetail = b.DetailText
		}
		if s, ok := sell[ticker]; ok {
			entry.SellTotal = s.TotalQuantity
			entry.SellDetail = s.DetailText
		}
		entry.Net = entry.BuyTotal.Sub(entry.SellTotal)
		entries = append(entries, entry)
	}
	return entries
}

// Report runs the whole netting pipeline over records.
func (e *Engine) Report(records []domain.TradeRecord) *domain.ReconciliationReport {
	buy := e.Aggregate(records, domain.SideBuy)
	sell := e.Aggregate(records, domain.SideSell)

	report := &domain.ReconciliationReport{
		Entries:       make([]domain.FormattedEntry, 0, len(buy)+len(sell)),
		Discrepancies: make([]domain.FormattedEntry, 0),
		Balanced:      true,
		RowsRead:      len(records),
	}
	for _, rec := range records {
		if _, ok := e.SideOf(rec.OperationName); ok {
			report.RowsNetted++
		}
	}

	for _, entry := range e.Reconcile(buy, sell) {
		formatted := FormatEntry(entry)
		report.Entries = append(report.Entries, formatted)
		if !formatted.Balanced {
			report.Balanced = false
			report.Discrepancies = append(report.Discrepancies, formatted)
		}
	}
	return report
}
