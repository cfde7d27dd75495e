package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes recorded by ReportsTotal.
const (
	OutcomeBalanced   = "balanced"
	OutcomeDiscrepant = "discrepant"
	OutcomeFailed     = "failed"
)

var (
	ReportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "reconciliation_reports_total", Help: "Reconciliation reports generated from uploads"},
		[]string{"outcome"},
	)
	TradeRowsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "reconciliation_trade_rows_total", Help: "Trade rows read from uploaded blotters"},
	)
)

func init() {
	prometheus.MustRegister(ReportsTotal, TradeRowsTotal)
}
