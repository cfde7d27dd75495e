// Package server exposes blotter reconciliation over HTTP: an operator uploads
// the day's spreadsheet and receives the netting report as JSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"trade-netting/internal/domain"
)

const uploadField = "file"

// Reconciler nets one uploaded blotter.
type Reconciler interface {
	ReconcileUpload(ctx context.Context, src io.Reader, filename string) (*domain.ReconciliationReport, error)
}

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ReportResponse is the data of a successful reconciliation.
type ReportResponse struct {
	RequestID     string                  `json:"request_id"`
	Balanced      bool                    `json:"balanced"`
	RowsRead      int                     `json:"rows_read"`
	RowsNetted    int                     `json:"rows_netted"`
	Entries       []domain.FormattedEntry `json:"entries,omitempty"`
	Discrepancies []domain.FormattedEntry `json:"discrepancies"`
}

// ReconciliationHandler serves the upload endpoints.
type ReconciliationHandler struct {
	reconciler     Reconciler
	maxUploadBytes int64
	log            zerolog.Logger
}

// NewReconciliationHandler creates a handler accepting uploads of at most maxUploadBytes.
func NewReconciliationHandler(r Reconciler, maxUploadBytes int64, log zerolog.Logger) *ReconciliationHandler {
	return &ReconciliationHandler{reconciler: r, maxUploadBytes: maxUploadBytes, log: log}
}

// NewRouter registers the reconciliation, health and metrics routes.
func NewRouter(h *ReconciliationHandler) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/reconcile", h.Reconcile).Methods(http.MethodPost)
	router.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return router
}

// Reconcile nets the uploaded blotter. With view=discrepancies only the
// tickers that do not net are returned.
func (h *ReconciliationHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	log := h.log.With().Str("request_id", requestID).Logger()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, header, err := r.FormFile(uploadField)
	if err != nil {
		ReportsTotal.WithLabelValues(OutcomeFailed).Inc()
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn().Err(err).Int64("limit_bytes", tooLarge.Limit).Msg("upload too large")
			writeJSON(w, log, http.StatusRequestEntityTooLarge, APIResponse{
				Status:  "error",
				Message: fmt.Sprintf("the uploaded file exceeds the limit of %s", formatBytes(tooLarge.Limit)),
			})
			return
		}
		log.Warn().Err(err).Msg("invalid upload")
		writeJSON(w, log, http.StatusBadRequest, APIResponse{
			Status:  "error",
			Message: "a multipart form with an .xlsx or .csv file in field \"file\" is required",
		})
		return
	}
	defer file.Close()

	report, err := h.reconciler.ReconcileUpload(r.Context(), file, header.Filename)
	if err != nil {
		ReportsTotal.WithLabelValues(OutcomeFailed).Inc()
		status := http.StatusInternalServerError
		var schemaErr *domain.SchemaError
		var formatErr *domain.DataFormatError
		if errors.As(err, &schemaErr) || errors.As(err, &formatErr) {
			status = http.StatusUnprocessableEntity
		}
		log.Error().Err(err).Str("filename", header.Filename).Int("status", status).Msg("reconciliation failed")
		writeJSON(w, log, status, APIResponse{
			Status:  "error",
			Message: domain.UserMessage(err),
		})
		return
	}

	TradeRowsTotal.Add(float64(report.RowsRead))
	if report.Balanced {
		ReportsTotal.WithLabelValues(OutcomeBalanced).Inc()
	} else {
		ReportsTotal.WithLabelValues(OutcomeDiscrepant).Inc()
	}
	log.Info().Str("filename", header.Filename).Bool("balanced", report.Balanced).Msg("reconciliation served")

	data := ReportResponse{
		RequestID:     requestID,
		Balanced:      report.Balanced,
		RowsRead:      report.RowsRead,
		RowsNetted:    report.RowsNetted,
		Discrepancies: report.Discrepancies,
	}
	if r.URL.Query().Get("view") != "discrepancies" {
		data.Entries = report.Entries
	}
	writeJSON(w, log, http.StatusOK, APIResponse{Status: "success", Data: data})
}

// Health reports that the service is up.
func (h *ReconciliationHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.log, http.StatusOK, APIResponse{Status: "success"})
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, log zerolog.Logger) error {
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Info().Str("addr", addr).Msg("server starting")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, status int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Int("status", status).Msg("failed to write response")
	}
}

// formatBytes renders a size limit the way operators configure it.
func formatBytes(n int64) string {
	if n >= 1<<20 && n%(1<<20) == 0 {
		return fmt.Sprintf("%d MB", n>>20)
	}
	return fmt.Sprintf("%d bytes", n)
}
