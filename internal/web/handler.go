// Package web exposes the engine's read surface as a small JSON API:
// health, live session status, and per-chat statistics.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kcwei/breaktrack/internal/domain/catalog"
	"github.com/kcwei/breaktrack/internal/domain/ledger"
	"github.com/kcwei/breaktrack/internal/domain/overtime"
	"github.com/kcwei/breaktrack/internal/domain/stats"
)

// Handler serves the JSON API.
type Handler struct {
	ledger     *ledger.Service
	stats      *stats.Service
	catalog    *catalog.Catalog
	classifier *overtime.Classifier
	logger     *slog.Logger
}

// NewHandler creates a Handler over the engine services.
func NewHandler(
	ledgerSvc *ledger.Service,
	statsSvc *stats.Service,
	cat *catalog.Catalog,
	classifier *overtime.Classifier,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		ledger:     ledgerSvc,
		stats:      statsSvc,
		catalog:    cat,
		classifier: classifier,
		logger:     logger,
	}
}

// Routes returns the API mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /api/types", h.handleTypes)
	mux.HandleFunc("GET /api/status", h.handleStatus)
	mux.HandleFunc("GET /api/stats/{chatID}", h.handleStats)
	return mux
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *Handler) handleTypes(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"types": h.catalog.All(),
	})
}

type ongoingStatus struct {
	ledger.OngoingSession
	Elapsed    int64 `json:"elapsed"`
	IsOvertime bool  `json:"is_overtime"`
	Overtime   int64 `json:"overtime"`
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.ledger.ListOngoing(r.Context())
	if err != nil {
		h.logger.Error("listing ongoing sessions failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list ongoing sessions")
		return
	}

	now := time.Now()
	statuses := make([]ongoingStatus, 0, len(sessions))
	for _, sess := range sessions {
		elapsed := int64(now.Sub(sess.StartTime) / time.Second)
		if elapsed < 0 {
			elapsed = 0
		}
		res := h.classifier.Classify(sess.ActivityType, elapsed)
		statuses = append(statuses, ongoingStatus{
			OngoingSession: sess,
			Elapsed:        elapsed,
			IsOvertime:     res.IsOvertime,
			Overtime:       res.Overtime,
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"ongoing": statuses,
	})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	chatID := r.PathValue("chatID")

	from, to, err := h.resolveWindow(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.stats.Statistics(r.Context(), chatID, from, to)
	if err != nil {
		h.logger.Error("statistics query failed", "chat_id", chatID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to query statistics")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"chat_id":    chatID,
		"from":       from.UTC().Format(time.RFC3339),
		"to":         to.UTC().Format(time.RFC3339),
		"statistics": rows,
		"summary":    stats.Summarize(rows),
	})
}

// resolveWindow reads either ?period=name or ?from=YYYY-MM-DD&to=YYYY-MM-DD.
// Without parameters it defaults to today.
func (h *Handler) resolveWindow(r *http.Request) (time.Time, time.Time, error) {
	loc := h.stats.Location()
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr != "" || toStr != "" {
		from, err := time.ParseInLocation("2006-01-02", fromStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		toDay, err := time.ParseInLocation("2006-01-02", toStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to := toDay.Add(24*time.Hour - time.Second)
		return from, to, nil
	}

	period := stats.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = stats.PeriodToday
	}
	return stats.Range(period, time.Now(), loc)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("writing response failed", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
