package web_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kcwei/breaktrack/internal/domain/catalog"
	"github.com/kcwei/breaktrack/internal/domain/ledger"
	"github.com/kcwei/breaktrack/internal/domain/overtime"
	"github.com/kcwei/breaktrack/internal/domain/stats"
	"github.com/kcwei/breaktrack/internal/sqlite"
	"github.com/kcwei/breaktrack/internal/web"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	mux    *http.ServeMux
	ledger *ledger.Service
	now    time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())

	// Sessions start an hour in the past so the status endpoint, which
	// measures elapsed time against the wall clock, sees them as long
	// running.
	now := time.Now().UTC().Add(-time.Hour)
	clock := func() time.Time { return now }

	cat := catalog.Default()
	classifier := overtime.NewClassifier(cat)
	ledgerSvc := ledger.NewService(sqlite.NewLedgerRepository(db), cat, classifier, clock, nil)
	statsSvc := stats.NewService(sqlite.NewStatsRepository(db), time.UTC, clock, nil)

	h := web.NewHandler(ledgerSvc, statsSvc, cat, classifier, nil)
	return &testEnv{mux: h.Routes(), ledger: ledgerSvc, now: now}
}

func (e *testEnv) get(t *testing.T, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if rec.Code == http.StatusOK && rec.Header().Get("Content-Type") == "application/json" {
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return rec, body
	}
	return rec, nil
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec, _ := env.get(t, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestTypes(t *testing.T) {
	env := newTestEnv(t)
	rec, body := env.get(t, "/api/types")
	require.Equal(t, http.StatusOK, rec.Code)

	types := body["types"].([]any)
	require.Len(t, types, 5)
	first := types[0].(map[string]any)
	require.Equal(t, "toilet", first["id"])
	require.Equal(t, float64(360), first["max_duration"])
}

func TestStatus(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.ledger.Start(context.Background(), ledger.StartRequest{
		UserID:       "u1",
		ChatID:       "c1",
		ActivityType: "smoking",
		UserFullName: "Alice",
		ChatTitle:    "Office",
	})
	require.NoError(t, err)

	rec, body := env.get(t, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)

	ongoing := body["ongoing"].([]any)
	require.Len(t, ongoing, 1)
	sess := ongoing[0].(map[string]any)
	require.Equal(t, "u1", sess["user_id"])
	require.Equal(t, "smoking", sess["activity_type"])
	require.Greater(t, sess["elapsed"].(float64), float64(300))
	require.Equal(t, true, sess["is_overtime"])
}

func TestStatusEmpty(t *testing.T) {
	env := newTestEnv(t)
	rec, body := env.get(t, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, body["ongoing"])
}

func TestStatsWindow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.ledger.Start(ctx, ledger.StartRequest{
		UserID: "u1", ChatID: "c1", ActivityType: "toilet", UserFullName: "Alice",
	})
	require.NoError(t, err)

	_, err = env.ledger.Complete(ctx, ledger.Identity{UserID: "u1", ChatID: "c1"}, 0)
	require.NoError(t, err)

	from := env.now.AddDate(0, 0, -1).Format("2006-01-02")
	to := env.now.AddDate(0, 0, 1).Format("2006-01-02")
	rec, body := env.get(t, "/api/stats/c1?from="+from+"&to="+to)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, "c1", body["chat_id"])
	rows := body["statistics"].([]any)
	require.Len(t, rows, 1)
	row := rows[0].(map[string]any)
	require.Equal(t, "Alice", row["user_full_name"])
	require.Equal(t, "toilet", row["activity_type"])
	require.Equal(t, float64(1), row["count"])

	summary := body["summary"].(map[string]any)
	require.Equal(t, float64(1), summary["total_sessions"])
}

func TestStatsOtherChatEmpty(t *testing.T) {
	env := newTestEnv(t)
	rec, body := env.get(t, "/api/stats/nowhere?from=2026-08-28&to=2026-08-28")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, body["statistics"])

	summary := body["summary"].(map[string]any)
	require.Equal(t, float64(0), summary["total_sessions"])
}

func TestStatsBadWindow(t *testing.T) {
	env := newTestEnv(t)
	rec, _ := env.get(t, "/api/stats/c1?from=yesterday&to=today")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsUnknownPeriod(t *testing.T) {
	env := newTestEnv(t)
	rec, _ := env.get(t, "/api/stats/c1?period=fortnight")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/types", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
