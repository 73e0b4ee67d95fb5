package stats_test

import (
	"testing"
	"time"

	"github.com/kcwei/breaktrack/internal/domain/stats"
	"github.com/stretchr/testify/require"
)

// Friday in UTC+8, the default reporting timezone.
var periodNow = time.Date(2026, 8, 28, 15, 0, 0, 0, tz)

var tz = time.FixedZone("UTC+8", 8*60*60)

func TestRange_Today(t *testing.T) {
	from, to, err := stats.Range(stats.PeriodToday, periodNow, tz)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, tz), from)
	require.Equal(t, time.Date(2026, 8, 28, 23, 59, 59, 0, tz), to)
}

func TestRange_Yesterday(t *testing.T) {
	from, to, err := stats.Range(stats.PeriodYesterday, periodNow, tz)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 8, 27, 0, 0, 0, 0, tz), from)
	require.Equal(t, time.Date(2026, 8, 27, 23, 59, 59, 0, tz), to)
}

func TestRange_ThisWeek(t *testing.T) {
	// Weeks start on Sunday.
	from, to, err := stats.Range(stats.PeriodThisWeek, periodNow, tz)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, tz), from)
	require.Equal(t, time.Date(2026, 8, 29, 23, 59, 59, 0, tz), to)
}

func TestRange_LastWeek(t *testing.T) {
	from, to, err := stats.Range(stats.PeriodLastWeek, periodNow, tz)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 8, 16, 0, 0, 0, 0, tz), from)
	require.Equal(t, time.Date(2026, 8, 22, 23, 59, 59, 0, tz), to)
}

func TestRange_ThisMonth(t *testing.T) {
	from, to, err := stats.Range(stats.PeriodThisMonth, periodNow, tz)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, tz), from)
	require.Equal(t, time.Date(2026, 8, 31, 23, 59, 59, 0, tz), to)
}

func TestRange_LastMonth(t *testing.T) {
	from, to, err := stats.Range(stats.PeriodLastMonth, periodNow, tz)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, tz), from)
	require.Equal(t, time.Date(2026, 7, 31, 23, 59, 59, 0, tz), to)
}

func TestRange_UnknownPeriod(t *testing.T) {
	_, _, err := stats.Range(stats.Period("fortnight"), periodNow, tz)
	require.ErrorIs(t, err, stats.ErrUnknownPeriod)
}
