package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kcwei/breaktrack/internal/domain/ledger"
)

// Service answers read-only aggregate queries over the completed history.
type Service struct {
	repo   Repository
	loc    *time.Location
	clock  ledger.Clock
	logger *slog.Logger
}

// NewService creates a statistics service. Period windows resolve in loc;
// a nil loc defaults to UTC and a nil clock to time.Now.
func NewService(repo Repository, loc *time.Location, clock ledger.Clock, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, loc: loc, clock: clock, logger: logger}
}

// Location returns the timezone period windows resolve in.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Statistics returns one row per (user, activity type) pair for records
// whose start time falls within [from, to] inclusive, ordered by user name
// then type.
func (s *Service) Statistics(ctx context.Context, chatID string, from, to time.Time) ([]Row, error) {
	if chatID == "" {
		return nil, ErrInvalidInput
	}
	rows, err := s.repo.Statistics(ctx, chatID, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying statistics: %w", err)
	}
	return rows, nil
}

// PeriodStatistics resolves a named period against the configured timezone
// and returns its statistics.
func (s *Service) PeriodStatistics(ctx context.Context, chatID string, p Period) ([]Row, error) {
	from, to, err := Range(p, s.clock(), s.loc)
	if err != nil {
		return nil, err
	}
	return s.Statistics(ctx, chatID, from, to)
}

// UserHistory returns one user's completed records in a chat within
// [from, to] inclusive, newest first.
func (s *Service) UserHistory(ctx context.Context, chatID, userID string, from, to time.Time) ([]ledger.CompletedRecord, error) {
	if chatID == "" || userID == "" {
		return nil, ErrInvalidInput
	}
	records, err := s.repo.UserHistory(ctx, chatID, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying user history: %w", err)
	}
	return records, nil
}
