package mocks

import (
	"context"
	"time"

	"github.com/kcwei/breaktrack/internal/domain/ledger"
	"github.com/kcwei/breaktrack/internal/domain/stats"
	"github.com/stretchr/testify/mock"
)

// LedgerRepository is a mock for repository.LedgerRepository.
type LedgerRepository struct {
	mock.Mock
}

func (m *LedgerRepository) FindOngoing(ctx context.Context, id ledger.Identity) (*ledger.OngoingSession, error) {
	args := m.Called(ctx, id)
	if sess, ok := args.Get(0).(*ledger.OngoingSession); ok {
		return sess, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LedgerRepository) InsertOngoing(ctx context.Context, sess *ledger.OngoingSession) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *LedgerRepository) ListOngoing(ctx context.Context) ([]ledger.OngoingSession, error) {
	args := m.Called(ctx)
	if sessions, ok := args.Get(0).([]ledger.OngoingSession); ok {
		return sessions, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LedgerRepository) Complete(ctx context.Context, id ledger.Identity, endTime time.Time, decide ledger.OutcomeFunc) (*ledger.CompletedRecord, error) {
	args := m.Called(ctx, id, endTime, decide)
	if rec, ok := args.Get(0).(*ledger.CompletedRecord); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LedgerRepository) FindRecord(ctx context.Context, recordID int64) (*ledger.CompletedRecord, error) {
	args := m.Called(ctx, recordID)
	if rec, ok := args.Get(0).(*ledger.CompletedRecord); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LedgerRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// StatsRepository is a mock for repository.StatsRepository.
type StatsRepository struct {
	mock.Mock
}

func (m *StatsRepository) Statistics(ctx context.Context, chatID string, from, to time.Time) ([]stats.Row, error) {
	args := m.Called(ctx, chatID, from, to)
	if rows, ok := args.Get(0).([]stats.Row); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StatsRepository) UserHistory(ctx context.Context, chatID, userID string, from, to time.Time) ([]ledger.CompletedRecord, error) {
	args := m.Called(ctx, chatID, userID, from, to)
	if records, ok := args.Get(0).([]ledger.CompletedRecord); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}
