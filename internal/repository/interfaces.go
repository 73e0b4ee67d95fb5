package repository

import (
	"context"
	"time"

	"github.com/kcwei/breaktrack/internal/domain/ledger"
	"github.com/kcwei/breaktrack/internal/domain/stats"
)

// LedgerRepository persists ongoing sessions and the completed history.
// Implementations guarantee at most one ongoing session per identity and
// run Complete as a single atomic unit per identity: the read of the
// ongoing row, the append of the completed record, and the delete of the
// ongoing row must not interleave with a concurrent Complete or
// InsertOngoing for the same identity.
type LedgerRepository interface {
	FindOngoing(ctx context.Context, id ledger.Identity) (*ledger.OngoingSession, error)
	InsertOngoing(ctx context.Context, sess *ledger.OngoingSession) error
	ListOngoing(ctx context.Context) ([]ledger.OngoingSession, error)
	Complete(ctx context.Context, id ledger.Identity, endTime time.Time, decide ledger.OutcomeFunc) (*ledger.CompletedRecord, error)
	FindRecord(ctx context.Context, recordID int64) (*ledger.CompletedRecord, error)
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// StatsRepository answers aggregate queries over completed records.
type StatsRepository interface {
	Statistics(ctx context.Context, chatID string, from, to time.Time) ([]stats.Row, error)
	UserHistory(ctx context.Context, chatID, userID string, from, to time.Time) ([]ledger.CompletedRecord, error)
}
