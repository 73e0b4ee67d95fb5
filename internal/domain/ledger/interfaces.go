package ledger

import (
	"context"
	"time"
)

// OutcomeFunc decides the final overtime and terminal status for a
// completing session, given its type and measured duration in seconds.
// The store calls it inside the completion transaction, so it must be pure.
type OutcomeFunc func(activityType string, durationSeconds int64) (overtime int64, status Status)

// Repository provides persistence for ongoing sessions and completed
// records. Implementations must enforce uniqueness of the ongoing session
// per identity and run Complete as a single atomic unit.
type Repository interface {
	FindOngoing(ctx context.Context, id Identity) (*OngoingSession, error)
	InsertOngoing(ctx context.Context, sess *OngoingSession) error
	ListOngoing(ctx context.Context) ([]OngoingSession, error)
	Complete(ctx context.Context, id Identity, endTime time.Time, decide OutcomeFunc) (*CompletedRecord, error)
	FindRecord(ctx context.Context, recordID int64) (*CompletedRecord, error)
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}
