package stats

import (
	"context"
	"time"

	"github.com/kcwei/breaktrack/internal/domain/ledger"
)

// Repository provides aggregate queries over the completed history.
type Repository interface {
	Statistics(ctx context.Context, chatID string, from, to time.Time) ([]Row, error)
	UserHistory(ctx context.Context, chatID, userID string, from, to time.Time) ([]ledger.CompletedRecord, error)
}
