package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/kcwei/breaktrack/internal/domain/ledger"
	"github.com/kcwei/breaktrack/internal/domain/stats"
)

// StatsRepository implements repository.StatsRepository for SQLite
type StatsRepository struct {
	db *DB
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Statistics groups completed records by (user_full_name, activity_type)
// for one chat within [from, to] inclusive on start time.
func (r *StatsRepository) Statistics(ctx context.Context, chatID string, from, to time.Time) ([]stats.Row, error) {
	query := `
		SELECT
			user_full_name,
			activity_type,
			COUNT(*) as count,
			COALESCE(SUM(duration), 0) as total_duration,
			COALESCE(SUM(overtime), 0) as total_overtime,
			COUNT(CASE WHEN overtime > 0 THEN 1 END) as overtime_count
		FROM completed_records
		WHERE chat_id = ?
		AND start_time >= ? AND start_time <= ?
		GROUP BY user_full_name, activity_type
		ORDER BY user_full_name, activity_type
	`

	rows, err := r.db.QueryContext(ctx, query, chatID, formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query statistics: %w", err)
	}
	defer rows.Close()

	var result []stats.Row
	for rows.Next() {
		var row stats.Row
		if err := rows.Scan(
			&row.UserFullName,
			&row.ActivityType,
			&row.Count,
			&row.TotalDuration,
			&row.TotalOvertime,
			&row.OvertimeCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan statistics row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statistics: %w", err)
	}

	return result, nil
}

// UserHistory returns one user's completed records in a chat within
// [from, to] inclusive, newest first.
func (r *StatsRepository) UserHistory(ctx context.Context, chatID, userID string, from, to time.Time) ([]ledger.CompletedRecord, error) {
	query := selectRecordColumns + `
		WHERE chat_id = ? AND user_id = ?
		AND start_time >= ? AND start_time <= ?
		ORDER BY start_time DESC
	`

	rows, err := r.db.QueryContext(ctx, query, chatID, userID, formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query user history: %w", err)
	}
	defer rows.Close()

	var records []ledger.CompletedRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}

	return records, nil
}
