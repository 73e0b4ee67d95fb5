package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kcwei/breaktrack/internal/domain/ledger"
	"github.com/kcwei/breaktrack/internal/repository"
)

// LedgerRepository implements repository.LedgerRepository for SQLite
type LedgerRepository struct {
	db *DB
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// FindOngoing retrieves the ongoing session for an identity
func (r *LedgerRepository) FindOngoing(ctx context.Context, id ledger.Identity) (*ledger.OngoingSession, error) {
	query := `
		SELECT user_id, chat_id, activity_type, start_time,
		       user_full_name, chat_title, created_at
		FROM ongoing_sessions
		WHERE user_id = ? AND chat_id = ?
	`

	sess, err := scanOngoing(r.db.QueryRowContext(ctx, query, id.UserID, id.ChatID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ongoing session: %w", err)
	}
	return sess, nil
}

// InsertOngoing creates an ongoing session. The primary key on
// (user_id, chat_id) rejects a second session for the same identity, so
// two concurrent inserts cannot both succeed.
func (r *LedgerRepository) InsertOngoing(ctx context.Context, sess *ledger.OngoingSession) error {
	query := `
		INSERT INTO ongoing_sessions (
			user_id, chat_id, activity_type, start_time,
			user_full_name, chat_title, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		sess.UserID,
		sess.ChatID,
		sess.ActivityType,
		formatTime(sess.StartTime),
		sess.UserFullName,
		sess.ChatTitle,
		formatTime(sess.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to insert ongoing session: %w", err)
	}

	return nil
}

// ListOngoing returns every ongoing session ordered by start time
func (r *LedgerRepository) ListOngoing(ctx context.Context) ([]ledger.OngoingSession, error) {
	query := `
		SELECT user_id, chat_id, activity_type, start_time,
		       user_full_name, chat_title, created_at
		FROM ongoing_sessions
		ORDER BY start_time ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ongoing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []ledger.OngoingSession
	for rows.Next() {
		sess, err := scanOngoing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ongoing session: %w", err)
		}
		sessions = append(sessions, *sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ongoing sessions: %w", err)
	}

	return sessions, nil
}

// Complete converts the identity's ongoing session into a completed record
// within one transaction: read, append, delete. A concurrent Complete for
// the same identity observes no row and gets ErrNotFound.
func (r *LedgerRepository) Complete(ctx context.Context, id ledger.Identity, endTime time.Time, decide ledger.OutcomeFunc) (*ledger.CompletedRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	selectQuery := `
		SELECT user_id, chat_id, activity_type, start_time,
		       user_full_name, chat_title, created_at
		FROM ongoing_sessions
		WHERE user_id = ? AND chat_id = ?
	`

	sess, err := scanOngoing(tx.QueryRowContext(ctx, selectQuery, id.UserID, id.ChatID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ongoing session: %w", err)
	}

	end := endTime.UTC().Truncate(time.Second)
	duration := int64(end.Sub(sess.StartTime) / time.Second)
	if duration < 0 {
		duration = 0
	}
	overtime, status := decide(sess.ActivityType, duration)

	insertQuery := `
		INSERT INTO completed_records (
			user_id, chat_id, activity_type, start_time, end_time,
			duration, overtime, user_full_name, chat_title, status,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, insertQuery,
		sess.UserID,
		sess.ChatID,
		sess.ActivityType,
		formatTime(sess.StartTime),
		formatTime(end),
		duration,
		overtime,
		sess.UserFullName,
		sess.ChatTitle,
		string(status),
		formatTime(end),
		formatTime(end),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert completed record: %w", err)
	}

	recordID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get record id: %w", err)
	}

	deleteQuery := `
		DELETE FROM ongoing_sessions
		WHERE user_id = ? AND chat_id = ?
	`
	if _, err := tx.ExecContext(ctx, deleteQuery, id.UserID, id.ChatID); err != nil {
		return nil, fmt.Errorf("failed to delete ongoing session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &ledger.CompletedRecord{
		ID:           recordID,
		UserID:       sess.UserID,
		ChatID:       sess.ChatID,
		ActivityType: sess.ActivityType,
		StartTime:    sess.StartTime,
		EndTime:      end,
		Duration:     duration,
		Overtime:     overtime,
		UserFullName: sess.UserFullName,
		ChatTitle:    sess.ChatTitle,
		Status:       status,
		CreatedAt:    end,
		UpdatedAt:    end,
	}, nil
}

// FindRecord retrieves a completed record by id
func (r *LedgerRepository) FindRecord(ctx context.Context, recordID int64) (*ledger.CompletedRecord, error) {
	query := selectRecordColumns + `
		WHERE id = ?
	`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, recordID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return rec, nil
}

// DeleteStale removes every ongoing session that started before cutoff and
// returns the count removed. Abandoned sessions never reach the history.
func (r *LedgerRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM ongoing_sessions
		WHERE start_time < ?
	`

	result, err := r.db.ExecContext(ctx, query, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale sessions: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return removed, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOngoing(row rowScanner) (*ledger.OngoingSession, error) {
	var sess ledger.OngoingSession
	var startTime, createdAt string
	err := row.Scan(
		&sess.UserID,
		&sess.ChatID,
		&sess.ActivityType,
		&startTime,
		&sess.UserFullName,
		&sess.ChatTitle,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if sess.StartTime, err = parseTime(startTime); err != nil {
		return nil, fmt.Errorf("invalid start_time: %w", err)
	}
	if sess.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("invalid created_at: %w", err)
	}
	return &sess, nil
}

const selectRecordColumns = `
		SELECT id, user_id, chat_id, activity_type, start_time, end_time,
		       duration, overtime, user_full_name, chat_title, status,
		       created_at, updated_at
		FROM completed_records
`

func scanRecord(row rowScanner) (*ledger.CompletedRecord, error) {
	var rec ledger.CompletedRecord
	var startTime, endTime, createdAt, updatedAt, status string
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.ChatID,
		&rec.ActivityType,
		&startTime,
		&endTime,
		&rec.Duration,
		&rec.Overtime,
		&rec.UserFullName,
		&rec.ChatTitle,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Status = ledger.Status(status)
	if rec.StartTime, err = parseTime(startTime); err != nil {
		return nil, fmt.Errorf("invalid start_time: %w", err)
	}
	if rec.EndTime, err = parseTime(endTime); err != nil {
		return nil, fmt.Errorf("invalid end_time: %w", err)
	}
	if rec.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("invalid created_at: %w", err)
	}
	if rec.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("invalid updated_at: %w", err)
	}
	return &rec, nil
}
