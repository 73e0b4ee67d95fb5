package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kcwei/breaktrack/internal/domain/catalog"
	"github.com/kcwei/breaktrack/internal/domain/overtime"
	"github.com/kcwei/breaktrack/internal/repository/repoerr"
)

// Clock supplies the current instant. Injectable for tests.
type Clock func() time.Time

// Service owns the ongoing-session table and the completed history: it
// enforces the one-session-per-identity invariant and performs the atomic
// ongoing-to-terminal transition.
type Service struct {
	repo       Repository
	catalog    *catalog.Catalog
	classifier *overtime.Classifier
	clock      Clock
	logger     *slog.Logger
}

// NewService creates a ledger service. A nil clock defaults to time.Now.
func NewService(
	repo Repository,
	cat *catalog.Catalog,
	classifier *overtime.Classifier,
	clock Clock,
	logger *slog.Logger,
) *Service {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		catalog:    cat,
		classifier: classifier,
		clock:      clock,
		logger:     logger,
	}
}

// StartRequest describes a session start.
type StartRequest struct {
	UserID       string
	ChatID       string
	ActivityType string
	UserFullName string
	ChatTitle    string
}

// Start opens a new ongoing session for the identity. It fails with
// ErrSessionConflict when a session is already in progress; the store's
// uniqueness constraint makes the check-and-insert atomic, so of two
// concurrent starts exactly one succeeds.
func (s *Service) Start(ctx context.Context, req StartRequest) (*OngoingSession, error) {
	if req.UserID == "" || req.ChatID == "" {
		return nil, ErrInvalidInput
	}
	if !s.catalog.IsValid(req.ActivityType) {
		return nil, ErrInvalidType
	}

	now := s.clock().UTC()
	sess := &OngoingSession{
		UserID:       req.UserID,
		ChatID:       req.ChatID,
		ActivityType: req.ActivityType,
		StartTime:    now,
		UserFullName: req.UserFullName,
		ChatTitle:    req.ChatTitle,
		CreatedAt:    now,
	}

	if err := s.repo.InsertOngoing(ctx, sess); err != nil {
		if errors.Is(err, repoerr.ErrConflict) {
			return nil, ErrSessionConflict
		}
		return nil, fmt.Errorf("starting session: %w", err)
	}

	s.logger.Debug("session started",
		"user_id", sess.UserID,
		"chat_id", sess.ChatID,
		"activity_type", sess.ActivityType,
	)
	return sess, nil
}

// FindOngoing returns the identity's ongoing session, or nil when none
// exists.
func (s *Service) FindOngoing(ctx context.Context, id Identity) (*OngoingSession, error) {
	sess, err := s.repo.FindOngoing(ctx, id)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return sess, nil
}

// Complete atomically converts the identity's ongoing session into a
// completed record. It returns nil when no session is ongoing: nothing to
// complete is a normal outcome, not an error. The final overtime is the
// larger of explicitOvertime and the value recomputed from the measured
// duration, honoring overrides from external timers that already detected
// overtime.
func (s *Service) Complete(ctx context.Context, id Identity, explicitOvertime int64) (*CompletedRecord, error) {
	if id.UserID == "" || id.ChatID == "" {
		return nil, ErrInvalidInput
	}

	endTime := s.clock().UTC()
	decide := func(activityType string, durationSeconds int64) (int64, Status) {
		res := s.classifier.Classify(activityType, durationSeconds)
		final := res.Overtime
		if explicitOvertime > final {
			final = explicitOvertime
		}
		if final > 0 {
			return final, StatusOvertime
		}
		return 0, StatusCompleted
	}

	rec, err := s.repo.Complete(ctx, id, endTime, decide)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("completing session: %w", err)
	}

	s.logger.Debug("session completed",
		"user_id", rec.UserID,
		"chat_id", rec.ChatID,
		"activity_type", rec.ActivityType,
		"duration", rec.Duration,
		"overtime", rec.Overtime,
		"status", rec.Status,
	)
	return rec, nil
}

// FindRecord returns the completed record with the given id, or nil when
// it does not exist.
func (s *Service) FindRecord(ctx context.Context, recordID int64) (*CompletedRecord, error) {
	rec, err := s.repo.FindRecord(ctx, recordID)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading record: %w", err)
	}
	return rec, nil
}

// ListOngoing returns every ongoing session ordered by start time.
func (s *Service) ListOngoing(ctx context.Context) ([]OngoingSession, error) {
	sessions, err := s.repo.ListOngoing(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return sessions, nil
}

// Status reports the identity's live state: how long the session has run
// and how the elapsed time relates to the type's limit. State is
// StatusNone when no session is ongoing.
func (s *Service) Status(ctx context.Context, id Identity) (*SessionStatus, error) {
	sess, err := s.FindOngoing(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return &SessionStatus{State: StatusNone}, nil
	}

	elapsed := int64(s.clock().Sub(sess.StartTime) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	res := s.classifier.Classify(sess.ActivityType, elapsed)
	remaining := res.MaxDuration - elapsed
	if remaining < 0 {
		remaining = 0
	}

	return &SessionStatus{
		State:       StatusOngoing,
		Session:     sess,
		Elapsed:     elapsed,
		Remaining:   remaining,
		IsOvertime:  res.IsOvertime,
		Overtime:    res.Overtime,
		MaxDuration: res.MaxDuration,
	}, nil
}

// CleanupStale deletes every ongoing session older than maxAge and returns
// the count removed. Stale sessions are discarded rather than recorded:
// without a reliable end time there is nothing trustworthy to append to
// the history.
func (s *Service) CleanupStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := s.clock().UTC().Add(-maxAge)
	removed, err := s.repo.DeleteStale(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting stale sessions: %w", err)
	}
	if removed > 0 {
		s.logger.Info("removed stale sessions", "count", removed, "cutoff", cutoff)
	}
	return removed, nil
}
