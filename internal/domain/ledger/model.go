package ledger

import "time"

// Status represents the lifecycle state of an activity session.
type Status string

const (
	// StatusNone means no session exists for the identity.
	StatusNone Status = "none"
	// StatusOngoing means a session is in progress.
	StatusOngoing Status = "ongoing"
	// StatusCompleted means the session finished within its limit.
	StatusCompleted Status = "completed"
	// StatusOvertime means the session finished over its limit.
	StatusOvertime Status = "overtime"
)

// Identity is the compound session key. At most one ongoing session may
// exist per identity; keeping the parts separate avoids the collisions a
// concatenated string key would allow.
type Identity struct {
	UserID string `json:"user_id"`
	ChatID string `json:"chat_id"`
}

// OngoingSession is an in-progress activity for one user in one chat.
type OngoingSession struct {
	UserID       string    `json:"user_id"`
	ChatID       string    `json:"chat_id"`
	ActivityType string    `json:"activity_type"`
	StartTime    time.Time `json:"start_time"`
	UserFullName string    `json:"user_full_name"`
	ChatTitle    string    `json:"chat_title"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity returns the session's compound key.
func (s *OngoingSession) Identity() Identity {
	return Identity{UserID: s.UserID, ChatID: s.ChatID}
}

// CompletedRecord is the immutable history entry written when a session
// reaches a terminal outcome.
type CompletedRecord struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"user_id"`
	ChatID       string    `json:"chat_id"`
	ActivityType string    `json:"activity_type"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Duration     int64     `json:"duration"` // seconds
	Overtime     int64     `json:"overtime"` // seconds, 0 if none
	UserFullName string    `json:"user_full_name"`
	ChatTitle    string    `json:"chat_title"`
	Status       Status    `json:"status"` // completed or overtime
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SessionStatus describes the live state of one identity, including how
// the elapsed time relates to the activity type's limit.
type SessionStatus struct {
	State       Status          `json:"state"`
	Session     *OngoingSession `json:"session,omitempty"`
	Elapsed     int64           `json:"elapsed"`   // seconds since start
	Remaining   int64           `json:"remaining"` // seconds until the limit, 0 once passed
	IsOvertime  bool            `json:"is_overtime"`
	Overtime    int64           `json:"overtime"`
	MaxDuration int64           `json:"max_duration"`
}
