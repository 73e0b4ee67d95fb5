package stats

// Row aggregates completed activity for one (user, activity type) pair
// within a queried window. Grouping is by the user's display name, not the
// user id, to match the reporting convention the chat adapter renders; two
// ids sharing a display name merge into one row. Known limitation, kept
// deliberately.
type Row struct {
	UserFullName  string `json:"user_full_name"`
	ActivityType  string `json:"activity_type"`
	Count         int64  `json:"count"`
	TotalDuration int64  `json:"total_duration"` // seconds
	TotalOvertime int64  `json:"total_overtime"` // seconds
	OvertimeCount int64  `json:"overtime_count"`
}

// Summary totals a set of rows for report headers.
type Summary struct {
	TotalSessions int64 `json:"total_sessions"`
	TotalDuration int64 `json:"total_duration"`
	TotalOvertime int64 `json:"total_overtime"`
	OvertimeCount int64 `json:"overtime_count"`
}

// Summarize folds rows into chat-wide totals.
func Summarize(rows []Row) Summary {
	var sum Summary
	for _, r := range rows {
		sum.TotalSessions += r.Count
		sum.TotalDuration += r.TotalDuration
		sum.TotalOvertime += r.TotalOvertime
		sum.OvertimeCount += r.OvertimeCount
	}
	return sum
}
