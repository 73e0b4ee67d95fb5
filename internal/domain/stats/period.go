package stats

import "time"

// Period names a relative reporting window resolved against a timezone.
type Period string

const (
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	PeriodThisWeek  Period = "thisweek"
	PeriodLastWeek  Period = "lastweek"
	PeriodThisMonth Period = "thismonth"
	PeriodLastMonth Period = "lastmonth"
)

// Range resolves a period to an inclusive [from, to] window around now in
// loc. Weeks start on Sunday, matching the reporting convention of the
// chat adapter.
func Range(p Period, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	local := now.In(loc)
	switch p {
	case PeriodToday:
		return startOfDay(local), endOfDay(local), nil
	case PeriodYesterday:
		y := local.AddDate(0, 0, -1)
		return startOfDay(y), endOfDay(y), nil
	case PeriodThisWeek:
		start := startOfWeek(local)
		return start, endOfDay(start.AddDate(0, 0, 6)), nil
	case PeriodLastWeek:
		start := startOfWeek(local).AddDate(0, 0, -7)
		return start, endOfDay(start.AddDate(0, 0, 6)), nil
	case PeriodThisMonth:
		start := startOfMonth(local)
		return start, endOfDay(start.AddDate(0, 1, -1)), nil
	case PeriodLastMonth:
		start := startOfMonth(local).AddDate(0, -1, 0)
		return start, endOfDay(start.AddDate(0, 1, -1)), nil
	default:
		return time.Time{}, time.Time{}, ErrUnknownPeriod
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

func startOfWeek(t time.Time) time.Time {
	return startOfDay(t.AddDate(0, 0, -int(t.Weekday())))
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
