package schedule

import (
	"errors"
	"time"
)

// RangeKey is a named date range used by the admin views.
type RangeKey string

const (
	RangeUpcoming RangeKey = "upcoming"
	RangeToday    RangeKey = "today"
	RangeWeek     RangeKey = "week"
	RangeLast30   RangeKey = "last30"
	RangeAll      RangeKey = "all"
	RangeCustom   RangeKey = "custom"
)

const isoDate = "2006-01-02"

var ErrUnknownRange = errors.New("unknown date range")

// DateRange is a closed [From, To] interval of ISO dates. Empty strings
// mean unbounded on that side.
type DateRange struct {
	From string
	To   string
}

// Contains reports whether the ISO date d falls inside the range.
// String comparison is safe for zero-padded ISO dates.
func (r DateRange) Contains(d string) bool {
	if r.From != "" && d < r.From {
		return false
	}
	if r.To != "" && d > r.To {
		return false
	}
	return true
}

// ResolveRange turns a named range into concrete dates relative to now.
// Custom ranges pass from/to through as given; either side may be empty.
func ResolveRange(key RangeKey, now time.Time, customFrom, customTo string) (DateRange, error) {
	today := now.Format(isoDate)

	switch key {
	case RangeUpcoming:
		return DateRange{From: today, To: now.AddDate(0, 0, 90).Format(isoDate)}, nil
	case RangeToday:
		return DateRange{From: today, To: today}, nil
	case RangeWeek:
		ws := startOfWeek(now)
		return DateRange{From: ws.Format(isoDate), To: ws.AddDate(0, 0, 6).Format(isoDate)}, nil
	case RangeLast30:
		return DateRange{From: now.AddDate(0, 0, -30).Format(isoDate), To: today}, nil
	case RangeAll:
		return DateRange{}, nil
	case RangeCustom:
		return DateRange{From: customFrom, To: customTo}, nil
	}
	return DateRange{}, ErrUnknownRange
}

// startOfWeek returns the Monday of now's week, at midnight.
func startOfWeek(now time.Time) time.Time {
	offset := (int(now.Weekday()) + 6) % 7
	d := now.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}
