// Package schedule holds the weekly opening hours, the treatment catalog
// and the pure slot arithmetic: which start times are bookable on a given
// date for a given treatment.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Service is an offered treatment. Duration sets the slot spacing on the
// calendar for that treatment.
type Service struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

// Catalog is the fixed treatment menu, in display order.
var Catalog = []Service{
	{Name: "Full Body Massage", DurationMinutes: 60},
	{Name: "Deep Cleansing Facial", DurationMinutes: 60},
	{Name: "Aromatherapy", DurationMinutes: 45},
	{Name: "Body Scrub & Glow", DurationMinutes: 45},
	{Name: "Couple's Package", DurationMinutes: 90},
}

// ServiceByName returns the catalog entry for name, if offered.
func ServiceByName(name string) (Service, bool) {
	for _, s := range Catalog {
		if s.Name == name {
			return s, true
		}
	}
	return Service{}, false
}

// OpenClose is a day's opening window, both ends as "HH:MM".
type OpenClose struct {
	Open  string
	Close string
}

// WeekHours maps a weekday to its opening window. A missing weekday means
// closed all day.
type WeekHours map[time.Weekday]OpenClose

// DefaultHours is the salon's weekly schedule.
var DefaultHours = WeekHours{
	time.Sunday:    {Open: "10:00", Close: "21:00"},
	time.Monday:    {Open: "10:00", Close: "21:00"},
	time.Tuesday:   {Open: "10:00", Close: "21:00"},
	time.Wednesday: {Open: "10:30", Close: "22:00"},
	time.Thursday:  {Open: "10:30", Close: "22:00"},
	time.Friday:    {Open: "10:30", Close: "22:00"},
	time.Saturday:  {Open: "10:30", Close: "22:00"},
}

// SlotOptions tunes slot generation.
type SlotOptions struct {
	// BufferMinutes is extra time between consecutive slots.
	BufferMinutes int
	// LeadTimeMinutes is the minimum delay before the earliest same-day
	// slot, rounded up to the next slot boundary.
	LeadTimeMinutes int
}

// SlotsForDate returns the ordered bookable start times ("HH:MM") on date
// for a service of the given duration. Every slot satisfies
// start >= open and start+duration <= close. When date is the same
// calendar day as now, slots before now+lead time are dropped. An
// unconfigured weekday yields nil.
func (h WeekHours) SlotsForDate(date time.Time, durationMinutes int, opts SlotOptions, now time.Time) []string {
	if durationMinutes <= 0 {
		return nil
	}

	window, ok := h[date.Weekday()]
	if !ok {
		return nil
	}

	open, err := ToMinutes(window.Open)
	if err != nil {
		return nil
	}
	close, err := ToMinutes(window.Close)
	if err != nil {
		return nil
	}

	step := durationMinutes + opts.BufferMinutes
	earliest := open

	if sameDay(date, now) {
		cutoff := now.Hour()*60 + now.Minute() + opts.LeadTimeMinutes
		if cutoff > earliest {
			// Round up to the next slot boundary relative to open.
			offset := cutoff - open
			earliest = open + ((offset+step-1)/step)*step
		}
	}

	var slots []string
	for t := earliest; t+durationMinutes <= close; t += step {
		slots = append(slots, ToHHMM(t))
	}
	return slots
}

// Available subtracts the occupied start times from generated. Matching
// is string-exact on the normalized HH:MM form; a longer treatment does
// not block shorter slots it would overlap on the clock.
func Available(generated, occupied []string) []string {
	taken := make(map[string]struct{}, len(occupied))
	for _, t := range occupied {
		taken[NormalizeTime(t)] = struct{}{}
	}

	available := make([]string, 0, len(generated))
	for _, t := range generated {
		if _, ok := taken[NormalizeTime(t)]; !ok {
			available = append(available, t)
		}
	}
	return available
}

// NormalizeTime reduces a time string to zero-padded "HH:MM". Postgres
// TIME columns come back as "HH:MM:SS".
func NormalizeTime(s string) string {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 {
		return s
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return s
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// ToMinutes parses "HH:MM" into minutes since midnight.
func ToMinutes(hhmm string) (int, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time out of range %q", hhmm)
	}
	return h*60 + m, nil
}

// ToHHMM formats minutes since midnight as "HH:MM".
func ToHHMM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
