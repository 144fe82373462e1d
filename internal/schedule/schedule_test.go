package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A Monday well in the future so "today" never interferes.
var monday = time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

func farAway() time.Time {
	return time.Date(2026, time.January, 1, 9, 0, 0, 0, time.UTC)
}

func TestSlotsForDate_MondayMassage(t *testing.T) {
	// Full Body Massage (60 min), Monday 10:00-21:00. 20:00+60 closes
	// exactly at 21:00, so 20:00 is the last slot.
	slots := DefaultHours.SlotsForDate(monday, 60, SlotOptions{}, farAway())

	require.Len(t, slots, 11)
	assert.Equal(t, "10:00", slots[0])
	assert.Equal(t, "11:00", slots[1])
	assert.Equal(t, "20:00", slots[10])
}

func TestSlotsForDate_WithinOpeningWindow(t *testing.T) {
	for day := time.Sunday; day <= time.Saturday; day++ {
		date := monday.AddDate(0, 0, int(day-monday.Weekday()))
		window := DefaultHours[date.Weekday()]
		open, err := ToMinutes(window.Open)
		require.NoError(t, err)
		close, err := ToMinutes(window.Close)
		require.NoError(t, err)

		for _, dur := range []int{45, 60, 90} {
			for _, s := range DefaultHours.SlotsForDate(date, dur, SlotOptions{}, farAway()) {
				m, err := ToMinutes(s)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, m, open, "slot %s on %s", s, date.Weekday())
				assert.LessOrEqual(t, m+dur, close, "slot %s (+%dm) on %s", s, dur, date.Weekday())
			}
		}
	}
}

func TestSlotsForDate_NoPartialSlotAtClose(t *testing.T) {
	// 90 min on a 10:00-21:00 day: 11h window fits 7 full slots
	// (10:00..19:00), the 20:30 remainder yields no partial slot.
	slots := DefaultHours.SlotsForDate(monday, 90, SlotOptions{}, farAway())

	require.NotEmpty(t, slots)
	last, err := ToMinutes(slots[len(slots)-1])
	require.NoError(t, err)
	assert.LessOrEqual(t, last+90, 21*60)
	assert.Equal(t, "19:00", slots[len(slots)-1])
}

func TestSlotsForDate_ClosedDay(t *testing.T) {
	hours := WeekHours{
		time.Monday: {Open: "10:00", Close: "21:00"},
	}
	tuesday := monday.AddDate(0, 0, 1)

	assert.Empty(t, hours.SlotsForDate(tuesday, 60, SlotOptions{}, farAway()))
}

func TestSlotsForDate_SameDayLeadTime(t *testing.T) {
	now := time.Date(2026, time.September, 7, 12, 10, 0, 0, time.UTC)
	opts := SlotOptions{LeadTimeMinutes: 120}

	slots := DefaultHours.SlotsForDate(monday, 60, opts, now)

	// now+lead = 14:10, rounded up to the next hourly boundary -> 15:00.
	require.NotEmpty(t, slots)
	assert.Equal(t, "15:00", slots[0])
	for _, s := range slots {
		m, err := ToMinutes(s)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, m, 14*60+10)
	}
}

func TestSlotsForDate_LeadTimeOnExactBoundary(t *testing.T) {
	now := time.Date(2026, time.September, 7, 11, 0, 0, 0, time.UTC)
	opts := SlotOptions{LeadTimeMinutes: 60}

	slots := DefaultHours.SlotsForDate(monday, 60, opts, now)

	// Cutoff lands exactly on 12:00, which stays bookable.
	require.NotEmpty(t, slots)
	assert.Equal(t, "12:00", slots[0])
}

func TestSlotsForDate_LeadTimePastClosing(t *testing.T) {
	now := time.Date(2026, time.September, 7, 20, 30, 0, 0, time.UTC)
	opts := SlotOptions{LeadTimeMinutes: 120}

	slots := DefaultHours.SlotsForDate(monday, 60, opts, now)
	assert.Empty(t, slots)
}

func TestSlotsForDate_OtherDayIgnoresLeadTime(t *testing.T) {
	now := time.Date(2026, time.September, 6, 20, 30, 0, 0, time.UTC)
	opts := SlotOptions{LeadTimeMinutes: 120}

	slots := DefaultHours.SlotsForDate(monday, 60, opts, now)
	require.NotEmpty(t, slots)
	assert.Equal(t, "10:00", slots[0])
}

func TestSlotsForDate_BufferBetweenSlots(t *testing.T) {
	slots := DefaultHours.SlotsForDate(monday, 60, SlotOptions{BufferMinutes: 30}, farAway())

	require.True(t, len(slots) >= 2)
	first, _ := ToMinutes(slots[0])
	second, _ := ToMinutes(slots[1])
	assert.Equal(t, 90, second-first)
}

func TestSlotsForDate_Deterministic(t *testing.T) {
	now := farAway()
	a := DefaultHours.SlotsForDate(monday, 45, SlotOptions{LeadTimeMinutes: 60}, now)
	b := DefaultHours.SlotsForDate(monday, 45, SlotOptions{LeadTimeMinutes: 60}, now)
	assert.Equal(t, a, b)
}

func TestAvailable(t *testing.T) {
	generated := DefaultHours.SlotsForDate(monday, 60, SlotOptions{}, farAway())
	occupied := []string{"14:00:00", "10:00"}

	available := Available(generated, occupied)

	assert.NotContains(t, available, "14:00")
	assert.NotContains(t, available, "10:00")
	assert.Contains(t, available, "11:00")
	assert.Len(t, available, len(generated)-2)

	for _, s := range available {
		assert.NotEqual(t, "14:00", s)
		assert.NotEqual(t, "10:00", s)
	}
}

func TestAvailable_OccupiedNotGenerated(t *testing.T) {
	available := Available([]string{"10:00", "11:00"}, []string{"09:30", "23:00"})
	assert.Equal(t, []string{"10:00", "11:00"}, available)
}

func TestNormalizeTime(t *testing.T) {
	cases := map[string]string{
		"14:00:00": "14:00",
		"9:5":      "09:05",
		" 10:30 ":  "10:30",
		"10:30":    "10:30",
		"oops":     "oops",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeTime(in), "input %q", in)
	}
}

func TestToMinutes(t *testing.T) {
	m, err := ToMinutes("10:30")
	require.NoError(t, err)
	assert.Equal(t, 630, m)

	_, err = ToMinutes("25:00")
	assert.Error(t, err)

	_, err = ToMinutes("1030")
	assert.Error(t, err)
}

func TestServiceByName(t *testing.T) {
	s, ok := ServiceByName("Couple's Package")
	require.True(t, ok)
	assert.Equal(t, 90, s.DurationMinutes)

	_, ok = ServiceByName("Hot Stone")
	assert.False(t, ok)
}
