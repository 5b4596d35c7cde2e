package scheduling

import (
	"fmt"
	"time"

	"github.com/soraiaclinic/clinic-platform/internal/appointments"
)

const dateLayout = "2006-01-02"

// Windows describes the clinic's daily attendance blocks. Slot candidates
// start at the block opening and step duration+buffer minutes, stopping
// strictly before the block close.
type Windows struct {
	MorningStart   string // "08:00"
	MorningEnd     string // "12:00"
	AfternoonStart string // "13:30"
	AfternoonEnd   string // "18:00"
	BufferMin      int    // gap between sessions
}

// DefaultWindows returns the clinic's standard attendance blocks.
func DefaultWindows() Windows {
	return Windows{
		MorningStart:   "08:00",
		MorningEnd:     "12:00",
		AfternoonStart: "13:30",
		AfternoonEnd:   "18:00",
		BufferMin:      10,
	}
}

// Calculator produces bookable start times for a calendar day. It is a pure
// computation over the appointment list handed to it; all clock comparisons
// happen in the clinic's fixed civil time zone.
type Calculator struct {
	windows         Windows
	defaultDuration int
	loc             *time.Location

	morningStart, morningEnd     int // minutes since midnight
	afternoonStart, afternoonEnd int
}

// NewCalculator builds a Calculator. An invalid timezone falls back to UTC;
// malformed window clocks are rejected.
func NewCalculator(windows Windows, defaultDurationMin int, timezone string) (*Calculator, error) {
	if defaultDurationMin <= 0 {
		defaultDurationMin = 50
	}
	if windows.BufferMin < 0 {
		windows.BufferMin = 0
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	c := &Calculator{
		windows:         windows,
		defaultDuration: defaultDurationMin,
		loc:             loc,
	}

	for _, w := range []struct {
		clock string
		dst   *int
	}{
		{windows.MorningStart, &c.morningStart},
		{windows.MorningEnd, &c.morningEnd},
		{windows.AfternoonStart, &c.afternoonStart},
		{windows.AfternoonEnd, &c.afternoonEnd},
	} {
		min, err := parseClock(w.clock)
		if err != nil {
			return nil, fmt.Errorf("scheduling: parse window clock %q: %w", w.clock, err)
		}
		*w.dst = min
	}

	return c, nil
}

// Location returns the clinic's time zone.
func (c *Calculator) Location() *time.Location {
	return c.loc
}

// Today formats the current civil date in the clinic's zone.
func (c *Calculator) Today(now time.Time) string {
	return now.In(c.loc).Format(dateLayout)
}

// DaySlots generates the full candidate list for any day: both attendance
// blocks, stepped by duration+buffer, in chronological order. The list does
// not depend on which date is targeted.
func (c *Calculator) DaySlots(durationMin int) []string {
	if durationMin <= 0 {
		durationMin = c.defaultDuration
	}
	step := durationMin + c.windows.BufferMin
	if step < 1 {
		step = 1
	}

	slots := make([]string, 0, 8)
	for cur := c.morningStart; cur < c.morningEnd; cur += step {
		slots = append(slots, formatClock(cur))
	}
	for cur := c.afternoonStart; cur < c.afternoonEnd; cur += step {
		slots = append(slots, formatClock(cur))
	}
	return slots
}

// Available filters the candidate list for a target date: slots already in
// the past (when the date is today in the clinic zone) and slots occupied by
// a non-cancelled appointment are dropped. An unparseable date yields no
// slots rather than an error.
func (c *Calculator) Available(date string, durationMin int, now time.Time, existing []*appointments.Appointment) []string {
	if _, err := time.ParseInLocation(dateLayout, date, c.loc); err != nil {
		return []string{}
	}

	local := now.In(c.loc)
	isToday := local.Format(dateLayout) == date
	nowMinutes := local.Hour()*60 + local.Minute()

	occupied := make(map[string]struct{})
	for _, a := range existing {
		if a.Date == date && a.Status != appointments.StatusCancelled {
			occupied[a.Time] = struct{}{}
		}
	}

	out := make([]string, 0)
	for _, slot := range c.DaySlots(durationMin) {
		if isToday {
			min, err := parseClock(slot)
			// A slot equal to the current minute counts as already past.
			if err != nil || min <= nowMinutes {
				continue
			}
		}
		if _, taken := occupied[slot]; taken {
			continue
		}
		out = append(out, slot)
	}
	return out
}

func parseClock(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
