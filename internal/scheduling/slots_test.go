package scheduling

import (
	"reflect"
	"testing"
	"time"

	"github.com/soraiaclinic/clinic-platform/internal/appointments"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	calc, err := NewCalculator(DefaultWindows(), 50, "America/Sao_Paulo")
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}
	return calc
}

func TestDaySlotsDefaultDuration(t *testing.T) {
	calc := newTestCalculator(t)

	got := calc.DaySlots(50)
	want := []string{"08:00", "09:00", "10:00", "11:00", "13:30", "14:30", "15:30", "16:30", "17:30"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DaySlots(50) = %v, want %v", got, want)
	}
}

func TestDaySlotsStaysInsideBlocks(t *testing.T) {
	calc := newTestCalculator(t)

	for _, dur := range []int{20, 30, 50, 90, 200} {
		prev := -1
		for _, slot := range calc.DaySlots(dur) {
			min, err := parseClock(slot)
			if err != nil {
				t.Fatalf("slot %q does not parse: %v", slot, err)
			}
			if min <= prev {
				t.Fatalf("duration %d: slots not strictly increasing at %q", dur, slot)
			}
			prev = min

			morning := min >= 8*60 && min < 12*60
			afternoon := min >= 13*60+30 && min < 18*60
			if !morning && !afternoon {
				t.Fatalf("duration %d: slot %q outside attendance blocks", dur, slot)
			}
		}
	}
}

func TestDaySlotsZeroDurationUsesDefault(t *testing.T) {
	calc := newTestCalculator(t)

	if got, want := calc.DaySlots(0), calc.DaySlots(50); !reflect.DeepEqual(got, want) {
		t.Fatalf("DaySlots(0) = %v, want default-duration list %v", got, want)
	}
}

func TestAvailableTodayDropsPastSlots(t *testing.T) {
	calc := newTestCalculator(t)

	// 10:00 local clinic time. 08:00 and 09:00 are past; 10:00 itself counts
	// as past because the comparison is inclusive.
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, calc.Location())
	got := calc.Available("2026-03-10", 50, now, nil)
	want := []string{"11:00", "13:30", "14:30", "15:30", "16:30", "17:30"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Available(today) = %v, want %v", got, want)
	}
}

func TestAvailableFutureDateKeepsMorning(t *testing.T) {
	calc := newTestCalculator(t)

	now := time.Date(2026, 3, 10, 17, 45, 0, 0, calc.Location())
	got := calc.Available("2026-03-11", 50, now, nil)
	if !reflect.DeepEqual(got, calc.DaySlots(50)) {
		t.Fatalf("Available(tomorrow) = %v, want full day %v", got, calc.DaySlots(50))
	}
}

func TestAvailableExcludesOccupiedSlots(t *testing.T) {
	calc := newTestCalculator(t)

	existing := []*appointments.Appointment{
		{Date: "2026-03-11", Time: "09:00", Status: appointments.StatusScheduled},
		{Date: "2026-03-11", Time: "14:30", Status: appointments.StatusCompleted},
		{Date: "2026-03-11", Time: "10:00", Status: appointments.StatusCancelled},
		{Date: "2026-03-12", Time: "11:00", Status: appointments.StatusScheduled},
	}

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, calc.Location())
	got := calc.Available("2026-03-11", 50, now, existing)

	for _, blocked := range []string{"09:00", "14:30"} {
		for _, slot := range got {
			if slot == blocked {
				t.Fatalf("slot %s should be occupied, got %v", blocked, got)
			}
		}
	}
	// Cancelled appointment frees its slot; other dates do not bleed over.
	for _, free := range []string{"10:00", "11:00"} {
		found := false
		for _, slot := range got {
			if slot == free {
				found = true
			}
		}
		if !found {
			t.Fatalf("slot %s should be available, got %v", free, got)
		}
	}
}

func TestAvailableUnparseableDate(t *testing.T) {
	calc := newTestCalculator(t)

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, calc.Location())
	for _, date := range []string{"not-a-date", "2026-13-40", "10/03/2026", ""} {
		got := calc.Available(date, 50, now, nil)
		if got == nil || len(got) != 0 {
			t.Fatalf("Available(%q) = %v, want empty non-nil list", date, got)
		}
	}
}

func TestTodayUsesClinicZone(t *testing.T) {
	calc := newTestCalculator(t)

	// 01:30 UTC is still the previous civil day in Sao Paulo (UTC-3).
	now := time.Date(2026, 3, 11, 1, 30, 0, 0, time.UTC)
	if got := calc.Today(now); got != "2026-03-10" {
		t.Fatalf("Today = %q, want 2026-03-10", got)
	}
}

func TestNewCalculatorRejectsBadWindows(t *testing.T) {
	w := DefaultWindows()
	w.MorningStart = "8am"
	if _, err := NewCalculator(w, 50, "America/Sao_Paulo"); err == nil {
		t.Fatal("expected error for malformed window clock")
	}
}
