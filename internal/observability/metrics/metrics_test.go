package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestBookingMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)
	m.ObserveBooking("success", 0.02)
	m.ObserveBooking("slot_taken", 0)
	m.ObserveSlotQuery()
	m.ObserveMessage("confirmation", true)
	m.ObserveRetentionSweep()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected registered metric families")
	}
}

func TestBookingMetricsNilSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObserveBooking("success", 0.1)
	m.ObserveSlotQuery()
	m.ObserveMessage("retention", false)
	m.ObserveRetentionSweep()
}
