package models

import "testing"

func TestZoneCharge(t *testing.T) {
	if got := ZoneDhaka.Charge(); got != 60 {
		t.Fatalf("dhaka charge = %v, want 60", got)
	}
	if got := ZoneOutside.Charge(); got != 110 {
		t.Fatalf("outside charge = %v, want 110", got)
	}
}

func TestNormalizeZone(t *testing.T) {
	zone, charge := NormalizeZone("outside")
	if zone != ZoneOutside || charge != 110 {
		t.Fatalf("outside normalized to %q / %v", zone, charge)
	}

	zone, charge = NormalizeZone("dhaka")
	if zone != ZoneDhaka || charge != 60 {
		t.Fatalf("dhaka normalized to %q / %v", zone, charge)
	}

	// unknown and empty values fall back to dhaka instead of failing
	for _, raw := range []string{"", "chittagong", "DHAKA"} {
		zone, charge = NormalizeZone(raw)
		if zone != ZoneDhaka || charge != 60 {
			t.Fatalf("NormalizeZone(%q) = %q / %v, want dhaka / 60", raw, zone, charge)
		}
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{StatusPending, StatusProcessing, StatusCompleted, StatusCancelled} {
		if !s.Valid() {
			t.Fatalf("%q should be valid", s)
		}
	}
	if OrderStatus("shipped").Valid() {
		t.Fatal("unknown status accepted")
	}
	if OrderStatus("").Valid() {
		t.Fatal("empty status accepted")
	}
}
