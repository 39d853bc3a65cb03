package models

import "testing"

func TestDeliveryLocationDeposit(t *testing.T) {
	if got := LocationSEU.Deposit(); got != 20 {
		t.Fatalf("SEU deposit = %v, want 20", got)
	}
	if got := LocationAUST.Deposit(); got != 20 {
		t.Fatalf("AUST deposit = %v, want 20", got)
	}
	if got := LocationOther.Deposit(); got != 60 {
		t.Fatalf("OTHER deposit = %v, want 60", got)
	}
}

func TestDeliveryLocationValid(t *testing.T) {
	for _, l := range []DeliveryLocation{LocationSEU, LocationAUST, LocationOther} {
		if !l.Valid() {
			t.Fatalf("%q should be valid", l)
		}
	}
	if DeliveryLocation("seu").Valid() {
		t.Fatal("lowercase location accepted")
	}
}

func TestPaperSizeLabel(t *testing.T) {
	if got := PaperPassport.Label(); got != "Passport Photo" {
		t.Fatalf("passport label = %q", got)
	}
	if got := PaperA4.Label(); got != "A4" {
		t.Fatalf("a4 label = %q", got)
	}
	// unknown sizes echo back rather than panic
	if got := PaperSize("a3").Label(); got != "a3" {
		t.Fatalf("unknown label = %q", got)
	}
}

func TestPrintEnumsValid(t *testing.T) {
	if !ColorModeBW.Valid() || !ColorModeColor.Valid() {
		t.Fatal("known color modes rejected")
	}
	if ColorMode("grayscale").Valid() {
		t.Fatal("unknown color mode accepted")
	}
	if !SidesSingle.Valid() || !SidesDouble.Valid() {
		t.Fatal("known sides rejected")
	}
	if PrintSides("triple").Valid() {
		t.Fatal("unknown sides accepted")
	}
	if PaperSize("").Valid() {
		t.Fatal("empty paper size accepted")
	}
}
