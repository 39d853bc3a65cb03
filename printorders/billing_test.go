package printorders

import (
	"math"
	"testing"
	"time"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }

func TestBuildBillingUpdateTrims(t *testing.T) {
	now := time.Now()
	set, err := BuildBillingUpdate(BillingPatch{
		Number: strPtr("  INV-1700000000000  "),
		Notes:  strPtr("  deposit received  "),
	}, now)
	if err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	if set["billing.number"] != "INV-1700000000000" {
		t.Fatalf("number = %v", set["billing.number"])
	}
	if set["billing.notes"] != "deposit received" {
		t.Fatalf("notes = %v", set["billing.notes"])
	}
	if set["billing.generatedAt"] != now {
		t.Fatal("generatedAt not refreshed")
	}
}

func TestBuildBillingUpdateDropsBlankFields(t *testing.T) {
	// whitespace-only number and notes vanish, so this patch applies nothing
	_, err := BuildBillingUpdate(BillingPatch{
		Number: strPtr("   "),
		Notes:  strPtr(""),
	}, time.Now())
	if err != ErrEmptyBillingPatch {
		t.Fatalf("blank patch: got %v, want ErrEmptyBillingPatch", err)
	}
}

func TestBuildBillingUpdateAmount(t *testing.T) {
	set, err := BuildBillingUpdate(BillingPatch{Amount: f64Ptr(80)}, time.Now())
	if err != nil {
		t.Fatalf("amount patch failed: %v", err)
	}
	if set["billing.amount"] != 80.0 {
		t.Fatalf("amount = %v", set["billing.amount"])
	}

	if _, err := BuildBillingUpdate(BillingPatch{Amount: f64Ptr(math.NaN())}, time.Now()); err != ErrEmptyBillingPatch {
		t.Fatalf("NaN amount: got %v, want ErrEmptyBillingPatch", err)
	}

	// only non-finite amounts are dropped; negatives are stored as supplied
	set, err = BuildBillingUpdate(BillingPatch{Amount: f64Ptr(-20)}, time.Now())
	if err != nil {
		t.Fatalf("negative amount patch failed: %v", err)
	}
	if set["billing.amount"] != -20.0 {
		t.Fatalf("amount = %v, want -20", set["billing.amount"])
	}
}

func TestCreateInputValidate(t *testing.T) {
	base := func() createInput {
		return createInput{
			Description:        "50 page thesis",
			ColorMode:          "black_white",
			Sides:              "double",
			PaperSize:          "a4",
			Quantity:           1,
			CollectionTime:     "2026-09-01T10:00:00Z",
			DeliveryLocation:   "SEU",
			PaymentTransaction: "TXN123456",
		}
	}

	in := base()
	if msg := in.validate(); msg != "" {
		t.Fatalf("valid input rejected: %s", msg)
	}

	in = base()
	in.ColorMode = "grayscale"
	if in.validate() == "" {
		t.Fatal("bad color mode accepted")
	}

	in = base()
	in.Quantity = 0
	if in.validate() == "" {
		t.Fatal("zero quantity accepted")
	}

	in = base()
	in.PaymentTransaction = ""
	if in.validate() == "" {
		t.Fatal("missing payment transaction accepted")
	}

	// OTHER requires an address, campus pickups do not
	in = base()
	in.DeliveryLocation = "OTHER"
	if in.validate() == "" {
		t.Fatal("OTHER without address accepted")
	}
	in.DeliveryAddress = "House 12, Road 5, Dhanmondi"
	if msg := in.validate(); msg != "" {
		t.Fatalf("OTHER with address rejected: %s", msg)
	}
}
