package orders

import (
	"math"
	"testing"
	"time"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }

func TestBuildBillingUpdateEmptyPatch(t *testing.T) {
	if _, err := BuildBillingUpdate(BillingPatch{}, time.Now()); err != ErrEmptyBillingPatch {
		t.Fatalf("empty patch: got %v, want ErrEmptyBillingPatch", err)
	}
}

func TestBuildBillingUpdatePartial(t *testing.T) {
	now := time.Now()

	// notes only: amount and number must stay untouched
	set, err := BuildBillingUpdate(BillingPatch{Notes: strPtr("cash on delivery")}, now)
	if err != nil {
		t.Fatalf("notes-only patch failed: %v", err)
	}
	if set["billing.notes"] != "cash on delivery" {
		t.Fatalf("notes = %v", set["billing.notes"])
	}
	if _, ok := set["billing.amount"]; ok {
		t.Fatal("amount set by a notes-only patch")
	}
	if _, ok := set["billing.number"]; ok {
		t.Fatal("number set by a notes-only patch")
	}
	if set["billing.generatedAt"] != now {
		t.Fatal("generatedAt not refreshed")
	}
}

func TestBuildBillingUpdateFull(t *testing.T) {
	now := time.Now()
	set, err := BuildBillingUpdate(BillingPatch{
		Number: strPtr("INV-1700000000000"),
		Amount: f64Ptr(310),
		Notes:  strPtr("paid"),
	}, now)
	if err != nil {
		t.Fatalf("full patch failed: %v", err)
	}
	if set["billing.number"] != "INV-1700000000000" {
		t.Fatalf("number = %v", set["billing.number"])
	}
	if set["billing.amount"] != 310.0 {
		t.Fatalf("amount = %v", set["billing.amount"])
	}
	if set["billing.notes"] != "paid" {
		t.Fatalf("notes = %v", set["billing.notes"])
	}
}

func TestBuildBillingUpdateDropsNonFiniteAmount(t *testing.T) {
	// a patch that only carries NaN has nothing left to apply
	if _, err := BuildBillingUpdate(BillingPatch{Amount: f64Ptr(math.NaN())}, time.Now()); err != ErrEmptyBillingPatch {
		t.Fatalf("NaN-only patch: got %v, want ErrEmptyBillingPatch", err)
	}

	set, err := BuildBillingUpdate(BillingPatch{
		Amount: f64Ptr(math.Inf(1)),
		Notes:  strPtr("kept"),
	}, time.Now())
	if err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	if _, ok := set["billing.amount"]; ok {
		t.Fatal("infinite amount survived")
	}
	if set["billing.notes"] != "kept" {
		t.Fatal("sibling field lost")
	}
}

func TestComputeOrderTotal(t *testing.T) {
	if got := ComputeOrderTotal(100, 2, 110); got != 310 {
		t.Fatalf("total = %v, want 310", got)
	}
	if got := ComputeOrderTotal(49.99, 3, 60); got != 209.97 {
		t.Fatalf("total = %v, want 209.97", got)
	}
	// rounding happens at the total, not per line
	if got := ComputeOrderTotal(0.335, 2, 0); got != 0.67 {
		t.Fatalf("total = %v, want 0.67", got)
	}
}

func TestMintInvoiceNumber(t *testing.T) {
	number := MintInvoiceNumber()
	if len(number) < 5 || number[:4] != "INV-" {
		t.Fatalf("invoice number %q lacks INV- prefix", number)
	}
	// numbers minted in the same millisecond must still differ
	if MintInvoiceNumber() == number {
		t.Fatal("two minted invoice numbers collided")
	}
}

func TestBuildBillingUpdateKeepsNegativeAmount(t *testing.T) {
	// amounts are only dropped when non-finite; a refund-style negative
	// value is stored as supplied
	set, err := BuildBillingUpdate(BillingPatch{Amount: f64Ptr(-50)}, time.Now())
	if err != nil {
		t.Fatalf("negative amount patch failed: %v", err)
	}
	if set["billing.amount"] != -50.0 {
		t.Fatalf("amount = %v, want -50", set["billing.amount"])
	}
}
