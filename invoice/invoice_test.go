package invoice

import (
	"bytes"
	"testing"
	"time"

	"rongchapa/models"
)

func f64Ptr(v float64) *float64 { return &v }

func sampleBatch() (*models.Order, []models.Order) {
	primary := &models.Order{
		OrderID:         "o000000000001",
		CustomerName:    "Asha Rahman",
		CustomerPhone:   "01700000000",
		ShippingAddress: "House 12, Road 5, Dhanmondi, Dhaka",
		DeliveryZone:    models.ZoneDhaka,
		DeliveryCharge:  60,
		Status:          models.StatusPending,
		Quantity:        2,
		Billing:         models.Billing{Number: "INV-1700000000000"},
		BatchID:         "b-1",
		Product:         &models.ProductSummary{Name: "Business Card", BasePrice: 100},
	}
	second := models.Order{
		OrderID:      "o000000000002",
		Quantity:     1,
		Size:         "A5",
		DeliveryZone: models.ZoneDhaka,
		BatchID:      "b-1",
		Product:      &models.ProductSummary{Name: "Flyer", BasePrice: 40.5},
	}
	return primary, []models.Order{*primary, second}
}

func TestBatchFilter(t *testing.T) {
	o := &models.Order{OrderID: "o1", BatchID: "b-1", Billing: models.Billing{Number: "INV-1"}}
	if got := BatchFilter(o); got["batchId"] != "b-1" {
		t.Fatalf("batch id filter = %v", got)
	}

	o.BatchID = ""
	if got := BatchFilter(o); got["billing.number"] != "INV-1" {
		t.Fatalf("billing number filter = %v", got)
	}

	o.Billing.Number = ""
	if got := BatchFilter(o); got["orderid"] != "o1" {
		t.Fatalf("orderid filter = %v", got)
	}
}

func TestBuildInvoiceTotals(t *testing.T) {
	primary, batch := sampleBatch()
	layout := BuildInvoice("Rong Chapa", primary, batch, time.Now())

	if layout.InvoiceNumber != "INV-1700000000000" {
		t.Fatalf("invoice number = %q", layout.InvoiceNumber)
	}
	if len(layout.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(layout.Lines))
	}
	if layout.Lines[0].Total != 200 {
		t.Fatalf("first line total = %v, want 200", layout.Lines[0].Total)
	}
	if layout.Subtotal != 240.5 {
		t.Fatalf("subtotal = %v, want 240.5", layout.Subtotal)
	}
	if layout.DeliveryCharge != 60 {
		t.Fatalf("delivery charge = %v, want 60", layout.DeliveryCharge)
	}
	// no billed amount recorded, so total derives from the lines
	if layout.Total != 300.5 {
		t.Fatalf("total = %v, want 300.5", layout.Total)
	}
}

func TestBuildInvoicePrefersBilledAmount(t *testing.T) {
	primary, batch := sampleBatch()
	primary.Billing.Amount = f64Ptr(275)

	layout := BuildInvoice("Rong Chapa", primary, batch, time.Now())
	if layout.Total != 275 {
		t.Fatalf("total = %v, want billed 275", layout.Total)
	}
}

func TestBuildInvoiceBatchTotalMatchesLines(t *testing.T) {
	// a batch checkout persists the whole-batch total on the primary order,
	// so the rendered total agrees with the table plus delivery
	primary, batch := sampleBatch()
	primary.Billing.Amount = f64Ptr(300.5)

	layout := BuildInvoice("Rong Chapa", primary, batch, time.Now())
	if layout.Total != layout.Subtotal+layout.DeliveryCharge {
		t.Fatalf("total %v != subtotal %v + delivery %v", layout.Total, layout.Subtotal, layout.DeliveryCharge)
	}
}

func TestBuildInvoiceFallbacks(t *testing.T) {
	primary, batch := sampleBatch()
	primary.Billing.Number = ""
	primary.DeliveryZone = ""
	primary.DeliveryCharge = 0
	batch[0].Product = nil

	layout := BuildInvoice("Rong Chapa", primary, batch, time.Now())

	if layout.InvoiceNumber != primary.OrderID {
		t.Fatalf("invoice number = %q, want order id fallback", layout.InvoiceNumber)
	}
	if layout.DeliveryZone != "dhaka" {
		t.Fatalf("zone = %q, want dhaka fallback", layout.DeliveryZone)
	}
	if layout.DeliveryCharge != 60 {
		t.Fatalf("charge = %v, want rederived 60", layout.DeliveryCharge)
	}
	// the product-less order is skipped, not rendered as a zero line
	if len(layout.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(layout.Lines))
	}
}

func TestBuildInvoiceLineLabels(t *testing.T) {
	primary, batch := sampleBatch()
	batch[0].Size = "Standard"
	batch[0].PaperType = "Matte"
	batch[0].Notes = "rounded corners"

	layout := BuildInvoice("Rong Chapa", primary, batch, time.Now())
	want := "Business Card (Size: Standard, Paper: Matte, rounded corners)"
	if layout.Lines[0].Label != want {
		t.Fatalf("label = %q, want %q", layout.Lines[0].Label, want)
	}
	if layout.Lines[1].Label != "Flyer (Size: A5)" {
		t.Fatalf("label = %q", layout.Lines[1].Label)
	}
}

func TestBuildInvoiceDeterministic(t *testing.T) {
	primary, batch := sampleBatch()
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	a := BuildInvoice("Rong Chapa", primary, batch, at)
	b := BuildInvoice("Rong Chapa", primary, batch, at)
	if len(a.Lines) != len(b.Lines) || a.Total != b.Total || a.Subtotal != b.Subtotal {
		t.Fatal("same inputs produced different layouts")
	}
}

func TestRenderProducesPDF(t *testing.T) {
	primary, batch := sampleBatch()
	layout := BuildInvoice("Rong Chapa", primary, batch, time.Now())

	pdf, err := Render(layout)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("output is not a PDF document")
	}
	if len(pdf) < 1000 {
		t.Fatalf("suspiciously small PDF: %d bytes", len(pdf))
	}
}
