package orders

import (
	"strings"
	"testing"

	"rongchapa/models"
)

func sampleBatchInput() createBatchInput {
	return createBatchInput{
		CustomerName:    "Asha Rahman",
		CustomerEmail:   "asha@example.com",
		ShippingAddress: "House 12, Road 5, Dhanmondi, Dhaka",
		DeliveryZone:    "dhaka",
		Items: []batchItemInput{
			{ProductID: "p0000000001", Quantity: 2},
			{ProductID: "p0000000002", Quantity: 1, Size: "A5"},
		},
	}
}

func TestBuildBatchInputs(t *testing.T) {
	input := sampleBatchInput()
	inputs, msg := buildBatchInputs(&input, "INV-1", "b-1")
	if msg != "" {
		t.Fatalf("valid batch rejected: %s", msg)
	}
	if len(inputs) != 2 {
		t.Fatalf("inputs = %d, want 2", len(inputs))
	}
	// only the first item carries the delivery charge
	if inputs[0].DeliveryCharge != nil {
		t.Fatal("first item charge overridden")
	}
	if inputs[1].DeliveryCharge == nil || *inputs[1].DeliveryCharge != 0 {
		t.Fatal("second item does not have a zero charge")
	}
	for _, in := range inputs {
		if in.InvoiceNumber != "INV-1" || in.BatchID != "b-1" {
			t.Fatalf("item missing shared identifiers: %+v", in)
		}
	}
}

func TestBuildBatchInputsRejectsBadItemBeforeAnyWork(t *testing.T) {
	input := sampleBatchInput()
	input.Items[1].Quantity = 0

	inputs, msg := buildBatchInputs(&input, "INV-1", "b-1")
	if msg == "" {
		t.Fatal("malformed item accepted")
	}
	if !strings.HasPrefix(msg, "Item 2:") {
		t.Fatalf("message %q does not name the bad item", msg)
	}
	if inputs != nil {
		t.Fatal("inputs returned despite validation failure")
	}
}

func TestBatchGrandTotalCoversEveryLine(t *testing.T) {
	input := sampleBatchInput()
	inputs, msg := buildBatchInputs(&input, "INV-1", "b-1")
	if msg != "" {
		t.Fatalf("valid batch rejected: %s", msg)
	}

	products := map[string]models.Product{
		"p0000000001": {ProductID: "p0000000001", BasePrice: 100},
		"p0000000002": {ProductID: "p0000000002", BasePrice: 40.5},
	}
	_, charge := models.NormalizeZone(input.DeliveryZone)

	// 100x2 + 40.5 + 60 delivery; the second line must be in the total
	if got := batchGrandTotal(products, inputs, charge); got != 300.5 {
		t.Fatalf("grand total = %v, want 300.5", got)
	}
}
