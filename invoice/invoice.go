package invoice

import (
	"math"
	"strings"
	"time"

	"rongchapa/models"
	"rongchapa/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// Line is one rendered row of the invoice table.
type Line struct {
	Label     string
	Quantity  int
	UnitPrice float64
	Total     float64
}

// Layout is everything the PDF renderer needs, fully computed. Building it
// has no side effects, so the same records always produce the same layout.
type Layout struct {
	Business        string
	InvoiceNumber   string
	Date            time.Time
	Status          string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	DeliveryZone    string
	Lines           []Line
	Subtotal        float64
	DeliveryCharge  float64
	Total           float64
	BillingNotes    string
}

// BatchFilter resolves the group an order belongs to: its batch id, else
// its shared invoice number, else the order alone.
func BatchFilter(primary *models.Order) bson.M {
	if primary.BatchID != "" {
		return bson.M{"batchId": primary.BatchID}
	}
	if primary.Billing.Number != "" {
		return bson.M{"billing.number": primary.Billing.Number}
	}
	return bson.M{"orderid": primary.OrderID}
}

// lineLabel composes the item description from the product name and any
// present size/paper/notes descriptors.
func lineLabel(o *models.Order) string {
	name := "Product"
	if o.Product != nil && o.Product.Name != "" {
		name = o.Product.Name
	}

	var descriptors []string
	if o.Size != "" {
		descriptors = append(descriptors, "Size: "+o.Size)
	}
	if o.PaperType != "" {
		descriptors = append(descriptors, "Paper: "+o.PaperType)
	}
	if o.Notes != "" {
		descriptors = append(descriptors, o.Notes)
	}
	if len(descriptors) == 0 {
		return name
	}
	return name + " (" + strings.Join(descriptors, ", ") + ")"
}

// BuildInvoice computes the invoice layout for a resolved batch. The
// primary order supplies customer, status and billing; every order in the
// batch becomes a line item. Orders whose product is missing are skipped.
func BuildInvoice(business string, primary *models.Order, batch []models.Order, now time.Time) Layout {
	layout := Layout{
		Business:        business,
		InvoiceNumber:   primary.Billing.Number,
		Date:            now,
		Status:          string(primary.Status),
		CustomerName:    primary.CustomerName,
		CustomerPhone:   primary.CustomerPhone,
		CustomerAddress: primary.ShippingAddress,
		DeliveryZone:    string(primary.DeliveryZone),
		BillingNotes:    primary.Billing.Notes,
	}
	if layout.InvoiceNumber == "" {
		layout.InvoiceNumber = primary.OrderID
	}
	if layout.DeliveryZone == "" {
		layout.DeliveryZone = string(models.ZoneDhaka)
	}

	for i := range batch {
		o := &batch[i]
		if o.Product == nil {
			continue
		}
		quantity := o.Quantity
		if quantity < 1 {
			quantity = 1
		}
		line := Line{
			Label:     lineLabel(o),
			Quantity:  quantity,
			UnitPrice: o.Product.BasePrice,
			Total:     utils.Round2(o.Product.BasePrice * float64(quantity)),
		}
		layout.Lines = append(layout.Lines, line)
		layout.Subtotal += line.Total
	}
	layout.Subtotal = utils.Round2(layout.Subtotal)

	// Explicit positive charge wins, otherwise rederive from the zone.
	if primary.DeliveryCharge > 0 && !math.IsNaN(primary.DeliveryCharge) && !math.IsInf(primary.DeliveryCharge, 0) {
		layout.DeliveryCharge = primary.DeliveryCharge
	} else {
		_, charge := models.NormalizeZone(string(primary.DeliveryZone))
		layout.DeliveryCharge = charge
	}

	// The persisted billing amount is authoritative when present.
	if primary.Billing.Amount != nil && !math.IsNaN(*primary.Billing.Amount) {
		layout.Total = utils.Round2(*primary.Billing.Amount)
	} else {
		layout.Total = utils.Round2(layout.Subtotal + layout.DeliveryCharge)
	}

	return layout
}
