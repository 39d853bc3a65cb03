package models

import "time"

// OrderStatus is shared by shop orders and print orders.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// DeliveryZone maps to a fixed delivery charge. Unknown zones normalize to
// dhaka rather than failing.
type DeliveryZone string

const (
	ZoneDhaka   DeliveryZone = "dhaka"
	ZoneOutside DeliveryZone = "outside"
)

func (z DeliveryZone) Charge() float64 {
	switch z {
	case ZoneOutside:
		return 110
	default:
		return 60
	}
}

// NormalizeZone resolves a raw zone string to a known zone and its charge.
func NormalizeZone(raw string) (DeliveryZone, float64) {
	z := DeliveryZone(raw)
	switch z {
	case ZoneDhaka, ZoneOutside:
		return z, z.Charge()
	}
	return ZoneDhaka, ZoneDhaka.Charge()
}

// Billing is the invoice sub-record embedded in both order kinds. Amount is
// a pointer so "never billed" survives round trips as null.
type Billing struct {
	Number      string     `json:"number,omitempty" bson:"number,omitempty"`
	Amount      *float64   `json:"amount,omitempty" bson:"amount,omitempty"`
	Notes       string     `json:"notes,omitempty" bson:"notes,omitempty"`
	GeneratedAt *time.Time `json:"generatedAt,omitempty" bson:"generatedAt,omitempty"`
}

type CancelStatus string

const (
	CancelNone     CancelStatus = "none"
	CancelPending  CancelStatus = "pending"
	CancelApproved CancelStatus = "approved"
	CancelDeclined CancelStatus = "declined"
)

// CancelRequest tracks a customer cancellation request and its staff
// resolution. none -> pending -> approved|declined.
type CancelRequest struct {
	Status      CancelStatus `json:"status" bson:"status"`
	Reason      string       `json:"reason,omitempty" bson:"reason,omitempty"`
	RequestedAt *time.Time   `json:"requestedAt,omitempty" bson:"requestedAt,omitempty"`
	ResolvedAt  *time.Time   `json:"resolvedAt,omitempty" bson:"resolvedAt,omitempty"`
	ResolvedBy  string       `json:"resolvedBy,omitempty" bson:"resolvedBy,omitempty"`
	AdminNote   string       `json:"adminNote,omitempty" bson:"adminNote,omitempty"`
}

// Order is one line item of a shop checkout. Multi-item checkouts create one
// Order per item, linked by BatchID.
type Order struct {
	OrderID         string        `json:"orderid" bson:"orderid"`
	CustomerName    string        `json:"customerName" bson:"customerName"`
	CustomerEmail   string        `json:"customerEmail,omitempty" bson:"customerEmail,omitempty"`
	CustomerPhone   string        `json:"customerPhone,omitempty" bson:"customerPhone,omitempty"`
	UserID          string        `json:"userid,omitempty" bson:"userid,omitempty"`
	ProductID       string        `json:"productid" bson:"productid"`
	Quantity        int           `json:"quantity" bson:"quantity"`
	Size            string        `json:"size,omitempty" bson:"size,omitempty"`
	PaperType       string        `json:"paperType,omitempty" bson:"paperType,omitempty"`
	Notes           string        `json:"notes,omitempty" bson:"notes,omitempty"`
	ShippingAddress string        `json:"shippingAddress" bson:"shippingAddress"`
	DeliveryZone    DeliveryZone  `json:"deliveryZone" bson:"deliveryZone"`
	DeliveryCharge  float64       `json:"deliveryCharge" bson:"deliveryCharge"`
	Status          OrderStatus   `json:"status" bson:"status"`
	Billing         Billing       `json:"billing" bson:"billing"`
	CancelRequest   CancelRequest `json:"cancelRequest" bson:"cancelRequest"`
	BatchID         string        `json:"batchId,omitempty" bson:"batchId,omitempty"`
	CreatedAt       time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt" bson:"updatedAt"`

	// Read-time joins, never persisted.
	Product    *ProductSummary `json:"product,omitempty" bson:"-"`
	User       *UserSummary    `json:"user,omitempty" bson:"-"`
	ResolvedBy *UserSummary    `json:"cancelResolvedBy,omitempty" bson:"-"`
}
