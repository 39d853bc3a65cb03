package models

import "time"

type ColorMode string

const (
	ColorModeColor ColorMode = "color"
	ColorModeBW    ColorMode = "black_white"
)

func (c ColorMode) Valid() bool {
	return c == ColorModeColor || c == ColorModeBW
}

type PrintSides string

const (
	SidesSingle PrintSides = "single"
	SidesDouble PrintSides = "double"
)

func (s PrintSides) Valid() bool {
	return s == SidesSingle || s == SidesDouble
}

type PaperSize string

const (
	PaperA4       PaperSize = "a4"
	PaperLetter   PaperSize = "letter"
	PaperPhoto    PaperSize = "photo_paper"
	PaperPassport PaperSize = "passport_photo"
	PaperStamp    PaperSize = "stamp_photo"
)

func (p PaperSize) Valid() bool {
	switch p {
	case PaperA4, PaperLetter, PaperPhoto, PaperPassport, PaperStamp:
		return true
	}
	return false
}

func (p PaperSize) Label() string {
	switch p {
	case PaperA4:
		return "A4"
	case PaperLetter:
		return "Letter"
	case PaperPhoto:
		return "Photo Paper"
	case PaperPassport:
		return "Passport Photo"
	case PaperStamp:
		return "Stamp Photo"
	}
	return string(p)
}

// DeliveryLocation decides the fixed security deposit charged on submission.
type DeliveryLocation string

const (
	LocationSEU   DeliveryLocation = "SEU"
	LocationAUST  DeliveryLocation = "AUST"
	LocationOther DeliveryLocation = "OTHER"
)

func (l DeliveryLocation) Valid() bool {
	switch l {
	case LocationSEU, LocationAUST, LocationOther:
		return true
	}
	return false
}

// Deposit is computed once at creation and stored, never recomputed.
func (l DeliveryLocation) Deposit() float64 {
	if l == LocationOther {
		return 60
	}
	return 20
}

// PrintOrder is a single custom print job. No batching, no cancellation
// workflow.
type PrintOrder struct {
	PrintOrderID       string           `json:"printorderid" bson:"printorderid"`
	UserID             string           `json:"userid" bson:"userid"`
	Description        string           `json:"description" bson:"description"`
	FileLink           string           `json:"fileLink,omitempty" bson:"fileLink,omitempty"`
	ColorMode          ColorMode        `json:"colorMode" bson:"colorMode"`
	Sides              PrintSides       `json:"sides" bson:"sides"`
	PaperSize          PaperSize        `json:"paperSize" bson:"paperSize"`
	Quantity           int              `json:"quantity" bson:"quantity"`
	CollectionTime     time.Time        `json:"collectionTime" bson:"collectionTime"`
	DeliveryLocation   DeliveryLocation `json:"deliveryLocation" bson:"deliveryLocation"`
	DeliveryAddress    string           `json:"deliveryAddress,omitempty" bson:"deliveryAddress,omitempty"`
	PaymentTransaction string           `json:"paymentTransaction" bson:"paymentTransaction"`
	Status             OrderStatus      `json:"status" bson:"status"`
	SecurityAmount     float64          `json:"securityAmount" bson:"securityAmount"`
	Billing            Billing          `json:"billing" bson:"billing"`
	CreatedAt          time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt" bson:"updatedAt"`

	User *UserSummary `json:"user,omitempty" bson:"-"`
}
