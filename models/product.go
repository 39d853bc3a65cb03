package models

import "time"

// ProductOption is a label plus a price modifier. Modifiers are stored but
// not yet folded into order totals.
type ProductOption struct {
	Label         string  `json:"label" bson:"label"`
	PriceModifier float64 `json:"priceModifier" bson:"priceModifier"`
}

type Product struct {
	ProductID       string          `json:"productid" bson:"productid"`
	Name            string          `json:"name" bson:"name"`
	Slug            string          `json:"slug" bson:"slug"`
	Description     string          `json:"description,omitempty" bson:"description,omitempty"`
	BasePrice       float64         `json:"basePrice" bson:"basePrice"`
	Categories      []string        `json:"categories,omitempty" bson:"categories,omitempty"`
	Sizes           []ProductOption `json:"sizes,omitempty" bson:"sizes,omitempty"`
	PaperTypes      []ProductOption `json:"paperTypes,omitempty" bson:"paperTypes,omitempty"`
	QuantityOptions []int           `json:"quantityOptions,omitempty" bson:"quantityOptions,omitempty"`
	ImageURL        string          `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	IsActive        bool            `json:"isActive" bson:"isActive"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt" bson:"updatedAt"`
}

type ProductSummary struct {
	ProductID string  `json:"productid" bson:"productid"`
	Name      string  `json:"name" bson:"name"`
	Slug      string  `json:"slug,omitempty" bson:"slug,omitempty"`
	BasePrice float64 `json:"basePrice" bson:"basePrice"`
	ImageURL  string  `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
}

func (p *Product) Summary() *ProductSummary {
	if p == nil {
		return nil
	}
	return &ProductSummary{
		ProductID: p.ProductID,
		Name:      p.Name,
		Slug:      p.Slug,
		BasePrice: p.BasePrice,
		ImageURL:  p.ImageURL,
	}
}

type Category struct {
	CategoryID string    `json:"categoryid" bson:"categoryid"`
	Name       string    `json:"name" bson:"name"`
	Slug       string    `json:"slug" bson:"slug"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
