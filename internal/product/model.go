package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowInventoryThreshold is the stock level below which a product is "Low".
const LowInventoryThreshold = 10

const (
	InventoryLow = "Low"
	InventoryOK  = "OK"
)

var taxRate = decimal.RequireFromString("1.1")

type Product struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	Slug         string          `json:"slug"`
	Description  *string         `json:"description"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Inventory    int             `json:"inventory"`
	LastUpdate   time.Time       `json:"last_update"`
	CollectionID uint            `json:"collection"`
}

// PriceWithTax is the unit price with 10% tax, rounded to cents.
func (p Product) PriceWithTax() decimal.Decimal {
	return p.UnitPrice.Mul(taxRate).Round(2)
}

// InventoryStatus classifies a stock count: fewer than 10 units is "Low".
func InventoryStatus(inventory int) string {
	if inventory < LowInventoryThreshold {
		return InventoryLow
	}
	return InventoryOK
}

// Input carries create/update fields; nil means "not provided".
type Input struct {
	Title        *string          `json:"title"`
	Slug         *string          `json:"slug"`
	Description  *string          `json:"description"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	Inventory    *int             `json:"inventory"`
	CollectionID *uint            `json:"collection"`
}

type ListOptions struct {
	CollectionID *uint
	PriceGT      *decimal.Decimal
	PriceLT      *decimal.Decimal
	Search       string
	Ordering     string
	Limit        int
	Offset       int
}

// Response is the public product representation.
type Response struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	Description  *string         `json:"description"`
	Slug         string          `json:"slug"`
	Inventory    int             `json:"inventory"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	PriceWithTax decimal.Decimal `json:"price_with_tax"`
	CollectionID uint            `json:"collection"`
}

func NewResponse(p Product) Response {
	return Response{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Slug:         p.Slug,
		Inventory:    p.Inventory,
		UnitPrice:    p.UnitPrice,
		PriceWithTax: p.PriceWithTax(),
		CollectionID: p.CollectionID,
	}
}
