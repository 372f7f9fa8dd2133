// Package admin is the staff back office: denormalized listings and bulk
// actions over the catalog, customers and orders.
package admin

import (
	"time"

	"storefront-be/internal/customer"

	"github.com/shopspring/decimal"
)

// PageSize is fixed for every admin listing.
const PageSize = 10

const (
	PriceBelow50 = "<50"
	PriceAbove50 = ">50"
)

var priceSplit = decimal.NewFromInt(50)

type ProductRow struct {
	ID              uint            `json:"id"`
	Title           string          `json:"title"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Inventory       int             `json:"inventory"`
	InventoryStatus string          `json:"inventory_status"`
	CollectionTitle string          `json:"collection_title"`
	LastUpdate      time.Time       `json:"-"`
}

type ProductFilter struct {
	CollectionID *uint
	LowInventory bool
	Price        string
	Search       string
}

type CollectionRow struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	ProductsCount int    `json:"products_count"`
}

type CustomerRow struct {
	ID         uint                `json:"id"`
	FirstName  string              `json:"first_name"`
	LastName   string              `json:"last_name"`
	Membership customer.Membership `json:"membership"`
	OrderCount int                 `json:"order_count"`
}

type OrderRow struct {
	ID        uint      `json:"id"`
	OrderTime time.Time `json:"order_time"`
	Customer  string    `json:"customer"`
}

type ClearInventoryInput struct {
	IDs []uint `json:"ids"`
}

type MembershipInput struct {
	Membership *customer.Membership `json:"membership"`
}

type messageResponse struct {
	Message string `json:"message"`
}
