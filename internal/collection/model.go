package collection

type Collection struct {
	ID                uint   `json:"id"`
	Title             string `json:"title"`
	FeaturedProductID *uint  `json:"featured_product,omitempty"`
	ProductsCount     int    `json:"products_count"`
}

type Input struct {
	Title             *string `json:"title"`
	FeaturedProductID *uint   `json:"featured_product"`
}
