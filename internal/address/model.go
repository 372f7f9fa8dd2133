package address

// Address is a shipping address owned by a customer. At most one address
// per customer is the default.
type Address struct {
	ID         uint   `json:"id"`
	CustomerID uint   `json:"-"`
	Street     string `json:"street"`
	City       string `json:"city"`
	IsDefault  bool   `json:"is_default"`
}

type Input struct {
	Street       *string `json:"street"`
	City         *string `json:"city"`
	SetAsDefault bool    `json:"set_as_default"`
}
