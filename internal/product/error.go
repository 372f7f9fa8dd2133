package product

import "errors"

var (
	// -- Resource State --
	ErrProductNotFound = errors.New("product not found")
	ErrProductInOrder  = errors.New("Product cannot be deleted because it is associated with an order item")

	// -- Validation --
	ErrUnknownCollection = errors.New("collection does not exist")
)
