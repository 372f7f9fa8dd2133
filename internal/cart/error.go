package cart

import "errors"

var (
	// -- Resource State --
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrProductNotFound  = errors.New("No product with the given ID was found.")

	// -- Limits --
	ErrQuantityOutOfRange = errors.New("quantity out of range")
)
