package order

import "errors"

var (
	// -- Checkout preconditions --
	ErrCartNotFound = errors.New("No cart with the given id was found!")
	ErrCartEmpty    = errors.New("The cart is empty!")
	ErrInvalidUUID  = errors.New("Must be a valid UUID.")

	// -- Resource State --
	ErrOrderNotFound    = errors.New("order not found")
	ErrCustomerNotFound = errors.New("no customer profile for this user")
)
