package customer

import "errors"

var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrCustomerExists    = errors.New("customer with this user already exists")
	ErrCustomerHasOrders = errors.New("Customer cannot be deleted because they have placed orders.")
	ErrUnknownUser       = errors.New("user does not exist")
)
