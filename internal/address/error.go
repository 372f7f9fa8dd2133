package address

import "errors"

var (
	ErrAddressNotFound = errors.New("address not found")
	ErrNoCustomer      = errors.New("no customer profile for user")
)
