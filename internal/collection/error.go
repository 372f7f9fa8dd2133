package collection

import "errors"

var (
	ErrCollectionNotFound    = errors.New("collection not found")
	ErrCollectionHasProducts = errors.New("Collection cannot be deleted because it includes one or more products.")
	ErrUnknownFeatured       = errors.New("featured product does not exist")
)
