package catalog

import "errors"

var (
	// ErrItemNotFound indicates the item doesn't exist.
	ErrItemNotFound = errors.New("item not found")
	// ErrInvalidInput indicates an item or testimonial failed validation.
	ErrInvalidInput = errors.New("invalid catalog input")
	// ErrDuplicateItem indicates an item id is already taken.
	ErrDuplicateItem = errors.New("item already exists")
)
