package gallery

import "errors"

var (
	// ErrInvalidQuery indicates an unknown filter category or sort key.
	ErrInvalidQuery = errors.New("invalid gallery query")
	// ErrDuplicateID indicates two items share an id.
	ErrDuplicateID = errors.New("duplicate item id")
)
