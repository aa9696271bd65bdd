package carousel

import "errors"

var (
	// ErrOutOfRange indicates a navigation target outside 0..total-1.
	ErrOutOfRange = errors.New("slide index out of range")
	// ErrNoSlides indicates a controller was built with no slides.
	ErrNoSlides = errors.New("carousel needs at least one slide")
	// ErrInvalidInterval indicates an autoplay period outside the accepted bounds.
	ErrInvalidInterval = errors.New("invalid autoplay interval")
	// ErrClosed indicates the controller has been torn down.
	ErrClosed = errors.New("carousel closed")
)
