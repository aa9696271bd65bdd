package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/showcase/internal/domain/carousel"
	"github.com/rpggio/showcase/internal/domain/catalog"
	"github.com/rpggio/showcase/internal/domain/gallery"
)

// ErrInvalidParams indicates tool arguments that fail basic checks.
var ErrInvalidParams = errors.New("invalid params")

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
	cause        error
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// MapError maps domain errors to MCP error codes. Unknown errors are
// returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, carousel.ErrOutOfRange):
		return &APIError{Code: "OUT_OF_RANGE", Message: err.Error(), RecoveryHint: "Call carousel_state for the slide count", cause: err}
	case errors.Is(err, carousel.ErrClosed):
		return &APIError{Code: "UNAVAILABLE", Message: "carousel is shut down", cause: err}
	case errors.Is(err, gallery.ErrInvalidQuery):
		return &APIError{Code: "INVALID_QUERY", Message: err.Error(), RecoveryHint: "Use a listed category or sort key", cause: err}
	case errors.Is(err, catalog.ErrItemNotFound):
		return &APIError{Code: "NOT_FOUND", Message: err.Error(), RecoveryHint: "Call gallery_view for valid ids", cause: err}
	case errors.Is(err, carousel.ErrInvalidInterval):
		return &APIError{Code: "INVALID_PARAMS", Message: err.Error(), RecoveryHint: "Use an interval_ms between 100 and 3600000", cause: err}
	case errors.Is(err, ErrInvalidParams):
		return &APIError{Code: "INVALID_PARAMS", Message: err.Error(), cause: err}
	default:
		return err
	}
}
