package enrich

import (
	"errors"
	"fmt"
)

// ErrEnrichment wraps every failure to fetch or merge repository data.
// It is never fatal; the gallery keeps its current items.
var ErrEnrichment = errors.New("enrichment failed")

// StatusError reports a non-2xx response from the GitHub API.
type StatusError struct {
	Code int
	Path string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github %s: status %d", e.Path, e.Code)
}
