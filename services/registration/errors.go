package registration

import "strings"

// ValidationError carries the ordered list of field-level failures. It is
// returned before any external call is made.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}
