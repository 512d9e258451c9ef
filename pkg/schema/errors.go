package schema

import "fmt"

// ValidationError reports the first schema violation found in a design
// parameter tree: a type mismatch, a numeric value outside its [min,max]
// domain, or a select value not in the declared options.
type ValidationError struct {
	Path   string // Dotted path of the offending leaf, e.g. "shirt.width"
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("parameter %q: %s", e.Path, e.Reason)
}
