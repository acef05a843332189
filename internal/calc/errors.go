package calc

import "fmt"

// CalculationError reports a failed calculation: supplier-specific method
// misuse, or a unit conversion failure during normalization to the factor's
// unit. The cause, when present, is reachable through errors.Unwrap.
type CalculationError struct {
	Op     string // which pipeline step failed
	Reason string
	Err    error
}

func (e *CalculationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("calculation failed (%s): %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("calculation failed (%s): %s", e.Op, e.Reason)
}

func (e *CalculationError) Unwrap() error {
	return e.Err
}
