package negotiate

import (
	"errors"
	"fmt"

	"github.com/schemaforge/schemaforge/remote"
)

// ExhaustedError reports a negotiation that ended in the FAILED state: the
// iteration ceiling was hit, the rejection count stopped shrinking, or the
// service produced a diagnostic no adjustment rule covers. The accompanying
// Result still carries the partial adjustment trail.
type ExhaustedError struct {
	Reason         string
	Iterations     int
	LastDiagnostic []remote.Rejection
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("negotiation exhausted after %d iterations: %s", e.Iterations, e.Reason)
}

// IsExhaustedError checks if the error is a failed (non-convergent)
// negotiation.
func IsExhaustedError(err error) bool {
	var ee *ExhaustedError
	return errors.As(err, &ee)
}
