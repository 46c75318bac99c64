package update

import (
	"errors"
	"fmt"
)

// UnsafeUpdateError is returned when a candidate update contains unsafe
// changes and the caller did not pass an explicit override. The plan is
// attached so the caller can present exactly which changes blocked the
// update.
type UnsafeUpdateError struct {
	Plan *SafeUpdatePlan
}

func (e *UnsafeUpdateError) Error() string {
	unsafe := e.Plan.UnsafeChanges()
	if len(unsafe) == 1 {
		return fmt.Sprintf("unsafe update rejected: %s (%s)", unsafe[0].Element, unsafe[0].Rationale)
	}
	return fmt.Sprintf("unsafe update rejected: %d changes require a reindex or override", len(unsafe))
}

// IsUnsafeUpdateError checks if the error is a blocked unsafe update.
func IsUnsafeUpdateError(err error) bool {
	var ue *UnsafeUpdateError
	return errors.As(err, &ue)
}
