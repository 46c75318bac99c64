package capability

import (
	"errors"
	"fmt"
)

// ProbeError records the failure of one capability probe. It is absorbed into
// the profile as "unsupported" for the matching capability and never aborts
// the rest of the battery on its own.
type ProbeError struct {
	Probe string
	Err   error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("capability probe %q failed: %v", e.Probe, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// IsProbeError checks if the error is an individual probe failure.
func IsProbeError(err error) bool {
	var pe *ProbeError
	return errors.As(err, &pe)
}
