package capability

import (
	"slices"
	"time"
)

// Profile is a snapshot of what the remote service currently supports.
// It is immutable once built: re-detection produces a fresh Profile.
type Profile struct {
	// MaxVectorDimensions is the largest vector field dimensionality the
	// deployment accepts. Zero means vector fields are not supported at all.
	MaxVectorDimensions int `json:"maxVectorDimensions"`

	// SemanticSearchSupported reports whether a semantic configuration block
	// is accepted.
	SemanticSearchSupported bool `json:"semanticSearchSupported"`

	// CustomAnalyzers lists the custom analyzer names the deployment
	// recognized during probing, sorted for deterministic output.
	CustomAnalyzers []string `json:"customAnalyzersSupported"`

	// APIVersion is the service API version detection ran against. A cached
	// profile for a different API version is stale regardless of TTL.
	APIVersion string `json:"apiVersion"`

	// DetectedAt is when the probe battery completed.
	DetectedAt time.Time `json:"detectedAt"`
}

// SupportsAnalyzer reports whether the named custom analyzer was accepted
// during detection.
func (p Profile) SupportsAnalyzer(name string) bool {
	return slices.Contains(p.CustomAnalyzers, name)
}
