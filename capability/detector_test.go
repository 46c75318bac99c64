package capability

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaforge/schemaforge/remote"
	"github.com/schemaforge/schemaforge/schema"
)

// probeFake answers trial creations by inspecting the submitted schema, the
// way a real deployment would, and counts creations and deletions.
type probeFake struct {
	mu        sync.Mutex
	maxDims   int
	semantic  bool
	analyzers map[string]bool

	creates int
	deletes int

	transportErr error
}

func newProbeFake(maxDims int, semantic bool, analyzers ...string) *probeFake {
	f := &probeFake{maxDims: maxDims, semantic: semantic, analyzers: make(map[string]bool)}
	for _, a := range analyzers {
		f.analyzers[a] = true
	}
	return f
}

func (f *probeFake) TryCreateIndex(_ context.Context, s *schema.SchemaDescriptor) (*remote.CreateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.transportErr != nil {
		return nil, f.transportErr
	}

	var rejections []remote.Rejection
	for _, field := range s.Fields {
		if field.IsVector() && field.VectorDimensions > f.maxDims {
			rejections = append(rejections, remote.Rejection{
				ElementPath: "fields/" + field.Name,
				ReasonCode:  remote.ReasonDimensionsExceeded,
				Message:     "vector dimensions exceed the service maximum",
			})
		}
		if field.Analyzer != "" && !f.analyzers[field.Analyzer] {
			rejections = append(rejections, remote.Rejection{
				ElementPath: "fields/" + field.Name,
				ReasonCode:  remote.ReasonAnalyzerUnknown,
				Message:     "unknown analyzer " + field.Analyzer,
			})
		}
	}
	if s.SemanticConfig != nil && !f.semantic {
		rejections = append(rejections, remote.Rejection{
			ElementPath: "semanticConfig",
			ReasonCode:  remote.ReasonSemanticNotSupported,
			Message:     "semantic search is not supported on this tier",
		})
	}

	if len(rejections) > 0 {
		return &remote.CreateResult{Rejections: rejections}, nil
	}
	f.creates++
	return &remote.CreateResult{Accepted: true}, nil
}

func (f *probeFake) DeleteIndex(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !strings.HasPrefix(name, DefaultConfig().ProbeIndexPrefix) {
		return &remote.FatalError{Op: "delete", Err: remote.ErrIndexNotFound}
	}
	f.deletes++
	return nil
}

func (f *probeFake) GetIndexSchema(context.Context, string) (*schema.SchemaDescriptor, error) {
	return nil, &remote.FatalError{Op: "get", Err: remote.ErrIndexNotFound}
}

func (f *probeFake) APIVersion() string { return "2024-07-01" }

func TestDetectFullCapabilities(t *testing.T) {
	svc := newProbeFake(3072, true, "keyword_lowercase")
	d := NewDetector(svc, DefaultConfig(), nil)

	p, err := d.Detect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3072, p.MaxVectorDimensions)
	assert.True(t, p.SemanticSearchSupported)
	assert.Equal(t, []string{"keyword_lowercase"}, p.CustomAnalyzers)
	assert.Equal(t, "2024-07-01", p.APIVersion)
	assert.False(t, p.DetectedAt.IsZero())
}

func TestDetectDegradesPerCapability(t *testing.T) {
	// A deployment that caps vectors at 1536, has no semantic tier, and
	// recognizes no custom analyzers.
	svc := newProbeFake(1536, false)
	d := NewDetector(svc, DefaultConfig(), nil)

	p, err := d.Detect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1536, p.MaxVectorDimensions, "first accepted tier wins")
	assert.False(t, p.SemanticSearchSupported)
	assert.Empty(t, p.CustomAnalyzers)
	assert.False(t, p.SupportsAnalyzer("keyword_lowercase"))
}

func TestDetectNoVectorSupport(t *testing.T) {
	svc := newProbeFake(0, true)
	d := NewDetector(svc, DefaultConfig(), nil)

	p, err := d.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, p.MaxVectorDimensions)
}

func TestDetectTearsDownEveryAcceptedProbe(t *testing.T) {
	svc := newProbeFake(3072, true, "keyword_lowercase")
	d := NewDetector(svc, DefaultConfig(), nil)

	_, err := d.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, svc.creates, svc.deletes, "every accepted trial index must be deleted")
	assert.Greater(t, svc.creates, 0)
}

func TestDetectTransportFailureReturnsNoPartialProfile(t *testing.T) {
	svc := newProbeFake(3072, true)
	svc.transportErr = &remote.TransientError{Op: "create index"}
	d := NewDetector(svc, DefaultConfig(), nil)

	p, err := d.Detect(context.Background())
	require.Error(t, err)
	assert.True(t, remote.IsTransientError(err))
	assert.Equal(t, Profile{}, p)
}

func TestDetectTearsDownAfterErroredProbe(t *testing.T) {
	// A transport fault can surface after the creation was already applied
	// server-side, so the errored probe still attempts a delete.
	svc := newProbeFake(3072, true)
	svc.transportErr = &remote.TransientError{Op: "create index"}
	d := NewDetector(svc, DefaultConfig(), nil)

	_, err := d.Detect(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, svc.deletes)
}

func TestProbeIndexNamesArePrefixedAndUnique(t *testing.T) {
	d := NewDetector(newProbeFake(0, false), DefaultConfig(), nil)

	a := d.probeIndexName("vector")
	b := d.probeIndexName("vector")
	assert.True(t, strings.HasPrefix(a, DefaultConfig().ProbeIndexPrefix))
	assert.NotEqual(t, a, b)
}
