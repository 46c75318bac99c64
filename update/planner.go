package update

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/schemaforge/schemaforge/capability"
	"github.com/schemaforge/schemaforge/remote"
	"github.com/schemaforge/schemaforge/schema"
	"github.com/schemaforge/schemaforge/synth"
)

// Planner builds candidate schemas for additive feature updates: the caller
// names the features to add, the planner derives the candidate from what is
// already deployed.
type Planner struct {
	svc      remote.Service
	detector *capability.Detector
	cache    *capability.Cache
}

// NewPlanner constructs a planner. The cache is consulted before the detector
// so repeated updates against the same service do not re-probe it.
func NewPlanner(svc remote.Service, detector *capability.Detector, cache *capability.Cache) *Planner {
	return &Planner{svc: svc, detector: detector, cache: cache}
}

// AddFeatures produces a candidate schema that carries everything the
// deployed schema has plus the fragments of the named features. The deployed
// schema and the capability profile are fetched concurrently since neither
// depends on the other.
//
// Elements the deployed schema already has are left untouched, so the
// resulting candidate classifies as additive-safe unless a requested feature
// genuinely conflicts with what is deployed.
func (p *Planner) AddFeatures(ctx context.Context, serviceKey, indexName string, features []schema.FeatureTag) (*schema.SchemaDescriptor, error) {
	var (
		existing *schema.SchemaDescriptor
		profile  capability.Profile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := p.svc.GetIndexSchema(gctx, indexName)
		if err != nil {
			return fmt.Errorf("failed to fetch deployed schema for %q: %w", indexName, err)
		}
		existing = s
		return nil
	})
	g.Go(func() error {
		if cached, ok := p.cache.Get(serviceKey, p.svc.APIVersion()); ok {
			profile = cached
			return nil
		}
		detected, err := p.detector.Detect(gctx)
		if err != nil {
			return err
		}
		p.cache.Put(serviceKey, detected)
		profile = detected
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	synthesized, err := synth.Synthesize(schema.FeatureRequest{Features: features}, profile, indexName)
	if err != nil {
		return nil, err
	}

	candidate := existing.Clone()
	candidate.IndexName = indexName
	mergeAdditive(candidate, synthesized)
	return candidate, nil
}

// mergeAdditive copies elements of src that dst lacks. Existing elements win:
// the planner only ever adds.
func mergeAdditive(dst, src *schema.SchemaDescriptor) {
	hasKey := dst.KeyField() != nil
	for _, f := range src.Fields {
		if dst.Field(f.Name) == nil {
			// The deployed schema keeps its own key field; a synthesized
			// key candidate comes in as a plain field.
			if hasKey {
				f.Key = false
			}
			dst.Fields = append(dst.Fields, f)
		}
	}
	have := make(map[string]struct{}, len(dst.VectorProfiles))
	for _, vp := range dst.VectorProfiles {
		have[vp.Name] = struct{}{}
	}
	for _, vp := range src.VectorProfiles {
		if _, ok := have[vp.Name]; !ok {
			dst.VectorProfiles = append(dst.VectorProfiles, vp)
		}
	}
	have = make(map[string]struct{}, len(dst.ScoringProfiles))
	for _, sp := range dst.ScoringProfiles {
		have[sp.Name] = struct{}{}
	}
	for _, sp := range src.ScoringProfiles {
		if _, ok := have[sp.Name]; !ok {
			dst.ScoringProfiles = append(dst.ScoringProfiles, sp)
		}
	}
	have = make(map[string]struct{}, len(dst.Analyzers))
	for _, a := range dst.Analyzers {
		have[a.Name] = struct{}{}
	}
	for _, a := range src.Analyzers {
		if _, ok := have[a.Name]; !ok {
			dst.Analyzers = append(dst.Analyzers, a)
		}
	}
	if dst.SemanticConfig == nil && src.SemanticConfig != nil {
		sc := *src.SemanticConfig
		dst.SemanticConfig = &sc
	}
}
