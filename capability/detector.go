package capability

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/schemaforge/schemaforge/logger"
	"github.com/schemaforge/schemaforge/metrics"
	"github.com/schemaforge/schemaforge/remote"
	"github.com/schemaforge/schemaforge/schema"
	"github.com/schemaforge/schemaforge/tracer"
)

// Detector probes the remote service to build a capability Profile.
//
// Each probe is a trial index creation followed by a guaranteed deletion of
// whatever the trial created. Probes run in order of information yield:
// vector dimensions first (ties down the most schema decisions), then
// semantic support, then custom analyzers.
type Detector struct {
	svc    remote.Service
	cfg    Config
	log    *logger.Logger
	meter  *metrics.Metrics
	tracer *tracer.Tracer
}

// NewDetector constructs a detector over the given remote service.
// Metrics and tracer are optional; the detector is fully functional without
// them.
func NewDetector(svc remote.Service, cfg Config, log *logger.Logger) *Detector {
	if cfg.ProbeIndexPrefix == "" {
		cfg.ProbeIndexPrefix = DefaultConfig().ProbeIndexPrefix
	}
	if len(cfg.VectorDimensionTiers) == 0 {
		cfg.VectorDimensionTiers = DefaultConfig().VectorDimensionTiers
	}
	if len(cfg.ProbeAnalyzers) == 0 {
		cfg.ProbeAnalyzers = DefaultConfig().ProbeAnalyzers
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Detector{svc: svc, cfg: cfg, log: log}
}

// WithMetrics attaches a metrics collector for probe duration observation.
func (d *Detector) WithMetrics(m *metrics.Metrics) *Detector {
	d.meter = m
	return d
}

// WithTracer attaches a tracer; each probe then produces a span.
func (d *Detector) WithTracer(t *tracer.Tracer) *Detector {
	d.tracer = t
	return d
}

// Detect runs the full probe battery and merges the results into one Profile.
//
// An individual probe that the service rejects degrades the matching
// capability to unsupported; detection continues. Only a transport-level
// failure (service unreachable, credentials rejected, retries exhausted)
// makes Detect return an error, and then no partial profile is returned.
func (d *Detector) Detect(ctx context.Context) (Profile, error) {
	profile := Profile{
		APIVersion: d.svc.APIVersion(),
	}

	maxDims, err := d.probeVectorDimensions(ctx)
	if err != nil {
		return Profile{}, err
	}
	profile.MaxVectorDimensions = maxDims

	semantic, err := d.probeSemantic(ctx)
	if err != nil {
		return Profile{}, err
	}
	profile.SemanticSearchSupported = semantic

	analyzers, err := d.probeAnalyzers(ctx)
	if err != nil {
		return Profile{}, err
	}
	profile.CustomAnalyzers = analyzers

	profile.DetectedAt = time.Now().UTC()

	d.log.Info("capability detection complete", nil, map[string]interface{}{
		"maxVectorDimensions": profile.MaxVectorDimensions,
		"semanticSearch":      profile.SemanticSearchSupported,
		"customAnalyzers":     profile.CustomAnalyzers,
		"apiVersion":          profile.APIVersion,
	})
	return profile, nil
}

// probeVectorDimensions tries vector fields at each configured tier, highest
// first. The first accepted tier is the deployment maximum; a deployment that
// rejects every tier does not support vector fields.
func (d *Detector) probeVectorDimensions(ctx context.Context) (int, error) {
	for _, dims := range d.cfg.VectorDimensionTiers {
		s := probeSchema(d.probeIndexName("vector"))
		s.Fields = append(s.Fields, schema.FieldDescriptor{
			Name:             "probe_vector",
			Type:             schema.TypeVector,
			Searchable:       true,
			Retrievable:      true,
			VectorDimensions: dims,
			VectorProfile:    schema.VectorProfileDefault,
		})
		s.VectorProfiles = []schema.VectorProfile{{
			Name:      schema.VectorProfileDefault,
			Algorithm: "hnsw",
		}}

		accepted, err := d.runProbe(ctx, fmt.Sprintf("vector-%d", dims), s)
		if err != nil {
			return 0, err
		}
		if accepted {
			return dims, nil
		}
	}
	return 0, nil
}

// probeSemantic submits a schema carrying a semantic configuration block.
func (d *Detector) probeSemantic(ctx context.Context) (bool, error) {
	s := probeSchema(d.probeIndexName("semantic"))
	s.SemanticConfig = &schema.SemanticConfig{
		Name:          schema.SemanticConfigName,
		ContentFields: []string{schema.ContentFieldName},
	}
	return d.runProbe(ctx, "semantic", s)
}

// probeAnalyzers offers each configured custom analyzer to the service and
// collects the ones it recognized, sorted for deterministic profiles.
func (d *Detector) probeAnalyzers(ctx context.Context) ([]string, error) {
	var supported []string
	for _, name := range d.cfg.ProbeAnalyzers {
		s := probeSchema(d.probeIndexName("analyzer"))
		s.Fields = append(s.Fields, schema.FieldDescriptor{
			Name: "probe_analyzed", Type: schema.TypeString, Searchable: true, Analyzer: name,
		})
		s.Analyzers = []schema.Analyzer{{
			Name:        name,
			Tokenizer:   "keyword",
			TokenFilter: []string{"lowercase"},
		}}

		accepted, err := d.runProbe(ctx, "analyzer-"+name, s)
		if err != nil {
			return nil, err
		}
		if accepted {
			supported = append(supported, name)
		}
	}
	sort.Strings(supported)
	return supported, nil
}

// runProbe submits one trial creation and guarantees teardown of the
// transient index on every exit path where the trial actually created one.
// A rejected trial degrades the capability (returns false); only transport
// faults propagate as errors.
func (d *Detector) runProbe(ctx context.Context, name string, s *schema.SchemaDescriptor) (accepted bool, err error) {
	start := time.Now()
	ctx, span := d.tracer.StartSpan(ctx, "capability-probe/"+name)
	defer span.End()
	defer d.meter.ObserveProbe(name, start)

	result, err := d.svc.TryCreateIndex(ctx, s)
	if err != nil {
		// The creation may have been applied before the fault surfaced,
		// notably on cancellation after the request went out. Delete the
		// transient index either way; a miss is fine.
		d.teardownProbe(ctx, name, s.IndexName)
		d.tracer.RecordErrorOnSpan(span, err)
		return false, fmt.Errorf("capability detection failed in probe %q: %w", name, err)
	}

	if !result.Accepted {
		degraded := &ProbeError{Probe: name, Err: fmt.Errorf("rejected: %s", firstMessage(result.Rejections))}
		d.log.Debug("capability probe degraded to unsupported", degraded, map[string]interface{}{
			"probe": name,
		})
		return false, nil
	}

	// The trial created a real index.
	d.teardownProbe(ctx, name, s.IndexName)
	return true, nil
}

// teardownProbe deletes a transient probe index. It runs detached from the
// caller's cancellation so a canceled detection never leaks a remote index.
func (d *Detector) teardownProbe(ctx context.Context, name, indexName string) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := d.svc.DeleteIndex(cleanupCtx, indexName); err != nil && !remote.IsNotFoundError(err) {
		d.log.Warn("failed to tear down probe index", err, map[string]interface{}{
			"index": indexName,
			"probe": name,
		})
	}
}

// probeIndexName builds a unique transient index name so concurrent
// detections never race on the same remote resource.
func (d *Detector) probeIndexName(probe string) string {
	return d.cfg.ProbeIndexPrefix + probe + "-" + strconv.FormatInt(time.Now().UnixNano(), 36)
}

// probeSchema is the minimal valid schema every probe builds on.
func probeSchema(indexName string) *schema.SchemaDescriptor {
	return &schema.SchemaDescriptor{
		IndexName: indexName,
		Fields: []schema.FieldDescriptor{
			{Name: schema.KeyFieldName, Type: schema.TypeString, Key: true, Retrievable: true},
			{Name: schema.ContentFieldName, Type: schema.TypeString, Searchable: true},
		},
	}
}

func firstMessage(rejections []remote.Rejection) string {
	if len(rejections) == 0 {
		return "no diagnostic provided"
	}
	return rejections[0].Message
}
