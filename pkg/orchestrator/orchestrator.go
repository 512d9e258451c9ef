package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/seamly/garmentd/internal/logging"
	"github.com/seamly/garmentd/pkg/domain"
	"github.com/seamly/garmentd/pkg/ports"
	"golang.org/x/sync/semaphore"
	"gopkg.in/yaml.v3"
)

// maxIDAttempts bounds the retry loop for the (practically impossible)
// session id collision.
const maxIDAttempts = 5

// CleanupPolicy decides how Cleanup treats an id that is already gone.
// The upstream contract leaves this unspecified, so it is an explicit,
// configurable choice rather than an accident.
type CleanupPolicy int

const (
	// CleanupStrict fails repeated cleanup with domain.ErrSessionNotFound.
	CleanupStrict CleanupPolicy = iota
	// CleanupIdempotent treats repeated cleanup as a successful no-op.
	CleanupIdempotent
)

// Request describes one generation: a structurally valid pattern document,
// optional body measurements, the target artifact kind, and 2D options.
type Request struct {
	Pattern *domain.PatternDocument
	Body    *domain.BodyParameters
	Kind    domain.TargetKind
	Vector  ports.VectorOptions
}

// Orchestrator allocates sessions, drives exporters and records artifacts.
type Orchestrator struct {
	store  ports.SessionStore
	mesh   ports.MeshExporter
	vector ports.VectorExporter

	outputRoot string
	sem        *semaphore.Weighted
	policy     CleanupPolicy
	logger     *slog.Logger
	metrics    *metrics

	now   func() time.Time
	newID func() string
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// WithCleanupPolicy sets the repeated-cleanup behavior.
func WithCleanupPolicy(p CleanupPolicy) Option {
	return func(o *Orchestrator) { o.policy = p }
}

// WithMaxConcurrent bounds the number of generations running at once.
// Zero or negative means unbounded.
func WithMaxConcurrent(n int64) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.sem = semaphore.NewWeighted(n)
		} else {
			o.sem = nil
		}
	}
}

// WithMetrics registers generation metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *Orchestrator) { o.metrics = newMetrics(reg) }
}

// New creates an Orchestrator writing session directories under outputRoot.
func New(store ports.SessionStore, mesh ports.MeshExporter, vector ports.VectorExporter, outputRoot string, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:      store,
		mesh:       mesh,
		vector:     vector,
		outputRoot: outputRoot,
		policy:     CleanupStrict,
		logger:     logging.NewNop(),
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Generate runs one export and returns the Ready session on success. On any
// exporter or storage failure the partially written directory is removed
// and no session is registered.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*domain.Session, error) {
	if req.Pattern == nil {
		return nil, fmt.Errorf("generate: no pattern document supplied")
	}
	body := req.Body
	if body == nil {
		body = domain.DefaultBody()
	}

	if o.sem != nil {
		if err := o.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		defer o.sem.Release(1)
	}

	start := o.now()
	id, dir, err := o.allocate(ctx)
	if err != nil {
		o.observe(req.Kind, "error", start)
		return nil, err
	}
	sess := domain.NewSession(id, dir, start)
	o.logger.Info("session allocated", "session_id", id, "kind", req.Kind)

	if err := o.writeInputs(dir, req.Pattern, body); err != nil {
		o.discard(dir)
		o.observe(req.Kind, "error", start)
		return nil, err
	}

	switch req.Kind {
	case domain.TargetThreeD:
		path, err := o.mesh.Export(ctx, req.Pattern, body, dir)
		if err != nil {
			o.discard(dir)
			o.observe(req.Kind, "error", start)
			return nil, exportError("mesh", err)
		}
		sess.Artifacts[domain.ArtifactMesh] = path

	case domain.TargetTwoD:
		arts, err := o.vector.Export(ctx, req.Pattern, dir, req.Vector)
		if err != nil {
			o.discard(dir)
			o.observe(req.Kind, "error", start)
			return nil, exportError("vector", err)
		}
		sess.Artifacts[domain.ArtifactVector] = arts.SVG
		if arts.PNG != "" {
			sess.Artifacts[domain.ArtifactRaster] = arts.PNG
		}
		if arts.PrintPDF != "" {
			sess.Artifacts[domain.ArtifactPrint] = arts.PrintPDF
		}

	default:
		o.discard(dir)
		return nil, fmt.Errorf("generate: unknown target kind %q", req.Kind)
	}

	// All artifacts are finalized; only now does the session become visible.
	sess.Status = domain.SessionReady
	if err := o.store.Insert(ctx, sess); err != nil {
		o.discard(dir)
		o.observe(req.Kind, "error", start)
		return nil, err
	}

	o.observe(req.Kind, "success", start)
	o.logger.Info("session ready",
		"session_id", id, "kind", req.Kind, "artifacts", len(sess.Artifacts))
	return sess, nil
}

// GetArtifact returns the path of one artifact of a Ready session. Unknown
// ids and artifact kinds that were never produced both fail with
// domain.ErrSessionNotFound.
func (o *Orchestrator) GetArtifact(ctx context.Context, id string, kind domain.ArtifactKind) (string, error) {
	sess, err := o.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	path, ok := sess.Artifacts[kind]
	if !ok {
		return "", fmt.Errorf("artifact %q of session %s: %w", kind, id, domain.ErrSessionNotFound)
	}
	return path, nil
}

// Cleanup removes the session's output directory recursively and deletes
// its record. A failed directory removal keeps the record so the caller can
// retry. Cleanup of an unknown id follows the configured CleanupPolicy.
func (o *Orchestrator) Cleanup(ctx context.Context, id string) error {
	sess, err := o.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) && o.policy == CleanupIdempotent {
			return nil
		}
		return err
	}

	if err := os.RemoveAll(sess.OutputDir); err != nil {
		o.logger.Error("cleanup failed, session record kept for retry",
			"session_id", id, "err", err)
		return &domain.StorageError{Op: "remove", Path: sess.OutputDir, Err: err}
	}

	if err := o.store.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) && o.policy == CleanupIdempotent {
			return nil
		}
		return err
	}
	o.logger.Info("session cleaned up", "session_id", id)
	return nil
}

// allocate picks a fresh high-entropy session id and creates its directory.
// A collision with an existing session or a leftover directory triggers a
// re-draw before anything is written.
func (o *Orchestrator) allocate(ctx context.Context) (string, string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := o.newID()
		if _, err := o.store.Get(ctx, id); err == nil {
			continue
		}
		dir := filepath.Join(o.outputRoot, id)
		if _, err := os.Stat(dir); err == nil {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", "", &domain.StorageError{Op: "mkdir", Path: dir, Err: err}
		}
		return id, dir, nil
	}
	return "", "", fmt.Errorf("allocate: no unique session id after %d attempts", maxIDAttempts)
}

// writeInputs persists the request inputs next to the artifacts for later
// reference, like the pattern folder of a desktop export.
func (o *Orchestrator) writeInputs(dir string, doc *domain.PatternDocument, body *domain.BodyParameters) error {
	specPath := filepath.Join(dir, "pattern_specification.json")
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &domain.StorageError{Op: "encode", Path: specPath, Err: err}
	}
	if err := os.WriteFile(specPath, data, 0o644); err != nil {
		return &domain.StorageError{Op: "write", Path: specPath, Err: err}
	}

	bodyPath := filepath.Join(dir, "body_params.yaml")
	bodyData, err := yaml.Marshal(map[string]*domain.BodyParameters{"body": body})
	if err != nil {
		return &domain.StorageError{Op: "encode", Path: bodyPath, Err: err}
	}
	if err := os.WriteFile(bodyPath, bodyData, 0o644); err != nil {
		return &domain.StorageError{Op: "write", Path: bodyPath, Err: err}
	}
	return nil
}

func (o *Orchestrator) discard(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		o.logger.Warn("failed to remove partial session directory", "dir", dir, "err", err)
	}
}

func (o *Orchestrator) observe(kind domain.TargetKind, outcome string, start time.Time) {
	if o.metrics == nil {
		return
	}
	o.metrics.observe(kind, outcome, time.Since(start))
}

// exportError keeps exporter-provided stages and wraps everything else.
func exportError(stage string, err error) error {
	var eerr *domain.ExportError
	if errors.As(err, &eerr) {
		return err
	}
	return &domain.ExportError{Stage: stage, Err: err}
}
