/*
Package garmentd generates sewing patterns and their 3D previews from a
declarative garment design parameter tree.

A design is a nested parameter map (shirt, sleeve, collar, optional
asymmetric left side) validated against a declared schema. The resolver
turns it into a canonical pattern document: 2D panels, stitches and panel
placement. Exporters then render that document either as a binary glTF mesh
or as 2D cutting diagrams (SVG, PNG, and a paginated print PDF). Every
generation runs in its own session with an isolated output directory that
lives until it is explicitly cleaned up.

# Usage

	svc, err := garmentd.New("output")
	if err != nil {
		log.Fatal(err)
	}
	http.ListenAndServe(":8080", svc.Handler())

The Service can equally be driven directly: validate a design with
schema.Validate, resolve it via svc.Resolver, and hand the document to
svc.Orchestrator for export.
*/
package garmentd

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/seamly/garmentd/internal/logging"
	"github.com/seamly/garmentd/pkg/adapters/garment"
	"github.com/seamly/garmentd/pkg/adapters/httpapi"
	"github.com/seamly/garmentd/pkg/adapters/memory"
	"github.com/seamly/garmentd/pkg/adapters/mesh"
	"github.com/seamly/garmentd/pkg/adapters/vector"
	"github.com/seamly/garmentd/pkg/orchestrator"
	"github.com/seamly/garmentd/pkg/ports"
	"github.com/seamly/garmentd/pkg/resolver"
)

// Version is the release version of the garmentd module.
var Version = "0.1.0"

// Service is the assembled generation stack: resolver, orchestrator and
// session store wired together with the default adapters.
type Service struct {
	Resolver     *resolver.Resolver
	Orchestrator *orchestrator.Orchestrator
	Store        ports.SessionStore

	logger   *slog.Logger
	registry *prometheus.Registry
}

// Option configures the Service.
type Option func(*settings)

type settings struct {
	logger        *slog.Logger
	maxConcurrent int64
	cleanupPolicy orchestrator.CleanupPolicy
	meshCells     int
}

// WithLogger sets the structured logger used by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithMaxConcurrent bounds simultaneous generations.
func WithMaxConcurrent(n int64) Option {
	return func(s *settings) { s.maxConcurrent = n }
}

// WithCleanupPolicy selects the repeated-cleanup behavior by name
// ("strict" or "idempotent").
func WithCleanupPolicy(name string) Option {
	return func(s *settings) {
		if name == "idempotent" {
			s.cleanupPolicy = orchestrator.CleanupIdempotent
		} else {
			s.cleanupPolicy = orchestrator.CleanupStrict
		}
	}
}

// WithMeshCells sets the 3D tessellation resolution.
func WithMeshCells(n int) Option {
	return func(s *settings) { s.meshCells = n }
}

// New assembles a Service writing session output under outputRoot.
func New(outputRoot string, opts ...Option) (*Service, error) {
	if outputRoot == "" {
		return nil, fmt.Errorf("garmentd: output root required")
	}
	cfg := settings{
		logger:        logging.NewNop(),
		maxConcurrent: 4,
		meshCells:     0, // adapter default
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	store := memory.NewStore()
	builder := garment.New(garment.WithLogger(cfg.logger))
	res := resolver.New(builder, resolver.WithLogger(cfg.logger))

	meshOpts := []mesh.Option{mesh.WithLogger(cfg.logger)}
	if cfg.meshCells > 0 {
		meshOpts = append(meshOpts, mesh.WithCells(cfg.meshCells))
	}

	orch := orchestrator.New(store,
		mesh.New(meshOpts...),
		vector.New(vector.WithLogger(cfg.logger)),
		outputRoot,
		orchestrator.WithLogger(cfg.logger),
		orchestrator.WithCleanupPolicy(cfg.cleanupPolicy),
		orchestrator.WithMaxConcurrent(cfg.maxConcurrent),
		orchestrator.WithMetrics(registry),
	)

	return &Service{
		Resolver:     res,
		Orchestrator: orch,
		Store:        store,
		logger:       cfg.logger,
		registry:     registry,
	}, nil
}

// Handler returns the HTTP API for the service, metrics endpoint included.
func (s *Service) Handler() http.Handler {
	return httpapi.NewHandler(s.Orchestrator, s.Resolver,
		httpapi.WithLogger(s.logger),
		httpapi.WithMetrics(s.registry),
	)
}
