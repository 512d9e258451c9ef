package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/seamly/garmentd/internal/logging"
	"github.com/seamly/garmentd/pkg/domain"
	"github.com/seamly/garmentd/pkg/orchestrator"
	"github.com/seamly/garmentd/pkg/ports"
	"github.com/seamly/garmentd/pkg/schema"
)

// Generator drives artifact generation and the session lifecycle.
type Generator interface {
	Generate(ctx context.Context, req orchestrator.Request) (*domain.Session, error)
	GetArtifact(ctx context.Context, id string, kind domain.ArtifactKind) (string, error)
	Cleanup(ctx context.Context, id string) error
}

// Resolver turns design input into a structurally valid pattern document.
type Resolver interface {
	Resolve(ctx context.Context, spec *domain.DesignSpecification, body *domain.BodyParameters) (*domain.PatternDocument, error)
	ResolveDocument(doc *domain.PatternDocument) (*domain.PatternDocument, error)
}

// Server holds the HTTP handlers.
type Server struct {
	gen    Generator
	res    Resolver
	logger *slog.Logger
}

// Option configures the handler.
type Option func(*handlerConfig)

type handlerConfig struct {
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *handlerConfig) { c.logger = logger }
}

// WithMetrics mounts GET /metrics serving the given gatherer.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(c *handlerConfig) { c.gatherer = g }
}

// NewHandler builds the HTTP routing for the generation service.
func NewHandler(gen Generator, res Resolver, opts ...Option) http.Handler {
	cfg := handlerConfig{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Server{gen: gen, res: res, logger: cfg.logger}

	r := chi.NewRouter()
	r.Post("/generate3d", s.Generate3D)
	r.Post("/generate3d_legacy", s.Generate3DLegacy)
	r.Post("/generate_svg", s.GenerateSVG)
	r.Post("/generate_pattern_svg", s.GeneratePatternSVG)
	r.Get("/download/{session_id}", s.download(domain.ArtifactMesh, "model/gltf-binary"))
	r.Get("/download_svg/{session_id}", s.download(domain.ArtifactVector, "image/svg+xml"))
	r.Get("/download_png/{session_id}", s.download(domain.ArtifactRaster, "image/png"))
	r.Get("/download_pdf/{session_id}", s.download(domain.ArtifactPrint, "application/pdf"))
	r.Delete("/cleanup/{session_id}", s.CleanupSession)
	r.Delete("/cleanup_svg/{session_id}", s.CleanupSession)
	r.Get("/health", s.GetHealth)
	if cfg.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// resolveInput produces the pattern document from whichever input the
// request carries. designOnly restricts the endpoint to raw design
// parameters.
func (s *Server) resolveInput(ctx context.Context, req *generateRequest, designOnly bool) (*domain.PatternDocument, error) {
	if req.PatternSpec != nil && !designOnly {
		return s.res.ResolveDocument(req.PatternSpec)
	}
	if req.DesignParams != nil {
		spec, err := schema.Validate(req.DesignParams)
		if err != nil {
			return nil, err
		}
		return s.res.Resolve(ctx, spec, req.BodyParams)
	}
	if designOnly {
		return nil, &missingInputError{msg: "design_params required"}
	}
	return nil, &missingInputError{msg: "either design_params or pattern_specification required"}
}

type missingInputError struct{ msg string }

func (e *missingInputError) Error() string { return e.msg }

// badInput classifies resolution failures: missing input and design
// validation problems are the caller's fault, construction failures are ours.
func badInput(err error) bool {
	var verr *schema.ValidationError
	var perr *domain.PatternValidationError
	var merr *missingInputError
	return errors.As(err, &verr) || errors.As(err, &perr) || errors.As(err, &merr)
}

func (s *Server) generate3D(w http.ResponseWriter, r *http.Request, designOnly bool) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("generate3d: invalid request body", "err", err)
		return
	}

	doc, err := s.resolveInput(r.Context(), &req, designOnly)
	if err != nil {
		if badInput(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Pattern generation failed", http.StatusInternalServerError)
		s.logger.Error("generate3d: pattern construction failed", "err", err)
		return
	}

	sess, err := s.gen.Generate(r.Context(), orchestrator.Request{
		Pattern: doc,
		Body:    req.BodyParams,
		Kind:    domain.TargetThreeD,
	})
	if err != nil {
		http.Error(w, "Mesh generation failed", http.StatusInternalServerError)
		s.logger.Error("generate3d: generation failed", "err", err)
		return
	}

	writeJSON(w, s.logger, meshResponse{
		SessionID:   sess.ID,
		GLBFilePath: sess.Artifacts[domain.ArtifactMesh],
		OutputDir:   sess.OutputDir,
	})
}

// Generate3D handles POST /generate3d.
func (s *Server) Generate3D(w http.ResponseWriter, r *http.Request) {
	s.generate3D(w, r, false)
}

// Generate3DLegacy handles POST /generate3d_legacy, which only accepts raw
// design parameters.
func (s *Server) Generate3DLegacy(w http.ResponseWriter, r *http.Request) {
	s.generate3D(w, r, true)
}

func (s *Server) generateVector(w http.ResponseWriter, r *http.Request, patternOnly bool, defaults ports.VectorOptions) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("generate_svg: invalid request body", "err", err)
		return
	}
	if patternOnly && req.PatternSpec == nil {
		http.Error(w, "pattern_specification required", http.StatusBadRequest)
		return
	}

	doc, err := s.resolveInput(r.Context(), &req, false)
	if err != nil {
		if badInput(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Pattern generation failed", http.StatusInternalServerError)
		s.logger.Error("generate_svg: pattern construction failed", "err", err)
		return
	}

	opts := defaults
	if req.WithText != nil {
		opts.WithText = *req.WithText
	}
	if req.ViewIDs != nil {
		opts.ViewIDs = *req.ViewIDs
	}
	if req.WithPrintable != nil {
		opts.WithPrintable = *req.WithPrintable
	}

	sess, err := s.gen.Generate(r.Context(), orchestrator.Request{
		Pattern: doc,
		Body:    req.BodyParams,
		Kind:    domain.TargetTwoD,
		Vector:  opts,
	})
	if err != nil {
		http.Error(w, "SVG generation failed", http.StatusInternalServerError)
		s.logger.Error("generate_svg: generation failed", "err", err)
		return
	}

	writeJSON(w, s.logger, vectorResponse{
		SessionID:        sess.ID,
		SVGFilePath:      sess.Artifacts[domain.ArtifactVector],
		PNGFilePath:      sess.Artifacts[domain.ArtifactRaster],
		PrintablePDFPath: sess.Artifacts[domain.ArtifactPrint],
		OutputDir:        sess.OutputDir,
	})
}

// GenerateSVG handles POST /generate_svg.
func (s *Server) GenerateSVG(w http.ResponseWriter, r *http.Request) {
	s.generateVector(w, r, false, ports.VectorOptions{WithText: true})
}

// GeneratePatternSVG handles POST /generate_pattern_svg: a pattern document
// in, the full diagram set out, print pages included unless switched off.
func (s *Server) GeneratePatternSVG(w http.ResponseWriter, r *http.Request) {
	s.generateVector(w, r, true, ports.VectorOptions{WithText: true, WithPrintable: true})
}

// download serves one artifact kind of a session.
func (s *Server) download(kind domain.ArtifactKind, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "session_id")
		path, err := s.gen.GetArtifact(r.Context(), id, kind)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				http.Error(w, "Session not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Artifact lookup failed", http.StatusInternalServerError)
			s.logger.Error("download failed", "session_id", id, "kind", kind, "err", err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		http.ServeFile(w, r, path)
	}
}

// CleanupSession handles DELETE /cleanup/{session_id}.
func (s *Server) CleanupSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "session_id")
	if err := s.gen.Cleanup(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Cleanup failed", http.StatusInternalServerError)
		s.logger.Error("cleanup failed", "session_id", id, "err", err)
		return
	}
	writeJSON(w, s.logger, statusResponse{
		Status:  "success",
		Message: "Session " + id + " cleaned up",
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
