package resolver

import (
	"context"
	"log/slog"

	"github.com/seamly/garmentd/internal/logging"
	"github.com/seamly/garmentd/pkg/domain"
	"github.com/seamly/garmentd/pkg/ports"
)

// Resolver converts design specifications or raw pattern documents into
// structurally valid canonical patterns.
type Resolver struct {
	builder ports.PatternBuilder
	logger  *slog.Logger
}

// Option configures the Resolver.
type Option func(*Resolver)

// WithLogger configures a logger for the Resolver.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a Resolver delegating construction to builder.
func New(builder ports.PatternBuilder, opts ...Option) *Resolver {
	r := &Resolver{
		builder: builder,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve builds a pattern document from a validated design specification
// via the construction collaborator. Builder failures are wrapped in
// *domain.PatternConstructionError.
func (r *Resolver) Resolve(ctx context.Context, spec *domain.DesignSpecification, body *domain.BodyParameters) (*domain.PatternDocument, error) {
	if body == nil {
		body = domain.DefaultBody()
	}

	doc, err := r.builder.Build(ctx, spec, body)
	if err != nil {
		r.logger.Error("pattern construction failed", "err", err)
		return nil, &domain.PatternConstructionError{Err: err}
	}

	r.logger.Debug("pattern constructed", "panels", len(doc.Panels), "stitches", len(doc.Stitches))
	return doc, nil
}

// ResolveDocument validates a caller-supplied pattern document structurally
// and passes it through unchanged. The construction collaborator is never
// invoked on this path.
func (r *Resolver) ResolveDocument(doc *domain.PatternDocument) (*domain.PatternDocument, error) {
	if err := ValidateStructure(doc); err != nil {
		r.logger.Warn("rejected pattern document", "err", err)
		return nil, err
	}
	return doc, nil
}
