package ports

import (
	"context"

	"github.com/seamly/garmentd/pkg/domain"
)

// PatternBuilder constructs a canonical pattern document from a validated
// design specification and a body measurement set. Construction is CPU-heavy
// and blocking; implementations must honor ctx cancellation between panels
// where practical.
type PatternBuilder interface {
	Build(ctx context.Context, spec *domain.DesignSpecification, body *domain.BodyParameters) (*domain.PatternDocument, error)
}

// MeshExporter encodes a pattern document as one binary 3D asset inside dir
// and returns its path.
type MeshExporter interface {
	Export(ctx context.Context, doc *domain.PatternDocument, body *domain.BodyParameters, dir string) (string, error)
}

// VectorOptions control the 2D encoder output.
type VectorOptions struct {
	WithText      bool // draw panel name labels
	ViewIDs       bool // draw vertex/edge id labels
	WithPrintable bool // also produce the paginated print document
}

// VectorArtifacts holds the paths produced by a 2D export. SVG is always
// present on success; PNG and PrintPDF are optional derivatives.
type VectorArtifacts struct {
	SVG      string
	PNG      string
	PrintPDF string
}

// VectorExporter encodes a pattern document as a vector diagram (plus
// optional raster and print derivatives) inside dir.
type VectorExporter interface {
	Export(ctx context.Context, doc *domain.PatternDocument, dir string, opts VectorOptions) (VectorArtifacts, error)
}

// SessionStore is the process-wide table of active sessions. Entries are
// added only by a successful generation and removed only by cleanup; there
// is no persistence across process restarts.
//
// Implementations must be safe for concurrent use and must never let a
// caller mutate stored state through a returned pointer.
type SessionStore interface {
	// Insert adds a session, failing with domain.ErrDuplicateSession if the
	// id is taken.
	Insert(ctx context.Context, s *domain.Session) error
	// Get returns a copy of the session, or domain.ErrSessionNotFound.
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Delete removes the session, or fails with domain.ErrSessionNotFound.
	Delete(ctx context.Context, id string) error
	// List returns the ids of all active sessions.
	List(ctx context.Context) ([]string, error)
}
