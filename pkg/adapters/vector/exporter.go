package vector

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/seamly/garmentd/internal/logging"
	"github.com/seamly/garmentd/pkg/domain"
	"github.com/seamly/garmentd/pkg/ports"
)

// Output files written into the session directory.
const (
	SVGName   = "pattern.svg"
	PNGName   = "pattern.png"
	PrintName = "print_pattern.pdf"
)

const (
	defaultScale = 4.0 // pixels per cm for SVG and PNG
	layoutPad    = 5.0 // cm between placed panels
)

// Exporter implements ports.VectorExporter.
type Exporter struct {
	scale  float64
	logger *slog.Logger
}

// Option configures the Exporter.
type Option func(*Exporter)

// WithScale sets the raster/vector resolution in pixels per cm.
func WithScale(s float64) Option {
	return func(e *Exporter) {
		if s > 0 {
			e.scale = s
		}
	}
}

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) { e.logger = logger }
}

// New creates an Exporter.
func New(opts ...Option) *Exporter {
	e := &Exporter{scale: defaultScale, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export writes the 2D diagrams into dir. SVG and PNG are always produced;
// the print PDF only on request.
func (e *Exporter) Export(ctx context.Context, doc *domain.PatternDocument, dir string, opts ports.VectorOptions) (ports.VectorArtifacts, error) {
	s := buildSheet(doc, layoutPad)
	e.logger.Debug("sheet laid out", "panels", len(s.Outlines), "w_cm", s.W, "h_cm", s.H)

	arts := ports.VectorArtifacts{SVG: filepath.Join(dir, SVGName)}
	if err := writeSVG(arts.SVG, s, opts, e.scale); err != nil {
		return ports.VectorArtifacts{}, &domain.ExportError{Stage: "svg", Err: err}
	}

	if err := ctx.Err(); err != nil {
		return ports.VectorArtifacts{}, err
	}
	arts.PNG = filepath.Join(dir, PNGName)
	if err := writePNG(arts.PNG, s, e.scale); err != nil {
		return ports.VectorArtifacts{}, &domain.ExportError{Stage: "png", Err: err}
	}

	if opts.WithPrintable {
		if err := ctx.Err(); err != nil {
			return ports.VectorArtifacts{}, err
		}
		arts.PrintPDF = filepath.Join(dir, PrintName)
		if err := writePrintPDF(arts.PrintPDF, s); err != nil {
			return ports.VectorArtifacts{}, &domain.ExportError{Stage: "pdf", Err: err}
		}
	}
	return arts, nil
}
