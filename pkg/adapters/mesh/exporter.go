package mesh

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/seamly/garmentd/internal/logging"
	"github.com/seamly/garmentd/pkg/domain"
)

const (
	// defaultCells controls marching cubes tessellation resolution.
	defaultCells = 100
	// fabricThickness is the extrusion depth of a panel in cm.
	fabricThickness = 0.4
	// curveSamples is the number of segments a curved edge is split into.
	curveSamples = 8

	// OutputName is the file written into the session directory.
	OutputName = "garment_sim.glb"
)

// Exporter implements ports.MeshExporter on an SDF pipeline.
type Exporter struct {
	cells  int
	logger *slog.Logger
}

// Option configures the Exporter.
type Option func(*Exporter)

// WithCells sets the marching cubes resolution. Low values render fast and
// coarse; tests use single digits, production keeps the default.
func WithCells(n int) Option {
	return func(e *Exporter) {
		if n > 0 {
			e.cells = n
		}
	}
}

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) { e.logger = logger }
}

// New creates an Exporter.
func New(opts ...Option) *Exporter {
	e := &Exporter{cells: defaultCells, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export writes the garment mesh into dir and returns its path.
func (e *Exporter) Export(ctx context.Context, doc *domain.PatternDocument, body *domain.BodyParameters, dir string) (string, error) {
	solids := make([]sdf.SDF3, 0, len(doc.PanelOrder))
	for _, name := range doc.PanelOrder {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		s, err := panelSolid(doc.Panels[name])
		if err != nil {
			return "", &domain.ExportError{Stage: "mesh", Err: fmt.Errorf("panel %s: %w", name, err)}
		}
		solids = append(solids, s)
	}
	if len(solids) == 0 {
		return "", &domain.ExportError{Stage: "mesh", Err: fmt.Errorf("no panels to render")}
	}

	garment := sdf.Union3D(solids...)
	renderer := render.NewMarchingCubesUniform(e.cells)
	triangles := render.ToTriangles(garment, renderer)
	if len(triangles) == 0 {
		return "", &domain.ExportError{Stage: "mesh", Err: fmt.Errorf("tessellation produced no triangles")}
	}
	e.logger.Debug("garment tessellated", "panels", len(solids), "triangles", len(triangles))

	path := filepath.Join(dir, OutputName)
	if err := writeGLB(path, triangles); err != nil {
		return "", &domain.ExportError{Stage: "glb", Err: err}
	}
	return path, nil
}

// panelSolid extrudes one panel outline into a thin solid and places it by
// the panel's stored rotation and translation.
func panelSolid(p domain.Panel) (sdf.SDF3, error) {
	outline, err := panelOutline(p)
	if err != nil {
		return nil, err
	}
	poly, err := sdf.Polygon2D(outline)
	if err != nil {
		return nil, err
	}
	solid := sdf.Extrude3D(poly, fabricThickness)

	// Rotate around the panel center, then move the center to the stored
	// translation.
	center := outlineCenter(outline)
	m := sdf.Translate3d(v3.Vec{X: p.Translation[0], Y: p.Translation[1], Z: p.Translation[2]}).
		Mul(rotationMatrix(p.Rotation)).
		Mul(sdf.Translate3d(v3.Vec{X: -center.X, Y: -center.Y}))
	return sdf.Transform3D(solid, m), nil
}

// panelOutline walks the panel edges in order, expanding curved edges into
// sampled quadratic segments.
func panelOutline(p domain.Panel) ([]v2.Vec, error) {
	if len(p.Vertices) < 3 {
		return nil, fmt.Errorf("outline needs at least 3 vertices, got %d", len(p.Vertices))
	}
	out := make([]v2.Vec, 0, len(p.Edges)*2)
	for _, e := range p.Edges {
		start := p.Vertices[e.Endpoints[0]]
		end := p.Vertices[e.Endpoints[1]]
		out = append(out, v2.Vec{X: start[0], Y: start[1]})
		if len(e.Curvature) == 2 {
			ctrl := controlPoint(start, end, e.Curvature)
			for i := 1; i < curveSamples; i++ {
				t := float64(i) / curveSamples
				out = append(out, quadBezier(start, ctrl, end, t))
			}
		}
	}
	return out, nil
}

// controlPoint converts relative edge coordinates (along, across) into an
// absolute point.
func controlPoint(start, end [2]float64, rel []float64) v2.Vec {
	dx, dy := end[0]-start[0], end[1]-start[1]
	return v2.Vec{
		X: start[0] + rel[0]*dx - rel[1]*dy,
		Y: start[1] + rel[0]*dy + rel[1]*dx,
	}
}

func quadBezier(start [2]float64, ctrl v2.Vec, end [2]float64, t float64) v2.Vec {
	u := 1 - t
	return v2.Vec{
		X: u*u*start[0] + 2*u*t*ctrl.X + t*t*end[0],
		Y: u*u*start[1] + 2*u*t*ctrl.Y + t*t*end[1],
	}
}

func outlineCenter(outline []v2.Vec) v2.Vec {
	min := outline[0]
	max := outline[0]
	for _, v := range outline[1:] {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
	}
	return v2.Vec{X: (min.X + max.X) / 2, Y: (min.Y + max.Y) / 2}
}

// rotationMatrix builds the placement rotation from Euler angles in degrees.
func rotationMatrix(deg [3]float64) sdf.M44 {
	const rad = math.Pi / 180.0
	return sdf.RotateZ(deg[2] * rad).
		Mul(sdf.RotateY(deg[1] * rad)).
		Mul(sdf.RotateX(deg[0] * rad))
}
