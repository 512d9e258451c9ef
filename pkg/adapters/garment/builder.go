package garment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/seamly/garmentd/internal/logging"
	"github.com/seamly/garmentd/pkg/domain"
	"github.com/seamly/garmentd/pkg/schema"
)

// side tags a panel set with its body half. The prefix is part of the panel
// name, mirror flips the x placement.
type side struct {
	prefix string
	mirror float64
}

var (
	rightSide = side{prefix: "r", mirror: 1}
	leftSide  = side{prefix: "l", mirror: -1}
)

// Builder derives pattern panels and stitches from a design specification
// and a body measurement set.
type Builder struct {
	logger *slog.Logger
}

// Option configures the Builder.
type Option func(*Builder)

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) { b.logger = logger }
}

// New creates a Builder.
func New(opts ...Option) *Builder {
	b := &Builder{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build constructs the pattern document. The output is deterministic for a
// fixed spec and body, and always satisfies the structural invariants the
// resolver enforces.
func (b *Builder) Build(ctx context.Context, spec *domain.DesignSpecification, body *domain.BodyParameters) (*domain.PatternDocument, error) {
	if spec == nil {
		return nil, fmt.Errorf("build pattern: nil design specification")
	}
	if body == nil {
		body = domain.DefaultBody()
	}

	if !spec.Meta.Upper.Set && !spec.Meta.Bottom.Set {
		return nil, fmt.Errorf("build pattern: design selects no garment components")
	}

	sides := schema.ResolveAsymmetry(spec)
	d := newDraft(body)

	if spec.Meta.Upper.Set {
		for _, half := range []struct {
			side   side
			design domain.SideDesign
		}{
			{rightSide, sides.Right},
			{leftSide, sides.Left},
		} {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			d.upperHalf(half.side, half.design)
		}
	}
	if spec.Meta.Bottom.Set {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d.skirt(spec.Meta.Bottom.Value, sides.Right.Shirt)
	}
	if spec.Meta.Waistband.Set {
		d.waistband()
	}

	doc := d.document(spec)
	b.logger.Debug("pattern constructed",
		"panels", len(doc.Panels), "stitches", len(doc.Stitches))
	return doc, nil
}

// draft accumulates panels and stitches during construction, keeping the
// panel order equal to insertion order.
type draft struct {
	body     *domain.BodyParameters
	panels   map[string]domain.Panel
	order    []string
	stitches []domain.Stitch
}

func newDraft(body *domain.BodyParameters) *draft {
	return &draft{
		body:   body,
		panels: make(map[string]domain.Panel),
	}
}

func (d *draft) add(name string, p domain.Panel) {
	d.panels[name] = p
	d.order = append(d.order, name)
}

func (d *draft) stitch(aPanel string, aEdge int, bPanel string, bEdge int) {
	d.stitches = append(d.stitches, domain.Stitch{
		{Panel: aPanel, Edge: aEdge},
		{Panel: bPanel, Edge: bEdge},
	})
}

// Quad edge indices, counter-clockwise from the bottom.
const (
	edgeBottom = 0
	edgeRight  = 1
	edgeTop    = 2
	edgeLeft   = 3
)

// quad builds a centered trapezoid panel: bottomW wide at y=0, topW wide at
// y=height. Degenerate widths still produce four distinct edges.
func quad(bottomW, topW, height float64) domain.Panel {
	inset := (bottomW - topW) / 2
	return domain.Panel{
		Vertices: [][2]float64{
			{0, 0},
			{bottomW, 0},
			{bottomW - inset, height},
			{inset, height},
		},
		Edges: []domain.Edge{
			{Endpoints: [2]int{0, 1}},
			{Endpoints: [2]int{1, 2}},
			{Endpoints: [2]int{2, 3}},
			{Endpoints: [2]int{3, 0}},
		},
	}
}

// upperHalf emits the bodice front/back of one body half, plus its sleeve,
// cuff and collar component panels when the design asks for them.
func (d *draft) upperHalf(s side, design domain.SideDesign) {
	front := s.prefix + "front"
	back := s.prefix + "back"

	bodiceLen := d.body.WaistLine * design.Shirt.Length
	topW := d.body.Bust / 4 * design.Shirt.Width
	hemW := topW * design.Shirt.Flare

	fp := quad(hemW, topW, bodiceLen)
	// Neckline scoop on the top edge, relative edge coordinates.
	fp.Edges[edgeTop].Curvature = []float64{0.5, -0.1 * design.Collar.FCDepth}
	fp.Translation = [3]float64{s.mirror * topW / 2, d.body.Height - d.body.WaistLine - bodiceLen, 12}
	d.add(front, fp)

	bp := quad(hemW, topW, bodiceLen)
	if design.Collar.BCDepth > 0 {
		bp.Edges[edgeTop].Curvature = []float64{0.5, -0.1 * design.Collar.BCDepth}
	}
	bp.Translation = [3]float64{s.mirror * topW / 2, d.body.Height - d.body.WaistLine - bodiceLen, -12}
	bp.Rotation = [3]float64{0, 180, 0}
	d.add(back, bp)

	// Side seam on the outer edge, center-front/center-back stay open for
	// the half-pattern convention.
	outer, inner := edgeRight, edgeLeft
	if s.mirror < 0 {
		outer, inner = edgeLeft, edgeRight
	}
	d.stitch(front, outer, back, outer)

	if design.Shirt.Strapless || design.Sleeve.Sleeveless {
		if !design.Shirt.Strapless {
			d.collarComponent(s, design.Collar, front)
		}
		return
	}

	sleeve := s.prefix + "sleeve"
	sleeveLen := d.body.ArmLength * design.Sleeve.Length
	capW := d.body.Bust / 5 * (1 + design.Sleeve.ConnectingWidth)
	wristW := d.body.WristCirc * design.Sleeve.EndWidth

	sp := quad(wristW, capW, sleeveLen)
	sp.Translation = [3]float64{
		s.mirror * (d.body.ShoulderWidth/2 + 4),
		d.body.Height - d.body.WaistLine - sleeveLen + bodiceLen,
		0,
	}
	sp.Rotation = [3]float64{0, 0, s.mirror * -float64(design.Sleeve.SleeveAngle)}
	d.add(sleeve, sp)
	// Sleeve cap into the armscye.
	d.stitch(sleeve, edgeTop, front, inner)

	if design.Sleeve.Cuff.Type.Set {
		cuff := s.prefix + "cuff"
		cuffLen := d.body.ArmLength * design.Sleeve.Cuff.CuffLen
		cp := quad(wristW, wristW*design.Sleeve.Cuff.TopRuffle, cuffLen)
		cp.Translation = [3]float64{sp.Translation[0], sp.Translation[1] - sleeveLen - cuffLen, 0}
		d.add(cuff, cp)
		d.stitch(cuff, edgeTop, sleeve, edgeBottom)
	}

	d.collarComponent(s, design.Collar, front)
}

// collarComponent emits one half of an optional collar attachment.
func (d *draft) collarComponent(s side, collar domain.CollarDesign, front string) {
	if !collar.Component.Style.Set {
		return
	}
	name := s.prefix + "collar"
	width := d.body.Neck / 2 * (1 + collar.Width)
	height := float64(collar.Component.Depth)

	cp := quad(width, width, height)
	cp.Translation = [3]float64{s.mirror * width / 2, d.body.Height - 2, 6}
	d.add(name, cp)
	d.stitch(name, edgeBottom, front, edgeTop)
}

// skirt emits the lower-garment front/back panels. The silhouette multiplier
// comes from the selected bottom component; the upper flare carries into the
// waist seam so the blocks meet at the same width.
func (d *draft) skirt(style string, shirt domain.ShirtDesign) {
	skirtLen := d.body.Height - d.body.WaistLine - d.body.HipLine
	waistW := d.body.Waist / 2 * shirt.Flare
	hemW := d.body.Hips / 2 * silhouette(style)

	for _, cfg := range []struct {
		name string
		z    float64
		rot  [3]float64
	}{
		{"skirt_f", 12, [3]float64{}},
		{"skirt_b", -12, [3]float64{0, 180, 0}},
	} {
		p := quad(hemW, waistW, skirtLen)
		p.Translation = [3]float64{0, 2, cfg.z}
		p.Rotation = cfg.rot
		d.add(cfg.name, p)
	}
	d.stitch("skirt_f", edgeRight, "skirt_b", edgeRight)
	d.stitch("skirt_f", edgeLeft, "skirt_b", edgeLeft)
}

// silhouette maps a bottom component to its hem width multiplier.
func silhouette(style string) float64 {
	switch style {
	case "SkirtCircle":
		return 3.0
	case "SkirtLevels":
		return 2.2
	case "Pants":
		return 0.9
	default: // PencilSkirt
		return 1.0
	}
}

// waistband emits a straight band joining upper and lower blocks.
func (d *draft) waistband() {
	const bandH = 4.0
	w := d.body.Waist / 2
	p := quad(w, w, bandH)
	p.Translation = [3]float64{0, d.body.Height - d.body.WaistLine - bandH/2, 12}
	d.add("wb", p)
	if _, ok := d.panels["skirt_f"]; ok {
		d.stitch("wb", edgeBottom, "skirt_f", edgeTop)
	}
}

func (d *draft) document(spec *domain.DesignSpecification) *domain.PatternDocument {
	return &domain.PatternDocument{
		Panels:     d.panels,
		Stitches:   d.stitches,
		PanelOrder: d.order,
		Properties: map[string]any{
			"curvature_coords": "relative",
			"units_in_meter":   100,
		},
		Parameters: map[string]any{
			"design": spec,
			"body":   d.body,
		},
		ParameterOrder: []string{"design", "body"},
	}
}
