package vector

import (
	"math"

	"github.com/seamly/garmentd/pkg/domain"
)

// point is a position on the drawing sheet, in cm, y growing downwards.
type point struct {
	X, Y float64
}

// segment is one step of a panel outline: a straight line, or a quadratic
// curve when Ctrl is set.
type segment struct {
	Ctrl *point
	To   point
}

// outline is a placed panel, flattened into sheet coordinates.
type outline struct {
	Name  string
	Start point
	Segs  []segment
	Label point
	Verts []point
}

// sheet is the complete drawing: every panel placed on a grid, plus the
// overall extent.
type sheet struct {
	Outlines []outline
	W, H     float64
}

// buildSheet lays the panels out on a uniform grid in PanelOrder, flipping
// the y axis from pattern space (y up) to drawing space (y down). Cell size
// is the largest panel bounding box plus padding, so panels never overlap.
func buildSheet(doc *domain.PatternDocument, pad float64) sheet {
	n := len(doc.PanelOrder)
	if n == 0 {
		return sheet{W: pad, H: pad}
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols

	type bbox struct {
		minX, minY, maxX, maxY float64
	}
	boxes := make([]bbox, n)
	var cellW, cellH float64
	for i, name := range doc.PanelOrder {
		p := doc.Panels[name]
		b := bbox{minX: math.Inf(1), minY: math.Inf(1), maxX: math.Inf(-1), maxY: math.Inf(-1)}
		for _, v := range p.Vertices {
			b.minX = math.Min(b.minX, v[0])
			b.minY = math.Min(b.minY, v[1])
			b.maxX = math.Max(b.maxX, v[0])
			b.maxY = math.Max(b.maxY, v[1])
		}
		boxes[i] = b
		cellW = math.Max(cellW, b.maxX-b.minX+pad)
		cellH = math.Max(cellH, b.maxY-b.minY+pad)
	}

	s := sheet{
		Outlines: make([]outline, 0, n),
		W:        pad + float64(cols)*cellW,
		H:        pad + float64(rows)*cellH,
	}
	for i, name := range doc.PanelOrder {
		p := doc.Panels[name]
		b := boxes[i]
		ox := pad + float64(i%cols)*cellW - b.minX
		oy := pad + float64(i/cols)*cellH
		place := func(v [2]float64) point {
			return point{X: ox + v[0], Y: oy + b.maxY - v[1]}
		}

		o := outline{
			Name:  name,
			Label: place([2]float64{(b.minX + b.maxX) / 2, (b.minY + b.maxY) / 2}),
			Verts: make([]point, len(p.Vertices)),
		}
		for vi, v := range p.Vertices {
			o.Verts[vi] = place(v)
		}
		for ei, e := range p.Edges {
			start := p.Vertices[e.Endpoints[0]]
			end := p.Vertices[e.Endpoints[1]]
			if ei == 0 {
				o.Start = place(start)
			}
			seg := segment{To: place(end)}
			if len(e.Curvature) == 2 {
				c := place(absControl(start, end, e.Curvature))
				seg.Ctrl = &c
			}
			o.Segs = append(o.Segs, seg)
		}
		s.Outlines = append(s.Outlines, o)
	}
	return s
}

// absControl converts relative edge coordinates (along, across) into pattern
// space.
func absControl(start, end [2]float64, rel []float64) [2]float64 {
	dx, dy := end[0]-start[0], end[1]-start[1]
	return [2]float64{
		start[0] + rel[0]*dx - rel[1]*dy,
		start[1] + rel[0]*dy + rel[1]*dx,
	}
}
