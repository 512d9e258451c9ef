package domain

// Edge connects two vertex indices of a panel. A non-nil Curvature holds the
// control point of a quadratic curve in relative edge coordinates, matching
// the serialized pattern format.
type Edge struct {
	Endpoints [2]int    `json:"endpoints"`
	Curvature []float64 `json:"curvature,omitempty"`
}

// Panel is a single 2D pattern piece plus its placement in 3D space.
// Vertices are in cm, counter-clockwise. Edges index into Vertices.
type Panel struct {
	Vertices    [][2]float64 `json:"vertices"`
	Edges       []Edge       `json:"edges"`
	Translation [3]float64   `json:"translation"`
	Rotation    [3]float64   `json:"rotation"`
}

// StitchSide identifies one side of a stitch: an edge of a named panel.
type StitchSide struct {
	Panel string `json:"panel"`
	Edge  int    `json:"edge"`
}

// Stitch sews two panel edges together.
type Stitch [2]StitchSide

// PatternDocument is the canonical 2D pattern representation shared by the
// 3D and 2D exporters.
//
// Structural invariants (enforced by the resolver before a document reaches
// any exporter): PanelOrder is a permutation of the keys of Panels, and
// every stitch side references an existing panel and an in-range edge.
type PatternDocument struct {
	Panels         map[string]Panel `json:"panels"`
	Stitches       []Stitch         `json:"stitches"`
	PanelOrder     []string         `json:"panel_order"`
	Properties     map[string]any   `json:"properties,omitempty"`
	Parameters     map[string]any   `json:"parameters,omitempty"`
	ParameterOrder []string         `json:"parameter_order,omitempty"`
}

// Clone returns a deep copy of the document.
func (d *PatternDocument) Clone() *PatternDocument {
	if d == nil {
		return nil
	}
	out := &PatternDocument{
		Panels:         make(map[string]Panel, len(d.Panels)),
		Stitches:       make([]Stitch, len(d.Stitches)),
		PanelOrder:     append([]string(nil), d.PanelOrder...),
		ParameterOrder: append([]string(nil), d.ParameterOrder...),
	}
	copy(out.Stitches, d.Stitches)
	for name, p := range d.Panels {
		cp := p
		cp.Vertices = make([][2]float64, len(p.Vertices))
		copy(cp.Vertices, p.Vertices)
		cp.Edges = make([]Edge, len(p.Edges))
		for i, e := range p.Edges {
			ce := e
			ce.Curvature = append([]float64(nil), e.Curvature...)
			cp.Edges[i] = ce
		}
		out.Panels[name] = cp
	}
	if d.Properties != nil {
		out.Properties = make(map[string]any, len(d.Properties))
		for k, v := range d.Properties {
			out.Properties[k] = v
		}
	}
	if d.Parameters != nil {
		out.Parameters = make(map[string]any, len(d.Parameters))
		for k, v := range d.Parameters {
			out.Parameters[k] = v
		}
	}
	return out
}
