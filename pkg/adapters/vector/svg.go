package vector

import (
	"fmt"
	"os"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/seamly/garmentd/pkg/ports"
)

const (
	panelStyle  = "fill:none;stroke:black;stroke-width:2"
	labelStyle  = "fill:black;font-size:14px;font-family:sans-serif;text-anchor:middle"
	vertexStyle = "fill:gray;font-size:9px;font-family:sans-serif"
)

// writeSVG renders the sheet as a standalone SVG file. scale converts sheet
// cm into pixels.
func writeSVG(path string, s sheet, opts ports.VectorOptions, scale float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	canvas := svg.New(f)
	canvas.Start(int(s.W*scale), int(s.H*scale))
	for _, o := range s.Outlines {
		canvas.Path(pathData(o, scale), panelStyle)
		if opts.WithText {
			canvas.Text(int(o.Label.X*scale), int(o.Label.Y*scale), o.Name, labelStyle)
		}
		if opts.ViewIDs {
			for vi, v := range o.Verts {
				canvas.Text(int(v.X*scale), int(v.Y*scale), fmt.Sprintf("%d", vi), vertexStyle)
			}
		}
	}
	canvas.End()
	return f.Close()
}

// pathData builds the SVG path expression for one outline.
func pathData(o outline, scale float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "M %.2f %.2f", o.Start.X*scale, o.Start.Y*scale)
	for _, seg := range o.Segs {
		if seg.Ctrl != nil {
			fmt.Fprintf(&b, " Q %.2f %.2f %.2f %.2f",
				seg.Ctrl.X*scale, seg.Ctrl.Y*scale, seg.To.X*scale, seg.To.Y*scale)
		} else {
			fmt.Fprintf(&b, " L %.2f %.2f", seg.To.X*scale, seg.To.Y*scale)
		}
	}
	b.WriteString(" Z")
	return b.String()
}
