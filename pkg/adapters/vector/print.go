package vector

import (
	"math"

	"github.com/go-pdf/fpdf"
)

// A4 portrait printable area in mm, after the page margin.
const (
	printMargin = 10.0
	printableW  = 210.0 - 2*printMargin
	printableH  = 297.0 - 2*printMargin
	cmToMM      = 10.0
)

// writePrintPDF tiles the sheet over as many A4 pages as it needs, at true
// scale (1 cm of pattern is 1 cm of paper). Each page clips its window out
// of the full drawing; taped together the pages reproduce the sheet.
func writePrintPDF(path string, s sheet) error {
	tilesX := int(math.Max(1, math.Ceil(s.W*cmToMM/printableW)))
	tilesY := int(math.Max(1, math.Ceil(s.H*cmToMM/printableH)))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)

	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			pdf.AddPage()
			pdf.ClipRect(printMargin, printMargin, printableW, printableH, false)

			// Shift the drawing so this page's window lands on the
			// printable area.
			offX := printMargin - float64(tx)*printableW
			offY := printMargin - float64(ty)*printableH
			for _, o := range s.Outlines {
				pdf.MoveTo(o.Start.X*cmToMM+offX, o.Start.Y*cmToMM+offY)
				for _, seg := range o.Segs {
					if seg.Ctrl != nil {
						pdf.CurveTo(seg.Ctrl.X*cmToMM+offX, seg.Ctrl.Y*cmToMM+offY,
							seg.To.X*cmToMM+offX, seg.To.Y*cmToMM+offY)
					} else {
						pdf.LineTo(seg.To.X*cmToMM+offX, seg.To.Y*cmToMM+offY)
					}
				}
				pdf.ClosePath()
				pdf.DrawPath("D")
			}
			pdf.ClipEnd()
		}
	}

	return pdf.OutputFileAndClose(path)
}
