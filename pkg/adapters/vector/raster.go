package vector

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/llgcode/draw2d/draw2dimg"
)

// writePNG rasterizes the sheet at scale pixels per cm on a white background.
func writePNG(path string, s sheet, scale float64) error {
	img := image.NewRGBA(image.Rect(0, 0, int(s.W*scale)+1, int(s.H*scale)+1))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	gc := draw2dimg.NewGraphicContext(img)
	gc.SetStrokeColor(color.Black)
	gc.SetLineWidth(2)

	for _, o := range s.Outlines {
		gc.BeginPath()
		gc.MoveTo(o.Start.X*scale, o.Start.Y*scale)
		for _, seg := range o.Segs {
			if seg.Ctrl != nil {
				gc.QuadCurveTo(seg.Ctrl.X*scale, seg.Ctrl.Y*scale, seg.To.X*scale, seg.To.Y*scale)
			} else {
				gc.LineTo(seg.To.X*scale, seg.To.Y*scale)
			}
		}
		gc.Close()
		gc.Stroke()
	}

	return draw2dimg.SaveToPngFile(path, img)
}
