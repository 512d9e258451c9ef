// Package vector renders a pattern document as flat 2D cutting diagrams: an
// SVG master, a PNG raster preview, and optionally a paginated A4 document
// for home printing. All three share one panel layout so they show the same
// drawing.
package vector
