package httpapi

import (
	"github.com/seamly/garmentd/pkg/domain"
)

// generateRequest is the shared request body of the generation endpoints.
// Exactly one of DesignParams and PatternSpec drives the pattern; BodyParams
// and the SVG switches are optional.
type generateRequest struct {
	DesignParams  map[string]any          `json:"design_params,omitempty"`
	PatternSpec   *domain.PatternDocument `json:"pattern_specification,omitempty"`
	BodyParams    *domain.BodyParameters  `json:"body_params,omitempty"`
	WithText      *bool                   `json:"with_text,omitempty"`
	ViewIDs       *bool                   `json:"view_ids,omitempty"`
	WithPrintable *bool                   `json:"with_printable,omitempty"`
}

type meshResponse struct {
	SessionID   string `json:"session_id"`
	GLBFilePath string `json:"glb_file_path"`
	OutputDir   string `json:"output_dir"`
}

type vectorResponse struct {
	SessionID        string `json:"session_id"`
	SVGFilePath      string `json:"svg_file_path"`
	PNGFilePath      string `json:"png_file_path,omitempty"`
	PrintablePDFPath string `json:"printable_pdf_path,omitempty"`
	OutputDir        string `json:"output_dir"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
