package resolver

import (
	"fmt"

	"github.com/seamly/garmentd/pkg/domain"
)

// ValidateStructure checks the structural invariants of a pattern document:
// the pattern holds at least one panel, panel_order is a permutation of the
// panel keys, and every stitch side resolves to an existing panel and edge.
// The first fault found aborts with a *domain.PatternValidationError.
func ValidateStructure(doc *domain.PatternDocument) error {
	if doc == nil || len(doc.Panels) == 0 {
		return &domain.PatternValidationError{
			Kind:   domain.FaultEmptyPattern,
			Detail: "pattern contains no panels",
		}
	}

	if len(doc.PanelOrder) != len(doc.Panels) {
		return &domain.PatternValidationError{
			Kind: domain.FaultPanelOrderMismatch,
			Detail: fmt.Sprintf("panel_order lists %d panels, pattern has %d",
				len(doc.PanelOrder), len(doc.Panels)),
		}
	}
	seen := make(map[string]bool, len(doc.PanelOrder))
	for _, name := range doc.PanelOrder {
		if seen[name] {
			return &domain.PatternValidationError{
				Kind:   domain.FaultPanelOrderMismatch,
				Detail: fmt.Sprintf("panel %q listed twice in panel_order", name),
			}
		}
		seen[name] = true
		if _, ok := doc.Panels[name]; !ok {
			return &domain.PatternValidationError{
				Kind:   domain.FaultPanelOrderMismatch,
				Detail: fmt.Sprintf("panel_order references unknown panel %q", name),
			}
		}
	}

	for i, stitch := range doc.Stitches {
		for _, side := range stitch {
			panel, ok := doc.Panels[side.Panel]
			if !ok {
				return &domain.PatternValidationError{
					Kind:   domain.FaultDanglingStitchReference,
					Detail: fmt.Sprintf("stitch %d references unknown panel %q", i, side.Panel),
				}
			}
			if side.Edge < 0 || side.Edge >= len(panel.Edges) {
				return &domain.PatternValidationError{
					Kind: domain.FaultDanglingStitchReference,
					Detail: fmt.Sprintf("stitch %d references edge %d of panel %q (has %d edges)",
						i, side.Edge, side.Panel, len(panel.Edges)),
				}
			}
		}
	}

	return nil
}
