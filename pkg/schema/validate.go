package schema

import (
	"fmt"
	"math/rand"

	"github.com/mitchellh/mapstructure"
	"github.com/seamly/garmentd/pkg/domain"
)

// Validate checks a raw design parameter tree against the garment schema and
// returns the normalized specification. Absent leaves take their declared
// defaults; the first offending leaf aborts validation with a
// *ValidationError carrying its dotted path.
func Validate(raw map[string]any) (*domain.DesignSpecification, error) {
	normalized, err := Garment().normalize("", raw)
	if err != nil {
		return nil, err
	}

	var spec domain.DesignSpecification
	if err := mapstructure.Decode(normalized, &spec); err != nil {
		// The normalized tree mirrors the struct exactly, so this only
		// trips on a schema/struct drift bug.
		return nil, fmt.Errorf("decode normalized specification: %w", err)
	}
	return &spec, nil
}

// ResolveAsymmetry computes the effective per-side configuration. When
// asymmetry is disabled the main shirt/sleeve/collar values apply to both
// halves; when enabled the left subtree fully overrides the left half,
// independent of the main values. Pure function: the input is not mutated
// and invocations share no state.
func ResolveAsymmetry(spec *domain.DesignSpecification) domain.EffectiveSides {
	main := domain.SideDesign{
		Shirt:  spec.Shirt,
		Sleeve: spec.Sleeve,
		Collar: spec.Collar,
	}
	if !spec.Left.EnableAsym {
		return domain.EffectiveSides{Right: main, Left: main}
	}
	return domain.EffectiveSides{
		Right: main,
		Left: domain.SideDesign{
			Shirt:  spec.Left.Shirt,
			Sleeve: spec.Left.Sleeve,
			Collar: spec.Left.Collar,
		},
	}
}

// Sample draws a complete raw design tree from the declared domains: each
// leaf yields its default with probability equal to its sampling weight,
// otherwise a uniform draw (null counts as one extra outcome for select_null
// leaves). Outcomes are reproducible for a fixed rand source. The result
// always passes Validate.
func Sample(r *rand.Rand) map[string]any {
	return Garment().sample(r)
}
