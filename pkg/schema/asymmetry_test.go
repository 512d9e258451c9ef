package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// validSpec draws an arbitrary valid design specification.
func validSpec(rt *rapid.T) map[string]any {
	seed := rapid.Int64().Draw(rt, "seed")
	return Sample(newRand(seed))
}

func TestResolveAsymmetry_MirroringLaw(t *testing.T) {
	// With asymmetry disabled the left half equals the main side for any
	// valid configuration.
	rapid.Check(t, func(rt *rapid.T) {
		raw := validSpec(rt)
		raw["left"].(map[string]any)["enable_asym"] = false

		spec, err := Validate(raw)
		require.NoError(rt, err)

		sides := ResolveAsymmetry(spec)
		assert.Equal(rt, sides.Right, sides.Left)
		assert.Equal(rt, spec.Shirt, sides.Left.Shirt)
		assert.Equal(rt, spec.Sleeve, sides.Left.Sleeve)
		assert.Equal(rt, spec.Collar, sides.Left.Collar)
	})
}

func TestResolveAsymmetry_OverrideLaw(t *testing.T) {
	// With asymmetry enabled the left subtree wins regardless of the main
	// values.
	rapid.Check(t, func(rt *rapid.T) {
		raw := validSpec(rt)
		raw["left"].(map[string]any)["enable_asym"] = true

		spec, err := Validate(raw)
		require.NoError(rt, err)

		sides := ResolveAsymmetry(spec)
		assert.Equal(rt, spec.Left.Shirt, sides.Left.Shirt)
		assert.Equal(rt, spec.Left.Sleeve, sides.Left.Sleeve)
		assert.Equal(rt, spec.Left.Collar, sides.Left.Collar)
		// The main side is never affected by the override.
		assert.Equal(rt, spec.Shirt, sides.Right.Shirt)
		assert.Equal(rt, spec.Sleeve, sides.Right.Sleeve)
		assert.Equal(rt, spec.Collar, sides.Right.Collar)
	})
}

func TestResolveAsymmetry_Pure(t *testing.T) {
	spec, err := Validate(map[string]any{
		"left": map[string]any{
			"enable_asym": true,
			"shirt":       map[string]any{"width": 1.3},
		},
	})
	require.NoError(t, err)

	before := *spec
	first := ResolveAsymmetry(spec)
	second := ResolveAsymmetry(spec)

	assert.Equal(t, before, *spec, "input must not be mutated")
	assert.Equal(t, first, second, "repeated resolution must agree")
	assert.Equal(t, 1.3, first.Left.Shirt.Width)
	assert.Equal(t, 1.05, first.Right.Shirt.Width)
}
