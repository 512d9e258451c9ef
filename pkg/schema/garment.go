package schema

import "github.com/seamly/garmentd/pkg/domain"

// Option sets for select leaves. Names follow the garment program components
// they select.
var (
	upperOptions   = []string{"FittedShirt", "Shirt"}
	bottomOptions  = []string{"SkirtCircle", "PencilSkirt", "SkirtLevels", "Pants"}
	wbOptions      = []string{"StraightWB", "FittedWB"}
	armholeOptions = []string{"ArmholeSquare", "ArmholeAngle", "ArmholeCurve"}
	cuffOptions    = []string{"CuffBand", "CuffSkirt", "CuffBandSkirt"}
	necklineOptions = []string{
		"CircleNeckHalf", "CurvyNeckHalf", "VNeckHalf", "SquareNeckHalf", "TrapezoidNeckHalf",
	}
	collarCompOptions = []string{"Turtle", "SimpleLapel", "Hood2Panels"}
)

func shirtDef() *Definition {
	return NewDefinition().
		Leaf("length", FloatParam{Min: 0.5, Max: 3.5, Def: 1.2, Weight: 0.7}).
		Leaf("width", FloatParam{Min: 1.0, Max: 1.3, Def: 1.05, Weight: 0.6}).
		Leaf("flare", FloatParam{Min: 0.7, Max: 1.6, Def: 1.0, Weight: 0.6}).
		Leaf("strapless", BoolParam{Def: false, Weight: 0.8})
}

func sleeveDef() *Definition {
	cuff := NewDefinition().
		Leaf("type", SelectNullParam{Options: cuffOptions, Def: domain.NoChoice(), Weight: 0.5}).
		Leaf("cuff_len", FloatParam{Min: 0.05, Max: 0.9, Def: 0.1, Weight: 0.7}).
		Leaf("top_ruffle", FloatParam{Min: 1.0, Max: 3.0, Def: 1.0, Weight: 0.7})
	return NewDefinition().
		Leaf("sleeveless", BoolParam{Def: false, Weight: 0.7}).
		Leaf("armhole_shape", SelectParam{Options: armholeOptions, Def: "ArmholeCurve", Weight: 0.6}).
		Leaf("length", FloatParam{Min: 0.1, Max: 1.15, Def: 0.95, Weight: 0.5}).
		Leaf("connecting_width", FloatParam{Min: 0.2, Max: 2.0, Def: 0.2, Weight: 0.6}).
		Leaf("end_width", FloatParam{Min: 0.2, Max: 4.0, Def: 1.0, Weight: 0.5}).
		Leaf("sleeve_angle", IntParam{Min: 10, Max: 50, Def: 20, Weight: 0.6}).
		Sub("cuff", cuff)
}

func collarDef() *Definition {
	component := NewDefinition().
		Leaf("style", SelectNullParam{Options: collarCompOptions, Def: domain.NoChoice(), Weight: 0.6}).
		Leaf("depth", IntParam{Min: 2, Max: 8, Def: 4, Weight: 0.7})
	return NewDefinition().
		Leaf("f_collar", SelectParam{Options: necklineOptions, Def: "CircleNeckHalf", Weight: 0.5}).
		Leaf("b_collar", SelectParam{Options: necklineOptions, Def: "CircleNeckHalf", Weight: 0.5}).
		Leaf("width", FloatParam{Min: 0.2, Max: 1.0, Def: 0.2, Weight: 0.6}).
		Leaf("fc_depth", FloatParam{Min: 0.3, Max: 2.0, Def: 0.4, Weight: 0.6}).
		Leaf("bc_depth", FloatParam{Min: 0.0, Max: 2.0, Def: 0.0, Weight: 0.6}).
		Sub("component", component)
}

// Garment returns the full declared design parameter schema: the meta block,
// the main shirt/sleeve/collar trees, and the left subtree holding the
// asymmetric overrides.
func Garment() *Definition {
	meta := NewDefinition().
		Leaf("upper", SelectNullParam{Options: upperOptions, Def: domain.Choice("FittedShirt"), Weight: 0.6}).
		Leaf("bottom", SelectNullParam{Options: bottomOptions, Def: domain.NoChoice(), Weight: 0.4}).
		Leaf("wb", SelectNullParam{Options: wbOptions, Def: domain.NoChoice(), Weight: 0.5})

	left := NewDefinition().
		Leaf("enable_asym", BoolParam{Def: false, Weight: 0.8}).
		Sub("shirt", shirtDef()).
		Sub("sleeve", sleeveDef()).
		Sub("collar", collarDef())

	return NewDefinition().
		Sub("meta", meta).
		Sub("shirt", shirtDef()).
		Sub("sleeve", sleeveDef()).
		Sub("collar", collarDef()).
		Sub("left", left)
}
