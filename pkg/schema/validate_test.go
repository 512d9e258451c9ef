package schema

import (
	"errors"
	"testing"

	"github.com/seamly/garmentd/pkg/domain"
)

func TestValidate_Defaults(t *testing.T) {
	spec, err := Validate(map[string]any{})
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}

	if spec.Shirt.Width != 1.05 {
		t.Errorf("shirt.width = %v, want default 1.05", spec.Shirt.Width)
	}
	if spec.Sleeve.ArmholeShape != "ArmholeCurve" {
		t.Errorf("sleeve.armhole_shape = %q, want default ArmholeCurve", spec.Sleeve.ArmholeShape)
	}
	if !spec.Meta.Upper.Set || spec.Meta.Upper.Value != "FittedShirt" {
		t.Errorf("meta.upper = %v, want FittedShirt", spec.Meta.Upper)
	}
	if spec.Meta.Bottom.Set {
		t.Errorf("meta.bottom = %v, want absent", spec.Meta.Bottom)
	}
	if spec.Left.EnableAsym {
		t.Error("left.enable_asym should default to false")
	}
}

func TestValidate_ShirtWidthDomain(t *testing.T) {
	// 1.05 is inside [1.0, 1.3], 1.5 is not.
	spec, err := Validate(map[string]any{
		"shirt": map[string]any{"width": 1.05},
	})
	if err != nil {
		t.Fatalf("Validate(width=1.05) error = %v, want nil", err)
	}
	if spec.Shirt.Width != 1.05 {
		t.Errorf("shirt.width = %v, want 1.05", spec.Shirt.Width)
	}

	_, err = Validate(map[string]any{
		"shirt": map[string]any{"width": 1.5},
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate(width=1.5) error = %v, want *ValidationError", err)
	}
	if verr.Path != "shirt.width" {
		t.Errorf("error path = %q, want shirt.width", verr.Path)
	}
}

func TestValidate_BoundariesInclusive(t *testing.T) {
	for _, v := range []float64{1.0, 1.3} {
		if _, err := Validate(map[string]any{"shirt": map[string]any{"width": v}}); err != nil {
			t.Errorf("Validate(width=%v) error = %v, want nil (boundary is inclusive)", v, err)
		}
	}
	for _, v := range []int{10, 50} {
		raw := map[string]any{"sleeve": map[string]any{"sleeve_angle": v}}
		if _, err := Validate(raw); err != nil {
			t.Errorf("Validate(sleeve_angle=%d) error = %v, want nil", v, err)
		}
	}
	if _, err := Validate(map[string]any{"sleeve": map[string]any{"sleeve_angle": 51}}); err == nil {
		t.Error("Validate(sleeve_angle=51) should fail")
	}
}

func TestValidate_TypeMismatch(t *testing.T) {
	_, err := Validate(map[string]any{
		"shirt": map[string]any{"strapless": "yes"},
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if verr.Path != "shirt.strapless" {
		t.Errorf("error path = %q, want shirt.strapless", verr.Path)
	}
}

func TestValidate_SelectOptions(t *testing.T) {
	_, err := Validate(map[string]any{
		"collar": map[string]any{"f_collar": "RoundedSquare"},
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if verr.Path != "collar.f_collar" {
		t.Errorf("error path = %q, want collar.f_collar", verr.Path)
	}
}

func TestValidate_SelectNullAcceptsNull(t *testing.T) {
	spec, err := Validate(map[string]any{
		"meta": map[string]any{"upper": nil},
		"sleeve": map[string]any{
			"cuff": map[string]any{"type": nil},
		},
	})
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	if spec.Meta.Upper.Set {
		t.Errorf("meta.upper = %v, want absent", spec.Meta.Upper)
	}
	if spec.Sleeve.Cuff.Type.Set {
		t.Errorf("sleeve.cuff.type = %v, want absent", spec.Sleeve.Cuff.Type)
	}
}

func TestValidate_SelectNullRejectsUnknownOption(t *testing.T) {
	_, err := Validate(map[string]any{
		"meta": map[string]any{"wb": "ElasticWB"},
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if verr.Path != "meta.wb" {
		t.Errorf("error path = %q, want meta.wb", verr.Path)
	}
}

func TestValidate_WrappedLeafValues(t *testing.T) {
	// Serialized design files carry {"v": ..., "type": ..., "range": ...}.
	spec, err := Validate(map[string]any{
		"shirt": map[string]any{
			"width": map[string]any{"v": 1.2, "type": "float", "range": []any{1.0, 1.3}},
		},
	})
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	if spec.Shirt.Width != 1.2 {
		t.Errorf("shirt.width = %v, want 1.2", spec.Shirt.Width)
	}
}

func TestValidate_SubtreeTypeMismatch(t *testing.T) {
	_, err := Validate(map[string]any{"collar": "none"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if verr.Path != "collar" {
		t.Errorf("error path = %q, want collar", verr.Path)
	}
}

func TestValidate_WholeFloatAcceptedForInt(t *testing.T) {
	// JSON decodes 25 as float64(25).
	spec, err := Validate(map[string]any{
		"sleeve": map[string]any{"sleeve_angle": float64(25)},
	})
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	if spec.Sleeve.SleeveAngle != 25 {
		t.Errorf("sleeve.sleeve_angle = %d, want 25", spec.Sleeve.SleeveAngle)
	}

	if _, err := Validate(map[string]any{
		"sleeve": map[string]any{"sleeve_angle": 25.5},
	}); err == nil {
		t.Error("Validate(sleeve_angle=25.5) should fail")
	}
}

func TestValidate_OptionalChoicePassthrough(t *testing.T) {
	spec, err := Validate(map[string]any{
		"meta": map[string]any{"bottom": domain.Choice("PencilSkirt")},
	})
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	if !spec.Meta.Bottom.Set || spec.Meta.Bottom.Value != "PencilSkirt" {
		t.Errorf("meta.bottom = %v, want PencilSkirt", spec.Meta.Bottom)
	}
}
