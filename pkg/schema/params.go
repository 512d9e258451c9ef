package schema

import (
	"fmt"
	"math/rand"

	"github.com/seamly/garmentd/pkg/domain"
)

// Kind names the value type of a parameter leaf.
type Kind string

const (
	KindFloat      Kind = "float"
	KindInt        Kind = "int"
	KindBool       Kind = "bool"
	KindSelect     Kind = "select"
	KindSelectNull Kind = "select_null"
)

// Param is one leaf of the parameter schema: a declared value type, a valid
// domain, a default, and a sampling weight.
type Param interface {
	// Kind returns the leaf's value type.
	Kind() Kind
	// Check normalizes a raw value into the leaf's Go representation, or
	// reports why it falls outside the declared domain.
	Check(raw any) (any, error)
	// DefaultValue returns the leaf's default.
	DefaultValue() any
	// Sample draws a value from the domain using r: the default with
	// probability Weight, otherwise uniformly.
	Sample(r *rand.Rand) any
}

// asFloat widens numeric raw values. JSON decodes every number as float64,
// YAML may produce int.
func asFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// FloatParam validates floating-point leaves with an inclusive [Min,Max]
// domain.
type FloatParam struct {
	Min, Max float64
	Def      float64
	Weight   float64
}

func (p FloatParam) Kind() Kind        { return KindFloat }
func (p FloatParam) DefaultValue() any { return p.Def }

func (p FloatParam) Check(raw any) (any, error) {
	v, ok := asFloat(raw)
	if !ok {
		return nil, fmt.Errorf("expected float, got %T", raw)
	}
	if v < p.Min || v > p.Max {
		return nil, fmt.Errorf("value %v outside domain [%v, %v]", v, p.Min, p.Max)
	}
	return v, nil
}

func (p FloatParam) Sample(r *rand.Rand) any {
	if r.Float64() < p.Weight {
		return p.Def
	}
	return p.Min + r.Float64()*(p.Max-p.Min)
}

// IntParam validates integer leaves with an inclusive [Min,Max] domain.
// Whole floats are accepted since JSON numbers arrive as float64.
type IntParam struct {
	Min, Max int
	Def      int
	Weight   float64
}

func (p IntParam) Kind() Kind        { return KindInt }
func (p IntParam) DefaultValue() any { return p.Def }

func (p IntParam) Check(raw any) (any, error) {
	var v int
	switch n := raw.(type) {
	case int:
		v = n
	case int64:
		v = int(n)
	case float64:
		if n != float64(int64(n)) {
			return nil, fmt.Errorf("expected int, got float %v", n)
		}
		v = int(n)
	default:
		return nil, fmt.Errorf("expected int, got %T", raw)
	}
	if v < p.Min || v > p.Max {
		return nil, fmt.Errorf("value %d outside domain [%d, %d]", v, p.Min, p.Max)
	}
	return v, nil
}

func (p IntParam) Sample(r *rand.Rand) any {
	if r.Float64() < p.Weight {
		return p.Def
	}
	return p.Min + r.Intn(p.Max-p.Min+1)
}

// BoolParam validates boolean leaves.
type BoolParam struct {
	Def    bool
	Weight float64
}

func (p BoolParam) Kind() Kind        { return KindBool }
func (p BoolParam) DefaultValue() any { return p.Def }

func (p BoolParam) Check(raw any) (any, error) {
	v, ok := raw.(bool)
	if !ok {
		return nil, fmt.Errorf("expected bool, got %T", raw)
	}
	return v, nil
}

func (p BoolParam) Sample(r *rand.Rand) any {
	if r.Float64() < p.Weight {
		return p.Def
	}
	return r.Intn(2) == 1
}

// SelectParam validates string leaves against a closed option set.
type SelectParam struct {
	Options []string
	Def     string
	Weight  float64
}

func (p SelectParam) Kind() Kind        { return KindSelect }
func (p SelectParam) DefaultValue() any { return p.Def }

func (p SelectParam) Check(raw any) (any, error) {
	v, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("expected string, got %T", raw)
	}
	for _, opt := range p.Options {
		if v == opt {
			return v, nil
		}
	}
	return nil, fmt.Errorf("value %q not in options %v", v, p.Options)
}

func (p SelectParam) Sample(r *rand.Rand) any {
	if r.Float64() < p.Weight {
		return p.Def
	}
	return p.Options[r.Intn(len(p.Options))]
}

// SelectNullParam validates optional string leaves. Absence is always
// accepted, regardless of the declared options; present values must be in
// the option set. Normalized values are domain.OptionalChoice so downstream
// branches on "component omitted" are explicit.
type SelectNullParam struct {
	Options []string
	Def     domain.OptionalChoice
	Weight  float64
}

func (p SelectNullParam) Kind() Kind        { return KindSelectNull }
func (p SelectNullParam) DefaultValue() any { return p.Def }

func (p SelectNullParam) Check(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return domain.NoChoice(), nil
	case domain.OptionalChoice:
		if !v.Set {
			return v, nil
		}
		raw = v.Value
	}
	v, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("expected string or null, got %T", raw)
	}
	for _, opt := range p.Options {
		if v == opt {
			return domain.Choice(v), nil
		}
	}
	return nil, fmt.Errorf("value %q not in options %v", v, p.Options)
}

// Sample treats null as one extra outcome next to the declared options.
func (p SelectNullParam) Sample(r *rand.Rand) any {
	if r.Float64() < p.Weight {
		return p.Def
	}
	i := r.Intn(len(p.Options) + 1)
	if i == len(p.Options) {
		return domain.NoChoice()
	}
	return domain.Choice(p.Options[i])
}
