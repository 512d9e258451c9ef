package schema

import (
	"fmt"
	"math/rand"
)

// Definition is an ordered subtree of the parameter schema: leaves in
// declaration order plus named child subtrees.
type Definition struct {
	order  []string
	leaves map[string]Param
	subs   map[string]*Definition
}

// NewDefinition returns an empty subtree definition.
func NewDefinition() *Definition {
	return &Definition{
		leaves: make(map[string]Param),
		subs:   make(map[string]*Definition),
	}
}

// Leaf declares a parameter leaf. Declaration order determines validation
// and sampling order.
func (d *Definition) Leaf(name string, p Param) *Definition {
	d.order = append(d.order, name)
	d.leaves[name] = p
	return d
}

// Sub declares a nested subtree.
func (d *Definition) Sub(name string, sub *Definition) *Definition {
	d.order = append(d.order, name)
	d.subs[name] = sub
	return d
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// normalize walks the raw tree in declaration order, substituting defaults
// for absent leaves and stopping at the first violation.
func (d *Definition) normalize(prefix string, raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(d.order))
	for _, name := range d.order {
		path := joinPath(prefix, name)

		if sub, ok := d.subs[name]; ok {
			var child map[string]any
			if rv, present := raw[name]; present && rv != nil {
				m, ok := rv.(map[string]any)
				if !ok {
					return nil, &ValidationError{Path: path, Reason: fmt.Sprintf("expected object, got %T", rv), Value: rv}
				}
				child = m
			}
			norm, err := sub.normalize(path, child)
			if err != nil {
				return nil, err
			}
			out[name] = norm
			continue
		}

		leaf := d.leaves[name]
		rv, present := raw[name]
		if !present {
			out[name] = leaf.DefaultValue()
			continue
		}
		// Serialized design files wrap leaves as {"v": ..., "type": ...,
		// "range": ...}; unwrap so both bare values and full files validate.
		if m, ok := rv.(map[string]any); ok {
			if wrapped, has := m["v"]; has {
				rv = wrapped
			}
		}
		v, err := leaf.Check(rv)
		if err != nil {
			return nil, &ValidationError{Path: path, Reason: err.Error(), Value: rv}
		}
		out[name] = v
	}
	return out, nil
}

// sample draws a raw value tree from the declared domains.
func (d *Definition) sample(r *rand.Rand) map[string]any {
	out := make(map[string]any, len(d.order))
	for _, name := range d.order {
		if sub, ok := d.subs[name]; ok {
			out[name] = sub.sample(r)
			continue
		}
		out[name] = d.leaves[name].Sample(r)
	}
	return out
}
