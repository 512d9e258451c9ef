package domain

import (
	"encoding/json"
	"fmt"
)

// OptionalChoice is an explicitly tagged optional select value. A garment
// component that may be omitted (waistband, cuff, lapel, ...) is represented
// as {Set: false} rather than a nullable string, so every branch on
// "component omitted" is spelled out.
type OptionalChoice struct {
	Set   bool
	Value string
}

// Choice returns a present choice.
func Choice(v string) OptionalChoice { return OptionalChoice{Set: true, Value: v} }

// NoChoice returns an absent choice.
func NoChoice() OptionalChoice { return OptionalChoice{} }

func (c OptionalChoice) String() string {
	if !c.Set {
		return "<none>"
	}
	return c.Value
}

// MarshalJSON encodes a present choice as its string and an absent one as null.
func (c OptionalChoice) MarshalJSON() ([]byte, error) {
	if !c.Set {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

// UnmarshalJSON accepts a string or null.
func (c *OptionalChoice) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = NoChoice()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("optional choice: %w", err)
	}
	*c = Choice(s)
	return nil
}

// MarshalYAML mirrors the JSON encoding for parameter dumps.
func (c OptionalChoice) MarshalYAML() (any, error) {
	if !c.Set {
		return nil, nil
	}
	return c.Value, nil
}

// UnmarshalYAML accepts a string or null.
func (c *OptionalChoice) UnmarshalYAML(unmarshal func(any) error) error {
	var v *string
	if err := unmarshal(&v); err != nil {
		return fmt.Errorf("optional choice: %w", err)
	}
	if v == nil {
		*c = NoChoice()
	} else {
		*c = Choice(*v)
	}
	return nil
}

// MetaDesign selects which top-level garment components are present.
type MetaDesign struct {
	Upper     OptionalChoice `json:"upper" yaml:"upper" mapstructure:"upper"`
	Bottom    OptionalChoice `json:"bottom" yaml:"bottom" mapstructure:"bottom"`
	Waistband OptionalChoice `json:"wb" yaml:"wb" mapstructure:"wb"`
}

// ShirtDesign describes the upper-body block.
type ShirtDesign struct {
	Length    float64 `json:"length" yaml:"length" mapstructure:"length"`
	Width     float64 `json:"width" yaml:"width" mapstructure:"width"`
	Flare     float64 `json:"flare" yaml:"flare" mapstructure:"flare"`
	Strapless bool    `json:"strapless" yaml:"strapless" mapstructure:"strapless"`
}

// CuffDesign describes an optional sleeve cuff.
type CuffDesign struct {
	Type      OptionalChoice `json:"type" yaml:"type" mapstructure:"type"`
	CuffLen   float64        `json:"cuff_len" yaml:"cuff_len" mapstructure:"cuff_len"`
	TopRuffle float64        `json:"top_ruffle" yaml:"top_ruffle" mapstructure:"top_ruffle"`
}

// SleeveDesign describes one sleeve, including its nested cuff.
type SleeveDesign struct {
	Sleeveless      bool       `json:"sleeveless" yaml:"sleeveless" mapstructure:"sleeveless"`
	ArmholeShape    string     `json:"armhole_shape" yaml:"armhole_shape" mapstructure:"armhole_shape"`
	Length          float64    `json:"length" yaml:"length" mapstructure:"length"`
	ConnectingWidth float64    `json:"connecting_width" yaml:"connecting_width" mapstructure:"connecting_width"`
	EndWidth        float64    `json:"end_width" yaml:"end_width" mapstructure:"end_width"`
	SleeveAngle     int        `json:"sleeve_angle" yaml:"sleeve_angle" mapstructure:"sleeve_angle"`
	Cuff            CuffDesign `json:"cuff" yaml:"cuff" mapstructure:"cuff"`
}

// CollarComponentDesign describes an optional collar attachment (turtle neck,
// lapel, hood, ...).
type CollarComponentDesign struct {
	Style OptionalChoice `json:"style" yaml:"style" mapstructure:"style"`
	Depth int            `json:"depth" yaml:"depth" mapstructure:"depth"`
}

// CollarDesign describes the neckline and its optional component.
type CollarDesign struct {
	FCollar   string                `json:"f_collar" yaml:"f_collar" mapstructure:"f_collar"`
	BCollar   string                `json:"b_collar" yaml:"b_collar" mapstructure:"b_collar"`
	Width     float64               `json:"width" yaml:"width" mapstructure:"width"`
	FCDepth   float64               `json:"fc_depth" yaml:"fc_depth" mapstructure:"fc_depth"`
	BCDepth   float64               `json:"bc_depth" yaml:"bc_depth" mapstructure:"bc_depth"`
	Component CollarComponentDesign `json:"component" yaml:"component" mapstructure:"component"`
}

// LeftDesign holds per-side overrides. The shirt/sleeve/collar subtrees are
// consulted only when EnableAsym is true.
type LeftDesign struct {
	EnableAsym bool         `json:"enable_asym" yaml:"enable_asym" mapstructure:"enable_asym"`
	Shirt      ShirtDesign  `json:"shirt" yaml:"shirt" mapstructure:"shirt"`
	Sleeve     SleeveDesign `json:"sleeve" yaml:"sleeve" mapstructure:"sleeve"`
	Collar     CollarDesign `json:"collar" yaml:"collar" mapstructure:"collar"`
}

// DesignSpecification is a validated, normalized garment design parameter
// tree. Instances are produced by schema.Validate and are never mutated
// afterwards.
type DesignSpecification struct {
	Meta   MetaDesign   `json:"meta" yaml:"meta" mapstructure:"meta"`
	Shirt  ShirtDesign  `json:"shirt" yaml:"shirt" mapstructure:"shirt"`
	Sleeve SleeveDesign `json:"sleeve" yaml:"sleeve" mapstructure:"sleeve"`
	Collar CollarDesign `json:"collar" yaml:"collar" mapstructure:"collar"`
	Left   LeftDesign   `json:"left" yaml:"left" mapstructure:"left"`
}

// SideDesign is the effective shirt/sleeve/collar configuration for one
// body half.
type SideDesign struct {
	Shirt  ShirtDesign  `json:"shirt" yaml:"shirt"`
	Sleeve SleeveDesign `json:"sleeve" yaml:"sleeve"`
	Collar CollarDesign `json:"collar" yaml:"collar"`
}

// EffectiveSides is the result of asymmetry resolution: one concrete
// configuration per body half. Right always carries the main-side values.
type EffectiveSides struct {
	Right SideDesign `json:"right" yaml:"right"`
	Left  SideDesign `json:"left" yaml:"left"`
}
