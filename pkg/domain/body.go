package domain

// BodyParameters is a measurement set in cm. When a request carries no
// measurements the mean body below is substituted.
type BodyParameters struct {
	Height        float64 `json:"height" yaml:"height" mapstructure:"height"`
	Neck          float64 `json:"neck_w" yaml:"neck_w" mapstructure:"neck_w"`
	Bust          float64 `json:"bust" yaml:"bust" mapstructure:"bust"`
	Waist         float64 `json:"waist" yaml:"waist" mapstructure:"waist"`
	Hips          float64 `json:"hips" yaml:"hips" mapstructure:"hips"`
	ShoulderWidth float64 `json:"shoulder_w" yaml:"shoulder_w" mapstructure:"shoulder_w"`
	ArmLength     float64 `json:"arm_length" yaml:"arm_length" mapstructure:"arm_length"`
	WristCirc     float64 `json:"wrist" yaml:"wrist" mapstructure:"wrist"`
	WaistLine     float64 `json:"waist_line" yaml:"waist_line" mapstructure:"waist_line"`
	HipLine       float64 `json:"hip_line" yaml:"hip_line" mapstructure:"hip_line"`
}

// DefaultBody returns the mean measurement set used when a request omits
// body parameters.
func DefaultBody() *BodyParameters {
	return &BodyParameters{
		Height:        171.99,
		Neck:          44.67,
		Bust:          96.52,
		Waist:         77.17,
		Hips:          102.23,
		ShoulderWidth: 38.04,
		ArmLength:     61.73,
		WristCirc:     16.57,
		WaistLine:     41.52,
		HipLine:       21.66,
	}
}
