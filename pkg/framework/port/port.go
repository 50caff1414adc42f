// Package port describes the positional port layout of an LV2 plugin.
package port

// Type is the kind of data a port carries
type Type int

const (
	// TypeAudio is an audio-rate port backed by a block of float32 samples
	TypeAudio Type = iota
	// TypeControl is a control-rate port backed by a single float32
	TypeControl
)

// String returns the LV2 class of the port type.
func (t Type) String() string {
	switch t {
	case TypeAudio:
		return "lv2:AudioPort"
	case TypeControl:
		return "lv2:ControlPort"
	default:
		return "lv2:Port"
	}
}

// Direction tells whether the plugin reads or writes the port
type Direction int

const (
	// DirectionInput ports are read by the plugin
	DirectionInput Direction = iota
	// DirectionOutput ports are written by the plugin
	DirectionOutput
)

// String returns the LV2 class of the port direction.
func (d Direction) String() string {
	if d == DirectionOutput {
		return "lv2:OutputPort"
	}
	return "lv2:InputPort"
}

// Port describes one connection point. Index is the value the host passes
// to connect_port.
type Port struct {
	Index     uint32
	Symbol    string
	Name      string
	Type      Type
	Direction Direction

	// Control ports only
	Default  float32
	Min      float32
	Max      float32
	HasRange bool
}

// IsAudio reports whether the port carries audio.
func (p Port) IsAudio() bool {
	return p.Type == TypeAudio
}

// IsControl reports whether the port carries a control value.
func (p Port) IsControl() bool {
	return p.Type == TypeControl
}
