// Package simplegain implements a mono LV2 amplifier: every sample of the
// input port is multiplied by the value of the gain control port.
package simplegain

import (
	"unsafe"

	"github.com/giannisalinetti/lv2go/pkg/dsp/gain"
	framework "github.com/giannisalinetti/lv2go/pkg/framework/plugin"
	"github.com/giannisalinetti/lv2go/pkg/framework/port"
	"github.com/giannisalinetti/lv2go/pkg/lv2"
)

// URI identifies the plugin.
const URI = "http://github.com/giannisalinetti/lv2-simple-gain"

// Port indices
const (
	PortInput  uint32 = 0
	PortOutput uint32 = 1
	PortGain   uint32 = 2
)

// Advertised range of the gain control. Run does not clamp.
const (
	defaultGain = 1.0
	minGain     = 0.0
	maxGain     = 2.0
)

var layout = port.NewBuilder().
	AudioInput("in", "In").
	AudioOutput("out", "Out").
	ControlInput("gain", "Gain", defaultGain, minGain, maxGain).
	MustBuild()

// Plugin is the Simple Gain descriptor
type Plugin struct{}

// New returns the Simple Gain descriptor.
func New() *Plugin {
	return &Plugin{}
}

// URI implements lv2.Descriptor
func (p *Plugin) URI() string {
	return URI
}

// Info implements plugin.Plugin
func (p *Plugin) Info() framework.Info {
	return framework.Info{
		URI:     URI,
		Name:    "Simple Gain",
		Version: "0.1.0",
		Vendor:  "Giannis Salinetti",
		License: "http://opensource.org/licenses/isc",
		Class:   framework.ClassAmplifier,
		Binary:  "simplegain",
	}
}

// Ports implements plugin.Plugin
func (p *Plugin) Ports() *port.Layout {
	return layout
}

// Instantiate implements lv2.Descriptor. The sample rate, bundle path and
// features are not needed: the gain is independent of all of them.
func (p *Plugin) Instantiate(sampleRate float64, bundlePath string, features lv2.Features) (lv2.Instance, error) {
	return NewInstance(), nil
}

// Instance holds borrowed references to the three host buffers. It owns no
// buffer memory.
type Instance struct {
	input  unsafe.Pointer
	output unsafe.Pointer
	gain   unsafe.Pointer
}

// NewInstance creates an instance with all ports unbound.
func NewInstance() *Instance {
	return &Instance{}
}

// ConnectPort implements lv2.Instance. Rebinding replaces the previous
// buffer; unknown port indices are ignored.
func (g *Instance) ConnectPort(port uint32, data unsafe.Pointer) {
	switch port {
	case PortInput:
		g.input = data
	case PortOutput:
		g.output = data
	case PortGain:
		g.gain = data
	}
}

// Ready reports whether all three ports are bound.
func (g *Instance) Ready() bool {
	return g.input != nil && g.output != nil && g.gain != nil
}

// Validate returns an ErrUnboundPort error naming the first unbound port.
func (g *Instance) Validate() error {
	for _, p := range layout.Ports() {
		if g.bound(p.Index) == nil {
			return lv2.ErrUnboundPort.New("port %d (%s) is not connected", p.Index, p.Symbol)
		}
	}
	return nil
}

func (g *Instance) bound(port uint32) unsafe.Pointer {
	switch port {
	case PortInput:
		return g.input
	case PortOutput:
		return g.output
	case PortGain:
		return g.gain
	}
	return nil
}

// Run implements lv2.Instance. The gain is read once per call, so changes
// to the control buffer take effect at the next block. If any port is
// unbound the block is skipped and the output buffer is left untouched.
func (g *Instance) Run(sampleCount uint32) {
	if !g.Ready() {
		return
	}

	level := lv2.Control(g.gain)
	in := lv2.Samples(g.input, sampleCount)
	out := lv2.Samples(g.output, sampleCount)

	gain.ApplyBufferTo(in, level, out)
}

// Cleanup implements lv2.Instance. It drops the buffer references; the
// buffers themselves belong to the host.
func (g *Instance) Cleanup() {
	g.input = nil
	g.output = nil
	g.gain = nil
}
