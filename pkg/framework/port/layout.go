package port

import (
	"fmt"
	"regexp"

	"github.com/giannisalinetti/lv2go/pkg/lv2"
)

// symbolPattern is the lv2:symbol grammar (a C identifier).
var symbolPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Layout is the ordered list of ports of a plugin
type Layout struct {
	ports []Port
}

// Ports returns the ports in index order.
func (l *Layout) Ports() []Port {
	out := make([]Port, len(l.ports))
	copy(out, l.ports)
	return out
}

// Count returns the number of ports.
func (l *Layout) Count() int {
	return len(l.ports)
}

// Get returns the port with the given index.
func (l *Layout) Get(index uint32) (Port, bool) {
	if int(index) >= len(l.ports) {
		return Port{}, false
	}
	return l.ports[index], true
}

// BySymbol returns the port with the given symbol.
func (l *Layout) BySymbol(symbol string) (Port, bool) {
	for _, p := range l.ports {
		if p.Symbol == symbol {
			return p, true
		}
	}
	return Port{}, false
}

// Builder provides a fluent API for building port layouts.
// Indices are assigned in call order starting at 0.
type Builder struct {
	layout *Layout
	errors []error
}

// NewBuilder creates a new layout builder
func NewBuilder() *Builder {
	return &Builder{layout: &Layout{}}
}

func (b *Builder) add(p Port) *Builder {
	p.Index = uint32(len(b.layout.ports))
	b.layout.ports = append(b.layout.ports, p)
	return b
}

// AudioInput adds an audio input port
func (b *Builder) AudioInput(symbol, name string) *Builder {
	return b.add(Port{Symbol: symbol, Name: name, Type: TypeAudio, Direction: DirectionInput})
}

// AudioOutput adds an audio output port
func (b *Builder) AudioOutput(symbol, name string) *Builder {
	return b.add(Port{Symbol: symbol, Name: name, Type: TypeAudio, Direction: DirectionOutput})
}

// ControlInput adds a control input port with its advertised range
func (b *Builder) ControlInput(symbol, name string, def, min, max float32) *Builder {
	if min > max || def < min || def > max {
		b.errors = append(b.errors, fmt.Errorf("port %s: default %g outside range [%g, %g]", symbol, def, min, max))
	}
	return b.add(Port{
		Symbol:    symbol,
		Name:      name,
		Type:      TypeControl,
		Direction: DirectionInput,
		Default:   def,
		Min:       min,
		Max:       max,
		HasRange:  true,
	})
}

// Validate checks if the layout is valid
func (b *Builder) Validate() error {
	if len(b.errors) > 0 {
		return lv2.ErrInvalidInfo.New("port layout errors: %v", b.errors)
	}

	seen := make(map[string]bool, len(b.layout.ports))
	for _, p := range b.layout.ports {
		if !symbolPattern.MatchString(p.Symbol) {
			return lv2.ErrInvalidInfo.New("port %d: invalid symbol %q", p.Index, p.Symbol)
		}
		if seen[p.Symbol] {
			return lv2.ErrInvalidInfo.New("port %d: duplicate symbol %q", p.Index, p.Symbol)
		}
		seen[p.Symbol] = true
		if p.Name == "" {
			return lv2.ErrInvalidInfo.New("port %s has no name", p.Symbol)
		}
	}

	return nil
}

// Build returns the built layout or an error
func (b *Builder) Build() (*Layout, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b.layout, nil
}

// MustBuild returns the built layout or panics on error
func (b *Builder) MustBuild() *Layout {
	layout, err := b.Build()
	if err != nil {
		panic(err)
	}
	return layout
}
