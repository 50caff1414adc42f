// Package plugin is the Go side of the LV2 entry point: it keeps the list
// of plugins a binary offers and the table of live instances, and forwards
// host callbacks to them.
package plugin

import (
	"unsafe"

	"github.com/giannisalinetti/lv2go/pkg/framework/debug"
	framework "github.com/giannisalinetti/lv2go/pkg/framework/plugin"
	"github.com/giannisalinetti/lv2go/pkg/framework/port"
	"github.com/giannisalinetti/lv2go/pkg/lv2"
)

// Plugin is the interface plugin implementations register
type Plugin interface {
	lv2.Descriptor

	// Info returns plugin metadata
	Info() framework.Info

	// Ports returns the port layout; indices match ConnectPort
	Ports() *port.Layout
}

// Config controls framework behaviour. It must be set before the host
// loads any instance.
type Config struct {
	// LogLevel is the minimum level of framework log messages
	LogLevel debug.LogLevel

	// RecoverPanics stops panics in callbacks from unwinding into the host.
	// Disable only when debugging a plugin under a Go test host.
	RecoverPanics bool
}

// DefaultConfig is the configuration used when SetConfig is never called.
var DefaultConfig = Config{
	LogLevel:      debug.LogLevelInfo,
	RecoverPanics: true,
}

var defaultBridge = NewBridge(DefaultConfig, debug.Default())

// Default returns the process wide bridge used by the C entry point.
func Default() *Bridge {
	return defaultBridge
}

// Register adds p to the plugins offered by this binary.
func Register(p Plugin) error {
	return defaultBridge.Register(p)
}

// MustRegister is Register for use in init functions.
func MustRegister(p Plugin) {
	if err := defaultBridge.Register(p); err != nil {
		panic(err)
	}
}

// SetConfig sets the global framework configuration
func SetConfig(cfg Config) {
	defaultBridge.SetConfig(cfg)
}

// Count returns the number of registered plugins.
func Count() uint32 {
	return defaultBridge.Count()
}

// Get returns the plugin at index.
func Get(index uint32) (Plugin, bool) {
	return defaultBridge.Get(index)
}

// Lookup returns the plugin with the given URI.
func Lookup(uri string) (Plugin, error) {
	return defaultBridge.Lookup(uri)
}

// Instantiate creates an instance of the plugin at index.
func Instantiate(index uint32, sampleRate float64, bundlePath string, features lv2.Features) lv2.Handle {
	return defaultBridge.Instantiate(index, sampleRate, bundlePath, features)
}

// ConnectPort forwards to the instance behind h.
func ConnectPort(h lv2.Handle, port uint32, data unsafe.Pointer) {
	defaultBridge.ConnectPort(h, port, data)
}

// Run forwards to the instance behind h.
func Run(h lv2.Handle, sampleCount uint32) {
	defaultBridge.Run(h, sampleCount)
}

// Cleanup destroys the instance behind h.
func Cleanup(h lv2.Handle) {
	defaultBridge.Cleanup(h)
}

// Live returns the number of instances not yet cleaned up.
func Live() int {
	return defaultBridge.Live()
}
