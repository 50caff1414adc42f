package plugin

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/giannisalinetti/lv2go/pkg/framework/debug"
	"github.com/giannisalinetti/lv2go/pkg/lv2"
)

// Bridge dispatches host callbacks to registered plugins and their
// instances. The package level functions use a process wide Bridge; tests
// and offline hosts may create their own.
type Bridge struct {
	mu        sync.RWMutex
	plugins   []Plugin
	config    Config
	log       *debug.Logger
	instances *Instances

	// read on every callback, so kept outside mu
	recoverPanics atomic.Bool
}

// NewBridge creates an empty bridge.
func NewBridge(cfg Config, log *debug.Logger) *Bridge {
	b := &Bridge{
		log:       log,
		instances: NewInstances(),
	}
	b.SetConfig(cfg)
	return b
}

// SetConfig replaces the bridge configuration. It is safe to call while
// the host is running instances.
func (b *Bridge) SetConfig(cfg Config) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.config = cfg
	b.recoverPanics.Store(cfg.RecoverPanics)
	b.log.SetLevel(cfg.LogLevel)
}

// Register adds p after validating its metadata and port layout.
func (b *Bridge) Register(p Plugin) error {
	info := p.Info()
	if err := info.Validate(); err != nil {
		return err
	}
	if p.URI() != info.URI {
		return lv2.ErrInvalidInfo.New("descriptor URI %q does not match info URI %q", p.URI(), info.URI)
	}
	if p.Ports() == nil || p.Ports().Count() == 0 {
		return lv2.ErrInvalidInfo.New("plugin %s declares no ports", info.URI)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, existing := range b.plugins {
		if existing.URI() == p.URI() {
			return lv2.ErrInvalidInfo.New("plugin %s registered twice", p.URI())
		}
	}
	b.plugins = append(b.plugins, p)
	b.log.Debug("registered plugin %d: %s", len(b.plugins)-1, p.URI())
	return nil
}

// Count returns the number of registered plugins.
func (b *Bridge) Count() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return uint32(len(b.plugins))
}

// Get returns the plugin at index, or false for any index past the last
// registered plugin.
func (b *Bridge) Get(index uint32) (Plugin, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if int(index) >= len(b.plugins) {
		return nil, false
	}
	return b.plugins[index], true
}

// Lookup returns the plugin with the given URI.
func (b *Bridge) Lookup(uri string) (Plugin, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, p := range b.plugins {
		if p.URI() == uri {
			return p, nil
		}
	}
	return nil, lv2.ErrUnknownPlugin.New("no plugin with URI %s", uri)
}

// Instantiate creates an instance of the plugin at index and returns its
// handle, or lv2.Null if the plugin is unknown or fails to instantiate.
func (b *Bridge) Instantiate(index uint32, sampleRate float64, bundlePath string, features lv2.Features) (h lv2.Handle) {
	defer b.recoverPanic("instantiate", lv2.Null)

	p, ok := b.Get(index)
	if !ok {
		b.log.Warn("instantiate: no plugin at index %d", index)
		return lv2.Null
	}

	inst, err := p.Instantiate(sampleRate, bundlePath, features)
	if err != nil {
		b.log.Error("instantiate %s: %v", p.URI(), lv2.ErrInstantiate.Wrap(err, "descriptor failed"))
		return lv2.Null
	}
	if inst == nil {
		b.log.Error("instantiate %s: descriptor returned no instance", p.URI())
		return lv2.Null
	}

	h = b.instances.Add(inst)
	b.log.Debug("instantiated %s as %d (rate %.0f, bundle %q, %d features)",
		p.URI(), h, sampleRate, bundlePath, len(features))
	return h
}

// ConnectPort binds a host buffer to a port of the instance behind h.
// Unknown handles are ignored.
func (b *Bridge) ConnectPort(h lv2.Handle, port uint32, data unsafe.Pointer) {
	defer b.recoverPanic("connect_port", h)

	if inst := b.instances.Get(h); inst != nil {
		inst.ConnectPort(port, data)
	}
}

// Run processes one block on the instance behind h. Unknown handles are
// ignored. It neither allocates nor locks.
func (b *Bridge) Run(h lv2.Handle, sampleCount uint32) {
	defer b.recoverPanic("run", h)

	if inst := b.instances.Get(h); inst != nil {
		inst.Run(sampleCount)
	}
}

// Cleanup destroys the instance behind h and forgets the handle. The null
// handle and unknown handles are no-ops.
func (b *Bridge) Cleanup(h lv2.Handle) {
	defer b.recoverPanic("cleanup", h)

	inst := b.instances.Remove(h)
	if inst == nil {
		return
	}
	inst.Cleanup()
	b.log.Debug("cleaned up instance %d", h)
}

// Validate asks the instance behind h whether all required ports are
// connected. Instances that cannot tell are assumed ready.
func (b *Bridge) Validate(h lv2.Handle) error {
	inst := b.instances.Get(h)
	if inst == nil {
		return lv2.ErrUnknownPlugin.New("no instance with handle %d", h)
	}
	if v, ok := inst.(lv2.Validator); ok {
		return v.Validate()
	}
	return nil
}

// Live returns the number of instances not yet cleaned up.
func (b *Bridge) Live() int {
	return b.instances.Len()
}

// recoverPanic keeps panics from crossing into C. It must be deferred
// directly.
func (b *Bridge) recoverPanic(op string, h lv2.Handle) {
	if !b.recoverPanics.Load() {
		return
	}
	if r := recover(); r != nil {
		b.log.Error("%s: recovered panic (instance %d): %v", op, h, r)
	}
}
