package lv2

import "unsafe"

// Descriptor is the capability table a plugin exposes to the host.
// It corresponds to LV2_Descriptor without the optional activate,
// deactivate and extension_data entries, which lv2go reports as absent.
type Descriptor interface {
	// URI returns the globally unique plugin URI.
	URI() string

	// Instantiate creates a new instance. A non-nil error makes the host
	// see the null handle.
	Instantiate(sampleRate float64, bundlePath string, features Features) (Instance, error)
}

// Instance is a single plugin instance driven by the host.
//
// The host guarantees that the methods of one instance are never called
// concurrently; instances share no state.
type Instance interface {
	// ConnectPort binds a port to a host owned buffer. Unknown ports are
	// ignored. The buffer stays owned by the host.
	ConnectPort(port uint32, data unsafe.Pointer)

	// Run processes sampleCount samples. It must not allocate, lock or
	// block.
	Run(sampleCount uint32)

	// Cleanup releases the instance. No method is called afterwards.
	Cleanup()
}

// Validator is implemented by instances that can report whether they are
// ready to run. Hosts call it outside the audio thread.
type Validator interface {
	Validate() error
}
