// Package lv2 models the LV2 core plugin ABI in Go.
//
// Nothing in this package uses cgo. Buffers handed over by the host are
// represented as unsafe.Pointer values and only turned into Go slices for
// the duration of a single Run call, see Samples.
package lv2

import (
	"unsafe"
)

// Core URIs
const (
	CoreURI    = "http://lv2plug.in/ns/lv2core"
	CorePrefix = CoreURI + "#"

	HardRTCapable = CorePrefix + "hardRTCapable"
)

// Handle identifies a live plugin instance across the C boundary.
// The zero Handle is the null handle returned when instantiation fails.
type Handle uintptr

// Null is the invalid handle.
const Null Handle = 0

// Valid reports whether h can refer to an instance.
func (h Handle) Valid() bool {
	return h != Null
}

// Feature is a host provided extension passed to Instantiate.
type Feature struct {
	URI  string
	Data unsafe.Pointer
}

// Features is the list of features offered by the host.
type Features []Feature

// Has reports whether the host offers the feature with the given URI.
func (f Features) Has(uri string) bool {
	for i := range f {
		if f[i].URI == uri {
			return true
		}
	}
	return false
}

// Data returns the data pointer of the feature with the given URI, or nil.
func (f Features) Data(uri string) unsafe.Pointer {
	for i := range f {
		if f[i].URI == uri {
			return f[i].Data
		}
	}
	return nil
}
