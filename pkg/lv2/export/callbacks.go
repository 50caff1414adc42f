package export

// #cgo CFLAGS: -I${SRCDIR}/../../../include -I${SRCDIR}/../../../bridge
// #include <stdlib.h>
// #include "lv2_bridge.h"
import "C"
import (
	"sync"
	"unsafe"

	"github.com/giannisalinetti/lv2go/pkg/lv2"
	"github.com/giannisalinetti/lv2go/pkg/plugin"
)

var (
	// C copies of descriptor URIs. lv2_descriptor hands them to the host,
	// which may keep them for the lifetime of the library, so they are
	// never freed.
	uris   = map[uint32]*C.char{}
	urisMu sync.Mutex
)

//export GoDescriptorCount
func GoDescriptorCount() C.uint32_t {
	return C.uint32_t(plugin.Count())
}

//export GoDescriptorURI
func GoDescriptorURI(index C.uint32_t) *C.char {
	urisMu.Lock()
	defer urisMu.Unlock()

	if s, ok := uris[uint32(index)]; ok {
		return s
	}

	p, ok := plugin.Get(uint32(index))
	if !ok {
		return nil
	}
	s := C.CString(p.URI())
	uris[uint32(index)] = s
	return s
}

//export GoInstantiate
func GoInstantiate(index C.uint32_t, sampleRate C.double, bundlePath *C.char, features **C.LV2_Feature) C.uintptr_t {
	var bundle string
	if bundlePath != nil {
		bundle = C.GoString(bundlePath)
	}

	h := plugin.Instantiate(uint32(index), float64(sampleRate), bundle, goFeatures(features))
	return C.uintptr_t(h)
}

//export GoConnectPort
func GoConnectPort(handle C.uintptr_t, port C.uint32_t, data unsafe.Pointer) {
	plugin.ConnectPort(lv2.Handle(handle), uint32(port), data)
}

//export GoRun
func GoRun(handle C.uintptr_t, sampleCount C.uint32_t) {
	plugin.Run(lv2.Handle(handle), uint32(sampleCount))
}

//export GoCleanup
func GoCleanup(handle C.uintptr_t) {
	plugin.Cleanup(lv2.Handle(handle))
}

// goFeatures copies the NULL terminated host feature array. Feature data
// pointers stay owned by the host.
func goFeatures(features **C.LV2_Feature) lv2.Features {
	if features == nil {
		return nil
	}

	var out lv2.Features
	for p := features; *p != nil; p = (**C.LV2_Feature)(unsafe.Add(unsafe.Pointer(p), unsafe.Sizeof(*p))) {
		f := *p
		var uri string
		if f.URI != nil {
			uri = C.GoString(f.URI)
		}
		out = append(out, lv2.Feature{URI: uri, Data: f.data})
	}
	return out
}
