package export

// #cgo CFLAGS: -I${SRCDIR}/../../../include -I${SRCDIR}/../../../bridge
// #include <stdlib.h>
// #include "lv2_bridge.h"
//
// static uintptr_t
// lv2go_host_instantiate(const LV2_Descriptor* d, double rate, const char* bundle)
// {
// 	const LV2_Feature* const features[] = { NULL };
// 	return (uintptr_t)d->instantiate(d, rate, bundle, features);
// }
//
// static void
// lv2go_host_connect_port(const LV2_Descriptor* d, uintptr_t h, uint32_t port, void* data)
// {
// 	d->connect_port((LV2_Handle)h, port, data);
// }
//
// static void
// lv2go_host_run(const LV2_Descriptor* d, uintptr_t h, uint32_t n)
// {
// 	d->run((LV2_Handle)h, n);
// }
//
// static void
// lv2go_host_cleanup(const LV2_Descriptor* d, uintptr_t h)
// {
// 	d->cleanup((LV2_Handle)h);
// }
import "C"
import "unsafe"

// hostDescriptor is a descriptor obtained from lv2_descriptor. Its methods
// call through the C function pointers, as a host does after loading the
// library.
type hostDescriptor struct {
	d *C.LV2_Descriptor
}

func lookupDescriptor(index uint32) (hostDescriptor, bool) {
	d := C.lv2_descriptor(C.uint32_t(index))
	return hostDescriptor{d: d}, d != nil
}

func (h hostDescriptor) uri() string {
	return C.GoString(h.d.URI)
}

// required reports whether instantiate, connect_port, run and cleanup are set.
func (h hostDescriptor) required() bool {
	return h.d.instantiate != nil && h.d.connect_port != nil && h.d.run != nil && h.d.cleanup != nil
}

// optional reports which of the optional entries are set.
func (h hostDescriptor) optional() (activate, deactivate, extensionData bool) {
	return h.d.activate != nil, h.d.deactivate != nil, h.d.extension_data != nil
}

func (h hostDescriptor) instantiate(sampleRate float64, bundlePath string) uintptr {
	path := C.CString(bundlePath)
	defer C.free(unsafe.Pointer(path))
	return uintptr(C.lv2go_host_instantiate(h.d, C.double(sampleRate), path))
}

func (h hostDescriptor) connectPort(handle uintptr, port uint32, data unsafe.Pointer) {
	C.lv2go_host_connect_port(h.d, C.uintptr_t(handle), C.uint32_t(port), data)
}

func (h hostDescriptor) run(handle uintptr, sampleCount uint32) {
	C.lv2go_host_run(h.d, C.uintptr_t(handle), C.uint32_t(sampleCount))
}

func (h hostDescriptor) cleanup(handle uintptr) {
	C.lv2go_host_cleanup(h.d, C.uintptr_t(handle))
}
