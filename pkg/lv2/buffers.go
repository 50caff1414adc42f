package lv2

import "unsafe"

// Samples returns a borrowed view of n float32 samples at data.
//
// The view aliases host memory and is only valid until the current call
// returns or the port is reconnected. It never allocates. A nil data
// pointer yields a nil slice.
func Samples(data unsafe.Pointer, n uint32) []float32 {
	if data == nil {
		return nil
	}
	return unsafe.Slice((*float32)(data), n)
}

// Control reads the single float32 value a control port points to.
func Control(data unsafe.Pointer) float32 {
	return *(*float32)(data)
}

// SamplePointer returns the address of the first element of buf, suitable
// for ConnectPort. It returns nil for an empty buffer.
func SamplePointer(buf []float32) unsafe.Pointer {
	if len(buf) == 0 {
		return nil
	}
	return unsafe.Pointer(&buf[0])
}

// ControlPointer returns the address of v, suitable for ConnectPort.
func ControlPointer(v *float32) unsafe.Pointer {
	return unsafe.Pointer(v)
}
