// Package gain provides amplitude and gain-related DSP operations.
package gain

import (
	"github.com/chewxy/math32"
)

// MinDB is the minimum dB value (effectively -infinity)
const MinDB = -200.0

// LinearToDb converts a linear amplitude value to decibels.
// Returns MinDB for values <= 0.
func LinearToDb(linear float32) float32 {
	if linear <= 0 {
		return MinDB
	}
	return 20 * math32.Log10(linear)
}

// DbToLinear converts a decibel value to linear amplitude.
// Values <= MinDB return 0.
func DbToLinear(db float32) float32 {
	if db <= MinDB {
		return 0
	}
	return math32.Pow(10, db/20)
}

// ApplyBufferTo writes src scaled by gain into dst, in index order.
// Only min(len(src), len(dst)) samples are written; the rest of dst is
// left untouched. src and dst may be the same buffer.
func ApplyBufferTo(src []float32, gain float32, dst []float32) {
	length := len(src)
	if len(dst) < length {
		length = len(dst)
	}

	for i := 0; i < length; i++ {
		dst[i] = src[i] * gain
	}
}

// HardClip limits a sample to [-threshold, threshold].
func HardClip(input, threshold float32) float32 {
	if input > threshold {
		return threshold
	}
	if input < -threshold {
		return -threshold
	}
	return input
}

// HardClipBuffer applies hard clipping to an entire buffer.
func HardClipBuffer(buffer []float32, threshold float32) {
	for i := range buffer {
		buffer[i] = HardClip(buffer[i], threshold)
	}
}
