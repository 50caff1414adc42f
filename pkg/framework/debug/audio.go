package debug

import (
	"fmt"

	"github.com/chewxy/math32"
)

// BufferStats summarises the content of an audio buffer.
type BufferStats struct {
	Samples int
	Peak    float32
	RMS     float32
	DC      float32
	Clipped int
	NaNs    int
	Infs    int
}

// Analyze computes statistics for buffer. Samples with magnitude above 1
// count as clipped.
func Analyze(buffer []float32) BufferStats {
	stats := BufferStats{Samples: len(buffer)}
	if len(buffer) == 0 {
		return stats
	}

	var sum, sumSq float64
	for _, s := range buffer {
		if math32.IsNaN(s) {
			stats.NaNs++
			continue
		}
		if math32.IsInf(s, 0) {
			stats.Infs++
			continue
		}

		abs := math32.Abs(s)
		if abs > stats.Peak {
			stats.Peak = abs
		}
		if abs > 1 {
			stats.Clipped++
		}
		sum += float64(s)
		sumSq += float64(s) * float64(s)
	}

	valid := len(buffer) - stats.NaNs - stats.Infs
	if valid > 0 {
		stats.DC = float32(sum / float64(valid))
		stats.RMS = math32.Sqrt(float32(sumSq / float64(valid)))
	}
	return stats
}

// String returns a one line summary.
func (s BufferStats) String() string {
	return fmt.Sprintf("samples=%d peak=%.4f rms=%.4f dc=%.4f clipped=%d nan=%d inf=%d",
		s.Samples, s.Peak, s.RMS, s.DC, s.Clipped, s.NaNs, s.Infs)
}

// Healthy reports whether the buffer holds only finite samples.
func (s BufferStats) Healthy() bool {
	return s.NaNs == 0 && s.Infs == 0
}
