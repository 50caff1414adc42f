package debug

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// BlockProfiler measures how long each processed block takes compared to
// the real time the block represents. It is meant for offline hosts; it is
// not safe for concurrent use.
type BlockProfiler struct {
	sampleRate float64
	durations  []time.Duration
	samples    uint64
	total      time.Duration
	min        time.Duration
	max        time.Duration
}

// NewBlockProfiler creates a profiler for audio at the given sample rate.
func NewBlockProfiler(sampleRate float64) *BlockProfiler {
	return &BlockProfiler{sampleRate: sampleRate}
}

// Time runs fn, which processes n samples, and records its duration.
func (p *BlockProfiler) Time(n int, fn func()) {
	start := time.Now()
	fn()
	p.Record(n, time.Since(start))
}

// Record stores the duration of a block of n samples.
func (p *BlockProfiler) Record(n int, elapsed time.Duration) {
	if len(p.durations) == 0 || elapsed < p.min {
		p.min = elapsed
	}
	if elapsed > p.max {
		p.max = elapsed
	}
	p.durations = append(p.durations, elapsed)
	p.samples += uint64(n)
	p.total += elapsed
}

// Blocks returns the number of recorded blocks.
func (p *BlockProfiler) Blocks() int {
	return len(p.durations)
}

// Average returns the mean block duration.
func (p *BlockProfiler) Average() time.Duration {
	if len(p.durations) == 0 {
		return 0
	}
	return p.total / time.Duration(len(p.durations))
}

// Percentile returns the block duration at percentile pct (0-100).
func (p *BlockProfiler) Percentile(pct float64) time.Duration {
	if len(p.durations) == 0 {
		return 0
	}

	sorted := make([]time.Duration, len(p.durations))
	copy(sorted, p.durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := int(pct / 100 * float64(len(sorted)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Load returns processing time divided by the audio time processed.
// Values above 1 mean slower than real time.
func (p *BlockProfiler) Load() float64 {
	if p.samples == 0 || p.sampleRate <= 0 {
		return 0
	}
	audio := float64(p.samples) / p.sampleRate
	return p.total.Seconds() / audio
}

// Report returns a human readable summary.
func (p *BlockProfiler) Report() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "blocks: %d, samples: %d\n", len(p.durations), p.samples)
	fmt.Fprintf(&sb, "block time avg %v, min %v, max %v, p99 %v\n",
		p.Average(), p.min, p.max, p.Percentile(99))
	fmt.Fprintf(&sb, "real-time load: %.4f%%\n", p.Load()*100)
	return sb.String()
}
