package gain

import (
	"math"
	"testing"
)

func TestDbConversion(t *testing.T) {
	tests := []struct {
		name    string
		linear  float32
		db      float32
		epsilon float64
	}{
		{"Unity gain", 1.0, 0.0, 0.001},
		{"Half amplitude", 0.5, -6.02, 0.01},
		{"Double amplitude", 2.0, 6.02, 0.01},
		{"Quarter amplitude", 0.25, -12.04, 0.01},
		{"Zero amplitude", 0.0, MinDB, 0.001},
		{"Negative amplitude", -1.0, MinDB, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotDb := LinearToDb(tt.linear)
			if math.Abs(float64(gotDb-tt.db)) > tt.epsilon {
				t.Errorf("LinearToDb(%f) = %f, want %f", tt.linear, gotDb, tt.db)
			}

			if tt.db != MinDB {
				gotLinear := DbToLinear(tt.db)
				if math.Abs(float64(gotLinear-tt.linear)) > tt.epsilon {
					t.Errorf("DbToLinear(%f) = %f, want %f", tt.db, gotLinear, tt.linear)
				}
			}
		})
	}

	if got := DbToLinear(MinDB); got != 0 {
		t.Errorf("DbToLinear(MinDB) = %f, want 0", got)
	}
}

func TestApplyBufferTo(t *testing.T) {
	tests := []struct {
		name string
		src  []float32
		gain float32
		dst  []float32
		want []float32
	}{
		{"Half gain", []float32{1, 2, 3, 4}, 0.5, make([]float32, 4), []float32{0.5, 1, 1.5, 2}},
		{"Zero gain", []float32{1, -7, 3}, 0, []float32{9, 9, 9}, []float32{0, 0, 0}},
		{"Inverting gain", []float32{1, -1}, -1, make([]float32, 2), []float32{-1, 1}},
		{"Short source leaves tail", []float32{2}, 2, []float32{9, 9}, []float32{4, 9}},
		{"Short destination", []float32{1, 2, 3}, 1, []float32{0}, []float32{1}},
		{"Empty", nil, 3, []float32{5}, []float32{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ApplyBufferTo(tt.src, tt.gain, tt.dst)
			for i := range tt.want {
				if tt.dst[i] != tt.want[i] {
					t.Errorf("dst[%d] = %f, want %f", i, tt.dst[i], tt.want[i])
				}
			}
		})
	}
}

func TestApplyBufferToInPlace(t *testing.T) {
	buf := []float32{1, 2}
	ApplyBufferTo(buf, 3, buf)
	if buf[0] != 3 || buf[1] != 6 {
		t.Errorf("In-place apply = %v, want [3 6]", buf)
	}
}

func TestHardClip(t *testing.T) {
	buf := []float32{-2, -0.5, 0, 0.5, 2}
	HardClipBuffer(buf, 1)

	want := []float32{-1, -0.5, 0, 0.5, 1}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %f, want %f", i, buf[i], want[i])
		}
	}
}

func BenchmarkApplyBufferTo(b *testing.B) {
	src := make([]float32, 512)
	dst := make([]float32, 512)
	for i := range src {
		src[i] = float32(i) / 512
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ApplyBufferTo(src, 0.7, dst)
	}
}
