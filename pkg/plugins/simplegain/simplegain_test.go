package simplegain

import (
	"math/rand"
	"testing"

	"github.com/joomcode/errorx"
	. "github.com/onsi/gomega"

	"github.com/giannisalinetti/lv2go/pkg/lv2"
)

// bind connects all three ports and returns the instance.
func bind(in, out []float32, level *float32) *Instance {
	g := NewInstance()
	g.ConnectPort(PortInput, lv2.SamplePointer(in))
	g.ConnectPort(PortOutput, lv2.SamplePointer(out))
	g.ConnectPort(PortGain, lv2.ControlPointer(level))
	return g
}

func TestRunScenarios(t *testing.T) {
	tests := []struct {
		name  string
		in    []float32
		level float32
		want  []float32
	}{
		{"Half gain", []float32{1.0, 2.0, 3.0, 4.0}, 0.5, []float32{0.5, 1.0, 1.5, 2.0}},
		{"Zero gain", []float32{0.3, -7, 1e6}, 0.0, []float32{0, 0, 0}},
		{"Inverting gain", []float32{1.0, -1.0}, -1.0, []float32{-1.0, 1.0}},
		{"Unity gain", []float32{0.25, -0.125}, 1.0, []float32{0.25, -0.125}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)

			out := make([]float32, len(tt.in))
			for i := range out {
				out[i] = 99
			}
			level := tt.level

			inst := bind(tt.in, out, &level)
			inst.Run(uint32(len(tt.in)))

			g.Expect(out).To(Equal(tt.want))
		})
	}
}

func TestRunZeroSamplesLeavesOutput(t *testing.T) {
	g := NewGomegaWithT(t)

	in := []float32{1, 2, 3}
	out := []float32{7, 8, 9}
	level := float32(0.5)

	bind(in, out, &level).Run(0)

	g.Expect(out).To(Equal([]float32{7, 8, 9}))
}

func TestRunLeavesTailUntouched(t *testing.T) {
	g := NewGomegaWithT(t)

	in := []float32{1, 2, 3, 4, 5, 6}
	out := []float32{-1, -1, -1, -1, -1, -1}
	level := float32(2)

	bind(in, out, &level).Run(4)

	g.Expect(out).To(Equal([]float32{2, 4, 6, 8, -1, -1}))
}

func TestRebindOutput(t *testing.T) {
	g := NewGomegaWithT(t)

	in := []float32{1, 2}
	a := []float32{0, 0}
	b := []float32{0, 0}
	level := float32(3)

	inst := bind(in, a, &level)
	inst.ConnectPort(PortOutput, lv2.SamplePointer(b))
	inst.Run(2)

	g.Expect(a).To(Equal([]float32{0, 0}), "previous output buffer must not be written")
	g.Expect(b).To(Equal([]float32{3, 6}))
}

func TestUnknownPortIgnored(t *testing.T) {
	g := NewGomegaWithT(t)

	in := []float32{1, 2}
	out := []float32{0, 0}
	other := []float32{5, 5}
	level := float32(0.5)

	inst := bind(in, out, &level)
	inst.ConnectPort(99, lv2.SamplePointer(other))
	inst.ConnectPort(3, nil)
	inst.Run(2)

	g.Expect(out).To(Equal([]float32{0.5, 1}))
	g.Expect(other).To(Equal([]float32{5, 5}))
	g.Expect(inst.Validate()).To(Succeed())
}

// The output buffer aliases the gain control: writing output[0] changes the
// control value in the middle of the block. The rest of the block must
// still use the value read at entry.
func TestGainReadOncePerBlock(t *testing.T) {
	g := NewGomegaWithT(t)

	in := []float32{10, 1, 1, 1}
	out := make([]float32, 4)
	out[0] = 2

	inst := NewInstance()
	inst.ConnectPort(PortInput, lv2.SamplePointer(in))
	inst.ConnectPort(PortOutput, lv2.SamplePointer(out))
	inst.ConnectPort(PortGain, lv2.SamplePointer(out[:1]))
	inst.Run(4)

	g.Expect(out).To(Equal([]float32{20, 2, 2, 2}))
}

func TestGainChangesBetweenBlocks(t *testing.T) {
	g := NewGomegaWithT(t)

	in := []float32{1, 1}
	out := make([]float32, 2)
	level := float32(1)

	inst := bind(in, out, &level)
	inst.Run(2)
	g.Expect(out).To(Equal([]float32{1, 1}))

	level = 4
	inst.Run(2)
	g.Expect(out).To(Equal([]float32{4, 4}))
}

func TestInPlaceProcessing(t *testing.T) {
	g := NewGomegaWithT(t)

	buf := []float32{1, 2, 3}
	level := float32(-2)

	bind(buf, buf, &level).Run(3)

	g.Expect(buf).To(Equal([]float32{-2, -4, -6}))
}

func TestUnboundPorts(t *testing.T) {
	tests := []struct {
		name    string
		connect []uint32
		missing string
	}{
		{"Nothing bound", nil, "in"},
		{"Input only", []uint32{PortInput}, "out"},
		{"No gain", []uint32{PortInput, PortOutput}, "gain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)

			in := []float32{1, 2}
			out := []float32{9, 9}
			level := float32(2)
			buffers := map[uint32]*float32{PortInput: &in[0], PortOutput: &out[0], PortGain: &level}

			inst := NewInstance()
			for _, p := range tt.connect {
				inst.ConnectPort(p, lv2.ControlPointer(buffers[p]))
			}

			g.Expect(inst.Ready()).To(BeFalse())
			g.Expect(func() { inst.Run(2) }).NotTo(Panic())
			g.Expect(out).To(Equal([]float32{9, 9}))

			err := inst.Validate()
			g.Expect(err).To(HaveOccurred())
			g.Expect(errorx.IsOfType(err, lv2.ErrUnboundPort)).To(BeTrue())
			g.Expect(err.Error()).To(ContainSubstring("(" + tt.missing + ")"))
		})
	}
}

func TestCleanupDropsReferences(t *testing.T) {
	g := NewGomegaWithT(t)

	in := []float32{1}
	out := []float32{0}
	level := float32(1)

	inst := bind(in, out, &level)
	inst.Cleanup()

	g.Expect(inst.Ready()).To(BeFalse())
	g.Expect(in).To(Equal([]float32{1}))
}

func TestRunMatchesProductForRandomBlocks(t *testing.T) {
	g := NewGomegaWithT(t)
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 200; trial++ {
		size := rng.Intn(300)
		n := 0
		if size > 0 {
			n = rng.Intn(size + 1)
		}
		in := make([]float32, size)
		out := make([]float32, size)
		for i := range in {
			in[i] = rng.Float32()*2 - 1
			out[i] = float32(trial)
		}
		level := rng.Float32()*4 - 2

		inst := bind(in, out, &level)
		inst.Run(uint32(n))

		for k := 0; k < size; k++ {
			if k < n {
				g.Expect(out[k]).To(Equal(in[k]*level), "trial %d sample %d", trial, k)
			} else {
				g.Expect(out[k]).To(Equal(float32(trial)), "trial %d sample %d past block", trial, k)
			}
		}
	}
}

func TestRunDoesNotAllocate(t *testing.T) {
	in := make([]float32, 512)
	out := make([]float32, 512)
	level := float32(0.7)
	inst := bind(in, out, &level)

	allocs := testing.AllocsPerRun(100, func() {
		inst.Run(512)
	})
	if allocs != 0 {
		t.Errorf("Run allocated %.1f times per call, want 0", allocs)
	}
}

func TestDescriptor(t *testing.T) {
	g := NewGomegaWithT(t)

	p := New()
	g.Expect(p.URI()).To(Equal("http://github.com/giannisalinetti/lv2-simple-gain"))
	g.Expect(p.Info().Validate()).To(Succeed())
	g.Expect(p.Info().URI).To(Equal(p.URI()))

	ports := p.Ports()
	g.Expect(ports.Count()).To(Equal(3))
	for idx, symbol := range map[uint32]string{PortInput: "in", PortOutput: "out", PortGain: "gain"} {
		pt, ok := ports.Get(idx)
		g.Expect(ok).To(BeTrue())
		g.Expect(pt.Symbol).To(Equal(symbol))
	}

	inst, err := p.Instantiate(48000, "/usr/lib/lv2/simplegain.lv2/", lv2.Features{{URI: lv2.HardRTCapable}})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(inst).To(BeAssignableToTypeOf(&Instance{}))
	g.Expect(inst.(*Instance).Ready()).To(BeFalse())
}

func BenchmarkRun(b *testing.B) {
	in := make([]float32, 256)
	out := make([]float32, 256)
	level := float32(0.5)
	inst := bind(in, out, &level)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		inst.Run(256)
	}
}
