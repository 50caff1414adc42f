// Package render is an offline LV2 host. It feeds a WAV file through a
// registered plugin block by block, with one plugin instance per channel,
// and writes the result as a WAV file of the same format.
package render

import (
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/joomcode/errorx"

	"github.com/giannisalinetti/lv2go/pkg/dsp/gain"
	"github.com/giannisalinetti/lv2go/pkg/framework/debug"
	"github.com/giannisalinetti/lv2go/pkg/framework/port"
	"github.com/giannisalinetti/lv2go/pkg/lv2"
	"github.com/giannisalinetti/lv2go/pkg/plugin"
)

// DefaultBlockSize is the number of frames per Run call.
const DefaultBlockSize = 512

// wavFormatPCM is the WAVE_FORMAT_PCM tag.
const wavFormatPCM = 1

// Options configure a render.
type Options struct {
	// Index of the plugin in the bridge
	Index uint32

	// BlockSize is the maximum sample count per Run. Defaults to DefaultBlockSize.
	BlockSize int

	// Controls sets control input ports by symbol. Ports not listed use
	// their declared default.
	Controls map[string]float32

	// Profile records the duration of every Run call.
	Profile bool
}

// Result describes a finished render.
type Result struct {
	Frames     int
	Channels   int
	SampleRate int
	BitDepth   int
	Input      debug.BufferStats
	Output     debug.BufferStats
	Profile    *debug.BlockProfiler
}

// Process renders the WAV data read from r into w.
func Process(b *plugin.Bridge, r io.ReadSeeker, w io.WriteSeeker, opts Options) (*Result, error) {
	if opts.BlockSize <= 0 {
		opts.BlockSize = DefaultBlockSize
	}

	p, ok := b.Get(opts.Index)
	if !ok {
		return nil, lv2.ErrUnknownPlugin.New("no plugin at index %d", opts.Index)
	}
	if err := checkControls(p, opts.Controls); err != nil {
		return nil, err
	}

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errorx.IllegalFormat.New("input is not a valid WAV file")
	}
	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, errorx.Decorate(err, "decode WAV")
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth != 16 && bitDepth != 24 && bitDepth != 32 {
		return nil, errorx.IllegalFormat.New("unsupported bit depth %d", bitDepth)
	}
	channels := pcm.Format.NumChannels
	sampleRate := pcm.Format.SampleRate
	if channels < 1 {
		return nil, errorx.IllegalFormat.New("WAV file has no channels")
	}

	in := deinterleave(pcm.Data, channels, bitDepth)
	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, len(in[ch]))
	}

	res := &Result{
		Frames:     len(in[0]),
		Channels:   channels,
		SampleRate: sampleRate,
		BitDepth:   bitDepth,
	}
	if opts.Profile {
		res.Profile = debug.NewBlockProfiler(float64(sampleRate))
	}

	for ch := 0; ch < channels; ch++ {
		if err := runChannel(b, p, in[ch], out[ch], float64(sampleRate), opts, res.Profile); err != nil {
			return nil, errorx.Decorate(err, "channel %d", ch)
		}
	}

	res.Input = debug.Analyze(flatten(in))
	res.Output = debug.Analyze(flatten(out))

	enc := wav.NewEncoder(w, sampleRate, bitDepth, channels, wavFormatPCM)
	if err := enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           interleave(out, bitDepth),
		SourceBitDepth: bitDepth,
	}); err != nil {
		return nil, errorx.Decorate(err, "encode WAV")
	}
	if err := enc.Close(); err != nil {
		return nil, errorx.Decorate(err, "finish WAV")
	}

	return res, nil
}

// runChannel drives one plugin instance over a whole channel through the
// host lifecycle: instantiate, connect, run per block, cleanup.
func runChannel(b *plugin.Bridge, p plugin.Plugin, in, out []float32, sampleRate float64, opts Options, prof *debug.BlockProfiler) error {
	h := b.Instantiate(opts.Index, sampleRate, "", nil)
	if !h.Valid() {
		return lv2.ErrInstantiate.New("plugin %s returned the null handle", p.URI())
	}
	defer b.Cleanup(h)

	inBlock := make([]float32, opts.BlockSize)
	outBlock := make([]float32, opts.BlockSize)
	controls := make([]float32, p.Ports().Count())

	var audioIn, audioOut int
	for _, pt := range p.Ports().Ports() {
		switch {
		case pt.IsAudio() && pt.Direction == port.DirectionInput:
			audioIn++
			b.ConnectPort(h, pt.Index, lv2.SamplePointer(inBlock))
		case pt.IsAudio():
			audioOut++
			b.ConnectPort(h, pt.Index, lv2.SamplePointer(outBlock))
		default:
			controls[pt.Index] = pt.Default
			if v, ok := opts.Controls[pt.Symbol]; ok {
				controls[pt.Index] = v
			}
			b.ConnectPort(h, pt.Index, lv2.ControlPointer(&controls[pt.Index]))
		}
	}
	if audioIn != 1 || audioOut != 1 {
		return lv2.ErrInvalidInfo.New("plugin %s has %d audio inputs and %d audio outputs, want 1 and 1",
			p.URI(), audioIn, audioOut)
	}
	if err := b.Validate(h); err != nil {
		return err
	}

	for offset := 0; offset < len(in); offset += opts.BlockSize {
		n := copy(inBlock, in[offset:])
		if prof != nil {
			prof.Time(n, func() { b.Run(h, uint32(n)) })
		} else {
			b.Run(h, uint32(n))
		}
		copy(out[offset:offset+n], outBlock[:n])
	}
	return nil
}

// checkControls rejects values for symbols that are not control inputs of p.
func checkControls(p plugin.Plugin, controls map[string]float32) error {
	layout := p.Ports()
	for symbol := range controls {
		pt, ok := layout.BySymbol(symbol)
		if !ok || !pt.IsControl() || pt.Direction != port.DirectionInput {
			return errorx.IllegalArgument.New("plugin %s has no control input %q", p.URI(), symbol)
		}
	}
	return nil
}

func fullScale(bitDepth int) float64 {
	return float64(int64(1) << (bitDepth - 1))
}

// deinterleave splits integer PCM frames into normalized float channels.
func deinterleave(data []int, channels, bitDepth int) [][]float32 {
	scale := fullScale(bitDepth)
	frames := len(data) / channels

	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, frames)
		for i := 0; i < frames; i++ {
			out[ch][i] = float32(float64(data[i*channels+ch]) / scale)
		}
	}
	return out
}

// interleave converts float channels back to integer PCM, clipping at
// full scale.
func interleave(chans [][]float32, bitDepth int) []int {
	scale := fullScale(bitDepth)
	channels := len(chans)
	frames := len(chans[0])

	data := make([]int, frames*channels)
	for ch, samples := range chans {
		gain.HardClipBuffer(samples, 1)
		for i, s := range samples {
			v := math.Round(float64(s) * scale)
			if v > scale-1 {
				v = scale - 1
			}
			data[i*channels+ch] = int(v)
		}
	}
	return data
}

func flatten(chans [][]float32) []float32 {
	total := 0
	for _, c := range chans {
		total += len(c)
	}
	out := make([]float32, 0, total)
	for _, c := range chans {
		out = append(out, c...)
	}
	return out
}
