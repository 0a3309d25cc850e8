package dsp

import (
	"github.com/maddyblue/go-dsp/fft"
)

// convolver performs uniformly partitioned convolution of a stream
// against a fixed impulse response. The response is split into
// block-sized partitions whose spectra are precomputed; each input
// block is transformed once and multiplied against every partition via
// a frequency-domain delay line, with overlap-add reassembly. This
// keeps per-block cost at one forward and one inverse FFT regardless
// of the response length.
type convolver struct {
	blockSize int
	fftSize   int

	partitions [][]complex128 // impulse response partition spectra
	history    [][]complex128 // ring of past input block spectra
	historyPos int

	overlap []float64 // tail of the previous inverse transform
	acc     []complex128
	padded  []complex128
}

// newConvolver builds a convolver for the given impulse response
// channel. blockSize must match the length of every block later passed
// to process.
func newConvolver(ir []float32, blockSize int) *convolver {
	fftSize := 2 * blockSize

	numPartitions := (len(ir) + blockSize - 1) / blockSize
	if numPartitions == 0 {
		numPartitions = 1
	}

	partitions := make([][]complex128, numPartitions)
	for p := 0; p < numPartitions; p++ {
		part := make([]complex128, fftSize)
		for i := 0; i < blockSize; i++ {
			idx := p*blockSize + i
			if idx < len(ir) {
				part[i] = complex(float64(ir[idx]), 0)
			}
		}
		partitions[p] = fft.FFT(part)
	}

	history := make([][]complex128, numPartitions)
	for i := range history {
		history[i] = make([]complex128, fftSize)
	}

	return &convolver{
		blockSize:  blockSize,
		fftSize:    fftSize,
		partitions: partitions,
		history:    history,
		overlap:    make([]float64, blockSize),
		acc:        make([]complex128, fftSize),
		padded:     make([]complex128, fftSize),
	}
}

// process convolves one input block and writes the wet output into out.
// len(in) and len(out) must equal blockSize.
func (c *convolver) process(in, out []float32) {
	for i := 0; i < c.blockSize; i++ {
		c.padded[i] = complex(float64(in[i]), 0)
	}
	for i := c.blockSize; i < c.fftSize; i++ {
		c.padded[i] = 0
	}
	c.history[c.historyPos] = fft.FFT(c.padded)

	for i := range c.acc {
		c.acc[i] = 0
	}
	for p := range c.partitions {
		x := c.history[(c.historyPos-p+len(c.history))%len(c.history)]
		h := c.partitions[p]
		for i := range c.acc {
			c.acc[i] += x[i] * h[i]
		}
	}

	y := fft.IFFT(c.acc)
	for i := 0; i < c.blockSize; i++ {
		out[i] = float32(real(y[i]) + c.overlap[i])
		c.overlap[i] = real(y[c.blockSize+i])
	}

	c.historyPos = (c.historyPos + 1) % len(c.history)
}

// ReverbStage convolves the signal against the shared impulse response
// and mixes dry (1-amount) against wet (amount) into a single output,
// so no doubled dry path ever reaches the gain stage.
type ReverbStage struct {
	left   *convolver
	right  *convolver
	dry    float32
	wet    float32
	wetBuf []float32
}

// NewReverbStage creates a stereo convolution reverb. amount is clamped
// to [0, 1]; each output channel convolves against its own impulse
// response channel for a decorrelated tail.
func NewReverbStage(ir *ImpulseResponse, amount float64, blockSize int) *ReverbStage {
	if amount < 0 {
		amount = 0
	}
	if amount > 1 {
		amount = 1
	}

	return &ReverbStage{
		left:   newConvolver(ir.Channel(0), blockSize),
		right:  newConvolver(ir.Channel(1), blockSize),
		dry:    float32(1 - amount),
		wet:    float32(amount),
		wetBuf: make([]float32, blockSize),
	}
}

// Name implements Stage.
func (s *ReverbStage) Name() string { return "reverb" }

// Process runs the reverb over one block, in place.
func (s *ReverbStage) Process(left, right []float32) {
	s.left.process(left, s.wetBuf)
	for i := range left {
		left[i] = left[i]*s.dry + s.wetBuf[i]*s.wet
	}

	s.right.process(right, s.wetBuf)
	for i := range right {
		right[i] = right[i]*s.dry + s.wetBuf[i]*s.wet
	}
}
