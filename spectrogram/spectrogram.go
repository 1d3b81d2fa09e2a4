package spectrogram

import (
	"context"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/neurlang/spectrograph/fft"
	"github.com/neurlang/spectrograph/window"
)

// Options configures one spectrogram computation.
type Options struct {
	ChunkSize int
	Overlap   float64

	// Window defaults to window.Hann.
	Window window.Func

	// Engine is an fft.EngineNames entry, used by the radix2 backend.
	Engine string

	// Backend is a BackendNames entry. Empty means radix2.
	Backend string

	// Workers bounds the number of columns transformed at once.
	// Zero or less means runtime.NumCPU().
	Workers int

	// DisableTwiddleCache makes every butterfly compute its root of unity.
	DisableTwiddleCache bool
}

// DefaultOptions mirrors the defaults of the command line tool.
func DefaultOptions() Options {
	return Options{
		ChunkSize: 1024,
		Overlap:   0.5,
		Window:    window.Hann{},
		Engine:    "iterative",
		Backend:   "radix2",
	}
}

// BackendNames lists the names accepted in Options.Backend.
func BackendNames() []string {
	return []string{"radix2", "gossp"}
}

// Validate rejects options that cannot produce a spectrogram.
func (o Options) Validate() error {
	if _, err := Step(o.ChunkSize, o.Overlap); err != nil {
		return err
	}
	switch o.backend() {
	case "radix2":
		if _, err := fft.NewEngine(o.Engine, o.window(), nil); err != nil {
			return &ConfigError{Field: "engine", Value: o.Engine, Err: err}
		}
	case "gossp":
		if o.ChunkSize&(o.ChunkSize-1) != 0 {
			return &ConfigError{Field: "chunk size", Value: o.ChunkSize, Err: ErrChunkNotPowerOfTwo}
		}
	default:
		return &ConfigError{Field: "backend", Value: o.Backend, Err: ErrUnknownBackend}
	}
	return nil
}

func (o Options) window() window.Func {
	if o.Window == nil {
		return window.Hann{}
	}
	return o.Window
}

func (o Options) backend() string {
	b := strings.ToLower(strings.TrimSpace(o.Backend))
	if b == "" {
		return "radix2"
	}
	return b
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return runtime.NumCPU()
	}
	return o.Workers
}

// Spectrogram holds one spectrum per analysed segment, in time order.
type Spectrogram struct {
	Columns      [][]complex128
	ChunkSize    int
	Step         int
	PaddedLength int
	SampleRate   int
}

// SpectrumLength is the number of bins per column, zero when empty.
func (s *Spectrogram) SpectrumLength() int {
	if len(s.Columns) == 0 {
		return 0
	}
	return len(s.Columns[0])
}

// BinFrequency converts a bin index to Hz.
func (s *Spectrogram) BinFrequency(bin int) float64 {
	n := s.SpectrumLength()
	if n == 0 {
		return 0
	}
	return float64(bin) * float64(s.SampleRate) / float64(n)
}

// Compute pads samples, splits them into overlapping segments and transforms
// every segment. Columns are computed concurrently into pre-sized slots. On
// error, including cancellation, no spectrogram is returned.
func Compute(ctx context.Context, samples []int16, sampleRate int, opts Options) (*Spectrogram, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	step, _ := Step(opts.ChunkSize, opts.Overlap)

	logger := logrus.WithFields(logrus.Fields{
		"function": "Compute",
		"chunk":    opts.ChunkSize,
		"overlap":  opts.Overlap * float64(opts.ChunkSize),
		"step":     step,
		"backend":  opts.backend(),
	})
	logger.WithField("data_size", len(samples)).Info("Computing spectrogram")

	padded := Pad(samples, opts.ChunkSize, step)
	if len(padded) != len(samples) {
		logger.WithFields(logrus.Fields{
			"from": len(samples),
			"to":   len(padded),
		}).Debug("Padding data")
	}

	s := &Spectrogram{
		ChunkSize:    opts.ChunkSize,
		Step:         step,
		PaddedLength: len(padded),
		SampleRate:   sampleRate,
	}

	var err error
	switch opts.backend() {
	case "gossp":
		s.Columns, err = computeGossp(ctx, padded, opts.ChunkSize, step, opts.window())
	default:
		s.Columns, err = computeRadix2(ctx, padded, step, opts)
	}
	if err != nil {
		logger.WithError(err).Warn("Spectrogram computation aborted")
		return nil, err
	}

	logger.WithField("columns", len(s.Columns)).Info("Done")
	return s, nil
}

func computeRadix2(ctx context.Context, padded []int16, step int, opts Options) ([][]complex128, error) {
	var cache *fft.TwiddleCache
	if !opts.DisableTwiddleCache {
		cache = fft.NewTwiddleCache()
	}
	engine, err := fft.NewEngine(opts.Engine, opts.window(), cache)
	if err != nil {
		return nil, err
	}

	columns := make([][]complex128, ColumnCount(len(padded), opts.ChunkSize, step))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for col := range columns {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			columns[col] = engine.Transform(segment(padded, col*step, opts.ChunkSize), opts.ChunkSize)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// errgroup only reports errors returned by its goroutines.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":      "computeRadix2",
		"twiddle_cache": cache.Len(),
		"twiddle_hits":  cache.Hits(),
	}).Debug("Twiddle cache usage")

	return columns, nil
}
