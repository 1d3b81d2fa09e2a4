package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"math/cmplx"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/neurlang/spectrograph/spectrogram"
)

// DefaultThreshold is the log magnitude mapped to full white.
const DefaultThreshold = 10.0

var (
	// ErrInvalidHeight indicates a non-positive output height.
	ErrInvalidHeight = errors.New("height must be positive")

	// ErrInvalidThreshold indicates a non-positive or non-finite threshold.
	ErrInvalidThreshold = errors.New("threshold must be positive")

	// ErrEmptySpectrogram indicates there is no column to draw.
	ErrEmptySpectrogram = errors.New("spectrogram has no columns")

	// ErrConflictingAxis indicates both the log and the mel axis were asked for.
	ErrConflictingAxis = errors.New("log and mel frequency axes are exclusive")
)

// Options configures rasterisation.
type Options struct {
	Height    int
	LogMode   bool
	Threshold float64

	// Mel spaces rows evenly on the mel scale up to the Nyquist frequency.
	Mel bool

	// TopDown draws low frequencies at the top of the image. By default they
	// sit at the bottom.
	TopDown bool

	// Workers bounds the number of columns drawn at once.
	// Zero or less means runtime.NumCPU().
	Workers int
}

// DefaultOptions mirrors the defaults of the command line tool.
func DefaultOptions() Options {
	return Options{
		Height:    512,
		Threshold: DefaultThreshold,
	}
}

// Validate rejects options that cannot produce an image.
func (o Options) Validate() error {
	if o.Height <= 0 {
		return ErrInvalidHeight
	}
	if !(o.Threshold > 0) || math.IsInf(o.Threshold, 1) {
		return ErrInvalidThreshold
	}
	if o.LogMode && o.Mel {
		return ErrConflictingAxis
	}
	return nil
}

// Intensity maps a bin to a grey level: 0.5*log10(|bin|+1) clamped to
// threshold, scaled to [0, 255].
func Intensity(bin complex128, threshold float64) uint8 {
	val := 0.5 * math.Log10(cmplx.Abs(bin)+1)
	if val > threshold {
		val = threshold
	}
	return uint8(math.Round(255 * val / threshold))
}

// UsedBins is the number of low bins the log axis spreads over the image
// height, a quarter of the spectrum.
func UsedBins(spectrumLength int) int {
	return int(float64(spectrumLength) * 0.25)
}

// LinearBin maps row y in [1, height] to a bin, linearly over the lower half
// of the spectrum.
func LinearBin(y, height, spectrumLength int) int {
	ratio := float64(y) / float64(height)
	return clampBin(int(ratio*float64(spectrumLength)*0.5), spectrumLength)
}

// LogBin maps row y in [1, height] to a bin on a logarithmic axis spanning
// the lowest usedBins bins.
func LogBin(y, height, usedBins int) int {
	coef := (1 / math.Log(float64(height+1))) * float64(usedBins)
	return usedBins - 1 - int(coef*math.Log(float64(height+1-y)))
}

func clampBin(bin, spectrumLength int) int {
	if bin < 0 {
		return 0
	}
	if bin >= spectrumLength {
		return spectrumLength - 1
	}
	return bin
}

// RowBins returns the bin drawn on each row; index 0 is row y = 1, the lowest
// frequency row.
func RowBins(height, spectrumLength int, logMode bool) []int {
	bins := make([]int, height)
	used := UsedBins(spectrumLength)
	for y := 1; y <= height; y++ {
		if logMode {
			bins[y-1] = clampBin(LogBin(y, height, used), spectrumLength)
		} else {
			bins[y-1] = LinearBin(y, height, spectrumLength)
		}
	}
	return bins
}

// MelRowBins is RowBins for the mel axis.
func MelRowBins(height, spectrumLength, sampleRate int) []int {
	bins := make([]int, height)
	for y := 1; y <= height; y++ {
		bins[y-1] = MelBin(y, height, spectrumLength, sampleRate)
	}
	return bins
}

// Rasterize draws one image column per spectrogram column.
func Rasterize(ctx context.Context, s *spectrogram.Spectrogram, opts Options) (*image.RGBA, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if s == nil || len(s.Columns) == 0 || s.SpectrumLength() == 0 {
		return nil, ErrEmptySpectrogram
	}

	width, height := len(s.Columns), opts.Height
	logrus.WithFields(logrus.Fields{
		"function": "Rasterize",
		"width":    width,
		"height":   height,
		"log_mode": opts.LogMode,
		"mel":      opts.Mel,
	}).Info("Drawing")

	var bins []int
	if opts.Mel {
		bins = MelRowBins(height, s.SpectrumLength(), s.SampleRate)
	} else {
		bins = RowBins(height, s.SpectrumLength(), opts.LogMode)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for x := range s.Columns {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			col := s.Columns[x]
			for y := 1; y <= height; y++ {
				v := Intensity(col[bins[y-1]], opts.Threshold)
				row := height - y
				if opts.TopDown {
					row = y - 1
				}
				img.SetRGBA(x, row, color.RGBA{R: v, G: v, B: v, A: 255})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return img, nil
}
