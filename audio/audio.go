package audio

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	// ErrFileNotLoaded indicates the file could not be opened or decoded.
	ErrFileNotLoaded = errors.New("audio file not loaded")

	// ErrUnsupportedFormat indicates no decoder is registered for the extension.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrEmptyAudio indicates the file decoded to zero frames.
	ErrEmptyAudio = errors.New("audio file has no samples")
)

// LoadError is returned by Load for any source that cannot feed a spectrogram.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Waveform is a decoded recording. Samples are interleaved across channels.
type Waveform struct {
	Samples    []int16
	SampleRate int
	Channels   int
	Frames     int
}

// Duration is the length of the recording in seconds.
func (w *Waveform) Duration() float64 {
	if w.SampleRate == 0 {
		return 0
	}
	return float64(w.Frames) / float64(w.SampleRate)
}

// MaxFrequency is the Nyquist frequency.
func (w *Waveform) MaxFrequency() float64 {
	return float64(w.SampleRate) * 0.5
}

// Decoder reads one container format.
type Decoder interface {
	Decode(path string) (*Waveform, error)
}

var (
	decodersMu sync.RWMutex
	decoders   = map[string]Decoder{
		".wav":  WAVDecoder{},
		".wave": WAVDecoder{},
		".flac": FLACDecoder{},
	}
)

// Register installs d for files ending in ext (for example ".ogg").
func Register(ext string, d Decoder) {
	decodersMu.Lock()
	defer decodersMu.Unlock()
	decoders[strings.ToLower(ext)] = d
}

// Load decodes path with the decoder registered for its extension.
func Load(path string) (*Waveform, error) {
	ext := strings.ToLower(filepath.Ext(path))

	decodersMu.RLock()
	d, ok := decoders[ext]
	decodersMu.RUnlock()
	if !ok {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)}
	}

	logrus.WithFields(logrus.Fields{
		"function": "Load",
		"path":     path,
	}).Info("Reading in file")

	w, err := d.Decode(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if w.Frames == 0 || len(w.Samples) == 0 {
		return nil, &LoadError{Path: path, Err: ErrEmptyAudio}
	}

	logrus.WithFields(logrus.Fields{
		"function":    "Load",
		"length_s":    int(w.Duration()),
		"sample_rate": w.SampleRate,
		"channels":    w.Channels,
		"data_size":   len(w.Samples),
	}).Info("File loaded")
	return w, nil
}

// toInt16 converts a sample in [-1, 1] to 16 bit PCM.
func toInt16(v float64) int16 {
	s := math.Round(v * 32768)
	if s > math.MaxInt16 {
		return math.MaxInt16
	}
	if s < math.MinInt16 {
		return math.MinInt16
	}
	return int16(s)
}

// shiftTo16 rescales a PCM sample of the given bit depth to 16 bits.
func shiftTo16(v int32, bits int) int16 {
	switch {
	case bits > 16:
		return int16(v >> uint(bits-16))
	case bits < 16:
		return int16(v << uint(16-bits))
	}
	return int16(v)
}
