package audio

import (
	"errors"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrInvalidTone indicates tone parameters that cannot be rendered.
var ErrInvalidTone = errors.New("invalid tone parameters")

// Tone describes a sine wave written as 16 bit PCM.
type Tone struct {
	Frequency  float64
	SampleRate int
	Seconds    float64
	// Amplitude is relative to full scale, in (0, 1].
	Amplitude float64
	Channels  int
}

// DefaultTone is a one second 440 Hz mono tone at half scale.
func DefaultTone() Tone {
	return Tone{
		Frequency:  440,
		SampleRate: 44100,
		Seconds:    1,
		Amplitude:  0.5,
		Channels:   1,
	}
}

// Samples renders the tone, interleaving identical channels.
func (t Tone) Samples() []int16 {
	frames := int(t.Seconds * float64(t.SampleRate))
	out := make([]int16, 0, frames*t.Channels)
	for i := 0; i < frames; i++ {
		v := toInt16(t.Amplitude * math.Sin(2*math.Pi*t.Frequency*float64(i)/float64(t.SampleRate)))
		for c := 0; c < t.Channels; c++ {
			out = append(out, v)
		}
	}
	return out
}

// WriteTone renders t into a WAV file at path.
func WriteTone(path string, t Tone) error {
	if t.SampleRate <= 0 || t.Seconds <= 0 || t.Channels < 1 ||
		t.Amplitude <= 0 || t.Amplitude > 1 || t.Frequency < 0 {
		return ErrInvalidTone
	}
	return WriteWAV(path, &Waveform{
		Samples:    t.Samples(),
		SampleRate: t.SampleRate,
		Channels:   t.Channels,
	})
}

// WriteWAV encodes w as 16 bit PCM.
func WriteWAV(path string, w *Waveform) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	data := make([]int, len(w.Samples))
	for i, v := range w.Samples {
		data[i] = int(v)
	}
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: w.Channels, SampleRate: w.SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	enc := wav.NewEncoder(f, w.SampleRate, 16, w.Channels, 1)
	if err := enc.Write(buf); err != nil {
		f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
