package audio

import (
	"fmt"
	"math"
	"os"

	"github.com/faiface/beep/wav"
)

// WAVDecoder reads RIFF WAVE files through beep.
type WAVDecoder struct{}

func (WAVDecoder) Decode(path string) (*Waveform, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileNotLoaded, err)
	}
	defer file.Close()

	stream, format, err := wav.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileNotLoaded, err)
	}
	defer stream.Close()

	channels := format.NumChannels
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, channels)
	}

	pcm, err := pcmFromBeep(format.Precision)
	if err != nil {
		return nil, err
	}

	w := &Waveform{
		SampleRate: int(format.SampleRate),
		Channels:   channels,
		Samples:    make([]int16, 0, stream.Len()*channels),
	}

	// beep always yields stereo frames; mono files repeat the channel.
	samples := make([][2]float64, 4096)
	for {
		n, ok := stream.Stream(samples)
		for _, frame := range samples[:n] {
			for c := 0; c < channels; c++ {
				w.Samples = append(w.Samples, pcm(frame[c]))
			}
		}
		w.Frames += n
		if !ok {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileNotLoaded, err)
	}
	return w, nil
}

// pcmFromBeep undoes the float scaling beep's WAV decoder applies for a
// sample width of precision bytes and narrows the result to 16 bits.
func pcmFromBeep(precision int) (func(float64) int16, error) {
	switch precision {
	case 1:
		// beep maps unsigned u to u/255*2-1.
		return func(v float64) int16 {
			u := math.Round((v + 1) / 2 * (1<<8 - 1))
			return shiftTo16(int32(u)-128, 8)
		}, nil
	case 2:
		return func(v float64) int16 {
			return shiftTo16(int32(math.Round(v*(1<<16-1))), 16)
		}, nil
	case 3:
		return func(v float64) int16 {
			return shiftTo16(int32(math.Round(v*(1<<24-1))), 24)
		}, nil
	}
	return nil, fmt.Errorf("%w: %d byte samples", ErrUnsupportedFormat, precision)
}
