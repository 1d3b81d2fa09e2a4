package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
)

// FLACDecoder reads FLAC files through mewkiz/flac.
type FLACDecoder struct{}

func (FLACDecoder) Decode(path string) (*Waveform, error) {
	stream, err := flac.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileNotLoaded, err)
	}
	defer stream.Close()

	channels := int(stream.Info.NChannels)
	bits := int(stream.Info.BitsPerSample)
	w := &Waveform{
		SampleRate: int(stream.Info.SampleRate),
		Channels:   channels,
		Samples:    make([]int16, 0, int(stream.Info.NSamples)*channels),
	}

	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFileNotLoaded, err)
		}
		n := len(frame.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			for c := 0; c < channels; c++ {
				w.Samples = append(w.Samples, shiftTo16(frame.Subframes[c].Samples[i], bits))
			}
		}
		w.Frames += n
	}
	return w, nil
}
