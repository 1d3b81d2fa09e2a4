package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWAVRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		channels int
	}{
		{"mono", 1},
		{"stereo", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tone := DefaultTone()
			tone.Seconds = 0.1
			tone.Channels = tt.channels
			path := filepath.Join(t.TempDir(), "tone.wav")
			require.NoError(t, WriteTone(path, tone))

			w, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, 44100, w.SampleRate)
			assert.Equal(t, tt.channels, w.Channels)
			assert.Equal(t, 4410, w.Frames)
			assert.Equal(t, tone.Samples(), w.Samples)
			assert.InDelta(t, 0.1, w.Duration(), 1e-9)
			assert.Equal(t, 22050.0, w.MaxFrequency())
		})
	}
}

func TestWAVSamplesExact(t *testing.T) {
	want := []int16{1000, -1000, 16384, -16384, 32767, -32768, 2, -2, 0, 1}
	path := filepath.Join(t.TempDir(), "exact.wav")
	require.NoError(t, WriteWAV(path, &Waveform{Samples: want, SampleRate: 8000, Channels: 2}))

	w, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, w.Samples)
	assert.Equal(t, 5, w.Frames)
}

func TestPCMFromBeep(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		beep      float64
		want      int16
	}{
		{"8 bit silence", 1, 128.0/255*2 - 1, 0},
		{"8 bit max", 1, 1, 127 << 8},
		{"8 bit min", 1, -1, -128 << 8},
		{"16 bit", 2, 1000.0 / (1<<16 - 1), 1000},
		{"16 bit min", 2, -32768.0 / (1<<16 - 1), -32768},
		{"24 bit", 3, float64(0x123456) / (1<<24 - 1), 0x1234},
		{"24 bit negative", 3, -256.0 / (1<<24 - 1), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pcm, err := pcmFromBeep(tt.precision)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pcm(tt.beep))
		})
	}

	_, err := pcmFromBeep(4)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestToneSamples(t *testing.T) {
	tone := Tone{Frequency: 0, SampleRate: 8000, Seconds: 0.5, Amplitude: 1, Channels: 2}
	s := tone.Samples()
	assert.Len(t, s, 8000)
	for _, v := range s {
		require.Zero(t, v)
	}

	tone = Tone{Frequency: 2000, SampleRate: 8000, Seconds: 1, Amplitude: 1, Channels: 1}
	s = tone.Samples()
	// Quarter period of full scale hits the positive clamp.
	assert.Equal(t, int16(32767), s[1])
	assert.Equal(t, int16(-32768), s[3])
}

func TestWriteToneRejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	for _, tone := range []Tone{
		{Frequency: 440, SampleRate: 0, Seconds: 1, Amplitude: 0.5, Channels: 1},
		{Frequency: 440, SampleRate: 8000, Seconds: 0, Amplitude: 0.5, Channels: 1},
		{Frequency: 440, SampleRate: 8000, Seconds: 1, Amplitude: 2, Channels: 1},
		{Frequency: 440, SampleRate: 8000, Seconds: 1, Amplitude: 0.5, Channels: 0},
	} {
		assert.ErrorIs(t, WriteTone(path, tone), ErrInvalidTone)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.wav")
	require.NoError(t, os.WriteFile(garbage, []byte("definitely not a riff header"), 0o644))
	badFlac := filepath.Join(dir, "garbage.flac")
	require.NoError(t, os.WriteFile(badFlac, []byte("fLaX"), 0o644))

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"missing wav", filepath.Join(dir, "missing.wav"), ErrFileNotLoaded},
		{"missing flac", filepath.Join(dir, "missing.flac"), ErrFileNotLoaded},
		{"garbage wav", garbage, ErrFileNotLoaded},
		{"garbage flac", badFlac, ErrFileNotLoaded},
		{"unknown extension", filepath.Join(dir, "song.mp3"), ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Load(tt.path)
			assert.Nil(t, w)
			assert.ErrorIs(t, err, tt.wantErr)

			var lerr *LoadError
			require.ErrorAs(t, err, &lerr)
			assert.Equal(t, tt.path, lerr.Path)
		})
	}
}

type emptyDecoder struct{}

func (emptyDecoder) Decode(string) (*Waveform, error) {
	return &Waveform{SampleRate: 8000, Channels: 1}, nil
}

func TestLoadEmpty(t *testing.T) {
	Register(".EMPTY", emptyDecoder{})
	w, err := Load("silence.empty")
	assert.Nil(t, w)
	assert.ErrorIs(t, err, ErrEmptyAudio)
}

func TestShiftTo16(t *testing.T) {
	assert.Equal(t, int16(0x1234), shiftTo16(0x123456, 24))
	assert.Equal(t, int16(-256), shiftTo16(-1, 8))
	assert.Equal(t, int16(-5), shiftTo16(-5, 16))
}
