// Command spectrograph converts audio files (WAV/FLAC) to spectrogram images (PNG).
//
// The recording is cut into overlapping windows, each window is tapered and
// transformed with a radix-2 FFT, and every spectrum becomes one column of a
// grayscale image with time running left to right and frequency bottom to top.
//
// Usage:
//
//	spectrograph render <audio_file> [flags]
//	spectrograph tone <wav_file> [flags]
//
// The output PNG file is named <audio_file>.png unless -o is given. Settings
// can also come from a YAML file (--config) or SPECTROGRAPH_* environment
// variables.
//
// Supported input formats: .wav, .flac
package main
