// Package audio loads recordings as interleaved 16 bit samples.
//
// WAV files are decoded with github.com/faiface/beep and FLAC files with
// github.com/mewkiz/flac. Load picks the decoder from the file extension and
// reports every failure as a *LoadError. WriteTone produces sine wave WAV
// files, handy as test signals.
package audio
