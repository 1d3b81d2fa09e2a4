package render

import "math"

const (
	melBreakFrequencyHertz = 700.0
	melHighFrequencyQ      = 1127.0
)

// HzToMel converts a frequency to the mel scale.
func HzToMel(hz float64) float64 {
	return melHighFrequencyQ * math.Log(1.0+(hz/melBreakFrequencyHertz))
}

// MelToHz is the inverse of HzToMel.
func MelToHz(mel float64) float64 {
	return melBreakFrequencyHertz * (math.Exp(mel/melHighFrequencyQ) - 1.0)
}

// MelBin maps row y in [1, height] to a bin so that rows are evenly spaced in
// mel between 0 Hz and the Nyquist frequency.
func MelBin(y, height, spectrumLength, sampleRate int) int {
	if sampleRate <= 0 {
		return LinearBin(y, height, spectrumLength)
	}
	nyquist := float64(sampleRate) / 2
	hz := MelToHz(float64(y) / float64(height) * HzToMel(nyquist))
	bin := int(math.Round(hz * float64(spectrumLength) / float64(sampleRate)))
	return clampBin(bin, spectrumLength)
}
