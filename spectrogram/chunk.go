package spectrogram

import "math"

// Step returns the hop between consecutive segment starts,
// floor(chunkSize * (1 - overlap)).
func Step(chunkSize int, overlap float64) (int, error) {
	if chunkSize <= 0 {
		return 0, &ConfigError{Field: "chunk size", Value: chunkSize, Err: ErrInvalidChunkSize}
	}
	if math.IsNaN(overlap) || overlap < 0 || overlap >= 1 {
		return 0, &ConfigError{Field: "overlap", Value: overlap, Err: ErrInvalidOverlap}
	}
	step := int(float64(chunkSize) * (1 - overlap))
	if step < 1 {
		return 0, &ConfigError{Field: "step", Value: step, Err: ErrInvalidStep}
	}
	return step, nil
}

// PaddedLength is the smallest length >= length at which segments of
// chunkSize, started every step samples, end exactly.
func PaddedLength(length, chunkSize, step int) int {
	size := 0
	for size+chunkSize < length {
		size += step
	}
	if size != length {
		size += chunkSize
	}
	return size
}

// Pad returns a copy of samples extended with zeros to PaddedLength.
func Pad(samples []int16, chunkSize, step int) []int16 {
	out := make([]int16, PaddedLength(len(samples), chunkSize, step))
	copy(out, samples)
	return out
}

// ColumnCount is the number of segments that fit in a padded waveform.
func ColumnCount(paddedLength, chunkSize, step int) int {
	if paddedLength < chunkSize {
		return 0
	}
	return (paddedLength-chunkSize)/step + 1
}

// segment copies samples[offset:offset+chunkSize] as complex values.
func segment(samples []int16, offset, chunkSize int) []complex128 {
	out := make([]complex128, chunkSize)
	for j, v := range samples[offset : offset+chunkSize] {
		out[j] = complex(float64(v), 0)
	}
	return out
}
