package spectrogram

import (
	"context"

	"github.com/r9y9/gossp/stft"

	"github.com/neurlang/spectrograph/window"
)

// computeGossp runs the padded waveform through gossp's short-time Fourier
// transform with the configured taper. Options.Validate only admits power of
// two chunk sizes here, so every frame is already a full radix-2 length.
func computeGossp(ctx context.Context, padded []int16, chunkSize, step int, w window.Func) ([][]complex128, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(padded) < chunkSize {
		return [][]complex128{}, nil
	}

	x := make([]float64, len(padded))
	for i, v := range padded {
		x[i] = float64(v)
	}

	s := stft.New(step, chunkSize)
	s.Window = window.Coefficients(w, chunkSize)

	columns := s.STFT(x)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return columns, nil
}
