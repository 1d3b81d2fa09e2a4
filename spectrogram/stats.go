package spectrogram

import (
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// Stats summarises where the energy of a spectrogram sits. Only the lower
// half of each spectrum is considered, the upper half mirrors it for real
// input.
type Stats struct {
	// ColumnEnergy is the sum of squared magnitudes per column.
	ColumnEnergy []float64
	// PeakBin is the loudest bin per column.
	PeakBin []int
	// LoudestColumn indexes the column with the most energy, -1 when empty.
	LoudestColumn int
	// PeakFrequency is the frequency of the loudest bin of LoudestColumn, in Hz.
	PeakFrequency float64
	// TotalEnergy sums ColumnEnergy.
	TotalEnergy float64
}

// Magnitudes returns |bin| for the lower half of column x.
func (s *Spectrogram) Magnitudes(x int) []float64 {
	col := s.Columns[x]
	mags := make([]float64, len(col)/2)
	for k := range mags {
		mags[k] = cmplx.Abs(col[k])
	}
	return mags
}

// Stats computes per-column energy and peak bins.
func (s *Spectrogram) Stats() Stats {
	st := Stats{
		ColumnEnergy:  make([]float64, len(s.Columns)),
		PeakBin:       make([]int, len(s.Columns)),
		LoudestColumn: -1,
	}
	if len(s.Columns) == 0 || s.SpectrumLength() < 2 {
		return st
	}

	for x := range s.Columns {
		mags := s.Magnitudes(x)
		st.ColumnEnergy[x] = floats.Dot(mags, mags)
		st.PeakBin[x] = floats.MaxIdx(mags)
	}
	st.TotalEnergy = floats.Sum(st.ColumnEnergy)
	st.LoudestColumn = floats.MaxIdx(st.ColumnEnergy)
	st.PeakFrequency = s.BinFrequency(st.PeakBin[st.LoudestColumn])
	return st
}
