package render

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"math/cmplx"

	"github.com/x448/float16"

	"github.com/neurlang/spectrograph/spectrogram"
)

var halfMagic = [4]byte{'S', 'P', 'H', '1'}

// ErrBadHalfHeader is returned by ReadHalf for input without a valid header.
var ErrBadHalfHeader = errors.New("not a half float spectrogram")

// HalfHeader precedes the matrix written by WriteHalf.
type HalfHeader struct {
	Columns    uint32
	Bins       uint32
	SampleRate uint32
}

// WriteHalf dumps log10(|bin|+1) for the lower half of every column as
// little-endian IEEE 754 half floats, column after column.
func WriteHalf(w io.Writer, s *spectrogram.Spectrogram) error {
	if s == nil || len(s.Columns) == 0 {
		return ErrEmptySpectrogram
	}
	bins := s.SpectrumLength() / 2
	if bins == 0 {
		bins = s.SpectrumLength()
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(halfMagic[:]); err != nil {
		return err
	}
	hdr := HalfHeader{
		Columns:    uint32(len(s.Columns)),
		Bins:       uint32(bins),
		SampleRate: uint32(s.SampleRate),
	}
	if err := binary.Write(bw, binary.LittleEndian, hdr); err != nil {
		return err
	}

	var buf [2]byte
	for _, col := range s.Columns {
		for k := 0; k < bins; k++ {
			v := float16.Fromfloat32(float32(math.Log10(cmplx.Abs(col[k]) + 1)))
			binary.LittleEndian.PutUint16(buf[:], v.Bits())
			if _, err := bw.Write(buf[:]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// MaxHalfBins bounds the bins per column ReadHalf accepts.
const MaxHalfBins = 1 << 24

// ReadHalf loads a matrix written by WriteHalf. Columns are read one at a
// time, so a header claiming more data than the input holds fails with a
// read error instead of a large allocation.
func ReadHalf(r io.Reader) (HalfHeader, [][]float32, error) {
	var magic [4]byte
	var hdr HalfHeader
	if _, err := io.ReadFull(r, magic[:]); err != nil || magic != halfMagic {
		return hdr, nil, ErrBadHalfHeader
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return hdr, nil, ErrBadHalfHeader
	}
	if hdr.Columns == 0 || hdr.Bins == 0 || hdr.Bins > MaxHalfBins {
		return hdr, nil, ErrBadHalfHeader
	}

	raw := make([]uint16, hdr.Bins)
	var out [][]float32
	for x := uint32(0); x < hdr.Columns; x++ {
		if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return hdr, nil, err
		}
		col := make([]float32, hdr.Bins)
		for k, b := range raw {
			col[k] = float16.Frombits(b).Float32()
		}
		out = append(out, col)
	}
	return hdr, out, nil
}
