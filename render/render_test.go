package render

import (
	"bytes"
	"context"
	"encoding/binary"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/spectrograph/spectrogram"
)

func flat(columns, bins int, v complex128) *spectrogram.Spectrogram {
	s := &spectrogram.Spectrogram{Columns: make([][]complex128, columns), SampleRate: 8000}
	for x := range s.Columns {
		s.Columns[x] = make([]complex128, bins)
		for k := range s.Columns[x] {
			s.Columns[x][k] = v
		}
	}
	return s
}

func TestIntensity(t *testing.T) {
	assert.Equal(t, uint8(0), Intensity(0, DefaultThreshold))
	assert.Equal(t, uint8(255), Intensity(complex(1e30, 0), DefaultThreshold))
	assert.Equal(t, uint8(255), Intensity(complex(99, 0), 1))
	// 0.5*log10(100) = 1, a quarter of threshold 4.
	assert.Equal(t, uint8(64), Intensity(complex(99, 0), 4))
	assert.Equal(t, Intensity(complex(3, 4), 3), Intensity(complex(5, 0), 3))
}

func TestIntensityMonotone(t *testing.T) {
	prev := uint8(0)
	for mag := 0.0; mag < 1e12; mag = mag*1.7 + 0.5 {
		v := Intensity(complex(0, mag), DefaultThreshold)
		require.GreaterOrEqual(t, v, prev, "magnitude %g", mag)
		prev = v
	}
	assert.Equal(t, uint8(102), Intensity(complex(1e8-1, 0), DefaultThreshold))
}

func TestRowBins(t *testing.T) {
	assert.Equal(t, []int{128, 256, 384, 512}, RowBins(4, 1024, false))
	assert.Equal(t, 256, UsedBins(1024))

	logBins := RowBins(4, 1024, true)
	assert.Equal(t, 35, logBins[0])
	assert.Equal(t, 255, logBins[3])
	for i := 1; i < len(logBins); i++ {
		assert.Greater(t, logBins[i], logBins[i-1])
	}
}

func TestRowBinsStayInRange(t *testing.T) {
	for _, n := range []int{1, 2, 4, 1024} {
		for _, h := range []int{1, 7, 512, 2000} {
			for _, logMode := range []bool{false, true} {
				for _, b := range RowBins(h, n, logMode) {
					require.GreaterOrEqual(t, b, 0)
					require.Less(t, b, n)
				}
			}
		}
	}
	for _, b := range RowBins(512, 1024, true) {
		assert.Less(t, b, UsedBins(1024))
	}
}

func TestRasterizeZero(t *testing.T) {
	for _, logMode := range []bool{false, true} {
		opts := DefaultOptions()
		opts.Height = 64
		opts.LogMode = logMode
		img, err := Rasterize(context.Background(), flat(10, 256, 0), opts)
		require.NoError(t, err)
		assert.Equal(t, 10, img.Bounds().Dx())
		assert.Equal(t, 64, img.Bounds().Dy())
		for x := 0; x < 10; x++ {
			for y := 0; y < 64; y++ {
				require.Equal(t, color.RGBA{A: 255}, img.RGBAAt(x, y))
			}
		}
	}
}

func TestRasterizeOrientation(t *testing.T) {
	s := flat(3, 16, 0)
	for x := range s.Columns {
		s.Columns[x][8] = complex(1e8, 0)
	}
	opts := DefaultOptions()
	opts.Height = 4
	opts.Threshold = 4

	img, err := Rasterize(context.Background(), s, opts)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), img.RGBAAt(1, 0).R, "highest row is drawn at the top")
	assert.Equal(t, uint8(0), img.RGBAAt(1, 3).R)

	opts.TopDown = true
	img, err = Rasterize(context.Background(), s, opts)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), img.RGBAAt(1, 3).R)
	assert.Equal(t, uint8(0), img.RGBAAt(1, 0).R)
}

func TestRasterizeErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Rasterize(ctx, &spectrogram.Spectrogram{}, DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptySpectrogram)

	_, err = Rasterize(ctx, flat(1, 4, 0), Options{Height: 0, Threshold: 1})
	assert.ErrorIs(t, err, ErrInvalidHeight)

	for _, th := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err = Rasterize(ctx, flat(1, 4, 0), Options{Height: 4, Threshold: th})
		assert.ErrorIs(t, err, ErrInvalidThreshold, "threshold %v", th)
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	img, err := Rasterize(cctx, flat(100, 64, 1), DefaultOptions())
	assert.Nil(t, img)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPNGSink(t *testing.T) {
	img, err := Rasterize(context.Background(), flat(5, 32, complex(1000, 0)), Options{Height: 8, Threshold: 2})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, PNGSink{Path: path}.Save(img))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	r, _, _, a := decoded.At(2, 3).RGBA()
	assert.Equal(t, uint32(img.RGBAAt(2, 3).R)*0x101, r)
	assert.Equal(t, uint32(0xffff), a)

	assert.Error(t, PNGSink{Path: filepath.Join(t.TempDir(), "missing", "out.png")}.Save(img))
}

func TestHalfDump(t *testing.T) {
	s := flat(3, 8, 0)
	s.Columns[1][2] = complex(999, 0)
	s.Columns[2][3] = complex(0, 9)

	var buf bytes.Buffer
	require.NoError(t, WriteHalf(&buf, s))
	assert.Equal(t, 4+12+3*4*2, buf.Len())

	hdr, m, err := ReadHalf(&buf)
	require.NoError(t, err)
	assert.Equal(t, HalfHeader{Columns: 3, Bins: 4, SampleRate: 8000}, hdr)
	require.Len(t, m, 3)
	assert.InDelta(t, 3.0, m[1][2], 1e-3)
	assert.InDelta(t, 1.0, m[2][3], 1e-3)
	assert.Zero(t, m[0][0])

	_, _, err = ReadHalf(bytes.NewReader([]byte("nope")))
	assert.ErrorIs(t, err, ErrBadHalfHeader)
	assert.ErrorIs(t, WriteHalf(&buf, &spectrogram.Spectrogram{}), ErrEmptySpectrogram)
}

func TestMelScale(t *testing.T) {
	assert.InDelta(t, 1000, HzToMel(1000), 0.1)
	for _, hz := range []float64{0, 50, 440, 8000, 22050} {
		assert.InDelta(t, hz, MelToHz(HzToMel(hz)), 1e-6)
	}

	bins := MelRowBins(64, 1024, 8000)
	assert.Equal(t, 512, bins[63], "top row reaches the Nyquist bin")
	for i := 1; i < len(bins); i++ {
		assert.GreaterOrEqual(t, bins[i], bins[i-1])
	}
	// Low rows are denser in frequency than on the linear axis.
	assert.Less(t, bins[31], LinearBin(32, 64, 1024))

	assert.Equal(t, LinearBin(3, 8, 64), MelBin(3, 8, 64, 0))
}

func TestMelConflictsWithLog(t *testing.T) {
	opts := DefaultOptions()
	opts.Mel = true
	require.NoError(t, opts.Validate())

	img, err := Rasterize(context.Background(), flat(2, 32, 0), opts)
	require.NoError(t, err)
	assert.Equal(t, 512, img.Bounds().Dy())

	opts.LogMode = true
	assert.ErrorIs(t, opts.Validate(), ErrConflictingAxis)
}

func TestReadHalfRejectsHugeHeader(t *testing.T) {
	header := func(h HalfHeader) *bytes.Buffer {
		var buf bytes.Buffer
		buf.WriteString("SPH1")
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, h))
		return &buf
	}

	tests := []struct {
		name    string
		hdr     HalfHeader
		wantErr error
	}{
		{"both maxed", HalfHeader{Columns: 0xFFFFFFFF, Bins: 0xFFFFFFFF}, ErrBadHalfHeader},
		{"too many bins", HalfHeader{Columns: 1, Bins: MaxHalfBins + 1}, ErrBadHalfHeader},
		{"no bins", HalfHeader{Columns: 1}, ErrBadHalfHeader},
		{"no columns", HalfHeader{Bins: 4}, ErrBadHalfHeader},
		{"columns beyond data", HalfHeader{Columns: 0xFFFFFFFF, Bins: MaxHalfBins}, io.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				m   [][]float32
				err error
			)
			require.NotPanics(t, func() {
				_, m, err = ReadHalf(header(tt.hdr))
			})
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	buf := header(HalfHeader{Columns: 2, Bins: 2})
	buf.Write([]byte{0, 0, 0, 0, 0})
	_, _, err := ReadHalf(buf)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
