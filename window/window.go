package window

import (
	"errors"
	"math"
	"sort"
	"strings"
	"sync"

	dspwindow "github.com/mjibson/go-dsp/window"
)

// Func is a tapering strategy. Weight must be pure and defined for
// 0 <= index < length.
type Func interface {
	Weight(index, length int) float64
}

// ErrUnknownWindow is returned by ByName for names not in Names().
var ErrUnknownWindow = errors.New("unknown window function")

// Hann is the raised cosine taper, the default strategy.
type Hann struct{}

func (Hann) Weight(index, length int) float64 {
	if length <= 1 {
		return 1
	}
	return 0.5 * (1 - math.Cos(2*math.Pi*float64(index)/float64(length-1)))
}

// Hamming is the raised cosine with a non-zero pedestal.
type Hamming struct{}

func (Hamming) Weight(index, length int) float64 {
	if length <= 1 {
		return 1
	}
	return 0.54 - 0.46*math.Cos(2*math.Pi*float64(index)/float64(length-1))
}

// Rectangular leaves samples untouched.
type Rectangular struct{}

func (Rectangular) Weight(index, length int) float64 {
	return 1
}

// Table answers Weight from coefficients generated once per length by a
// go-dsp window generator. Safe for concurrent use.
type Table struct {
	name     string
	generate func(int) []float64
	tables   sync.Map // int -> []float64
}

// NewTable wraps a generator returning the full coefficient slice for a length.
func NewTable(name string, generate func(int) []float64) *Table {
	return &Table{name: name, generate: generate}
}

func (t *Table) Weight(index, length int) float64 {
	if length <= 1 {
		return 1
	}
	if c, ok := t.tables.Load(length); ok {
		return c.([]float64)[index]
	}
	c, _ := t.tables.LoadOrStore(length, t.generate(length))
	return c.([]float64)[index]
}

// Name returns the registry name of the table.
func (t *Table) Name() string {
	return t.name
}

var (
	blackman = NewTable("blackman", dspwindow.Blackman)
	bartlett = NewTable("bartlett", dspwindow.Bartlett)
	flatTop  = NewTable("flattop", dspwindow.FlatTop)
)

// Blackman returns the shared tabulated Blackman window.
func Blackman() *Table { return blackman }

// Bartlett returns the shared tabulated triangular window.
func Bartlett() *Table { return bartlett }

// FlatTop returns the shared tabulated flat top window.
func FlatTop() *Table { return flatTop }

var registry = map[string]Func{
	"hann":        Hann{},
	"hamming":     Hamming{},
	"rectangular": Rectangular{},
	"blackman":    blackman,
	"bartlett":    bartlett,
	"flattop":     flatTop,
}

// ByName selects a strategy. Names are case insensitive; "hanning" and "none"
// are accepted as aliases of hann and rectangular.
func ByName(name string) (Func, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "", "hanning":
		return Hann{}, nil
	case "none", "boxcar":
		return Rectangular{}, nil
	default:
		if f, ok := registry[n]; ok {
			return f, nil
		}
	}
	return nil, ErrUnknownWindow
}

// Names lists the registered strategy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Coefficients materialises f for a window of n samples.
func Coefficients(f Func, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f.Weight(i, n)
	}
	return out
}
