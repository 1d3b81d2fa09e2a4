// Package window provides tapering functions applied to each analysis segment
// before it is transformed.
//
// A window is anything that can answer Weight(index, length). The package
// ships closed-form strategies (Hann, Hamming, Rectangular) and tabulated ones
// whose coefficients come from github.com/mjibson/go-dsp/window (Blackman,
// Bartlett, FlatTop). Strategies are picked by name at configuration time with
// ByName.
package window
