// Package render turns a spectrogram into a grayscale raster and writes it out.
//
// Every image row is assigned one frequency bin: linearly over the lower half
// of the spectrum, on a logarithmic axis over its lowest quarter, or evenly
// spaced in mel up to the Nyquist frequency. Every pixel is the log magnitude
// of that bin clamped to a threshold. PNGSink saves the raster; WriteHalf
// dumps the magnitudes as half floats.
package render
