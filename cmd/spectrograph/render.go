package main

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/neurlang/spectrograph/config"
	"github.com/neurlang/spectrograph/fft"
	"github.com/neurlang/spectrograph/pipeline"
	"github.com/neurlang/spectrograph/spectrogram"
	"github.com/neurlang/spectrograph/window"
)

var renderCmd = &cobra.Command{
	Use:   "render <audio_file>",
	Short: "Render a WAV or FLAC file as a spectrogram PNG",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v.Set("input", resolveInput(args[0]))

		cfg, err := config.Load(v)
		if err != nil {
			return err
		}
		_, err = pipeline.Run(cmd.Context(), cfg)
		return err
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringP("output", "o", "", "output PNG (default <audio_file>.png)")
	f.Int("chunk", 1024, "samples per analysis window")
	f.Float64("overlap", 0.5, "fraction of overlap between windows, in [0, 1)")
	f.String("window", "hann", "window function ("+strings.Join(window.Names(), ", ")+")")
	f.String("engine", "iterative", "fft engine ("+strings.Join(fft.EngineNames(), ", ")+")")
	f.String("backend", "radix2", "spectrogram backend ("+strings.Join(spectrogram.BackendNames(), ", ")+")")
	f.Int("workers", 0, "parallel workers (0 = number of CPUs)")
	f.Bool("no-cache", false, "compute every twiddle factor instead of memoising them")
	f.Int("width", 1024, "nominal image width, kept for config compatibility")
	f.Int("height", 512, "image height in pixels")
	f.Bool("log", false, "logarithmic frequency axis")
	f.Bool("mel", false, "mel scaled frequency axis")
	f.Float64("threshold", 10, "log magnitude mapped to white")
	f.Bool("top-down", false, "draw low frequencies at the top")
	f.String("half", "", "also dump magnitudes as half floats to this file")
	f.String("report", "", "write a YAML run report to this file")

	for key, name := range map[string]string{
		"output":      "output",
		"chunk_size":  "chunk",
		"overlap":     "overlap",
		"window":      "window",
		"engine":      "engine",
		"backend":     "backend",
		"workers":     "workers",
		"no_cache":    "no-cache",
		"width":       "width",
		"height":      "height",
		"log_mode":    "log",
		"mel":         "mel",
		"threshold":   "threshold",
		"top_down":    "top-down",
		"half_output": "half",
		"report":      "report",
	} {
		bind(v, key, f.Lookup(name))
	}
}

// resolveInput accepts a path with a .wav or .flac suffix, or a base name to
// which .wav is appended.
func resolveInput(name string) string {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".wav") || strings.HasSuffix(lower, ".flac") {
		return name
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}
	logrus.WithFields(logrus.Fields{
		"function": "resolveInput",
		"name":     name,
	}).Debugf("No extension, trying %s.wav", name)
	return name + ".wav"
}
