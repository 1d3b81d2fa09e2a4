// Package pipeline runs one audio file through analysis and drawing.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/neurlang/spectrograph/audio"
	"github.com/neurlang/spectrograph/config"
	"github.com/neurlang/spectrograph/render"
	"github.com/neurlang/spectrograph/spectrogram"
)

// Run loads cfg.Input, computes its spectrogram and saves the image, plus the
// optional half float dump and YAML report. Configuration and load errors are
// returned before any spectrum is computed.
func Run(ctx context.Context, cfg *config.Config) (*config.Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, _ := cfg.SpectrogramOptions()

	wave, err := audio.Load(cfg.Input)
	if err != nil {
		return nil, err
	}

	s, err := spectrogram.Compute(ctx, wave.Samples, wave.SampleRate, opts)
	if err != nil {
		return nil, err
	}

	img, err := render.Rasterize(ctx, s, cfg.RenderOptions())
	if err != nil {
		return nil, err
	}
	out := cfg.OutputPath()
	if err := (render.PNGSink{Path: out}).Save(img); err != nil {
		return nil, fmt.Errorf("saving image: %w", err)
	}

	if cfg.HalfOutput != "" {
		if err := writeHalf(cfg.HalfOutput, s); err != nil {
			return nil, fmt.Errorf("saving half float dump: %w", err)
		}
	}

	report := buildReport(cfg, wave, s, out)
	if cfg.Report != "" {
		if err := config.WriteReport(cfg.Report, report); err != nil {
			return nil, fmt.Errorf("saving report: %w", err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"function":  "Run",
		"output":    out,
		"columns":   len(s.Columns),
		"peak_hz":   report.Analysis.PeakFrequency,
		"step":      s.Step,
		"padded_to": s.PaddedLength,
	}).Info("Spectrogram written")
	return report, nil
}

func writeHalf(path string, s *spectrogram.Spectrogram) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.WriteHalf(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func buildReport(cfg *config.Config, wave *audio.Waveform, s *spectrogram.Spectrogram, out string) *config.Report {
	st := s.Stats()

	var r config.Report
	r.Input.Path = cfg.Input
	r.Input.SampleRate = wave.SampleRate
	r.Input.Channels = wave.Channels
	r.Input.Samples = len(wave.Samples)
	r.Input.Seconds = wave.Duration()

	r.Analysis.ChunkSize = s.ChunkSize
	r.Analysis.Overlap = cfg.Overlap
	r.Analysis.Step = s.Step
	r.Analysis.PaddedLength = s.PaddedLength
	r.Analysis.Columns = len(s.Columns)
	r.Analysis.SpectrumLength = s.SpectrumLength()
	r.Analysis.Window = cfg.Window
	r.Analysis.Engine = cfg.Engine
	r.Analysis.Backend = cfg.Backend
	r.Analysis.PeakFrequency = st.PeakFrequency
	r.Analysis.LoudestColumn = st.LoudestColumn

	r.Image.Path = out
	r.Image.Width = len(s.Columns)
	r.Image.Height = cfg.Height
	r.Image.LogMode = cfg.LogMode
	r.Image.Mel = cfg.Mel
	r.Image.Threshold = cfg.Threshold

	r.HalfOutput = cfg.HalfOutput
	return &r
}
