package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Report describes a finished run. It is written next to the image on request.
type Report struct {
	Input struct {
		Path       string  `yaml:"path"`
		SampleRate int     `yaml:"sample_rate"`
		Channels   int     `yaml:"channels"`
		Samples    int     `yaml:"samples"`
		Seconds    float64 `yaml:"seconds"`
	} `yaml:"input"`

	Analysis struct {
		ChunkSize      int     `yaml:"chunk_size"`
		Overlap        float64 `yaml:"overlap"`
		Step           int     `yaml:"step"`
		PaddedLength   int     `yaml:"padded_length"`
		Columns        int     `yaml:"columns"`
		SpectrumLength int     `yaml:"spectrum_length"`
		Window         string  `yaml:"window"`
		Engine         string  `yaml:"engine"`
		Backend        string  `yaml:"backend"`
		PeakFrequency  float64 `yaml:"peak_frequency_hz"`
		LoudestColumn  int     `yaml:"loudest_column"`
	} `yaml:"analysis"`

	Image struct {
		Path      string  `yaml:"path"`
		Width     int     `yaml:"width"`
		Height    int     `yaml:"height"`
		LogMode   bool    `yaml:"log_mode"`
		Mel       bool    `yaml:"mel"`
		Threshold float64 `yaml:"threshold"`
	} `yaml:"image"`

	HalfOutput string `yaml:"half_output,omitempty"`
}

// WriteReport marshals r as YAML to path.
func WriteReport(path string, r *Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
