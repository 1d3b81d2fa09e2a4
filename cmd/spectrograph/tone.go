package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/neurlang/spectrograph/audio"
)

var tone = audio.DefaultTone()

var toneCmd = &cobra.Command{
	Use:   "tone <wav_file>",
	Short: "Write a sine test tone as 16 bit WAV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := audio.WriteTone(args[0], tone); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"function":  "tone",
			"path":      args[0],
			"frequency": tone.Frequency,
			"seconds":   tone.Seconds,
		}).Info("Tone written")
		return nil
	},
}

func init() {
	f := toneCmd.Flags()
	f.Float64Var(&tone.Frequency, "freq", tone.Frequency, "frequency in Hz")
	f.IntVar(&tone.SampleRate, "rate", tone.SampleRate, "sample rate in Hz")
	f.Float64Var(&tone.Seconds, "seconds", tone.Seconds, "duration")
	f.Float64Var(&tone.Amplitude, "amplitude", tone.Amplitude, "amplitude relative to full scale")
	f.IntVar(&tone.Channels, "channels", tone.Channels, "number of identical channels")
}
