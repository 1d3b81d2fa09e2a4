package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/neurlang/spectrograph/config"
)

var (
	configFile string
	v          = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "spectrograph",
	Short: "Audio to spectrogram converter",
	Long: `spectrograph draws the time-frequency picture of a recording.

WAV and FLAC input are supported; the image is written as PNG.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (yaml)")
	rootCmd.PersistentFlags().String("log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false,
		"shorthand for --log-level debug")

	bind(v, "log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	bind(v, "verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(renderCmd, toneCmd)
}

// bind ties a flag to a config key. Flags override the config file and the
// environment only when set on the command line.
func bind(v *viper.Viper, key string, f *pflag.Flag) {
	if err := v.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

// initConfig reads the config file if any and sets up logging.
func initConfig() error {
	if configFile != "" {
		if err := config.ReadFile(v, configFile); err != nil {
			return err
		}
	}

	level, err := logrus.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return err
	}
	if v.GetBool("verbose") {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}
