package render

import (
	"image"
	"image/png"
	"os"

	"github.com/sirupsen/logrus"
)

// Sink persists a finished raster.
type Sink interface {
	Save(img image.Image) error
}

// PNGSink writes the raster to Path as PNG.
type PNGSink struct {
	Path string
}

func (p PNGSink) Save(img image.Image) error {
	logrus.WithFields(logrus.Fields{
		"function": "PNGSink.Save",
		"path":     p.Path,
	}).Info("Saving to file")

	f, err := os.Create(p.Path)
	if err != nil {
		return err
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
