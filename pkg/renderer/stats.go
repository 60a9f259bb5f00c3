package renderer

import (
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"
)

// RenderStats contains statistics about a finished render pass
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera rays traced
	SamplesPerPixel int           // Rays per pixel
	Workers         int           // Goroutines that shared the rows
	CacheLineSize   int           // Row alignment in bytes
	Elapsed         time.Duration // Wall clock time of the pass
	MeanLuminance   float64       // Mean pixel luminance
	LuminanceStdDev float64       // Sample standard deviation of pixel luminance
}

// MarshalZerologObject lets stats be logged with Logger.Info().EmbedObject
func (s RenderStats) MarshalZerologObject(e *zerolog.Event) {
	e.Int("width", s.Width).
		Int("height", s.Height).
		Int("pixels", s.TotalPixels).
		Int("samples", s.TotalSamples).
		Int("spp", s.SamplesPerPixel).
		Int("workers", s.Workers).
		Int("cacheLine", s.CacheLineSize).
		Dur("elapsed", s.Elapsed).
		Float64("meanLuminance", s.MeanLuminance).
		Float64("luminanceStdDev", s.LuminanceStdDev)
}

// luminanceStats returns the mean and sample standard deviation of the
// luminance of every pixel. A single pixel has no spread.
func luminanceStats(img *Image) (mean, stdDev float64) {
	values := make([]float64, 0, img.Width()*img.Height())
	for y := 0; y < img.Height(); y++ {
		for _, c := range img.Row(y) {
			values = append(values, float64(c.Luminance()))
		}
	}

	if len(values) < 2 {
		if len(values) == 1 {
			return values[0], 0
		}
		return 0, 0
	}
	return stat.MeanStdDev(values, nil)
}
