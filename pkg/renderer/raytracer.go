package renderer

import (
	"errors"
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/rs/zerolog"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
)

// HitEpsilon is the minimum ray parameter accepted as a hit. It keeps
// scattered rays from re-hitting the surface they leave.
const HitEpsilon core.Scalar = 0.001

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCameraConfig() CameraConfig
	GetBackgroundColors() (topColor, bottomColor core.Color)
	GetWorld() geometry.Shape
}

// Options control a render pass
type Options struct {
	Width    int
	Height   int
	Workers  int    // 0 = runtime.NumCPU()
	Seed     uint64 // Base seed; row y samples from stream y
	Sampling SamplingConfig
	Progress ProgressFunc
	Logger   zerolog.Logger
}

// Raytracer renders a scene into an Image
type Raytracer struct {
	world       geometry.Shape
	camera      *Camera
	topColor    core.Color
	bottomColor core.Color
	width       int
	height      int
	seed        uint64
	config      SamplingConfig
	pool        *WorkerPool
	logger      zerolog.Logger
}

// NewRaytracer validates opts and the scene camera and prepares a render.
// A zero camera aspect ratio is derived from the image size.
func NewRaytracer(scene Scene, opts Options) (*Raytracer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", opts.Width, opts.Height)
	}
	if opts.Sampling.SamplesPerPixel <= 0 {
		return nil, fmt.Errorf("samples per pixel must be positive, got %d", opts.Sampling.SamplesPerPixel)
	}
	if opts.Sampling.MaxDepth < 0 {
		return nil, fmt.Errorf("max depth must not be negative, got %d", opts.Sampling.MaxDepth)
	}
	world := scene.GetWorld()
	if world == nil {
		return nil, errors.New("scene has no world")
	}

	cameraConfig := scene.GetCameraConfig()
	if cameraConfig.AspectRatio == 0 {
		cameraConfig.AspectRatio = core.Scalar(opts.Width) / core.Scalar(opts.Height)
	}
	if err := cameraConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid camera: %w", err)
	}

	top, bottom := scene.GetBackgroundColors()

	return &Raytracer{
		world:       world,
		camera:      NewCamera(cameraConfig),
		topColor:    top,
		bottomColor: bottom,
		width:       opts.Width,
		height:      opts.Height,
		seed:        opts.Seed,
		config:      opts.Sampling,
		pool:        NewWorkerPool(opts.Workers, opts.Progress),
		logger:      opts.Logger,
	}, nil
}

// Camera returns the camera rays are generated from
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// BackgroundGradient returns the sky color seen along a ray that hits nothing
func (rt *Raytracer) BackgroundGradient(r core.Ray) core.Color {
	// Map direction y from [-1,1] to [0,1]
	t := 0.5 * (r.Direction.Y + 1.0)
	return rt.bottomColor.Lerp(rt.topColor, t)
}

// RayColor returns the radiance carried back along r. depth counts the
// bounces already taken; a hit at MaxDepth gathers no more light.
func (rt *Raytracer) RayColor(r core.Ray, depth int, sampler core.Sampler) core.Color {
	hit, isHit := rt.world.Hit(r, HitEpsilon, math32.Inf(1))
	if !isHit {
		return rt.BackgroundGradient(r)
	}
	if depth >= rt.config.MaxDepth {
		return core.Black
	}

	scatter, didScatter := hit.Material.Scatter(r, *hit, sampler)
	if !didScatter {
		return core.Black
	}

	return scatter.Attenuation.Mul(rt.RayColor(scatter.Scattered, depth+1, sampler))
}

// samplePixel averages SamplesPerPixel jittered rays through pixel (x, y),
// where y = 0 is the top row.
func (rt *Raytracer) samplePixel(x, y int, sampler core.Sampler) core.Color {
	accum := core.Color{}
	for range rt.config.SamplesPerPixel {
		du, dv := sampler.Get2D()
		s := (core.Scalar(x) + du) / core.Scalar(rt.width)
		t := (core.Scalar(rt.height-1-y) + dv) / core.Scalar(rt.height)
		accum = accum.Add(rt.RayColor(rt.camera.GetRay(s, t, sampler), 0, sampler))
	}
	pixel := accum.DivScalar(core.Scalar(rt.config.SamplesPerPixel))
	pixel.A = 1
	return pixel
}

// renderRow fills one image row. Each row draws from its own stream of the
// base seed so output does not depend on which worker claims it.
func (rt *Raytracer) renderRow(img *Image, worker, y int) {
	sampler := core.NewSeededSampler(rt.seed, uint64(y))
	row := img.Row(y)
	for x := range row {
		row[x] = rt.samplePixel(x, y, sampler)
	}
	rt.logger.Debug().Int("row", y).Int("worker", worker).Msg("row complete")
}

// Render traces every pixel and returns the finished image. All workers
// have exited by the time it returns.
func (rt *Raytracer) Render() (*Image, RenderStats, error) {
	img, err := NewImage(rt.width, rt.height)
	if err != nil {
		return nil, RenderStats{}, err
	}

	workers := rt.pool.GetNumWorkers(rt.height)
	rt.logger.Info().
		Int("width", rt.width).
		Int("height", rt.height).
		Int("spp", rt.config.SamplesPerPixel).
		Int("maxDepth", rt.config.MaxDepth).
		Int("workers", workers).
		Int("cacheLine", img.LineSize()).
		Msg("render started")

	start := time.Now()
	err = rt.pool.Run(rt.height, func(worker, y int) error {
		rt.renderRow(img, worker, y)
		return nil
	})
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("render failed: %w", err)
	}

	stats := RenderStats{
		Width:           rt.width,
		Height:          rt.height,
		TotalPixels:     rt.width * rt.height,
		TotalSamples:    rt.width * rt.height * rt.config.SamplesPerPixel,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		Workers:         workers,
		CacheLineSize:   img.LineSize(),
		Elapsed:         time.Since(start),
	}
	stats.MeanLuminance, stats.LuminanceStdDev = luminanceStats(img)
	rt.logger.Info().EmbedObject(stats).Msg("render finished")

	return img, stats, nil
}
