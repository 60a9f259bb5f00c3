package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/df07/go-raytracer/pkg/config"
	"github.com/df07/go-raytracer/pkg/loaders"
	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
)

// errImagesDiffer makes compare exit with status 1 without logging an error
var errImagesDiffer = errors.New("images differ")

func main() {
	log := newLogger(os.Stderr, zerolog.InfoLevel)
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, errImagesDiffer) {
			log.Error().Err(err).Msg("raytracer failed")
		}
		os.Exit(1)
	}
}

func newLogger(out io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()
}

// newRootCmd renders when run without a subcommand
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := newRenderCmd("raytracer", stdout, stderr)
	root.Short = "Monte-Carlo sphere raytracer"
	root.Long = `Renders scenes of diffuse, metal and glass spheres under a sky gradient.

Settings come from flags, RAYTRACER_* environment variables and an optional
raytracer.yaml config file, in that order of precedence.`
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.AddCommand(newRenderCmd("render", stdout, stderr), newScenesCmd(stdout), newCompareCmd(stdout))
	return root
}

func newRenderCmd(use string, stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:   use,
		Short: "Render a scene to a PNG or JPEG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			log := newLogger(stderr, cfg.Level())
			return runRender(cfg, log, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file (default ./raytracer.yaml)")
	if err := config.BindFlags(cmd.Flags(), v); err != nil {
		panic(err)
	}
	return cmd
}

func runRender(cfg *config.Config, log zerolog.Logger, stderr io.Writer) error {
	s, err := createScene(cfg)
	if err != nil {
		return err
	}
	log.Info().Str("scene", s.Name).Int("spheres", s.GetPrimitiveCount()).Msg("scene ready")

	opts := renderer.Options{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Workers:  cfg.Workers,
		Seed:     cfg.Seed,
		Sampling: cfg.ResolveSampling(s.SamplingConfig),
		Logger:   log,
	}
	var bar *progressbar.ProgressBar
	if showProgress(cfg, stderr) {
		bar = newProgressBar(cfg.Height, stderr)
		opts.Progress = func(completed, total int) {
			_ = bar.Set(completed)
		}
	}

	rt, err := renderer.NewRaytracer(s, opts)
	if err != nil {
		return err
	}
	img, stats, err := rt.Render()
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}
	log.Debug().Dur("elapsed", stats.Elapsed).Int("samples", stats.TotalSamples).Msg("saving image")

	if err := loaders.SaveImage(cfg.Output, img, loaders.SaveOptions{JPEGQuality: cfg.JPEGQuality}); err != nil {
		return err
	}
	log.Info().Str("path", cfg.Output).Msg("image saved")
	return nil
}

// createScene resolves, in order, --scene-file, a built-in scene name and a
// YAML file named after the scene in the scenes directory
func createScene(cfg *config.Config) (*scene.Scene, error) {
	override, err := cfg.CameraOverride()
	if err != nil {
		return nil, err
	}

	if cfg.SceneFile != "" {
		return loadSceneFile(cfg.SceneFile, override)
	}
	if cfg.Scene == "" {
		return nil, errors.New("no scene selected")
	}

	build, lookupErr := scene.Lookup(cfg.Scene)
	if lookupErr == nil {
		return build(scene.BuildOptions{Seed: cfg.Seed, CameraOverride: override}), nil
	}

	if path, ok := findSceneFile(cfg.ScenesDir, cfg.Scene); ok {
		return loadSceneFile(path, override)
	}
	return nil, lookupErr
}

func loadSceneFile(path string, override renderer.CameraConfig) (*scene.Scene, error) {
	s, err := scene.LoadFile(path)
	if err != nil {
		return nil, err
	}
	s.CameraConfig = renderer.MergeCameraConfig(s.CameraConfig, override)
	return s, nil
}

// findSceneFile looks for dir/<name>.yaml or dir/<name>.yml
func findSceneFile(dir, name string) (string, bool) {
	if dir == "" || strings.ContainsAny(name, `/\`) {
		return "", false
	}
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(dir, name+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func showProgress(cfg *config.Config, stderr io.Writer) bool {
	if cfg.Quiet {
		return false
	}
	f, ok := stderr.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func newProgressBar(rows int, out io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(rows,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("rendering"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("rows"),
		progressbar.OptionShowIts(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
	)
}

func newScenesCmd(stdout io.Writer) *cobra.Command {
	var dir, export string
	var seed uint64

	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "List built-in scenes and YAML scene files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if export != "" {
				build, err := scene.Lookup(export)
				if err != nil {
					return err
				}
				return scene.Encode(stdout, build(scene.BuildOptions{Seed: seed}))
			}
			return listScenes(stdout, dir)
		},
	}
	cmd.Flags().StringVar(&dir, "scenes-dir", config.Default().ScenesDir, "directory searched for YAML scene files")
	cmd.Flags().StringVar(&export, "export", "", "print a built-in scene as YAML")
	cmd.Flags().Uint64Var(&seed, "seed", config.Default().Seed, "seed for procedural scenes when exporting")
	return cmd
}

func listScenes(w io.Writer, dir string) error {
	fmt.Fprintln(w, "Built-in scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-10s %s\n", info.Name, info.Description)
	}

	files, err := scene.ListSceneFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}
	fmt.Fprintf(w, "\nScene files in %s:\n", dir)
	for _, f := range files {
		base := filepath.Base(f.FilePath)
		line := fmt.Sprintf("  %-10s %s", strings.TrimSuffix(base, filepath.Ext(base)), f.DisplayName)
		if f.Description != "" {
			line += ": " + f.Description
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func newCompareCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Count pixels that differ between two images; exits 1 if any do",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(stdout, args[0], args[1])
		},
	}
}

func runCompare(w io.Writer, pathA, pathB string) error {
	a, err := loaders.LoadImage(pathA)
	if err != nil {
		return err
	}
	b, err := loaders.LoadImage(pathB)
	if err != nil {
		return err
	}
	diff, err := loaders.CountDifferentPixels(a, b)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%d of %d pixels differ\n", diff, a.Width()*a.Height())
	if diff > 0 {
		return errImagesDiffer
	}
	return nil
}
