package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/pkg/watcher"
	"github.com/spf13/cobra"
)

// stdoutPath sends the image to standard output
const stdoutPath = "-"

type renderOptions struct {
	scene    string
	output   string
	format   string
	width    int
	samples  int
	depth    int
	seed     int64
	hasDepth bool
	hasSeed  bool
	watch    bool
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene to an image file",
		Long: `Render a built-in scene or a YAML/TOML scene file. Progress is logged to
stderr. Use --output - to write the image to stdout (PPM unless --format says
otherwise). Without --output the image goes to output/<scene>/render_<timestamp>.png.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.hasDepth = cmd.Flags().Changed("depth")
			opts.hasSeed = cmd.Flags().Changed("seed")
			logger := log.New(cmd.ErrOrStderr(), "", 0)

			if opts.watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				return watchAndRender(ctx, opts, cmd.OutOrStdout(), logger)
			}
			return runRender(cmd.Context(), opts, cmd.OutOrStdout(), logger)
		},
	}

	flags := renderCmd.Flags()
	flags.StringVarP(&opts.scene, "scene", "s", "default", "Built-in scene name or path to a .yaml/.toml scene file")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file, or - for stdout")
	flags.StringVarP(&opts.format, "format", "f", "", "Image format: ppm, png or bmp (default from the output extension)")
	flags.IntVarP(&opts.width, "width", "w", 0, "Image width; height follows the camera aspect ratio (default from the scene)")
	flags.IntVarP(&opts.samples, "samples", "n", 0, "Samples per pixel (default from the scene)")
	flags.IntVarP(&opts.depth, "depth", "d", 0, "Maximum bounce depth (default from the scene)")
	flags.Int64Var(&opts.seed, "seed", 0, "Random seed for a reproducible render")
	flags.BoolVar(&opts.watch, "watch", false, "Re-render whenever the scene file changes")

	return renderCmd
}

// runRender renders once and writes the image
func runRender(ctx context.Context, opts *renderOptions, stdout io.Writer, logger core.Logger) error {
	sceneObj, err := scene.NewScene(opts.scene)
	if err != nil {
		return err
	}

	format, path, err := resolveOutput(opts, opts.scene)
	if err != nil {
		return err
	}

	config := sceneObj.SamplingConfig.Merge(renderer.SamplingConfig{SamplesPerPixel: opts.samples})
	if opts.width > 0 {
		config.Width = opts.width
		config.Height = renderer.HeightForWidth(opts.width, sceneObj.CameraConfig.AspectRatio)
	}
	if opts.hasDepth {
		config.MaxDepth = opts.depth
	}

	seed := time.Now().UnixNano()
	if opts.hasSeed {
		seed = opts.seed
	}

	logger.Printf("Rendering %s at %dx%d, %d samples per pixel, max depth %d",
		sceneObj.Name, config.Width, config.Height, config.SamplesPerPixel, config.MaxDepth)

	raytracer := renderer.NewRaytracer(sceneObj, config, core.NewSeededSampler(seed))
	raytracer.SetLogger(logger)

	frame, stats, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}

	img := frame.Image()
	if path == stdoutPath {
		if err := output.Encode(stdout, img, format); err != nil {
			return fmt.Errorf("error writing image: %w", err)
		}
	} else {
		if err := output.Save(path, img, format); err != nil {
			return err
		}
		logger.Printf("Render saved as %s", path)
	}

	logger.Printf("Average luminance: %.3f, %d samples in %v",
		renderer.CalculateAverageLuminance(img), stats.TotalSamples, stats.Duration)
	return nil
}

// resolveOutput picks the image format and destination from the flags
func resolveOutput(opts *renderOptions, sceneName string) (output.Format, string, error) {
	switch {
	case opts.format != "":
		format, err := output.ParseFormat(opts.format)
		if err != nil {
			return "", "", err
		}
		path := opts.output
		if path == "" {
			path = output.DefaultPath(sceneName, format, time.Now())
		}
		return format, path, nil

	case opts.output == stdoutPath:
		return output.FormatPPM, stdoutPath, nil

	case opts.output != "":
		format, err := output.FormatFromPath(opts.output)
		if err != nil {
			return "", "", err
		}
		return format, opts.output, nil

	default:
		return output.FormatPNG, output.DefaultPath(sceneName, output.FormatPNG, time.Now()), nil
	}
}

// watchAndRender renders, then renders again after every change to the scene
// file until ctx is done. Failed re-renders are logged, not fatal.
func watchAndRender(ctx context.Context, opts *renderOptions, stdout io.Writer, logger core.Logger) error {
	if !loaders.IsSceneFile(opts.scene) {
		return fmt.Errorf("--watch needs a scene file, got %q", opts.scene)
	}
	if opts.output == stdoutPath {
		return fmt.Errorf("--watch cannot write to stdout")
	}

	fw, err := watcher.NewFileWatcher(500*time.Millisecond, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	changes := make(chan string, 1)
	if err := fw.Watch([]string{opts.scene}, func(path string) {
		select {
		case changes <- path:
		default:
		}
	}); err != nil {
		return err
	}
	fw.Start()

	if err := runRender(ctx, opts, stdout, logger); err != nil {
		logger.Printf("Render failed: %v", err)
	}
	logger.Printf("Watching %s for changes (Ctrl+C to stop)", opts.scene)

	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-changes:
			logger.Printf("Scene changed: %s", path)
			if err := runRender(ctx, opts, stdout, logger); err != nil {
				logger.Printf("Render failed: %v", err)
			}
		}
	}
}
