// Command anime4k upscales images and refines them with the Anime4K pipeline.
//
// Usage:
//
//	anime4k -i input.png [-o output.png] [-s 2 | -r 1920x1080] [-algorithm v1.0-rc2]
//	anime4k -i frames/ -o upscaled/ -jobs 4
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/anime4k"
	"github.com/gogpu/anime4k/internal/imageio"
)

// outputSuffix is appended to the input name when -output is not given.
const outputSuffix = "_anime4k"

type config struct {
	input  string
	output string

	scale         float64
	width, height int

	colorStrength    float64
	gradientStrength float64
	colorSet         bool
	gradientSet      bool

	passes    int
	algorithm anime4k.Algorithm
	antiAlias bool

	debugDir string
	workers  int
	jobs     int
	verbose  bool
}

func main() {
	cfg, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "anime4k:", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	anime4k.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		logger.Error("anime4k: failed", "err", err)
		os.Exit(1)
	}
}

// parseArgs parses the command line into a config.
func parseArgs(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{algorithm: anime4k.V09}
	var resolution string

	fs := flag.NewFlagSet("anime4k", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.input, "input", "", "input image or directory")
	fs.StringVar(&cfg.input, "i", "", "shorthand for -input")
	fs.StringVar(&cfg.output, "output", "", "output image or directory (default <input>"+outputSuffix+")")
	fs.StringVar(&cfg.output, "o", "", "shorthand for -output")
	fs.Float64Var(&cfg.scale, "scale", 2, "scale factor")
	fs.Float64Var(&cfg.scale, "s", 2, "shorthand for -scale")
	fs.StringVar(&resolution, "resolution", "", "target resolution WxH, overrides -scale")
	fs.StringVar(&resolution, "r", "", "shorthand for -resolution")
	fs.Float64Var(&cfg.colorStrength, "sc", 0, "color push strength (default scale/6)")
	fs.Float64Var(&cfg.gradientStrength, "sg", 0, "gradient push strength (default scale/2)")
	fs.IntVar(&cfg.passes, "passes", 2, "number of pipeline passes")
	fs.IntVar(&cfg.passes, "l", 2, "shorthand for -passes")
	fs.Var(&cfg.algorithm, "algorithm", "algorithm: v0.9 or v1.0-rc2")
	fs.BoolVar(&cfg.antiAlias, "aa", false, "enable FXAA (v1.0-rc2 only)")
	fs.StringVar(&cfg.debugDir, "debug", "", "write every stage's channels into this directory")
	fs.IntVar(&cfg.workers, "workers", 0, "worker goroutines per image (0 = GOMAXPROCS)")
	fs.IntVar(&cfg.jobs, "jobs", 2, "images processed concurrently in directory mode")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sc":
			cfg.colorSet = true
		case "sg":
			cfg.gradientSet = true
		}
	})

	if cfg.input == "" {
		if fs.NArg() != 1 {
			return nil, errors.New("missing -input")
		}
		cfg.input = fs.Arg(0)
	}
	if resolution != "" {
		w, h, err := parseResolution(resolution)
		if err != nil {
			return nil, err
		}
		cfg.width, cfg.height = w, h
	}
	if cfg.jobs < 1 {
		return nil, fmt.Errorf("-jobs must be >= 1, got %d", cfg.jobs)
	}
	return cfg, nil
}

// parseResolution parses "WxH" into positive dimensions.
func parseResolution(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("resolution %q: want WxH", s)
	}
	w, err = strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return 0, 0, fmt.Errorf("resolution %q: %w", s, err)
	}
	h, err = strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return 0, 0, fmt.Errorf("resolution %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("resolution %q: dimensions must be positive", s)
	}
	return w, h, nil
}

// defaultOutput derives the output path for input: "a/b.jpg" becomes
// "a/b_anime4k.png", a directory "frames" becomes "frames_anime4k".
func defaultOutput(input string, dir bool) string {
	input = filepath.Clean(input)
	if dir {
		return input + outputSuffix
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + outputSuffix + ".png"
}

// job is one input file and where its result goes.
type job struct {
	src, dst string
	debug    string
}

// plan expands cfg into jobs. A directory input maps every image file in it
// (not recursive) into the output directory under the same name.
func plan(cfg *config) ([]job, error) {
	info, err := os.Stat(cfg.input)
	if err != nil {
		return nil, err
	}

	out := cfg.output
	if out == "" {
		out = defaultOutput(cfg.input, info.IsDir())
	}

	if !info.IsDir() {
		if imageio.FormatFromPath(out) == imageio.FormatUnknown {
			return nil, fmt.Errorf("%w: output %s", imageio.ErrUnsupportedFormat, out)
		}
		return []job{{src: cfg.input, dst: out, debug: cfg.debugDir}}, nil
	}

	entries, err := os.ReadDir(cfg.input)
	if err != nil {
		return nil, err
	}
	var jobs []job
	for _, e := range entries {
		if e.IsDir() || !imageio.IsImagePath(e.Name()) {
			continue
		}
		name := e.Name()
		if imageio.FormatFromPath(name) == imageio.FormatUnknown {
			// decode-only formats are written as PNG
			name = strings.TrimSuffix(name, filepath.Ext(name)) + ".png"
		}
		j := job{
			src: filepath.Join(cfg.input, e.Name()),
			dst: filepath.Join(out, name),
		}
		if cfg.debugDir != "" {
			j.debug = filepath.Join(cfg.debugDir, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		}
		jobs = append(jobs, j)
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no images in %s", cfg.input)
	}
	return jobs, nil
}

// options translates cfg into Scaler options for one job.
func (cfg *config) options(j job, logger *slog.Logger) []anime4k.Option {
	opts := []anime4k.Option{
		anime4k.WithAlgorithm(cfg.algorithm),
		anime4k.WithPasses(cfg.passes),
		anime4k.WithAntiAliasing(cfg.antiAlias),
		anime4k.WithWorkers(cfg.workers),
	}
	if cfg.colorSet {
		opts = append(opts, anime4k.WithColorStrength(cfg.colorStrength))
	}
	if cfg.gradientSet {
		opts = append(opts, anime4k.WithGradientStrength(cfg.gradientStrength))
	}
	if j.debug != "" {
		dir := j.debug
		opts = append(opts, anime4k.WithObserver(func(pass int, stage string, img image.Image) {
			if err := imageio.DumpChannels(dir, pass, stage, img); err != nil {
				logger.Warn("anime4k: debug dump failed", "stage", stage, "err", err)
			}
		}))
	}
	return opts
}

// run processes every job, at most cfg.jobs at a time, and prints a summary.
func run(ctx context.Context, cfg *config, logger *slog.Logger, stdout io.Writer) error {
	jobs, err := plan(cfg)
	if err != nil {
		return err
	}

	logger.Info("anime4k: parameters",
		"input", cfg.input,
		"images", len(jobs),
		"algorithm", cfg.algorithm,
		"scale", cfg.scale,
		"resolution", fmt.Sprintf("%dx%d", cfg.width, cfg.height),
		"passes", cfg.passes,
		"antiAlias", cfg.antiAlias,
		"debug", cfg.debugDir)

	start := time.Now()
	var pixels atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.jobs)
	for _, j := range jobs {
		g.Go(func() error {
			n, err := process(ctx, cfg, j, logger)
			if err != nil {
				return fmt.Errorf("%s: %w", j.src, err)
			}
			pixels.Add(int64(n))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(stdout, "%d image(s), %d pixels written in %v\n",
		len(jobs), pixels.Load(), time.Since(start).Round(time.Millisecond))
	return nil
}

// process scales one file and returns the number of output pixels.
func process(ctx context.Context, cfg *config, j job, logger *slog.Logger) (int, error) {
	start := time.Now()

	img, format, err := imageio.Load(j.src)
	if err != nil {
		return 0, err
	}

	s := anime4k.NewScaler(cfg.options(j, logger)...)
	var out *image.RGBA
	if cfg.width > 0 {
		out, err = s.ScaleTo(ctx, img, cfg.width, cfg.height)
	} else {
		out, err = s.ScaleFactor(ctx, img, cfg.scale)
	}
	if err != nil {
		return 0, err
	}

	if err := imageio.Save(j.dst, out); err != nil {
		return 0, err
	}

	b := out.Bounds()
	logger.Info("anime4k: saved",
		"src", j.src,
		"format", format,
		"dst", j.dst,
		"size", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return b.Dx() * b.Dy(), nil
}
