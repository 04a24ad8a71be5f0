package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/inhies/go-bytesize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"rerewind/pkg/export"
	"rerewind/pkg/pipeline"
	"rerewind/pkg/source"
)

var in = flag.StringP("in", "i", "", "source picture, path or http(s) url")
var out = flag.StringP("out", "o", "rewind.gif", "output file, format by extension (png, jpg, gif, mp4, webm)")
var settingsFile = flag.StringP("settings", "s", "", "TOML settings file")
var sets = flag.StringArray("set", nil, "override a setting, name=value (repeatable)")
var frames = flag.Int("frames", 0, "frame count, 0 uses the settings")
var duration = flag.Duration("duration", 0, "loop duration, 0 uses the settings")
var start = flag.Float64("start", 0, "virtual time offset of the first frame")
var seed = flag.Int64("seed", 1, "noise seed")
var maxDim = flag.Int("max-dim", source.DefaultMaxDim, "longest side of the source after loading, 0 keeps it")
var cacheDir = flag.String("cache", "", "directory to cache fitted sources in")
var ffmpeg = flag.String("ffmpeg", "ffmpeg", "ffmpeg binary for video output")
var quiet = flag.BoolP("quiet", "q", false, "no progress bars")
var debug = flag.Bool("debug", false, "set debug")

func newLogger() *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if *debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal(err)
	}
	return logger
}

func loadSettings(fs afero.Fs) (pipeline.Settings, error) {
	s := pipeline.DefaultSettings()
	if *settingsFile != "" {
		var err error
		if s, err = pipeline.LoadSettings(fs, *settingsFile); err != nil {
			return s, err
		}
	}

	for _, kv := range *sets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return s, fmt.Errorf("bad --set %q, want name=value", kv)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return s, fmt.Errorf("bad --set %q: %w", kv, err)
		}
		if err := s.Set(name, v); err != nil {
			return s, err
		}
	}
	return s, nil
}

func encoder(path string) (export.Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4":
		return export.Video(export.MP4, export.WithFFmpeg(*ffmpeg)), nil
	case ".webm":
		return export.Video(export.WebM, export.WithFFmpeg(*ffmpeg)), nil
	}
	return export.ForPath(path)
}

func main() {
	flag.Parse()
	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := newLogger()
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fs := afero.NewOsFs()

	settings, err := loadSettings(fs)
	if err != nil {
		log.Fatal(err)
	}

	enc, err := encoder(*out)
	if err != nil {
		log.Fatal(err)
	}

	opts := []source.Option{source.WithMaxDim(*maxDim), source.WithProgress(!*quiet)}
	if *cacheDir != "" {
		if err := fs.MkdirAll(*cacheDir, 0755); err != nil {
			log.Fatal(err)
		}
		opts = append(opts, source.WithCache(afero.NewBasePathFs(fs, *cacheDir)))
	}
	src, err := source.NewLoader(fs, logger, opts...).Load(ctx, *in)
	if err != nil {
		log.Fatal(err)
	}

	logger.With(zap.Strings("effects", settings.Active())).Info("rendering")

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if *quiet {
			return
		}
		if bar == nil {
			bar = progressbar.Default(int64(total), "rendering")
		}
		_ = bar.Set(done)
	}

	exp := export.NewExporter(pipeline.New(pipeline.WithLogger(logger)), fs, export.WithLogger(logger))
	r, err := exp.Export(ctx, export.Job{
		Source:   src,
		Settings: settings,
		Path:     *out,
		Encoder:  enc,
		Frames:   *frames,
		Duration: *duration,
		Start:    *start,
		Seed:     *seed,
		Progress: progress,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s: %d frames, %s, %s per frame, took %s\n",
		r.Path, r.Frames, bytesize.New(float64(r.Size)).String(), r.Delay, r.Duration.Round(time.Millisecond))
}
