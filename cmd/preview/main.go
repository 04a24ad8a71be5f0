package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"rerewind/pkg/live"
	"rerewind/pkg/pipeline"
	"rerewind/pkg/raster"
	"rerewind/pkg/screen"
	"rerewind/pkg/screen/panel"
	"rerewind/pkg/screen/remote"
	"rerewind/pkg/source"
)

var in = flag.StringP("in", "i", "", "source picture, path or http(s) url")
var settingsFile = flag.StringP("settings", "s", "", "TOML settings file")
var listen = flag.String("listen", ":9123", "listen addr")
var serial = flag.String("serial", "", "usb panel serial name, empty for none")
var light = flag.Uint8("light", 100, "panel light percent")
var landscape = flag.Bool("landscape", false, "panel landscape")
var fps = flag.Int("fps", 30, "preview frames per second")
var seed = flag.Int64("seed", 0, "noise seed, 0 picks one")
var debug = flag.Bool("debug", false, "set debug")

func newLogger() (*zap.Logger, error) {
	if *debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newSettings(fs afero.Fs) (pipeline.Settings, error) {
	if *settingsFile == "" {
		return pipeline.DefaultSettings(), nil
	}
	return pipeline.LoadSettings(fs, *settingsFile)
}

func newSource(fs afero.Fs, logger *zap.Logger) (*raster.Buffer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	return source.NewLoader(fs, logger, source.WithProgress(true)).Load(ctx, *in)
}

func newScreen(store *remote.Store, logger *zap.Logger, lifecycle fx.Lifecycle) (screen.Screen, error) {
	if *serial == "" {
		return store, nil
	}

	opts := []panel.Option{panel.WithLight(*light)}
	if *landscape {
		opts = append(opts, panel.WithLandscape())
	}
	p, err := panel.Open(*serial, logger, opts...)
	if err != nil {
		return nil, err
	}
	lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return p.Close()
		},
	})

	return screen.Multi(store, p), nil
}

func newRenderer(src *raster.Buffer, params *live.Params, scr screen.Screen, logger *zap.Logger) *live.Renderer {
	opts := []live.Option{
		live.WithLogger(logger),
		live.WithInterval(time.Second / time.Duration(max(1, *fps))),
	}
	if *seed != 0 {
		opts = append(opts, live.WithSeed(*seed))
	}
	return live.NewRenderer(pipeline.New(pipeline.WithLogger(logger)), src, params, scr, opts...)
}

func run(r *live.Renderer, logger *zap.Logger, lifecycle fx.Lifecycle) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				_ = r.Run(ctx)
			}()
			logger.Info("live render started")
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

func main() {
	flag.Parse()
	if *in == "" {
		flag.Usage()
		log.Fatal("missing --in")
	}

	fx.New(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		fx.Provide(
			newLogger,
			func() afero.Fs {
				return afero.NewOsFs()
			},
			func() (*remote.Store, *http.Server) {
				return &remote.Store{}, &http.Server{Addr: *listen}
			},
			newSettings,
			newSource,
			live.NewParams,
			func(p *live.Params) remote.Controller {
				return p
			},
			newScreen,
			newRenderer,
		),
		fx.Invoke(
			remote.Proxy,
			run,
		),
	).Run()
}
