package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"rerewind/pkg/bot"
	"rerewind/pkg/live"
	"rerewind/pkg/pipeline"
	"rerewind/pkg/screen/panel"
	"rerewind/pkg/source"
)

var tgToken = flag.String("tg-token", "", "telegram bot token")
var tmpDir = flag.String("tmp", "", "directory for rendered files, default system temp")
var maxDim = flag.Int("max-dim", 640, "longest side of received pictures")
var maxFrames = flag.Int("max-frames", 90, "largest frame count a chat may ask for")
var serial = flag.String("serial", "", "usb panel serial name to mirror the live preview on")
var light = flag.Uint8("light", 100, "panel light percent")
var landscape = flag.Bool("landscape", false, "panel landscape")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()
	if *tgToken == "" {
		log.Fatal("missing --tg-token")
	}

	logger, _ := zap.NewProduction()
	if *debug {
		logger, _ = zap.NewDevelopment()
	}

	tmp, err := bot.NewTmpFs(*tmpDir)
	if err != nil {
		log.Fatal(err)
	}

	p := pipeline.New(pipeline.WithLogger(logger))
	params := live.NewParams(pipeline.DefaultSettings())
	cmd := bot.NewCommands(p, params, tmp,
		bot.WithLogger(logger),
		bot.WithMaxDim(max(1, min(*maxDim, source.DefaultMaxDim))),
		bot.WithMaxFrames(*maxFrames),
	)

	b, err := bot.NewBot(*tgToken, cmd, logger)
	if err != nil {
		log.Fatal(err)
	}
	b.Start()

	ctx, cancel := context.WithCancel(context.Background())
	exited := make(chan struct{})

	var dev *panel.Panel
	if *serial != "" {
		opts := []panel.Option{panel.WithLight(*light)}
		if *landscape {
			opts = append(opts, panel.WithLandscape())
		}
		if dev, err = panel.Open(*serial, logger, opts...); err != nil {
			log.Fatal(err)
		}
		r := live.NewRenderer(p, nil, params, dev, live.WithLogger(logger))
		go func() {
			defer close(exited)
			_ = r.Run(ctx)
		}()
	} else {
		close(exited)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)

	<-signals
	logger.Info("shutting down")
	b.Stop()
	cancel()
	<-exited
	if dev != nil {
		if err := dev.Close(); err != nil {
			logger.With(zap.Error(err)).Info("shutdown failed")
		}
	}
	logger.Info("exited")
}
