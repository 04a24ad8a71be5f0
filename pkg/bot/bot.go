// Package bot drives the effect stack from a Telegram chat: send a picture,
// tune the effects, get back a still, a GIF or a video.
package bot

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func NewBot(token string, cmd *Commands, logger *zap.Logger) (*Bot, error) {
	pref := tele.Settings{
		Token: token,
		Poller: &tele.LongPoller{
			Timeout: 30 * time.Second,
		},
		OnError: func(err error, c tele.Context) {
			logger.With(zap.Error(err)).Info("bot handler failed")
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	return &Bot{
		b:   b,
		cmd: cmd,
		log: logger,
	}, nil
}

type Bot struct {
	b   *tele.Bot
	cmd *Commands
	log *zap.Logger
}

func reply(context tele.Context, msg string, err error) error {
	if err != nil {
		return context.Reply(fmt.Sprintf("failed: %s", err))
	}
	return context.Reply(msg)
}

func (b *Bot) handleSource() {
	load := func(context tele.Context, file *tele.File) error {
		rc, err := b.b.File(file)
		if err != nil {
			return context.Reply(fmt.Sprintf("download failed: %s", err))
		}
		defer func() {
			_ = rc.Close()
		}()

		msg, err := b.cmd.Load(rc)
		return reply(context, msg, err)
	}

	b.b.Handle(tele.OnPhoto, func(context tele.Context) error {
		return load(context, &context.Message().Photo.File)
	})

	b.b.Handle(tele.OnDocument, func(context tele.Context) error {
		return load(context, &context.Message().Document.File)
	})
}

func (b *Bot) handleConfig() {
	b.b.Handle("/set", func(context tele.Context) error {
		msg, err := b.cmd.Set(context.Args())
		return reply(context, msg, err)
	})

	b.b.Handle("/settings", func(context tele.Context) error {
		return context.Reply(b.cmd.Settings())
	})

	b.b.Handle("/effects", func(context tele.Context) error {
		return context.Reply(b.cmd.Effects())
	})

	b.b.Handle("/reset", func(context tele.Context) error {
		return context.Reply(b.cmd.Reset())
	})
}

func (b *Bot) handleLive() {
	b.b.Handle("/pause", func(context tele.Context) error {
		b.cmd.params.Pause()
		return context.Reply("OK")
	})

	b.b.Handle("/resume", func(context tele.Context) error {
		b.cmd.params.Wakeup()
		return context.Reply("OK")
	})
}

func (b *Bot) handleExport() {
	send := func(ext string, action tele.ChatAction, wrap func(f tele.File, caption string) tele.Sendable) tele.HandlerFunc {
		return func(c tele.Context) error {
			_ = c.Notify(action)

			r, err := b.cmd.Render(context.Background(), ext)
			if err != nil {
				return c.Reply(fmt.Sprintf("render failed: %s", err))
			}
			defer b.cmd.Release(r)

			b.log.With(zap.String("file", r.Path), zap.Int64("chat", c.Chat().ID)).Debug("sending render")
			return c.Reply(wrap(tele.FromDisk(r.Path), r.Caption))
		}
	}

	b.b.Handle("/still", send(".png", tele.UploadingPhoto, func(f tele.File, caption string) tele.Sendable {
		return &tele.Photo{File: f, Caption: caption}
	}))

	b.b.Handle("/gif", send(".gif", tele.UploadingVideo, func(f tele.File, caption string) tele.Sendable {
		return &tele.Animation{File: f, Caption: caption, FileName: "rewind.gif"}
	}))

	b.b.Handle("/video", send(".mp4", tele.UploadingVideo, func(f tele.File, caption string) tele.Sendable {
		return &tele.Video{File: f, Caption: caption, FileName: "rewind.mp4"}
	}))
}

func (b *Bot) Start() {
	b.handleSource()
	b.handleConfig()
	b.handleLive()
	b.handleExport()
	go b.b.Start()
}

func (b *Bot) Stop() {
	go b.b.Stop()
}
