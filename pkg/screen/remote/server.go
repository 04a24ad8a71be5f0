package remote

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"net/rpc"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Controller is the part of the live renderer a remote client may steer.
type Controller interface {
	Set(name string, v float64) error
	Pause()
	Wakeup()
}

// Proxy exposes the controller and the frame store over net/rpc and plain
// HTTP (GET /frame.png) on srv, bound to the fx lifecycle.
func Proxy(ctl Controller, store *Store, srv *http.Server, logger *zap.Logger, lifecycle fx.Lifecycle) error {
	h, err := Handler(ctl, store)
	if err != nil {
		return err
	}
	srv.Handler = h

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != http.ErrServerClosed {
					logger.With(zap.Error(err)).Fatal("preview server failed")
				}
			}()
			logger.With(zap.String("addr", srv.Addr)).Info("preview listening")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return nil
}

// Handler serves the rpc endpoint and GET /frame.png.
func Handler(ctl Controller, store *Store) (http.Handler, error) {
	rs := rpc.NewServer()
	if err := rs.Register(&Service{ctl: ctl, store: store}); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(rpc.DefaultRPCPath, rs)
	mux.Handle("/frame.png", store)
	return mux, nil
}

type Service struct {
	ctl   Controller
	store *Store
}

func (s *Service) Command(name string, ack *Ack) error {
	switch name {
	case "pause":
		s.ctl.Pause()
		ack.OK = true
		return nil
	case "resume":
		s.ctl.Wakeup()
		ack.OK = true
		return nil
	}

	return errors.New("unknown command")
}

func (s *Service) SetIntensity(req SetIntensityRequest, ack *Ack) error {
	if err := s.ctl.Set(req.Name, req.Value); err != nil {
		return err
	}
	ack.OK = true
	return nil
}

// Push stores a frame rendered elsewhere.
func (s *Service) Push(req *FrameMessage, ack *Ack) error {
	if _, err := png.DecodeConfig(bytes.NewReader(req.Image)); err != nil {
		return errors.Wrap(err, "bad frame")
	}
	s.store.put(req.Image)
	ack.OK = true
	return nil
}

func (s *Service) Frame(_ int, resp *FrameMessage) error {
	msg, err := s.store.Latest()
	if err != nil {
		return err
	}
	*resp = msg
	return nil
}
