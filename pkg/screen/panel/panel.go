// Package panel drives a small USB serial LCD (the 3.5" 320x480 kind) as a
// live preview screen.
package panel

import (
	"fmt"
	"image"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"go.bug.st/serial"
	"go.uber.org/zap"
)

const (
	cmdRestart  = 101
	cmdShutdown = 108
	cmdStartup  = 109
	cmdLight    = 110
	cmdRotate   = 121
	cmdBitmap   = 197
)

var ErrPortNotFound = errors.New("serial port not found")

// Open finds the first serial port whose name contains name and starts the
// panel on it.
func Open(name string, logger *zap.Logger, opts ...Option) (*Panel, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, err
	}

	var matched string
	for _, p := range ports {
		if strings.Contains(p, name) {
			matched = p
			break
		}
	}
	if matched == "" {
		return nil, errors.Wrap(ErrPortNotFound, name)
	}

	port, err := serial.Open(matched, &serial.Mode{BaudRate: 115200})
	if err != nil {
		return nil, err
	}
	if err := port.SetDTR(true); err != nil {
		_ = port.Close()
		return nil, err
	}
	if err := port.SetRTS(true); err != nil {
		_ = port.Close()
		return nil, err
	}

	p := New(port, logger, opts...)
	if err := p.Startup(); err != nil {
		_ = port.Close()
		return nil, err
	}
	return p, nil
}

func New(port io.WriteCloser, logger *zap.Logger, opts ...Option) *Panel {
	p := &Panel{
		port:   port,
		logger: logger,
		width:  320,
		height: 480,
		light:  100,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

type Panel struct {
	mu     sync.Mutex
	port   io.WriteCloser
	logger *zap.Logger

	width     int
	height    int
	light     uint8
	landscape bool
}

func (p *Panel) Size() (int, int) {
	return p.width, p.height
}

func (p *Panel) Startup() error {
	if err := p.command(cmdStartup); err != nil {
		return err
	}
	if err := p.command(cmdLight, lightLevel(p.light)); err != nil {
		return err
	}
	return p.rotate()
}

func (p *Panel) Restart() error {
	return p.command(cmdRestart)
}

// SetLight sets the backlight in percent.
func (p *Panel) SetLight(percent uint8) error {
	p.light = min(percent, 100)
	return p.command(cmdLight, lightLevel(p.light))
}

// Show fills the panel with img, cropping to the panel's aspect ratio.
func (p *Panel) Show(img image.Image) error {
	fitted := imaging.Fill(img, p.width, p.height, imaging.Center, imaging.NearestNeighbor)
	if err := p.command(cmdBitmap, 0, 0, p.width-1, p.height-1); err != nil {
		return err
	}
	return p.send(RGB565(fitted))
}

func (p *Panel) Close() error {
	err := p.command(cmdShutdown)
	if cerr := p.port.Close(); err == nil {
		err = cerr
	}
	return err
}

func (p *Panel) rotate() error {
	mode := byte(100)
	if p.landscape {
		mode++
	}
	opt := []byte{mode, byte(p.width >> 8), byte(p.width), byte(p.height >> 8), byte(p.height)}
	return p.send(append(packet(cmdRotate, 0, 0, 0, 0), pad(opt, 10)...))
}

func (p *Panel) command(code byte, args ...int) error {
	if len(args) > 4 {
		return errors.New("too many args")
	}
	var a [4]int
	copy(a[:], args)
	return p.send(packet(code, a[0], a[1], a[2], a[3]))
}

func (p *Panel) send(bs []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	start := time.Now()
	n, err := p.port.Write(bs)
	if err != nil {
		return err
	}

	ext := ""
	if len(bs) <= 16 {
		ext = fmt.Sprintf("%x", bs)
	}
	p.logger.With(
		zap.Int("sent", n),
		zap.String("cost", time.Since(start).String()),
		zap.String("data", ext),
	).Debug("transfer")
	return nil
}

// lightLevel maps a backlight percentage to the panel's inverted 0..255 scale.
func lightLevel(percent uint8) int {
	return int((1 - float64(percent)/100) * 255)
}

func pad(bs []byte, n int) []byte {
	if len(bs) >= n {
		return bs
	}
	return append(bs, make([]byte, n-len(bs))...)
}
