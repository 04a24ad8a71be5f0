package virtual

import (
	"image"
	"sync"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

func Mock(logger *zap.Logger) *Mocker {
	return &Mocker{l: logger}
}

// Mocker is a screen that only logs. It remembers the last frame.
type Mocker struct {
	l *zap.Logger

	mu     sync.Mutex
	frames int
	last   *image.NRGBA
}

func (m *Mocker) Show(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.frames++
	m.last = imaging.Clone(img)
	m.l.With(
		zap.Int("frame", m.frames),
		zap.Int("w", img.Bounds().Dx()),
		zap.Int("h", img.Bounds().Dy()),
	).Debug("show")
	return nil
}

func (m *Mocker) Frames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames
}

func (m *Mocker) Last() *image.NRGBA {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}
