package live

import (
	"sync"

	"rerewind/pkg/pipeline"
	"rerewind/pkg/raster"
)

func NewParams(s pipeline.Settings) *Params {
	return &Params{
		settings: s,
		wakeup:   make(chan struct{}, 1),
	}
}

type Params struct {
	l sync.RWMutex

	settings pipeline.Settings
	source   *raster.Buffer
	paused   bool
	wakeup   chan struct{}
}

func (p *Params) Settings() pipeline.Settings {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.settings
}

func (p *Params) Set(name string, v float64) error {
	p.l.Lock()
	defer p.l.Unlock()
	return p.settings.Set(name, v)
}

func (p *Params) Update(fn func(s *pipeline.Settings)) {
	p.l.Lock()
	defer p.l.Unlock()
	fn(&p.settings)
}

func (p *Params) Source() *raster.Buffer {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.source
}

// SetSource replaces the picture being rendered. The buffer must not be
// written afterwards.
func (p *Params) SetSource(b *raster.Buffer) {
	p.l.Lock()
	defer p.l.Unlock()
	p.source = b
}

func (p *Params) Paused() bool {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.paused
}

func (p *Params) WakeupChan() <-chan struct{} {
	return p.wakeup
}

func (p *Params) Pause() {
	p.l.Lock()
	defer p.l.Unlock()
	p.paused = true
}

// Wakeup resumes a paused loop. Extra wakeups are dropped.
func (p *Params) Wakeup() {
	p.l.Lock()
	p.paused = false
	p.l.Unlock()

	select {
	case p.wakeup <- struct{}{}:
	default:
	}
}
