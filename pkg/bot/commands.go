package bot

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"rerewind/pkg/effect"
	"rerewind/pkg/export"
	"rerewind/pkg/live"
	"rerewind/pkg/pipeline"
	"rerewind/pkg/raster"
	"rerewind/pkg/source"
)

var (
	ErrNoPicture = errors.New("send a picture first")
	ErrBusy      = errors.New("another export is running")
	ErrUsage     = errors.New("usage: /set <name> <value>")
)

func NewCommands(p *pipeline.Pipeline, params *live.Params, tmp *TmpFs, opts ...Option) *Commands {
	c := &Commands{
		params:    params,
		tmp:       tmp,
		log:       zap.NewNop(),
		maxDim:    source.DefaultMaxDim,
		maxFrames: 120,
		timeout:   2 * time.Minute,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.exp = export.NewExporter(p, tmp.Fs(), export.WithLogger(c.log))
	return c
}

// Commands is what the chat commands do, apart from talking to Telegram.
type Commands struct {
	params    *live.Params
	exp       *export.Exporter
	tmp       *TmpFs
	log       *zap.Logger
	maxDim    int
	maxFrames int
	timeout   time.Duration

	busy sync.Mutex
}

func (c *Commands) Load(r io.Reader) (string, error) {
	img, err := source.Decode(r, c.maxDim)
	if err != nil {
		return "", err
	}
	b := raster.FromImage(img)
	c.params.SetSource(b)
	c.params.Wakeup()
	return fmt.Sprintf("Loaded %dx%d", b.Width(), b.Height()), nil
}

// Set changes one setting. Besides the effect names it accepts the
// animation knobs and "frames" and "duration".
func (c *Commands) Set(args []string) (string, error) {
	if len(args) == 1 && strings.Contains(args[0], "=") {
		args = strings.SplitN(args[0], "=", 2)
	}
	if len(args) != 2 {
		return "", ErrUsage
	}
	name, value := args[0], args[1]

	switch name {
	case "frames":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > c.maxFrames {
			return "", errors.Errorf("frames must be 1..%d", c.maxFrames)
		}
		c.params.Update(func(s *pipeline.Settings) { s.Frames = n })
	case "duration":
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return "", errors.Errorf("bad duration %q", value)
		}
		c.params.Update(func(s *pipeline.Settings) { s.Duration = pipeline.Duration{Duration: d} })
	default:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "", errors.Errorf("bad value %q", value)
		}
		if err := c.params.Set(name, v); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("%s = %s", name, value), nil
}

func (c *Commands) Settings() string {
	s := c.params.Settings()
	lines := lo.Map(s.Active(), func(name string, _ int) string {
		return fmt.Sprintf("%s: %g", name, s.Intensity(name))
	})
	if len(lines) == 0 {
		lines = append(lines, "no effects enabled")
	}
	lines = append(lines,
		fmt.Sprintf("zigZagSpeed: %g", s.ZigZagSpeed),
		fmt.Sprintf("animationSpeed: %g", s.AnimationSpeed),
		fmt.Sprintf("frames: %d", s.Frames),
		fmt.Sprintf("duration: %s", s.Duration.Duration),
	)
	return strings.Join(lines, "\n")
}

func (c *Commands) Effects() string {
	return strings.Join(lo.Map(effect.All(), func(e effect.Effect, _ int) string {
		return e.Name()
	}), "\n")
}

func (c *Commands) Reset() string {
	c.params.Update(func(s *pipeline.Settings) { *s = pipeline.DefaultSettings() })
	return "OK"
}

// Render exports the current picture into the temporary fs. The caller
// uploads the file at Rendered.Path and then calls Release.
func (c *Commands) Render(ctx context.Context, ext string) (*Rendered, error) {
	src := c.params.Source()
	if src == nil {
		return nil, ErrNoPicture
	}
	if !c.busy.TryLock() {
		return nil, ErrBusy
	}
	defer c.busy.Unlock()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	name := c.tmp.NewFile(ext)
	s := c.params.Settings()
	r, err := c.exp.Export(ctx, export.Job{
		Source:   src,
		Settings: s,
		Path:     name,
		Frames:   min(s.Frames, c.maxFrames),
		Seed:     time.Now().UnixNano(),
	})
	if err != nil {
		return nil, err
	}

	return &Rendered{
		Name:    name,
		Path:    c.tmp.RealPath(name),
		Report:  r,
		Caption: caption(r, s),
	}, nil
}

func (c *Commands) Release(r *Rendered) {
	if err := c.tmp.Remove(r.Name); err != nil {
		c.log.With(zap.String("file", r.Name), zap.Error(err)).Info("remove rendered file failed")
	}
}

type Rendered struct {
	Name    string
	Path    string
	Report  *export.Report
	Caption string
}

func caption(r *export.Report, s pipeline.Settings) string {
	active := s.Active()
	return fmt.Sprintf("%d frames, %s, took %s\n%s",
		r.Frames,
		bytesize.New(float64(r.Size)).String(),
		r.Duration.Round(time.Millisecond),
		lo.Ternary(len(active) > 0, strings.Join(active, ", "), "no effects"),
	)
}
