package export

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Container string

const (
	MP4  Container = "mp4"
	WebM Container = "webm"
)

type VideoOption func(e *videoEncoder)

// WithFFmpeg sets the ffmpeg binary to run.
func WithFFmpeg(bin string) VideoOption {
	return func(e *videoEncoder) {
		e.bin = bin
	}
}

// Video pipes raw RGBA frames through an ffmpeg subprocess.
func Video(c Container, opts ...VideoOption) Encoder {
	e := &videoEncoder{container: c, bin: "ffmpeg"}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type videoEncoder struct {
	container Container
	bin       string
}

func (e *videoEncoder) Ext() string {
	return "." + string(e.container)
}

// Loops is false: video players stop at the end, so the exporter closes the
// loop with an extra frame.
func (e *videoEncoder) Loops() bool {
	return false
}

func (e *videoEncoder) args(delay time.Duration, width, height int) []string {
	fps := float64(time.Second) / float64(max(delay, time.Millisecond))
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-f", "rawvideo", "-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-framerate", fmt.Sprintf("%.3f", fps),
		"-i", "pipe:0",
		// yuv420p needs even dimensions
		"-vf", "scale=trunc(iw/2)*2:trunc(ih/2)*2",
		"-pix_fmt", "yuv420p",
	}
	switch e.container {
	case WebM:
		args = append(args, "-c:v", "libvpx-vp9", "-b:v", "0", "-crf", "32", "-f", "webm")
	default:
		args = append(args, "-c:v", "libx264", "-movflags", "frag_keyframe+empty_moov", "-f", "mp4")
	}
	return append(args, "pipe:1")
}

func (e *videoEncoder) Encode(w io.Writer, frames []Snapshot, delay time.Duration, width, height int) error {
	if err := check(frames, width, height); err != nil {
		return err
	}

	var stderr bytes.Buffer
	cmd := exec.Command(e.bin, e.args(delay, width, height)...)
	cmd.Stdout = w
	cmd.Stderr = &stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "start %s", e.bin)
	}

	var werr error
	for _, f := range frames {
		if _, werr = stdin.Write(f.Image.Pix); werr != nil {
			break
		}
	}
	_ = stdin.Close()

	if err := cmd.Wait(); err != nil {
		return errors.Wrapf(err, "%s: %s", e.bin, strings.TrimSpace(stderr.String()))
	}
	return werr
}
