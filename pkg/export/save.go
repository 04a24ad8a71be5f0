package export

import (
	"bufio"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/spf13/afero"
)

// Save encodes frames next to path under a temporary name and renames it
// into place once complete, so path only ever holds a finished export. On
// failure the temporary file is removed and path is left as it was. It
// returns the size written.
func Save(fs afero.Fs, path string, enc Encoder, frames []Snapshot, delay time.Duration) (int64, error) {
	if len(frames) == 0 {
		return 0, ErrNoFrames
	}

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	tmp := filepath.Join(dir, "."+xid.New().String()+enc.Ext()+".part")

	size, err := write(fs, tmp, enc, frames, delay)
	if err != nil {
		_ = fs.Remove(tmp)
		return 0, err
	}
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return 0, errors.Wrap(err, "rename export")
	}
	return size, nil
}

func write(fs afero.Fs, tmp string, enc Encoder, frames []Snapshot, delay time.Duration) (int64, error) {
	f, err := fs.Create(tmp)
	if err != nil {
		return 0, err
	}

	b := frames[0].Image.Rect
	w := &counter{w: bufio.NewWriter(f)}
	if err := enc.Encode(w, frames, delay, b.Dx(), b.Dy()); err != nil {
		_ = f.Close()
		return 0, errors.Wrap(err, "encode")
	}
	if err := w.w.Flush(); err != nil {
		_ = f.Close()
		return 0, err
	}
	return w.n, f.Close()
}

type counter struct {
	w *bufio.Writer
	n int64
}

func (c *counter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
