package remote

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"strconv"
	"sync"

	"github.com/pkg/errors"
)

var ErrNoFrame = errors.New("no frame yet")

// Store keeps the latest live frame as PNG. It is the Screen the live
// renderer draws on when previewing over the network.
type Store struct {
	mu    sync.RWMutex
	seq   uint64
	frame []byte
}

func (s *Store) Show(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return errors.Wrap(err, "encode frame")
	}
	s.put(buf.Bytes())
	return nil
}

func (s *Store) put(bs []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.frame = bs
}

// Latest returns the newest frame and its sequence number.
func (s *Store) Latest() (FrameMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.frame == nil {
		return FrameMessage{}, ErrNoFrame
	}
	return FrameMessage{Seq: s.seq, Image: s.frame}, nil
}

// ServeHTTP answers with the latest frame as image/png.
func (s *Store) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	msg, err := s.Latest()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Frame-Seq", strconv.FormatUint(msg.Seq, 10))
	_, _ = w.Write(msg.Image)
}
