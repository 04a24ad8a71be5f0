package remote

import (
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCtl struct {
	mu     sync.Mutex
	values map[string]float64
	paused bool
}

func (f *fakeCtl) Set(name string, v float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if name == "nope" {
		return assert.AnError
	}
	f.values[name] = v
	return nil
}

func (f *fakeCtl) Pause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = true
}

func (f *fakeCtl) Wakeup() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = false
}

func (f *fakeCtl) value(name string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[name]
}

func (f *fakeCtl) isPaused() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paused
}

func serve(t *testing.T) (*fakeCtl, *Store, *httptest.Server, *Client) {
	ctl := &fakeCtl{values: map[string]float64{}}
	store := &Store{}
	h, err := Handler(ctl, store)
	require.NoError(t, err)
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	c, err := New(strings.TrimPrefix(ts.URL, "http://"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return ctl, store, ts, c
}

func TestClientControls(t *testing.T) {
	ctl, _, _, c := serve(t)

	require.NoError(t, c.SetIntensity("zigZag", 4.5))
	assert.Equal(t, 4.5, ctl.value("zigZag"))
	assert.Error(t, c.SetIntensity("nope", 1))

	require.NoError(t, c.Pause())
	assert.True(t, ctl.isPaused())
	require.NoError(t, c.Resume())
	assert.False(t, ctl.isPaused())
}

func TestFramesRoundTrip(t *testing.T) {
	_, store, ts, c := serve(t)

	_, _, err := c.Frame()
	assert.Error(t, err)
	resp, err := http.Get(ts.URL + "/frame.png")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(2, 1, color.NRGBA{R: 200, G: 10, B: 30, A: 255})
	require.NoError(t, store.Show(img))
	require.NoError(t, c.Show(img))

	got, seq, err := c.Frame()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), seq)
	assert.Equal(t, image.Rect(0, 0, 3, 2), got.Bounds())
	r, g, b, a := got.At(2, 1).RGBA()
	assert.Equal(t, []uint32{200, 10, 30, 255}, []uint32{r >> 8, g >> 8, b >> 8, a >> 8})

	resp, err = http.Get(ts.URL + "/frame.png")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "2", resp.Header.Get("X-Frame-Seq"))
}

func TestPushRejectsGarbage(t *testing.T) {
	svc := &Service{store: &Store{}}
	err := svc.Push(&FrameMessage{Image: []byte("not a png")}, &Ack{})
	assert.Error(t, err)
	_, err = svc.store.Latest()
	assert.ErrorIs(t, err, ErrNoFrame)
}
