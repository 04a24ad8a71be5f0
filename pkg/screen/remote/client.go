package remote

import (
	"bytes"
	"image"
	"image/png"
	"net/rpc"
)

func New(addr string) (*Client, error) {
	client, err := rpc.DialHTTP("tcp", addr)
	if err != nil {
		return nil, err
	}

	return &Client{rpc: client}, nil
}

// Client drives a preview server. It is also a Screen that pushes frames.
type Client struct {
	rpc *rpc.Client
}

func (c *Client) Pause() error {
	return c.rpc.Call("Service.Command", "pause", &Ack{})
}

func (c *Client) Resume() error {
	return c.rpc.Call("Service.Command", "resume", &Ack{})
}

func (c *Client) SetIntensity(name string, v float64) error {
	return c.rpc.Call("Service.SetIntensity", SetIntensityRequest{Name: name, Value: v}, &Ack{})
}

func (c *Client) Show(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	return c.rpc.Call("Service.Push", &FrameMessage{Image: buf.Bytes()}, &Ack{})
}

// Frame fetches the latest frame.
func (c *Client) Frame() (image.Image, uint64, error) {
	var msg FrameMessage
	if err := c.rpc.Call("Service.Frame", 0, &msg); err != nil {
		return nil, 0, err
	}
	img, err := png.Decode(bytes.NewReader(msg.Image))
	return img, msg.Seq, err
}

func (c *Client) Close() error {
	return c.rpc.Close()
}
