package source

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/afero"
)

// NewCache stores fitted sources as png files on fs. A nil fs disables it.
func NewCache(fs afero.Fs) *Cache {
	return &Cache{fs: fs}
}

type Cache struct {
	fs afero.Fs
}

func (c *Cache) dirname(maxDim int) string {
	return fmt.Sprintf("fit-%d", maxDim)
}

func (c *Cache) filename(location string, maxDim int) string {
	sum := sha1.Sum([]byte(location))
	return fmt.Sprintf("%s/%s.png", c.dirname(maxDim), hex.EncodeToString(sum[:]))
}

func (c *Cache) Load(location string, maxDim int) (image.Image, bool, error) {
	if c == nil || c.fs == nil {
		return nil, false, nil
	}

	bs, err := afero.ReadFile(c.fs, c.filename(location, maxDim))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	img, err := png.Decode(bytes.NewReader(bs))
	if err != nil {
		return nil, false, err
	}

	return img, true, nil
}

func (c *Cache) Save(location string, maxDim int, img image.Image) error {
	if c == nil || c.fs == nil {
		return nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	if err := c.fs.MkdirAll(c.dirname(maxDim), 0755); err != nil {
		return err
	}

	return afero.WriteFile(c.fs, c.filename(location, maxDim), buf.Bytes(), 0644)
}
