package screen

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMulti(t *testing.T) {
	var got []int
	boom := errors.New("boom")
	s := Multi(
		Func(func(img image.Image) error { got = append(got, 1); return nil }),
		Func(func(img image.Image) error { got = append(got, 2); return boom }),
		Func(func(img image.Image) error { got = append(got, 3); return nil }),
	)

	err := s.Show(image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{1, 2, 3}, got)
}
