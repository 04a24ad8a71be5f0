// Package screen defines where live frames go.
package screen

import (
	"errors"
	"image"
)

// Screen receives every rendered frame. Implementations must not keep img
// past the call unless they copy it.
type Screen interface {
	Show(img image.Image) error
}

// Func adapts a plain function to a Screen.
type Func func(img image.Image) error

func (f Func) Show(img image.Image) error {
	return f(img)
}

// Multi shows each frame on every screen, collecting all errors.
func Multi(screens ...Screen) Screen {
	return Func(func(img image.Image) error {
		var errs []error
		for _, s := range screens {
			if err := s.Show(img); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
