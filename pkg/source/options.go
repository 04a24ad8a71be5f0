package source

import "github.com/spf13/afero"

type Option func(l *Loader)

// WithMaxDim bounds the longer side of loaded pictures; 0 keeps the
// original size.
func WithMaxDim(n int) Option {
	return func(l *Loader) {
		if n >= 0 {
			l.maxDim = n
		}
	}
}

func WithProgress(on bool) Option {
	return func(l *Loader) {
		l.progress = on
	}
}

// WithCache keeps fitted pictures on fs so repeated loads skip the fetch.
func WithCache(fs afero.Fs) Option {
	return func(l *Loader) {
		l.cache = NewCache(fs)
	}
}
