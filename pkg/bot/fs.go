package bot

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/xid"
	"github.com/spf13/afero"
)

func NewTmpFs(dir string) (*TmpFs, error) {
	fs := afero.NewOsFs()
	if dir == "" {
		dir = os.TempDir()
	}
	if exists, err := afero.DirExists(fs, dir); err != nil {
		return nil, fmt.Errorf("create tmpdir failed: %w", err)
	} else if !exists {
		return nil, errors.New("dir not exists")
	}
	return newTmpFs(fs, dir), nil
}

func newTmpFs(base afero.Fs, dir string) *TmpFs {
	return &TmpFs{fs: afero.NewBasePathFs(base, dir).(*afero.BasePathFs)}
}

// TmpFs holds rendered files between export and upload.
type TmpFs struct {
	fs *afero.BasePathFs
}

func (t *TmpFs) Fs() afero.Fs {
	return t.fs
}

// NewFile returns a fresh name for a file with the given extension.
func (t *TmpFs) NewFile(ext string) string {
	return xid.New().String() + ext
}

func (t *TmpFs) RealPath(name string) string {
	p, _ := t.fs.RealPath(name)
	return p
}

func (t *TmpFs) Remove(name string) error {
	return t.fs.Remove(name)
}
