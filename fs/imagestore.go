package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/cardsnap"
)

// Ensure ImageStore implements cardsnap.ImageStore at compile time.
var _ cardsnap.ImageStore = (*ImageStore)(nil)

// ImageStore implements cardsnap.ImageStore on a directory the user owns.
// Saved images are staged as hidden temporary files next to their final
// names and renamed into place on Commit. Files already in the directory
// are left alone, except for ones with the same name as a saved image.
type ImageStore struct {
	dir    string
	staged []staged
}

type staged struct {
	temp string
	name string
}

// NewImageStore creates a new ImageStore writing into dir. The directory is
// created on first Save if it does not exist.
func NewImageStore(dir string) *ImageStore {
	return &ImageStore{dir: dir}
}

// Save stages data to be written as name inside the directory. Names must be
// plain file names.
func (s *ImageStore) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return cardsnap.Errorf(cardsnap.EINVALID, "invalid image name %q", name)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	f, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		return err
	}
	s.staged = append(s.staged, staged{temp: f.Name(), name: name})

	if _, err := f.Write(data); err != nil {
		return errors.Join(err, f.Close())
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Chmod(f.Name(), 0644)
}

// Commit renames every staged image to its final name.
func (s *ImageStore) Commit() error {
	for i, st := range s.staged {
		if err := os.Rename(st.temp, filepath.Join(s.dir, st.name)); err != nil {
			s.staged = s.staged[i:]
			return errors.Join(err, s.Abort())
		}
	}
	s.staged = nil
	return nil
}

// Abort removes staged images that were not committed.
func (s *ImageStore) Abort() error {
	var errs []error
	for _, st := range s.staged {
		if err := os.Remove(st.temp); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	s.staged = nil
	return errors.Join(errs...)
}
