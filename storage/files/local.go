// Package files implements the submission store.
package files

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/trezcool/edtrack/core/assignment"
)

// LocalStore keeps submissions as plain files in a single directory.
type LocalStore struct {
	dir string
}

var _ assignment.FileStore = (*LocalStore)(nil) // interface compliance check

// NewLocalStore creates dir (and parents) if missing.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating submission dir %q", dir)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Dir() string { return s.dir }

// Save writes r to <dir>/<name>, truncating any previous file, and returns that path.
func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, filepath.Base(name))

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "creating %q", path)
	}
	if _, err = io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", errors.Wrapf(err, "writing %q", path)
	}
	if err = f.Close(); err != nil {
		return "", errors.Wrapf(err, "closing %q", path)
	}
	return path, nil
}
