package documents

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps document bytes as flat files in one directory, addressed
// only by stored filename.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Dir() string { return s.dir }

// Save writes r under name, or under the first free name_1.ext, name_2.ext, …
// when name is taken, and returns the name used. Each candidate is claimed
// with an exclusive create, so concurrent saves never share a file.
func (s *FileStore) Save(name string, r io.Reader) (string, error) {
	if err := checkLeaf(name); err != nil {
		return "", err
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := name
	for i := 1; ; i++ {
		f, err := os.OpenFile(filepath.Join(s.dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create %s: %w", candidate, err)
		}

		if _, err := io.Copy(f, r); err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
			return "", fmt.Errorf("write %s: %w", candidate, err)
		}
		if err := f.Close(); err != nil {
			_ = os.Remove(f.Name())
			return "", fmt.Errorf("close %s: %w", candidate, err)
		}
		return candidate, nil
	}
}

// Remove deletes the named file. A file that is already gone is not an error.
func (s *FileStore) Remove(name string) error {
	if err := checkLeaf(name); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Path returns the on-disk location of name after checking that it exists.
func (s *FileStore) Path(name string) (string, error) {
	if err := checkLeaf(name); err != nil {
		return "", err
	}
	p := filepath.Join(s.dir, name)
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrFileMissing
		}
		return "", err
	}
	if info.IsDir() {
		return "", ErrFileMissing
	}
	return p, nil
}

func checkLeaf(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid stored filename %q", name)
	}
	return nil
}
