package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/indigo-web/minihttp/http/status"
)

// Storage reads and writes whole files by name. Errors are status.HTTPError-classified:
// status.ErrForbidden for names escaping the root, status.ErrNotFound for failed reads
// and status.ErrInternalServerError for failed writes.
type Storage interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
}

var _ Storage = Dir("")

// Dir is a Storage rooted at the directory. Access isn't synchronized, so concurrent
// writes to the same file race and the last one wins.
type Dir string

func (d Dir) Read(name string) ([]byte, error) {
	path, err := d.resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", status.ErrNotFound, err)
	}

	return data, nil
}

func (d Dir) Write(name string, data []byte) error {
	path, err := d.resolve(name)
	if err != nil {
		return err
	}

	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", status.ErrInternalServerError, err)
	}

	return nil
}

// resolve joins the name to the root. Names pointing at the root itself or outside
// of it are forbidden.
func (d Dir) resolve(name string) (string, error) {
	root := filepath.Clean(string(d))
	path := filepath.Join(root, filepath.FromSlash(name))

	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q escapes the files directory", status.ErrForbidden, name)
	}

	return path, nil
}
