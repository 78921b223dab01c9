package detect

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Lister reads the entries of a directory.
type Lister interface {
	List(path string) ([]Entry, error)
}

// FSLister implements Lister on top of an afero filesystem.
type FSLister struct {
	Fs afero.Fs
}

// NewOSLister returns a Lister backed by the operating system filesystem.
func NewOSLister() *FSLister {
	return &FSLister{Fs: afero.NewOsFs()}
}

// List returns the entries of path. Symlinks are followed, so a link to a
// directory is reported as a directory; a broken link is a plain entry.
func (l *FSLister) List(path string) ([]Entry, error) {
	infos, err := afero.ReadDir(l.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		isDir := info.IsDir()
		if info.Mode()&os.ModeSymlink != 0 {
			if target, err := l.Fs.Stat(filepath.Join(path, info.Name())); err == nil {
				isDir = target.IsDir()
			}
		}
		entries = append(entries, Entry{Name: info.Name(), IsDir: isDir})
	}
	return entries, nil
}

// Scan lists path and matches it against spec. A listing failure is reported
// as a non-match together with an error wrapping ErrDetectionUnavailable.
func Scan(l Lister, path string, spec DetectionSpec) (bool, error) {
	if spec.Empty() {
		return false, nil
	}
	entries, err := l.List(path)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrDetectionUnavailable, err)
	}
	return Matches(entries, spec), nil
}
