// Package domainlist persists the disposable domain list as a flat,
// newline-delimited text file.
package domainlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	logpkg "github.com/haukened/dispofilter/internal/mail/common/log"
	"github.com/haukened/dispofilter/internal/mail/domain"
)

// FileStore implements the domain list store on top of a single text file.
// One domain per line, no header, no comments.
type FileStore struct {
	path   string
	logger logpkg.Logger
}

// New returns a FileStore for path. The file is not touched until Load or Replace.
func New(path string, logger logpkg.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load reads every line of the store in file order. Only the trailing line
// break is removed from each entry; blank lines and case are kept as-is.
// A missing or unreadable file yields domain.ErrStoreUnavailable.
func (s *FileStore) Load() ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrStoreUnavailable, s.path, err)
	}
	defer f.Close()

	out := make([]string, 0, 4096)
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			out = append(out, domain.TrimLineBreak(line))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", domain.ErrStoreUnavailable, s.path, err)
		}
	}

	s.logger.Debug(map[string]any{"path": s.path, "count": len(out)}, "store_loaded")
	return out, nil
}

// Replace overwrites the store with domains, one per line, in the given order.
// The new content is written to a temporary file next to the target and
// renamed over it, so readers never observe a partially written list.
// Failures yield domain.ErrStoreWrite and leave the previous file in place.
func (s *FileStore) Replace(domains []string) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp in %s: %w", domain.ErrStoreWrite, dir, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	w := bufio.NewWriter(tmp)
	for _, d := range domains {
		if _, err := w.WriteString(d); err != nil {
			cleanup()
			return fmt.Errorf("%w: write %s: %w", domain.ErrStoreWrite, tmpName, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			cleanup()
			return fmt.Errorf("%w: write %s: %w", domain.ErrStoreWrite, tmpName, err)
		}
	}
	if err := w.Flush(); err != nil {
		cleanup()
		return fmt.Errorf("%w: flush %s: %w", domain.ErrStoreWrite, tmpName, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		cleanup()
		return fmt.Errorf("%w: chmod %s: %w", domain.ErrStoreWrite, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %w", domain.ErrStoreWrite, tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: rename to %s: %w", domain.ErrStoreWrite, s.path, err)
	}

	s.logger.Debug(map[string]any{"path": s.path, "count": len(domains)}, "store_replaced")
	return nil
}
