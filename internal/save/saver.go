package save

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"vidgrab/internal/util"
)

// Saved describes a file written by Saver.
type Saved struct {
	Path  string
	Name  string
	Bytes int64
}

// Saver writes response bodies into one output directory.
type Saver struct {
	Dir string
}

// NewSaver returns a Saver for dir ("." when empty).
func NewSaver(dir string) *Saver {
	if dir == "" {
		dir = "."
	}
	return &Saver{Dir: filepath.Clean(dir)}
}

// Save streams body to Dir/name. Separators in name are replaced, never
// treated as directories, and
// an existing file is never overwritten: "clip.mp4" becomes "clip (1).mp4".
// Partial files are removed on failure.
func (s *Saver) Save(name string, body io.Reader) (Saved, error) {
	if err := util.EnsureDir(s.Dir); err != nil {
		return Saved{}, fmt.Errorf("ensure output dir: %w", err)
	}
	name = util.SanitizeFilename(name)

	tmp, err := os.CreateTemp(s.Dir, ".vidgrab-*.part")
	if err != nil {
		return Saved{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	n, copyErr := io.Copy(tmp, body)
	// CreateTemp uses 0600 and the rename keeps it.
	chmodErr := tmp.Chmod(0o644)
	closeErr := tmp.Close()
	if err := errors.Join(copyErr, chmodErr, closeErr); err != nil {
		_ = util.RemoveIfExists(tmpPath)
		return Saved{}, fmt.Errorf("write %s: %w", name, err)
	}

	final, err := s.claim(name)
	if err != nil {
		_ = util.RemoveIfExists(tmpPath)
		return Saved{}, err
	}
	if err := os.Rename(tmpPath, final); err != nil {
		_ = util.RemoveIfExists(tmpPath)
		_ = util.RemoveIfExists(final)
		return Saved{}, fmt.Errorf("rename to %s: %w", final, err)
	}
	return Saved{Path: final, Name: filepath.Base(final), Bytes: n}, nil
}

// claim reserves a free path for name by creating it exclusively.
func (s *Saver) claim(name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; i < 10000; i++ {
		candidate := name
		if i > 0 {
			candidate = stem + " (" + strconv.Itoa(i) + ")" + ext
		}
		p := filepath.Join(s.Dir, candidate)
		f, err := os.OpenFile(p, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			_ = f.Close()
			return p, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("reserve %s: %w", candidate, err)
		}
	}
	return "", fmt.Errorf("no free file name for %q in %s", name, s.Dir)
}
