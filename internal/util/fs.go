package util

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// EnsureDir creates the directory path if it does not exist.
func EnsureDir(path string) error {
	if path == "" {
		return errors.New("empty path")
	}
	return os.MkdirAll(path, 0o755)
}

// RemoveIfExists deletes the file if present.
func RemoveIfExists(path string) error {
	if _, err := os.Stat(path); err == nil {
		return os.Remove(path)
	} else if os.IsNotExist(err) {
		return nil
	} else {
		return err
	}
}

// SanitizeFilename makes a name safe to create in a single directory. Unlike
// a slug it keeps spaces, since saved names should look the way the server
// or the video title had them:
// - Replace path separators and characters forbidden on common filesystems,
//   so "AC/DC - Live.mp4" keeps its whole title as "AC_DC - Live.mp4"
// - Trim leading/trailing dots and spaces
// - Truncate to a reasonable length (~200 runes), preserving the extension
func SanitizeFilename(s string) string {
	forbidden := `<>:"/\|?*` + "\x00"
	for _, r := range forbidden {
		s = strings.ReplaceAll(s, string(r), "_")
	}
	s = strings.Map(func(r rune) rune {
		if r < 0x20 {
			return -1
		}
		return r
	}, s)
	s = strings.Trim(s, ". ")

	const maxRunes = 200
	if utf8.RuneCountInString(s) > maxRunes {
		ext := filepath.Ext(s)
		if utf8.RuneCountInString(ext) > 16 {
			ext = ""
		}
		stem := []rune(strings.TrimSuffix(s, ext))
		s = string(stem[:maxRunes-utf8.RuneCountInString(ext)]) + ext
	}

	if s == "" {
		return "untitled"
	}
	return s
}
