package save

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"vidgrab/internal/util/media"
)

func TestSaver_Save(t *testing.T) {
	dir := t.TempDir()
	s := NewSaver(dir)

	got, err := s.Save("My Video.mp4", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if got.Name != "My Video.mp4" {
		t.Errorf("Name = %q, want My Video.mp4", got.Name)
	}
	if got.Bytes != int64(len("payload")) {
		t.Errorf("Bytes = %d, want %d", got.Bytes, len("payload"))
	}
	data, err := os.ReadFile(filepath.Join(dir, "My Video.mp4"))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("content = %q, want payload", data)
	}
}

func TestSaver_SaveDeduplicates(t *testing.T) {
	dir := t.TempDir()
	s := NewSaver(dir)

	names := []string{}
	for i := 0; i < 3; i++ {
		got, err := s.Save("clip.mp4", strings.NewReader("x"))
		if err != nil {
			t.Fatalf("Save() #%d error: %v", i, err)
		}
		names = append(names, got.Name)
	}
	want := []string{"clip.mp4", "clip (1).mp4", "clip (2).mp4"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("save #%d name = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestSaver_SaveStaysInOutputDir(t *testing.T) {
	dir := t.TempDir()
	got, err := NewSaver(dir).Save("../../escape.jpg", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if filepath.Dir(got.Path) != filepath.Clean(dir) {
		t.Errorf("saved outside output dir: %s", got.Path)
	}
	if got.Name != "_.._escape.jpg" {
		t.Errorf("Name = %q, want _.._escape.jpg", got.Name)
	}
}

func TestSaver_SaveKeepsWholeTitle(t *testing.T) {
	dir := t.TempDir()
	name := DeriveFilename(http.Header{}, media.MediaFallback("AC/DC - Live", "mp4"))
	got, err := NewSaver(dir).Save(name, strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if got.Name != "AC_DC - Live.mp4" {
		t.Errorf("Name = %q, want %q", got.Name, "AC_DC - Live.mp4")
	}
	if filepath.Dir(got.Path) != filepath.Clean(dir) {
		t.Errorf("saved outside output dir: %s", got.Path)
	}
}

func TestSaver_SaveIsWorldReadable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	got, err := NewSaver(t.TempDir()).Save("clip.mp4", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	info, err := os.Stat(got.Path)
	if err != nil {
		t.Fatal(err)
	}
	if mode := info.Mode().Perm(); mode != 0o644 {
		t.Errorf("mode = %v, want -rw-r--r--", mode)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestSaver_SaveRemovesPartialOnError(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewSaver(dir).Save("broken.mp4", failingReader{}); err == nil {
		t.Fatal("Save() expected error")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("leftover files: %v", entries)
	}
}

func TestSaver_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	if _, err := NewSaver(dir).Save("a.jpg", strings.NewReader("x")); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.jpg")); err != nil {
		t.Errorf("file not created: %v", err)
	}
}
