package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "My Video.mp4", want: "My Video.mp4"},
		{name: "slash in a title is kept as underscore", in: "AC/DC - Live.mp4", want: "AC_DC - Live.mp4"},
		{name: "backslash in a title", in: `Left\Right.mp4`, want: "Left_Right.mp4"},
		{name: "traversal cannot leave the directory", in: "../../etc/passwd", want: "_.._etc_passwd"},
		{name: "forbidden characters", in: `a<b>c:d"e|f?g*.jpg`, want: "a_b_c_d_e_f_g_.jpg"},
		{name: "control characters", in: "line\nbreak.mp4", want: "linebreak.mp4"},
		{name: "leading dots", in: "..hidden", want: "hidden"},
		{name: "empty", in: "", want: "untitled"},
		{name: "only dots", in: "...", want: "untitled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.in); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename_TruncateKeepsExtension(t *testing.T) {
	long := strings.Repeat("é", 300) + ".mp4"
	got := SanitizeFilename(long)
	if utf8.RuneCountInString(got) != 200 {
		t.Errorf("rune count = %d, want 200", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, ".mp4") {
		t.Errorf("extension lost: %q", got[len(got)-8:])
	}
}

func TestRemoveIfExists(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "f.tmp")
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := RemoveIfExists(p); err != nil {
		t.Fatalf("RemoveIfExists() error: %v", err)
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Errorf("file still present: %v", err)
	}
	if err := RemoveIfExists(p); err != nil {
		t.Errorf("RemoveIfExists() on missing file: %v", err)
	}
}
