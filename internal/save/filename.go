// Package save turns a successful download response into a file on disk.
package save

import (
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"
)

var filenameRe = regexp.MustCompile(`filename\*?=['"]?(?:UTF-\d['"]*)?([^;\r\n"']*)['"]?;?`)

// DeriveFilename picks the save name for a response. When Content-Disposition
// carries an attachment filename it wins: '+' becomes a space and the value
// is percent-decoded, keeping the raw text if decoding fails, and any
// directory part the server sent is dropped. Otherwise the fallback is
// returned untouched, so a title containing "/" stays whole.
func DeriveFilename(h http.Header, fallback string) string {
	cd := h.Get("Content-Disposition")
	if cd == "" || !strings.Contains(cd, "attachment") {
		return fallback
	}
	m := filenameRe.FindStringSubmatch(cd)
	if m == nil || m[1] == "" {
		return fallback
	}
	raw := m[1]
	name, err := url.PathUnescape(strings.ReplaceAll(raw, "+", " "))
	if err != nil {
		name = raw
	}
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return fallback
	}
	return name
}
