package format

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var enPrinter = message.NewPrinter(language.English)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// Views renders a view count with thousands separators, e.g. "1,234,567".
func Views(n int64) string {
	if n < 0 {
		return "N/A"
	}
	return enPrinter.Sprintf("%d", n)
}

// Size renders a byte count in 1024 steps with at most two decimals and no
// trailing zeros: "512 Bytes", "1.5 KB", "10 MB". Zero and negative sizes
// are "N/A", matching how quality lists show unknown sizes.
func Size(b int64) string {
	if b <= 0 {
		return "N/A"
	}
	i := 0
	v := float64(b)
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

// Filesize renders an optional byte count; nil means the server did not know.
func Filesize(b *int64) string {
	if b == nil {
		return "N/A"
	}
	return Size(*b)
}
