// Package assetname derives stored asset names for scanned images
// Pipeline order for Sanitize
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKD so accented letters split into base + mark
// 3 Remove combining marks and format chars
// 4 Width fold fullwidth to ASCII
// 5 Path separators and whitespace runs become a single underscore
// 6 Drop anything outside [A-Za-z0-9_.-], trim leading and trailing dots and underscores
package assetname

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Fallback is used when nothing of the client filename survives sanitising
const Fallback = "upload"

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

// windows device names that must never be used bare
var reserved = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {},
}

// Sanitize reduces a client supplied filename to a safe flat ASCII name
// the result may be empty
func Sanitize(name string) string {
	if name == "" {
		return ""
	}
	name = strings.ToValidUTF8(name, "")

	tr := chainPool.Get().(transform.Transformer)
	folded, _, err := transform.String(tr, name)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		folded = name
	}

	folded = strings.NewReplacer("/", " ", "\\", " ").Replace(folded)
	folded = strings.Join(strings.Fields(folded), "_")

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), "._")

	stem, _, _ := strings.Cut(out, ".")
	if _, bad := reserved[strings.ToUpper(stem)]; bad {
		out = "_" + out
	}
	return out
}

// ForUpload names an uploaded file as <unix>_<sanitized filename>
func ForUpload(now time.Time, filename string) string {
	s := Sanitize(filename)
	if s == "" {
		s = Fallback
	}
	return fmt.Sprintf("%d_%s", now.Unix(), s)
}

// ForCamera names a captured camera frame
func ForCamera(now time.Time) string {
	return fmt.Sprintf("camera_%d.jpg", now.Unix())
}
