// Package dateutil canonicalizes date keys. Every store lookup is partitioned
// by the YYYY-MM-DD string this package produces.
package dateutil

import (
	"fmt"
	"strings"
	"time"

	"classboard/internal/apperr"
)

// KeyLayout is the canonical date key format.
const KeyLayout = "2006-01-02"

// SlashLayout is the legacy format found in historical lecture schedule rows.
const SlashLayout = "2006/01/02"

// layouts is the ordered list of accepted input formats. The canonical form
// is tried first; the slash form exists only for historical data.
var layouts = []string{KeyLayout, SlashLayout}

// Normalize parses s and returns the canonical YYYY-MM-DD key.
func Normalize(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(KeyLayout), nil
		}
	}
	return "", fmt.Errorf("%w: %q", apperr.ErrInvalidDate, s)
}

// SlashKey converts a canonical key to the legacy slash-delimited form.
func SlashKey(key string) string {
	return strings.ReplaceAll(key, "-", "/")
}

var jst = time.FixedZone("JST", 9*60*60)

// TodayJST returns today's canonical key in school-local time.
func TodayJST() string {
	return time.Now().In(jst).Format(KeyLayout)
}
