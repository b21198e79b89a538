package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify derives an ASCII, lowercase, dash-separated slug from free text such
// as a post title or a tag. Accents are folded ("Café" becomes "cafe") and
// everything else that is not a letter or digit separates words.
// Text with nothing left after folding gets a short hash-based slug so that the
// result is never empty.
func Slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
			continue
		}
		pendingDash = true
	}

	if b.Len() == 0 {
		sum := sha256.Sum256([]byte(s))
		return "x-" + hex.EncodeToString(sum[:4])
	}
	return b.String()
}
