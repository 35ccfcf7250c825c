package domain

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText prepares text for indexing and duplicate comparison:
//   - applies Unicode NFKC normalization (full-width/half-width folding,
//     compatibility forms)
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses runs of whitespace into a single space
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeText(text string) string {
	text = norm.NFKC.String(text)
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteRune(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// ContentHash returns the hex SHA-1 of the normalized text. Two sentences
// with the same hash are considered duplicates of each other.
func ContentHash(text string) string {
	sum := sha1.Sum([]byte(NormalizeText(text)))
	return hex.EncodeToString(sum[:])
}
