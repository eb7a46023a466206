// Package textnorm folds Vietnamese text for accent-insensitive matching.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var dReplacer = strings.NewReplacer("đ", "d", "Đ", "d")

// Fold lowercases s, strips combining marks and maps đ to d.
//
//	textnorm.Fold("  Đắc Nhân Tâm ") == "dac nhan tam"
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.TrimSpace(strings.ToLower(dReplacer.Replace(folded)))
}

// Contains reports whether needle occurs in haystack after folding both.
// An empty needle never matches.
func Contains(haystack, needle string) bool {
	n := Fold(needle)
	if n == "" {
		return false
	}
	return strings.Contains(Fold(haystack), n)
}

// ContainsAny reports whether any of the words occurs in s. Words are
// compared case-insensitively without folding diacritics, so "hủy" does
// not match "huy".
func ContainsAny(s string, words ...string) bool {
	lower := strings.ToLower(norm.NFC.String(s))
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
