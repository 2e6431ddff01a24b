package domain

import (
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
)

// RenameHint pairs a missing key with an extra key that spells the same words.
type RenameHint struct {
	Missing string `json:"missing"`
	Extra   string `json:"extra"`
}

// RenameHints finds extra keys that look like renamed missing keys, such as
// "saveButton" and "save_button", or two Unicode spellings of the same key.
// Each key is used at most once; pairs follow the order of missing.
func RenameHints(missing, extra []string) []RenameHint {
	if len(missing) == 0 || len(extra) == 0 {
		return nil
	}

	byWords := make(map[string][]string, len(extra))
	for _, e := range extra {
		w := keyWords(e)
		byWords[w] = append(byWords[w], e)
	}

	var hints []RenameHint
	for _, m := range missing {
		w := keyWords(m)
		candidates := byWords[w]
		if w == "" || len(candidates) == 0 {
			continue
		}
		hints = append(hints, RenameHint{Missing: m, Extra: candidates[0]})
		byWords[w] = candidates[1:]
	}
	return hints
}

// keyWords splits an identifier into lowercase words joined by a single space.
// Separators such as '_', '-' and '.' are dropped, and the result is NFC.
func keyWords(key string) string {
	var words []string
	for _, part := range camelcase.Split(NormalizeKey(key)) {
		part = strings.TrimFunc(part, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if part == "" {
			continue
		}
		words = append(words, strings.ToLower(part))
	}
	return strings.Join(words, " ")
}
