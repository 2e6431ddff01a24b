package domain

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/unicode/norm"
)

// LocaleInfo describes the locale a document's file name refers to.
type LocaleInfo struct {
	Tag  string `json:"tag"`
	Name string `json:"name"`
}

var englishNames = display.Tags(language.English)

// LocaleOf parses the base name of fileID, without extension, as a BCP 47
// language tag. "fr-FR.json" yields {fr-FR, French (France)}.
func LocaleOf(fileID string) (LocaleInfo, bool) {
	base := filepath.Base(fileID)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		return LocaleInfo{}, false
	}

	tag, err := language.Parse(base)
	if err != nil {
		return LocaleInfo{}, false
	}
	return LocaleInfo{Tag: tag.String(), Name: englishNames.Name(tag)}, true
}

// NormalizeKey puts a key in Unicode NFC. Key comparison is byte-exact; this
// is only used to recognise composed and decomposed spellings as rename hints.
func NormalizeKey(key string) string {
	return norm.NFC.String(key)
}
