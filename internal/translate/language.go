package translate

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// English is the source language of every transcript.
const English = "en"

// Supported lists the target languages, in display order.
var Supported = []string{"en", "es", "hi", "fr", "de"}

// LanguageName returns the English name of a supported language code.
// Unsupported codes fall back to "English".
func LanguageName(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if !isSupported(code) {
		code = English
	}
	return display.English.Languages().Name(language.Make(code))
}

// Code resolves a language code or English language name ("Spanish") to a
// supported code.
func Code(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if isSupported(strings.ToLower(s)) {
		return strings.ToLower(s), true
	}
	for _, code := range Supported {
		if strings.EqualFold(LanguageName(code), s) {
			return code, true
		}
	}
	return "", false
}

func isSupported(code string) bool {
	for _, c := range Supported {
		if c == code {
			return true
		}
	}
	return false
}
