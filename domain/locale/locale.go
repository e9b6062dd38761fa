// Package locale handles the portal's two display languages.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a supported display language.
type Locale string

// Supported locales.
const (
	English Locale = "en"
	Arabic  Locale = "ar"
)

// Default is used when no usable locale is supplied.
const Default = English

var matcher = language.NewMatcher([]language.Tag{language.English, language.Arabic})

// Parse returns the locale named by s, or Default when s is not supported.
// Region subtags are accepted ("ar-AE" is Arabic).
func Parse(s string) Locale {
	s = strings.TrimSpace(s)
	if s == "" {
		return Default
	}
	tag, err := language.Parse(s)
	if err != nil {
		return Default
	}
	base, _ := tag.Base()
	switch base.String() {
	case "ar":
		return Arabic
	case "en":
		return English
	default:
		return Default
	}
}

// Negotiate picks the best supported locale for an Accept-Language header.
func Negotiate(acceptLanguage string) Locale {
	if strings.TrimSpace(acceptLanguage) == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	if idx == 1 {
		return Arabic
	}
	return English
}

// Resolve prefers an explicit locale parameter and falls back to the header.
func Resolve(param, acceptLanguage string) Locale {
	if strings.TrimSpace(param) != "" {
		return Parse(param)
	}
	return Negotiate(acceptLanguage)
}

// String returns the locale code.
func (l Locale) String() string { return string(l) }

// Direction returns the text direction used by the frontend.
func (l Locale) Direction() string {
	if l == Arabic {
		return "rtl"
	}
	return "ltr"
}

// IsValid reports whether l is a supported locale.
func (l Locale) IsValid() bool {
	return l == English || l == Arabic
}

// Text is a bilingual string stored as parallel English and Arabic fields.
type Text struct {
	En string
	Ar string
}

// NewText creates a bilingual text value.
func NewText(en, ar string) Text {
	return Text{En: en, Ar: ar}
}

// In returns the variant for l. Arabic falls back to English when the
// translation is missing.
func (t Text) In(l Locale) string {
	if l == Arabic && t.Ar != "" {
		return t.Ar
	}
	return t.En
}

// IsZero reports whether both variants are empty.
func (t Text) IsZero() bool {
	return t.En == "" && t.Ar == ""
}
