// Package lang provides the validated Language value type used to build
// word-of-the-day prompts (the language of the word and the learner's own).
package lang

import (
	"fmt"
	"strings"
)

type info struct {
	name string
	flag string
}

// known maps ISO 639-1 base codes to an English name and the flag shown next
// to text in that language. A language spoken in several countries gets the
// flag of the country it is most often taught from.
var known = map[string]info{
	"ar": {"Arabic", "🇸🇦"},
	"bg": {"Bulgarian", "🇧🇬"},
	"cs": {"Czech", "🇨🇿"},
	"da": {"Danish", "🇩🇰"},
	"de": {"German", "🇩🇪"},
	"el": {"Greek", "🇬🇷"},
	"en": {"English", "🇬🇧"},
	"es": {"Spanish", "🇪🇸"},
	"et": {"Estonian", "🇪🇪"},
	"fi": {"Finnish", "🇫🇮"},
	"fr": {"French", "🇫🇷"},
	"he": {"Hebrew", "🇮🇱"},
	"hi": {"Hindi", "🇮🇳"},
	"hr": {"Croatian", "🇭🇷"},
	"hu": {"Hungarian", "🇭🇺"},
	"id": {"Indonesian", "🇮🇩"},
	"it": {"Italian", "🇮🇹"},
	"ja": {"Japanese", "🇯🇵"},
	"ko": {"Korean", "🇰🇷"},
	"lt": {"Lithuanian", "🇱🇹"},
	"lv": {"Latvian", "🇱🇻"},
	"nl": {"Dutch", "🇳🇱"},
	"no": {"Norwegian", "🇳🇴"},
	"pl": {"Polish", "🇵🇱"},
	"pt": {"Portuguese", "🇵🇹"},
	"ro": {"Romanian", "🇷🇴"},
	"ru": {"Russian", "🇷🇺"},
	"sk": {"Slovak", "🇸🇰"},
	"sl": {"Slovenian", "🇸🇮"},
	"sr": {"Serbian", "🇷🇸"},
	"sv": {"Swedish", "🇸🇪"},
	"tr": {"Turkish", "🇹🇷"},
	"uk": {"Ukrainian", "🇺🇦"},
	"vi": {"Vietnamese", "🇻🇳"},
	"zh": {"Chinese", "🇨🇳"},
}

// regional overrides flag and name for common locales.
var regional = map[string]info{
	"en-us": {"American English", "🇺🇸"},
	"en-gb": {"British English", "🇬🇧"},
	"pt-br": {"Brazilian Portuguese", "🇧🇷"},
	"fr-ca": {"Canadian French", "🇨🇦"},
	"es-mx": {"Mexican Spanish", "🇲🇽"},
	"de-at": {"Austrian German", "🇦🇹"},
	"de-ch": {"Swiss German", "🇨🇭"},
}

// Language is a validated language code ("de", "pt-br").
// The zero value means "not specified".
type Language struct {
	code string
}

// Normalize lowercases a code and uses "-" as separator: "pt_BR" -> "pt-br".
func Normalize(code string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(code), "_", "-"))
}

// Parse validates code and returns a Language.
// Regional variants are accepted when their base code is known.
func Parse(code string) (Language, error) {
	normalized := Normalize(code)
	if normalized == "" {
		return Language{}, fmt.Errorf("empty language code: %w", ErrInvalid)
	}
	if _, ok := known[baseOf(normalized)]; !ok {
		return Language{}, fmt.Errorf("unsupported language code %q (use ISO 639-1 codes like 'de', 'pl', 'pt-BR'): %w",
			code, ErrInvalid)
	}
	return Language{code: normalized}, nil
}

// MustParse is like Parse but panics on error.
// Use only with constant codes.
func MustParse(code string) Language {
	l, err := Parse(code)
	if err != nil {
		panic(err)
	}
	return l
}

// String returns the normalized code.
func (l Language) String() string {
	return l.code
}

// IsZero reports whether the language is unset.
func (l Language) IsZero() bool {
	return l.code == ""
}

// Base returns the ISO 639-1 part of the code: "pt-br" -> "pt".
func (l Language) Base() string {
	return baseOf(l.code)
}

// Name returns the English name, e.g. "German" or "Brazilian Portuguese".
func (l Language) Name() string {
	if r, ok := regional[l.code]; ok {
		return r.name
	}
	if k, ok := known[l.Base()]; ok {
		return k.name
	}
	return l.code
}

// Flag returns the flag emoji for the language, or "" when unset.
func (l Language) Flag() string {
	if r, ok := regional[l.code]; ok {
		return r.flag
	}
	return known[l.Base()].flag
}

func baseOf(normalized string) string {
	if idx := strings.Index(normalized, "-"); idx != -1 {
		return normalized[:idx]
	}
	return normalized
}

// Pair is the language of the word and the language the learner reads.
type Pair struct {
	Word   Language
	Native Language
}

// NewPair parses both codes and checks that they differ.
func NewPair(word, native string) (Pair, error) {
	w, err := Parse(word)
	if err != nil {
		return Pair{}, fmt.Errorf("word language: %w", err)
	}
	n, err := Parse(native)
	if err != nil {
		return Pair{}, fmt.Errorf("native language: %w", err)
	}
	if w.Base() == n.Base() {
		return Pair{}, fmt.Errorf("%s/%s: %w", w, n, ErrSamePair)
	}
	return Pair{Word: w, Native: n}, nil
}
