package notification

import "golang.org/x/text/language"

type Lang string

const (
	RU Lang = "ru"
	EN Lang = "en"
)

var (
	supportedTags = []language.Tag{language.Russian, language.English}
	langMatcher   = language.NewMatcher(supportedTags)
)

// MatchLang maps a stored locale or Accept-Language value to a supported
// language, falling back to fallback when nothing matches.
func MatchLang(locale string, fallback Lang) Lang {
	if locale == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := langMatcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	if supportedTags[idx] == language.English {
		return EN
	}
	return RU
}

// ParseLang accepts only exact supported codes and defaults to RU.
func ParseLang(s string) Lang {
	if Lang(s) == EN {
		return EN
	}
	return RU
}
