package models

import (
	"strings"

	"golang.org/x/text/language"
)

// LocaleParts splits a locale identifier into language and region.
// Identifiers such as "fr", "fr-CA", "fr_CA" and "FR-ca" are accepted.
// ok is false when the identifier is not a valid BCP 47 tag; base then holds
// the input unchanged.
func LocaleParts(locale string) (base, region string, ok bool) {
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
	if err != nil {
		return locale, "", false
	}
	b, conf := tag.Base()
	if conf == language.No {
		return locale, "", false
	}
	base = b.String()
	if r, conf := tag.Region(); conf == language.Exact {
		region = r.String()
	}
	return base, region, true
}

// LocaleScript returns the script subtag written in locale, such as "Hans"
// for "zh-Hans". Scripts implied by the language are not returned.
func LocaleScript(locale string) string {
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
	if err != nil {
		return ""
	}
	if s, conf := tag.Script(); conf == language.Exact {
		return s.String()
	}
	return ""
}
