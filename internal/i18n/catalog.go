// Package i18n holds the Korean and English message catalogs.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	"golang.org/x/text/language"
)

const (
	Korean  = "ko"
	English = "en"
)

// Supported lists the catalog languages; the first one wins negotiation ties.
var Supported = []string{Korean, English}

//go:embed locales/*.json
var locales embed.FS

// Catalog maps language -> key -> message.
type Catalog struct {
	messages map[string]map[string]string
	matcher  language.Matcher
}

// Load parses the embedded locale files.
func Load() (*Catalog, error) {
	c := &Catalog{
		messages: make(map[string]map[string]string, len(Supported)),
		matcher:  language.NewMatcher([]language.Tag{language.Korean, language.English}),
	}
	for _, lang := range Supported {
		raw, err := locales.ReadFile("locales/" + lang + ".json")
		if err != nil {
			return nil, fmt.Errorf("read %s catalog: %w", lang, err)
		}
		messages := make(map[string]string)
		if err := json.Unmarshal(raw, &messages); err != nil {
			return nil, fmt.Errorf("parse %s catalog: %w", lang, err)
		}
		c.messages[lang] = messages
	}
	return c, nil
}

// MustLoad panics if the embedded catalogs are malformed.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Supports(lang string) bool {
	_, ok := c.messages[lang]
	return ok
}

// T returns the message for key in lang, or key itself when there is none.
func (c *Catalog) T(lang, key string) string {
	if msg, ok := c.messages[lang][key]; ok && msg != "" {
		return msg
	}
	return key
}

// Messages returns a copy of the whole catalog for lang.
func (c *Catalog) Messages(lang string) map[string]string {
	src := c.messages[lang]
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Negotiate picks a supported language for an Accept-Language header value,
// returning fallback when the header is empty, malformed or matches nothing.
func (c *Catalog) Negotiate(acceptLanguage, fallback string) string {
	if acceptLanguage == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, index, confidence := c.matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return Supported[index]
}
