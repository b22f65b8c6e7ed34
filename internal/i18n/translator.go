// Package i18n resolves message keys into localized text.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Translator renders message keys in the best matching supported language.
// Keys missing from the catalog are rendered verbatim.
type Translator struct {
	fallback  language.Tag
	supported []language.Tag
	matcher   language.Matcher
	printers  map[language.Tag]*message.Printer
}

// New builds a translator whose fallback language is defaultLang.
func New(defaultLang string) (*Translator, error) {
	fallback, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("i18n: parse default language: %w", err)
	}

	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	supported := []language.Tag{language.English}
	for tag, entries := range messages {
		if tag != language.English {
			supported = append(supported, tag)
		}
		for key, msg := range entries {
			if err := builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("i18n: set %s/%s: %w", tag, key, err)
			}
		}
	}
	// Untranslated keys fall back to English rather than the raw key.
	for tag := range messages {
		if tag == language.English {
			continue
		}
		for key, msg := range messages[language.English] {
			if _, ok := messages[tag][key]; !ok {
				if err := builder.SetString(tag, key, msg); err != nil {
					return nil, fmt.Errorf("i18n: set %s/%s: %w", tag, key, err)
				}
			}
		}
	}

	matcher := language.NewMatcher(supported)
	_, idx, _ := matcher.Match(fallback)

	t := &Translator{
		fallback:  supported[idx],
		supported: supported,
		matcher:   matcher,
		printers:  make(map[language.Tag]*message.Printer, len(supported)),
	}
	for _, tag := range supported {
		t.printers[tag] = message.NewPrinter(tag, message.Catalog(builder))
	}
	return t, nil
}

// Translate renders key for lang. An empty or unsupported lang uses the fallback.
func (t *Translator) Translate(lang, key string, args ...any) string {
	return t.printer(lang).Sprintf(key, args...)
}

// Language returns the supported tag chosen for lang.
func (t *Translator) Language(lang string) string {
	return t.tag(lang).String()
}

func (t *Translator) printer(lang string) *message.Printer {
	return t.printers[t.tag(lang)]
}

func (t *Translator) tag(lang string) language.Tag {
	if lang == "" {
		return t.fallback
	}
	requested, err := language.Parse(lang)
	if err != nil {
		return t.fallback
	}
	_, idx, conf := t.matcher.Match(requested)
	if conf == language.No {
		return t.fallback
	}
	return t.supported[idx]
}
