package i18n

import (
	"os"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var translations = map[string]map[language.Tag]string{
	"table.property.yes": {
		language.German:  "Ja",
		language.French:  "Oui",
		language.Spanish: "Sí",
		language.Czech:   "Ano",
	},
	"table.property.no": {
		language.German:  "Nein",
		language.French:  "Non",
		language.Spanish: "No",
		language.Czech:   "Ne",
	},
	"tabulator.show.empty": {
		language.German:  "Keine Einträge.",
		language.French:  "Aucune entrée.",
		language.Spanish: "No hay entradas.",
		language.Czech:   "Žádné položky.",
	},
	"tabulator.render.empty": {
		language.German:  "Keine Zeilen.",
		language.French:  "Aucune ligne.",
		language.Spanish: "No hay filas.",
		language.Czech:   "Žádné řádky.",
	},
}

var (
	mu      sync.RWMutex
	builder = newBuilder()
	printer *message.Printer
	current = language.English
)

func newBuilder() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msgs := range translations {
		for tag, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// SetLanguage selects the language used by T. It accepts BCP 47 tags as well
// as POSIX locale names such as "de_DE.UTF-8". Unknown or unsupported
// languages select English, which always uses the caller supplied defaults.
func SetLanguage(lang string) language.Tag {
	tag := parseLocale(lang)
	matched := language.English
	if tag != language.Und {
		if _, idx, conf := builder.Matcher().Match(tag); conf != language.No {
			matched = builder.Languages()[idx]
		}
	}

	mu.Lock()
	defer mu.Unlock()
	current = matched
	if base, _ := matched.Base(); base.String() == "en" {
		printer = nil
	} else {
		printer = message.NewPrinter(matched, message.Catalog(builder))
	}
	return matched
}

// FromEnv selects the language from LC_ALL, LC_MESSAGES or LANG, the first
// one that is set.
func FromEnv() language.Tag {
	for _, v := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if lang := os.Getenv(v); lang != "" {
			return SetLanguage(lang)
		}
	}
	return SetLanguage("")
}

// Language returns the language currently used by T.
func Language() language.Tag {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func parseLocale(lang string) language.Tag {
	lang = strings.TrimSpace(lang)
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	if lang == "" || lang == "C" || lang == "POSIX" {
		return language.Und
	}
	tag, err := language.Parse(strings.ReplaceAll(lang, "_", "-"))
	if err != nil {
		return language.Und
	}
	return tag
}

// T translates a key to a string. The first parameter identifies
// a message to translate. The second parameter is the default
// string to return if the key is not found.
func T(key string, defaultValue string) string {
	mu.RLock()
	p := printer
	mu.RUnlock()
	if p == nil {
		return defaultValue
	}
	if msg := p.Sprintf(key); msg != key {
		return msg
	}
	return defaultValue
}
