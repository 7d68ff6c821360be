package i18n

import "sort"

// Lookup returns the table for a language tag.
func Lookup(lang string) (Table, bool) {
	t, ok := translations[lang]
	return t, ok
}

// Get returns the table for lang, falling back to fallback when lang
// is unknown.
func Get(lang, fallback string) Table {
	if t, ok := translations[lang]; ok {
		return t
	}
	return translations[fallback]
}

// Supported reports whether a language tag has a table.
func Supported(lang string) bool {
	_, ok := translations[lang]
	return ok
}

// Languages lists the known language tags, sorted.
func Languages() []string {
	out := make([]string, 0, len(translations))
	for lang := range translations {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}
