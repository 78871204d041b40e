// Package i18n provides the localization pass for user-facing strings.
//
// Catalog strings are registered at init; lookups fall back to the
// source (English) text when no translation exists, so an empty or
// unknown locale behaves as identity.
package i18n

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var builder = catalog.NewBuilder(catalog.Fallback(language.English))

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Spanish,
})

func init() {
	for key, msg := range spanish {
		_ = builder.SetString(language.Spanish, key, msg)
	}
}

// spanish holds the visibility panel catalog. Keys are the English
// source strings.
var spanish = map[string]string{
	"No content groups exist":  "No existen grupos de contenido",
	"Manage groups":            "Administrar grupos",
	"Warning:":                 "Advertencia:",
	"All Students and Staff":   "Todos los estudiantes y el personal",
	"Specific Content Groups":  "Grupos de contenido específicos",
	"Deleted Group":            "Grupo eliminado",
	"Choose which students can see this component.": "Elija qué estudiantes pueden ver este componente.",
}

// Translator localizes catalog strings for one language. It satisfies
// the visibility package's Translator interface.
type Translator struct {
	p *message.Printer
}

// T returns the localized form of msg, or msg itself when no
// translation is registered.
func (t *Translator) T(msg string) string {
	return t.p.Sprintf(message.Key(msg, msg))
}

// New returns a Translator for the given tag.
func New(tag language.Tag) *Translator {
	return &Translator{p: message.NewPrinter(tag, message.Catalog(builder))}
}

// Match resolves an Accept-Language header (or any BCP 47 list) to the
// best supported tag. Empty or malformed input resolves to English.
func Match(acceptLanguage string) language.Tag {
	tag, _ := language.MatchStrings(matcher, acceptLanguage)
	return tag
}

// FromRequest returns a Translator for the request's Accept-Language.
func FromRequest(r *http.Request) *Translator {
	return New(Match(r.Header.Get("Accept-Language")))
}
