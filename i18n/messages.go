// Package i18n renders validation error keys in the shopper's language.
package i18n

import (
	"storefront/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var supported = []language.Tag{language.English, language.French}

var messages = map[language.Tag]map[domain.ErrorKey]string{
	language.English: {
		domain.MissingName:             "Please enter a name",
		domain.MissingPrice:            "Please enter a price",
		domain.PriceNotANumber:         "The value entered for the price must be a number",
		domain.PriceNotGreaterThanZero: "The price cannot be negative",
		domain.MissingStock:            "Please enter a stock value",
		domain.StockNotAnInteger:       "The value entered for the stock must be an integer",
		domain.StockNotGreaterThanZero: "The stock cannot be negative",
	},
	language.French: {
		domain.MissingName:             "Veuillez saisir un nom",
		domain.MissingPrice:            "Veuillez saisir un prix",
		domain.PriceNotANumber:         "La valeur saisie pour le prix doit être un nombre",
		domain.PriceNotGreaterThanZero: "Le prix ne peut pas être négatif",
		domain.MissingStock:            "Veuillez saisir une valeur de stock",
		domain.StockNotAnInteger:       "La valeur saisie pour le stock doit être un entier",
		domain.StockNotGreaterThanZero: "Le stock ne peut pas être négatif",
	},
}

var (
	matcher = language.NewMatcher(supported)
	builtin = newCatalog()
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range messages {
		for key, text := range msgs {
			// keys and texts are static, SetString only fails on malformed tags
			_ = b.SetString(tag, string(key), text)
		}
	}
	return b
}

// Resolver is a domain.MessageResolver for one language.
type Resolver struct {
	tag     language.Tag
	printer *message.Printer
}

var _ domain.MessageResolver = (*Resolver)(nil)

// New returns a Resolver for lang, an Accept-Language style string such as
// "fr" or "fr-CA,en;q=0.8". Unsupported or malformed values fall back to English.
func New(lang string) *Resolver {
	tag := language.English
	if prefs, _, err := language.ParseAcceptLanguage(lang); err == nil && len(prefs) > 0 {
		_, idx, conf := matcher.Match(prefs...)
		if conf != language.No {
			tag = supported[idx]
		}
	}
	return &Resolver{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builtin)),
	}
}

// Language is the tag the resolver renders in.
func (r *Resolver) Language() language.Tag { return r.tag }

// Resolve returns the display text for key, or the key itself when it has none.
func (r *Resolver) Resolve(key domain.ErrorKey) string {
	return r.printer.Sprintf(string(key))
}
