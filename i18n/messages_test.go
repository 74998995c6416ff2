package i18n

import (
	"testing"

	"storefront/domain"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestResolver(t *testing.T) {
	t.Run("English", func(t *testing.T) {
		r := New("en")
		require.Equal(t, language.English, r.Language())
		require.Equal(t, "Please enter a name", r.Resolve(domain.MissingName))
		require.Equal(t, "The stock cannot be negative", r.Resolve(domain.StockNotGreaterThanZero))
	})

	t.Run("French", func(t *testing.T) {
		r := New("fr-CA,en;q=0.5")
		require.Equal(t, language.French, r.Language())
		require.Equal(t, "Veuillez saisir un prix", r.Resolve(domain.MissingPrice))
		require.Equal(t, "Le prix ne peut pas être négatif", r.Resolve(domain.PriceNotGreaterThanZero))
	})

	t.Run("FallsBackToEnglish", func(t *testing.T) {
		for _, lang := range []string{"", "de", "not a tag!!"} {
			r := New(lang)
			require.Equal(t, language.English, r.Language(), lang)
			require.Equal(t, "Please enter a price", r.Resolve(domain.MissingPrice))
		}
	})

	t.Run("UnknownKeyRendersAsKey", func(t *testing.T) {
		require.Equal(t, "SomethingElse", New("en").Resolve(domain.ErrorKey("SomethingElse")))
	})

	t.Run("EveryKeyTranslated", func(t *testing.T) {
		for _, lang := range []string{"en", "fr"} {
			r := New(lang)
			for _, k := range domain.AllErrorKeys {
				require.NotEqual(t, string(k), r.Resolve(k), "%s/%s", lang, k)
			}
		}
	})

	t.Run("RenderErrors", func(t *testing.T) {
		keys := domain.Validate(domain.ProductInput{Name: "x", Price: "abc", Stock: "1.5"})
		got := domain.RenderErrors(New("en"), keys)
		require.Equal(t, []string{
			"The value entered for the price must be a number",
			"The value entered for the stock must be an integer",
		}, got)
	})
}
