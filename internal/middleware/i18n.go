package middleware

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
)

const localeKey contextKey = "locale"

var supported = []language.Tag{
	language.English, // en: default
	language.Malay,   // ms
}

var matcher = language.NewMatcher(supported)

// I18N negotiates the response locale from the X-Locale header or the
// standard Accept-Language header and stores it in the request context.
func I18N(defaultLocale string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := detectLocale(r, defaultLocale)
			ctx := context.WithValue(r.Context(), localeKey, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLocale(r *http.Request, fallback string) string {
	prefs := r.Header.Get("X-Locale")
	if prefs == "" {
		prefs = r.Header.Get("Accept-Language")
	}
	if prefs == "" {
		if fallback != "" {
			return fallback
		}
		return "en"
	}
	tag, _ := language.MatchStrings(matcher, prefs)
	base, _ := tag.Base()
	return base.String()
}

// LocaleFromContext returns the negotiated locale, defaulting to English.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(localeKey).(string); ok {
		return v
	}
	return "en"
}
