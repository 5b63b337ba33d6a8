// Package i18n translates API error codes. French is the default language.
package i18n

import (
	"context"
	"strings"
)

const DefaultLang = "fr"

var catalog = map[string]map[string]string{
	"fr": {
		"required":              "Requis",
		"must_be_positive":      "Doit être positif",
		"must_not_be_negative":  "Ne doit pas être négatif",
		"out_of_range":          "Hors limites",
		"invalid_json":          "Corps JSON invalide",
		"invalid_id":            "Identifiant invalide",
		"validation_failed":     "Données invalides",
		"unknown_document_kind": "Type de document inconnu",
		"document_not_found":    "Document introuvable",
		"render_failed":         "Échec de la génération du PDF",
		"internal_error":        "Erreur interne",
	},
	"en": {
		"required":              "Required",
		"must_be_positive":      "Must be positive",
		"must_not_be_negative":  "Must not be negative",
		"out_of_range":          "Out of range",
		"invalid_json":          "Invalid JSON body",
		"invalid_id":            "Invalid identifier",
		"validation_failed":     "Validation failed",
		"unknown_document_kind": "Unknown document kind",
		"document_not_found":    "Document not found",
		"render_failed":         "PDF generation failed",
		"internal_error":        "Internal error",
	},
}

// DetectLanguage picks a supported language from an Accept-Language header.
func DetectLanguage(accept string) string {
	for _, part := range strings.Split(accept, ",") {
		tag := strings.ToLower(strings.TrimSpace(strings.SplitN(part, ";", 2)[0]))
		base := strings.SplitN(tag, "-", 2)[0]
		if _, ok := catalog[base]; ok {
			return base
		}
	}
	return DefaultLang
}

// T translates code, falling back to French and then to the code itself.
func T(lang, code string) string {
	if msg, ok := catalog[lang][code]; ok {
		return msg
	}
	if msg, ok := catalog[DefaultLang][code]; ok {
		return msg
	}
	return code
}

type ctxKey struct{}

// WithLang stores the request language in ctx.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKey{}, lang)
}

// LangFromContext returns the request language, or DefaultLang.
func LangFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(ctxKey{}).(string); ok && lang != "" {
		return lang
	}
	return DefaultLang
}
