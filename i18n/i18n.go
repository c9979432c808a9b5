// Package i18n holds the label tables used by JSON errors and display helpers.
package i18n

import (
	"context"
	"strings"
)

// DefaultLang is used when nothing else matches.
const DefaultLang = "fr"

type langKey struct{}

var catalog = map[string]map[string]string{
	"fr": {
		// validation
		"required":       "Requis",
		"too_small":      "Valeur trop petite",
		"invalid_choice": "Valeur non autorisée",

		// errors
		"missing_fields":    "Champs requis manquants",
		"invalid_body":      "Corps de requête invalide",
		"invalid_quantity":  "La quantité doit être supérieure ou égale à 1",
		"auth_create_error": "Erreur lors de la création de l'utilisateur",
		"profile_error":     "Erreur lors de la création du profil",
		"db_error":          "Erreur base de données",
		"email_error":       "Erreur lors de l'envoi de l'email",
		"email_config":      "Clé API email non configurée",
		"unknown_error":     "Erreur interne du serveur",
		"unauthorized":      "Non authentifié",
		"forbidden":         "Accès refusé",
		"invalid_login":     "Email ou mot de passe invalide",
		"invalid_role":      "Rôle invalide",
		"auth_error":        "Erreur du service d'authentification",

		// commande statuts
		"en_attente":     "En attente",
		"en_cours":       "En cours",
		"validee":        "Validée",
		"en_preparation": "En préparation",
		"expediee":       "Expédiée",
		"livree":         "Livrée",
		"annulee":        "Annulée",

		// roles
		"admin":      "Administrateur",
		"la_redoute": "La Redoute",
		"magasin":    "Magasin",
	},
	"en": {
		"required":       "Required",
		"too_small":      "Value too small",
		"invalid_choice": "Value not allowed",

		"missing_fields":    "Missing required fields",
		"invalid_body":      "Invalid request body",
		"invalid_quantity":  "Quantity must be at least 1",
		"auth_create_error": "Failed to create user",
		"profile_error":     "Failed to create profile",
		"db_error":          "Database error",
		"email_error":       "Failed to send email",
		"email_config":      "Email API key not configured",
		"unknown_error":     "Internal server error",
		"unauthorized":      "Unauthenticated",
		"forbidden":         "Access denied",
		"invalid_login":     "Invalid email or password",
		"invalid_role":      "Invalid role",
		"auth_error":        "Authentication service error",

		"en_attente":     "Pending",
		"en_cours":       "In progress",
		"validee":        "Approved",
		"en_preparation": "Being prepared",
		"expediee":       "Shipped",
		"livree":         "Delivered",
		"annulee":        "Cancelled",

		"admin":      "Administrator",
		"la_redoute": "La Redoute",
		"magasin":    "Store",
	},
}

// T translates code for lang. Unknown languages fall back to French and
// unknown codes are returned as-is.
func T(lang, code string) string {
	if m, ok := catalog[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := catalog[DefaultLang][code]; ok {
		return s
	}
	return code
}

// Has reports whether code has a label in the default catalog.
func Has(code string) bool {
	_, ok := catalog[DefaultLang][code]
	return ok
}

// DetectLanguage picks a supported language from an Accept-Language header.
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		base := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		if _, ok := catalog[base]; ok {
			return base
		}
	}
	return DefaultLang
}

// WithLang stores the language in ctx.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LangFromContext returns the request language, defaulting to French.
func LangFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(langKey{}).(string); ok && lang != "" {
		return lang
	}
	return DefaultLang
}
