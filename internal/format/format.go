// Package format maps stored codes and timestamps to display strings.
// Every helper is total: unknown codes come back unchanged.
package format

import (
	"fmt"
	"time"

	"github.com/diewo77/go-commandes/i18n"
)

// Variant is the visual style of a status badge.
type Variant string

const (
	VariantNeutral Variant = "neutral"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
	VariantSuccess Variant = "success"
	VariantDanger  Variant = "danger"
)

// Badge pairs a label with its variant.
type Badge struct {
	Label   string  `json:"label"`
	Variant Variant `json:"variant"`
}

var statutVariants = map[string]Variant{
	"en_attente":     VariantWarning,
	"en_cours":       VariantInfo,
	"en_preparation": VariantInfo,
	"validee":        VariantSuccess,
	"expediee":       VariantInfo,
	"livree":         VariantSuccess,
	"annulee":        VariantDanger,
}

// Statut returns the French label of a commande status.
func Statut(code string) string { return StatutLang(i18n.DefaultLang, code) }

// StatutLang returns the label of a commande status in lang.
func StatutLang(lang, code string) string {
	if _, ok := statutVariants[code]; !ok {
		return code
	}
	return i18n.T(lang, code)
}

// StatutVariant returns the badge variant for a status.
func StatutVariant(code string) Variant {
	if v, ok := statutVariants[code]; ok {
		return v
	}
	return VariantNeutral
}

// StatutBadge combines label and variant.
func StatutBadge(lang, code string) Badge {
	return Badge{Label: StatutLang(lang, code), Variant: StatutVariant(code)}
}

var roles = map[string]bool{"admin": true, "la_redoute": true, "magasin": true}

// Role returns the French label of a role.
func Role(code string) string { return RoleLang(i18n.DefaultLang, code) }

// RoleLang returns the label of a role in lang.
func RoleLang(lang, code string) string {
	if !roles[code] {
		return code
	}
	return i18n.T(lang, code)
}

var moisFR = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// Date formats t as dd/mm/yyyy. The zero time renders as "-".
func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}

// DateTime formats t as dd/mm/yyyy HH:MM.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006 15:04")
}

// DateLong formats t as "2 janvier 2006".
func DateLong(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%d %s %d", t.Day(), moisFR[t.Month()-1], t.Year())
}

// DatePtr is Date for optional timestamps.
func DatePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return Date(*t)
}
