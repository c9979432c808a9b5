package handlers

import (
	"net/http"

	"github.com/diewo77/go-commandes/httpx"
	"github.com/diewo77/go-commandes/i18n"
	"github.com/diewo77/go-commandes/internal/apperr"
	"github.com/diewo77/go-commandes/internal/format"
	"github.com/diewo77/go-commandes/internal/models"
	"github.com/diewo77/go-commandes/internal/policy"
	"github.com/diewo77/go-commandes/internal/services"
	"github.com/diewo77/go-commandes/internal/session"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// recentLimit caps the commandes listed on an area page.
const recentLimit = 10

// AreaHandler renders the JSON summary of a role area.
type AreaHandler struct {
	db       *gorm.DB
	profiles services.ProfileStore
	gate     *policy.AuthGate
	log      *zap.Logger
}

func NewAreaHandler(db *gorm.DB, profiles services.ProfileStore, gate *policy.AuthGate, log *zap.Logger) *AreaHandler {
	return &AreaHandler{db: db, profiles: profiles, gate: gate, log: log}
}

type commandeSummary struct {
	ID            string       `json:"id"`
	Reference     string       `json:"reference"`
	Statut        format.Badge `json:"statut"`
	Ouverte       bool         `json:"ouverte"`
	DateLivraison string       `json:"date_livraison"`
	CreatedAt     string       `json:"created_at"`
}

type lineSummary struct {
	CommandeID string `json:"commande_id"`
	ProduitID  string `json:"produit_id"`
	Quantite   int    `json:"quantite"`
	UpdatedAt  string `json:"updated_at"`
}

// Show returns the handler for one area. It runs behind policy.RequireArea.
func (h *AreaHandler) Show(area string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s := session.FromContext(ctx)
		if s == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		p, err := h.profiles.Get(ctx, s.UserID)
		if err != nil {
			h.log.Warn("area profile lookup failed", zap.String("user_id", s.UserID), zap.Error(err))
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		lang := i18n.LangFromContext(ctx)

		out := map[string]any{
			"area": area,
			"profile": map[string]any{
				"id":         p.ID,
				"email":      p.Email,
				"nom":        p.FullName(),
				"role":       p.Role,
				"role_label": format.RoleLang(lang, string(p.Role)),
				"magasin":    p.Magasin,
			},
		}

		if h.gate.Can(ctx, "commande:list") {
			commandes, err := h.recentCommandes(r, lang)
			if err != nil {
				h.log.Error("list commandes failed", zap.Error(err))
				apperr.Write(ctx, w, apperr.Wrap(apperr.KindUpstreamDB, "db_error", err))
				return
			}
			out["commandes"] = commandes
		}

		if area == "magasin" && p.MagasinID != nil {
			lines, err := h.storeLines(r, *p.MagasinID)
			if err != nil {
				h.log.Error("list order lines failed", zap.Error(err))
				apperr.Write(ctx, w, apperr.Wrap(apperr.KindUpstreamDB, "db_error", err))
				return
			}
			out["lignes"] = lines
			out["can_update_quantities"] = h.gate.Can(ctx, "commande_ligne:update")
		}

		httpx.JSON(w, http.StatusOK, out)
	}
}

func (h *AreaHandler) recentCommandes(r *http.Request, lang string) ([]commandeSummary, error) {
	var rows []models.Commande
	if err := h.db.WithContext(r.Context()).Order("created_at desc").Limit(recentLimit).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]commandeSummary, 0, len(rows))
	for _, c := range rows {
		out = append(out, commandeSummary{
			ID:            c.ID,
			Reference:     c.Reference,
			Statut:        format.StatutBadge(lang, string(c.Statut)),
			Ouverte:       c.IsOpen(),
			DateLivraison: format.DatePtr(c.DateLivraison),
			CreatedAt:     format.DateLong(c.CreatedAt),
		})
	}
	return out, nil
}

func (h *AreaHandler) storeLines(r *http.Request, magasinID string) ([]lineSummary, error) {
	var rows []models.CommandeMagasinProduit
	if err := h.db.WithContext(r.Context()).Where("magasin_id = ?", magasinID).Order("updated_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]lineSummary, 0, len(rows))
	for _, l := range rows {
		out = append(out, lineSummary{
			CommandeID: l.CommandeID,
			ProduitID:  l.ProduitID,
			Quantite:   l.Quantite,
			UpdatedAt:  format.DateTime(l.UpdatedAt),
		})
	}
	return out, nil
}
