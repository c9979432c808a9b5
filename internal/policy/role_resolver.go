package policy

import (
	"context"
	"errors"

	"github.com/diewo77/go-commandes/gate"
	"github.com/diewo77/go-commandes/internal/models"
	"gorm.io/gorm"
)

// rolePermissions is the fixed permission set of each role.
var rolePermissions = map[models.Role][]gate.Permission{
	models.RoleAdmin:     {gate.PermissionSuperAdmin},
	models.RoleLaRedoute: {AreaPermission("client"), listCommandes},
	models.RoleMagasin:   {AreaPermission("magasin"), listCommandes, updateLignes},
}

var (
	listCommandes = gate.NewPermission("commande", gate.ActionList)
	updateLignes  = gate.NewPermission("commande_ligne", gate.ActionUpdate)
)

// PermissionsFor returns the permissions granted to role, none for unknown roles.
func PermissionsFor(role models.Role) []gate.Permission {
	return rolePermissions[role]
}

// AreaPermission is the permission needed to enter an area page.
func AreaPermission(area string) gate.Permission {
	return gate.NewPermission("area", gate.Action(area))
}

// RoleResolver fetches profile rows and turns their role into a gate profile.
// It implements gate.ProfileResolver for string user ids.
type RoleResolver struct {
	DB *gorm.DB
}

func NewRoleResolver(db *gorm.DB) *RoleResolver {
	return &RoleResolver{DB: db}
}

// Resolve returns nil when the user has no profile row.
func (r *RoleResolver) Resolve(ctx context.Context, userID string) (gate.Profile, error) {
	var p models.Profile
	err := r.DB.WithContext(ctx).Select("id", "role").First(&p, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return gate.NewStaticProfile(p.ID, string(p.Role), PermissionsFor(p.Role)...), nil
}
