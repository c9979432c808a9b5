package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the application role stored on a profile row.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleLaRedoute Role = "la_redoute"
	RoleMagasin   Role = "magasin"
)

// Roles lists the accepted role codes.
func Roles() []string {
	return []string{string(RoleAdmin), string(RoleLaRedoute), string(RoleMagasin)}
}

// Home is the area a user of this role lands on. Unknown roles go back to
// the login page.
func (r Role) Home() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleLaRedoute:
		return "/client"
	case RoleMagasin:
		return "/magasin"
	}
	return "/login"
}

// Profile is the application-owned row paired with an identity.
// Its ID must equal the identity ID; the provisioning saga maintains that.
type Profile struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Role  Role   `gorm:"size:20;not null;index" json:"role"`

	// MagasinID is set for users of role magasin.
	MagasinID *string  `gorm:"type:uuid;index" json:"magasin_id"`
	Magasin   *Magasin `gorm:"foreignKey:MagasinID" json:"magasin,omitempty"`

	Prenom    string `gorm:"size:100" json:"prenom,omitempty"`
	Nom       string `gorm:"size:100" json:"nom,omitempty"`
	Telephone string `gorm:"size:30" json:"telephone,omitempty"`
	Perimetre string `gorm:"size:255" json:"perimetre,omitempty"`
}

// BeforeCreate rejects profiles without an identity id.
func (p *Profile) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		return ErrMissingIdentityID
	}
	return nil
}

// FullName returns "Prenom Nom", trimmed.
func (p *Profile) FullName() string {
	switch {
	case p.Prenom == "":
		return p.Nom
	case p.Nom == "":
		return p.Prenom
	}
	return p.Prenom + " " + p.Nom
}
