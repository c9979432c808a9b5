package models

import (
	"time"

	"gorm.io/gorm"
)

// Identity is an account in the local identity store. It is only used when
// no hosted identity provider is configured.
type Identity struct {
	ID               string     `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	Email            string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash     string     `gorm:"size:255;not null" json:"-"` // never exposed in JSON
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
	LastSignInAt     *time.Time `json:"last_sign_in_at,omitempty"`

	// metadata copied at creation
	Prenom string `gorm:"size:100" json:"prenom,omitempty"`
	Nom    string `gorm:"size:100" json:"nom,omitempty"`
	Role   string `gorm:"size:20" json:"role,omitempty"`
}

func (i *Identity) BeforeCreate(_ *gorm.DB) error {
	newID(&i.ID)
	return nil
}
