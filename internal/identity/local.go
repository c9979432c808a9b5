package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/diewo77/go-commandes/internal/models"
	"github.com/diewo77/go-commandes/internal/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LocalProvider keeps identities in the application database. Access tokens
// are stateless so SignOut has nothing to revoke.
type LocalProvider struct {
	db     *gorm.DB
	tokens *session.Tokens
	now    func() time.Time
}

func NewLocalProvider(db *gorm.DB, tokens *session.Tokens) *LocalProvider {
	return &LocalProvider{db: db, tokens: tokens, now: time.Now}
}

func (p *LocalProvider) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" || params.Password == "" {
		return User{}, &ProviderError{Status: http.StatusBadRequest, Message: "email and password are required"}
	}

	var count int64
	if err := p.db.WithContext(ctx).Model(&models.Identity{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return User{}, err
	}
	if count > 0 {
		return User{}, &ProviderError{Status: http.StatusUnprocessableEntity, Message: "A user with this email address has already been registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	ident := models.Identity{
		Email:        email,
		PasswordHash: string(hash),
		Prenom:       params.Metadata["prenom"],
		Nom:          params.Metadata["nom"],
		Role:         params.Metadata["role"],
	}
	if params.EmailConfirm {
		now := p.now()
		ident.EmailConfirmedAt = &now
	}
	if err := p.db.WithContext(ctx).Create(&ident).Error; err != nil {
		return User{}, err
	}
	return User{ID: ident.ID, Email: ident.Email, Metadata: params.Metadata}, nil
}

func (p *LocalProvider) DeleteUser(ctx context.Context, id string) error {
	res := p.db.WithContext(ctx).Delete(&models.Identity{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &ProviderError{Status: http.StatusNotFound, Message: "User not found"}
	}
	return nil
}

func (p *LocalProvider) SignInWithPassword(ctx context.Context, email, password string) (Session, error) {
	var ident models.Identity
	err := p.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&ident).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(ident.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	token, exp, err := p.tokens.Issue(ident.ID, ident.Email)
	if err != nil {
		return Session{}, err
	}
	now := p.now()
	if err := p.db.WithContext(ctx).Model(&ident).Update("last_sign_in_at", &now).Error; err != nil {
		return Session{}, fmt.Errorf("record sign-in: %w", err)
	}

	return Session{
		AccessToken: token,
		ExpiresAt:   exp,
		User:        User{ID: ident.ID, Email: ident.Email},
	}, nil
}

func (p *LocalProvider) SignOut(context.Context, string) error { return nil }
