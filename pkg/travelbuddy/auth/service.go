// Package auth is the authentication collaborator: email/password accounts,
// revocable sessions and the notifications emitted when they change.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/events"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MinPasswordLength is the shortest password accepted at sign-up.
const MinPasswordLength = 6

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoSession          = errors.New("session has ended")
)

// Session is a signed-in user
type Session struct {
	ID        string      `json:"id"`
	Token     string      `json:"token,omitempty"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

// Service manages identities and sessions
type Service struct {
	db     *gorm.DB
	tokens *Tokens
	hub    *events.Hub
	now    func() time.Time
}

// NewService creates an auth service. Session changes are published on hub.
func NewService(db *gorm.DB, tokens *Tokens, hub *events.Hub) *Service {
	return &Service{db: db, tokens: tokens, hub: hub, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// displayName falls back to the local part of the email address.
func displayName(identity models.AuthIdentity) string {
	if name := strings.TrimSpace(identity.Name); name != "" {
		return name
	}
	local, _, _ := strings.Cut(identity.Email, "@")
	return local
}

// SignUp creates an identity. No session is issued; the caller signs in
// afterwards.
func (s *Service) SignUp(ctx context.Context, email, password, name string) (*models.AuthIdentity, error) {
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}
	email = normalizeEmail(email)

	var existing models.AuthIdentity
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	identity := models.AuthIdentity{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
	}
	if err := s.db.WithContext(ctx).Create(&identity).Error; err != nil {
		return nil, err
	}
	return &identity, nil
}

// SignIn verifies credentials, refreshes the user's profile and opens a
// new session.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	db := s.db.WithContext(ctx)

	var identity models.AuthIdentity
	if err := db.Where("email = ?", normalizeEmail(email)).First(&identity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPassword(password, identity.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	user, err := s.upsertProfile(db, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	now := s.now().UTC()
	record := models.AuthSession{
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokens.TTL()),
	}
	if err := db.Create(&record).Error; err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(record, *user)
	if err != nil {
		return nil, err
	}

	s.hub.Publish(ctx, events.SessionEvent(events.SignedIn, user.ID, record.ID))

	return &Session{
		ID:        record.ID,
		Token:     token,
		ExpiresAt: record.ExpiresAt,
		User:      *user,
	}, nil
}

// upsertProfile creates the profile keyed by the identity ID, or refreshes
// its email and name. The role is left alone.
func (s *Service) upsertProfile(db *gorm.DB, identity models.AuthIdentity) (*models.User, error) {
	profile := models.User{
		ID:    identity.ID,
		Email: identity.Email,
		Name:  displayName(identity),
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "updated_at"}),
	}).Create(&profile).Error
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := db.First(&user, "id = ?", identity.ID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentSession resolves a token to its live session.
func (s *Service) CurrentSession(ctx context.Context, token string) (*Session, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var record models.AuthSession
	if err := db.First(&record, "id = ?", claims.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	if record.RevokedAt != nil || !s.now().Before(record.ExpiresAt) {
		return nil, ErrNoSession
	}

	var user models.User
	if err := db.First(&user, "id = ?", record.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	return &Session{
		ID:        record.ID,
		ExpiresAt: record.ExpiresAt,
		User:      user,
	}, nil
}

// SignOut revokes the session behind token. Signing out a session that
// has already ended succeeds.
func (s *Service) SignOut(ctx context.Context, token string) error {
	claims, err := s.tokens.Validate(token)
	if errors.Is(err, ErrExpiredToken) {
		return nil
	}
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Model(&models.AuthSession{}).
		Where("id = ? AND revoked_at IS NULL", claims.ID).
		Update("revoked_at", s.now().UTC())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		s.hub.Publish(ctx, events.SessionEvent(events.SignedOut, claims.UserID, claims.ID))
	}
	return nil
}

// EnsureAdmin makes sure at least one admin exists, creating or promoting
// the account for email when none does.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var identity models.AuthIdentity
	err := db.Where("email = ?", normalizeEmail(email)).First(&identity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		created, err := s.SignUp(ctx, email, password, "Admin")
		if err != nil {
			return fmt.Errorf("failed to create admin identity: %w", err)
		}
		identity = *created
	} else if err != nil {
		return err
	}

	user, err := s.upsertProfile(db, identity)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	if err := db.Model(user).Update("role", models.RoleAdmin).Error; err != nil {
		return fmt.Errorf("failed to promote admin user: %w", err)
	}

	log.Printf("Created default admin user: %s", identity.Email)
	return nil
}
