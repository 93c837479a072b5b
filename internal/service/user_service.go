package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"flatmate/internal/apperr"
	"flatmate/internal/model"
	"flatmate/internal/repository"
	"flatmate/pkg/jwt"
	"flatmate/pkg/logger"
	"flatmate/pkg/password"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const verificationTokenTTL = 24 * time.Hour

type userStore interface {
	Create(user *model.User) error
	GetByID(id uint) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	MarkVerified(email string) error
}

type tokenStore interface {
	Create(token *model.VerificationToken) error
	Find(identifier, token string) (*model.VerificationToken, error)
	Delete(identifier, token string) error
}

// VerificationMailer sends the verification link. Mail failure never fails
// registration; the token stays redeemable through a resend.
type VerificationMailer interface {
	SendVerificationEmail(email, token string) error
}

// UserService handles registration, login and email verification.
type UserService struct {
	users      userStore
	tokens     tokenStore
	mailer     VerificationMailer
	jwtService *jwt.JWTService
	now        func() time.Time
}

func NewUserService(users userStore, tokens tokenStore, mailer VerificationMailer, jwtService *jwt.JWTService) *UserService {
	return &UserService{
		users:      users,
		tokens:     tokens,
		mailer:     mailer,
		jwtService: jwtService,
		now:        time.Now,
	}
}

// Register creates an account, issues a verification token and mails the
// link. The unique email index is the authoritative duplicate guard.
func (s *UserService) Register(email, plainPassword, name, college, phone string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || plainPassword == "" || name == "" {
		return nil, apperr.Invalid("email, password and name are required")
	}

	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, apperr.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal(err)
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: &hash,
		Name:         name,
		College:      college,
		Phone:        phone,
		Role:         "USER",
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperr.ErrEmailTaken
		}
		return nil, apperr.Internal(err)
	}

	token := newVerificationToken()
	if err := s.tokens.Create(&model.VerificationToken{
		Identifier: email,
		Token:      token,
		ExpiresAt:  s.now().Add(verificationTokenTTL),
	}); err != nil {
		return nil, apperr.Internal(err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendVerificationEmail(email, token); err != nil {
			logger.Error("verification mail failed", zap.Error(err), zap.String("email", email))
		}
	}

	return user, nil
}

// Login verifies credentials and issues an access token. Blacklisted
// accounts are refused outright.
func (s *UserService) Login(email, plainPassword string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || plainPassword == "" {
		return nil, "", apperr.Invalid("email and password are required")
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", apperr.ErrBadCredentials
		}
		return nil, "", apperr.Internal(err)
	}
	if user.PasswordHash == nil || !password.Verify(plainPassword, *user.PasswordHash) {
		return nil, "", apperr.ErrBadCredentials
	}
	if user.IsBlacklisted {
		return nil, "", apperr.ErrBlacklisted
	}

	token, err := s.jwtService.GenerateToken(
		fmt.Sprintf("%d", user.ID),
		map[string]interface{}{"name": user.Name},
	)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	return user, token, nil
}

// VerifyEmail redeems a one-shot token, setting the verification timestamp
// exactly once and burning the token.
func (s *UserService) VerifyEmail(email, token string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || token == "" {
		return apperr.Invalid("token and email are required")
	}

	t, err := s.tokens.Find(email, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.ErrBadToken
		}
		return apperr.Internal(err)
	}
	if t.Expired(s.now()) {
		return apperr.ErrTokenExpired
	}

	if err := s.users.MarkVerified(email); err != nil {
		return apperr.Internal(err)
	}
	if err := s.tokens.Delete(email, token); err != nil {
		logger.Warn("used verification token not deleted", zap.Error(err), zap.String("email", email))
	}
	return nil
}

// Profile returns the account record for the actor.
func (s *UserService) Profile(id uint) (*model.User, error) {
	if id == 0 {
		return nil, apperr.ErrUnauthorized
	}
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// newVerificationToken builds an opaque 64-char token.
func newVerificationToken() string {
	raw := uuid.NewString() + uuid.NewString()
	return strings.ReplaceAll(raw, "-", "")
}
