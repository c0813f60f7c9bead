// Package auth implements the magic-link sign-in flow: a single-use token
// is mailed to the user and exchanged for a session JWT. There are no
// passwords anywhere in the system.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ssnnee/theo-afrique-website/internal/domain"
)

const (
	tokenTTL   = 24 * time.Hour
	sessionTTL = 30 * 24 * time.Hour
)

var (
	ErrInvalidToken = errors.New("auth: invalid or expired login token")
)

// SessionClaims is the JWT payload carried by signed-in clients.
type SessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	db      *gorm.DB
	mailer  Mailer
	secret  string
	siteURL string
	now     func() time.Time
}

func NewService(db *gorm.DB, mailer Mailer, secret, siteURL string) *Service {
	return &Service{db: db, mailer: mailer, secret: secret, siteURL: siteURL, now: time.Now}
}

// RequestLogin creates a fresh single-use token for the email and mails the
// verification link. Any previous token for the same email is replaced.
func (s *Service) RequestLogin(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errors.New("auth: email is required")
	}

	token := uuid.NewString()
	if err := s.db.WithContext(ctx).
		Where("identifier = ?", email).
		Delete(&domain.LoginToken{}).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(&domain.LoginToken{
		Identifier: email,
		Token:      token,
		ExpiresAt:  s.now().Add(tokenTTL),
	}).Error; err != nil {
		return err
	}

	link := fmt.Sprintf("%s/api/auth/verify?email=%s&token=%s",
		strings.TrimRight(s.siteURL, "/"), url.QueryEscape(email), token)
	if err := s.mailer.SendLoginLink(email, link); err != nil {
		return fmt.Errorf("auth: sending login mail: %w", err)
	}
	zap.L().Info("magic link issued", zap.String("email", email))
	return nil
}

// VerifyLogin consumes a token and returns a signed session JWT. The user
// row is created on first sign-in and marked verified.
func (s *Service) VerifyLogin(ctx context.Context, email, token string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var row domain.LoginToken
	err := s.db.WithContext(ctx).
		Where("identifier = ? AND token = ?", email, token).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrInvalidToken
	} else if err != nil {
		return "", err
	}

	// Single use: gone whether it is still valid or not.
	if err := s.db.WithContext(ctx).
		Where("identifier = ? AND token = ?", email, token).
		Delete(&domain.LoginToken{}).Error; err != nil {
		return "", err
	}
	if s.now().After(row.ExpiresAt) {
		return "", ErrInvalidToken
	}

	user, err := s.ensureUser(ctx, email)
	if err != nil {
		return "", err
	}
	return s.mintSession(user)
}

func (s *Service) ensureUser(ctx context.Context, email string) (*domain.User, error) {
	now := s.now()
	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = domain.User{
			ID:            uuid.NewString(),
			Email:         email,
			Role:          domain.RoleUser,
			EmailVerified: &now,
		}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, err
		}
		zap.L().Info("created user on first sign-in", zap.String("email", email))
		return &user, nil
	case err != nil:
		return nil, err
	}

	if user.EmailVerified == nil {
		if err := s.db.WithContext(ctx).Model(&user).
			Update("email_verified", now).Error; err != nil {
			return nil, err
		}
		user.EmailVerified = &now
	}
	return &user, nil
}

func (s *Service) mintSession(user *domain.User) (string, error) {
	now := s.now()
	claims := SessionClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
}

// ParseSession validates a session JWT and returns its claims.
func (s *Service) ParseSession(tokenString string) (*SessionClaims, error) {
	claims := new(SessionClaims)
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// PurgeExpiredTokens removes login tokens past their TTL. Run from the
// scheduler.
func (s *Service) PurgeExpiredTokens(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Where("expires_at < ?", s.now()).
		Delete(&domain.LoginToken{}).Error
}
