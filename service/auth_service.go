package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"taxidesk/pkg/logger"
	"taxidesk/storage"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

const tokenLifetime = 24 * time.Hour

type adminClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService authenticates the administrative account and hands out
// request-scoped bearer tokens. No ambient session state is kept.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Validate(token string) (string, error)
}

type authService struct {
	stg    storage.IAdminStorage
	secret []byte
	log    logger.ILogger
}

func NewAuthService(stg storage.IStorage, secret string, log logger.ILogger) AuthService {
	return &authService{
		stg:    stg.Admin(),
		secret: []byte(secret),
		log:    log,
	}
}

// Login checks the password against the stored bcrypt hash and mints a
// signed token. An unknown username and a wrong password are reported the
// same way.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	account, err := s.stg.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := adminClaims{
		Username: account.Username,
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.log.Error("failed to sign admin token", logger.Error(err))
		return "", err
	}

	s.log.Info("admin logged in", logger.String("username", account.Username))
	return token, nil
}

// Validate parses the token and returns the admin username it was minted for.
func (s *authService) Validate(token string) (string, error) {
	claims := &adminClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Role != "admin" {
		return "", ErrInvalidCredentials
	}
	return claims.Username, nil
}
