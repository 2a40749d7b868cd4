package services

import (
	"errors"
	"fmt"
	"time"

	"closetloop/internal/domain"
	"closetloop/internal/repos"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

// AuthService is the identity boundary: it checks credentials, issues
// bearer tokens and resolves a token back to a full user record once
// per request. Services downstream receive the resolved caller, never
// a credential.
type AuthService struct {
	Users  *repos.UserRepo
	Secret string
	TTL    time.Duration
}

func NewAuthService(users *repos.UserRepo, secret string) *AuthService {
	return &AuthService{Users: users, Secret: secret, TTL: 24 * time.Hour}
}

func (s *AuthService) Login(email, password string) (string, *domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return "", nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", nil, ErrBadCreds
	}
	tok, err := s.issue(u)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

func (s *AuthService) issue(u *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"admin": u.IsAdmin,
		"iat":   now.Unix(),
		"exp":   now.Add(s.TTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.Secret))
}

// CurrentUser resolves a bearer token to the latest user record, so a
// ban issued after the token was minted still takes effect.
func (s *AuthService) CurrentUser(token string) (*domain.User, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: bad token", domain.ErrAuthorization)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: bad claims", domain.ErrAuthorization)
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("%w: no subject", domain.ErrAuthorization)
	}
	return s.Users.ByID(sub)
}
