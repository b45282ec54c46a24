package servie_simple_auth

//! Shared-code auth: one secret per role, tokens live in the session cache.

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/jukebox/internal/model"
)

type Token = string

var (
	ErrInternal    = errors.New("internal error")
	ErrWrongCode   = errors.New("wrong code")
	ErrUnknownRole = errors.New("unknown role")
)

const defaultTokenTTL = 12 * time.Hour

type SessionCache interface {
	Set(key string, value string, ttl time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
}

type Service struct {
	secrets      map[model.Role]string
	sessionCache SessionCache
	ttl          time.Duration
	newToken     func() Token
}

func New(
	secrets map[model.Role]string,
	sessionCache SessionCache,
	ttl time.Duration,
) *Service {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &Service{
		secrets:      secrets,
		sessionCache: sessionCache,
		ttl:          ttl,
		newToken:     uuid.NewString,
	}
}

// Auth exchanges the role's shared code for a session token.
func (s *Service) Auth(role model.Role, code string) (Token, error) {
	if !role.Valid() {
		return "", ErrUnknownRole
	}
	secret, ok := s.secrets[role]
	if !ok || secret == "" || code != secret {
		return "", ErrWrongCode
	}

	t := s.newToken()
	if err := s.sessionCache.Set(t, string(role), s.ttl); err != nil {
		return "", errors.Join(ErrInternal, err)
	}

	return t, nil
}

// RoleOf returns the role a token was issued for, or an empty role when the
// token is unknown or expired.
func (s *Service) RoleOf(t Token) (model.Role, error) {
	v, err := s.sessionCache.Get(t)
	if err != nil {
		return "", errors.Join(ErrInternal, err)
	}

	return model.Role(v), nil
}

// IsValid reports whether t grants want.
func (s *Service) IsValid(t Token, want model.Role) (bool, error) {
	role, err := s.RoleOf(t)
	if err != nil {
		return false, err
	}

	return role.Grants(want), nil
}

func (s *Service) Revoke(t Token) error {
	if err := s.sessionCache.Delete(t); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}
