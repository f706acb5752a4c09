package auth

import (
	"context"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"hello-world-site/app/server/config"
	"hello-world-site/app/server/jwt"
	"hello-world-site/app/server/store"
	"net/http"
	"strings"
	"time"
)

type TokenStrategy struct {
	jwt *jwt.JWT
	ttl time.Duration
	now func() time.Time
}

var _ Strategy = (*TokenStrategy)(nil)

func NewTokenStrategy(j *jwt.JWT, ttl time.Duration) *TokenStrategy {
	return &TokenStrategy{jwt: j, ttl: ttl, now: time.Now}
}

func (s *TokenStrategy) Name() string {
	return config.AuthModeToken
}

func (s *TokenStrategy) Issue(_ context.Context, account *store.Account) (*Credential, error) {
	expires := s.now().Add(s.ttl)
	token, err := s.jwt.SignToken(&jwt.User{
		ID:       account.ID,
		Username: account.Username,
		Expires:  expires.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &Credential{Value: token, ExpiresAt: expires}, nil
}

func (s *TokenStrategy) Verify(_ context.Context, value string) (*Claims, error) {
	user, err := s.jwt.ParseUser(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}
	return &Claims{
		AdminID:   user.ID,
		Username:  user.Username,
		ExpiresAt: time.Unix(user.Expires, 0),
	}, nil
}

// Revoke 令牌是无状态的，由客户端自行删除
func (s *TokenStrategy) Revoke(context.Context, string) error {
	return nil
}

func (s *TokenStrategy) Extract(r *http.Request) (string, error) {
	// 提取 token
	authHeader := r.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", ErrUnauthenticated
	}

	splits := strings.Fields(authHeader)
	if len(splits) != 2 {
		return "", fmt.Errorf("%w: malformed authorization header", ErrUnauthenticated)
	}

	if strings.ToLower(splits[0]) != "bearer" {
		return "", fmt.Errorf("%w: unknown auth method %s", ErrUnauthenticated, splits[0])
	}

	return splits[1], nil
}

func (s *TokenStrategy) Deliver(_ echo.Context, cred *Credential) string {
	return cred.Value
}

func (s *TokenStrategy) Clear(echo.Context) {}

// IsTokenError 是否为令牌模式下的凭证错误
func IsTokenError(s Strategy, err error) bool {
	return s.Name() == config.AuthModeToken && errors.Is(err, ErrInvalidCredential)
}
