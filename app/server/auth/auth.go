// Package auth turns a verified admin account into a credential and back.
// Two strategies exist, selected by AUTH_MODE: stateless signed tokens
// carried in the Authorization header, and redis-backed sessions carried in
// a cookie. Handlers and the guard only see the Strategy interface.
package auth

import (
	"context"
	"errors"
	"github.com/labstack/echo/v4"
	"hello-world-site/app/server/store"
	"net/http"
	"time"
)

var (
	// ErrUnauthenticated 请求没有携带凭证
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidCredential 凭证无效、已过期或已注销
	ErrInvalidCredential = errors.New("invalid or expired credential")
)

type Claims struct {
	AdminID   uint
	Username  string
	ExpiresAt time.Time
}

type Credential struct {
	Value     string
	ExpiresAt time.Time
}

type Strategy interface {
	// Name 返回 config.AuthModeToken 或 config.AuthModeSession
	Name() string
	// Issue 为已验证的账号签发凭证
	Issue(ctx context.Context, account *store.Account) (*Credential, error)
	// Verify 校验凭证，失败时返回的错误包装 ErrInvalidCredential
	Verify(ctx context.Context, value string) (*Claims, error)
	// Revoke 注销凭证，无状态的凭证无需处理
	Revoke(ctx context.Context, value string) error
	// Extract 从请求中提取凭证，没有时返回 ErrUnauthenticated
	Extract(r *http.Request) (string, error)
	// Deliver 把凭证交给客户端，返回需要放在响应体中的令牌（可以为空）
	Deliver(c echo.Context, cred *Credential) string
	// Clear 让客户端丢弃凭证
	Clear(c echo.Context)
}

// Authenticate 提取并校验请求携带的凭证
func Authenticate(ctx context.Context, s Strategy, r *http.Request) (*Claims, string, error) {
	value, err := s.Extract(r)
	if err != nil {
		return nil, "", err
	}
	claims, err := s.Verify(ctx, value)
	if err != nil {
		return nil, "", err
	}
	return claims, value, nil
}

const (
	contextKeyClaims     = "admin"
	contextKeyCredential = "admin_credential"
)

// SetContext 把校验通过的身份放入请求上下文
func SetContext(c echo.Context, claims *Claims, value string) {
	c.Set(contextKeyClaims, claims)
	c.Set(contextKeyCredential, value)
}

func ClaimsFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(contextKeyClaims).(*Claims)
	return claims, ok && claims != nil
}

func CredentialFrom(c echo.Context) string {
	value, _ := c.Get(contextKeyCredential).(string)
	return value
}
