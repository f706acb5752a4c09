package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"hello-world-site/app/server/config"
	"hello-world-site/app/server/constants"
	"hello-world-site/app/server/store"
	"net/http"
	"time"
)

// session 保存在 redis 中的会话内容
type session struct {
	AdminID   uint   `json:"admin_id"`
	Username  string `json:"username"`
	ExpiresAt int64  `json:"expires_at"` // Unix second
}

type SessionStrategy struct {
	rdb    *redis.Client
	ttl    time.Duration
	secure bool // cookie 是否只在 HTTPS 下发送
}

var _ Strategy = (*SessionStrategy)(nil)

func NewSessionStrategy(rdb *redis.Client, ttl time.Duration, secure bool) *SessionStrategy {
	return &SessionStrategy{rdb: rdb, ttl: ttl, secure: secure}
}

func (s *SessionStrategy) Name() string {
	return config.AuthModeSession
}

func (s *SessionStrategy) Issue(ctx context.Context, account *store.Account) (*Credential, error) {
	id := uuid.NewString()
	expires := time.Now().Add(s.ttl)

	sessBytes, err := json.Marshal(&session{
		AdminID:   account.ID,
		Username:  account.Username,
		ExpiresAt: expires.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	if err = s.rdb.Set(ctx, fmt.Sprintf(constants.CacheKeySession, id), sessBytes, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &Credential{Value: id, ExpiresAt: expires}, nil
}

func (s *SessionStrategy) Verify(ctx context.Context, value string) (*Claims, error) {
	// 格式化 UUID ，避免无效的 id 打到 redis
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed session id", ErrInvalidCredential)
	}

	sessBytes, err := s.rdb.Get(ctx, fmt.Sprintf(constants.CacheKeySession, id.String())).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: session not found", ErrInvalidCredential)
		}
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	var sess session
	if err = json.Unmarshal(sessBytes, &sess); err != nil || sess.AdminID == 0 {
		// 可能是无效的会话，清理掉
		s.rdb.Del(ctx, fmt.Sprintf(constants.CacheKeySession, id.String()))
		return nil, fmt.Errorf("%w: broken session", ErrInvalidCredential)
	}

	return &Claims{
		AdminID:   sess.AdminID,
		Username:  sess.Username,
		ExpiresAt: time.Unix(sess.ExpiresAt, 0),
	}, nil
}

func (s *SessionStrategy) Revoke(ctx context.Context, value string) error {
	id, err := uuid.Parse(value)
	if err != nil {
		return nil
	}
	if err = s.rdb.Del(ctx, fmt.Sprintf(constants.CacheKeySession, id.String())).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *SessionStrategy) Extract(r *http.Request) (string, error) {
	cookie, err := r.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrUnauthenticated
	}
	return cookie.Value, nil
}

func (s *SessionStrategy) Deliver(c echo.Context, cred *Credential) string {
	c.SetCookie(&http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    cred.Value,
		Path:     "/",
		Expires:  cred.ExpiresAt,
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return ""
}

func (s *SessionStrategy) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
