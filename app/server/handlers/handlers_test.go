package handlers

import (
	"context"
	"encoding/json"
	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	"hello-world-site/app/server/auth"
	"hello-world-site/app/server/config"
	"hello-world-site/app/server/constants"
	"hello-world-site/app/server/inits"
	"hello-world-site/app/server/jwt"
	"hello-world-site/app/server/metrics"
	"hello-world-site/app/server/store"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testSecret = "test-secret"

type testEnv struct {
	t   *testing.T
	e   *echo.Echo
	db  *gorm.DB
	jwt *jwt.JWT
	mr  *miniredis.Miniredis
}

type envOpts struct {
	mode            string
	requireUsername bool
}

func newTestEnv(t *testing.T, o envOpts) *testEnv {
	t.Helper()
	if o.mode == "" {
		o.mode = config.AuthModeToken
	}

	l := zaptest.NewLogger(t)

	db, err := inits.Open(config.DBDriverSqlite, "file::memory:", false)
	require.NoError(t, err)
	require.NoError(t, inits.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	env := &testEnv{t: t, db: db}

	var rdb *redis.Client
	if o.mode == config.AuthModeSession {
		env.mr = miniredis.RunT(t)
		rdb = redis.NewClient(&redis.Options{Addr: env.mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
	}

	configs := store.NewConfigStore(db, rdb, l)
	accounts := store.NewAccountStore(db, l)
	require.NoError(t, inits.InitData(context.Background(), configs, accounts, constants.DefaultAdminUsername, "admin123", l))

	var strategy auth.Strategy
	if o.mode == config.AuthModeSession {
		strategy = auth.NewSessionStrategy(rdb, constants.AuthTokenDuration, false)
	} else {
		env.jwt, err = jwt.New(testSecret)
		require.NoError(t, err)
		strategy = auth.NewTokenStrategy(env.jwt, constants.AuthTokenDuration)
	}

	m := metrics.New()
	app := NewApp(l, configs, accounts, store.NewAccessLogStore(db), strategy, m, Options{
		AdminUsername:        constants.DefaultAdminUsername,
		LoginRequireUsername: o.requireUsername,
	})

	env.e = echo.New()
	env.e.HTTPErrorHandler = app.HTTPErrorHandler
	env.e.Use(m.Middleware())
	app.Register(env.e)

	return env
}

type result struct {
	code    int
	header  http.Header
	cookies []*http.Cookie
	body    map[string]interface{}
}

func (r *result) data() map[string]interface{} {
	d, _ := r.body["data"].(map[string]interface{})
	return d
}

// do 发起请求， with 可以为请求附加 header 或 cookie
func (env *testEnv) do(method, path, body string, with ...func(*http.Request)) *result {
	env.t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, w := range with {
		w(req)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	res := &result{
		code:    rec.Code,
		header:  rec.Header(),
		cookies: rec.Result().Cookies(),
	}
	if rec.Body.Len() > 0 {
		require.NoError(env.t, json.Unmarshal(rec.Body.Bytes(), &res.body), rec.Body.String())
	}
	return res
}

func bearer(token string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
}

func withCookies(cookies []*http.Cookie) func(*http.Request) {
	return func(r *http.Request) {
		for _, c := range cookies {
			r.AddCookie(c)
		}
	}
}

// login 使用默认密码登录并返回令牌
func (env *testEnv) login() string {
	env.t.Helper()
	res := env.do(http.MethodPost, "/api/admin/login", `{"password":"admin123"}`)
	require.Equal(env.t, http.StatusOK, res.code)
	token, _ := res.data()["token"].(string)
	return token
}
