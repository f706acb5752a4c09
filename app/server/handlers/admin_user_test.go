package handlers

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hello-world-site/app/server/models"
	"net/http"
	"testing"
	"time"
)

func TestProfile(t *testing.T) {
	env := newTestEnv(t, envOpts{})

	res := env.do(http.MethodGet, "/api/admin/profile", "")
	assert.Equal(t, http.StatusUnauthorized, res.code)

	token := env.login()
	res = env.do(http.MethodGet, "/api/admin/profile", "", bearer(token))
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, float64(1), res.data()["id"])
	assert.Equal(t, "admin", res.data()["username"])
	createdAt, _ := res.data()["created_at"].(string)
	_, err := time.Parse(time.RFC3339, createdAt)
	assert.NoError(t, err)

	// 账号被删除后令牌仍然有效，但身份无法解析
	require.NoError(t, env.db.Where("1 = 1").Delete(&models.AdminAccount{}).Error)
	res = env.do(http.MethodGet, "/api/admin/profile", "", bearer(token))
	assert.Equal(t, http.StatusNotFound, res.code)
	assert.Equal(t, "管理员信息不存在", res.body["message"])
}

func TestPasswordUpdate(t *testing.T) {
	env := newTestEnv(t, envOpts{})
	token := env.login()

	res := env.do(http.MethodPut, "/api/admin/password", `{"old_password":"admin123","new_password":"secret"}`)
	assert.Equal(t, http.StatusUnauthorized, res.code)

	res = env.do(http.MethodPut, "/api/admin/password", `{"old_password":"admin123"}`, bearer(token))
	assert.Equal(t, http.StatusBadRequest, res.code)

	res = env.do(http.MethodPut, "/api/admin/password", `{"old_password":"wrong","new_password":"secret"}`, bearer(token))
	assert.Equal(t, http.StatusUnauthorized, res.code)
	assert.Equal(t, "原密码错误", res.body["message"])

	res = env.do(http.MethodPut, "/api/admin/password", `{"old_password":"admin123","new_password":"secret"}`, bearer(token))
	require.Equal(t, http.StatusOK, res.code)

	res = env.do(http.MethodPost, "/api/admin/login", `{"password":"admin123"}`)
	assert.Equal(t, http.StatusUnauthorized, res.code)
	res = env.do(http.MethodPost, "/api/admin/login", `{"password":"secret"}`)
	assert.Equal(t, http.StatusOK, res.code)

	require.NoError(t, env.db.Where("1 = 1").Delete(&models.AdminAccount{}).Error)
	res = env.do(http.MethodPut, "/api/admin/password", `{"old_password":"secret","new_password":"other"}`, bearer(token))
	assert.Equal(t, http.StatusNotFound, res.code)
}
