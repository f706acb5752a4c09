package handlers

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hello-world-site/app/server/constants"
	"net/http"
	"strings"
	"testing"
)

func TestUpdateConfig(t *testing.T) {
	env := newTestEnv(t, envOpts{})
	token := env.login()

	res := env.do(http.MethodPut, "/api/admin/config", `{"main_title":"New"}`)
	assert.Equal(t, http.StatusUnauthorized, res.code)

	res = env.do(http.MethodPut, "/api/admin/config", `{"sub_title":"  Welcome  "}`, bearer(token))
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, "配置更新成功", res.body["message"])
	assert.Equal(t, map[string]interface{}{"sub_title": "Welcome"}, res.body["data"])

	res = env.do(http.MethodGet, "/api/config", "")
	assert.Equal(t, "Hello World", res.data()["main_title"])
	assert.Equal(t, "Welcome", res.data()["sub_title"])

	res = env.do(http.MethodPut, "/api/admin/config", `{"main_title":"Main","sub_title":"Sub"}`, bearer(token))
	require.Equal(t, http.StatusOK, res.code)
	assert.Len(t, res.data(), 2)

	res = env.do(http.MethodGet, "/api/config", "")
	assert.Equal(t, "Main", res.data()["main_title"])
	assert.Equal(t, "Sub", res.data()["sub_title"])
}

func TestUpdateConfigRejects(t *testing.T) {
	env := newTestEnv(t, envOpts{})
	token := env.login()

	for body, message := range map[string]string{
		`{}`:                                   "没有要更新的内容",
		`{"main_title":null,"sub_title":null}`: "没有要更新的内容",
		`{"main_title":"","sub_title":""}`:     "主标题不能为空",
		`{"main_title":"   "}`:                 "主标题不能为空",
		`{"sub_title":""}`:                     "副标题不能为空",
		`{"main_title":"` + strings.Repeat("a", 101) + `"}`: "主标题不能超过100个字符",
		`{"sub_title":"` + strings.Repeat("a", 201) + `"}`:  "副标题不能超过200个字符",
		`{"main_title":`: msgBadRequest,
	} {
		res := env.do(http.MethodPut, "/api/admin/config", body, bearer(token))
		assert.Equal(t, http.StatusBadRequest, res.code, body)
		assert.Equal(t, message, res.body["message"], body)
	}

	// 拒绝的请求不修改配置
	res := env.do(http.MethodGet, "/api/admin/config", "", bearer(token))
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, "Hello World", res.data()["main_title"])
	assert.Equal(t, constants.DefaultSubTitle, res.data()["sub_title"])

	// 按字符计算长度
	res = env.do(http.MethodPut, "/api/admin/config", `{"main_title":"`+strings.Repeat("欢", 100)+`"}`, bearer(token))
	assert.Equal(t, http.StatusOK, res.code)
}
