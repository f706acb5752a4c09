package jwt

import (
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestSignAndParse(t *testing.T) {
	j, err := New("test-secret")
	require.NoError(t, err)

	exp := time.Now().Add(time.Hour).Unix()
	token, err := j.SignToken(&User{ID: 7, Username: "admin", Expires: exp})
	require.NoError(t, err)

	user, err := j.ParseUser(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, exp, user.Expires)
}

func TestParseRejects(t *testing.T) {
	j, err := New("test-secret")
	require.NoError(t, err)

	_, err = New("")
	assert.Error(t, err)

	_, err = j.ParseUser("")
	assert.Error(t, err)

	// 已过期
	expired, err := j.SignToken(&User{ID: 1, Username: "admin", Expires: time.Now().Add(-time.Minute).Unix()})
	require.NoError(t, err)
	_, err = j.ParseUser(expired)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)

	// 其他密钥签发
	other, err := New("other-secret")
	require.NoError(t, err)
	foreign, err := other.SignToken(&User{ID: 1, Username: "admin", Expires: time.Now().Add(time.Hour).Unix()})
	require.NoError(t, err)
	_, err = j.ParseUser(foreign)
	assert.ErrorIs(t, err, gojwt.ErrTokenSignatureInvalid)

	// 没有过期时间
	noExp, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"admin_id": 1,
		"username": "admin",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = j.ParseUser(noExp)
	assert.Error(t, err)

	// 不允许的签名算法
	none, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.MapClaims{
		"admin_id": 1,
		"username": "admin",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = j.ParseUser(none)
	assert.Error(t, err)

	// 缺少字段
	noUser, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"admin_id": 1,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = j.ParseUser(noUser)
	assert.Error(t, err)
}
