// Package jwt 会话令牌单元测试
package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestManager 创建测试用的 JWT Manager
func setupTestManager() *Manager {
	return NewManager(&Config{
		Secret:           "test-secret-key-for-hotel-sessions",
		AccessExpireTime: 15 * time.Minute,
		Issuer:           "test-issuer",
	})
}

func TestManager_IssueAndParse(t *testing.T) {
	m := setupTestManager()

	token, err := m.Issue(42, "recepcion")
	require.NoError(t, err)
	require.NotEmpty(t, token.Value)
	assert.NotEmpty(t, token.SessionID)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), token.ExpiresAt, 5*time.Second)

	claims, err := m.ParseToken(token.Value)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "recepcion", claims.Username)
	assert.Equal(t, token.SessionID, claims.SessionID())
	assert.Equal(t, "test-issuer", claims.Issuer)
}

func TestManager_IssueUniqueSessions(t *testing.T) {
	m := setupTestManager()

	t1, err := m.Issue(1, "a")
	require.NoError(t, err)
	t2, err := m.Issue(1, "a")
	require.NoError(t, err)

	assert.NotEqual(t, t1.SessionID, t2.SessionID)
}

func TestManager_ParseToken_Errors(t *testing.T) {
	m := setupTestManager()

	t.Run("过期令牌", func(t *testing.T) {
		expired := NewManager(&Config{Secret: "test-secret-key-for-hotel-sessions", AccessExpireTime: -time.Minute})
		token, err := expired.Issue(1, "a")
		require.NoError(t, err)

		_, err = m.ParseToken(token.Value)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("格式错误", func(t *testing.T) {
		_, err := m.ParseToken("not.a.jwt")
		assert.Error(t, err)

		_, err = m.ParseToken("garbage")
		assert.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("签名不匹配", func(t *testing.T) {
		other := NewManager(&Config{Secret: "otra-clave", AccessExpireTime: time.Minute})
		token, err := other.Issue(1, "a")
		require.NoError(t, err)

		_, err = m.ParseToken(token.Value)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("篡改载荷", func(t *testing.T) {
		token, err := m.Issue(1, "a")
		require.NoError(t, err)
		parts := strings.Split(token.Value, ".")
		require.Len(t, parts, 3)

		_, err = m.ParseToken(parts[0] + "." + parts[1] + "x." + parts[2])
		assert.Error(t, err)
	})
}

func TestManager_TTL(t *testing.T) {
	assert.Equal(t, 15*time.Minute, setupTestManager().TTL())
}
