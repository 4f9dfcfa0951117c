package helper

import (
	"testing"
	"time"

	"event_ticketing/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("changeme123")
	require.NoError(t, err)
	assert.NotEqual(t, "changeme123", hash)

	assert.True(t, CheckPasswordHash("changeme123", hash))
	assert.False(t, CheckPasswordHash("wrongpass", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	JwtSecret = []byte("test-secret")

	claim := model.TokenClaim{UserId: 42, Username: "alice"}

	access, err := GenerateAccessToken(claim)
	require.NoError(t, err)
	refresh, err := GenerateRefreshToken(claim)
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	for _, tokenString := range []string{access, refresh} {
		token, err := ParseToken(tokenString)
		require.NoError(t, err)
		require.True(t, token.Valid)

		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, float64(42), claims["userId"])
		assert.Equal(t, "alice", claims["username"])
	}
}

func TestParseToken_RejectsTampered(t *testing.T) {
	JwtSecret = []byte("test-secret")

	access, err := GenerateAccessToken(model.TokenClaim{UserId: 1, Username: "bob"})
	require.NoError(t, err)

	JwtSecret = []byte("another-secret")
	token, err := ParseToken(access)
	assert.Error(t, err)
	if token != nil {
		assert.False(t, token.Valid)
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("alice@example.com"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail(""))
}

func TestEventSlug(t *testing.T) {
	s := EventSlug("Spring Gala 2026!")
	assert.Contains(t, s, "spring-gala-2026")
	assert.NotContains(t, s, " ")
	assert.NotContains(t, s, "!")

	// suffix keeps two events with the same name apart
	first := EventSlug("Same Name")
	time.Sleep(2 * time.Millisecond)
	assert.NotEqual(t, first, EventSlug("Same Name"))
}
