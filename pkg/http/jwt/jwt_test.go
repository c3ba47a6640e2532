package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestGenAndParseToken(t *testing.T) {
	aToken, rToken, err := GenToken("u_1001", "admin", []byte(testSecret), 30, 60)
	require.NoError(t, err)
	require.NotEmpty(t, aToken)
	require.NotEmpty(t, rToken)

	claims, err := ParseToken(aToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "u_1001", claims.UserId)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "crew", claims.Issuer)
}

func TestParseToken_WrongSecret(t *testing.T) {
	aToken, _, err := GenToken("u_1001", "viewer", []byte(testSecret), 30, 60)
	require.NoError(t, err)

	_, err = ParseToken(aToken, "other-secret")
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	aToken, _, err := GenToken("u_1001", "viewer", []byte(testSecret), -1, 60)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = ParseToken(aToken, testSecret)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not-a-token", testSecret)
	assert.Error(t, err)
}
