package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "ledger/pkg/domain-errors"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService("test-signing-key", "ledger", "ledger-api")

	token, err := svc.GenerateAccessToken(42, 7, "AGENCY_STAFF", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, int64(7), claims.AgencyID)
	assert.Equal(t, "AGENCY_STAFF", claims.Role)
	assert.Equal(t, "ledger", claims.Issuer)
}

func TestExpiredTokenIsUnauthorized(t *testing.T) {
	svc := NewService("test-signing-key", "ledger", "ledger-api")

	token, err := svc.GenerateAccessToken(42, 7, "AGENCY_STAFF", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.Contains(t, err.Error(), "expired")
}

func TestWrongKeyIsRejected(t *testing.T) {
	issuer := NewService("key-one", "ledger", "ledger-api")
	verifier := NewService("key-two", "ledger", "ledger-api")

	token, err := issuer.GenerateAccessToken(1, 1, "CEO", time.Minute)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestGarbageTokenIsRejected(t *testing.T) {
	svc := NewService("test-signing-key", "ledger", "ledger-api")
	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
