package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shenikar/mobility_map/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier("secret", "https://auth.example.test")
	token, err := v.Sign(models.Identity{ID: "user-1", Email: "a@example.test", Name: "Asha"}, time.Hour)
	require.NoError(t, err)

	identity, err := v.Verify(token)

	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.ID)
	assert.Equal(t, "Asha", identity.Name)
	assert.Equal(t, "a@example.test", identity.Email)
}

func TestVerifier_NameFallsBackToEmail(t *testing.T) {
	v := NewVerifier("secret", "")
	token, err := v.Sign(models.Identity{ID: "user-1", Email: "a@example.test"}, time.Hour)
	require.NoError(t, err)

	identity, err := v.Verify(token)

	require.NoError(t, err)
	assert.Equal(t, "a@example.test", identity.Name)
}

func TestVerifier_Rejects(t *testing.T) {
	v := NewVerifier("secret", "issuer-a")

	expired, err := v.Sign(models.Identity{ID: "u"}, -time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := NewVerifier("other-secret", "issuer-a").Sign(models.Identity{ID: "u"}, time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer, err := NewVerifier("secret", "issuer-b").Sign(models.Identity{ID: "u"}, time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(wrongIssuer)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSubject, err := v.Sign(models.Identity{}, time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(noSubject)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = v.Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifier_RejectsNoneAlgorithm(t *testing.T) {
	v := NewVerifier("secret", "")
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = v.Verify(signed)

	assert.ErrorIs(t, err, ErrInvalidToken)
}
