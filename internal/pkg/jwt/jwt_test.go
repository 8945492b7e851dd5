package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	s := New("secret", time.Hour)

	token, err := s.GenerateToken("draft-42")
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "draft-42", claims.DraftID)
	assert.Equal(t, "draft-42", claims.Subject)
}

func TestValidate_Expired(t *testing.T) {
	s := New("secret", time.Minute)
	issued := time.Now()
	s.now = func() time.Time { return issued }

	token, err := s.GenerateToken("draft-1")
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = s.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := New("one", time.Hour).GenerateToken("draft-1")
	require.NoError(t, err)

	_, err = New("two", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidate_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{DraftID: "draft-1", RegisteredClaims: jwtlib.RegisteredClaims{
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = New("secret", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidate_RequiresDraftID(t *testing.T) {
	s := New("secret", time.Hour)
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.Error(t, err)
}
