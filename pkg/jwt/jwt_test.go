package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	secret    = "test-secret-key-for-unit-tests"
	userID    = "00000000-0000-0000-0000-000000000001"
	companyID = "00000000-0000-0000-0000-000000000002"
)

func TestGenerateParse(t *testing.T) {
	tok, err := Generate(secret, userID, companyID, "manager", "gestion-stock", 60)
	require.NoError(t, err)

	c, err := ParseClaims(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, userID, c.UserID)
	assert.Equal(t, companyID, c.CompanyID)
	assert.Equal(t, "manager", c.Role)
	assert.Equal(t, userID, c.Subject)
	assert.NotEmpty(t, c.ID)

	u, co, role, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, []string{userID, companyID, "manager"}, []string{u, co, role})
}

func TestParse_Errores(t *testing.T) {
	expired, err := Generate(secret, userID, companyID, "admin", "gestion-stock", -1)
	require.NoError(t, err)
	_, err = ParseClaims(secret, expired)
	assert.ErrorIs(t, err, ErrExpired)

	valid, err := Generate(secret, userID, companyID, "admin", "gestion-stock", 60)
	require.NoError(t, err)
	_, err = ParseClaims("otro-secret", valid)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = ParseClaims(secret, "token.invalido.aqui")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = ParseClaims("", valid)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Generate("", userID, companyID, "admin", "x", 60)
	assert.Error(t, err)
}

func TestParse_RechazaOtroAlgoritmo(t *testing.T) {
	claims := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           userID,
		CompanyID:        companyID,
		Role:             "admin",
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = ParseClaims(secret, tok)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParse_ExigeVencimiento(t *testing.T) {
	claims := Claims{UserID: userID, CompanyID: companyID, Role: "admin"}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = ParseClaims(secret, tok)
	assert.ErrorIs(t, err, ErrInvalid)
}
