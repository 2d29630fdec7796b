package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/karnifashions/catalog-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse_ConRolYTipo(t *testing.T) {
	in := pkgjwt.Identity{UserID: 42, Username: "meera", Role: "Customer", CustomerType: 2}
	tok, err := pkgjwt.Generate(testSecret, "karni-test", 60, in)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	out, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "karni-test", -1, pkgjwt.Identity{UserID: 1, Role: "Admin"})
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "karni-test", 60, pkgjwt.Identity{UserID: 1, Role: "Admin"})
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "karni-test", 60, pkgjwt.Identity{})
	assert.Error(t, err)
}
