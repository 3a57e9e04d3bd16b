package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Phoneshop-api/pkg/jwt"
)

const testSecret = "test-secret"

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, exp, err := jwt.Generate(testSecret, "actor-1", "ana", "manager", "phoneshop", 60)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "actor-1", claims.ActorID)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, "actor-1", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, _, err := jwt.Generate(testSecret, "actor-1", "ana", "staff", "phoneshop", 60)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secret", token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestParse_Expirado(t *testing.T) {
	token, _, err := jwt.GenerateAt(time.Now().Add(-2*time.Hour), testSecret, "actor-1", "ana", "staff", "phoneshop", 30)
	require.NoError(t, err)

	_, err = jwt.Parse(testSecret, token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, _, err := jwt.Generate("", "actor-1", "ana", "staff", "phoneshop", 60)
	assert.Error(t, err)
}
