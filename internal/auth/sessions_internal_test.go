package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUnknownUserHashCostsLikeAStoredHash(t *testing.T) {
	cost, err := bcrypt.Cost([]byte(unknownUserHash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
