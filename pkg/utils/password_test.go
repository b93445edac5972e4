package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	h := HashPassword("segredo1")
	assert.NotEqual(t, "segredo1", h)
	assert.True(t, CheckPassword("segredo1", h))
	assert.False(t, CheckPassword("errada", h))
	assert.False(t, CheckPassword("segredo1", "not-a-hash"))
}

func TestHashPassword_Salted(t *testing.T) {
	assert.NotEqual(t, HashPassword("segredo1"), HashPassword("segredo1"))
}
