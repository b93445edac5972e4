package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTer_IssueAndParse(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "farmasaude-api", TTL: time.Hour}

	tok, err := j.Issue("u-1", "ana@example.com", "seller")
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.UID)
	assert.Equal(t, "ana@example.com", c.Email)
	assert.Equal(t, "seller", c.Role)
	assert.Equal(t, "farmasaude-api", c.Issuer)
}

func TestJWTer_Parse_WrongSecret(t *testing.T) {
	a := &JWTer{Secret: []byte("secret-a"), Issuer: "farmasaude-api", TTL: time.Hour}
	b := &JWTer{Secret: []byte("secret-b"), Issuer: "farmasaude-api", TTL: time.Hour}

	tok, err := a.Issue("u-1", "ana@example.com", "customer")
	require.NoError(t, err)
	_, err = b.Parse(tok)
	assert.Error(t, err)
}

func TestJWTer_Parse_WrongIssuer(t *testing.T) {
	a := &JWTer{Secret: []byte("shared"), Issuer: "someone-else", TTL: time.Hour}
	b := &JWTer{Secret: []byte("shared"), Issuer: "farmasaude-api", TTL: time.Hour}

	tok, err := a.Issue("u-1", "ana@example.com", "customer")
	require.NoError(t, err)
	_, err = b.Parse(tok)
	assert.Error(t, err)
}

func TestJWTer_Parse_Expired(t *testing.T) {
	// leeway 是 60s，要过期得超出它
	j := &JWTer{Secret: []byte("shared"), Issuer: "farmasaude-api", TTL: -2 * time.Minute}
	tok, err := j.Issue("u-1", "ana@example.com", "customer")
	require.NoError(t, err)
	_, err = j.Parse(tok)
	assert.Error(t, err)
}

func TestJWTer_Parse_Garbage(t *testing.T) {
	j := &JWTer{Secret: []byte("shared"), Issuer: "farmasaude-api", TTL: time.Hour}
	_, err := j.Parse("not-a-token")
	assert.Error(t, err)
}
