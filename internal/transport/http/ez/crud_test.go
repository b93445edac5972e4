package ez

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmasaude-api/internal/domain"
)

func jsonCtx(t *testing.T, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, err := http.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c
}

func stored() *domain.Product {
	return &domain.Product{
		ID:          "p1",
		Name:        "Dipirona 500mg",
		Description: "Analgésico",
		Brand:       "Genérico",
		Price:       decimal.RequireFromString("9.90"),
		Quantity:    7,
		InStock:     true,
		OwnerID:     "seller-1",
	}
}

func TestMergeBody_ExplicitZeroesTakeEffect(t *testing.T) {
	m := stored()
	c := jsonCtx(t, `{"quantity":0,"description":""}`)
	require.NoError(t, mergeBody(c, m))

	assert.Equal(t, 0, m.Quantity, "explicit 0 must not be dropped")
	assert.Empty(t, m.Description, "explicit \"\" must clear the field")
	// 没出现在 body 里的字段保持原值
	assert.Equal(t, "Dipirona 500mg", m.Name)
	assert.True(t, m.Price.Equal(decimal.RequireFromString("9.90")))
	assert.Equal(t, "seller-1", m.OwnerID)
}

func TestMergeBody_PartialBodyKeepsRest(t *testing.T) {
	m := stored()
	c := jsonCtx(t, `{"price":"12.50"}`)
	require.NoError(t, mergeBody(c, m))

	assert.True(t, m.Price.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, 7, m.Quantity)
	assert.Equal(t, "Analgésico", m.Description)
}

func TestMergeBody_ValidationStillRuns(t *testing.T) {
	m := stored()
	c := jsonCtx(t, `{"name":"`+strings.Repeat("x", 200)+`"}`)
	assert.Error(t, mergeBody(c, m), "max=128 on name must still be enforced")
}
