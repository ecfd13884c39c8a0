package fixture_test

import (
	"testing"
	"time"

	"goldenorders/internal/fixture"
	"goldenorders/internal/service"
	"goldenorders/pkg/brdoc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_PassesValidation(t *testing.T) {
	t.Parallel()

	validate, err := service.NewValidator()
	require.NoError(t, err)

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	for range 50 {
		order := fixture.Order("Vendas@goldenpr.com.br", now)

		require.NoError(t, validate.Struct(order))
		assert.True(t, brdoc.IsValidCNPJ(order.Customer.Document), order.Customer.Document)
		assert.Equal(t, "vendas@goldenpr.com.br", order.CreatedBy)
		assert.Equal(t, "2026-03-10", order.Date)
		assert.Empty(t, order.ID)
		assert.NotEmpty(t, order.Items)
	}
}
