package domain_test

import (
	"testing"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePurchaseTotal(t *testing.T) {
	items := []domain.PurchaseItem{
		{Name: "Cement", Unit: "bag", Category: "binder", Quantity: decimal.NewFromInt(1000), UnitPrice: decimal.NewFromInt(90)},
		{Name: "Sand", Unit: "m3", Category: "aggregate", Quantity: decimal.RequireFromString("2.5"), UnitPrice: decimal.NewFromInt(40)},
	}
	lineSum := decimal.NewFromInt(90100)

	tests := []struct {
		name     string
		declared decimal.Decimal
		wantErr  error
	}{
		{"zero defaults to line sum", decimal.Zero, nil},
		{"matching total", lineSum, nil},
		{"matching total with trailing zeros", decimal.RequireFromString("90100.00"), nil},
		{"below line sum", decimal.NewFromInt(1), apperrors.ErrValidation},
		{"above line sum", decimal.NewFromInt(90101), apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ResolvePurchaseTotal(items, tt.declared)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, lineSum.Equal(got), "got %s", got)
		})
	}
}
