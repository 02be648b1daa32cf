package delim

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecordInt(t *testing.T) {
	rec := Record{
		"qtyfl": "5",
		"qtynj": "abc",
		"qtyca": "-3",
		"empty": "",
	}

	tests := []struct {
		name  string
		field string
		want  int
	}{
		{"Valid", "qtyfl", 5},
		{"CaseInsensitive", "QtyFL", 5},
		{"Unparsable", "qtynj", 0},
		{"Negative", "qtyca", 0},
		{"Empty", "empty", 0},
		{"Missing", "qtytx", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rec.Int(tt.field))
		})
	}
}

func TestRecordDecimal(t *testing.T) {
	rec := Record{
		"price": "12.50",
		"cost":  "n/a",
		"promo": "-1.25",
	}

	assert.True(t, rec.Decimal("price").Equal(decimal.RequireFromString("12.50")))
	assert.True(t, rec.Decimal("PRICE").Equal(decimal.RequireFromString("12.50")))

	// Unparsable and negative values decode to zero, never an error.
	assert.True(t, rec.Decimal("cost").IsZero())
	assert.True(t, rec.Decimal("promo").IsZero())
	assert.True(t, rec.Decimal("missing").IsZero())
}
