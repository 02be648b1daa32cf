package delim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("HeaderDefinesKeys", func(t *testing.T) {
		raw := "SKU,QtyFL,QtyNJ,Price\nSKU-1,5,3,12.50\nSKU-2,0,0,0\n"

		records, err := ParseString(raw, ',')
		require.NoError(t, err)
		require.Len(t, records, 2)

		// Header casing is normalized
		v, ok := records[0].Get("sku")
		assert.True(t, ok)
		assert.Equal(t, "SKU-1", v)

		v, ok = records[0].Get("QTYFL")
		assert.True(t, ok)
		assert.Equal(t, "5", v)
	})

	t.Run("BlankLinesSkipped", func(t *testing.T) {
		raw := "sku,qty\n\nSKU-1,5\n\n\nSKU-2,7\n"

		records, err := ParseString(raw, ',')
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("RaggedRowIsFatal", func(t *testing.T) {
		raw := "sku,qty,price\nSKU-1,5\n"

		records, err := ParseString(raw, ',')
		require.Error(t, err)
		assert.Nil(t, records)

		var pe *ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, 2, pe.Line)
	})

	t.Run("PipeDelimiter", func(t *testing.T) {
		raw := "sku|qty|price\nSKU-1|5|12.50\n"

		records, err := ParseString(raw, '|')
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 5, records[0].Int("qty"))
	})

	t.Run("EmptyInput", func(t *testing.T) {
		records, err := ParseString("", ',')
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("HeaderOnly", func(t *testing.T) {
		records, err := ParseString("sku,qty\n", ',')
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("ValuesAreTrimmed", func(t *testing.T) {
		raw := "sku, qty\nSKU-1 , 5\n"

		records, err := ParseString(raw, ',')
		require.NoError(t, err)
		require.Len(t, records, 1)

		v, _ := records[0].Get("sku")
		assert.Equal(t, "SKU-1", v)
		assert.Equal(t, 5, records[0].Int("qty"))
	})
}
