package supplier

import (
	"testing"

	"catalog-sync/feature/supplier/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFieldType(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"Empty", nil, "unknown"},
		{"AllBlank", []string{"", "  "}, "null"},
		{"Integers", []string{"1", "42", "7"}, "number"},
		{"Decimals", []string{"19.99", "0.5"}, "number"},
		{"Booleans", []string{"true", "no", "YES"}, "boolean"},
		{"Dates", []string{"2026-08-29", "01/02/2026"}, "date"},
		{"MixedFallsBackToString", []string{"42", "widget"}, "string"},
		{"PlainText", []string{"Hammer", "Wrench"}, "string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFieldType(tt.values))
		})
	}
}

func TestValidateSchema(t *testing.T) {
	records := []map[string]string{
		{"sku": "SKU-1", "name": "Widget", "price": "19.99", "color": "red"},
		{"sku": "SKU-2", "name": "Gadget", "price": "4.50", "color": "blue"},
	}

	results := ValidateSchema(records, nil)
	require.Len(t, results, 4)

	byField := make(map[string]models.SchemaValidationResult)
	for _, r := range results {
		byField[r.FieldName] = r
	}

	assert.True(t, byField["sku"].Valid)
	assert.Equal(t, "string", byField["sku"].ActualType)

	// Quoted numerics satisfy a number field.
	price := byField["price"]
	assert.True(t, price.Valid)
	assert.Equal(t, "number", price.ExpectedType)
	assert.Equal(t, "number", price.ActualType)

	// A field outside the schema is flagged, not dropped.
	color := byField["color"]
	assert.False(t, color.Valid)
	assert.Equal(t, "unknown", color.ExpectedType)
	assert.Equal(t, "Field not in expected schema", color.Notes)
}

func TestValidateSchema_TypeMismatch(t *testing.T) {
	records := []map[string]string{{"price": "call for pricing"}}

	results := ValidateSchema(records, nil)
	require.Len(t, results, 1)

	assert.False(t, results[0].Valid)
	assert.Equal(t, "Expected number, but found string", results[0].Notes)
	assert.Equal(t, "call for pricing", results[0].SampleValue)
}

func TestValidateSchema_Empty(t *testing.T) {
	assert.Nil(t, ValidateSchema(nil, nil))
}

func TestSuggestMapping(t *testing.T) {
	records := []map[string]string{
		{"sku": "SKU-1", "name": "Widget", "qty": "5"},
	}

	templates := []models.MappingTemplate{
		{
			ID:   "tpl-exact",
			Name: "Exact",
			Mappings: []models.FieldMapping{
				{SourceField: "sku", DestinationField: "sku"},
				{SourceField: "name", DestinationField: "name"},
				{SourceField: "qty", DestinationField: "inventory"},
			},
		},
		{
			ID:   "tpl-weak",
			Name: "Weak",
			Mappings: []models.FieldMapping{
				{SourceField: "article_number", DestinationField: "sku"},
			},
		},
	}

	suggestion, confidence := SuggestMapping(records, templates)
	require.NotNil(t, suggestion)

	assert.Equal(t, "tpl-exact", suggestion.TemplateID)
	assert.Equal(t, 3, suggestion.ExactMatches)
	assert.Equal(t, "inventory", suggestion.FieldMappings["qty"])
	assert.Greater(t, confidence, 0.7)
}

func TestSuggestMapping_VariationMatch(t *testing.T) {
	// The feed ships "stock_level"; the template is keyed on "qty". Both
	// are inventory variations, so the mapping still binds.
	records := []map[string]string{
		{"stock_level": "12"},
	}
	templates := []models.MappingTemplate{
		{
			ID:   "tpl-qty",
			Name: "Qty",
			Mappings: []models.FieldMapping{
				{SourceField: "qty", DestinationField: "inventory"},
			},
		},
	}

	suggestion, confidence := SuggestMapping(records, templates)
	require.NotNil(t, suggestion)

	assert.Equal(t, 0, suggestion.ExactMatches)
	assert.Equal(t, "inventory", suggestion.FieldMappings["stock_level"])
	assert.Greater(t, confidence, 0.0)
	assert.Less(t, confidence, 0.7)
}

func TestSuggestMapping_NoInput(t *testing.T) {
	suggestion, confidence := SuggestMapping(nil, nil)
	assert.Nil(t, suggestion)
	assert.Zero(t, confidence)
}
