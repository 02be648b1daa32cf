package supplier

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"catalog-sync/feature/supplier/models"
)

// DefaultProductSchema is the expected shape of incoming product feeds.
var DefaultProductSchema = map[string]string{
	"sku":         "string",
	"name":        "string",
	"description": "string",
	"price":       "number",
	"inventory":   "number",
	"category":    "string",
	"brand":       "string",
	"upc":         "string",
	"weight":      "number",
}

// commonFieldMappings groups the field-name variations suppliers actually
// ship, keyed by the canonical product field.
var commonFieldMappings = map[string][]string{
	"sku":       {"sku", "item_number", "product_id", "product_code", "item_code", "article_number", "part_number"},
	"name":      {"name", "product_name", "title", "item_name", "description", "product_title", "product_description"},
	"price":     {"price", "unit_price", "retail_price", "cost", "wholesale_price", "msrp", "list_price"},
	"inventory": {"inventory", "stock", "quantity", "qty", "on_hand", "available", "stock_level"},
	"category":  {"category", "department", "product_type", "product_category", "group", "product_group"},
	"brand":     {"brand", "manufacturer", "vendor", "supplier", "make", "producer"},
	"upc":       {"upc", "ean", "barcode", "gtin", "isbn"},
	"weight":    {"weight", "item_weight", "shipping_weight", "package_weight"},
}

var (
	numberPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	datePattern   = regexp.MustCompile(`^\d{1,4}[/-]\d{1,2}[/-]\d{1,4}|^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}`)
)

// DetectFieldType classifies a field from up to five sample values.
func DetectFieldType(sampleValues []string) string {
	if len(sampleValues) == 0 {
		return "unknown"
	}

	nonEmpty := make([]string, 0, 5)
	for _, v := range sampleValues {
		if strings.TrimSpace(v) == "" {
			continue
		}
		nonEmpty = append(nonEmpty, strings.TrimSpace(v))
		if len(nonEmpty) == 5 {
			break
		}
	}
	if len(nonEmpty) == 0 {
		return "null"
	}

	if allMatch(nonEmpty, func(v string) bool { return numberPattern.MatchString(v) }) {
		return "number"
	}
	if allMatch(nonEmpty, isBooleanWord) {
		return "boolean"
	}
	if allMatch(nonEmpty, func(v string) bool { return datePattern.MatchString(v) }) {
		return "date"
	}
	return "string"
}

func allMatch(values []string, pred func(string) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}
	return true
}

func isBooleanWord(v string) bool {
	switch strings.ToLower(v) {
	case "true", "false", "yes", "no", "0", "1":
		return true
	}
	return false
}

// ValidateSchema checks sample records against an expected schema and
// returns one result per field seen in the sample. A nil schema validates
// against DefaultProductSchema.
func ValidateSchema(records []map[string]string, expected map[string]string) []models.SchemaValidationResult {
	if len(records) == 0 {
		return nil
	}
	if expected == nil {
		expected = DefaultProductSchema
	}

	fieldNames := collectFieldNames(records)

	results := make([]models.SchemaValidationResult, 0, len(fieldNames))
	for _, field := range fieldNames {
		values := make([]string, 0, len(records))
		for _, rec := range records {
			if v, ok := rec[field]; ok {
				values = append(values, v)
			}
		}

		actual := DetectFieldType(values)
		expectedType, known := expected[field]
		if !known {
			expectedType = "unknown"
		}

		// Feeds routinely quote numeric columns; a string column whose
		// values all parse as numbers still satisfies a number field.
		valid := actual == expectedType
		if !valid && expectedType == "number" && actual == "string" {
			valid = allMatch(values, func(v string) bool {
				return v == "" || numberPattern.MatchString(strings.TrimSpace(v))
			})
		}

		result := models.SchemaValidationResult{
			FieldName:    field,
			ExpectedType: expectedType,
			ActualType:   actual,
			Valid:        valid,
		}
		if len(values) > 0 {
			result.SampleValue = values[0]
		}
		if !valid {
			if expectedType != "unknown" {
				result.Notes = fmt.Sprintf("Expected %s, but found %s", expectedType, actual)
			} else {
				result.Notes = "Field not in expected schema"
			}
		}
		results = append(results, result)
	}
	return results
}

// SuggestMapping picks the best-matching template for the sample records
// and returns it with a confidence score in [0,1]. Exact field-name matches
// carry 70% of the weight, variation matches the remaining 30%.
func SuggestMapping(records []map[string]string, templates []models.MappingTemplate) (*models.MappingSuggestion, float64) {
	if len(records) == 0 || len(templates) == 0 {
		return nil, 0
	}

	fieldNames := collectFieldNames(records)
	fieldSet := make(map[string]bool, len(fieldNames))
	for _, f := range fieldNames {
		fieldSet[f] = true
	}

	var best *models.MappingSuggestion
	bestScore := 0.0

	for _, tpl := range templates {
		if len(tpl.Mappings) == 0 {
			continue
		}

		templateFields := make(map[string]bool, len(tpl.Mappings))
		for _, m := range tpl.Mappings {
			if m.SourceField != "" {
				templateFields[m.SourceField] = true
			}
		}
		if len(templateFields) == 0 {
			continue
		}

		exactMatches := 0
		for f := range fieldSet {
			if templateFields[f] {
				exactMatches++
			}
		}

		fuzzyMatches := 0.0
		for f := range fieldSet {
			for _, variations := range commonFieldMappings {
				if !contains(variations, f) {
					continue
				}
				for _, variant := range variations {
					if templateFields[variant] {
						fuzzyMatches += 0.5
						break
					}
				}
			}
		}

		totalFields := len(fieldSet)
		if len(templateFields) > totalFields {
			totalFields = len(templateFields)
		}
		if totalFields == 0 {
			continue
		}

		score := 0.7*float64(exactMatches)/float64(totalFields) + 0.3*fuzzyMatches/float64(totalFields)
		if score <= bestScore {
			continue
		}
		bestScore = score

		suggestion := &models.MappingSuggestion{
			TemplateID:    tpl.ID,
			TemplateName:  tpl.Name,
			FieldMappings: make(map[string]string),
			ExactMatches:  exactMatches,
			TotalFields:   totalFields,
		}
		for _, m := range tpl.Mappings {
			if m.SourceField == "" || m.DestinationField == "" {
				continue
			}
			if fieldSet[m.SourceField] {
				suggestion.FieldMappings[m.SourceField] = m.DestinationField
				continue
			}
			// Map through the variation groups: a template keyed on "qty"
			// still binds a feed that ships "stock_level".
			for _, variations := range commonFieldMappings {
				if !contains(variations, m.SourceField) {
					continue
				}
				for _, f := range fieldNames {
					if contains(variations, f) {
						suggestion.FieldMappings[f] = m.DestinationField
						break
					}
				}
			}
		}
		best = suggestion
	}

	return best, bestScore
}

// collectFieldNames gathers the field names present in the first ten
// records, sorted for stable output.
func collectFieldNames(records []map[string]string) []string {
	seen := make(map[string]bool)
	var names []string
	limit := len(records)
	if limit > 10 {
		limit = 10
	}
	for _, rec := range records[:limit] {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}
	sort.Strings(names)
	return names
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
