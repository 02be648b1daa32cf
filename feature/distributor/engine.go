package distributor

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"catalog-sync/core/delim"
	catalog "catalog-sync/feature/catalog/models"
	"catalog-sync/feature/distributor/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// businessKeyColumns are the feed columns recognized as the business key, in
// preference order. Header casing is already normalized by the parser.
var businessKeyColumns = []string{"sku", "mfg_part_no", "part_number"}

// quantityPrefix marks per-location quantity columns (qtyfl, qtynj, ...).
const quantityPrefix = "qty"

// priceColumn is the feed column carrying the distributor cost.
const priceColumn = "price"

// ProductStore is the narrow slice of the local store the engine needs:
// a read snapshot plus targeted partial writes. The catalog repository
// implements it.
type ProductStore interface {
	FetchAll(ctx context.Context) ([]catalog.Product, error)
	UpdateByID(ctx context.Context, id string, fields map[string]any) error
}

// Engine matches distributor feed records against local products by business
// key and applies partial updates. It never creates products.
type Engine struct {
	store  ProductStore
	logger *zap.Logger
}

// NewEngine creates a reconciliation engine over the given store.
func NewEngine(store ProductStore, logger *zap.Logger) *Engine {
	return &Engine{store: store, logger: logger}
}

// Reconcile processes records in input order against the snapshot,
// accumulating into result. A failure on one record is recorded and the run
// continues; nothing here is fatal to the run.
func (e *Engine) Reconcile(ctx context.Context, records []delim.Record, snapshot []catalog.Product, result *models.SyncResult) *models.SyncResult {
	// Index the snapshot by business key. Keys are assumed unique;
	// last-write-wins if the snapshot carries duplicates.
	index := make(map[string]catalog.Product, len(snapshot))
	for _, p := range snapshot {
		index[strings.ToUpper(p.SKU)] = p
	}

	result.TotalRecords = len(records)

	for _, rec := range records {
		key := businessKey(rec)
		if key == "" {
			// No business key: not an error, not a success. Skip silently.
			continue
		}

		// Surface junk numeric values as record errors. The record is still
		// processed with zero defaults; the diagnostic is for the operator.
		for _, issue := range numericIssues(rec) {
			result.Errors = append(result.Errors, fmt.Sprintf("record %s: %s", key, issue))
			e.logger.Warn("record has invalid numeric field", zap.String("sku", key), zap.String("issue", issue))
		}

		if err := e.applyRecord(ctx, rec, key, index, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("record %s: %v", key, err))
			e.logger.Warn("record failed", zap.String("sku", key), zap.Error(err))
		}
	}

	result.Success = true
	return result
}

func (e *Engine) applyRecord(ctx context.Context, rec delim.Record, key string, index map[string]catalog.Product, result *models.SyncResult) error {
	cost := rec.Decimal(priceColumn)
	quantities := quantitiesByLocation(rec)

	product, found := index[strings.ToUpper(key)]
	if found {
		fields := map[string]any{
			"updated_at": time.Now(),
		}
		// A zero or unparsable cost never overwrites a known-good cost.
		if cost.IsPositive() {
			fields["cost"] = cost
		}

		if err := e.store.UpdateByID(ctx, product.ID, fields); err != nil {
			return err
		}
		result.UpdatedProducts++
		return nil
	}

	total := 0
	for _, q := range quantities {
		total += q
	}
	if total > 0 {
		// Unknown SKU with stock: counted and logged for the approval
		// workflow, never created here.
		result.NewProducts++
		e.logger.Info("unknown sku with stock in feed",
			zap.String("sku", key),
			zap.Int("quantity", total),
		)
	}
	return nil
}

// businessKey extracts the record's business key, or "" when absent.
func businessKey(rec delim.Record) string {
	for _, col := range businessKeyColumns {
		if v, ok := rec.Get(col); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// numericIssues reports qty and price values that are present but not valid
// non-negative numbers. Processing continues with zero defaults either way.
func numericIssues(rec delim.Record) []string {
	var issues []string
	for _, field := range rec.Fields() {
		isQty := strings.HasPrefix(field, quantityPrefix)
		if !isQty && field != priceColumn {
			continue
		}

		raw, _ := rec.Get(field)
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		if isQty {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				issues = append(issues, fmt.Sprintf("invalid quantity %q in %s", raw, field))
			}
			continue
		}

		d, err := decimal.NewFromString(raw)
		if err != nil || d.IsNegative() {
			issues = append(issues, fmt.Sprintf("invalid price %q", raw))
		}
	}
	sort.Strings(issues)
	return issues
}

// quantitiesByLocation collects every qty-prefixed column as a per-location
// quantity. Invalid values decode to 0.
func quantitiesByLocation(rec delim.Record) map[string]int {
	quantities := make(map[string]int)
	for _, field := range rec.Fields() {
		if !strings.HasPrefix(field, quantityPrefix) {
			continue
		}
		location := strings.TrimPrefix(field, quantityPrefix)
		if location == "" {
			location = "default"
		}
		quantities[location] = rec.Int(field)
	}
	return quantities
}
