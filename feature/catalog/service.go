package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path"
	"strings"
	"time"

	"catalog-sync/core/delim"
	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog/models"

	"github.com/minio/minio-go/v7"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// exportColumns is the column order for both CSV and XLSX exports.
var exportColumns = []string{"sku", "name", "description", "category", "brand", "upc", "cost", "price", "stock_quantity"}

// Export is a rendered export artifact.
type Export struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Service mediates between the HTTP handler and the repository, and owns
// the import/export encode/decode logic.
type Service struct {
	repo    *Repository
	store   storage.Client
	bucket  string
	logger  *zap.Logger
	exports singleflight.Group
}

// NewService creates a catalog service. store may be nil, in which case
// import uploads are not archived.
func NewService(repo *Repository, store storage.Client, bucket string, log *zap.Logger) *Service {
	return &Service{repo: repo, store: store, bucket: bucket, logger: log}
}

// Repo exposes the repository so other features can use it as a product
// store.
func (s *Service) Repo() *Repository { return s.repo }

// Export renders the full catalog as CSV or XLSX. Concurrent requests for
// the same format share one build.
func (s *Service) Export(ctx context.Context, format string) (*Export, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		return nil, fmt.Errorf("unsupported export format %q", format)
	}

	v, err, _ := s.exports.Do(format, func() (any, error) {
		products, err := s.repo.FetchAll(ctx)
		if err != nil {
			return nil, err
		}
		if format == "xlsx" {
			return s.buildXLSX(products)
		}
		return s.buildCSV(products)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Export), nil
}

func (s *Service) buildCSV(products []models.Product) (*Export, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportColumns); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}
	for _, p := range products {
		if err := w.Write(exportRow(p)); err != nil {
			return nil, fmt.Errorf("failed to write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to render csv: %w", err)
	}
	return &Export{
		FileName:    fmt.Sprintf("products-%s.csv", time.Now().Format("20060102-150405")),
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

func (s *Service) buildXLSX(products []models.Product) (*Export, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Products"
	f.SetSheetName(f.GetSheetName(0), sheet)

	header := make([]any, len(exportColumns))
	for i, col := range exportColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, p := range products {
		row := exportRow(p)
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return &Export{
		FileName:    fmt.Sprintf("products-%s.xlsx", time.Now().Format("20060102-150405")),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

func exportRow(p models.Product) []string {
	return []string{
		p.SKU,
		p.Name,
		p.Description,
		p.Category,
		p.Brand,
		p.UPC,
		p.Cost.StringFixed(2),
		p.Price.StringFixed(2),
		fmt.Sprintf("%d", p.StockQuantity),
	}
}

// Import decodes an uploaded CSV or XLSX file and upserts products by SKU.
// Row failures are recorded in the report and do not abort the run. The
// raw upload is archived to object storage when a store is configured.
func (s *Service) Import(ctx context.Context, fileName string, data []byte) (*models.ImportReport, error) {
	records, err := s.decode(fileName, data)
	if err != nil {
		return nil, err
	}

	report := &models.ImportReport{Errors: []string{}}
	report.TotalRows = len(records)

	for i, rec := range records {
		if err := s.applyRow(ctx, rec, report); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", i+2, err))
		}
	}

	if s.store != nil {
		object := fmt.Sprintf("imports/%s-%s", time.Now().Format("20060102-150405"), path.Base(fileName))
		_, err := s.store.PutObject(ctx, s.bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
		if err != nil {
			// Archiving is best effort; the rows are already applied.
			s.logger.Warn("Failed to archive import upload", zap.String("object", object), zap.Error(err))
		} else {
			report.ArchiveObject = object
		}
	}

	s.logger.Info("Product import finished",
		zap.Int("total_rows", report.TotalRows),
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("errors", len(report.Errors)))
	return report, nil
}

func (s *Service) decode(fileName string, data []byte) ([]delim.Record, error) {
	if strings.EqualFold(path.Ext(fileName), ".xlsx") {
		return decodeXLSX(data)
	}
	records, err := delim.Parse(bytes.NewReader(data), ',')
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv upload: %w", err)
	}
	return records, nil
}

func decodeXLSX(data []byte) ([]delim.Record, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	records := make([]delim.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(delim.Record, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(row) {
				rec[h] = strings.TrimSpace(row[i])
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *Service) applyRow(ctx context.Context, rec delim.Record, report *models.ImportReport) error {
	rawSKU, _ := rec.Get("sku")
	sku := strings.TrimSpace(rawSKU)
	if sku == "" {
		return fmt.Errorf("missing sku")
	}

	existing, err := s.repo.GetBySKU(ctx, sku)
	if err != nil && err != ErrNotFound {
		return err
	}

	if existing == nil {
		product := &models.Product{
			SKU:           sku,
			Cost:          rec.Decimal("cost"),
			Price:         rec.Decimal("price"),
			StockQuantity: rec.Int("stock_quantity"),
		}
		product.Name, _ = rec.Get("name")
		product.Description, _ = rec.Get("description")
		product.Category, _ = rec.Get("category")
		product.Brand, _ = rec.Get("brand")
		product.UPC, _ = rec.Get("upc")
		if err := s.repo.Create(ctx, product); err != nil {
			return err
		}
		report.Created++
		return nil
	}

	fields := map[string]any{"updated_at": time.Now()}
	setIfPresent(rec, fields, "name")
	setIfPresent(rec, fields, "description")
	setIfPresent(rec, fields, "category")
	setIfPresent(rec, fields, "brand")
	setIfPresent(rec, fields, "upc")
	if _, ok := rec.Get("cost"); ok {
		if cost := rec.Decimal("cost"); cost.IsPositive() {
			fields["cost"] = cost
		}
	}
	if _, ok := rec.Get("price"); ok {
		fields["price"] = rec.Decimal("price")
	}
	if _, ok := rec.Get("stock_quantity"); ok {
		fields["stock_quantity"] = rec.Int("stock_quantity")
	}
	if err := s.repo.Update(ctx, existing.ID, fields); err != nil {
		return err
	}
	report.Updated++
	return nil
}

func setIfPresent(rec delim.Record, fields map[string]any, column string) {
	if v, ok := rec.Get(column); ok && v != "" {
		fields[column] = v
	}
}
