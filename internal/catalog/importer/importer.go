// Package importer ingests price sheets into the catalog.
//
// Column headings are matched case-insensitively against candidate sets so
// sheets from different suppliers load without manual renaming. The whole
// sheet is applied in one transaction; any bad row aborts the import.
package importer

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/radixtech/quotehub/internal/catalog/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	modelColumns       = []string{"Code", "Model", "SKU"}
	descriptionColumns = []string{"Device", "Description", "Item", "Item Name"}
	priceColumns       = []string{"Price", "Unit Price", "Cost", "Amount"}
	categoryColumns    = []string{"Category", "Cat"}
	stockColumns       = []string{"Stock", "Qty", "Quantity"}
)

var errNegativeStock = fmt.Errorf("stock cannot be negative")

// HeaderError reports which required columns could not be located.
type HeaderError struct {
	Found []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("sheet must have Model/Code, Description, and Price columns, found: %v", e.Found)
}

// RowError reports the first row that failed to parse.
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: bad %s value: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Stats counts the outcome of one import.
type Stats struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
}

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Importer struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) *Importer {
	return &Importer{
		db:   p.DB,
		log:  p.Log.Named("catalog.importer"),
		repo: p.Repo,
	}
}

// Import reads a workbook from r and upserts every row of its first sheet by
// model. Existing products keep their image; new products start Active.
func (i *Importer) Import(ctx context.Context, r io.Reader, storedName string) (*Stats, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &HeaderError{}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, &HeaderError{}
	}

	header := rows[0]
	modelCol := findColumn(header, modelColumns)
	descCol := findColumn(header, descriptionColumns)
	priceCol := findColumn(header, priceColumns)
	catCol := findColumn(header, categoryColumns)
	stockCol := findColumn(header, stockColumns)

	if modelCol < 0 || descCol < 0 || priceCol < 0 {
		return nil, &HeaderError{Found: header}
	}

	stats := &Stats{}
	err = i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for rowIdx, row := range rows[1:] {
			model := strings.TrimSpace(cell(row, modelCol))
			if model == "" {
				continue
			}

			price := decimal.Zero
			if raw := strings.TrimSpace(cell(row, priceCol)); raw != "" {
				price, err = decimal.NewFromString(raw)
				if err != nil {
					return &RowError{Row: rowIdx + 2, Column: "price", Err: err}
				}
			}

			stock := 0
			if stockCol >= 0 {
				if raw := strings.TrimSpace(cell(row, stockCol)); raw != "" {
					stock, err = parseStock(raw)
					if err != nil {
						return &RowError{Row: rowIdx + 2, Column: "stock", Err: err}
					}
					if stock < 0 {
						return &RowError{Row: rowIdx + 2, Column: "stock", Err: errNegativeStock}
					}
				}
			}

			category := domain.DefaultCategory
			if catCol >= 0 {
				if raw := strings.TrimSpace(cell(row, catCol)); raw != "" {
					category = raw
				}
			}

			description := strings.TrimSpace(cell(row, descCol))
			if description == "" {
				description = model
			}

			existing, err := i.repo.FindByModel(ctx, tx, model)
			if err != nil {
				return err
			}
			if existing != nil {
				existing.Description = description
				existing.Category = category
				existing.Price = price
				existing.Stock = stock
				if err := i.repo.Update(ctx, tx, existing); err != nil {
					return err
				}
				stats.Updated++
				continue
			}

			if err := i.repo.Create(ctx, tx, &domain.Product{
				Model:       model,
				Description: description,
				Category:    category,
				Price:       price,
				Stock:       stock,
				Status:      domain.StatusActive,
			}); err != nil {
				return err
			}
			stats.Inserted++
		}

		return i.repo.RecordImport(ctx, tx, &domain.ImportRecord{Filename: storedName})
	})
	if err != nil {
		return nil, err
	}

	i.log.Info("price sheet imported",
		zap.String("file", storedName),
		zap.Int("inserted", stats.Inserted),
		zap.Int("updated", stats.Updated),
	)
	return stats, nil
}

func findColumn(header []string, candidates []string) int {
	for idx, h := range header {
		normalized := strings.ToLower(strings.TrimSpace(h))
		for _, cand := range candidates {
			if normalized == strings.ToLower(cand) {
				return idx
			}
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseStock accepts whole numbers and float-formatted cells ("4.0").
func parseStock(raw string) (int, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, err
	}
	return int(d.IntPart()), nil
}
