package importer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nguyentranbao-ct/product-catalog/internal/catalogui"
	"github.com/nguyentranbao-ct/product-catalog/internal/models"
)

// ReadFile parses products from the first sheet of an Excel workbook.
func ReadFile(path string) ([]models.Product, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func Read(r io.Reader) ([]models.Product, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel reader: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func parse(f *excelize.File) ([]models.Product, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) == 0 {
		return []models.Product{}, nil
	}

	// without a name or price header the columns are name, price, category
	columns := map[string]int{models.AttrName: 0, models.AttrPrice: 1, models.AttrCategory: 2}
	start := 0
	if header := mapColumns(rows[0]); isHeader(header) {
		columns = header
		start = 1
	}

	products := make([]models.Product, 0, len(rows)-start)
	for _, row := range rows[start:] {
		p := models.Product{
			Name:     column(row, columns, models.AttrName),
			Price:    models.Price(column(row, columns, models.AttrPrice)),
			Category: column(row, columns, models.AttrCategory),
		}
		if p.Name == "" && p.Price == "" {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, ok := columns[name]; !ok {
			columns[name] = i
		}
	}
	return columns
}

func column(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok {
		return ""
	}
	return cell(row, idx)
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isHeader(columns map[string]int) bool {
	_, name := columns[models.AttrName]
	_, price := columns[models.AttrPrice]
	return name || price
}

// Import creates the products one request at a time through the model.
// It stops at the first failure and reports how many were created.
func Import(ctx context.Context, m *catalogui.Model, products []models.Product) (int, error) {
	created := 0
	for i, p := range products {
		m.CancelEdit()
		_ = m.SetInput(models.AttrName, p.Name)
		_ = m.SetInput(models.AttrPrice, p.Price.String())
		_ = m.SetInput(models.AttrCategory, p.Category)
		if err := m.CreateProduct(ctx); err != nil {
			return created, fmt.Errorf("row %d (%s): %w", i+1, p.Name, err)
		}
		created++
	}
	return created, nil
}
