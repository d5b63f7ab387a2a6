// Package spreadsheet parses product bulk-import workbooks.
package spreadsheet

import (
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"storefront/internal/usecase"
)

// Column layout of a product import sheet. The first row is a header and is
// skipped.
const (
	colName = iota
	colDescription
	colPrice
	colSKU
	colBarcode
	colCategoryID
	colBrandID
	colStock
	columnCount
)

// ParseProducts reads the first sheet of an xlsx workbook into product
// creation inputs. Rows with an empty name or SKU are rejected; parse errors
// carry the 1-based row number.
func ParseProducts(r io.Reader) ([]usecase.CreateProductInput, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open workbook")
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(err, "failed to read sheet rows")
	}
	if len(rows) < 2 {
		return nil, errors.New("sheet has no data rows")
	}

	inputs := make([]usecase.CreateProductInput, 0, len(rows)-1)
	for i, row := range rows[1:] {
		input, err := parseProductRow(row)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i+2)
		}
		inputs = append(inputs, input)
	}

	return inputs, nil
}

func parseProductRow(row []string) (usecase.CreateProductInput, error) {
	cell := func(idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}

		return ""
	}

	input := usecase.CreateProductInput{
		Name:        cell(colName),
		Description: cell(colDescription),
		SKU:         cell(colSKU),
		Barcode:     cell(colBarcode),
		IsActive:    true,
	}
	if input.Name == "" {
		return input, errors.New("name is required")
	}
	if input.SKU == "" {
		return input, errors.New("sku is required")
	}

	price, err := strconv.ParseFloat(cell(colPrice), 64)
	if err != nil || price < 0 {
		return input, errors.New("price must be a non-negative number")
	}
	input.Price = price

	categoryID, err := uuid.Parse(cell(colCategoryID))
	if err != nil {
		return input, errors.New("category id must be a uuid")
	}
	input.CategoryID = categoryID

	if raw := cell(colBrandID); raw != "" {
		brandID, err := uuid.Parse(raw)
		if err != nil {
			return input, errors.New("brand id must be a uuid")
		}
		input.BrandID = &brandID
	}

	if raw := cell(colStock); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil || stock < 0 {
			return input, errors.New("stock must be a non-negative integer")
		}
		input.InitialStock = stock
	}

	return input, nil
}
