package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes rows into the default sheet and returns the serialized
// workbook. The first row is expected to be the header.
func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()

	workbook := excelize.NewFile()
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, workbook.SetSheetRow(sheet, cell, &row))
	}

	buf, err := workbook.WriteToBuffer()
	require.NoError(t, err)

	return bytes.NewReader(buf.Bytes())
}

var sheetHeader = []interface{}{"name", "description", "price", "sku", "barcode", "category_id", "brand_id", "stock"}

func TestParseProducts(t *testing.T) {
	categoryID := uuid.New()
	brandID := uuid.New()

	reader := buildWorkbook(t, [][]interface{}{
		sheetHeader,
		{"Wireless Mouse", "2.4GHz optical mouse", "29.90", "SKU-MOUSE-01", "890123456789", categoryID.String(), brandID.String(), "25"},
		{"USB-C Cable", "", "9.50", "SKU-CABLE-01", "", categoryID.String(), "", ""},
	})

	inputs, err := ParseProducts(reader)
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	first := inputs[0]
	assert.Equal(t, "Wireless Mouse", first.Name)
	assert.Equal(t, 29.90, first.Price)
	assert.Equal(t, "SKU-MOUSE-01", first.SKU)
	assert.Equal(t, categoryID, first.CategoryID)
	require.NotNil(t, first.BrandID)
	assert.Equal(t, brandID, *first.BrandID)
	assert.Equal(t, 25, first.InitialStock)
	assert.True(t, first.IsActive)

	second := inputs[1]
	assert.Nil(t, second.BrandID)
	assert.Zero(t, second.InitialStock)
}

func TestParseProducts_RowErrorsCarryRowNumber(t *testing.T) {
	categoryID := uuid.New().String()

	cases := []struct {
		name string
		row  []interface{}
		want string
	}{
		{"missing name", []interface{}{"", "", "10", "SKU-1", "", categoryID, "", ""}, "name is required"},
		{"missing sku", []interface{}{"Cable", "", "10", "", "", categoryID, "", ""}, "sku is required"},
		{"bad price", []interface{}{"Cable", "", "-5", "SKU-1", "", categoryID, "", ""}, "price must be a non-negative number"},
		{"bad category", []interface{}{"Cable", "", "10", "SKU-1", "", "not-a-uuid", "", ""}, "category id must be a uuid"},
		{"bad stock", []interface{}{"Cable", "", "10", "SKU-1", "", categoryID, "", "lots"}, "stock must be a non-negative integer"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reader := buildWorkbook(t, [][]interface{}{sheetHeader, tc.row})

			inputs, err := ParseProducts(reader)
			require.Error(t, err)
			assert.Nil(t, inputs)
			assert.Contains(t, err.Error(), tc.want)
			assert.Contains(t, err.Error(), "row 2")
		})
	}
}

func TestParseProducts_HeaderOnly(t *testing.T) {
	reader := buildWorkbook(t, [][]interface{}{sheetHeader})

	inputs, err := ParseProducts(reader)
	require.Error(t, err)
	assert.Nil(t, inputs)
}

func TestParseProducts_NotAWorkbook(t *testing.T) {
	inputs, err := ParseProducts(bytes.NewReader([]byte("name,price\ncable,10")))
	require.Error(t, err)
	assert.Nil(t, inputs)
}
