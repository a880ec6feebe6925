package tabular

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"github.com/dexhamter/tabload/pkg/tabload"
)

// typedCell classifies one workbook cell. Workbook formats carry value types,
// so numbers and booleans are preserved instead of flattening to text.
func typedCell(field string, nulls map[string]struct{}) tabload.Value {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" {
		return tabload.MissingValue()
	}
	if nulls != nil {
		if _, ok := nulls[field]; ok {
			return tabload.MissingValue()
		}
	}

	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return tabload.Value{Kind: tabload.KindNumber, Str: field, Num: f}
	}

	switch trimmed {
	case "TRUE", "true", "True":
		return tabload.Value{Kind: tabload.KindBool, Str: field, Bool: true}
	case "FALSE", "false", "False":
		return tabload.Value{Kind: tabload.KindBool, Str: field, Bool: false}
	}

	return tabload.StringValue(field)
}

// sheetTable shapes raw sheet rows into a Table. The first row is the
// header; data rows are padded or truncated to the header width.
func sheetTable(name string, rows [][]string, nulls map[string]struct{}) tabload.Table {
	table := tabload.Table{Sheet: name}
	if len(rows) == 0 {
		return table
	}

	table.Columns = rows[0]
	width := len(table.Columns)
	table.Rows = make([][]tabload.Value, 0, len(rows)-1)
	for _, record := range rows[1:] {
		row := make([]tabload.Value, width)
		for i := 0; i < width; i++ {
			if i < len(record) {
				row[i] = typedCell(record[i], nulls)
			} else {
				row[i] = tabload.MissingValue()
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// parseXLSX extracts every worksheet of an Office Open XML workbook, in
// workbook order. A sheet whose rows cannot be read is recorded as skipped
// and never aborts the rest of the workbook.
func parseXLSX(r io.Reader, opts tabload.CSVOptions) ([]tabload.Table, []tabload.SkippedSheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	nulls := nullSet(opts)

	var tables []tabload.Table
	var skipped []tabload.SkippedSheet
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			skipped = append(skipped, tabload.SkippedSheet{Name: sheet, Reason: err.Error()})
			continue
		}
		tables = append(tables, sheetTable(sheet, rows, nulls))
	}

	return tables, skipped, nil
}

// parseXLS extracts every worksheet of a legacy BIFF workbook. The BIFF
// parser is unforgiving with damaged sheets, so extraction runs behind a
// recover and a broken sheet degrades to a skip.
func parseXLS(r io.ReadSeeker, opts tabload.CSVOptions) ([]tabload.Table, []tabload.SkippedSheet, error) {
	wb, err := xls.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	nulls := nullSet(opts)

	var tables []tabload.Table
	var skipped []tabload.SkippedSheet
	for i := 0; i < wb.GetNumberSheets(); i++ {
		name, rows, err := xlsSheetRows(&wb, i)
		if err != nil {
			if name == "" {
				name = fmt.Sprintf("sheet %d", i+1)
			}
			skipped = append(skipped, tabload.SkippedSheet{Name: name, Reason: err.Error()})
			continue
		}
		tables = append(tables, sheetTable(name, rows, nulls))
	}

	return tables, skipped, nil
}

// xlsSheetRows pulls all cell text from one BIFF sheet.
func xlsSheetRows(wb *xls.Workbook, index int) (name string, rows [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sheet extraction panicked: %v", r)
		}
	}()

	sheet, err := wb.GetSheet(index)
	if err != nil {
		return "", nil, err
	}
	name = sheet.GetName()

	for i := 0; i < sheet.GetNumberRows(); i++ {
		row, err := sheet.GetRow(i)
		if err != nil {
			return name, nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		var record []string
		for _, cell := range row.GetCols() {
			record = append(record, cell.GetString())
		}
		rows = append(rows, record)
	}

	return name, rows, nil
}
