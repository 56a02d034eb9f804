// Package fixtures writes the sample workbooks used to exercise spreadsheet
// comparison on the site.
//
// [Baseline] and [Variant] share their structure and differ in a handful of
// cells, so a comparison of the two has something to report.
package fixtures

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"
)

const (
	// BaselineFile is the file name of [Baseline].
	BaselineFile = "multi_sheet_test.xlsx"
	// VariantFile is the file name of [Variant].
	VariantFile = "multi_sheet_test_2.xlsx"
	// DefaultDir is where the workbooks are written unless told otherwise.
	DefaultDir = "examples"
)

// Sheet is a named table. The header becomes the first row.
type Sheet struct {
	Name   string
	Header []any
	Rows   [][]any
}

// Workbook is a set of sheets written to a single file.
type Workbook struct {
	File   string
	Sheets []Sheet
}

// Baseline returns the reference workbook.
func Baseline() Workbook {
	return Workbook{
		File: BaselineFile,
		Sheets: []Sheet{
			employees(
				[]any{1, "Alice", 25, "New York"},
				[]any{2, "Bob", 30, "London"},
				[]any{3, "Charlie", 35, "Paris"},
				[]any{4, "David", 40, "Tokyo"},
				[]any{5, "Eve", 45, "Sydney"},
			),
			products(
				[]any{"Laptop", 999.99, 50},
				[]any{"Mouse", 25.50, 200},
				[]any{"Keyboard", 75.00, 100},
				[]any{"Monitor", 299.99, 75},
				[]any{"Headphones", 150.00, 120},
			),
			sales(1000, 1500, 1200, 1800, 2000),
		},
	}
}

// Variant returns the workbook compared against [Baseline].
func Variant() Workbook {
	return Workbook{
		File: VariantFile,
		Sheets: []Sheet{
			employees(
				[]any{1, "Alice", 25, "New York"},
				[]any{2, "Bob", 30, "London"},
				[]any{3, "Charlie", 35, "Paris"},
				[]any{4, "David", 42, "Tokyo"},
				[]any{6, "Frank", 45, "Berlin"},
			),
			products(
				[]any{"Laptop", 999.99, 45},
				[]any{"Mouse", 25.50, 200},
				[]any{"Keyboard", 80.00, 95},
				[]any{"Monitor", 299.99, 75},
				[]any{"Speakers", 175.00, 130},
			),
			sales(1000, 1600, 1200, 1800, 2100),
		},
	}
}

// All returns every built-in workbook.
func All() []Workbook {
	return []Workbook{Baseline(), Variant()}
}

func employees(rows ...[]any) Sheet {
	return Sheet{
		Name:   "Employees",
		Header: []any{"ID", "Name", "Age", "City"},
		Rows:   rows,
	}
}

func products(rows ...[]any) Sheet {
	return Sheet{
		Name:   "Products",
		Header: []any{"Product", "Price", "Stock"},
		Rows:   rows,
	}
}

func sales(amounts ...int) Sheet {
	regions := []string{"North", "South", "East", "West", "Central"}
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	rows := make([][]any, 0, len(amounts))
	for i, amount := range amounts {
		rows = append(rows, []any{start.AddDate(0, 0, i), amount, regions[i%len(regions)]})
	}

	return Sheet{
		Name:   "Sales",
		Header: []any{"Date", "Sales", "Region"},
		Rows:   rows,
	}
}

// Write stores wb under dir and returns the file path. The directory is
// created if needed.
func Write(fsys afero.Fs, dir string, wb Workbook) (string, error) {
	if len(wb.Sheets) == 0 {
		return "", fmt.Errorf("workbook %s has no sheets", wb.File)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range wb.Sheets {
		if err := addSheet(f, i, s); err != nil {
			return "", fmt.Errorf("workbook %s: %w", wb.File, err)
		}
	}

	f.SetActiveSheet(0)

	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	path := filepath.Join(dir, wb.File)

	out, err := fsys.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	if err := f.Write(out); err != nil {
		_ = out.Close()

		return "", fmt.Errorf("write %s: %w", path, err)
	}

	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	return path, nil
}

func addSheet(f *excelize.File, index int, s Sheet) error {
	if index == 0 {
		// A new file starts with one default sheet; reuse it.
		if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	} else if _, err := f.NewSheet(s.Name); err != nil {
		return fmt.Errorf("add sheet %s: %w", s.Name, err)
	}

	for r, row := range append([][]any{s.Header}, s.Rows...) {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return fmt.Errorf("sheet %s: %w", s.Name, err)
		}

		if err := f.SetSheetRow(s.Name, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", s.Name, r+1, err)
		}
	}

	return nil
}
