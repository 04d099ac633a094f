package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"dataprep/internal/models"
	"dataprep/internal/util"

	"github.com/xuri/excelize/v2"
)

const (
	DefaultOutputPath = "output/dataset.csv"
	xlsxSheet         = "dataset"
)

// WriteTable persists t at path, creating parent directories and replacing any
// existing file. The format follows the extension: .xlsx writes a workbook,
// anything else is UTF-8 CSV with a header row and no index column.
func WriteTable(path string, t models.Table) error {
	if strings.TrimSpace(path) == "" {
		path = DefaultOutputPath
	}
	write := writeCSV
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		write = writeXLSX
	}
	if err := util.WriteFileAtomic(path, func(w io.Writer) error { return write(w, t) }); err != nil {
		return fmt.Errorf("%w: %s: %v", util.ErrOutput, path, err)
	}
	return nil
}

func writeCSV(w io.Writer, t models.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

func writeXLSX(w io.Writer, t models.Table) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	rows := append([][]string{t.Columns}, t.Rows...)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i+1, err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
