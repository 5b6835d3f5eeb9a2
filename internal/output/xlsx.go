// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/socctl/socctl/internal/log"
)

// WriteXLSX writes a header row plus data rows to a single-sheet workbook at
// path. An existing file at path is deleted first so the export is always a
// fresh document.
func WriteXLSX(path string, headers []string, rows [][]interface{}) error {
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete existing file %s: %w", path, err)
		}
		log.Debugf("deleted existing file: %s", path)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("failed to close workbook")
		}
	}()

	sheet := f.GetSheetName(0)

	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}

	log.Debugf("workbook written: path=%s rows=%d", path, len(rows))

	return nil
}
