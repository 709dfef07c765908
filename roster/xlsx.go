/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// FromXLSX reads names from the first sheet of a workbook. If the first
// row has a cell containing "name" that column is read and the header row
// skipped; otherwise every row of column A is a name.
func FromXLSX(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyRoster
	}

	col, start := 0, 0
	for idx, cell := range rows[0] {
		if strings.Contains(strings.ToLower(cell), "name") {
			col, start = idx, 1
			break
		}
	}

	var names []string
	for _, row := range rows[start:] {
		if col < len(row) {
			names = append(names, row[col])
		}
	}

	return clean(names)
}
