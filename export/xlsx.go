/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mikeb26/pingpong-tdbot/bracket"
	"github.com/xuri/excelize/v2"
)

const (
	PlayersSheet   = "Players"
	StandingsSheet = "Final Standings"
)

// WriteXLSX writes a workbook with the player sheet and, once the
// tournament is complete, a final standings sheet.
func WriteXLSX(w io.Writer, t *bracket.Tournament) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()),
		PlayersSheet); err != nil {
		return fmt.Errorf("unable to name sheet: %w", err)
	}

	rows := [][]interface{}{toCells(rosterHeader)}
	for _, row := range PlayerRows(t) {
		rows = append(rows, []interface{}{row.Name, row.Wins, row.Losses,
			row.Matches, row.Status, strings.Join(row.History, historySep)})
	}
	if err := setRows(f, PlayersSheet, rows); err != nil {
		return err
	}

	standings, err := StandingsRows(t)
	switch {
	case errors.Is(err, bracket.ErrNotComplete):
	case err != nil:
		return err
	default:
		if _, err := f.NewSheet(StandingsSheet); err != nil {
			return fmt.Errorf("unable to add sheet: %w", err)
		}
		rows = [][]interface{}{toCells(standingsHeader)}
		for _, row := range standings {
			rows = append(rows, []interface{}{row.Rank, row.Name, row.Result})
		}
		if err := setRows(f, StandingsSheet, rows); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("unable to write workbook: %w", err)
	}

	return nil
}

func toCells(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for idx := range rows {
		axis, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &rows[idx]); err != nil {
			return fmt.Errorf("unable to write %v row %d: %w", sheet, idx+1, err)
		}
	}
	return nil
}
