/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mikeb26/pingpong-tdbot/bracket"
)

var (
	rosterHeader    = []string{"Player Name", "Wins", "Losses", "Matches", "Current Status", "Match History"}
	standingsHeader = []string{"Rank", "Player Name", "Result"}
	podiumResults   = []string{"Champion", "Runner-up", "Third Place", "Fourth Place"}
)

// historySep joins match history entries. roster rejects names containing
// ';' so the column splits back unambiguously.
const historySep = "; "

// PlayerRow is one line of the roster export.
type PlayerRow struct {
	Name    string
	Wins    int
	Losses  int
	Matches int
	Status  string
	History []string
}

// StandingsRow is one line of the final standings export.
type StandingsRow struct {
	Rank   int
	Name   string
	Result string
}

// quote always wraps s in double quotes, doubling any embedded ones.
// encoding/csv only quotes when it has to, so rows are written by hand.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// PlayerRows returns the roster export rows in the tournament's current
// sort order.
func PlayerRows(t *bracket.Tournament) []PlayerRow {
	var rows []PlayerRow
	for _, name := range t.Sorted() {
		ps, err := t.Stats(name)
		if err != nil {
			continue
		}
		row := PlayerRow{
			Name:    name,
			Wins:    ps.Wins,
			Losses:  ps.Losses,
			Matches: ps.Matches,
			Status:  ps.Status,
		}
		for _, rec := range ps.History {
			row.History = append(row.History, rec.String())
		}
		rows = append(rows, row)
	}

	return rows
}

// StandingsRows returns the final standings: the podium followed by every
// other player in the current sort order with their lifecycle label.
func StandingsRows(t *bracket.Tournament) ([]StandingsRow, error) {
	st, err := t.Standings()
	if err != nil {
		return nil, err
	}

	podium := st.Places()
	rows := make([]StandingsRow, 0, len(t.Roster()))
	for idx, name := range podium {
		rows = append(rows, StandingsRow{Rank: idx + 1, Name: name,
			Result: podiumResults[idx]})
	}
	rank := len(podium) + 1
	for _, name := range t.Sorted() {
		if name == st.Champion || name == st.RunnerUp || name == st.Third ||
			name == st.Fourth {
			continue
		}
		ps, _ := t.Stats(name)
		rows = append(rows, StandingsRow{Rank: rank, Name: name,
			Result: ps.Status})
		rank++
	}

	return rows, nil
}

// WriteRosterCSV writes every player's statistics and match history.
func WriteRosterCSV(w io.Writer, t *bracket.Tournament) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(rosterHeader, ",") + "\n")
	for _, row := range PlayerRows(t) {
		fmt.Fprintf(bw, "%s,%d,%d,%d,%s,%s\n", quote(row.Name), row.Wins,
			row.Losses, row.Matches, quote(row.Status),
			quote(strings.Join(row.History, historySep)))
	}

	return bw.Flush()
}

// WriteFinalStandingsCSV writes the final standings. Nothing is written
// unless the tournament is complete.
func WriteFinalStandingsCSV(w io.Writer, t *bracket.Tournament) error {
	rows, err := StandingsRows(t)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(standingsHeader, ",") + "\n")
	for _, row := range rows {
		result := row.Result
		if row.Rank > len(podiumResults) {
			result = quote(result)
		}
		fmt.Fprintf(bw, "%d,%s,%s\n", row.Rank, quote(row.Name), result)
	}

	return bw.Flush()
}

// ReadRosterCSV parses a file written by WriteRosterCSV.
func ReadRosterCSV(r io.Reader) ([]PlayerRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(rosterHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read CSV header: %w", err)
	}
	if strings.Join(header, ",") != strings.Join(rosterHeader, ",") {
		return nil, fmt.Errorf("unexpected CSV header %q", header)
	}

	var rows []PlayerRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read CSV row: %w", err)
		}

		row := PlayerRow{Name: rec[0], Status: rec[4]}
		for i, dst := range []*int{&row.Wins, &row.Losses, &row.Matches} {
			*dst, err = strconv.Atoi(rec[i+1])
			if err != nil {
				return nil, fmt.Errorf("invalid %v for %q: %w",
					rosterHeader[i+1], rec[0], err)
			}
		}
		if rec[5] != "" {
			row.History = strings.Split(rec[5], historySep)
		}
		rows = append(rows, row)
	}

	return rows, nil
}
