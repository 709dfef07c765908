/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package export

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mikeb26/pingpong-tdbot/bracket"
	"github.com/xuri/excelize/v2"
)

// playAll runs a tournament to completion with an identity draw and the
// first listed player winning every match.
func playAll(t *testing.T, names []string) *bracket.Tournament {
	t.Helper()
	tr := bracket.NewTournament("export", 0)
	if err := tr.SetRoster(names); err != nil {
		t.Fatalf("SetRoster: %v", err)
	}
	if err := tr.Draw(bracket.IdentityShuffler{}); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	decide := func(stage bracket.Stage) {
		st := tr.State()
		for idx, m := range st.Matches(stage) {
			if m.HasWinner() {
				continue
			}
			if err := tr.RecordWinner(stage, idx, m.Players[0]); err != nil {
				t.Fatalf("RecordWinner(%v, %d): %v", stage, idx, err)
			}
		}
	}
	steps := []struct {
		stage bracket.Stage
		start func() error
	}{
		{bracket.StageRound2, tr.StartRound2},
		{bracket.StageQuarterfinal, tr.StartQuarterfinals},
		{bracket.StageSemifinal, tr.StartSemifinals},
		{bracket.StageFinal, tr.StartFinals},
	}
	decide(bracket.StageRound1)
	for _, s := range steps {
		if err := s.start(); err != nil {
			t.Fatalf("start %v: %v", s.stage, err)
		}
		decide(s.stage)
	}
	st := tr.State()
	third := st.Matches(bracket.StageThirdPlace)[0]
	if err := tr.RecordThirdPlaceWinner(third.Players[0]); err != nil {
		t.Fatalf("RecordThirdPlaceWinner: %v", err)
	}

	return tr
}

var twelve = []string{"Ann", "Ben", "Cy", "Di", "Ed", "Flo", "Gus", "Hal",
	"Ivy", "Jo", "Kit", "Lu"}

func TestWriteRosterCSV(t *testing.T) {
	tr := bracket.NewTournament("export", 0)
	if err := tr.SetRoster([]string{`Al "Ace" Lee`, "Bo"}); err != nil {
		t.Fatalf("SetRoster: %v", err)
	}
	if err := tr.Draw(bracket.IdentityShuffler{}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if err := tr.RecordWinner(bracket.StageRound1, 0, "Bo"); err != nil {
		t.Fatalf("RecordWinner: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteRosterCSV(&buf, tr); err != nil {
		t.Fatalf("WriteRosterCSV: %v", err)
	}
	want := "Player Name,Wins,Losses,Matches,Current Status,Match History\n" +
		`"Bo",1,0,1,"Advanced to Quarterfinals","Round 1 vs Al ""Ace"" Lee (win)"` + "\n" +
		`"Al ""Ace"" Lee",0,1,1,"Moved to Round 2","Round 1 vs Bo (loss)"` + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestRosterCSVRoundTrip(t *testing.T) {
	tr := playAll(t, twelve)
	tr.SetSortMode(bracket.SortName)

	var buf bytes.Buffer
	if err := WriteRosterCSV(&buf, tr); err != nil {
		t.Fatalf("WriteRosterCSV: %v", err)
	}
	got, err := ReadRosterCSV(&buf)
	if err != nil {
		t.Fatalf("ReadRosterCSV: %v", err)
	}
	if diff := cmp.Diff(PlayerRows(tr), got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if got[0].Name != "Ann" || len(got[0].History) != 4 {
		t.Errorf("unexpected first row %+v", got[0])
	}
}

func TestReadRosterCSVErrors(t *testing.T) {
	cases := map[string]string{
		"bad header": "Name,Wins\n",
		"bad count": "Player Name,Wins,Losses,Matches,Current Status,Match History\n" +
			`"A",x,0,0,"Not started",""` + "\n",
		"short row": "Player Name,Wins,Losses,Matches,Current Status,Match History\n" +
			`"A",0,0` + "\n",
		"empty": "",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadRosterCSV(strings.NewReader(in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWriteFinalStandingsCSV(t *testing.T) {
	tr := playAll(t, twelve)

	var buf bytes.Buffer
	if err := WriteFinalStandingsCSV(&buf, tr); err != nil {
		t.Fatalf("WriteFinalStandingsCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 1+len(twelve) {
		t.Fatalf("expected %d lines, got %d:\n%s", 1+len(twelve), len(lines),
			buf.String())
	}
	wantTop := []string{
		"Rank,Player Name,Result",
		`1,"Ann",Champion`,
		`2,"Ben",Runner-up`,
		`3,"Ed",Third Place`,
		`4,"Ivy",Fourth Place`,
		`5,"Cy","Eliminated in Quarterfinals"`,
	}
	if diff := cmp.Diff(wantTop, lines[:len(wantTop)]); diff != "" {
		t.Errorf("standings mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFinalStandingsIncomplete(t *testing.T) {
	tr := bracket.NewTournament("export", 0)
	if err := tr.SetRoster(twelve); err != nil {
		t.Fatalf("SetRoster: %v", err)
	}

	var buf bytes.Buffer
	err := WriteFinalStandingsCSV(&buf, tr)
	if !errors.Is(err, bracket.ErrNotComplete) {
		t.Errorf("expected ErrNotComplete, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("incomplete export wrote %q", buf.String())
	}
}

func TestFileName(t *testing.T) {
	date := time.Date(2026, 3, 7, 18, 30, 0, 0, time.UTC)
	cases := []struct {
		kind Kind
		want string
	}{
		{KindRoster, "ping_pong_tournament_2026-03-07.csv"},
		{KindFinalStandings, "ping_pong_final_standings_2026-03-07.csv"},
		{KindWorkbook, "ping_pong_tournament_2026-03-07.xlsx"},
	}
	for _, tc := range cases {
		if got := FileName(tc.kind, date); got != tc.want {
			t.Errorf("FileName(%v) = %q; want %q", tc.kind, got, tc.want)
		}
	}
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	date := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	tr := playAll(t, twelve)

	paths, err := WriteAll(context.Background(), dir, tr, date, true)
	if err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	want := []string{
		filepath.Join(dir, "ping_pong_tournament_2026-10-17.csv"),
		filepath.Join(dir, "ping_pong_final_standings_2026-10-17.csv"),
		filepath.Join(dir, "ping_pong_tournament_2026-10-17.xlsx"),
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
	for _, p := range paths {
		if st, err := os.Stat(p); err != nil || st.Size() == 0 {
			t.Errorf("%v: missing or empty (%v)", p, err)
		}
	}

	f, err := excelize.OpenFile(paths[2])
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()
	if diff := cmp.Diff([]string{PlayersSheet, StandingsSheet},
		f.GetSheetList()); diff != "" {
		t.Errorf("sheets mismatch (-want +got):\n%s", diff)
	}
	rows, err := f.GetRows(StandingsSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1+len(twelve) || rows[1][1] != "Ann" || rows[1][2] != "Champion" {
		t.Errorf("unexpected standings sheet: %v", rows)
	}
}

func TestWriteAllIncomplete(t *testing.T) {
	tr := bracket.NewTournament("export", 0)
	if err := tr.SetRoster(twelve); err != nil {
		t.Fatalf("SetRoster: %v", err)
	}

	paths, err := WriteAll(context.Background(), t.TempDir(), tr, time.Now(),
		false)
	if err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if len(paths) != 1 {
		t.Errorf("expected only the roster export, got %v", paths)
	}
}
