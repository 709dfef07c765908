/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bracket

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildBracketOutput(t *testing.T) {
	tr := NewTournament("test", 0)
	if err := tr.SetRoster(makeRoster(9)); err != nil {
		t.Fatalf("SetRoster: %v", err)
	}
	if out := BuildBracketOutput(tr); !strings.Contains(out, "not been drawn") {
		t.Errorf("unexpected output before draw:\n%s", out)
	}

	if err := tr.Draw(IdentityShuffler{}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	decide(t, tr, StageRound1)
	out := BuildBracketOutput(tr)
	for _, want := range []string{"Round 1\n", "Player 1", "BYE into Round 2: I",
		"Ready to start Round 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if err := tr.StartRound2(); err != nil {
		t.Fatalf("StartRound2: %v", err)
	}
	out = BuildBracketOutput(tr)
	if !strings.Contains(out, "Round 2\n") || !strings.Contains(out, "BYE") {
		t.Errorf("round 2 missing from output:\n%s", out)
	}
}

func TestBuildStandingsOutput(t *testing.T) {
	tr := newDrawn(t, 4)
	decide(t, tr, StageRound1)

	out := BuildStandingsOutput(tr)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2+1+4 {
		t.Fatalf("expected 7 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[3], "1.") || !strings.Contains(lines[3], "A") {
		t.Errorf("unexpected first row %q", lines[3])
	}
	if strings.Contains(out, "Final Standings") {
		t.Error("incomplete tournament printed final standings")
	}
}

func TestBuildPlayerOutput(t *testing.T) {
	tr := newDrawn(t, 4)
	decide(t, tr, StageRound1)

	out, err := BuildPlayerOutput(tr, "B")
	if err != nil {
		t.Fatalf("BuildPlayerOutput: %v", err)
	}
	for _, want := range []string{"B (Active)", "Losses: 1",
		"Round 1 vs A (loss)", StatusMovedToRound2} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if _, err := BuildPlayerOutput(tr, "Z"); !errors.Is(err, ErrUnknownPlayer) {
		t.Errorf("expected ErrUnknownPlayer, got %v", err)
	}
}
