/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bracket

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProjectLabels(t *testing.T) {
	st := Draw(makeRoster(10), IdentityShuffler{})
	st.Stages[StageRound1][0].Winner = "A"

	stats := Project(makeRoster(10), st)

	cases := []struct {
		player  string
		status  string
		matches int
	}{
		{"A", StatusAdvancedQuarterfinal, 1},
		{"B", StatusMovedToRound2, 1},
		{"C", StatusNotStarted, 1},
		{"I", StatusRound1Bye, 0},
		{"J", StatusRound1Bye, 0},
	}
	for _, tc := range cases {
		t.Run(tc.player, func(t *testing.T) {
			ps := stats[tc.player]
			if ps.Status != tc.status || ps.Matches != tc.matches {
				t.Errorf("got status %q matches %d; want %q %d", ps.Status,
					ps.Matches, tc.status, tc.matches)
			}
		})
	}

	want := []MatchRecord{{Stage: StageRound1, Opponent: "B",
		Outcome: OutcomeWin}}
	if diff := cmp.Diff(want, stats["A"].History); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	if got := stats["B"].History[0].String(); got != "Round 1 vs A (loss)" {
		t.Errorf("record string %q", got)
	}
}

func TestProjectUndrawn(t *testing.T) {
	stats := Project([]string{"A", "B"}, State{})
	for name, ps := range stats {
		if ps.Status != StatusNotStarted || ps.Matches != 0 {
			t.Errorf("%v: unexpected stats %+v", name, ps)
		}
	}
}

func TestProjectIdempotent(t *testing.T) {
	tr := newDrawn(t, 12)
	decide(t, tr, StageRound1)
	if err := tr.StartRound2(); err != nil {
		t.Fatalf("StartRound2: %v", err)
	}
	decide(t, tr, StageRound2)

	first := Project(tr.roster, tr.state)
	second := Project(tr.roster, tr.state)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("projection not idempotent (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first, tr.stats); diff != "" {
		t.Errorf("tournament stats stale (-want +got):\n%s", diff)
	}
}
