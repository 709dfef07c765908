/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bracket

import (
	"slices"
)

// State is the complete bracket: every stage's matches plus the players
// who skip Round 1. It is the single source of truth for a tournament;
// player statistics are always derived from it.
type State struct {
	Drawn  bool               `json:"drawn"`
	Stages [NumStages][]Match `json:"stages"`
	Bye    []string           `json:"bye"`

	// Odd is the Round-1 participant left without a partner when an odd
	// number of players was drawn into Round 1. They enter Round 2 along
	// with the bye group.
	Odd     string `json:"odd,omitempty"`
	Reached Stage  `json:"reached"`
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	for i := range s.Stages {
		out.Stages[i] = slices.Clone(s.Stages[i])
	}
	out.Bye = slices.Clone(s.Bye)

	return out
}

// Equal reports whether two states describe the same bracket. Nil and
// empty slices compare equal.
func (s State) Equal(o State) bool {
	if s.Drawn != o.Drawn || s.Odd != o.Odd || s.Reached != o.Reached ||
		!slices.Equal(s.Bye, o.Bye) {
		return false
	}
	for i := range s.Stages {
		if !slices.Equal(s.Stages[i], o.Stages[i]) {
			return false
		}
	}
	return true
}

// Matches returns the matches of a stage. The slice must not be modified.
func (s State) Matches(stage Stage) []Match {
	if !stage.valid() {
		return nil
	}
	return s.Stages[stage]
}

// Started reports whether the stage has any matches.
func (s State) Started(stage Stage) bool {
	return len(s.Matches(stage)) > 0
}

// Winners returns the recorded winners of a stage in match order.
func (s State) Winners(stage Stage) []string {
	var out []string
	for _, m := range s.Matches(stage) {
		if m.HasWinner() {
			out = append(out, m.Winner)
		}
	}
	return out
}

// Losers returns the losers of a stage's decided matches in match order.
func (s State) Losers(stage Stage) []string {
	var out []string
	for _, m := range s.Matches(stage) {
		if l := m.Loser(); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// Complete reports whether every match of the stage has a winner.
func (s State) Complete(stage Stage) bool {
	return len(s.Winners(stage)) == len(s.Matches(stage))
}

// IsBye reports whether player skipped Round 1.
func (s State) IsBye(player string) bool {
	return player != "" && (player == s.Odd || slices.Contains(s.Bye, player))
}

// clear drops the matches of every stage that depends on stage.
func (s *State) clear(stage Stage) {
	for _, d := range dependants(stage) {
		s.Stages[d] = nil
	}
	s.updateReached()
}

func (s *State) updateReached() {
	s.Reached = StageRound1
	for _, st := range Stages() {
		if len(s.Stages[st]) > 0 && st > s.Reached {
			s.Reached = st
		}
	}
}
