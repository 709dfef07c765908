/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bracket

import (
	"fmt"
	"strings"
)

// Lifecycle labels. A player's label reflects the furthest stage they
// reached.
const (
	StatusNotStarted           = "Not started"
	StatusRound1               = "Round 1"
	StatusRound1Bye            = "Round 1 (BYE)"
	StatusMovedToRound2        = "Moved to Round 2"
	StatusRound2               = "Round 2"
	StatusRound2Bye            = "Round 2 (BYE in Round 1)"
	StatusEliminatedRound2     = "Eliminated in Round 2"
	StatusAdvancedQuarterfinal = "Advanced to Quarterfinals"
	StatusQuarterfinal         = "Quarterfinals"
	StatusEliminatedQuarter    = "Eliminated in Quarterfinals"
	StatusAdvancedSemifinal    = "Advanced to Semifinals"
	StatusSemifinal            = "Semifinals"
	StatusPlayingThird         = "Playing for 3rd Place"
	StatusAdvancedFinal        = "Advanced to Finals"
	StatusFinal                = "Finals"
	StatusChampion             = "Tournament Champion!"
	StatusRunnerUp             = "Tournament Runner-up"
	StatusThirdPlaceMatch      = "3rd Place Match"
	StatusThirdPlace           = "3rd Place Winner"
	StatusFourthPlace          = "4th Place"
)

type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

// MatchRecord is one decided match from a player's point of view.
type MatchRecord struct {
	Stage    Stage
	Opponent string
	Outcome  Outcome
}

func (r MatchRecord) String() string {
	return fmt.Sprintf("%v vs %v (%v)", r.Stage, r.Opponent, r.Outcome)
}

// PlayerStats is derived from a State by Project and never mutated on its
// own.
type PlayerStats struct {
	Wins    int
	Losses  int
	Matches int
	History []MatchRecord
	Status  string
}

// IsEliminated reports whether the player is out of the tournament.
func (p PlayerStats) IsEliminated() bool {
	return strings.Contains(p.Status, "Eliminated") ||
		p.Status == StatusFourthPlace
}

type stageLabels struct {
	playing, won, lost string
}

var labelsByStage = map[Stage]stageLabels{
	StageRound1:       {"", StatusAdvancedQuarterfinal, StatusMovedToRound2},
	StageRound2:       {"", StatusAdvancedQuarterfinal, StatusEliminatedRound2},
	StageQuarterfinal: {StatusQuarterfinal, StatusAdvancedSemifinal, StatusEliminatedQuarter},
	StageSemifinal:    {StatusSemifinal, StatusAdvancedFinal, StatusPlayingThird},
	StageFinal:        {StatusFinal, StatusChampion, StatusRunnerUp},
	StageThirdPlace:   {StatusThirdPlaceMatch, StatusThirdPlace, StatusFourthPlace},
}

// Project recomputes every player's statistics from scratch. Stages are
// processed in bracket order so later stages overwrite earlier labels.
func Project(roster []string, s State) map[string]*PlayerStats {
	stats := make(map[string]*PlayerStats, len(roster))
	get := func(name string) *PlayerStats {
		ps, ok := stats[name]
		if !ok {
			ps = &PlayerStats{Status: StatusNotStarted}
			stats[name] = ps
		}
		return ps
	}
	for _, name := range roster {
		get(name)
	}

	for _, stage := range Stages() {
		if stage == StageRound2 {
			// byes are labelled between Round 1 and Round 2
			markByes(s, get)
		}
		labels := labelsByStage[stage]
		for _, m := range s.Matches(stage) {
			if m.Walkover {
				ps := get(m.Winner)
				ps.Status = labels.won
				continue
			}
			p1, p2 := get(m.Players[0]), get(m.Players[1])
			if stage == StageRound2 {
				setRound2Status(s, m.Players[0], p1)
				setRound2Status(s, m.Players[1], p2)
			} else if labels.playing != "" {
				p1.Status = labels.playing
				p2.Status = labels.playing
			}
			p1.Matches++
			p2.Matches++

			if !m.HasWinner() {
				continue
			}
			loser := m.Loser()
			w, l := get(m.Winner), get(loser)
			w.Wins++
			l.Losses++
			w.Status = labels.won
			l.Status = labels.lost
			w.History = append(w.History, MatchRecord{Stage: stage,
				Opponent: loser, Outcome: OutcomeWin})
			l.History = append(l.History, MatchRecord{Stage: stage,
				Opponent: m.Winner, Outcome: OutcomeLoss})
		}
	}

	return stats
}

func markByes(s State, get func(string) *PlayerStats) {
	byes := s.Bye
	if s.Odd != "" {
		byes = append([]string{s.Odd}, byes...)
	}
	for _, name := range byes {
		ps := get(name)
		if ps.Status == "" || ps.Status == StatusNotStarted {
			ps.Status = StatusRound1Bye
		}
	}
}

func setRound2Status(s State, name string, ps *PlayerStats) {
	if ps.Status == StatusAdvancedQuarterfinal {
		return
	}
	if s.IsBye(name) {
		ps.Status = StatusRound2Bye
	} else {
		ps.Status = StatusRound2
	}
}
