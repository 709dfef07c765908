/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bracket

import (
	"fmt"
)

// The functions below mutate a working copy of the state. On error the
// copy is discarded by the caller, so partial writes never escape.

func recordWinner(s *State, stage Stage, idx int, player string) error {
	if !s.Drawn {
		return ErrNotDrawn
	}
	if !stage.valid() {
		return fmt.Errorf("%w: invalid stage %d", ErrNoSuchMatch, stage)
	}
	matches := s.Stages[stage]
	if len(matches) == 0 {
		return fmt.Errorf("%w: %v", ErrStageNotStarted, stage)
	}
	if idx < 0 || idx >= len(matches) {
		return fmt.Errorf("%w: %v has no match %d", ErrNoSuchMatch, stage,
			idx+1)
	}
	m := &matches[idx]
	if m.Walkover {
		return fmt.Errorf("%w: %v advances without playing", ErrWalkover,
			m.Winner)
	}
	if !m.Has(player) {
		return fmt.Errorf("%w: %q is not playing %v match %d", ErrNotInMatch,
			player, stage, idx+1)
	}

	if m.Winner == player {
		m.Winner = ""
	} else {
		m.Winner = player
	}
	s.clear(stage)

	return nil
}

func recordThirdPlaceWinner(s *State, player string) error {
	if !s.Drawn {
		return ErrNotDrawn
	}
	matches := s.Stages[StageThirdPlace]
	if len(matches) == 0 {
		return fmt.Errorf("%w: %v", ErrStageNotStarted, StageThirdPlace)
	}
	if !matches[0].Has(player) {
		return fmt.Errorf("%w: %q is not playing the %v", ErrNotInMatch,
			player, StageThirdPlace)
	}
	matches[0].Winner = player

	return nil
}

func startRound2(s *State) error {
	if !s.Drawn {
		return ErrNotDrawn
	}
	round1 := s.Stages[StageRound1]
	if !s.Complete(StageRound1) {
		return &CountError{Stage: StageRound2, Want: len(round1),
			Got: len(s.Winners(StageRound1))}
	}

	participants := s.Losers(StageRound1)
	if s.Odd != "" {
		participants = append(participants, s.Odd)
	}
	participants = append(participants, s.Bye...)

	pairs, leftover := pairPlayers(participants)
	if leftover != "" {
		pairs = append(pairs, newWalkover(leftover))
	}
	s.Stages[StageRound2] = pairs
	s.clear(StageRound2)

	return nil
}

func startQuarterfinals(s *State) error {
	if !s.Drawn {
		return ErrNotDrawn
	}
	advancers := append(s.Winners(StageRound1), s.Winners(StageRound2)...)
	if len(advancers) != 8 {
		return &CountError{Stage: StageQuarterfinal, Want: 8,
			Got: len(advancers)}
	}

	s.Stages[StageQuarterfinal], _ = pairPlayers(advancers)
	s.clear(StageQuarterfinal)

	return nil
}

func startSemifinals(s *State) error {
	if !s.Drawn {
		return ErrNotDrawn
	}
	winners := s.Winners(StageQuarterfinal)
	if len(winners) != 4 {
		return &CountError{Stage: StageSemifinal, Want: 4, Got: len(winners)}
	}

	s.Stages[StageSemifinal], _ = pairPlayers(winners)
	s.clear(StageSemifinal)

	return nil
}

func startFinals(s *State) error {
	if !s.Drawn {
		return ErrNotDrawn
	}
	winners := s.Winners(StageSemifinal)
	if len(winners) != 2 {
		return &CountError{Stage: StageFinal, Want: 2, Got: len(winners)}
	}
	losers := s.Losers(StageSemifinal)

	s.Stages[StageFinal] = []Match{newMatch(winners[0], winners[1])}
	s.Stages[StageThirdPlace] = []Match{newMatch(losers[0], losers[1])}
	s.updateReached()

	return nil
}
