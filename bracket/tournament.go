/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bracket

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// Tournament owns a bracket State plus its roster, undo history and the
// statistics projected from them. Every mutation either fully applies
// (snapshot pushed, stats re-projected) or leaves everything untouched.
//
// A Tournament is not safe for concurrent use.
type Tournament struct {
	Name      string
	UpdatedAt time.Time

	roster   []string
	state    State
	history  *History
	stats    map[string]*PlayerStats
	sortMode SortMode
}

func NewTournament(name string, historyLimit int) *Tournament {
	t := &Tournament{
		Name:    name,
		history: NewHistory(historyLimit),
	}
	t.refresh()

	return t
}

// SetRoster replaces the roster. Blank names are dropped and repeats
// removed, keeping the first occurrence. Any bracket in progress is
// discarded.
func (t *Tournament) SetRoster(names []string) error {
	roster := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" && !slices.Contains(roster, n) {
			roster = append(roster, n)
		}
	}
	if len(roster) == 0 {
		return ErrEmptyRoster
	}
	t.roster = roster
	t.state = State{}
	t.history.Reset()
	t.refresh()

	return nil
}

func (t *Tournament) Roster() []string {
	return slices.Clone(t.roster)
}

func (t *Tournament) HasPlayer(name string) bool {
	return slices.Contains(t.roster, name)
}

// State returns a copy of the current bracket.
func (t *Tournament) State() State {
	return t.state.Clone()
}

// Draw seeds Round 1 from the roster. Prior progress and the undo history
// are discarded; a draw cannot be undone.
func (t *Tournament) Draw(shuffler Shuffler) error {
	if len(t.roster) == 0 {
		return ErrEmptyRoster
	}
	t.state = Draw(t.roster, shuffler)
	t.history.Reset()
	t.refresh()

	return nil
}

// RecordWinner toggles the winner of a match: recording the current winner
// again clears the result. Stages built from the changed result are
// cleared.
func (t *Tournament) RecordWinner(stage Stage, matchIdx int,
	player string) error {

	return t.apply(func(s *State) error {
		return recordWinner(s, stage, matchIdx, player)
	})
}

func (t *Tournament) RecordThirdPlaceWinner(player string) error {
	return t.apply(func(s *State) error {
		return recordThirdPlaceWinner(s, player)
	})
}

func (t *Tournament) StartRound2() error {
	return t.apply(startRound2)
}

func (t *Tournament) StartQuarterfinals() error {
	return t.apply(startQuarterfinals)
}

func (t *Tournament) StartSemifinals() error {
	return t.apply(startSemifinals)
}

func (t *Tournament) StartFinals() error {
	return t.apply(startFinals)
}

// Undo restores the bracket as it was before the last mutation.
func (t *Tournament) Undo() error {
	prev, ok := t.history.Pop()
	if !ok {
		return ErrNothingToUndo
	}
	t.state = prev
	t.refresh()

	return nil
}

func (t *Tournament) CanUndo() bool {
	return t.history.Len() > 0
}

func (t *Tournament) CanStartRound2() bool {
	return t.state.Drawn && t.state.Complete(StageRound1)
}

func (t *Tournament) CanStartQuarterfinals() bool {
	return t.state.Drawn &&
		len(t.state.Winners(StageRound1))+len(t.state.Winners(StageRound2)) == 8
}

func (t *Tournament) CanStartSemifinals() bool {
	return len(t.state.Winners(StageQuarterfinal)) == 4
}

func (t *Tournament) CanStartFinals() bool {
	return len(t.state.Winners(StageSemifinal)) == 2
}

// IsComplete reports whether both the final and the 3rd place match have
// been decided.
func (t *Tournament) IsComplete() bool {
	return t.state.Started(StageFinal) && t.state.Complete(StageFinal) &&
		t.state.Started(StageThirdPlace) && t.state.Complete(StageThirdPlace)
}

// Standings is the podium of a completed tournament.
type Standings struct {
	Champion string
	RunnerUp string
	Third    string
	Fourth   string
}

// Places returns the podium in finishing order.
func (s Standings) Places() []string {
	return []string{s.Champion, s.RunnerUp, s.Third, s.Fourth}
}

func (t *Tournament) Standings() (Standings, error) {
	if !t.IsComplete() {
		return Standings{}, ErrNotComplete
	}
	final := t.state.Stages[StageFinal][0]
	third := t.state.Stages[StageThirdPlace][0]

	return Standings{
		Champion: final.Winner,
		RunnerUp: final.Loser(),
		Third:    third.Winner,
		Fourth:   third.Loser(),
	}, nil
}

// Stats returns the projected statistics for one player.
func (t *Tournament) Stats(name string) (PlayerStats, error) {
	ps, ok := t.stats[name]
	if !ok {
		return PlayerStats{}, fmt.Errorf("%w: %q", ErrUnknownPlayer, name)
	}
	out := *ps
	out.History = slices.Clone(ps.History)

	return out, nil
}

// AllStats returns a copy of every player's statistics.
func (t *Tournament) AllStats() map[string]*PlayerStats {
	out := make(map[string]*PlayerStats, len(t.stats))
	for name := range t.stats {
		ps, _ := t.Stats(name)
		out[name] = &ps
	}
	return out
}

func (t *Tournament) SortMode() SortMode {
	return t.sortMode
}

func (t *Tournament) SetSortMode(mode SortMode) {
	t.sortMode = mode
}

// Sorted returns the roster in the current sort order.
func (t *Tournament) Sorted() []string {
	return SortPlayers(t.roster, t.stats, t.sortMode)
}

func (t *Tournament) apply(fn func(s *State) error) error {
	next := t.state.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	if next.Equal(t.state) {
		return nil
	}
	t.history.Push(t.state)
	t.state = next
	t.refresh()

	return nil
}

func (t *Tournament) refresh() {
	t.stats = Project(t.roster, t.state)
	t.UpdatedAt = time.Now()
}

// tournamentRecord is the persisted form of a Tournament.
type tournamentRecord struct {
	Name         string    `json:"name"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Roster       []string  `json:"roster"`
	State        State     `json:"state"`
	History      []State   `json:"history"`
	HistoryLimit int       `json:"historyLimit"`
	SortMode     string    `json:"sortMode"`
}

func (t *Tournament) MarshalJSON() ([]byte, error) {
	return json.Marshal(tournamentRecord{
		Name:         t.Name,
		UpdatedAt:    t.UpdatedAt,
		Roster:       t.roster,
		State:        t.state,
		History:      t.history.snapshots,
		HistoryLimit: t.history.limit,
		SortMode:     t.sortMode.String(),
	})
}

func (t *Tournament) UnmarshalJSON(data []byte) error {
	var rec tournamentRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("Tournament unmarshal: %w", err)
	}
	mode, err := ParseSortMode(rec.SortMode)
	if err != nil {
		return fmt.Errorf("Tournament unmarshal: %w", err)
	}

	t.Name = rec.Name
	t.roster = rec.Roster
	t.state = rec.State
	t.history = &History{snapshots: rec.History, limit: rec.HistoryLimit}
	t.sortMode = mode
	t.stats = Project(t.roster, t.state)
	t.UpdatedAt = rec.UpdatedAt

	return nil
}
