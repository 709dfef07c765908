/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bracket

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortMode int

const (
	SortProgress SortMode = iota
	SortWins
	SortName
)

func (m SortMode) String() string {
	switch m {
	case SortProgress:
		return "progress"
	case SortWins:
		return "wins"
	case SortName:
		return "name"
	default:
		return "?"
	}
}

func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "progress":
		return SortProgress, nil
	case "wins":
		return SortWins, nil
	case "name":
		return SortName, nil
	}
	return SortProgress, fmt.Errorf("unknown sort mode %q (want progress, wins or name)", s)
}

const unknownRank = 999

var progressRank = map[string]int{
	StatusChampion:             1,
	StatusRunnerUp:             2,
	StatusThirdPlace:           3,
	StatusFourthPlace:          4,
	StatusAdvancedFinal:        5,
	StatusPlayingThird:         6,
	StatusAdvancedSemifinal:    7,
	StatusEliminatedQuarter:    8,
	StatusAdvancedQuarterfinal: 9,
	StatusEliminatedRound2:     10,
	StatusRound2Bye:            11,
	StatusRound2:               12,
	StatusMovedToRound2:        13,
	StatusRound1Bye:            14,
	StatusRound1:               15,
	StatusNotStarted:           16,
}

// ProgressRank returns the position of a lifecycle label in progress
// order, 1 being the champion.
func ProgressRank(status string) int {
	if r, ok := progressRank[status]; ok {
		return r
	}
	return unknownRank
}

// SortPlayers orders names by mode. Players missing from stats sort as if
// they had no wins and an unknown label.
func SortPlayers(names []string, stats map[string]*PlayerStats,
	mode SortMode) []string {

	out := slices.Clone(names)
	col := collate.New(language.English)

	wins := func(n string) int {
		if ps, ok := stats[n]; ok {
			return ps.Wins
		}
		return 0
	}
	rank := func(n string) int {
		if ps, ok := stats[n]; ok {
			return ProgressRank(ps.Status)
		}
		return unknownRank
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if mode == SortProgress {
			if ra, rb := rank(a), rank(b); ra != rb {
				return ra < rb
			}
		}
		if mode == SortProgress || mode == SortWins {
			if wa, wb := wins(a), wins(b); wa != wb {
				return wa > wb
			}
		}
		return col.CompareString(a, b) < 0
	})

	return out
}
