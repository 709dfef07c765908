/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bracket

import (
	"fmt"
	"strings"
)

// Stage identifies one elimination round of the bracket.
type Stage int

const (
	StageRound1 Stage = iota
	StageRound2
	StageQuarterfinal
	StageSemifinal
	StageFinal
	StageThirdPlace
)

// NumStages is the number of stages a bracket holds.
const NumStages = 6

// Stages lists every stage in processing order.
func Stages() []Stage {
	return []Stage{StageRound1, StageRound2, StageQuarterfinal,
		StageSemifinal, StageFinal, StageThirdPlace}
}

func (s Stage) String() string {
	switch s {
	case StageRound1:
		return "Round 1"
	case StageRound2:
		return "Round 2"
	case StageQuarterfinal:
		return "Quarterfinals"
	case StageSemifinal:
		return "Semifinals"
	case StageFinal:
		return "Finals"
	case StageThirdPlace:
		return "3rd Place Match"
	default:
		return "?"
	}
}

func (s Stage) valid() bool {
	return s >= StageRound1 && s <= StageThirdPlace
}

// ParseStage accepts the short names used on the command line and in bot
// options ("r1", "round2", "qf", "semifinals", "final", "third") as well as
// the display names returned by String.
func ParseStage(in string) (Stage, error) {
	key := strings.ToLower(strings.TrimSpace(in))
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	switch key {
	case "r1", "round1", "1":
		return StageRound1, nil
	case "r2", "round2", "2":
		return StageRound2, nil
	case "qf", "quarter", "quarterfinal", "quarterfinals":
		return StageQuarterfinal, nil
	case "sf", "semi", "semifinal", "semifinals":
		return StageSemifinal, nil
	case "f", "final", "finals":
		return StageFinal, nil
	case "3rd", "third", "thirdplace", "3rdplace", "3rdplacematch":
		return StageThirdPlace, nil
	}

	return 0, fmt.Errorf("unknown stage %q", in)
}
