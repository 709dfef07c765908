/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bracket

import (
	"math/rand/v2"
	"slices"
)

// Round1Slots is the number of players drawn into Round 1; everyone else
// receives a bye into Round 2.
const Round1Slots = 8

// Shuffler supplies the permutation used to seed the draw.
type Shuffler interface {
	Shuffle(names []string) []string
}

// RandomShuffler returns a uniformly random permutation.
type RandomShuffler struct {
	rng *rand.Rand
}

// NewRandomShuffler returns a shuffler seeded with seed, or with a random
// seed when seed is 0.
func NewRandomShuffler(seed uint64) *RandomShuffler {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &RandomShuffler{rng: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

func (r *RandomShuffler) Shuffle(names []string) []string {
	out := slices.Clone(names)
	r.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// IdentityShuffler keeps the roster order; used for reproducible draws.
type IdentityShuffler struct{}

func (IdentityShuffler) Shuffle(names []string) []string {
	return slices.Clone(names)
}

// Draw seeds a fresh bracket from roster. The first Round1Slots players of
// the shuffled roster are paired consecutively into Round 1 and the rest
// form the bye group.
func Draw(roster []string, shuffler Shuffler) State {
	shuffled := shuffler.Shuffle(roster)

	n := min(len(shuffled), Round1Slots)
	round1 := shuffled[:n]
	bye := slices.Clone(shuffled[n:])

	pairs, odd := pairPlayers(round1)

	st := State{
		Drawn: true,
		Bye:   bye,
		Odd:   odd,
	}
	st.Stages[StageRound1] = pairs
	st.updateReached()

	return st
}
