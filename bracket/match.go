/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bracket

// Match is a pairing of two players plus the recorded winner, if any.
//
// A walkover match has a single player who advances without playing; its
// winner is preset and cannot be changed.
type Match struct {
	Players  [2]string `json:"players"`
	Winner   string    `json:"winner,omitempty"`
	Walkover bool      `json:"walkover,omitempty"`
}

func newMatch(p1, p2 string) Match {
	return Match{Players: [2]string{p1, p2}}
}

func newWalkover(p string) Match {
	return Match{Players: [2]string{p, ""}, Winner: p, Walkover: true}
}

func (m Match) HasWinner() bool {
	return m.Winner != ""
}

// Has reports whether player is one of the two sides of the match.
func (m Match) Has(player string) bool {
	if player == "" {
		return false
	}
	return m.Players[0] == player || m.Players[1] == player
}

// Opponent returns the other side of the match from player.
func (m Match) Opponent(player string) string {
	if m.Players[0] == player {
		return m.Players[1]
	}
	return m.Players[0]
}

// Loser returns the losing side, or "" when no winner is recorded or the
// match was a walkover.
func (m Match) Loser() string {
	if !m.HasWinner() || m.Walkover {
		return ""
	}
	return m.Opponent(m.Winner)
}

// pairPlayers pairs players consecutively: (0,1), (2,3), ... An odd player
// out is returned as leftover.
func pairPlayers(players []string) ([]Match, string) {
	pairs := make([]Match, 0, len(players)/2)
	for i := 0; i+1 < len(players); i += 2 {
		pairs = append(pairs, newMatch(players[i], players[i+1]))
	}

	leftover := ""
	if len(players)%2 == 1 {
		leftover = players[len(players)-1]
	}

	return pairs, leftover
}
