/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bracket

import (
	"fmt"
	"strings"
)

// BuildBracketOutput formats every started stage into aligned tables
func BuildBracketOutput(t *Tournament) string {
	if !t.state.Drawn {
		return "Round 1 has not been drawn yet\n"
	}
	var sb strings.Builder

	for _, stage := range Stages() {
		matches := t.state.Matches(stage)
		if len(matches) == 0 {
			continue
		}

		type row struct{ match, p1, p2, winner string }
		var rows []row
		for idx, m := range matches {
			r := row{
				match:  fmt.Sprintf("%d.", idx+1),
				p1:     m.Players[0],
				p2:     m.Players[1],
				winner: m.Winner,
			}
			if m.Walkover {
				r.p2 = "BYE"
			}
			rows = append(rows, r)
		}

		// Compute column widths
		maxM, maxP1, maxP2 := len("Match"), len("Player 1"), len("Player 2")
		for _, r := range rows {
			if l := len(r.match); l > maxM {
				maxM = l
			}
			if l := len(r.p1); l > maxP1 {
				maxP1 = l
			}
			if l := len(r.p2); l > maxP2 {
				maxP2 = l
			}
		}

		sb.WriteString(fmt.Sprintf("%v\n", stage))
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %s\n", maxM, "Match",
			maxP1, "Player 1", maxP2, "Player 2", "Winner"))
		for _, r := range rows {
			sb.WriteString(strings.TrimRight(fmt.Sprintf("%-*s  %-*s  %-*s  %s",
				maxM, r.match, maxP1, r.p1, maxP2, r.p2, r.winner), " "))
			sb.WriteString("\n")
		}
		if stage == StageRound1 && (len(t.state.Bye) > 0 || t.state.Odd != "") {
			byes := t.state.Bye
			if t.state.Odd != "" {
				byes = append([]string{t.state.Odd}, byes...)
			}
			sb.WriteString(fmt.Sprintf("BYE into Round 2: %s\n",
				strings.Join(byes, ", ")))
		}
		sb.WriteString("\n")
	}

	next := nextStep(t)
	if next != "" {
		sb.WriteString(next)
		sb.WriteString("\n")
	}

	return sb.String()
}

func nextStep(t *Tournament) string {
	switch {
	case t.IsComplete():
		return "Tournament complete"
	case t.state.Started(StageFinal):
		return "Waiting on the Finals and 3rd Place Match"
	case t.CanStartFinals() && t.state.Reached == StageSemifinal:
		return "Ready to start the Finals"
	case t.CanStartSemifinals() && t.state.Reached == StageQuarterfinal:
		return "Ready to start the Semifinals"
	case t.CanStartQuarterfinals() && t.state.Reached == StageRound2:
		return "Ready to start the Quarterfinals"
	case t.CanStartRound2() && t.state.Reached == StageRound1:
		return "Ready to start Round 2"
	}
	return ""
}

// BuildStandingsOutput formats every player's statistics in the current
// sort order
func BuildStandingsOutput(t *Tournament) string {
	if len(t.roster) == 0 {
		return "No players entered\n"
	}
	var sb strings.Builder

	type row struct{ rank, player, wins, losses, matches, status string }
	var rows []row
	for idx, name := range t.Sorted() {
		ps := t.stats[name]
		rows = append(rows, row{
			rank:    fmt.Sprintf("%d.", idx+1),
			player:  name,
			wins:    fmt.Sprintf("%d", ps.Wins),
			losses:  fmt.Sprintf("%d", ps.Losses),
			matches: fmt.Sprintf("%d", ps.Matches),
			status:  ps.Status,
		})
	}

	// Compute column widths
	maxR, maxN := len("#"), len("Name")
	for _, r := range rows {
		if l := len(r.rank); l > maxR {
			maxR = l
		}
		if l := len(r.player); l > maxN {
			maxN = l
		}
	}

	sb.WriteString(fmt.Sprintf("Players sorted by %v:\n\n", t.sortMode))
	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-4s  %-6s  %-7s  %s\n", maxR, "#",
		maxN, "Name", "Wins", "Losses", "Matches", "Status"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-4s  %-6s  %-7s  %s\n", maxR,
			r.rank, maxN, r.player, r.wins, r.losses, r.matches, r.status))
	}

	if st, err := t.Standings(); err == nil {
		sb.WriteString("\nFinal Standings:\n")
		for idx, name := range st.Places() {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", idx+1, name))
		}
	}

	return sb.String()
}

// BuildPlayerOutput formats one player's card and match history
func BuildPlayerOutput(t *Tournament, name string) (string, error) {
	ps, err := t.Stats(name)
	if err != nil {
		return "", err
	}
	var sb strings.Builder

	state := "Active"
	if ps.IsEliminated() {
		state = "Eliminated"
	}
	sb.WriteString(fmt.Sprintf("%s (%s)\n", name, state))
	sb.WriteString(fmt.Sprintf("Wins: %d  Losses: %d  Matches: %d\n", ps.Wins,
		ps.Losses, ps.Matches))
	sb.WriteString(fmt.Sprintf("Current Status: %s\n", ps.Status))
	if len(ps.History) == 0 {
		sb.WriteString("No matches played yet\n")
		return sb.String(), nil
	}
	sb.WriteString("Match History:\n")
	for _, rec := range ps.History {
		sb.WriteString(fmt.Sprintf("  - %v\n", rec))
	}

	return sb.String(), nil
}
