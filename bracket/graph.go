/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bracket

import (
	"slices"

	"github.com/dominikbraun/graph"
)

// stageGraph has an edge from each stage to every stage built from its
// results. Round 2 is built from Round 1 losers, the quarterfinals from
// Round 1 and Round 2 winners, and so on. Finals and the 3rd place match
// are siblings: neither depends on the other.
var stageGraph = newStageGraph()

func newStageGraph() graph.Graph[Stage, Stage] {
	g := graph.New(func(s Stage) Stage { return s }, graph.Directed(),
		graph.Acyclic())
	for _, s := range Stages() {
		_ = g.AddVertex(s)
	}

	edges := [][2]Stage{
		{StageRound1, StageRound2},
		{StageRound1, StageQuarterfinal},
		{StageRound2, StageQuarterfinal},
		{StageQuarterfinal, StageSemifinal},
		{StageSemifinal, StageFinal},
		{StageSemifinal, StageThirdPlace},
	}
	for _, e := range edges {
		_ = g.AddEdge(e[0], e[1])
	}

	return g
}

// dependants returns every stage reachable from stage, excluding stage
// itself, in stage order.
func dependants(stage Stage) []Stage {
	var out []Stage
	_ = graph.BFS(stageGraph, stage, func(s Stage) bool {
		if s != stage {
			out = append(out, s)
		}
		return false
	})
	slices.Sort(out)

	return out
}
