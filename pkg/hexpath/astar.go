// Package hexpath provides pathfinding over axial hex space,
// parameterised by caller-supplied neighbor and cost functions.
package hexpath

import (
	"container/heap"

	"github.com/gravitas-games/hexland/pkg/hexgeom"
)

// AStar computes a shortest path from start to goal.
//   - h: admissible heuristic (e.g. hexgeom.Distance to goal)
//   - neighbors: adjacent coordinates to explore
//   - cost: edge cost between two adjacent coordinates (values < 1
//     are clamped to 1)
//
// Returns the path including start and goal, or nil if no path exists.
func AStar(start, goal hexgeom.Axial,
	h func(a hexgeom.Axial) int,
	neighbors func(a hexgeom.Axial) []hexgeom.Axial,
	cost func(a, b hexgeom.Axial) int,
) []hexgeom.Axial {
	if start == goal {
		return []hexgeom.Axial{start}
	}

	open := &nodePQ{}
	heap.Init(open)
	heap.Push(open, &pqNode{at: start, f: h(start)})

	g := map[hexgeom.Axial]int{start: 0}
	came := map[hexgeom.Axial]hexgeom.Axial{}
	closed := map[hexgeom.Axial]bool{}

	for open.Len() > 0 {
		cur := heap.Pop(open).(*pqNode).at
		if closed[cur] {
			continue
		}
		closed[cur] = true
		if cur == goal {
			return reconstruct(came, start, goal)
		}
		for _, nb := range neighbors(cur) {
			if closed[nb] {
				continue
			}
			step := cost(cur, nb)
			if step < 1 {
				step = 1
			}
			tentative := g[cur] + step
			if old, ok := g[nb]; !ok || tentative < old {
				g[nb] = tentative
				came[nb] = cur
				heap.Push(open, &pqNode{at: nb, f: tentative + h(nb)})
			}
		}
	}
	return nil
}

func reconstruct(came map[hexgeom.Axial]hexgeom.Axial, start, goal hexgeom.Axial) []hexgeom.Axial {
	path := []hexgeom.Axial{goal}
	for cur := goal; cur != start; {
		cur = came[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// HeuristicTo returns the plain hex-distance heuristic towards goal.
func HeuristicTo(goal hexgeom.Axial) func(a hexgeom.Axial) int {
	return func(a hexgeom.Axial) int { return hexgeom.Distance(a, goal) }
}

type pqNode struct {
	at hexgeom.Axial
	f  int
}

type nodePQ []*pqNode

func (p nodePQ) Len() int           { return len(p) }
func (p nodePQ) Less(i, j int) bool { return p[i].f < p[j].f }
func (p nodePQ) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }
func (p *nodePQ) Push(x any)        { *p = append(*p, x.(*pqNode)) }

func (p *nodePQ) Pop() any {
	old := *p
	n := len(old)
	x := old[n-1]
	*p = old[:n-1]
	return x
}
