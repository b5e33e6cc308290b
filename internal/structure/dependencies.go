package structure

import (
	"fmt"

	"github.com/felixgeelhaar/treecheck/internal/analysis"
)

// checkDependencies reports dangling dependency ids and nodes from which a
// dependency cycle is reachable. Only dependency edges are considered;
// parent/child edges never form cycles here.
func checkDependencies(f analysis.Forest, idx *index, issues *[]Issue) {
	cyclic := reachesCycle(idx)

	walkPaths(f, func(n, _ *analysis.Node, _ int, path string) {
		if len(n.Dependencies) == 0 {
			return
		}

		for _, dep := range n.Dependencies {
			if idx.has(dep) {
				continue
			}
			*issues = append(*issues, Issue{
				Kind:        KindError,
				Code:        CodeInvalidDependency,
				Message:     fmt.Sprintf("Node %s depends on %q, which does not exist in the tree", label(n, path), dep),
				NodeID:      n.ID,
				Severity:    SeverityHigh,
				AutoFixable: true,
			})
		}

		if n.HasID() && cycleFrom(n, idx, cyclic) {
			*issues = append(*issues, Issue{
				Kind:     KindError,
				Code:     CodeCircularDependency,
				Message:  fmt.Sprintf("Circular dependency detected from node %s", label(n, path)),
				NodeID:   n.ID,
				Severity: SeverityHigh,
			})
		}
	})
}

// cycleFrom reports whether a walk seeded with n's own dependencies
// revisits an id on its path. The indexed node for an id has its answer in
// cyclic; a later node sharing that id has edges of its own, and its walk
// starts with the shared id already on the path.
func cycleFrom(n *analysis.Node, idx *index, cyclic map[string]bool) bool {
	if idx.byID[n.ID] == n {
		return cyclic[n.ID]
	}
	for _, dep := range n.Dependencies {
		if !idx.has(dep) {
			continue
		}
		if dep == n.ID || cyclic[dep] || idx.reaches(dep, n.ID) {
			return true
		}
	}
	return false
}

// reachesCycle marks every indexed id from which a dependency cycle can be
// reached, which is exactly when a depth-first walk seeded with that id
// would revisit an id on its current path.
//
// One three-color DFS over the whole graph gives every answer in O(V+E):
//   - white: unvisited
//   - gray: on the current DFS path
//   - black: finished; its mark is final
//
// Reaching a gray node closes a cycle. Marks propagate to every node on
// the path back to the root of the walk.
func reachesCycle(idx *index) map[string]bool {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(idx.order))
	marked := make(map[string]bool)

	var visit func(id string)
	visit = func(id string) {
		color[id] = gray
		for _, dep := range idx.byID[id].Dependencies {
			if !idx.has(dep) {
				continue
			}
			switch color[dep] {
			case gray:
				marked[id] = true
			case white:
				visit(dep)
				if marked[dep] {
					marked[id] = true
				}
			case black:
				if marked[dep] {
					marked[id] = true
				}
			}
		}
		color[id] = black
	}

	for _, id := range idx.order {
		if color[id] == white {
			visit(id)
		}
	}
	return marked
}
