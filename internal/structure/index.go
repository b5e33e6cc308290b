package structure

import (
	"strconv"

	"github.com/felixgeelhaar/treecheck/internal/analysis"
)

// visitFunc receives every node in pre-order with its ordinal path ("0.2.1").
type visitFunc func(n, parent *analysis.Node, depth int, path string)

func walkPaths(f analysis.Forest, visit visitFunc) {
	for i, root := range f {
		walkPath(root, nil, 0, strconv.Itoa(i), visit)
	}
}

func walkPath(n, parent *analysis.Node, depth int, path string, visit visitFunc) {
	visit(n, parent, depth, path)
	for i, child := range n.Children {
		walkPath(child, n, depth+1, path+"."+strconv.Itoa(i), visit)
	}
}

// index maps ids to nodes. It is built once per call, before any pass that
// looks nodes up. Nodes without an id are not indexed; for duplicated ids
// the first node in pre-order wins.
type index struct {
	byID  map[string]*analysis.Node
	order []string
}

func newIndex(f analysis.Forest) *index {
	idx := &index{byID: make(map[string]*analysis.Node)}
	walkPaths(f, func(n, _ *analysis.Node, _ int, _ string) {
		if !n.HasID() {
			return
		}
		if _, exists := idx.byID[n.ID]; exists {
			return
		}
		idx.byID[n.ID] = n
		idx.order = append(idx.order, n.ID)
	})
	return idx
}

func (idx *index) has(id string) bool {
	_, ok := idx.byID[id]
	return ok
}

// reaches reports whether target can be reached from the indexed id from
// by following dependency edges.
func (idx *index) reaches(from, target string) bool {
	visited := map[string]bool{from: true}
	stack := []string{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, dep := range idx.byID[id].Dependencies {
			if dep == target {
				return true
			}
			if visited[dep] || !idx.has(dep) {
				continue
			}
			visited[dep] = true
			stack = append(stack, dep)
		}
	}
	return false
}
