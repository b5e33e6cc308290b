package analysis

// Visit is called for every node in pre-order. parent is nil for roots and
// depth is 0 for roots. Returning false skips the node's subtree.
type Visit func(n *Node, parent *Node, depth int) bool

// Walk traverses the forest in pre-order, following sibling order. Nil
// entries are skipped.
func Walk(f Forest, visit Visit) {
	for _, root := range f {
		walk(root, nil, 0, visit)
	}
}

func walk(n, parent *Node, depth int, visit Visit) {
	if n == nil {
		return
	}
	if !visit(n, parent, depth) {
		return
	}
	for _, child := range n.Children {
		walk(child, n, depth+1, visit)
	}
}

// Count returns the number of nodes in the forest.
func (f Forest) Count() int {
	count := 0
	Walk(f, func(*Node, *Node, int) bool {
		count++
		return true
	})
	return count
}

// MaxDepth returns the largest root-to-leaf edge count, or 0 for an empty forest.
func (f Forest) MaxDepth() int {
	max := 0
	Walk(f, func(_ *Node, _ *Node, depth int) bool {
		if depth > max {
			max = depth
		}
		return true
	})
	return max
}

// Find returns the first node in pre-order with the given id.
func (f Forest) Find(id string) (*Node, bool) {
	var found *Node
	Walk(f, func(n *Node, _ *Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}
