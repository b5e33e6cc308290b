package domain

import "fmt"

// NodeType is the rank of a node in an analysis tree. Ranks are ordered
// objective < strategy < initiative < task < subtask, and a child must
// always carry a strictly greater rank than its parent.
type NodeType string

const (
	NodeTypeObjective  NodeType = "objective"
	NodeTypeStrategy   NodeType = "strategy"
	NodeTypeInitiative NodeType = "initiative"
	NodeTypeTask       NodeType = "task"
	NodeTypeSubtask    NodeType = "subtask"
)

// NodeTypes lists every rank in ascending order; the slice index is the rank index.
var NodeTypes = []NodeType{
	NodeTypeObjective,
	NodeTypeStrategy,
	NodeTypeInitiative,
	NodeTypeTask,
	NodeTypeSubtask,
}

// NewNodeType creates a new NodeType value object with validation
func NewNodeType(value string) (NodeType, error) {
	t := NodeType(value)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Validate checks if the node type is one of the five known ranks
func (t NodeType) Validate() error {
	if t.Rank() < 0 {
		return fmt.Errorf("invalid node type %q: must be objective, strategy, initiative, task, or subtask", string(t))
	}
	return nil
}

// Rank returns the position of the type in the rank order, or -1 if unknown.
func (t NodeType) Rank() int {
	for i, known := range NodeTypes {
		if t == known {
			return i
		}
	}
	return -1
}

// IsValid reports whether the type is a known rank
func (t NodeType) IsValid() bool {
	return t.Rank() >= 0
}

// IsLeafRank reports whether the type is task or subtask, the ranks at which
// descriptions and time estimates are expected.
func (t NodeType) IsLeafRank() bool {
	return t == NodeTypeTask || t == NodeTypeSubtask
}

// CanContain reports whether a node of this type may parent a node of the child type.
func (t NodeType) CanContain(child NodeType) bool {
	parentRank, childRank := t.Rank(), child.Rank()
	if parentRank < 0 || childRank < 0 {
		return false
	}
	return childRank > parentRank
}

// Next returns the rank directly below this one. The second return value is
// false when t is unknown or already the lowest rank.
func (t NodeType) Next() (NodeType, bool) {
	r := t.Rank()
	if r < 0 || r+1 >= len(NodeTypes) {
		return "", false
	}
	return NodeTypes[r+1], true
}

// String returns the string representation
func (t NodeType) String() string {
	return string(t)
}
