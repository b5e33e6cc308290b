// Package analysis holds the analysis tree model: a forest of ranked work
// items with estimates and cross-tree dependencies, plus file I/O for it.
package analysis

import (
	"strings"

	"github.com/felixgeelhaar/treecheck/internal/domain"
)

// Node is one element of an analysis tree.
type Node struct {
	ID             string          `json:"id" yaml:"id"`
	Type           domain.NodeType `json:"type" yaml:"type"`
	Title          string          `json:"title" yaml:"title"`
	Description    string          `json:"description,omitempty" yaml:"description,omitempty"`
	Priority       domain.Priority `json:"priority" yaml:"priority"`
	EstimatedHours *float64        `json:"estimatedHours,omitempty" yaml:"estimatedHours,omitempty"`
	Dependencies   []string        `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Children       []*Node         `json:"children,omitempty" yaml:"children,omitempty"`

	// Metadata is caller annotation (tags, provenance, confidence). It is
	// carried through untouched and never validated.
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Forest is an ordered sequence of root nodes. Sibling order is significant.
type Forest []*Node

// Document is the on-disk envelope for a named tree.
type Document struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Nodes Forest `json:"nodes" yaml:"nodes"`
}

// Hours returns a pointer to h, for building nodes with an estimate.
func Hours(h float64) *float64 {
	return &h
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// HasID reports whether the node carries a non-blank id.
func (n *Node) HasID() bool {
	return strings.TrimSpace(n.ID) != ""
}

// HasDescription reports whether the node carries a non-blank description.
func (n *Node) HasDescription() bool {
	return strings.TrimSpace(n.Description) != ""
}

// Estimate returns the estimated hours, or 0 when no estimate is set.
func (n *Node) Estimate() float64 {
	if n.EstimatedHours == nil {
		return 0
	}
	return *n.EstimatedHours
}

// Clone returns a deep copy of the node and its subtree. Metadata maps are
// copied one level deep; nested values are shared.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.EstimatedHours != nil {
		c.EstimatedHours = Hours(*n.EstimatedHours)
	}
	if n.Dependencies != nil {
		c.Dependencies = append([]string(nil), n.Dependencies...)
	}
	if n.Metadata != nil {
		c.Metadata = make(map[string]any, len(n.Metadata))
		for k, v := range n.Metadata {
			c.Metadata[k] = v
		}
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return &c
}

// Clone returns a deep copy of the forest.
func (f Forest) Clone() Forest {
	if f == nil {
		return nil
	}
	out := make(Forest, len(f))
	for i, n := range f {
		out[i] = n.Clone()
	}
	return out
}
