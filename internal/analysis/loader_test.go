package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/treecheck/internal/domain"
	"github.com/felixgeelhaar/treecheck/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDocument_JSONArray(t *testing.T) {
	path := writeFile(t, "launch.json", `[
  {
    "id": "obj-1",
    "type": "objective",
    "title": "Launch the product",
    "priority": "high",
    "children": [
      {"id": "task-1", "type": "task", "title": "Write docs", "priority": "low", "estimatedHours": 8, "dependencies": ["obj-1"]}
    ]
  }
]`)

	doc, err := LoadDocument(path)
	require.NoError(t, err)

	assert.Equal(t, "launch", doc.Name)
	require.Len(t, doc.Nodes, 1)
	root := doc.Nodes[0]
	assert.Equal(t, domain.NodeTypeObjective, root.Type)
	assert.Nil(t, root.EstimatedHours)
	require.Len(t, root.Children, 1)
	assert.Equal(t, 8.0, root.Children[0].Estimate())
	assert.Equal(t, []string{"obj-1"}, root.Children[0].Dependencies)
}

func TestLoadDocument_JSONEnvelope(t *testing.T) {
	path := writeFile(t, "tree.json", `{"name": "q3-plan", "nodes": [{"id": "a", "type": "strategy", "title": "Grow", "priority": "medium"}]}`)

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "q3-plan", doc.Name)
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, domain.NodeTypeStrategy, doc.Nodes[0].Type)
}

func TestLoadDocument_YAML(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "bare list",
			content: `
- id: obj-1
  type: objective
  title: Ship v2
  priority: critical
  metadata:
    source: import
  children:
    - id: t-1
      type: task
      title: Migrate schema
      priority: high
      estimatedHours: 12.5
`,
		},
		{
			name: "envelope",
			content: `
name: ship-v2
nodes:
  - id: obj-1
    type: objective
    title: Ship v2
    priority: critical
    metadata:
      source: import
    children:
      - id: t-1
        type: task
        title: Migrate schema
        priority: high
        estimatedHours: 12.5
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "tree.yaml", tt.content)
			doc, err := LoadDocument(path)
			require.NoError(t, err)
			require.Len(t, doc.Nodes, 1)
			assert.Equal(t, "import", doc.Nodes[0].Metadata["source"])
			require.Len(t, doc.Nodes[0].Children, 1)
			assert.Equal(t, 12.5, doc.Nodes[0].Children[0].Estimate())
		})
	}
}

func TestLoadDocument_Errors(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, errors.ErrCodeTreeNotFound, errors.CodeOf(err))

	path := writeFile(t, "broken.json", `[{"id": `)
	_, err = LoadDocument(path)
	assert.Equal(t, errors.ErrCodeTreeUnmarshal, errors.CodeOf(err))
	assert.ErrorContains(t, err, "unmarshal tree")
}

func TestSaveDocument_RoundTrip(t *testing.T) {
	doc := &Document{
		Name: "roundtrip",
		Nodes: Forest{
			{ID: "o", Type: domain.NodeTypeObjective, Title: "Objective", Priority: domain.PriorityHigh, Children: []*Node{
				{ID: "t", Type: domain.NodeTypeTask, Title: "Task one", Priority: domain.PriorityLow, EstimatedHours: Hours(4)},
			}},
		},
	}

	for _, name := range []string{"out.json", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, SaveDocument(doc, path))

			loaded, err := LoadDocument(path)
			require.NoError(t, err)
			assert.Equal(t, doc.Name, loaded.Name)

			want, err := Fingerprint(doc.Nodes)
			require.NoError(t, err)
			got, err := Fingerprint(loaded.Nodes)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat("a.JSON", nil))
	assert.Equal(t, FormatYAML, DetectFormat("a.yml", nil))
	assert.Equal(t, FormatJSON, DetectFormat("tree", []byte("  [ ]")))
	assert.Equal(t, FormatYAML, DetectFormat("tree", []byte("- id: a")))
}
