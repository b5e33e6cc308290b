package treecheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/treecheck/pkg/treecheck"
)

func sample() treecheck.Forest {
	return treecheck.Forest{{
		ID:             "obj",
		Type:           treecheck.Objective,
		Title:          "Ship the importer",
		Description:    "Customers can bring their existing data",
		Priority:       treecheck.PriorityHigh,
		EstimatedHours: treecheck.Hours(8),
		Children: []*treecheck.Node{{
			ID:             "t1",
			Type:           treecheck.Task,
			Title:          "Parse CSV input",
			Description:    "Read rows and map columns",
			Priority:       treecheck.PriorityMedium,
			EstimatedHours: treecheck.Hours(8),
		}},
	}}
}

func TestValidate(t *testing.T) {
	result := treecheck.Validate(sample())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Issues)
	assert.Equal(t, 100, result.Score)
}

func TestValidateWithRules(t *testing.T) {
	rules := treecheck.DefaultRules()
	rules.MinTitleLength = 40

	result := treecheck.ValidateWithRules(sample(), rules)

	assert.True(t, result.IsValid)
	assert.Equal(t, 2, result.Count(treecheck.KindWarning))
	assert.True(t, result.Has("SHORT_TITLE"))
}

func TestAutoFix(t *testing.T) {
	forest := sample()
	forest[0].Children[0].Priority = "urgent"

	fixed, fixes, err := treecheck.AutoFix(forest)
	require.NoError(t, err)

	require.Len(t, fixes, 1)
	assert.Equal(t, treecheck.Code("INVALID_PRIORITY"), fixes[0].Code)
	assert.Equal(t, treecheck.PriorityMedium, fixed[0].Children[0].Priority)
	assert.Equal(t, treecheck.Priority("urgent"), forest[0].Children[0].Priority, "input is not modified")
	assert.True(t, treecheck.Validate(fixed).IsValid)
}

func TestFingerprint(t *testing.T) {
	a, err := treecheck.Fingerprint(sample())
	require.NoError(t, err)
	b, err := treecheck.Fingerprint(sample())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
