package domain

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// genValidPriority generates valid Priority values for property testing
func genValidPriority() *rapid.Generator[Priority] {
	return rapid.SampledFrom(Priorities)
}

// genInvalidPriority generates invalid Priority strings
func genInvalidPriority() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just(""),
		rapid.SampledFrom([]string{"Low", "MEDIUM", " high", "critical ", "P0", "urgent"}),
		rapid.StringMatching(`[A-Za-z]{1,10}`).Filter(func(s string) bool {
			return !Priority(s).IsValid()
		}),
	)
}

// TestPriority_ValidPrioritiesAlwaysValidate tests that all valid priorities pass validation
func TestPriority_ValidPrioritiesAlwaysValidate(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := genValidPriority().Draw(t, "valid_priority")
		if err := p.Validate(); err != nil {
			t.Fatalf("valid priority %q should pass validation: %v", p, err)
		}
	})
}

// TestPriority_InvalidPrioritiesFail tests that invalid priorities fail validation
func TestPriority_InvalidPrioritiesFail(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := genInvalidPriority().Draw(t, "invalid_priority")
		err := Priority(s).Validate()
		if err == nil {
			t.Fatalf("invalid priority %q should fail validation", s)
		}
		if !strings.Contains(err.Error(), "must be low, medium, high, or critical") {
			t.Errorf("error should mention valid values: %v", err)
		}
	})
}

// TestPriority_ComparisonIsComplete tests that exactly one of >, <, == holds
func TestPriority_ComparisonIsComplete(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genValidPriority().Draw(t, "a")
		b := genValidPriority().Draw(t, "b")

		trueCount := 0
		if a.IsHigherThan(b) {
			trueCount++
		}
		if a.IsLowerThan(b) {
			trueCount++
		}
		if a == b {
			trueCount++
		}
		if trueCount != 1 {
			t.Fatalf("%s vs %s has %d true conditions, want exactly 1", a, b, trueCount)
		}
	})
}
