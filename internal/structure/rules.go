package structure

// Rules holds the thresholds the passes compare against. The zero value is
// not useful; start from DefaultRules.
type Rules struct {
	// MaxDepth is the deepest level (roots are 0) before EXCESSIVE_DEPTH.
	MaxDepth int `yaml:"max_depth" json:"max_depth" validate:"gte=1"`

	// MaxChildren is the largest sibling group before TOO_MANY_CHILDREN.
	MaxChildren int `yaml:"max_children" json:"max_children" validate:"gte=1"`

	MinTitleLength int `yaml:"min_title_length" json:"min_title_length" validate:"gte=0"`
	MaxTitleLength int `yaml:"max_title_length" json:"max_title_length" validate:"gtefield=MinTitleLength"`

	// LargeEstimateHours flags any single estimate above it.
	LargeEstimateHours float64 `yaml:"large_estimate_hours" json:"large_estimate_hours" validate:"gt=0"`

	// LongTaskHours flags leaf task/subtask estimates that should be decomposed.
	LongTaskHours float64 `yaml:"long_task_hours" json:"long_task_hours" validate:"gt=0"`

	MinEstimateCoverage    float64 `yaml:"min_estimate_coverage" json:"min_estimate_coverage" validate:"gte=0,lte=1"`
	MinDescriptionCoverage float64 `yaml:"min_description_coverage" json:"min_description_coverage" validate:"gte=0,lte=1"`

	// ProjectHoursBudget is roughly one person-year. Leaf totals above it
	// raise LARGE_PROJECT and drop feasibility to its flat default.
	ProjectHoursBudget float64 `yaml:"project_hours_budget" json:"project_hours_budget" validate:"gt=0"`

	// BreakdownFactor bounds how far children's summed estimates may exceed
	// their parent's own estimate.
	BreakdownFactor float64 `yaml:"breakdown_factor" json:"breakdown_factor" validate:"gt=0"`
}

// DefaultRules returns the standard thresholds.
func DefaultRules() Rules {
	return Rules{
		MaxDepth:               6,
		MaxChildren:            8,
		MinTitleLength:         5,
		MaxTitleLength:         100,
		LargeEstimateHours:     1000,
		LongTaskHours:          40,
		MinEstimateCoverage:    0.7,
		MinDescriptionCoverage: 0.5,
		ProjectHoursBudget:     2000,
		BreakdownFactor:        3,
	}
}

// Fixed scoring and suggestion constants.
const (
	hoursPerFeasibilityPoint = 50
	defaultFeasibility       = 50

	suggestWarningCount = 5
	suggestMaxDepth     = 5
	suggestMaxBreadth   = 8
	suggestCompleteness = 70
	suggestFeasibility  = 60
)

// penalties maps (severity, kind) to the points subtracted per issue.
var penalties = map[Severity]map[Kind]int{
	SeverityHigh:   {KindError: 15, KindWarning: 8},
	SeverityMedium: {KindError: 10, KindWarning: 5},
	SeverityLow:    {KindError: 5, KindWarning: 2},
}
