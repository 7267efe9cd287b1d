package domain

type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	default:
		return "low"
	}
}

// ValidationIssue is a single field-level data quality finding.
type ValidationIssue struct {
	Field      string
	Severity   Severity
	Message    string
	Suggestion string
}

// ValidationResult holds all issues found on one entity of the program
// graph. Valid means the entity carries no high severity issues; medium and
// low findings do not disqualify it.
type ValidationResult struct {
	EntityType string
	EntityID   string
	Valid      bool
	Issues     []ValidationIssue
}

// ValidationSummary is the payload of a data validation report.
type ValidationSummary struct {
	ProgramID          string
	Results            []ValidationResult
	TotalEntities      int
	ValidEntities      int
	PercentValid       float64
	CriticalIssueCount int
}
