package validation

import (
	"context"
	"testing"
	"time"

	"github.com/lgu-tools/aip-atlas/pkg/models/domain"
	"github.com/lgu-tools/aip-atlas/pkg/services/analysis"
	"github.com/lgu-tools/aip-atlas/pkg/store/blob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubExplorer serves a fixed snapshot, or an error.
type stubExplorer struct {
	program *domain.InvestmentProgram
	err     error
}

func (s *stubExplorer) GetProgram(_ context.Context, id string) (*domain.InvestmentProgram, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.program, nil
}

func (s *stubExplorer) ListCompletedPrograms(_ context.Context, _, _ int) ([]domain.InvestmentProgram, error) {
	return nil, nil
}

func newTestAnalyzer(program *domain.InvestmentProgram) *Analyzer {
	return NewAnalyzer(&stubExplorer{program: program}, DefaultSettings(), blob.NewMemStore())
}

func date(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func baseProgram() *domain.InvestmentProgram {
	return &domain.InvestmentProgram{
		ID:          "p1",
		Title:       "AIP 2025",
		Status:      domain.ProgramApproved,
		TotalAmount: 100000,
		FiscalYear:  2025,
		StartDate:   date(2025, 1, 1),
		EndDate:     date(2025, 12, 31),
	}
}

func issuesFor(summary domain.ValidationSummary, entityType, entityID string) []domain.ValidationIssue {
	for _, r := range summary.Results {
		if r.EntityType == entityType && r.EntityID == entityID {
			return r.Issues
		}
	}
	return nil
}

func hasIssue(issues []domain.ValidationIssue, field string, severity domain.Severity) bool {
	for _, issue := range issues {
		if issue.Field == field && issue.Severity == severity {
			return true
		}
	}
	return false
}

func TestPredict_ExpenseOverrunBoundaryIsExclusive(t *testing.T) {
	ctx := context.Background()

	project := domain.Project{
		ID: "pr1", Name: "Road Repair", Sector: "Infrastructure", TotalCost: 1000,
		StartDate: date(2025, 1, 1), EndDate: date(2025, 12, 31),
		Expenses:   []domain.Expense{{ID: "e1", Amount: 1100, Date: date(2025, 6, 1), Description: "gravel"}},
		Milestones: []domain.Milestone{{ID: "m1", Name: "Done", DueDate: date(2025, 11, 1)}},
	}

	program := baseProgram()
	program.TotalAmount = 1000
	program.Projects = []domain.Project{project}

	report, err := newTestAnalyzer(program).Predict(ctx, Input{ProgramID: "p1"})
	require.NoError(t, err)

	// Exactly 1.10x totalCost: no overrun issue.
	issues := issuesFor(report.Payload, "project", "pr1")
	assert.False(t, hasIssue(issues, "expenses", domain.SeverityHigh))

	// 1.11x fires.
	program.Projects[0].Expenses[0].Amount = 1110
	report, err = newTestAnalyzer(program).Predict(ctx, Input{ProgramID: "p1"})
	require.NoError(t, err)
	issues = issuesFor(report.Payload, "project", "pr1")
	assert.True(t, hasIssue(issues, "expenses", domain.SeverityHigh))
}

func TestPredict_UnderAllocationBoundaryIsExclusive(t *testing.T) {
	ctx := context.Background()

	makeProgram := func(projectSum float64) *domain.InvestmentProgram {
		program := baseProgram()
		program.Projects = []domain.Project{
			{
				ID: "pr1", Name: "Road Repair", Sector: "Infrastructure", TotalCost: projectSum - 30000,
				StartDate: date(2025, 2, 1), EndDate: date(2025, 11, 30),
				Expenses:   []domain.Expense{{ID: "e1", Amount: 30000, Date: date(2025, 6, 1), Description: "works"}},
				Milestones: []domain.Milestone{{ID: "m1", Name: "Phase 1", DueDate: date(2025, 8, 1)}},
			},
			{
				ID: "pr2", Name: "Feeding Program", Sector: "Health", TotalCost: 30000,
				Expenses:   []domain.Expense{{ID: "e2", Amount: 28000, Description: "supplies"}},
				Milestones: []domain.Milestone{{ID: "m2", Name: "Rollout", DueDate: date(2025, 9, 1)}},
			},
		}
		return program
	}

	// Exactly 90% of the budget: boundary passes.
	report, err := newTestAnalyzer(makeProgram(90000)).Predict(ctx, Input{ProgramID: "p1"})
	require.NoError(t, err)
	programIssues := issuesFor(report.Payload, "program", "p1")
	assert.False(t, hasIssue(programIssues, "totalAmount", domain.SeverityMedium))

	for _, r := range report.Payload.Results {
		if r.EntityType == "program" {
			assert.True(t, r.Valid, "program should be valid")
		}
	}

	// The undated Feeding Program is flagged medium on both date fields.
	projectIssues := issuesFor(report.Payload, "project", "pr2")
	assert.True(t, hasIssue(projectIssues, "startDate", domain.SeverityMedium))
	assert.True(t, hasIssue(projectIssues, "endDate", domain.SeverityMedium))

	// Strictly below 90% fires.
	report, err = newTestAnalyzer(makeProgram(89999)).Predict(ctx, Input{ProgramID: "p1"})
	require.NoError(t, err)
	programIssues = issuesFor(report.Payload, "program", "p1")
	assert.True(t, hasIssue(programIssues, "totalAmount", domain.SeverityMedium))
}

func TestPredict_OverAllocationBoundaryIsExclusive(t *testing.T) {
	ctx := context.Background()

	makeProgram := func(projectCost float64) *domain.InvestmentProgram {
		program := baseProgram()
		program.Projects = []domain.Project{
			{
				ID: "pr1", Name: "Multi-Purpose Hall", Sector: "Infrastructure", TotalCost: projectCost,
				StartDate: date(2025, 1, 1), EndDate: date(2025, 12, 31),
				Expenses:   []domain.Expense{{ID: "e1", Amount: 40000, Date: date(2025, 4, 1), Description: "works"}},
				Milestones: []domain.Milestone{{ID: "m1", Name: "Groundwork", DueDate: date(2025, 3, 1)}},
			},
		}
		return program
	}

	// Exactly 105% of the budget: boundary passes.
	report, err := newTestAnalyzer(makeProgram(105000)).Predict(ctx, Input{ProgramID: "p1"})
	require.NoError(t, err)
	issues := issuesFor(report.Payload, "program", "p1")
	assert.False(t, hasIssue(issues, "totalAmount", domain.SeverityHigh))

	// Strictly above fires high.
	report, err = newTestAnalyzer(makeProgram(105001)).Predict(ctx, Input{ProgramID: "p1"})
	require.NoError(t, err)
	issues = issuesFor(report.Payload, "program", "p1")
	assert.True(t, hasIssue(issues, "totalAmount", domain.SeverityHigh))
}

func TestPredict_ProjectDatesOutsideFiscalYear(t *testing.T) {
	ctx := context.Background()

	program := baseProgram()
	program.Projects = []domain.Project{
		{
			ID: "pr1", Name: "Early Start", Sector: "Infrastructure", TotalCost: 90000,
			StartDate: date(2024, 11, 15), EndDate: date(2026, 2, 1),
			Expenses:   []domain.Expense{{ID: "e1", Amount: 10000, Date: date(2025, 5, 1), Description: "mobilization"}},
			Milestones: []domain.Milestone{{ID: "m1", Name: "Phase 1", DueDate: date(2025, 6, 1)}},
		},
	}

	report, err := newTestAnalyzer(program).Predict(ctx, Input{ProgramID: "p1"})
	require.NoError(t, err)

	issues := issuesFor(report.Payload, "project", "pr1")
	assert.True(t, hasIssue(issues, "startDate", domain.SeverityMedium))
	assert.True(t, hasIssue(issues, "endDate", domain.SeverityMedium))

	// Without program bounds the comparison is skipped entirely.
	program.StartDate = nil
	program.EndDate = nil
	report, err = newTestAnalyzer(program).Predict(ctx, Input{ProgramID: "p1"})
	require.NoError(t, err)

	issues = issuesFor(report.Payload, "project", "pr1")
	assert.False(t, hasIssue(issues, "startDate", domain.SeverityMedium))
	assert.False(t, hasIssue(issues, "endDate", domain.SeverityMedium))
}

func TestPredict_CompletedMilestoneWithoutDate(t *testing.T) {
	ctx := context.Background()

	program := baseProgram()
	program.Projects = []domain.Project{
		{
			ID: "pr1", Name: "Streetlights", Sector: "Peace and Order", TotalCost: 50000,
			StartDate: date(2025, 1, 1), EndDate: date(2025, 12, 31),
			Expenses: []domain.Expense{{ID: "e1", Amount: 20000, Date: date(2025, 3, 1), Description: "posts"}},
			Milestones: []domain.Milestone{
				{ID: "m1", Name: "Procurement", Status: domain.MilestoneCompleted, DueDate: date(2025, 2, 1)},
			},
		},
	}

	report, err := newTestAnalyzer(program).Predict(ctx, Input{ProgramID: "p1"})
	require.NoError(t, err)

	issues := issuesFor(report.Payload, "milestone", "m1")
	var completedAtIssues int
	for _, issue := range issues {
		if issue.Field == "completedAt" {
			completedAtIssues++
			assert.Equal(t, domain.SeverityMedium, issue.Severity)
		}
	}
	assert.Equal(t, 1, completedAtIssues)

	// The inverse inconsistency is flagged on status.
	program.Projects[0].Milestones[0].Status = "PENDING"
	program.Projects[0].Milestones[0].CompletedAt = date(2025, 2, 15)
	report, err = newTestAnalyzer(program).Predict(ctx, Input{ProgramID: "p1"})
	require.NoError(t, err)
	assert.True(t, hasIssue(issuesFor(report.Payload, "milestone", "m1"), "status", domain.SeverityMedium))
}

func TestPredict_IsIdempotent(t *testing.T) {
	ctx := context.Background()

	program := baseProgram()
	program.Projects = []domain.Project{
		{
			ID: "pr1", Name: "", Sector: "", TotalCost: 0,
			Expenses:   []domain.Expense{{ID: "e1", Amount: -5}},
			Milestones: []domain.Milestone{{ID: "m1", Name: ""}},
		},
	}

	a := newTestAnalyzer(program)
	first, err := a.Predict(ctx, Input{ProgramID: "p1"})
	require.NoError(t, err)
	second, err := a.Predict(ctx, Input{ProgramID: "p1"})
	require.NoError(t, err)

	assert.Equal(t, first.Payload, second.Payload)
}

func TestPredict_SummaryCountsHighIssuesOnly(t *testing.T) {
	ctx := context.Background()

	program := baseProgram()
	program.Projects = []domain.Project{
		{
			ID: "pr1", Name: "", TotalCost: 0, // two high issues + sector/date mediums
			Expenses:   []domain.Expense{{ID: "e1", Amount: 100, Date: date(2025, 5, 1), Description: "ok"}},
			Milestones: []domain.Milestone{{ID: "m1", Name: "Kickoff", DueDate: date(2025, 1, 15)}},
		},
	}

	report, err := newTestAnalyzer(program).Predict(ctx, Input{ProgramID: "p1"})
	require.NoError(t, err)

	summary := report.Payload
	assert.Equal(t, 4, summary.TotalEntities) // program, project, expense, milestone
	assert.Equal(t, 3, summary.ValidEntities)
	assert.InDelta(t, 75, summary.PercentValid, 1e-9)
	assert.Equal(t, 0.9, report.Confidence)

	// Project cost sum (0) is below 90% of budget: one medium on the program,
	// but the critical count only reflects the project's two highs.
	assert.Equal(t, 2, summary.CriticalIssueCount)
}

func TestPredict_UnknownProgram_PropagatesNotFound(t *testing.T) {
	a := NewAnalyzer(
		&stubExplorer{err: &domain.NotFoundError{Kind: "program", ID: "nope"}},
		DefaultSettings(),
		blob.NewMemStore(),
	)

	_, err := a.Predict(context.Background(), Input{ProgramID: "nope"})
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestPredict_ExpenseChecks(t *testing.T) {
	ctx := context.Background()

	program := baseProgram()
	program.Projects = []domain.Project{
		{
			ID: "pr1", Name: "Clinic Repair", Sector: "Health", TotalCost: 50000,
			StartDate: date(2025, 3, 1), EndDate: date(2025, 9, 30),
			Expenses: []domain.Expense{
				{ID: "e1", Amount: 0, Date: date(2025, 4, 1), Description: "zero"},
				{ID: "e2", Amount: 500},
				{ID: "e3", Amount: 700, Date: date(2025, 12, 24), Description: "late"},
			},
			Milestones: []domain.Milestone{
				{ID: "m1", Name: "Turnover", DueDate: date(2026, 1, 10)},
			},
		},
	}

	report, err := newTestAnalyzer(program).Predict(ctx, Input{ProgramID: "p1"})
	require.NoError(t, err)

	assert.True(t, hasIssue(issuesFor(report.Payload, "expense", "e1"), "amount", domain.SeverityHigh))
	assert.True(t, hasIssue(issuesFor(report.Payload, "expense", "e2"), "date", domain.SeverityMedium))
	assert.True(t, hasIssue(issuesFor(report.Payload, "expense", "e2"), "description", domain.SeverityLow))
	assert.True(t, hasIssue(issuesFor(report.Payload, "expense", "e3"), "date", domain.SeverityMedium))
	assert.True(t, hasIssue(issuesFor(report.Payload, "milestone", "m1"), "dueDate", domain.SeverityMedium))
}

func TestPredict_SectorConcentrationIsLow(t *testing.T) {
	ctx := context.Background()

	program := baseProgram()
	for _, id := range []string{"pr1", "pr2", "pr3", "pr4"} {
		program.Projects = append(program.Projects, domain.Project{
			ID: id, Name: "Works " + id, Sector: "Infrastructure", TotalCost: 25000,
			StartDate: date(2025, 1, 1), EndDate: date(2025, 12, 31),
			Expenses:   []domain.Expense{{ID: id + "-e", Amount: 1000, Date: date(2025, 5, 1), Description: "x"}},
			Milestones: []domain.Milestone{{ID: id + "-m", Name: "Phase", DueDate: date(2025, 6, 1)}},
		})
	}

	report, err := newTestAnalyzer(program).Predict(ctx, Input{ProgramID: "p1"})
	require.NoError(t, err)

	issues := issuesFor(report.Payload, "program", "p1")
	assert.True(t, hasIssue(issues, "projects", domain.SeverityLow))
}

func TestTrain_BumpsAndPersistsVersion(t *testing.T) {
	ctx := context.Background()
	state := blob.NewMemStore()
	a := NewAnalyzer(&stubExplorer{}, DefaultSettings(), state)

	before := a.Version()
	meta, err := a.Train(ctx, analysis.TrainingInput{Samples: 10})
	require.NoError(t, err)

	assert.Equal(t, before.Minor+1, meta.Version.Minor)
	assert.True(t, meta.Persistent)
	assert.False(t, meta.Applied)

	// A fresh analyzer restores the bumped version from the store.
	restored := NewAnalyzer(&stubExplorer{}, DefaultSettings(), state)
	require.NoError(t, restored.LoadState(ctx, ModelName))
	assert.Equal(t, meta.Version, restored.Version())
}
