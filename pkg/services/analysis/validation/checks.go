package validation

import (
	"fmt"

	"github.com/lgu-tools/aip-atlas/pkg/models/domain"
)

func (a *Analyzer) checkProgram(program *domain.InvestmentProgram) []domain.ValidationIssue {
	var issues []domain.ValidationIssue

	if program.Title == "" {
		issues = append(issues, domain.ValidationIssue{
			Field:      "title",
			Severity:   domain.SeverityHigh,
			Message:    "program title is empty",
			Suggestion: "Set a descriptive program title.",
		})
	}
	if program.TotalAmount <= 0 {
		issues = append(issues, domain.ValidationIssue{
			Field:      "totalAmount",
			Severity:   domain.SeverityHigh,
			Message:    "program total amount must be greater than zero",
			Suggestion: "Record the approved appropriation for the fiscal year.",
		})
	}
	if program.FiscalYear == 0 {
		issues = append(issues, domain.ValidationIssue{
			Field:      "fiscalYear",
			Severity:   domain.SeverityHigh,
			Message:    "fiscal year is missing",
			Suggestion: "Tag the program with its fiscal year.",
		})
	}

	if len(program.Projects) == 0 {
		issues = append(issues, domain.ValidationIssue{
			Field:    "projects",
			Severity: domain.SeverityMedium,
			Message:  "program has no projects",
		})
	}

	var projectCosts float64
	for _, p := range program.Projects {
		projectCosts += p.TotalCost
	}
	if program.TotalAmount > 0 && len(program.Projects) > 0 {
		if projectCosts > program.TotalAmount*(1+a.settings.OverAllocation) {
			issues = append(issues, domain.ValidationIssue{
				Field:    "totalAmount",
				Severity: domain.SeverityHigh,
				Message: fmt.Sprintf("project costs (%.2f) exceed the program budget (%.2f) by more than %.0f%%",
					projectCosts, program.TotalAmount, a.settings.OverAllocation*100),
				Suggestion: "Reduce project scopes or secure a supplemental budget.",
			})
		}
		if projectCosts < program.TotalAmount*a.settings.UnderAllocation {
			issues = append(issues, domain.ValidationIssue{
				Field:    "totalAmount",
				Severity: domain.SeverityMedium,
				Message: fmt.Sprintf("project costs (%.2f) cover less than %.0f%% of the program budget (%.2f)",
					projectCosts, a.settings.UnderAllocation*100, program.TotalAmount),
				Suggestion: "Program additional projects or realign the unappropriated balance.",
			})
		}
	}

	if len(program.Projects) >= a.settings.ConcentrationMinProjects {
		shared := true
		first := program.Projects[0].Sector
		for _, p := range program.Projects[1:] {
			if p.Sector != first {
				shared = false
				break
			}
		}
		if shared {
			issues = append(issues, domain.ValidationIssue{
				Field:      "projects",
				Severity:   domain.SeverityLow,
				Message:    fmt.Sprintf("all %d projects fall under a single sector", len(program.Projects)),
				Suggestion: "Consider spreading investments across sectors.",
			})
		}
	}

	return issues
}

func (a *Analyzer) checkProject(program *domain.InvestmentProgram, project domain.Project) []domain.ValidationIssue {
	var issues []domain.ValidationIssue

	if project.Name == "" {
		issues = append(issues, domain.ValidationIssue{
			Field:      "name",
			Severity:   domain.SeverityHigh,
			Message:    "project name is empty",
			Suggestion: "Set a descriptive project name.",
		})
	}
	if project.TotalCost <= 0 {
		issues = append(issues, domain.ValidationIssue{
			Field:    "totalCost",
			Severity: domain.SeverityHigh,
			Message:  "project total cost must be greater than zero",
		})
	}
	if project.Sector == "" {
		issues = append(issues, domain.ValidationIssue{
			Field:      "sector",
			Severity:   domain.SeverityMedium,
			Message:    "project has no sector",
			Suggestion: "Classify the project under an AIP sector.",
		})
	}

	if project.StartDate == nil {
		issues = append(issues, domain.ValidationIssue{
			Field:      "startDate",
			Severity:   domain.SeverityMedium,
			Message:    "project has no start date",
			Suggestion: "Set the planned implementation period.",
		})
	}
	if project.EndDate == nil {
		issues = append(issues, domain.ValidationIssue{
			Field:    "endDate",
			Severity: domain.SeverityMedium,
			Message:  "project has no end date",
		})
	}
	if project.StartDate != nil && project.EndDate != nil && project.EndDate.Before(*project.StartDate) {
		issues = append(issues, domain.ValidationIssue{
			Field:    "endDate",
			Severity: domain.SeverityHigh,
			Message:  "project end date is before its start date",
		})
	}

	// Fiscal-year bounds are only comparable when both sides carry dates.
	if program.StartDate != nil && project.StartDate != nil && project.StartDate.Before(*program.StartDate) {
		issues = append(issues, domain.ValidationIssue{
			Field:    "startDate",
			Severity: domain.SeverityMedium,
			Message:  "project starts before the program's fiscal year",
		})
	}
	if program.EndDate != nil && project.EndDate != nil && project.EndDate.After(*program.EndDate) {
		issues = append(issues, domain.ValidationIssue{
			Field:    "endDate",
			Severity: domain.SeverityMedium,
			Message:  "project ends after the program's fiscal year",
		})
	}

	if len(project.Expenses) == 0 {
		issues = append(issues, domain.ValidationIssue{
			Field:    "expenses",
			Severity: domain.SeverityLow,
			Message:  "project has no recorded expenses",
		})
	} else if project.TotalCost > 0 && project.TotalExpenses() > project.TotalCost*(1+a.settings.ExpenseOverrun) {
		issues = append(issues, domain.ValidationIssue{
			Field:    "expenses",
			Severity: domain.SeverityHigh,
			Message: fmt.Sprintf("expenses (%.2f) exceed the project cost (%.2f) by more than %.0f%%",
				project.TotalExpenses(), project.TotalCost, a.settings.ExpenseOverrun*100),
			Suggestion: "Review disbursements or file a change order.",
		})
	}

	if len(project.Milestones) == 0 {
		issues = append(issues, domain.ValidationIssue{
			Field:      "milestones",
			Severity:   domain.SeverityMedium,
			Message:    "project has no milestones",
			Suggestion: "Define checkpoints so progress can be tracked.",
		})
	}

	return issues
}

func (a *Analyzer) checkExpense(project domain.Project, expense domain.Expense) []domain.ValidationIssue {
	var issues []domain.ValidationIssue

	if expense.Amount <= 0 {
		issues = append(issues, domain.ValidationIssue{
			Field:    "amount",
			Severity: domain.SeverityHigh,
			Message:  "expense amount must be greater than zero",
		})
	}

	if expense.Date == nil {
		issues = append(issues, domain.ValidationIssue{
			Field:    "date",
			Severity: domain.SeverityMedium,
			Message:  "expense has no date",
		})
	} else if project.StartDate != nil && project.EndDate != nil {
		if expense.Date.Before(*project.StartDate) || expense.Date.After(*project.EndDate) {
			issues = append(issues, domain.ValidationIssue{
				Field:    "date",
				Severity: domain.SeverityMedium,
				Message:  "expense date falls outside the project period",
			})
		}
	}

	if expense.Description == "" {
		issues = append(issues, domain.ValidationIssue{
			Field:    "description",
			Severity: domain.SeverityLow,
			Message:  "expense has no description",
		})
	}

	return issues
}

func (a *Analyzer) checkMilestone(project domain.Project, milestone domain.Milestone) []domain.ValidationIssue {
	var issues []domain.ValidationIssue

	if milestone.Name == "" {
		issues = append(issues, domain.ValidationIssue{
			Field:    "name",
			Severity: domain.SeverityHigh,
			Message:  "milestone name is empty",
		})
	}

	if milestone.DueDate == nil {
		issues = append(issues, domain.ValidationIssue{
			Field:    "dueDate",
			Severity: domain.SeverityMedium,
			Message:  "milestone has no due date",
		})
	} else if project.StartDate != nil && project.EndDate != nil {
		if milestone.DueDate.Before(*project.StartDate) || milestone.DueDate.After(*project.EndDate) {
			issues = append(issues, domain.ValidationIssue{
				Field:    "dueDate",
				Severity: domain.SeverityMedium,
				Message:  "milestone due date falls outside the project period",
			})
		}
	}

	if milestone.Status == domain.MilestoneCompleted && milestone.CompletedAt == nil {
		issues = append(issues, domain.ValidationIssue{
			Field:      "completedAt",
			Severity:   domain.SeverityMedium,
			Message:    "milestone is marked completed but has no completion date",
			Suggestion: "Record when the milestone was actually completed.",
		})
	}
	if milestone.CompletedAt != nil && milestone.Status != domain.MilestoneCompleted {
		issues = append(issues, domain.ValidationIssue{
			Field:    "status",
			Severity: domain.SeverityMedium,
			Message:  "milestone has a completion date but is not marked completed",
		})
	}

	return issues
}
