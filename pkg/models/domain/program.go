package domain

import "time"

// ProgramStatus tracks the lifecycle of an investment program. Analyzers
// only consume snapshots; transitions happen in the owning data layer.
type ProgramStatus string

const (
	ProgramDraft     ProgramStatus = "DRAFT"
	ProgramApproved  ProgramStatus = "APPROVED"
	ProgramCompleted ProgramStatus = "COMPLETED"
)

const MilestoneCompleted = "COMPLETED"

// InvestmentProgram is a point-in-time snapshot of an annual investment
// program and its full project graph.
type InvestmentProgram struct {
	ID          string
	Title       string
	Status      ProgramStatus
	TotalAmount float64
	FiscalYear  int
	StartDate   *time.Time
	EndDate     *time.Time
	Projects    []Project
}

// Project is a funded line item within a program. Sector is a free-text
// label; an empty value is treated as "Uncategorized" by the analyzers.
type Project struct {
	ID         string
	Name       string
	Sector     string
	TotalCost  float64
	StartDate  *time.Time
	EndDate    *time.Time
	Progress   float64 // 0-100
	Expenses   []Expense
	Milestones []Milestone
}

type Expense struct {
	ID          string
	Amount      float64
	Date        *time.Time
	Description string
}

type Milestone struct {
	ID          string
	Name        string
	DueDate     *time.Time
	Status      string
	CompletedAt *time.Time
}

// TotalExpenses sums the recorded expenses of a project.
func (p Project) TotalExpenses() float64 {
	var total float64
	for _, e := range p.Expenses {
		total += e.Amount
	}
	return total
}
