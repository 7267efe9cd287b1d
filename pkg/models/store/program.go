package store

import "time"

// Flat persistence records for the program graph. Mapping to domain
// snapshots happens in pkg/adapters.

type ProgramRecord struct {
	ID          string
	Title       string
	Status      string
	TotalAmount float64
	FiscalYear  int
	StartDate   *time.Time
	EndDate     *time.Time
}

type ProjectRecord struct {
	ID        string
	ProgramID string
	Name      string
	Sector    string
	TotalCost float64
	Progress  float64
	StartDate *time.Time
	EndDate   *time.Time
}

type ExpenseRecord struct {
	ID          string
	ProjectID   string
	Amount      float64
	Date        *time.Time
	Description string
}

type MilestoneRecord struct {
	ID          string
	ProjectID   string
	Name        string
	Status      string
	DueDate     *time.Time
	CompletedAt *time.Time
}

// ProgramGraph bundles one program with all of its child records.
type ProgramGraph struct {
	Program    ProgramRecord
	Projects   []ProjectRecord
	Expenses   []ExpenseRecord
	Milestones []MilestoneRecord
}
