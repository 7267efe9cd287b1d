package domain

// SectorAllocation is one row of a budget recommendation, covering a single
// sector of the analyzed program.
type SectorAllocation struct {
	Sector                string
	RecommendedPercentage float64
	RecommendedAmount     float64
	CurrentPercentage     float64
	Reasoning             string
}

// BudgetAdvice is the payload of a budget allocation report. Allocations are
// sorted by recommended percentage, descending, and sum to 100.
type BudgetAdvice struct {
	ProgramID             string
	TotalBudget           float64
	Allocations           []SectorAllocation
	OverallRecommendation string
	HistoricalPrograms    int
}
