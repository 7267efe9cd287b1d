package validation

// Settings contains the thresholds applied by the data validation analyzer.
type Settings struct {
	// OverAllocation is the fraction above totalAmount at which project
	// costs are flagged high; the boundary itself does not fire (default: 0.05)
	OverAllocation float64
	// UnderAllocation is the fraction of totalAmount below which project
	// costs are flagged medium; exactly at the boundary passes (default: 0.90)
	UnderAllocation float64
	// ExpenseOverrun is the fraction above a project's totalCost at which
	// its expenses are flagged high; the boundary itself does not fire (default: 0.10)
	ExpenseOverrun float64
	// ConcentrationMinProjects is the project count from which a single
	// shared sector is flagged as lack of diversification (default: 4)
	ConcentrationMinProjects int
}

// DefaultSettings returns the default thresholds for data validation.
func DefaultSettings() Settings {
	return Settings{
		OverAllocation:           0.05,
		UnderAllocation:          0.90,
		ExpenseOverrun:           0.10,
		ConcentrationMinProjects: 4,
	}
}
