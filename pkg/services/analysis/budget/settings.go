package budget

// Settings contains the configurable tables and thresholds for budget
// allocation analysis. Defaults reflect barangay-level AIP practice.
type Settings struct {
	// HistoryLimit is the number of prior completed programs considered (default: 3)
	HistoryLimit int
	// MinimumShare is the floor applied to every sector before renormalization, in percent (default: 5.0)
	MinimumShare float64
	// DefaultWeight applies to sectors missing from SectorWeights (default: 0.7)
	DefaultWeight float64
	// DefaultEffectiveness applies to sectors with no historical projects (default: 0.7)
	DefaultEffectiveness float64
	// LowUtilization is the percent-utilized threshold below which the priority factor rises to 1.2 (default: 50)
	LowUtilization float64
	// HighUtilization is the percent-utilized threshold above which the priority factor drops to 0.8 (default: 80)
	HighUtilization float64
	// RebalanceDelta is the recommended-vs-current gap, in percentage points, worth calling out (default: 10)
	RebalanceDelta float64
	// SectorWeights maps sector labels to their static priority weight
	SectorWeights map[string]float64
	// SectorRationales maps sector labels to a one-line allocation rationale
	SectorRationales map[string]string
	// DefaultRationale covers sectors missing from SectorRationales
	DefaultRationale string
}

// DefaultSettings returns the default configuration for budget analysis.
func DefaultSettings() Settings {
	return Settings{
		HistoryLimit:         3,
		MinimumShare:         5.0,
		DefaultWeight:        0.7,
		DefaultEffectiveness: 0.7,
		LowUtilization:       50,
		HighUtilization:      80,
		RebalanceDelta:       10,
		SectorWeights: map[string]float64{
			"Infrastructure":          1.0,
			"Health":                  0.95,
			"Education":               0.9,
			"Disaster Risk Reduction": 0.9,
			"Social Services":         0.85,
			"Agriculture":             0.8,
			"Peace and Order":         0.8,
			"Environment":             0.75,
		},
		SectorRationales: map[string]string{
			"Infrastructure":          "Road, drainage and facility projects anchor basic service delivery.",
			"Health":                  "Health station operations and outreach programs serve the widest constituency.",
			"Education":               "Scholarship and learning support sustain long-term outcomes.",
			"Disaster Risk Reduction": "Preparedness spending is mandated and pays off disproportionately during calamities.",
			"Social Services":         "Assistance programs cover the most vulnerable households.",
			"Agriculture":             "Input subsidies and training raise smallholder productivity.",
			"Peace and Order":         "Tanod operations and streetlighting underpin community safety.",
			"Environment":             "Waste management and greening keep recurring sanitation costs down.",
		},
		DefaultRationale: "Allocation follows observed demand for this sector.",
	}
}
