package domain

import (
	"fmt"
	"time"
)

// ModelVersion identifies the revision of an analyzer's rule tables.
type ModelVersion struct {
	Major       int       `json:"major"`
	Minor       int       `json:"minor"`
	Patch       int       `json:"patch"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

func (v ModelVersion) String() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Report is the envelope every analyzer returns from Predict. Payload is
// analyzer-specific; the envelope itself is immutable once constructed.
type Report[P any] struct {
	ID          string
	Model       string
	Version     ModelVersion
	Confidence  float64
	GeneratedAt time.Time
	Execution   time.Duration
	Payload     P
}
