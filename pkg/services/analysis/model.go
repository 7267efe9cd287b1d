// Package analysis defines the contract shared by the heuristic analyzers.
// Each analyzer is a stateless rule-based model: Predict computes a report
// from a snapshot, Train and Evaluate exist for interface uniformity only
// and must not be assumed to learn anything.
package analysis

import (
	"context"
	"time"

	"github.com/lgu-tools/aip-atlas/pkg/models/domain"
)

// TrainingInput carries optional labeled material for Train. Rule-based
// models ignore Samples and at most bump their version.
type TrainingInput struct {
	Samples int
	Notes   string
}

// TrainingMetadata describes the outcome of a Train call.
type TrainingMetadata struct {
	Model      string
	Version    domain.ModelVersion
	TrainedAt  time.Time
	Samples    int
	Applied    bool // false when training is a no-op for this model
	Persistent bool // true when the new version was written to the state store
}

type EvaluationInput struct {
	Samples int
}

// Evaluation holds static placeholder metrics; none of the analyzers run a
// real evaluation harness.
type Evaluation struct {
	Accuracy float64
	Metrics  map[string]float64
}

// Model is the capability contract every analyzer implements. I is the
// analyzer-specific input, P the report payload.
type Model[I any, P any] interface {
	Predict(ctx context.Context, input I) (*domain.Report[P], error)
	Train(ctx context.Context, input TrainingInput) (TrainingMetadata, error)
	Evaluate(ctx context.Context, input EvaluationInput) (Evaluation, error)
	Version() domain.ModelVersion
	SaveState(ctx context.Context, key string) error
	LoadState(ctx context.Context, key string) error
}
