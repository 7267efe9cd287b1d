// Package document implements the document intelligence analyzer: rule-based
// classification, entity and key-phrase extraction, extractive summarization,
// topic identification and sentiment scoring for free-text documents.
package document

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lgu-tools/aip-atlas/pkg/models/domain"
	"github.com/lgu-tools/aip-atlas/pkg/services/analysis"
	"github.com/lgu-tools/aip-atlas/pkg/store/blob"
	"github.com/rs/zerolog"
)

const (
	ModelName  = "document-intelligence"
	confidence = 0.82
)

type Analyzer struct {
	patterns Patterns
	compiled *compiled
	state    blob.Store
	version  domain.ModelVersion
}

var _ analysis.Model[domain.DocumentInput, domain.DocumentReport] = (*Analyzer)(nil)

func NewAnalyzer(patterns Patterns, state blob.Store) (*Analyzer, error) {
	compiled, err := compilePatterns(patterns)
	if err != nil {
		return nil, err
	}
	return &Analyzer{
		patterns: patterns,
		compiled: compiled,
		state:    state,
		version: domain.ModelVersion{
			Major:       1,
			Minor:       0,
			Patch:       0,
			Timestamp:   time.Now().UTC(),
			Description: "keyword and regex based document classification and extraction",
		},
	}, nil
}

func (a *Analyzer) Predict(ctx context.Context, input domain.DocumentInput) (*domain.Report[domain.DocumentReport], error) {
	logger := zerolog.Ctx(ctx)
	started := time.Now()

	if err := validateInput(input); err != nil {
		logger.Error().
			Err(err).
			Str("model", ModelName).
			Str("op", "predict").
			Str("document_id", input.ID).
			Msg("document analysis rejected")
		return nil, err
	}

	docType := a.compiled.classify(input.Content)
	sentences := splitSentences(input.Content)

	payload := domain.DocumentReport{
		Analysis: domain.DocumentAnalysis{
			DocumentID:     input.ID,
			DocumentType:   docType,
			Entities:       a.compiled.extractEntities(input.Content),
			KeyPhrases:     a.extractKeyPhrases(sentences),
			Summary:        a.buildSummary(sentences, docType),
			Topics:         a.compiled.identifyTopics(input.Content),
			SentimentScore: a.compiled.sentimentScore(input.Content),
			WordCount:      len(strings.Fields(input.Content)),
		},
	}
	payload.Recommendations = a.recommend(docType, payload.Analysis.Topics)

	return &domain.Report[domain.DocumentReport]{
		ID:          uuid.NewString(),
		Model:       ModelName,
		Version:     a.version,
		Confidence:  confidence,
		GeneratedAt: time.Now().UTC(),
		Execution:   time.Since(started),
		Payload:     payload,
	}, nil
}

func validateInput(input domain.DocumentInput) error {
	if strings.TrimSpace(input.ID) == "" {
		return &domain.ValidationError{Field: "id", Message: "document id is required"}
	}
	if strings.TrimSpace(input.Content) == "" {
		return &domain.ValidationError{Field: "content", Message: "document content is required"}
	}
	return nil
}

// recommend derives tags and a review checklist from the classification.
// Cross-document lookup is not implemented, so RelatedDocuments is always an
// empty list, never null on the wire.
func (a *Analyzer) recommend(docType string, topics []domain.Topic) domain.DocumentRecommendations {
	rec := domain.DocumentRecommendations{
		Classification:   capitalize(docType),
		Tags:             []string{capitalize(docType)},
		RelatedDocuments: []string{},
	}

	for i, topic := range topics {
		if i == 3 {
			break
		}
		rec.Tags = append(rec.Tags, capitalize(topic.Name))
	}

	items, ok := a.patterns.ActionItems[docType]
	if !ok {
		items = a.patterns.GenericActionItems
	}
	rec.ActionItems = append(rec.ActionItems, items...)

	return rec
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Train bumps the minor version and persists the state; the pattern tables
// themselves never change from training.
func (a *Analyzer) Train(ctx context.Context, input analysis.TrainingInput) (analysis.TrainingMetadata, error) {
	a.version.Minor++
	a.version.Timestamp = time.Now().UTC()

	persisted := false
	if err := a.SaveState(ctx, ModelName); err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("model", ModelName).
			Msg("failed to persist model state after training")
	} else {
		persisted = true
	}

	return analysis.TrainingMetadata{
		Model:      ModelName,
		Version:    a.version,
		TrainedAt:  a.version.Timestamp,
		Samples:    input.Samples,
		Applied:    false,
		Persistent: persisted,
	}, nil
}

// Evaluate returns static placeholder metrics.
func (a *Analyzer) Evaluate(_ context.Context, _ analysis.EvaluationInput) (analysis.Evaluation, error) {
	return analysis.Evaluation{
		Accuracy: 0.82,
		Metrics: map[string]float64{
			"precision": 0.8,
			"recall":    0.84,
		},
	}, nil
}

func (a *Analyzer) Version() domain.ModelVersion { return a.version }

type persistedState struct {
	Version  domain.ModelVersion `json:"version"`
	Patterns Patterns            `json:"patterns"`
}

func (a *Analyzer) SaveState(ctx context.Context, key string) error {
	if key == "" {
		key = ModelName
	}
	data, err := json.MarshalIndent(persistedState{Version: a.version, Patterns: a.patterns}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model state: %w", err)
	}
	return a.state.Put(ctx, key, data)
}

// LoadState restores the version and pattern tables from the state store and
// recompiles the regex battery.
func (a *Analyzer) LoadState(ctx context.Context, key string) error {
	if key == "" {
		key = ModelName
	}
	data, err := a.state.Get(ctx, key)
	if err != nil {
		return err
	}
	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("unmarshal model state: %w", err)
	}
	compiled, err := compilePatterns(state.Patterns)
	if err != nil {
		return fmt.Errorf("recompile patterns: %w", err)
	}
	a.version = state.Version
	a.patterns = state.Patterns
	a.compiled = compiled
	return nil
}
