package document

import (
	"context"
	"strings"
	"testing"

	"github.com/lgu-tools/aip-atlas/pkg/models/domain"
	"github.com/lgu-tools/aip-atlas/pkg/services/analysis"
	"github.com/lgu-tools/aip-atlas/pkg/store/blob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(DefaultPatterns(), blob.NewMemStore())
	require.NoError(t, err)
	return a
}

const proposalText = `Project Proposal: Drainage Rehabilitation along Purok Masagana.
This proposal requests funding for the repair of the main drainage canal.
The objectives include reducing flood incidents during the rainy season.
The expected outcomes are fewer flooded households and lower cleanup costs.
The proposed budget allocation is ₱250,000.00 sourced from the development fund.
Implementation is proposed from March 3, 2025 to August 30, 2025.
Engr. Ramon Santos of the Municipal Engineering Office prepared the design.
The work plan covers excavation, lining and restoration of the road surface.
Beneficiaries include about 120 households in Barangay San Isidro.
Approval by the council is requested before the first quarter ends.`

func TestPredict_ClassifiesProposal(t *testing.T) {
	a := newTestAnalyzer(t)

	report, err := a.Predict(context.Background(), domain.DocumentInput{ID: "doc1", Content: proposalText})
	require.NoError(t, err)

	assert.Equal(t, "proposal", report.Payload.Analysis.DocumentType)
	assert.Equal(t, "Proposal", report.Payload.Recommendations.Classification)
	assert.Equal(t, 0.82, report.Confidence)
	assert.Equal(t, len(strings.Fields(proposalText)), report.Payload.Analysis.WordCount)
	assert.GreaterOrEqual(t, report.Execution.Nanoseconds(), int64(0))
}

func TestPredict_ExpectedOutcomesIsImportantPhrase(t *testing.T) {
	a := newTestAnalyzer(t)

	report, err := a.Predict(context.Background(), domain.DocumentInput{ID: "doc1", Content: proposalText})
	require.NoError(t, err)

	var found bool
	for _, kp := range report.Payload.Analysis.KeyPhrases {
		if strings.Contains(strings.ToLower(kp.Phrase), "expected outcomes") {
			found = true
			assert.Equal(t, 0.8, kp.Importance)
		}
	}
	assert.True(t, found, "expected a key phrase containing 'expected outcomes'")
	assert.LessOrEqual(t, len(report.Payload.Analysis.KeyPhrases), 10)
}

func TestPredict_NeutralSentimentWithoutLexiconTerms(t *testing.T) {
	a := newTestAnalyzer(t)

	report, err := a.Predict(context.Background(), domain.DocumentInput{
		ID:      "doc2",
		Content: "The canal runs along the eastern boundary. Water flows north during the wet season.",
	})
	require.NoError(t, err)

	assert.Equal(t, 0.5, report.Payload.Analysis.SentimentScore)
}

func TestPredict_SentimentBalance(t *testing.T) {
	a := newTestAnalyzer(t)

	positive, err := a.Predict(context.Background(), domain.DocumentInput{
		ID:      "doc3",
		Content: "The project was completed and the council approved the liquidation. Results were satisfactory.",
	})
	require.NoError(t, err)
	assert.Greater(t, positive.Payload.Analysis.SentimentScore, 0.5)

	negative, err := a.Predict(context.Background(), domain.DocumentInput{
		ID:      "doc4",
		Content: "The works were delayed and the inspection found the materials deficient. A complaint was filed.",
	})
	require.NoError(t, err)
	assert.Less(t, negative.Payload.Analysis.SentimentScore, 0.5)
}

func TestPredict_ExtractsAndNormalizesEntities(t *testing.T) {
	a := newTestAnalyzer(t)

	report, err := a.Predict(context.Background(), domain.DocumentInput{ID: "doc5", Content: proposalText})
	require.NoError(t, err)

	byType := make(map[string][]domain.ExtractedEntity)
	for _, e := range report.Payload.Analysis.Entities {
		byType[e.Type] = append(byType[e.Type], e)
	}

	require.NotEmpty(t, byType["amount"])
	var pesoAmount *domain.ExtractedEntity
	for i := range byType["amount"] {
		if strings.Contains(byType["amount"][i].Entity, "₱") {
			pesoAmount = &byType["amount"][i]
		}
	}
	require.NotNil(t, pesoAmount)
	assert.Equal(t, "250000.00", pesoAmount.Value)
	assert.InDelta(t, 0.85, pesoAmount.Confidence, 1e-9)

	require.NotEmpty(t, byType["date"])
	for _, e := range byType["date"] {
		assert.Equal(t, e.Entity, e.Value, "dates pass through unchanged")
		assert.LessOrEqual(t, e.Confidence, 0.95)
	}

	require.NotEmpty(t, byType["person"])
	assert.Contains(t, byType["person"][0].Entity, "Ramon Santos")

	require.NotEmpty(t, byType["location"])
	require.NotEmpty(t, byType["organization"])
}

func TestPredict_TopicsSortedByRelevance(t *testing.T) {
	a := newTestAnalyzer(t)

	report, err := a.Predict(context.Background(), domain.DocumentInput{ID: "doc6", Content: proposalText})
	require.NoError(t, err)

	topics := report.Payload.Analysis.Topics
	require.NotEmpty(t, topics)
	for i := 1; i < len(topics); i++ {
		assert.GreaterOrEqual(t, topics[i-1].Relevance, topics[i].Relevance)
	}
	for _, topic := range topics {
		assert.GreaterOrEqual(t, topic.Relevance, 0.3)
		assert.LessOrEqual(t, topic.Relevance, 0.95)
	}

	names := make([]string, 0, len(topics))
	for _, topic := range topics {
		names = append(names, topic.Name)
	}
	assert.Contains(t, names, "budget")
	assert.Contains(t, names, "infrastructure")
}

func TestPredict_SummaryKeepsOriginalOrder(t *testing.T) {
	a := newTestAnalyzer(t)

	report, err := a.Predict(context.Background(), domain.DocumentInput{ID: "doc7", Content: proposalText})
	require.NoError(t, err)

	summary := report.Payload.Analysis.Summary
	require.NotEmpty(t, summary)

	sentences := splitSentences(summary)
	assert.LessOrEqual(t, len(sentences), 3)

	// Selected sentences appear in their original relative order.
	var lastIndex = -1
	for _, s := range sentences {
		idx := strings.Index(proposalText, strings.TrimSuffix(s, "."))
		require.GreaterOrEqual(t, idx, 0, "summary sentence %q not found in source", s)
		assert.Greater(t, idx, lastIndex)
		lastIndex = idx
	}
}

func TestPredict_RecommendationsCarryTagsAndActionItems(t *testing.T) {
	a := newTestAnalyzer(t)

	report, err := a.Predict(context.Background(), domain.DocumentInput{
		ID:        "doc8",
		Content:   proposalText,
		ProjectID: "pr1",
	})
	require.NoError(t, err)

	rec := report.Payload.Recommendations
	assert.Equal(t, "Proposal", rec.Tags[0])
	assert.LessOrEqual(t, len(rec.Tags), 4) // classification + top 3 topics
	assert.Equal(t, []string{}, rec.RelatedDocuments)
	assert.Equal(t, DefaultPatterns().ActionItems["proposal"], rec.ActionItems)

	// With or without a project id, the list stays an empty slice so it
	// serializes as [] rather than null.
	report, err = a.Predict(context.Background(), domain.DocumentInput{ID: "doc8b", Content: proposalText})
	require.NoError(t, err)
	assert.Equal(t, []string{}, report.Payload.Recommendations.RelatedDocuments)
}

func TestPredict_UnknownTypeGetsGenericActionItems(t *testing.T) {
	a := newTestAnalyzer(t)

	report, err := a.Predict(context.Background(), domain.DocumentInput{
		ID:      "doc9",
		Content: "A short note about nothing in particular.",
	})
	require.NoError(t, err)

	assert.Equal(t, "other", report.Payload.Analysis.DocumentType)
	assert.Equal(t, DefaultPatterns().GenericActionItems, report.Payload.Recommendations.ActionItems)
}

func TestPredict_RejectsMissingInput(t *testing.T) {
	a := newTestAnalyzer(t)

	var validationErr *domain.ValidationError

	_, err := a.Predict(context.Background(), domain.DocumentInput{Content: "text"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "id", validationErr.Field)

	_, err = a.Predict(context.Background(), domain.DocumentInput{ID: "doc10"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "content", validationErr.Field)
}

func TestSaveLoadState_RoundTrip(t *testing.T) {
	ctx := context.Background()
	state := blob.NewMemStore()

	a, err := NewAnalyzer(DefaultPatterns(), state)
	require.NoError(t, err)

	_, err = a.Train(ctx, analysis.TrainingInput{Samples: 1}) // bumps minor, persists
	require.NoError(t, err)
	savedVersion := a.Version()

	restored, err := NewAnalyzer(Patterns{}, state)
	require.NoError(t, err)
	require.NoError(t, restored.LoadState(ctx, ModelName))

	assert.Equal(t, savedVersion, restored.Version())
	assert.Equal(t, a.patterns, restored.patterns)

	// The restored analyzer classifies with the loaded tables.
	report, err := restored.Predict(ctx, domain.DocumentInput{ID: "doc11", Content: proposalText})
	require.NoError(t, err)
	assert.Equal(t, "proposal", report.Payload.Analysis.DocumentType)
}
