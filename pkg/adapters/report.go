package adapters

import (
	"github.com/lgu-tools/aip-atlas/pkg/models/api"
	"github.com/lgu-tools/aip-atlas/pkg/models/domain"
)

func mapReportEnvelope[P any](r *domain.Report[P]) api.Report {
	return api.Report{
		ID:              r.ID,
		Model:           r.Model,
		Version:         r.Version.String(),
		Confidence:      r.Confidence,
		GeneratedAt:     r.GeneratedAt,
		ExecutionTimeMs: r.Execution.Milliseconds(),
	}
}

func MapBudgetReportDomainToApi(r *domain.Report[domain.BudgetAdvice]) api.BudgetReport {
	out := api.BudgetReport{
		Report:                mapReportEnvelope(r),
		ProgramID:             r.Payload.ProgramID,
		TotalBudget:           r.Payload.TotalBudget,
		Allocations:           make([]api.SectorAllocation, 0, len(r.Payload.Allocations)),
		OverallRecommendation: r.Payload.OverallRecommendation,
		HistoricalPrograms:    r.Payload.HistoricalPrograms,
	}
	for _, a := range r.Payload.Allocations {
		out.Allocations = append(out.Allocations, api.SectorAllocation{
			Sector:                a.Sector,
			RecommendedPercentage: a.RecommendedPercentage,
			RecommendedAmount:     a.RecommendedAmount,
			CurrentPercentage:     a.CurrentPercentage,
			Reasoning:             a.Reasoning,
		})
	}
	return out
}

func MapValidationReportDomainToApi(r *domain.Report[domain.ValidationSummary]) api.ValidationReport {
	out := api.ValidationReport{
		Report:             mapReportEnvelope(r),
		ProgramID:          r.Payload.ProgramID,
		ValidationResults:  make([]api.ValidationResult, 0, len(r.Payload.Results)),
		TotalEntities:      r.Payload.TotalEntities,
		ValidEntities:      r.Payload.ValidEntities,
		PercentValid:       r.Payload.PercentValid,
		CriticalIssueCount: r.Payload.CriticalIssueCount,
	}
	for _, res := range r.Payload.Results {
		issues := make([]api.ValidationIssue, 0, len(res.Issues))
		for _, issue := range res.Issues {
			issues = append(issues, api.ValidationIssue{
				Field:      issue.Field,
				Severity:   issue.Severity.String(),
				Message:    issue.Message,
				Suggestion: issue.Suggestion,
			})
		}
		out.ValidationResults = append(out.ValidationResults, api.ValidationResult{
			EntityType: res.EntityType,
			EntityID:   res.EntityID,
			IsValid:    res.Valid,
			Issues:     issues,
		})
	}
	return out
}

func MapDocumentReportDomainToApi(r *domain.Report[domain.DocumentReport]) api.DocumentReport {
	analysis := r.Payload.Analysis

	out := api.DocumentReport{
		Report: mapReportEnvelope(r),
		DocumentAnalysis: api.DocumentAnalysis{
			DocumentID:     analysis.DocumentID,
			DocumentType:   analysis.DocumentType,
			Entities:       make([]api.ExtractedEntity, 0, len(analysis.Entities)),
			KeyPhrases:     make([]api.KeyPhrase, 0, len(analysis.KeyPhrases)),
			Summary:        analysis.Summary,
			Topics:         make([]api.Topic, 0, len(analysis.Topics)),
			SentimentScore: analysis.SentimentScore,
			WordCount:      analysis.WordCount,
		},
		Recommendations: api.DocumentRecommendations{
			Classification:   r.Payload.Recommendations.Classification,
			Tags:             r.Payload.Recommendations.Tags,
			RelatedDocuments: r.Payload.Recommendations.RelatedDocuments,
			ActionItems:      r.Payload.Recommendations.ActionItems,
		},
	}

	for _, e := range analysis.Entities {
		out.DocumentAnalysis.Entities = append(out.DocumentAnalysis.Entities, api.ExtractedEntity{
			Entity:     e.Entity,
			Type:       e.Type,
			Confidence: e.Confidence,
			Value:      e.Value,
		})
	}
	for _, kp := range analysis.KeyPhrases {
		out.DocumentAnalysis.KeyPhrases = append(out.DocumentAnalysis.KeyPhrases, api.KeyPhrase{
			Phrase:     kp.Phrase,
			Importance: kp.Importance,
		})
	}
	for _, t := range analysis.Topics {
		out.DocumentAnalysis.Topics = append(out.DocumentAnalysis.Topics, api.Topic{
			Name:      t.Name,
			Relevance: t.Relevance,
		})
	}

	return out
}
