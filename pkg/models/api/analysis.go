package api

import "time"

// Report carries the envelope fields shared by every analysis response.
type Report struct {
	ID              string    `json:"id"`
	Model           string    `json:"model"`
	Version         string    `json:"version"`
	Confidence      float64   `json:"confidence"`
	GeneratedAt     time.Time `json:"generatedAt"`
	ExecutionTimeMs int64     `json:"executionTimeMs"`
}

type SectorAllocation struct {
	Sector                string  `json:"sector"`
	RecommendedPercentage float64 `json:"recommendedPercentage"`
	RecommendedAmount     float64 `json:"recommendedAmount"`
	CurrentPercentage     float64 `json:"currentPercentage"`
	Reasoning             string  `json:"reasoning"`
}

type BudgetReport struct {
	Report
	ProgramID             string             `json:"programId"`
	TotalBudget           float64            `json:"totalBudget"`
	Allocations           []SectorAllocation `json:"allocations"`
	OverallRecommendation string             `json:"overallRecommendation"`
	HistoricalPrograms    int                `json:"historicalPrograms"`
}

type ValidationIssue struct {
	Field      string `json:"field"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

type ValidationResult struct {
	EntityType string            `json:"entityType"`
	EntityID   string            `json:"entityId"`
	IsValid    bool              `json:"isValid"`
	Issues     []ValidationIssue `json:"issues"`
}

type ValidationReport struct {
	Report
	ProgramID          string             `json:"programId"`
	ValidationResults  []ValidationResult `json:"validationResults"`
	TotalEntities      int                `json:"totalEntities"`
	ValidEntities      int                `json:"validEntities"`
	PercentValid       float64            `json:"percentValid"`
	CriticalIssueCount int                `json:"criticalIssueCount"`
}

type ExtractedEntity struct {
	Entity     string  `json:"entity"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
	Value      string  `json:"value"`
}

type KeyPhrase struct {
	Phrase     string  `json:"phrase"`
	Importance float64 `json:"importance"`
}

type Topic struct {
	Name      string  `json:"name"`
	Relevance float64 `json:"relevance"`
}

type DocumentAnalysis struct {
	DocumentID     string            `json:"documentId"`
	DocumentType   string            `json:"documentType"`
	Entities       []ExtractedEntity `json:"entities"`
	KeyPhrases     []KeyPhrase       `json:"keyPhrases"`
	Summary        string            `json:"summary"`
	Topics         []Topic           `json:"topics"`
	SentimentScore float64           `json:"sentimentScore"`
	WordCount      int               `json:"wordCount"`
}

type DocumentRecommendations struct {
	Classification   string   `json:"classification"`
	Tags             []string `json:"tags"`
	RelatedDocuments []string `json:"relatedDocuments"`
	ActionItems      []string `json:"actionItems"`
}

type DocumentReport struct {
	Report
	DocumentAnalysis DocumentAnalysis        `json:"documentAnalysis"`
	Recommendations  DocumentRecommendations `json:"recommendations"`
}

// DocumentRequest is the POST body for document analysis.
type DocumentRequest struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	ProjectID string `json:"projectId,omitempty"`
}

type ModelInfo struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

type Error struct {
	Error string `json:"error"`
}
