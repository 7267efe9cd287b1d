package domain

// DocumentInput is the raw material for a document intelligence run.
// ProjectID is optional and only used to relate the document to a project.
type DocumentInput struct {
	ID        string
	Content   string
	ProjectID string
}

// ExtractedEntity is a single pattern match found in the document body.
// Value holds the normalized form (amounts with currency markers stripped);
// for other entity kinds it repeats the matched text.
type ExtractedEntity struct {
	Entity     string
	Type       string
	Confidence float64
	Value      string
}

// KeyPhrase is a sentence judged important, scored in [0.3, 0.9] with a
// fixed 0.8 for sentences carrying a known importance indicator.
type KeyPhrase struct {
	Phrase     string
	Importance float64
}

// Topic is a thematic category matched in the document with its relevance.
type Topic struct {
	Name      string
	Relevance float64
}

// DocumentAnalysis is the core payload of a document intelligence report.
type DocumentAnalysis struct {
	DocumentID     string
	DocumentType   string
	Entities       []ExtractedEntity
	KeyPhrases     []KeyPhrase
	Summary        string
	Topics         []Topic
	SentimentScore float64
	WordCount      int
}

// DocumentRecommendations carries the actionable half of a document report.
// RelatedDocuments stays empty until cross-document lookup lands.
type DocumentRecommendations struct {
	Classification   string
	Tags             []string
	RelatedDocuments []string
	ActionItems      []string
}

// DocumentReport bundles analysis and recommendations for one document.
type DocumentReport struct {
	Analysis        DocumentAnalysis
	Recommendations DocumentRecommendations
}
