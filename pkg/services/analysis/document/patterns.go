package document

// EntityRule is a named extraction pattern. Expr is kept as source text so
// the whole table can round-trip through the state store.
type EntityRule struct {
	Type string `json:"type"`
	Expr string `json:"expr"`
}

// Patterns holds every lookup table the document analyzer matches against.
// The tables are injected at construction and treated as immutable; Train
// never modifies them.
type Patterns struct {
	DocumentTypes        map[string][]string `json:"documentTypes"`
	EntityRules          []EntityRule        `json:"entityRules"`
	ImportanceIndicators []string            `json:"importanceIndicators"`
	Topics               map[string][]string `json:"topics"`
	FinancialTerms       []string            `json:"financialTerms"`
	PositiveTerms        []string            `json:"positiveTerms"`
	NegativeTerms        []string            `json:"negativeTerms"`
	ActionItems          map[string][]string `json:"actionItems"`
	GenericActionItems   []string            `json:"genericActionItems"`
}

// DefaultPatterns returns the built-in rule tables, tuned for barangay
// administrative documents.
func DefaultPatterns() Patterns {
	return Patterns{
		DocumentTypes: map[string][]string{
			"proposal": {
				"proposal", "proposed", "objectives", "implementation",
				"beneficiaries", "funding request", "rationale", "work plan",
			},
			"report": {
				"report", "accomplishment", "summary", "findings",
				"status", "period covered", "highlights", "quarterly",
			},
			"financial": {
				"budget", "disbursement", "expenditure", "allocation",
				"liquidation", "appropriation", "voucher", "obligation",
			},
			"contract": {
				"contract", "agreement", "contractor", "terms and conditions",
				"party", "obligations", "witnesseth", "notarized",
			},
			"technical": {
				"specifications", "engineering", "design", "materials",
				"bill of quantities", "drawings", "construction", "survey",
			},
			"administrative": {
				"memorandum", "resolution", "ordinance", "directive",
				"office order", "circular", "minutes", "endorsement",
			},
		},
		EntityRules: []EntityRule{
			{
				Type: "date",
				Expr: `(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4}\b|\b\d{4}-\d{2}-\d{2}\b|\b\d{1,2}/\d{1,2}/\d{2,4}\b`,
			},
			{
				Type: "amount",
				Expr: `(?:₱|PHP|Php)\s?\d[\d,]*(?:\.\d{1,2})?|\b\d{1,3}(?:,\d{3})+(?:\.\d{2})?\b`,
			},
			{
				Type: "person",
				Expr: `\b(?:Mr|Mrs|Ms|Dr|Engr|Atty|Hon|Kap)\.?\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*`,
			},
			{
				Type: "organization",
				Expr: `\b[A-Z][A-Za-z]+(?:\s+(?:of|and|the|[A-Z][A-Za-z]+))*\s+(?:Office|Department|Council|Committee|Association|Cooperative|Corporation|Agency|Bureau)\b`,
			},
			{
				Type: "location",
				Expr: `\b(?:Barangay|Purok|Sitio|Municipality of|City of)\s+[A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)*`,
			},
		},
		ImportanceIndicators: []string{
			"objectives", "timeline", "budget allocation", "expected outcomes",
			"deliverables", "scope of work", "key findings", "recommendation",
			"action required", "deadline", "approval", "requirements",
			"milestones", "risk", "priority", "implementation plan",
			"evaluation criteria",
		},
		Topics: map[string][]string{
			"budget": {
				"budget", "fund", "allocation", "cost", "expense",
				"disbursement", "appropriation", "peso",
			},
			"infrastructure": {
				"road", "drainage", "construction", "repair", "pavement",
				"building", "facility", "streetlight",
			},
			"health": {
				"health", "medical", "clinic", "vaccination", "nutrition",
				"sanitation", "feeding", "medicine",
			},
			"education": {
				"school", "education", "scholarship", "training", "learning",
				"students", "literacy",
			},
			"governance": {
				"resolution", "ordinance", "council", "session", "compliance",
				"audit", "transparency", "barangay assembly",
			},
			"environment": {
				"waste", "garbage", "tree", "cleanup", "flood", "river",
				"segregation", "greening",
			},
			"social services": {
				"assistance", "livelihood", "senior citizens", "youth",
				"indigent", "relief", "welfare", "pwd",
			},
		},
		FinancialTerms: []string{
			"budget", "cost", "fund", "amount", "peso", "php", "₱",
			"expense", "disbursement",
		},
		PositiveTerms: []string{
			"approved", "completed", "successful", "improved", "achieved",
			"efficient", "commendable", "resolved", "satisfactory", "timely",
			"progress", "exceeded",
		},
		NegativeTerms: []string{
			"delayed", "failed", "overrun", "deficient", "rejected",
			"incomplete", "problem", "complaint", "lacking", "unresolved",
			"violation", "shortfall",
		},
		ActionItems: map[string][]string{
			"proposal": {
				"Review the stated objectives against the barangay development plan",
				"Verify the funding request against available appropriations",
				"Confirm the list of beneficiaries with the records office",
				"Check the proposed timeline for conflicts with ongoing projects",
				"Route for committee endorsement before council deliberation",
			},
			"report": {
				"Compare reported accomplishments with the project milestones",
				"Verify reported disbursements against the expense ledger",
				"Flag unresolved findings for the next session agenda",
				"File the report under the covered period",
				"Circulate highlights to the council members",
			},
			"financial": {
				"Reconcile the figures with the treasury records",
				"Check supporting vouchers for each disbursement",
				"Verify signatories and approval dates",
				"Confirm the allocation falls within the approved budget",
				"Forward to the audit focal person for review",
			},
			"contract": {
				"Verify the contractor's eligibility documents",
				"Check the contract amount against the approved budget",
				"Confirm notarization and witness signatures",
				"Review the terms for liquidated damages provisions",
				"Register the contract with the records office",
			},
			"technical": {
				"Have the specifications reviewed by the municipal engineer",
				"Check the bill of quantities against prevailing unit costs",
				"Verify site survey data against the project location",
				"Confirm the design complies with accessibility standards",
				"Attach the drawings to the project file",
			},
		},
		GenericActionItems: []string{
			"Review the document for completeness",
			"Identify the responsible office and route accordingly",
			"File under the appropriate records series",
			"Follow up on any stated deadlines",
		},
	}
}
