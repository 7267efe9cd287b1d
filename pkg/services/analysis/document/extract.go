package document

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/lgu-tools/aip-atlas/pkg/models/domain"
)

const (
	entityBaseConfidence = 0.7
	entityMaxConfidence  = 0.95
)

type compiledRule struct {
	entityType string
	re         *regexp.Regexp
}

// compiled holds the regex battery built from a Patterns table. Keywords are
// matched case-insensitively on word boundaries.
type compiled struct {
	entityRules  []compiledRule
	typeKeywords map[string][]*regexp.Regexp
	topics       map[string][]*regexp.Regexp
	positive     []*regexp.Regexp
	negative     []*regexp.Regexp
}

func compilePatterns(p Patterns) (*compiled, error) {
	c := &compiled{
		typeKeywords: make(map[string][]*regexp.Regexp, len(p.DocumentTypes)),
		topics:       make(map[string][]*regexp.Regexp, len(p.Topics)),
	}

	for _, rule := range p.EntityRules {
		re, err := regexp.Compile(rule.Expr)
		if err != nil {
			return nil, fmt.Errorf("compile entity rule %q: %w", rule.Type, err)
		}
		c.entityRules = append(c.entityRules, compiledRule{entityType: rule.Type, re: re})
	}

	for docType, keywords := range p.DocumentTypes {
		res, err := compileKeywords(keywords)
		if err != nil {
			return nil, fmt.Errorf("compile %q keywords: %w", docType, err)
		}
		c.typeKeywords[docType] = res
	}

	for topic, keywords := range p.Topics {
		res, err := compileKeywords(keywords)
		if err != nil {
			return nil, fmt.Errorf("compile topic %q keywords: %w", topic, err)
		}
		c.topics[topic] = res
	}

	var err error
	if c.positive, err = compileKeywords(p.PositiveTerms); err != nil {
		return nil, fmt.Errorf("compile positive terms: %w", err)
	}
	if c.negative, err = compileKeywords(p.NegativeTerms); err != nil {
		return nil, fmt.Errorf("compile negative terms: %w", err)
	}

	return c, nil
}

func compileKeywords(keywords []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(keywords))
	for _, kw := range keywords {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
		if err != nil {
			return nil, err
		}
		res = append(res, re)
	}
	return res, nil
}

func countMatches(res []*regexp.Regexp, content string) (distinct, total int) {
	for _, re := range res {
		n := len(re.FindAllStringIndex(content, -1))
		if n > 0 {
			distinct++
			total += n
		}
	}
	return distinct, total
}

// classify picks the document type with the highest keyword match count,
// or "other" when nothing matches. Ties resolve to the lexicographically
// first type so repeated runs stay deterministic.
func (c *compiled) classify(content string) string {
	types := make([]string, 0, len(c.typeKeywords))
	for t := range c.typeKeywords {
		types = append(types, t)
	}
	sort.Strings(types)

	best, bestScore := "other", 0
	for _, t := range types {
		_, total := countMatches(c.typeKeywords[t], content)
		if total > bestScore {
			best, bestScore = t, total
		}
	}
	return best
}

func (c *compiled) extractEntities(content string) []domain.ExtractedEntity {
	var entities []domain.ExtractedEntity
	for _, rule := range c.entityRules {
		for _, match := range rule.re.FindAllString(content, -1) {
			entities = append(entities, domain.ExtractedEntity{
				Entity:     match,
				Type:       rule.entityType,
				Confidence: entityConfidence(rule.entityType, match),
				Value:      normalizeEntity(rule.entityType, match),
			})
		}
	}
	return entities
}

func entityConfidence(entityType, match string) float64 {
	conf := entityBaseConfidence
	switch entityType {
	case "amount":
		if strings.ContainsAny(match, "₱") || strings.Contains(strings.ToUpper(match), "PHP") {
			conf += 0.15
		}
	case "date":
		if len(match) > 10 {
			conf += 0.1
		}
	default:
		if len(strings.Fields(match)) >= 3 {
			conf += 0.1
		}
	}
	if conf > entityMaxConfidence {
		conf = entityMaxConfidence
	}
	return conf
}

// normalizeEntity strips currency markers and separators from amounts; every
// other entity kind passes through unchanged.
func normalizeEntity(entityType, match string) string {
	if entityType != "amount" {
		return match
	}
	value := match
	for _, marker := range []string{"₱", "PHP", "Php", "php"} {
		value = strings.ReplaceAll(value, marker, "")
	}
	value = strings.ReplaceAll(value, ",", "")
	return strings.TrimSpace(value)
}

func (a *Analyzer) extractKeyPhrases(sentences []string) []domain.KeyPhrase {
	phrases := make([]domain.KeyPhrase, 0, len(sentences))
	for _, sentence := range sentences {
		phrases = append(phrases, domain.KeyPhrase{
			Phrase:     sentence,
			Importance: a.phraseImportance(sentence),
		})
	}

	sort.SliceStable(phrases, func(i, j int) bool {
		return phrases[i].Importance > phrases[j].Importance
	})
	if len(phrases) > 10 {
		phrases = phrases[:10]
	}
	return phrases
}

func (a *Analyzer) phraseImportance(sentence string) float64 {
	lower := strings.ToLower(sentence)
	for _, indicator := range a.patterns.ImportanceIndicators {
		if strings.Contains(lower, indicator) {
			return 0.8
		}
	}

	importance := 0.4
	if hasCapitalOrDigit(sentence) {
		importance = 0.5
	}

	words := len(strings.Fields(sentence))
	switch {
	case words < 5:
		importance -= 0.2
	case words <= 25 && words >= 8:
		importance += 0.1
	case words > 30:
		importance -= 0.1
	}

	for _, term := range a.patterns.FinancialTerms {
		if strings.Contains(lower, term) {
			importance += 0.2
			break
		}
	}

	return clamp(importance, 0.3, 0.9)
}

func (c *compiled) identifyTopics(content string) []domain.Topic {
	var topics []domain.Topic
	for name, keywords := range c.topics {
		distinct, total := countMatches(keywords, content)
		if distinct == 0 {
			continue
		}
		coverage := float64(distinct) / float64(len(keywords))
		relevance := 0.3 + coverage*0.4 + float64(total)/50*0.3
		if relevance > 0.95 {
			relevance = 0.95
		}
		topics = append(topics, domain.Topic{Name: name, Relevance: relevance})
	}

	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Relevance != topics[j].Relevance {
			return topics[i].Relevance > topics[j].Relevance
		}
		return topics[i].Name < topics[j].Name
	})
	return topics
}

// sentimentScore is 0.5 (neutral) when no lexicon terms occur, otherwise
// shifted by the balance of positive and negative hits.
func (c *compiled) sentimentScore(content string) float64 {
	_, positive := countMatches(c.positive, content)
	_, negative := countMatches(c.negative, content)

	if positive+negative == 0 {
		return 0.5
	}
	score := 0.5 + float64(positive-negative)/(2*float64(positive+negative))
	return clamp(score, 0, 1)
}

func hasCapitalOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
