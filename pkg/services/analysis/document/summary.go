package document

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var sentenceRe = regexp.MustCompile(`[^.!?\n]+[.!?]*`)

// splitSentences breaks the document body into trimmed sentences. Line
// breaks terminate a sentence even without punctuation.
func splitSentences(content string) []string {
	raw := sentenceRe.FindAllString(content, -1)
	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// buildSummary selects the highest-scoring min(3, ceil(15%)) sentences and
// rejoins them in their original order.
func (a *Analyzer) buildSummary(sentences []string, docType string) string {
	n := len(sentences)
	if n == 0 {
		return ""
	}

	take := int(math.Ceil(float64(n) * 0.15))
	if take > 3 {
		take = 3
	}
	if take < 1 {
		take = 1
	}

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, n)
	for i, sentence := range sentences {
		ranked[i] = scored{index: i, score: a.scoreSentence(sentence, i, n, docType)}
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	picked := ranked[:take]
	sort.Slice(picked, func(i, j int) bool { return picked[i].index < picked[j].index })

	parts := make([]string, 0, take)
	for _, s := range picked {
		sentence := sentences[s.index]
		if !strings.HasSuffix(sentence, ".") && !strings.HasSuffix(sentence, "!") && !strings.HasSuffix(sentence, "?") {
			sentence += "."
		}
		parts = append(parts, sentence)
	}
	return strings.Join(parts, " ")
}

// scoreSentence weighs position, length, topic keywords, type keywords and
// importance indicators.
func (a *Analyzer) scoreSentence(sentence string, index, total int, docType string) float64 {
	var score float64

	switch index {
	case 0:
		score += 0.3
	case 1:
		score += 0.1
	}
	if total > 1 && index == total-1 {
		score += 0.2
	}

	words := len(strings.Fields(sentence))
	if words >= 5 && words <= 30 {
		score += 0.2
	} else {
		score -= 0.1
	}

	var topicHits int
	for _, keywords := range a.compiled.topics {
		_, hits := countMatches(keywords, sentence)
		topicHits += hits
	}
	score += math.Min(0.3, 0.1*float64(topicHits))

	if keywords, ok := a.compiled.typeKeywords[docType]; ok {
		_, hits := countMatches(keywords, sentence)
		score += math.Min(0.2, 0.1*float64(hits))
	}

	lower := strings.ToLower(sentence)
	for _, indicator := range a.patterns.ImportanceIndicators {
		if strings.Contains(lower, indicator) {
			score += 0.3
			break
		}
	}

	return score
}
