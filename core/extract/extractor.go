package extract

import (
	"regexp"
	"sort"
	"strings"
)

// ExtractFunc turns raw passage text into candidate entities and ranked
// keywords. Implementations must be deterministic for identical input.
type ExtractFunc func(text string) (entities []string, keywords []string)

const (
	maxEntities = 10
	maxKeywords = 15
)

// companyPattern matches capitalized multi-word sequences, optionally
// suffixed with a corporate designator. The trailing group stands in for a
// lookahead: a candidate only counts when followed by whitespace,
// punctuation or end of text, so mixed-case tokens like "OpenAI" are not
// split into a capitalized prefix.
var companyPattern = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*(?:\s+(?:Inc|Corp|Ltd|LLC|Co)\.?)?)(?:[\s.,;]|$)`)

// techTerms is a fixed vocabulary of technology acronyms matched
// case-insensitively against the text
var techTerms = []string{"AI", "ML", "API", "LLM", "GPT", "blockchain", "cryptocurrency", "fintech", "SaaS"}

var keywordPattern = regexp.MustCompile(`\b[a-zA-Z]{4,}\b`)

var stopWords = map[string]bool{
	"this": true, "that": true, "with": true, "have": true, "will": true,
	"from": true, "they": true, "been": true, "were": true, "said": true,
	"each": true, "which": true, "their": true, "time": true, "more": true,
	"very": true, "what": true, "know": true, "just": true, "first": true,
	"into": true, "over": true, "think": true, "also": true, "your": true,
	"work": true, "life": true, "only": true, "still": true, "should": true,
	"after": true, "being": true, "made": true, "before": true, "here": true,
	"through": true, "when": true, "where": true, "much": true, "some": true,
	"these": true, "many": true, "would": true, "there": true,
}

// HeuristicExtractor returns the default extractor. There is no model behind
// it: entities come from a capitalization pattern plus a fixed technology
// vocabulary, keywords from stop-word-filtered frequency ranking.
func HeuristicExtractor() ExtractFunc {
	return func(text string) ([]string, []string) {
		if text == "" {
			return nil, nil
		}
		return ExtractEntities(text), ExtractKeywords(text)
	}
}

// ExtractEntities detects candidate entities in text, deduplicated and
// truncated to 10
func ExtractEntities(text string) []string {
	if text == "" {
		return nil
	}

	var entities []string
	for _, match := range companyPattern.FindAllStringSubmatch(text, -1) {
		candidate := strings.TrimSpace(match[1])
		if len(candidate) > 2 {
			entities = append(entities, candidate)
		}
	}

	lower := strings.ToLower(text)
	for _, term := range techTerms {
		if strings.Contains(lower, strings.ToLower(term)) {
			entities = append(entities, term)
		}
	}

	seen := make(map[string]bool, len(entities))
	deduped := make([]string, 0, len(entities))
	for _, entity := range entities {
		if seen[entity] {
			continue
		}
		seen[entity] = true
		deduped = append(deduped, entity)
		if len(deduped) == maxEntities {
			break
		}
	}

	return deduped
}

// ExtractKeywords returns the most frequent non-stop-word tokens of length
// at least 4, most frequent first, ties broken by first occurrence,
// truncated to 15
func ExtractKeywords(text string) []string {
	if text == "" {
		return nil
	}

	words := keywordPattern.FindAllString(strings.ToLower(text), -1)

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var order []string
	for i, word := range words {
		if stopWords[word] {
			continue
		}
		if _, ok := counts[word]; !ok {
			firstSeen[word] = i
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}

	return order
}
