package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEntities(t *testing.T) {
	t.Run("Finds capitalized sequences", func(t *testing.T) {
		entities := ExtractEntities("Sundar Pichai leads Google Cloud in Mountain View")

		assert.Contains(t, entities, "Sundar Pichai")
		assert.Contains(t, entities, "Google Cloud")
		assert.Contains(t, entities, "Mountain View")
	})

	t.Run("Finds companies with corporate designators", func(t *testing.T) {
		entities := ExtractEntities("The merger between Acme Corp and Widget Ltd was announced")

		assert.Contains(t, entities, "Acme Corp")
		assert.Contains(t, entities, "Widget Ltd")
	})

	t.Run("Finds technology vocabulary case-insensitively", func(t *testing.T) {
		entities := ExtractEntities("the startup uses llm agents and blockchain settlement")

		assert.Contains(t, entities, "LLM", "Tech terms keep their canonical casing")
		assert.Contains(t, entities, "blockchain")
	})

	t.Run("Ignores capitalized prefixes of mixed-case tokens", func(t *testing.T) {
		entities := ExtractEntities("OpenAI builds models")

		assert.NotContains(t, entities, "Open", "A candidate must end at a word boundary")
		assert.Equal(t, []string{"AI"}, entities, "Only the tech-vocabulary substring remains")
	})

	t.Run("Matches candidates ending at punctuation", func(t *testing.T) {
		entities := ExtractEntities("They acquired Acme Corp, then Widget Ltd.")

		assert.Contains(t, entities, "Acme Corp")
		assert.Contains(t, entities, "Widget Ltd.")
	})

	t.Run("Deduplicates while preserving first-seen order", func(t *testing.T) {
		entities := ExtractEntities("Acme builds things. Acme ships things.")

		count := 0
		for _, entity := range entities {
			if entity == "Acme" {
				count++
			}
		}
		assert.Equal(t, 1, count, "Repeated entity appears once")
	})

	t.Run("Caps entities at ten", func(t *testing.T) {
		names := []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf", "Hotel", "India", "Juliett", "Kilo", "Lima"}
		entities := ExtractEntities(strings.Join(names, " went home. ") + " went home.")

		assert.Len(t, entities, 10)
	})

	t.Run("Empty text yields nothing", func(t *testing.T) {
		assert.Empty(t, ExtractEntities(""))
	})
}

func TestExtractKeywords(t *testing.T) {
	t.Run("Ranks by frequency", func(t *testing.T) {
		keywords := ExtractKeywords("graph graph graph database database engine")

		assert.Equal(t, []string{"graph", "database", "engine"}, keywords)
	})

	t.Run("Breaks frequency ties by first occurrence", func(t *testing.T) {
		keywords := ExtractKeywords("zebra apple zebra apple")

		assert.Equal(t, []string{"zebra", "apple"}, keywords, "Equal counts keep text order")
	})

	t.Run("Filters stop words and short tokens", func(t *testing.T) {
		keywords := ExtractKeywords("this is a graph that they will use")

		assert.NotContains(t, keywords, "this")
		assert.NotContains(t, keywords, "that")
		assert.NotContains(t, keywords, "they")
		assert.NotContains(t, keywords, "will")
		assert.NotContains(t, keywords, "use", "Tokens under four characters are dropped")
		assert.Contains(t, keywords, "graph")
	})

	t.Run("Lowercases tokens", func(t *testing.T) {
		keywords := ExtractKeywords("Graph GRAPH graph")

		assert.Equal(t, []string{"graph"}, keywords)
	})

	t.Run("Caps keywords at fifteen", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < 20; i++ {
			b.WriteString("word")
			b.WriteString(strings.Repeat("x", i+1))
			b.WriteString(" ")
		}
		keywords := ExtractKeywords(b.String())

		assert.Len(t, keywords, 15)
	})

	t.Run("Empty text yields nothing", func(t *testing.T) {
		assert.Empty(t, ExtractKeywords(""))
	})
}

func TestHeuristicExtractor(t *testing.T) {
	t.Run("Is deterministic for identical input", func(t *testing.T) {
		extractor := HeuristicExtractor()
		text := "Acme Corp builds AI tooling for knowledge graphs and graph databases"

		entities1, keywords1 := extractor(text)
		entities2, keywords2 := extractor(text)

		assert.Equal(t, entities1, entities2)
		assert.Equal(t, keywords1, keywords2)
	})

	t.Run("Handles empty input", func(t *testing.T) {
		extractor := HeuristicExtractor()
		entities, keywords := extractor("")

		assert.Empty(t, entities)
		assert.Empty(t, keywords)
	})
}
