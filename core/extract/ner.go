package extract

import (
	"fmt"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/kgweaver/kgweaver/helper"
)

// NERExtractor creates an extractor backed by a NER model, for deployments
// that want genuine named-entity recognition instead of the capitalization
// heuristic. Uses distilbert-NER, detects PERSON, ORGANIZATION, LOCATION and
// MISC entities. Keyword ranking stays frequency-based.
func NERExtractor() (ExtractFunc, error) {
	// Prepare model (download if needed)
	modelName := "KnightsAnalytics/distilbert-NER"
	modelPath, err := helper.PrepareModel(modelName, "model.onnx")
	if err != nil {
		return nil, err
	}

	// Initialize hugot session with Go backend
	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	// Create token classification pipeline for NER
	config := hugot.TokenClassificationConfig{
		ModelPath: modelPath,
		Name:      "ner-pipeline",
		Options: []hugot.TokenClassificationOption{
			pipelines.WithSimpleAggregation(),
			pipelines.WithIgnoreLabels([]string{"O"}), // Ignore non-entity tokens
		},
	}
	nerPipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create NER pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create NER pipeline: %w", err)
	}

	return func(text string) ([]string, []string) {
		if text == "" {
			return nil, nil
		}

		keywords := ExtractKeywords(text)

		result, err := nerPipeline.RunPipeline([]string{text})
		if err != nil || len(result.Entities) == 0 {
			// Degrade to the heuristic rather than losing the node
			return ExtractEntities(text), keywords
		}

		seen := make(map[string]bool)
		var entities []string
		for _, entity := range result.Entities[0] {
			name := strings.TrimSpace(entity.Word)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			entities = append(entities, name)
			if len(entities) == maxEntities {
				break
			}
		}

		return entities, keywords
	}, nil
}
