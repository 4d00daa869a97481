package builder

// Importance score weights
const (
	degreeWeight   = 0.4
	entityWeight   = 0.1
	keywordWeight  = 0.05
	rootLevelBonus = 1.0
)

// scoreNodes computes a derived importance score for every node from its
// degree across the entire final edge set, its feature richness and its
// level. Scores are recomputed from scratch each run, never incrementally,
// and are not normalized across the graph.
func scoreNodes(s *session) {
	degrees := make(map[string]int, len(s.nodes))
	for _, edge := range s.edges {
		degrees[edge.Source]++
		degrees[edge.Target]++
	}

	for _, node := range s.nodes {
		levelBonus := rootLevelBonus
		if node.Level > 0 {
			levelBonus = 0.5 / float64(node.Level+1)
		}

		node.ImportanceScore = float64(degrees[node.ID])*degreeWeight +
			float64(len(node.Entities))*entityWeight +
			float64(len(node.Keywords))*keywordWeight +
			levelBonus
	}
}
