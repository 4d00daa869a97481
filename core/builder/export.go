package builder

import (
	"time"

	"github.com/kgweaver/kgweaver/model"
)

// exportGraph serializes a session into the canonical graph structure. This
// is the only way build results leave the session; consumers never see the
// registry itself.
func exportGraph(s *session) *model.Graph {
	nodes := s.nodeList()

	levels := make(map[int]int, s.config.MaxDepth)
	for level := 0; level < s.config.MaxDepth; level++ {
		levels[level] = 0
	}
	contentTypes := make(map[model.ContentType]int)
	for _, node := range nodes {
		levels[node.Level]++
		contentTypes[node.ContentType]++
	}

	edges := make([]*model.Edge, len(s.edges))
	copy(edges, s.edges)

	return &model.Graph{
		Nodes: nodes,
		Edges: edges,
		Metadata: model.GraphMetadata{
			TotalNodes:   len(nodes),
			TotalEdges:   len(edges),
			MaxDepth:     s.config.MaxDepth,
			Levels:       levels,
			ContentTypes: contentTypes,
			CreatedAt:    time.Now(),
		},
	}
}

// Statistics computes summary statistics for a built graph
func Statistics(graph *model.Graph) *model.Statistics {
	if graph == nil || len(graph.Nodes) == 0 {
		return nil
	}

	domains := make(map[string]bool)
	contentTypes := make(map[model.ContentType]bool)
	maxLevel := 0
	totalEntities := 0
	totalKeywords := 0

	for _, node := range graph.Nodes {
		if node.Domain != "" {
			domains[node.Domain] = true
		}
		contentTypes[node.ContentType] = true
		if node.Level > maxLevel {
			maxLevel = node.Level
		}
		totalEntities += len(node.Entities)
		totalKeywords += len(node.Keywords)
	}

	nodeCount := len(graph.Nodes)

	return &model.Statistics{
		NodeCount:          nodeCount,
		EdgeCount:          len(graph.Edges),
		Levels:             maxLevel + 1,
		Domains:            len(domains),
		ContentTypes:       len(contentTypes),
		AvgEntitiesPerNode: float64(totalEntities) / float64(nodeCount),
		AvgKeywordsPerNode: float64(totalKeywords) / float64(nodeCount),
	}
}
