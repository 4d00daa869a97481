package model

import "time"

// GraphMetadata summarizes a built graph
type GraphMetadata struct {
	TotalNodes   int                 `json:"total_nodes"`
	TotalEdges   int                 `json:"total_edges"`
	MaxDepth     int                 `json:"max_depth"`
	Levels       map[int]int         `json:"levels"`
	ContentTypes map[ContentType]int `json:"content_types"`
	CreatedAt    time.Time           `json:"created_at"`
}

// Graph is the canonical structure handed to every consumer of a build:
// exporters, the database adapter and the UI all read this, never the
// builder's internal state.
type Graph struct {
	Nodes    []*Node       `json:"nodes"`
	Edges    []*Edge       `json:"edges"`
	Metadata GraphMetadata `json:"metadata"`
}

// NodeByID returns the node with the given id, or nil
func (g *Graph) NodeByID(id string) *Node {
	for _, node := range g.Nodes {
		if node.ID == id {
			return node
		}
	}
	return nil
}

// Triple is a subject-predicate-object statement derived from a graph
type Triple struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// Statistics describes a built graph at a glance
type Statistics struct {
	NodeCount          int     `json:"node_count"`
	EdgeCount          int     `json:"edge_count"`
	Levels             int     `json:"levels"`
	Domains            int     `json:"domains"`
	ContentTypes       int     `json:"content_types"`
	AvgEntitiesPerNode float64 `json:"avg_entities_per_node"`
	AvgKeywordsPerNode float64 `json:"avg_keywords_per_node"`
}
