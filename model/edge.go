package model

// Relationship represents the type of relationship between two nodes
type Relationship string

const (
	// RelationshipSimilarTo is created during frontier expansion from a
	// parent node to a child it discovered.
	RelationshipSimilarTo Relationship = "similar_to"
	// The remaining relationships are inferred after expansion from
	// shared node attributes.
	RelationshipSharesEntities Relationship = "shares_entities"
	RelationshipSharesKeywords Relationship = "shares_keywords"
	RelationshipSameDomain     Relationship = "same_domain"
	RelationshipSameAuthor     Relationship = "same_author"
)

// Edge represents a directed, typed relationship between two node ids
type Edge struct {
	Source       string       `json:"source"`
	Target       string       `json:"target"`
	Relationship Relationship `json:"relationship"`
	Weight       float64      `json:"weight"`
	Metadata     Metadata     `json:"metadata,omitempty"`
}

// Connects reports whether the edge touches both ids, in either direction
func (e *Edge) Connects(a, b string) bool {
	return (e.Source == a && e.Target == b) || (e.Source == b && e.Target == a)
}

// Touches reports whether the edge has the id as source or target
func (e *Edge) Touches(id string) bool {
	return e.Source == id || e.Target == id
}
