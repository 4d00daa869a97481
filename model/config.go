package model

import "fmt"

// BuildConfig represents configuration for a graph build
type BuildConfig struct {
	// MaxDepth is the number of levels to expand, seed level included
	MaxDepth int `json:"max_depth"`
	// MaxResultsPerLevel bounds the results requested per lookup
	MaxResultsPerLevel int `json:"max_results_per_level"`
	// MaxParentsPerLevel caps how many previous-level nodes are expanded
	// to bound external API call volume
	MaxParentsPerLevel int `json:"max_parents_per_level"`
	// MaxChildrenPerParent bounds similarity results requested per parent
	MaxChildrenPerParent int `json:"max_children_per_parent"`
}

// DefaultBuildConfig returns a sensible default configuration
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		MaxDepth:             3,
		MaxResultsPerLevel:   10,
		MaxParentsPerLevel:   3,
		MaxChildrenPerParent: 5,
	}
}

// Validate checks the configuration before a build starts. A degenerate
// configuration fails fast instead of silently producing an empty graph.
func (c *BuildConfig) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("max depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.MaxResultsPerLevel < 1 {
		return fmt.Errorf("max results per level must be at least 1, got %d", c.MaxResultsPerLevel)
	}
	if c.MaxParentsPerLevel < 1 {
		return fmt.Errorf("max parents per level must be at least 1, got %d", c.MaxParentsPerLevel)
	}
	if c.MaxChildrenPerParent < 1 {
		return fmt.Errorf("max children per parent must be at least 1, got %d", c.MaxChildrenPerParent)
	}
	return nil
}

// ChildLimit returns the per-parent similarity lookup bound, the smaller of
// MaxChildrenPerParent and MaxResultsPerLevel
func (c *BuildConfig) ChildLimit() int {
	if c.MaxResultsPerLevel < c.MaxChildrenPerParent {
		return c.MaxResultsPerLevel
	}
	return c.MaxChildrenPerParent
}
