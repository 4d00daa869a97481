package builder

import (
	"strings"

	"github.com/kgweaver/kgweaver/model"
)

// Weights for inferred relationships, per unit of overlap where applicable
const (
	entityOverlapWeight  = 0.3
	keywordOverlapWeight = 0.2
	sameDomainWeight     = 0.5
	sameAuthorWeight     = 0.8
)

// Minimum overlap required before an edge is inferred
const (
	minCommonEntities = 2
	minCommonKeywords = 3
)

// inferRelationships runs once over every unordered pair of nodes in the
// final registry and adds at most one edge per pair. Pairs already connected
// by any edge, expansion edges included and regardless of direction, are
// skipped. Rule order is the precedence policy: shared entities beat shared
// keywords beat same domain beat same author.
func inferRelationships(s *session) {
	nodes := s.nodeList()

	for i, a := range nodes {
		for _, b := range nodes[i+1:] {
			if s.connected(a.ID, b.ID) {
				continue
			}

			if commonEntities := intersect(a.Entities, b.Entities); len(commonEntities) >= minCommonEntities {
				s.edges = append(s.edges, &model.Edge{
					Source:       a.ID,
					Target:       b.ID,
					Relationship: model.RelationshipSharesEntities,
					Weight:       float64(len(commonEntities)) * entityOverlapWeight,
					Metadata:     model.Metadata{"common_entities": commonEntities},
				})
				continue
			}

			if commonKeywords := intersect(a.Keywords, b.Keywords); len(commonKeywords) >= minCommonKeywords {
				s.edges = append(s.edges, &model.Edge{
					Source:       a.ID,
					Target:       b.ID,
					Relationship: model.RelationshipSharesKeywords,
					Weight:       float64(len(commonKeywords)) * keywordOverlapWeight,
					Metadata:     model.Metadata{"common_keywords": commonKeywords},
				})
				continue
			}

			if a.Domain != "" && a.Domain == b.Domain {
				s.edges = append(s.edges, &model.Edge{
					Source:       a.ID,
					Target:       b.ID,
					Relationship: model.RelationshipSameDomain,
					Weight:       sameDomainWeight,
					Metadata:     model.Metadata{"domain": a.Domain},
				})
				continue
			}

			if a.Author != "" && b.Author != "" && strings.EqualFold(a.Author, b.Author) {
				s.edges = append(s.edges, &model.Edge{
					Source:       a.ID,
					Target:       b.ID,
					Relationship: model.RelationshipSameAuthor,
					Weight:       sameAuthorWeight,
					Metadata:     model.Metadata{"author": a.Author},
				})
			}
		}
	}
}

// intersect returns the elements present in both slices, in the order they
// appear in the first
func intersect(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, v := range b {
		inB[v] = true
	}

	var common []string
	for _, v := range a {
		if inB[v] {
			common = append(common, v)
			inB[v] = false
		}
	}
	return common
}
