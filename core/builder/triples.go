package builder

import (
	"strconv"

	"github.com/kgweaver/kgweaver/model"
)

// Triples converts a graph into subject-predicate-object statements: one
// triple per edge using node titles, plus property triples for each node's
// content type, author, domain, entities and level.
func Triples(graph *model.Graph) []model.Triple {
	var triples []model.Triple

	nodesByID := make(map[string]*model.Node, len(graph.Nodes))
	for _, node := range graph.Nodes {
		nodesByID[node.ID] = node
	}

	for _, edge := range graph.Edges {
		source, okSource := nodesByID[edge.Source]
		target, okTarget := nodesByID[edge.Target]
		if !okSource || !okTarget {
			continue
		}
		triples = append(triples, model.Triple{
			Subject:   source.Title,
			Predicate: string(edge.Relationship),
			Object:    target.Title,
		})
	}

	for _, node := range graph.Nodes {
		if node.ContentType != "" {
			triples = append(triples, model.Triple{Subject: node.Title, Predicate: "is_type", Object: string(node.ContentType)})
		}
		if node.Author != "" {
			triples = append(triples, model.Triple{Subject: node.Title, Predicate: "authored_by", Object: node.Author})
		}
		if node.Domain != "" {
			triples = append(triples, model.Triple{Subject: node.Title, Predicate: "hosted_on", Object: node.Domain})
		}
		for _, entity := range node.Entities {
			triples = append(triples, model.Triple{Subject: node.Title, Predicate: "mentions", Object: entity})
		}
		triples = append(triples, model.Triple{Subject: node.Title, Predicate: "at_level", Object: strconv.Itoa(node.Level)})
	}

	return triples
}
