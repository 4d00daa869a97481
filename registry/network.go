package registry

import (
	"context"
	"time"

	"github.com/kgweaver/kgweaver/model"
)

// Relationships for company networks
const (
	RelationshipOfficerOf model.Relationship = "officer_of"
	RelationshipControls  model.Relationship = "controls"
)

const (
	officerEdgeWeight = 0.7
	pscEdgeWeight     = 0.9
)

// CompanyNetwork builds a small ownership graph around the best company
// match for a name: the company itself, its officers and its persons with
// significant control. The result uses the same canonical graph structure
// as search-driven builds, so all exporters and the database adapter work
// on it unchanged.
func (c *Client) CompanyNetwork(ctx context.Context, companyName string) (*model.Graph, error) {
	matches, err := c.SearchCompanies(ctx, companyName, 1)
	if err != nil {
		return nil, err
	}

	graph := &model.Graph{
		Nodes: []*model.Node{},
		Edges: []*model.Edge{},
		Metadata: model.GraphMetadata{
			MaxDepth:     2,
			Levels:       map[int]int{0: 0, 1: 0},
			ContentTypes: map[model.ContentType]int{},
			CreatedAt:    time.Now(),
		},
	}
	if len(matches) == 0 {
		return graph, nil
	}

	companyNumber := matches[0].CompanyNumber
	profile, err := c.CompanyProfile(ctx, companyNumber)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.CompanyNumber == "" {
		return graph, nil
	}

	companyURL := DefaultBaseURL + "/company/" + profile.CompanyNumber
	companyNode := &model.Node{
		ID:            model.NewNodeID(profile.CompanyName, companyURL, 0),
		Title:         profile.CompanyName,
		URL:           companyURL,
		Level:         0,
		NodeType:      model.NodeTypeRoot,
		Summary:       profile.CompanyStatus,
		PublishedDate: profile.IncorporationDate,
		Domain:        model.DomainFromURL(companyURL),
		ContentType:   model.ContentTypeCompanyPage,
	}
	addNode(graph, companyNode)

	// Officer and PSC lookups degrade independently; a failed call just
	// leaves that part of the network empty.
	officers, err := c.Officers(ctx, companyNumber)
	if err == nil {
		for _, officer := range officers {
			if officer.Name == "" || officer.ResignedOn != "" {
				continue
			}
			node := personNode(officer.Name, officer.Occupation, companyNumber)
			addNode(graph, node)
			graph.Edges = append(graph.Edges, &model.Edge{
				Source:       node.ID,
				Target:       companyNode.ID,
				Relationship: RelationshipOfficerOf,
				Weight:       officerEdgeWeight,
				Metadata: model.Metadata{
					"role":        officer.Role,
					"appointed":   officer.AppointedOn,
					"nationality": officer.Nationality,
				},
			})
		}
	}

	pscs, err := c.PSCs(ctx, companyNumber)
	if err == nil {
		for _, psc := range pscs {
			if psc.Name == "" {
				continue
			}
			node := personNode(psc.Name, psc.Kind, companyNumber)
			addNode(graph, node)
			graph.Edges = append(graph.Edges, &model.Edge{
				Source:       node.ID,
				Target:       companyNode.ID,
				Relationship: RelationshipControls,
				Weight:       pscEdgeWeight,
				Metadata: model.Metadata{
					"natures_of_control": psc.NaturesOfControl,
					"notified_on":        psc.NotifiedOn,
				},
			})
		}
	}

	graph.Metadata.TotalNodes = len(graph.Nodes)
	graph.Metadata.TotalEdges = len(graph.Edges)

	return graph, nil
}

func personNode(name string, description string, companyNumber string) *model.Node {
	personURL := DefaultBaseURL + "/company/" + companyNumber + "/person/" + name
	return &model.Node{
		ID:          model.NewNodeID(name, personURL, 1),
		Title:       name,
		URL:         personURL,
		Level:       1,
		NodeType:    model.NodeTypePrimary,
		Summary:     description,
		Domain:      model.DomainFromURL(personURL),
		ContentType: model.ContentTypeProfile,
	}
}

// addNode appends the node unless an identical id is already present
func addNode(graph *model.Graph, node *model.Node) {
	for _, existing := range graph.Nodes {
		if existing.ID == node.ID {
			return
		}
	}
	graph.Nodes = append(graph.Nodes, node)
	graph.Metadata.Levels[node.Level]++
	graph.Metadata.ContentTypes[node.ContentType]++
}
