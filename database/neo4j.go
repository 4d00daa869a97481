package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/kgweaver/kgweaver/helper"
	"github.com/kgweaver/kgweaver/model"
)

const connectTimeout = 10 * time.Second

var errMissingURI = errors.New("neo4j uri not configured")

// Adapter persists knowledge graphs into Neo4j. Nodes carry the
// KnowledgeNode label, relationships use the uppercased relationship
// name as their type.
type Adapter struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewAdapter connects to Neo4j with the given configuration and
// verifies connectivity before returning.
func NewAdapter(ctx context.Context, config *helper.Configuration) (*Adapter, error) {
	if config == nil || config.Neo4jURI == "" {
		return nil, helper.NewError("new neo4j adapter", errMissingURI)
	}

	user := config.Neo4jUser
	if user == "" {
		user = "neo4j"
	}

	driver, err := neo4j.NewDriverWithContext(config.Neo4jURI, neo4j.BasicAuth(user, config.Neo4jPassword, ""))
	if err != nil {
		return nil, helper.NewError("new neo4j driver", err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(ctx)
		return nil, helper.NewError("verify neo4j connectivity", err)
	}

	return &Adapter{driver: driver, database: config.Neo4jDatabase}, nil
}

// Close releases the underlying driver
func (a *Adapter) Close(ctx context.Context) error {
	if a == nil || a.driver == nil {
		return nil
	}
	return a.driver.Close(ctx)
}

// Clear removes all knowledge nodes and their relationships
func (a *Adapter) Clear(ctx context.Context) error {
	session := a.newSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `MATCH (n:KnowledgeNode) DETACH DELETE n`, nil)
		if err != nil {
			return nil, err
		}
		return res.Consume(ctx)
	})
	if err != nil {
		return helper.NewError("clear knowledge nodes", err)
	}
	return nil
}

// ImportGraph merges the graph's nodes and relationships into Neo4j.
// Nodes merge on id, so importing the same graph twice is idempotent.
func (a *Adapter) ImportGraph(ctx context.Context, graph *model.Graph) error {
	if graph == nil || len(graph.Nodes) == 0 {
		return nil
	}

	session := a.newSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	if err := a.ensureSchema(ctx, session); err != nil {
		return err
	}

	nodes := make([]map[string]any, 0, len(graph.Nodes))
	for _, node := range graph.Nodes {
		nodes = append(nodes, map[string]any{
			"id":               node.ID,
			"title":            node.Title,
			"url":              node.URL,
			"level":            int64(node.Level),
			"node_type":        string(node.NodeType),
			"summary":          node.Summary,
			"author":           node.Author,
			"published_date":   node.PublishedDate,
			"domain":           node.Domain,
			"content_type":     string(node.ContentType),
			"keywords":         node.Keywords,
			"entities":         node.Entities,
			"importance_score": node.ImportanceScore,
		})
	}

	// One parameterized batch per relationship type, because the type
	// itself cannot be a query parameter.
	edgesByType := make(map[string][]map[string]any)
	for _, edge := range graph.Edges {
		relType := RelationshipType(edge.Relationship)
		edgesByType[relType] = append(edgesByType[relType], map[string]any{
			"source": edge.Source,
			"target": edge.Target,
			"weight": edge.Weight,
		})
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			UNWIND $nodes AS node
			MERGE (n:KnowledgeNode {id: node.id})
			SET n = node`, map[string]any{"nodes": nodes})
		if err != nil {
			return nil, err
		}
		if _, err := res.Consume(ctx); err != nil {
			return nil, err
		}

		for relType, edges := range edgesByType {
			res, err := tx.Run(ctx, `
				UNWIND $edges AS edge
				MATCH (a:KnowledgeNode {id: edge.source})
				MATCH (b:KnowledgeNode {id: edge.target})
				MERGE (a)-[r:`+relType+`]->(b)
				SET r.weight = edge.weight`, map[string]any{"edges": edges})
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return helper.NewError("import graph", err)
	}
	return nil
}

func (a *Adapter) ensureSchema(ctx context.Context, session neo4j.SessionWithContext) error {
	statements := []string{
		`CREATE CONSTRAINT knowledge_node_id IF NOT EXISTS FOR (n:KnowledgeNode) REQUIRE n.id IS UNIQUE`,
		`CREATE INDEX knowledge_node_level IF NOT EXISTS FOR (n:KnowledgeNode) ON (n.level)`,
		`CREATE INDEX knowledge_node_domain IF NOT EXISTS FOR (n:KnowledgeNode) ON (n.domain)`,
		`CREATE INDEX knowledge_node_content_type IF NOT EXISTS FOR (n:KnowledgeNode) ON (n.content_type)`,
	}
	for _, statement := range statements {
		res, err := session.Run(ctx, statement, nil)
		if err != nil {
			return helper.NewError("ensure schema", err)
		}
		if _, err := res.Consume(ctx); err != nil {
			return helper.NewError("ensure schema", err)
		}
	}
	return nil
}

func (a *Adapter) newSession(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return a.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: a.database,
	})
}

// RelationshipType converts a relationship into a valid Neo4j type name
func RelationshipType(rel model.Relationship) string {
	name := strings.ToUpper(string(rel))
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ReplaceAll(name, "-", "_")
}
