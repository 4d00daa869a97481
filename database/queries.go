package database

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/kgweaver/kgweaver/helper"
	"github.com/kgweaver/kgweaver/model"
)

// ConnectedNode pairs a node with its relationship count
type ConnectedNode struct {
	Node        *model.Node
	Connections int
}

// StoreStats summarizes what is currently persisted
type StoreStats struct {
	NodeCount         int
	RelationshipCount int
	Levels            map[int]int
	ContentTypes      map[model.ContentType]int
}

// NodesByLevel returns all stored nodes at the given level
func (a *Adapter) NodesByLevel(ctx context.Context, level int) ([]*model.Node, error) {
	return a.queryNodes(ctx, `
		MATCH (n:KnowledgeNode {level: $level})
		RETURN n ORDER BY n.importance_score DESC`,
		map[string]any{"level": int64(level)})
}

// NodesByDomain returns all stored nodes from the given domain
func (a *Adapter) NodesByDomain(ctx context.Context, domain string) ([]*model.Node, error) {
	return a.queryNodes(ctx, `
		MATCH (n:KnowledgeNode {domain: $domain})
		RETURN n ORDER BY n.importance_score DESC`,
		map[string]any{"domain": domain})
}

// NodesByContentType returns all stored nodes of the given content type
func (a *Adapter) NodesByContentType(ctx context.Context, contentType model.ContentType) ([]*model.Node, error) {
	return a.queryNodes(ctx, `
		MATCH (n:KnowledgeNode {content_type: $content_type})
		RETURN n ORDER BY n.importance_score DESC`,
		map[string]any{"content_type": string(contentType)})
}

// SearchByText returns nodes whose title or summary contains the query,
// case insensitive
func (a *Adapter) SearchByText(ctx context.Context, query string, limit int) ([]*model.Node, error) {
	return a.queryNodes(ctx, `
		MATCH (n:KnowledgeNode)
		WHERE toLower(n.title) CONTAINS toLower($query)
		   OR toLower(n.summary) CONTAINS toLower($query)
		RETURN n ORDER BY n.importance_score DESC
		LIMIT $limit`,
		map[string]any{"query": query, "limit": int64(limit)})
}

// Neighbors returns all nodes directly connected to the given node,
// following relationships in either direction
func (a *Adapter) Neighbors(ctx context.Context, nodeID string) ([]*model.Node, error) {
	return a.queryNodes(ctx, `
		MATCH (n:KnowledgeNode {id: $id})--(m:KnowledgeNode)
		RETURN DISTINCT m AS n ORDER BY n.importance_score DESC`,
		map[string]any{"id": nodeID})
}

// MostConnected returns the nodes with the most relationships
func (a *Adapter) MostConnected(ctx context.Context, limit int) ([]ConnectedNode, error) {
	session := a.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (n:KnowledgeNode)
			OPTIONAL MATCH (n)--(m:KnowledgeNode)
			WITH n, count(m) AS connections
			RETURN n, connections
			ORDER BY connections DESC
			LIMIT $limit`,
			map[string]any{"limit": int64(limit)})
		if err != nil {
			return nil, err
		}

		var connected []ConnectedNode
		for res.Next(ctx) {
			record := res.Record()
			rawNode, ok := record.Get("n")
			if !ok {
				continue
			}
			count, _ := record.Get("connections")
			connected = append(connected, ConnectedNode{
				Node:        nodeFromProps(rawNode.(neo4j.Node).Props),
				Connections: int(count.(int64)),
			})
		}
		return connected, res.Err()
	})
	if err != nil {
		return nil, helper.NewError("query most connected", err)
	}
	return result.([]ConnectedNode), nil
}

// ShortestPath returns the node ids along the shortest path between two
// nodes, or nil when no path exists
func (a *Adapter) ShortestPath(ctx context.Context, sourceID string, targetID string) ([]string, error) {
	session := a.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (a:KnowledgeNode {id: $source}), (b:KnowledgeNode {id: $target}),
			      p = shortestPath((a)-[*]-(b))
			RETURN [node IN nodes(p) | node.id] AS path`,
			map[string]any{"source": sourceID, "target": targetID})
		if err != nil {
			return nil, err
		}

		record, err := res.Single(ctx)
		if err != nil {
			// No rows means no path
			return []string(nil), nil
		}
		rawPath, ok := record.Get("path")
		if !ok {
			return []string(nil), nil
		}

		var path []string
		for _, id := range rawPath.([]any) {
			path = append(path, id.(string))
		}
		return path, nil
	})
	if err != nil {
		return nil, helper.NewError("query shortest path", err)
	}
	return result.([]string), nil
}

// Stats returns node and relationship counts plus level and content type
// distributions for the persisted graph
func (a *Adapter) Stats(ctx context.Context) (*StoreStats, error) {
	session := a.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		stats := &StoreStats{
			Levels:       map[int]int{},
			ContentTypes: map[model.ContentType]int{},
		}

		res, err := tx.Run(ctx, `
			MATCH (n:KnowledgeNode)
			OPTIONAL MATCH (:KnowledgeNode)-[r]->(:KnowledgeNode)
			RETURN count(DISTINCT n) AS nodes, count(DISTINCT r) AS relationships`, nil)
		if err != nil {
			return nil, err
		}
		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		nodes, _ := record.Get("nodes")
		relationships, _ := record.Get("relationships")
		stats.NodeCount = int(nodes.(int64))
		stats.RelationshipCount = int(relationships.(int64))

		res, err = tx.Run(ctx, `
			MATCH (n:KnowledgeNode)
			RETURN n.level AS level, count(n) AS count`, nil)
		if err != nil {
			return nil, err
		}
		for res.Next(ctx) {
			record := res.Record()
			level, _ := record.Get("level")
			count, _ := record.Get("count")
			stats.Levels[int(level.(int64))] = int(count.(int64))
		}
		if err := res.Err(); err != nil {
			return nil, err
		}

		res, err = tx.Run(ctx, `
			MATCH (n:KnowledgeNode)
			RETURN n.content_type AS content_type, count(n) AS count`, nil)
		if err != nil {
			return nil, err
		}
		for res.Next(ctx) {
			record := res.Record()
			contentType, _ := record.Get("content_type")
			count, _ := record.Get("count")
			stats.ContentTypes[model.ContentType(contentType.(string))] = int(count.(int64))
		}
		return stats, res.Err()
	})
	if err != nil {
		return nil, helper.NewError("query stats", err)
	}
	return result.(*StoreStats), nil
}

func (a *Adapter) queryNodes(ctx context.Context, query string, params map[string]any) ([]*model.Node, error) {
	session := a.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}

		var nodes []*model.Node
		for res.Next(ctx) {
			rawNode, ok := res.Record().Get("n")
			if !ok {
				continue
			}
			nodes = append(nodes, nodeFromProps(rawNode.(neo4j.Node).Props))
		}
		return nodes, res.Err()
	})
	if err != nil {
		return nil, helper.NewError("query nodes", err)
	}
	return result.([]*model.Node), nil
}

func nodeFromProps(props map[string]any) *model.Node {
	node := &model.Node{
		ID:            stringProp(props, "id"),
		Title:         stringProp(props, "title"),
		URL:           stringProp(props, "url"),
		Summary:       stringProp(props, "summary"),
		Author:        stringProp(props, "author"),
		PublishedDate: stringProp(props, "published_date"),
		Domain:        stringProp(props, "domain"),
		NodeType:      model.NodeType(stringProp(props, "node_type")),
		ContentType:   model.ContentType(stringProp(props, "content_type")),
		Keywords:      stringSliceProp(props, "keywords"),
		Entities:      stringSliceProp(props, "entities"),
	}
	if level, ok := props["level"].(int64); ok {
		node.Level = int(level)
	}
	if score, ok := props["importance_score"].(float64); ok {
		node.ImportanceScore = score
	}
	return node
}

func stringProp(props map[string]any, key string) string {
	if value, ok := props[key].(string); ok {
		return value
	}
	return ""
}

func stringSliceProp(props map[string]any, key string) []string {
	raw, ok := props[key].([]any)
	if !ok {
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, item := range raw {
		if value, ok := item.(string); ok {
			values = append(values, value)
		}
	}
	return values
}
