package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/kgweaver/kgweaver/helper"
	"github.com/kgweaver/kgweaver/model"
)

// dotLevelColors colors nodes by level in DOT output
var dotLevelColors = []string{"red", "orange", "blue", "green", "purple"}

// DOT writes the graph as a Graphviz digraph
func (e *Exporter) DOT(w io.Writer) error {
	var b strings.Builder

	b.WriteString("digraph KnowledgeGraph {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=rounded];\n\n")

	for _, node := range e.graph.Nodes {
		title := strings.ReplaceAll(node.Title, `"`, `\"`)
		if len(title) > 50 {
			title = title[:50]
		}
		color := dotLevelColors[node.Level%len(dotLevelColors)]
		fmt.Fprintf(&b, "  %s [label=\"%s\\n(%s)\", color=%s];\n", dotID(node.ID), title, node.ContentType, color)
	}

	b.WriteString("\n")

	for _, edge := range e.graph.Edges {
		fmt.Fprintf(&b, "  %s -> %s [label=\"%s\", weight=%g];\n", dotID(edge.Source), dotID(edge.Target), edge.Relationship, edge.Weight)
	}

	b.WriteString("}\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return helper.NewError("write dot", err)
	}
	return nil
}

// Cypher writes a Neo4j import script recreating the graph
func (e *Exporter) Cypher(w io.Writer) error {
	var b strings.Builder

	b.WriteString("// Knowledge graph export\n")
	fmt.Fprintf(&b, "// Generated on: %s\n\n", time.Now().Format(time.RFC3339))

	b.WriteString("// Clear existing data\n")
	b.WriteString("MATCH (n:KnowledgeNode) DETACH DELETE n;\n\n")

	b.WriteString("// Create nodes\n")
	for _, node := range e.graph.Nodes {
		props := []string{
			cypherProp("id", node.ID),
			cypherProp("title", node.Title),
			cypherProp("url", node.URL),
			fmt.Sprintf("level: %d", node.Level),
			cypherProp("node_type", string(node.NodeType)),
			cypherProp("summary", node.Summary),
			cypherProp("author", node.Author),
			cypherProp("published_date", node.PublishedDate),
			cypherProp("domain", node.Domain),
			cypherProp("content_type", string(node.ContentType)),
			cypherProp("keywords", strings.Join(node.Keywords, "; ")),
			cypherProp("entities", strings.Join(node.Entities, "; ")),
			fmt.Sprintf("importance_score: %g", node.ImportanceScore),
		}
		fmt.Fprintf(&b, "CREATE (n:KnowledgeNode {%s});\n", strings.Join(props, ", "))
	}

	b.WriteString("\n// Create relationships\n")
	for _, edge := range e.graph.Edges {
		metadata, err := edge.Metadata.Marshal()
		if err != nil {
			return helper.NewError("marshal edge metadata", err)
		}
		fmt.Fprintf(&b, "MATCH (a:KnowledgeNode {id: '%s'}), (b:KnowledgeNode {id: '%s'})\nCREATE (a)-[:%s {weight: %g, metadata: %s}]->(b);\n",
			cypherEscape(edge.Source),
			cypherEscape(edge.Target),
			relationshipType(edge.Relationship),
			edge.Weight,
			cypherString(string(metadata)),
		)
	}

	b.WriteString("\n// Create indexes for performance\n")
	indexes := []string{
		"CREATE INDEX node_id_index IF NOT EXISTS FOR (n:KnowledgeNode) ON (n.id);",
		"CREATE INDEX node_title_index IF NOT EXISTS FOR (n:KnowledgeNode) ON (n.title);",
		"CREATE INDEX node_level_index IF NOT EXISTS FOR (n:KnowledgeNode) ON (n.level);",
		"CREATE INDEX node_domain_index IF NOT EXISTS FOR (n:KnowledgeNode) ON (n.domain);",
	}
	for _, index := range indexes {
		b.WriteString(index + "\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return helper.NewError("write cypher", err)
	}
	return nil
}

// Turtle writes the graph as RDF Turtle
func (e *Exporter) Turtle(w io.Writer) error {
	var b strings.Builder

	b.WriteString("@prefix kg: <http://example.org/kg/> .\n")
	b.WriteString("@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .\n")
	b.WriteString("@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .\n")
	b.WriteString("@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .\n\n")

	for _, node := range e.graph.Nodes {
		fmt.Fprintf(&b, "kg:%s rdf:type kg:KnowledgeNode ;\n", turtleID(node.ID))
		fmt.Fprintf(&b, "    kg:title %s ;\n", turtleString(node.Title))
		fmt.Fprintf(&b, "    kg:url %s ;\n", turtleString(node.URL))
		fmt.Fprintf(&b, "    kg:level %d ;\n", node.Level)
		fmt.Fprintf(&b, "    kg:node_type %s ;\n", turtleString(string(node.NodeType)))
		if node.Summary != "" {
			fmt.Fprintf(&b, "    kg:summary %s ;\n", turtleString(node.Summary))
		}
		if node.Author != "" {
			fmt.Fprintf(&b, "    kg:author %s ;\n", turtleString(node.Author))
		}
		if node.Domain != "" {
			fmt.Fprintf(&b, "    kg:domain %s ;\n", turtleString(node.Domain))
		}
		fmt.Fprintf(&b, "    kg:content_type %s ;\n", turtleString(string(node.ContentType)))
		fmt.Fprintf(&b, "    kg:importance_score %g ;\n", node.ImportanceScore)
		b.WriteString(".\n\n")
	}

	for _, edge := range e.graph.Edges {
		fmt.Fprintf(&b, "kg:%s kg:%s kg:%s .\n", turtleID(edge.Source), strings.ReplaceAll(string(edge.Relationship), " ", "_"), turtleID(edge.Target))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return helper.NewError("write turtle", err)
	}
	return nil
}

// Summary writes a Markdown report describing the graph
func (e *Exporter) Summary(w io.Writer) error {
	var b strings.Builder

	b.WriteString("# Knowledge Graph Summary Report\n\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	b.WriteString("## Basic Statistics\n\n")
	fmt.Fprintf(&b, "- **Total Nodes**: %d\n", len(e.graph.Nodes))
	fmt.Fprintf(&b, "- **Total Edges**: %d\n", len(e.graph.Edges))
	fmt.Fprintf(&b, "- **Max Depth**: %d\n", e.graph.Metadata.MaxDepth)

	if len(e.graph.Metadata.Levels) > 0 {
		fmt.Fprintf(&b, "- **Levels**: %d\n", len(e.graph.Metadata.Levels))
		var levels []int
		for level := range e.graph.Metadata.Levels {
			levels = append(levels, level)
		}
		sort.Ints(levels)
		for _, level := range levels {
			fmt.Fprintf(&b, "  - Level %d: %d nodes\n", level, e.graph.Metadata.Levels[level])
		}
	}

	if len(e.graph.Metadata.ContentTypes) > 0 {
		b.WriteString("\n## Content Type Distribution\n\n")
		for _, ct := range sortedContentTypes(e.graph.Metadata.ContentTypes) {
			fmt.Fprintf(&b, "- **%s**: %d nodes\n", ct, e.graph.Metadata.ContentTypes[ct])
		}
	}

	domains := make(map[string]int)
	for _, node := range e.graph.Nodes {
		if node.Domain != "" {
			domains[node.Domain]++
		}
	}
	if len(domains) > 0 {
		b.WriteString("\n## Top Domains\n\n")
		for _, domain := range topDomains(domains, 10) {
			fmt.Fprintf(&b, "- **%s**: %d nodes\n", domain, domains[domain])
		}
	}

	relationships := make(map[model.Relationship]int)
	for _, edge := range e.graph.Edges {
		relationships[edge.Relationship]++
	}
	if len(relationships) > 0 {
		b.WriteString("\n## Relationship Types\n\n")
		for _, rel := range sortedRelationships(relationships) {
			fmt.Fprintf(&b, "- **%s**: %d relationships\n", rel, relationships[rel])
		}
	}

	if len(e.graph.Nodes) > 0 {
		b.WriteString("\n## Most Important Nodes\n\n")
		nodes := make([]*model.Node, len(e.graph.Nodes))
		copy(nodes, e.graph.Nodes)
		sort.SliceStable(nodes, func(i, j int) bool {
			return nodes[i].ImportanceScore > nodes[j].ImportanceScore
		})
		limit := 5
		if len(nodes) < limit {
			limit = len(nodes)
		}
		for _, node := range nodes[:limit] {
			fmt.Fprintf(&b, "- **%s** (level %d, score %.2f)\n  - %s\n", node.Title, node.Level, node.ImportanceScore, node.URL)
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return helper.NewError("write summary", err)
	}
	return nil
}

func dotID(id string) string {
	return "n_" + strings.ReplaceAll(id, "-", "_")
}

func turtleID(id string) string {
	return strings.ReplaceAll(id, "-", "_")
}

func turtleString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}

func cypherEscape(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

func cypherString(s string) string {
	return "'" + cypherEscape(s) + "'"
}

func cypherProp(key string, value string) string {
	return fmt.Sprintf("%s: %s", key, cypherString(value))
}

// relationshipType sanitizes a relationship into a valid Neo4j type name
func relationshipType(rel model.Relationship) string {
	name := strings.ToUpper(string(rel))
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ReplaceAll(name, "-", "_")
}

func sortedContentTypes(counts map[model.ContentType]int) []model.ContentType {
	types := make([]model.ContentType, 0, len(counts))
	for ct := range counts {
		types = append(types, ct)
	}
	sort.Slice(types, func(i, j int) bool {
		if counts[types[i]] != counts[types[j]] {
			return counts[types[i]] > counts[types[j]]
		}
		return types[i] < types[j]
	})
	return types
}

func topDomains(counts map[string]int, limit int) []string {
	domains := make([]string, 0, len(counts))
	for domain := range counts {
		domains = append(domains, domain)
	}
	sort.Slice(domains, func(i, j int) bool {
		if counts[domains[i]] != counts[domains[j]] {
			return counts[domains[i]] > counts[domains[j]]
		}
		return domains[i] < domains[j]
	})
	if len(domains) > limit {
		domains = domains[:limit]
	}
	return domains
}

func sortedRelationships(counts map[model.Relationship]int) []model.Relationship {
	rels := make([]model.Relationship, 0, len(counts))
	for rel := range counts {
		rels = append(rels, rel)
	}
	sort.Slice(rels, func(i, j int) bool {
		if counts[rels[i]] != counts[rels[j]] {
			return counts[rels[i]] > counts[rels[j]]
		}
		return rels[i] < rels[j]
	})
	return rels
}
