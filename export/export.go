package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/kgweaver/kgweaver/core/builder"
	"github.com/kgweaver/kgweaver/helper"
	"github.com/kgweaver/kgweaver/model"
)

// Exporter serializes a built graph into interchange formats. It only reads
// the canonical graph structure, never builder internals.
type Exporter struct {
	graph *model.Graph
}

// NewExporter creates an exporter for a graph
func NewExporter(graph *model.Graph) *Exporter {
	return &Exporter{graph: graph}
}

// SupportedFormats maps format names to short descriptions
func SupportedFormats() map[string]string {
	return map[string]string{
		"json":    "JavaScript Object Notation - standard web format",
		"csv":     "Comma separated values - spreadsheet compatible, nodes and edges separately",
		"tsv":     "Tab separated subject-predicate-object triples",
		"graphml": "GraphML - XML-based graph format",
		"gexf":    "GEXF - Graph Exchange XML Format for Gephi",
		"dot":     "DOT - Graphviz format for visualization",
		"cypher":  "Cypher - Neo4j import script",
		"turtle":  "RDF Turtle - semantic web format",
		"summary": "Markdown summary report",
	}
}

// JSON writes the complete graph as indented JSON
func (e *Exporter) JSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e.graph); err != nil {
		return helper.NewError("encode graph json", err)
	}
	return nil
}

// CSVNodes writes one row per node
func (e *Exporter) CSVNodes(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"id", "title", "url", "level", "node_type", "summary", "author", "published_date", "domain", "content_type", "keywords", "entities", "importance_score"}
	if err := cw.Write(header); err != nil {
		return helper.NewError("write nodes csv header", err)
	}

	for _, node := range e.graph.Nodes {
		row := []string{
			node.ID,
			node.Title,
			node.URL,
			strconv.Itoa(node.Level),
			string(node.NodeType),
			node.Summary,
			node.Author,
			node.PublishedDate,
			node.Domain,
			string(node.ContentType),
			strings.Join(node.Keywords, "; "),
			strings.Join(node.Entities, "; "),
			strconv.FormatFloat(node.ImportanceScore, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return helper.NewError("write nodes csv row", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// CSVEdges writes one row per edge
func (e *Exporter) CSVEdges(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"source", "target", "relationship", "weight", "metadata"}); err != nil {
		return helper.NewError("write edges csv header", err)
	}

	for _, edge := range e.graph.Edges {
		metadata, err := edge.Metadata.Marshal()
		if err != nil {
			return helper.NewError("marshal edge metadata", err)
		}
		row := []string{
			edge.Source,
			edge.Target,
			string(edge.Relationship),
			strconv.FormatFloat(edge.Weight, 'f', -1, 64),
			string(metadata),
		}
		if err := cw.Write(row); err != nil {
			return helper.NewError("write edges csv row", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// TriplesTSV writes the graph's subject-predicate-object triples as TSV
func (e *Exporter) TriplesTSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write([]string{"Subject", "Predicate", "Object"}); err != nil {
		return helper.NewError("write triples header", err)
	}

	for _, triple := range builder.Triples(e.graph) {
		if err := cw.Write([]string{triple.Subject, triple.Predicate, triple.Object}); err != nil {
			return helper.NewError("write triple", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
