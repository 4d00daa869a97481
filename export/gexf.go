package export

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/kgweaver/kgweaver/helper"
)

type gexfDoc struct {
	XMLName xml.Name  `xml:"gexf"`
	Xmlns   string    `xml:"xmlns,attr"`
	Version string    `xml:"version,attr"`
	Graph   gexfGraph `xml:"graph"`
}

type gexfGraph struct {
	DefaultEdgeType string         `xml:"defaultedgetype,attr"`
	NodeAttributes  gexfAttributes `xml:"attributes"`
	Nodes           []gexfNode     `xml:"nodes>node"`
	Edges           []gexfEdge     `xml:"edges>edge"`
}

type gexfAttributes struct {
	Class      string          `xml:"class,attr"`
	Attributes []gexfAttribute `xml:"attribute"`
}

type gexfAttribute struct {
	ID    string `xml:"id,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

type gexfAttValue struct {
	For   string `xml:"for,attr"`
	Value string `xml:"value,attr"`
}

type gexfNode struct {
	ID        string         `xml:"id,attr"`
	Label     string         `xml:"label,attr"`
	AttValues []gexfAttValue `xml:"attvalues>attvalue"`
}

type gexfEdge struct {
	ID     string  `xml:"id,attr"`
	Source string  `xml:"source,attr"`
	Target string  `xml:"target,attr"`
	Label  string  `xml:"label,attr"`
	Weight float64 `xml:"weight,attr"`
}

var gexfNodeAttributes = []gexfAttribute{
	{ID: "url", Title: "url", Type: "string"},
	{ID: "level", Title: "level", Type: "integer"},
	{ID: "node_type", Title: "node_type", Type: "string"},
	{ID: "domain", Title: "domain", Type: "string"},
	{ID: "content_type", Title: "content_type", Type: "string"},
	{ID: "keywords", Title: "keywords", Type: "string"},
	{ID: "entities", Title: "entities", Type: "string"},
	{ID: "importance_score", Title: "importance_score", Type: "double"},
}

// GEXF writes the graph in the Graph Exchange XML Format understood by
// Gephi and similar network analysis tools
func (e *Exporter) GEXF(w io.Writer) error {
	doc := gexfDoc{
		Xmlns:   "http://www.gexf.net/1.2draft",
		Version: "1.2",
		Graph: gexfGraph{
			DefaultEdgeType: "directed",
			NodeAttributes: gexfAttributes{
				Class:      "node",
				Attributes: gexfNodeAttributes,
			},
		},
	}

	for _, node := range e.graph.Nodes {
		doc.Graph.Nodes = append(doc.Graph.Nodes, gexfNode{
			ID:    node.ID,
			Label: node.Title,
			AttValues: []gexfAttValue{
				{For: "url", Value: node.URL},
				{For: "level", Value: strconv.Itoa(node.Level)},
				{For: "node_type", Value: string(node.NodeType)},
				{For: "domain", Value: node.Domain},
				{For: "content_type", Value: string(node.ContentType)},
				{For: "keywords", Value: strings.Join(node.Keywords, "; ")},
				{For: "entities", Value: strings.Join(node.Entities, "; ")},
				{For: "importance_score", Value: strconv.FormatFloat(node.ImportanceScore, 'f', -1, 64)},
			},
		})
	}

	for i, edge := range e.graph.Edges {
		doc.Graph.Edges = append(doc.Graph.Edges, gexfEdge{
			ID:     strconv.Itoa(i),
			Source: edge.Source,
			Target: edge.Target,
			Label:  string(edge.Relationship),
			Weight: edge.Weight,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return helper.NewError("write gexf header", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return helper.NewError("encode gexf", err)
	}

	_, err := io.WriteString(w, "\n")
	return err
}
