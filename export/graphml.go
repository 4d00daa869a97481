package export

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/kgweaver/kgweaver/helper"
)

type graphmlDoc struct {
	XMLName xml.Name     `xml:"graphml"`
	Xmlns   string       `xml:"xmlns,attr"`
	Keys    []graphmlKey `xml:"key"`
	Graph   graphmlGraph `xml:"graph"`
}

type graphmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
	AttrType string `xml:"attr.type,attr"`
}

type graphmlGraph struct {
	ID          string        `xml:"id,attr"`
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphmlNode `xml:"node"`
	Edges       []graphmlEdge `xml:"edge"`
}

type graphmlNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphmlData `xml:"data"`
}

type graphmlEdge struct {
	Source string        `xml:"source,attr"`
	Target string        `xml:"target,attr"`
	Data   []graphmlData `xml:"data"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

var graphmlNodeKeys = []graphmlKey{
	{ID: "title", For: "node", AttrName: "title", AttrType: "string"},
	{ID: "url", For: "node", AttrName: "url", AttrType: "string"},
	{ID: "level", For: "node", AttrName: "level", AttrType: "int"},
	{ID: "node_type", For: "node", AttrName: "node_type", AttrType: "string"},
	{ID: "domain", For: "node", AttrName: "domain", AttrType: "string"},
	{ID: "content_type", For: "node", AttrName: "content_type", AttrType: "string"},
	{ID: "keywords", For: "node", AttrName: "keywords", AttrType: "string"},
	{ID: "entities", For: "node", AttrName: "entities", AttrType: "string"},
	{ID: "importance_score", For: "node", AttrName: "importance_score", AttrType: "double"},
	{ID: "relationship", For: "edge", AttrName: "relationship", AttrType: "string"},
	{ID: "weight", For: "edge", AttrName: "weight", AttrType: "double"},
}

// GraphML writes the graph as GraphML, a widely supported XML graph format
func (e *Exporter) GraphML(w io.Writer) error {
	doc := graphmlDoc{
		Xmlns: "http://graphml.graphdrawing.org/xmlns",
		Keys:  graphmlNodeKeys,
		Graph: graphmlGraph{
			ID:          "knowledge_graph",
			EdgeDefault: "directed",
		},
	}

	for _, node := range e.graph.Nodes {
		doc.Graph.Nodes = append(doc.Graph.Nodes, graphmlNode{
			ID: node.ID,
			Data: []graphmlData{
				{Key: "title", Value: node.Title},
				{Key: "url", Value: node.URL},
				{Key: "level", Value: strconv.Itoa(node.Level)},
				{Key: "node_type", Value: string(node.NodeType)},
				{Key: "domain", Value: node.Domain},
				{Key: "content_type", Value: string(node.ContentType)},
				{Key: "keywords", Value: strings.Join(node.Keywords, "; ")},
				{Key: "entities", Value: strings.Join(node.Entities, "; ")},
				{Key: "importance_score", Value: strconv.FormatFloat(node.ImportanceScore, 'f', -1, 64)},
			},
		})
	}

	for _, edge := range e.graph.Edges {
		doc.Graph.Edges = append(doc.Graph.Edges, graphmlEdge{
			Source: edge.Source,
			Target: edge.Target,
			Data: []graphmlData{
				{Key: "relationship", Value: string(edge.Relationship)},
				{Key: "weight", Value: strconv.FormatFloat(edge.Weight, 'f', -1, 64)},
			},
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return helper.NewError("write graphml header", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return helper.NewError("encode graphml", err)
	}

	_, err := io.WriteString(w, "\n")
	return err
}
