package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/kgweaver/kgweaver"
	"github.com/kgweaver/kgweaver/helper"
)

func main() {
	// Reads EXA_API_KEY and friends from the environment or a .env file
	config := helper.NewConfiguration()

	k, err := kgweaver.NewKGWeaver(config, nil)
	if err != nil {
		log.Fatalf("Failed to create kgweaver: %v", err)
	}
	defer k.Close(context.Background())

	// Build a graph outward from a topic
	graph, err := k.BuildFromQuery(context.Background(), "knowledge graph construction")
	if err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}

	fmt.Printf("Built graph with %d nodes and %d edges\n",
		graph.Metadata.TotalNodes, graph.Metadata.TotalEdges)

	stats := k.Statistics()
	if stats != nil {
		fmt.Printf("Levels: %d, distinct domains: %d\n", stats.Levels, stats.Domains)
		fmt.Printf("Avg entities per node: %.1f, avg keywords per node: %.1f\n",
			stats.AvgEntitiesPerNode, stats.AvgKeywordsPerNode)
	}

	// Print the most important nodes
	for _, node := range graph.Nodes {
		if node.ImportanceScore >= 1.0 {
			fmt.Printf("  [%s] %s (%s, score %.2f)\n",
				node.NodeType, node.Title, node.ContentType, node.ImportanceScore)
		}
	}

	// Export the graph as JSON and as a Graphviz file
	exporter := k.Exporter(graph)

	jsonFile, err := os.Create("graph.json")
	if err != nil {
		log.Fatalf("Failed to create graph.json: %v", err)
	}
	defer jsonFile.Close()
	if err := exporter.JSON(jsonFile); err != nil {
		log.Fatalf("Failed to export JSON: %v", err)
	}

	dotFile, err := os.Create("graph.dot")
	if err != nil {
		log.Fatalf("Failed to create graph.dot: %v", err)
	}
	defer dotFile.Close()
	if err := exporter.DOT(dotFile); err != nil {
		log.Fatalf("Failed to export DOT: %v", err)
	}

	fmt.Println("Wrote graph.json and graph.dot")
}
