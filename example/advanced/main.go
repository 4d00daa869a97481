package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/kgweaver/kgweaver"
	"github.com/kgweaver/kgweaver/helper"
	"github.com/kgweaver/kgweaver/model"
)

// This example combines a search-driven build, the NER extractor, a
// Companies House ownership network and Neo4j persistence. It needs
// EXA_API_KEY set; COMPANIES_HOUSE_API_KEY and NEO4J_URI are optional
// and enable their sections when present.
func main() {
	ctx := context.Background()
	config := helper.NewConfiguration()

	buildConfig := model.BuildConfig{
		MaxDepth:             4,
		MaxResultsPerLevel:   8,
		MaxParentsPerLevel:   3,
		MaxChildrenPerParent: 4,
	}

	k, err := kgweaver.NewKGWeaver(config, &buildConfig)
	if err != nil {
		log.Fatalf("Failed to create kgweaver: %v", err)
	}
	defer k.Close(ctx)

	// Swap the heuristic extractor for transformer based NER.
	// The model download can take a while on first run.
	fmt.Println("Loading NER model...")
	if err := k.UseNERExtractor(); err != nil {
		log.Printf("NER extractor unavailable, staying with heuristics: %v", err)
	}

	// Build outward from a URL instead of a query
	graph, err := k.BuildFromURL(ctx, "https://arxiv.org/abs/1706.03762")
	if err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}
	fmt.Printf("Built graph with %d nodes and %d edges\n",
		graph.Metadata.TotalNodes, graph.Metadata.TotalEdges)

	// Knowledge triples for downstream reasoning
	triples := k.Triples(graph)
	fmt.Printf("Extracted %d triples, for example:\n", len(triples))
	for i, triple := range triples {
		if i == 5 {
			break
		}
		fmt.Printf("  (%s, %s, %s)\n", triple.Subject, triple.Predicate, triple.Object)
	}

	// Company ownership network from the UK registry
	if k.Registry != nil {
		network, err := k.BuildCompanyNetwork(ctx, "DeepMind")
		if err != nil {
			log.Printf("Company network failed: %v", err)
		} else {
			fmt.Printf("Company network: %d nodes, %d edges\n",
				network.Metadata.TotalNodes, network.Metadata.TotalEdges)
		}
	}

	// Persist into Neo4j and query it back
	if config.Neo4jURI != "" {
		if err := k.UseNeo4j(ctx, config); err != nil {
			log.Fatalf("Failed to connect to Neo4j: %v", err)
		}
		if err := k.Persist(ctx, graph); err != nil {
			log.Fatalf("Failed to persist graph: %v", err)
		}

		connected, err := k.Store.MostConnected(ctx, 3)
		if err != nil {
			log.Fatalf("Failed to query Neo4j: %v", err)
		}
		fmt.Println("Most connected nodes in the store:")
		for _, c := range connected {
			fmt.Printf("  %s (%d connections)\n", c.Node.Title, c.Connections)
		}
	}

	// Full export fan-out
	exporter := k.Exporter(graph)
	summaryFile, err := os.Create("report.md")
	if err != nil {
		log.Fatalf("Failed to create report.md: %v", err)
	}
	defer summaryFile.Close()
	if err := exporter.Summary(summaryFile); err != nil {
		log.Fatalf("Failed to write summary: %v", err)
	}

	cypherFile, err := os.Create("graph.cypher")
	if err != nil {
		log.Fatalf("Failed to create graph.cypher: %v", err)
	}
	defer cypherFile.Close()
	if err := exporter.Cypher(cypherFile); err != nil {
		log.Fatalf("Failed to write cypher script: %v", err)
	}

	fmt.Println("Wrote report.md and graph.cypher")
}
