package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kgweaver/kgweaver/model"
)

func testGraph() *model.Graph {
	return &model.Graph{
		Nodes: []*model.Node{
			{
				ID:              "aaa111",
				Title:           "Root Page",
				URL:             "https://example.com",
				Level:           0,
				NodeType:        model.NodeTypeRoot,
				Summary:         "Seed of the graph",
				Domain:          "example.com",
				ContentType:     model.ContentTypeWebpage,
				Keywords:        []string{"graph", "database"},
				Entities:        []string{"Acme Corp"},
				ImportanceScore: 1.6,
			},
			{
				ID:              "bbb222",
				Title:           "Child Article",
				URL:             "https://blog.example.com/post",
				Level:           1,
				NodeType:        model.NodeTypePrimary,
				Domain:          "blog.example.com",
				ContentType:     model.ContentTypeArticle,
				ImportanceScore: 0.65,
			},
			{
				ID:              "ccc333",
				Title:           "Second Child",
				URL:             "https://example.com/more",
				Level:           1,
				NodeType:        model.NodeTypePrimary,
				Domain:          "example.com",
				ContentType:     model.ContentTypeWebpage,
				ImportanceScore: 0.4,
			},
		},
		Edges: []*model.Edge{
			{Source: "aaa111", Target: "bbb222", Relationship: model.RelationshipSimilarTo, Weight: 0.9},
			{Source: "aaa111", Target: "ccc333", Relationship: model.RelationshipSimilarTo, Weight: 0.5},
			{Source: "bbb222", Target: "ccc333", Relationship: model.RelationshipSameDomain, Weight: 0.5},
		},
		Metadata: model.GraphMetadata{TotalNodes: 3, TotalEdges: 3, MaxDepth: 2},
	}
}

func TestNewAdapter(t *testing.T) {
	t.Run("Rejects missing uri", func(t *testing.T) {
		adapter, err := NewAdapter(context.Background(), nil)

		require.Error(t, err)
		assert.Nil(t, adapter)
	})
}

func TestImportGraph(t *testing.T) {
	adapter := initAdapter(t)
	ctx := context.Background()

	t.Run("Imports nodes and relationships", func(t *testing.T) {
		require.NoError(t, adapter.ImportGraph(ctx, testGraph()))

		stats, err := adapter.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.NodeCount)
		assert.Equal(t, 3, stats.RelationshipCount)
		assert.Equal(t, 1, stats.Levels[0])
		assert.Equal(t, 2, stats.Levels[1])
		assert.Equal(t, 2, stats.ContentTypes[model.ContentTypeWebpage])
		assert.Equal(t, 1, stats.ContentTypes[model.ContentTypeArticle])
	})

	t.Run("Importing twice is idempotent", func(t *testing.T) {
		require.NoError(t, adapter.ImportGraph(ctx, testGraph()))
		require.NoError(t, adapter.ImportGraph(ctx, testGraph()))

		stats, err := adapter.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.NodeCount)
		assert.Equal(t, 3, stats.RelationshipCount)
	})

	t.Run("Nil and empty graphs are no-ops", func(t *testing.T) {
		assert.NoError(t, adapter.ImportGraph(ctx, nil))
		assert.NoError(t, adapter.ImportGraph(ctx, &model.Graph{}))
	})
}

func TestQueries(t *testing.T) {
	adapter := initAdapter(t)
	ctx := context.Background()
	require.NoError(t, adapter.ImportGraph(ctx, testGraph()))

	t.Run("NodesByLevel returns nodes ordered by importance", func(t *testing.T) {
		nodes, err := adapter.NodesByLevel(ctx, 1)

		require.NoError(t, err)
		require.Len(t, nodes, 2)
		assert.Equal(t, "bbb222", nodes[0].ID, "Higher importance first")
		assert.Equal(t, "ccc333", nodes[1].ID)
		assert.Equal(t, model.NodeTypePrimary, nodes[0].NodeType)
	})

	t.Run("NodesByDomain filters on domain", func(t *testing.T) {
		nodes, err := adapter.NodesByDomain(ctx, "example.com")

		require.NoError(t, err)
		assert.Len(t, nodes, 2)
	})

	t.Run("NodesByContentType filters on content type", func(t *testing.T) {
		nodes, err := adapter.NodesByContentType(ctx, model.ContentTypeArticle)

		require.NoError(t, err)
		require.Len(t, nodes, 1)
		assert.Equal(t, "Child Article", nodes[0].Title)
	})

	t.Run("SearchByText matches title and summary case-insensitively", func(t *testing.T) {
		nodes, err := adapter.SearchByText(ctx, "SEED", 10)

		require.NoError(t, err)
		require.Len(t, nodes, 1)
		assert.Equal(t, "aaa111", nodes[0].ID)
	})

	t.Run("Neighbors follows edges in both directions", func(t *testing.T) {
		nodes, err := adapter.Neighbors(ctx, "ccc333")

		require.NoError(t, err)
		assert.Len(t, nodes, 2, "Incoming expansion edge and same-domain edge")
	})

	t.Run("MostConnected ranks by degree", func(t *testing.T) {
		connected, err := adapter.MostConnected(ctx, 2)

		require.NoError(t, err)
		require.Len(t, connected, 2)
		assert.Equal(t, 2, connected[0].Connections)
	})

	t.Run("ShortestPath finds a route between nodes", func(t *testing.T) {
		path, err := adapter.ShortestPath(ctx, "bbb222", "aaa111")

		require.NoError(t, err)
		assert.Equal(t, []string{"bbb222", "aaa111"}, path)
	})

	t.Run("Keywords and entities round-trip as lists", func(t *testing.T) {
		nodes, err := adapter.NodesByLevel(ctx, 0)

		require.NoError(t, err)
		require.Len(t, nodes, 1)
		assert.Equal(t, []string{"graph", "database"}, nodes[0].Keywords)
		assert.Equal(t, []string{"Acme Corp"}, nodes[0].Entities)
	})
}

func TestClear(t *testing.T) {
	adapter := initAdapter(t)
	ctx := context.Background()
	require.NoError(t, adapter.ImportGraph(ctx, testGraph()))

	require.NoError(t, adapter.Clear(ctx))

	stats, err := adapter.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.NodeCount)
	assert.Equal(t, 0, stats.RelationshipCount)
}
