package builder

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/kgweaver/kgweaver/core/extract"
	"github.com/kgweaver/kgweaver/helper"
	"github.com/kgweaver/kgweaver/model"
)

// SearchClient is the external content-search collaborator. Both lookups
// return ranked results or an error; the builder treats any error as an
// empty result set and keeps going.
type SearchClient interface {
	Search(ctx context.Context, query string, limit int) ([]model.SearchResult, error)
	FindSimilar(ctx context.Context, url string, limit int) ([]model.SearchResult, error)
}

// Builder constructs knowledge graphs by expanding outward from a seed
// through repeated similarity lookups. A Builder is safe for concurrent use;
// each Build call runs in its own session.
type Builder struct {
	search    SearchClient
	extractor extract.ExtractFunc
	config    model.BuildConfig
	log       *slog.Logger

	mu        sync.Mutex
	lastGraph *model.Graph
}

// Option configures a Builder
type Option func(*Builder)

// WithExtractor replaces the default heuristic extractor
func WithExtractor(extractor extract.ExtractFunc) Option {
	return func(b *Builder) {
		b.extractor = extractor
	}
}

// WithLogger replaces the default logger
func WithLogger(log *slog.Logger) Option {
	return func(b *Builder) {
		b.log = log
	}
}

// NewBuilder creates a Builder around a search client
func NewBuilder(search SearchClient, config model.BuildConfig, opts ...Option) *Builder {
	b := &Builder{
		search:    search,
		extractor: extract.HeuristicExtractor(),
		config:    config,
		log:       helper.NewLogger(os.Stdout, slog.LevelInfo),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetExtractor replaces the extractor used by subsequent builds
func (b *Builder) SetExtractor(extractor extract.ExtractFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.extractor = extractor
}

// Build constructs a graph from a seed query or URL. The seed lookup is a
// text search unless seedIsURL is set, in which case it is a similarity
// lookup. Collaborator failures degrade to empty levels; only an invalid
// configuration fails the build.
func (b *Builder) Build(ctx context.Context, seed string, seedIsURL bool) (*model.Graph, error) {
	if err := b.config.Validate(); err != nil {
		return nil, helper.NewError("validate build config", err)
	}

	b.mu.Lock()
	extractor := b.extractor
	b.mu.Unlock()

	s := newSession(b.config, extractor)

	b.log.Info("Starting graph build",
		slog.String("session_id", s.id.String()),
		slog.String("seed", seed),
		slog.Bool("seed_is_url", seedIsURL),
		slog.Int("max_depth", b.config.MaxDepth),
	)

	b.expandSeed(ctx, s, seed, seedIsURL)

	for level := 1; level < b.config.MaxDepth; level++ {
		b.expandLevel(ctx, s, level)
	}

	inferRelationships(s)
	scoreNodes(s)

	graph := exportGraph(s)

	b.log.Info("Graph build complete",
		slog.String("session_id", s.id.String()),
		slog.Int("nodes", graph.Metadata.TotalNodes),
		slog.Int("edges", graph.Metadata.TotalEdges),
	)

	b.mu.Lock()
	b.lastGraph = graph
	b.mu.Unlock()

	return graph, nil
}

// LastGraph returns the most recently built graph, or nil if no build has
// run yet
func (b *Builder) LastGraph() *model.Graph {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastGraph
}

// Statistics summarizes the most recently built graph, or nil if no build
// has run yet
func (b *Builder) Statistics() *model.Statistics {
	graph := b.LastGraph()
	if graph == nil || len(graph.Nodes) == 0 {
		return nil
	}
	return Statistics(graph)
}
