package kgweaver

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/kgweaver/kgweaver/core/builder"
	"github.com/kgweaver/kgweaver/core/extract"
	"github.com/kgweaver/kgweaver/database"
	"github.com/kgweaver/kgweaver/export"
	"github.com/kgweaver/kgweaver/helper"
	"github.com/kgweaver/kgweaver/model"
	"github.com/kgweaver/kgweaver/registry"
	"github.com/kgweaver/kgweaver/search"
)

var (
	errNoRegistry = errors.New("companies house api key not configured")
	errNoStore    = errors.New("no neo4j store attached, use UseNeo4j first")
)

// KGWeaver provides a unified interface to graph building, company
// registry lookups and persistence
type KGWeaver struct {
	Search   *search.Client
	Builder  *builder.Builder
	Registry *registry.Client  // Optional Companies House client
	Store    *database.Adapter // Optional Neo4j persistence
	// Logging
	log *slog.Logger
}

// NewKGWeaver creates a new KGWeaver instance from the given
// configuration. The Companies House client is only created when an API
// key is configured; Neo4j persistence has to be attached explicitly
// with UseNeo4j.
func NewKGWeaver(config *helper.Configuration, buildConfig *model.BuildConfig) (*KGWeaver, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	var searchOpts []search.ClientOption
	if config.ExaBaseURL != "" {
		searchOpts = append(searchOpts, search.WithBaseURL(config.ExaBaseURL))
	}
	searchClient, err := search.NewClient(config.ExaAPIKey, searchOpts...)
	if err != nil {
		return nil, err
	}

	var cfg model.BuildConfig
	if buildConfig != nil {
		cfg = *buildConfig
	} else {
		cfg = model.DefaultBuildConfig()
	}

	weaver := &KGWeaver{
		Search:  searchClient,
		Builder: builder.NewBuilder(searchClient, cfg, builder.WithLogger(logger)),
		log:     logger,
	}

	if config.CompaniesHouseAPIKey != "" {
		registryClient, err := registry.NewClient(config.CompaniesHouseAPIKey)
		if err != nil {
			return nil, err
		}
		weaver.Registry = registryClient
	}

	return weaver, nil
}

// UseNERExtractor replaces the default heuristic entity extraction with
// a transformer based named entity recognition model. The model is
// downloaded on first use.
func (k *KGWeaver) UseNERExtractor() error {
	extractor, err := extract.NERExtractor()
	if err != nil {
		return helper.NewError("create ner extractor", err)
	}
	k.Builder.SetExtractor(extractor)
	return nil
}

// UseNeo4j attaches a Neo4j store for persisting built graphs
func (k *KGWeaver) UseNeo4j(ctx context.Context, config *helper.Configuration) error {
	store, err := database.NewAdapter(ctx, config)
	if err != nil {
		return err
	}
	k.Store = store
	return nil
}

// Close releases the Neo4j driver if one is attached
func (k *KGWeaver) Close(ctx context.Context) error {
	if k.Store != nil {
		return k.Store.Close(ctx)
	}
	return nil
}

// BuildFromQuery builds a knowledge graph seeded by a text search query
func (k *KGWeaver) BuildFromQuery(ctx context.Context, query string) (*model.Graph, error) {
	k.log.Info("Building knowledge graph", slog.String("seed_query", query))
	return k.Builder.Build(ctx, query, false)
}

// BuildFromURL builds a knowledge graph seeded by a URL, expanding via
// similarity search
func (k *KGWeaver) BuildFromURL(ctx context.Context, url string) (*model.Graph, error) {
	k.log.Info("Building knowledge graph", slog.String("seed_url", url))
	return k.Builder.Build(ctx, url, true)
}

// BuildCompanyNetwork builds a graph of a company's officers and
// controlling persons from the Companies House registry
func (k *KGWeaver) BuildCompanyNetwork(ctx context.Context, companyName string) (*model.Graph, error) {
	if k.Registry == nil {
		return nil, helper.NewError("build company network", errNoRegistry)
	}
	k.log.Info("Building company network", slog.String("company", companyName))
	return k.Registry.CompanyNetwork(ctx, companyName)
}

// Statistics returns summary statistics for the last built graph, or
// nil when no graph has been built yet
func (k *KGWeaver) Statistics() *model.Statistics {
	return k.Builder.Statistics()
}

// Triples returns the subject predicate object triples of a graph
func (k *KGWeaver) Triples(graph *model.Graph) []model.Triple {
	return builder.Triples(graph)
}

// Exporter returns an exporter over the given graph
func (k *KGWeaver) Exporter(graph *model.Graph) *export.Exporter {
	return export.NewExporter(graph)
}

// Persist imports a graph into the attached Neo4j store
func (k *KGWeaver) Persist(ctx context.Context, graph *model.Graph) error {
	if k.Store == nil {
		return helper.NewError("persist graph", errNoStore)
	}
	k.log.Info("Persisting graph",
		slog.Int("nodes", len(graph.Nodes)),
		slog.Int("edges", len(graph.Edges)))
	return k.Store.ImportGraph(ctx, graph)
}
