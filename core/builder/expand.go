package builder

import (
	"context"
	"log/slog"

	"github.com/kgweaver/kgweaver/model"
)

// expandSeed performs the single level-0 lookup and registers its results as
// root nodes
func (b *Builder) expandSeed(ctx context.Context, s *session, seed string, seedIsURL bool) {
	var results []model.SearchResult
	var err error

	if seedIsURL {
		results, err = b.search.FindSimilar(ctx, seed, b.config.MaxResultsPerLevel)
	} else {
		results, err = b.search.Search(ctx, seed, b.config.MaxResultsPerLevel)
	}
	if err != nil {
		// A failed seed lookup still produces a well-formed empty graph
		b.log.Warn("Seed lookup failed, continuing with empty level 0",
			slog.String("seed", seed),
			slog.String("error", err.Error()),
		)
		return
	}

	for _, result := range results {
		s.register(result, 0, "")
	}
}

// expandLevel grows one level of the graph: it takes the first few nodes
// created at the previous level and issues one similarity lookup per parent.
// The parent cap bounds external API call volume; a lookup failure means
// that parent contributes no children and the rest of the level proceeds.
func (b *Builder) expandLevel(ctx context.Context, s *session, level int) {
	parents := s.nodesAtLevel(level - 1)
	if len(parents) > b.config.MaxParentsPerLevel {
		parents = parents[:b.config.MaxParentsPerLevel]
	}

	for _, parent := range parents {
		if parent.URL == "" {
			continue
		}

		results, err := b.search.FindSimilar(ctx, parent.URL, b.config.ChildLimit())
		if err != nil {
			b.log.Warn("Similarity lookup failed, branch contributes no children",
				slog.Int("level", level),
				slog.String("parent_id", parent.ID),
				slog.String("error", err.Error()),
			)
			continue
		}

		for _, result := range results {
			s.register(result, level, parent.ID)
		}
	}
}
