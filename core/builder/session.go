package builder

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kgweaver/kgweaver/core/classify"
	"github.com/kgweaver/kgweaver/core/extract"
	"github.com/kgweaver/kgweaver/model"
)

// session holds the mutable state of a single build: the node registry, the
// edge list, the visited-URL set and the extraction cache. A session is
// created per Build call and discarded afterwards, so concurrent builds
// never share state.
type session struct {
	id     uuid.UUID
	config model.BuildConfig

	// Registry writes are serialized so the first-seen URL always wins
	// its level, even if parent lookups are ever parallelized.
	mu        sync.Mutex
	nodes     map[string]*model.Node
	nodeOrder []string
	edges     []*model.Edge
	visited   map[string]bool

	extractor    extract.ExtractFunc
	extractCache map[string]extraction
}

type extraction struct {
	entities []string
	keywords []string
}

func newSession(config model.BuildConfig, extractor extract.ExtractFunc) *session {
	return &session{
		id:           uuid.New(),
		config:       config,
		nodes:        make(map[string]*model.Node),
		visited:      make(map[string]bool),
		extractor:    extractor,
		extractCache: make(map[string]extraction),
	}
}

// register creates a node for a search result and, when a parent is given,
// the similar_to edge from parent to child atomically with it. Results
// without a URL and URLs already visited in this session are skipped and
// return nil.
func (s *session) register(result model.SearchResult, level int, parentID string) *model.Node {
	if result.URL == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.visited[result.URL] {
		return nil
	}
	s.visited[result.URL] = true

	entities, keywords := s.extractFeatures(result.Text + " " + result.Summary)

	node := &model.Node{
		ID:            model.NewNodeID(result.Title, result.URL, level),
		Title:         result.Title,
		URL:           result.URL,
		Level:         level,
		NodeType:      model.NodeTypeForLevel(level),
		Summary:       result.Summary,
		Author:        result.Author,
		PublishedDate: result.PublishedDate,
		Domain:        model.DomainFromURL(result.URL),
		ContentType:   classify.Classify(result.URL, result.Title),
		Keywords:      keywords,
		Entities:      entities,
	}

	s.nodes[node.ID] = node
	s.nodeOrder = append(s.nodeOrder, node.ID)

	if parentID != "" {
		if _, ok := s.nodes[parentID]; ok {
			s.edges = append(s.edges, &model.Edge{
				Source:       parentID,
				Target:       node.ID,
				Relationship: model.RelationshipSimilarTo,
				Weight:       result.SimilarityWeight(),
				Metadata: model.Metadata{
					"level_transition": fmt.Sprintf("%d_to_%d", level-1, level),
				},
			})
		}
	}

	return node
}

// extractFeatures runs the extractor, caching by content hash so identical
// text across results is only processed once. Empty input is never cached.
func (s *session) extractFeatures(text string) ([]string, []string) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	sum := md5.Sum([]byte(text))
	key := hex.EncodeToString(sum[:])
	if cached, ok := s.extractCache[key]; ok {
		return cached.entities, cached.keywords
	}

	entities, keywords := s.extractor(text)
	s.extractCache[key] = extraction{entities: entities, keywords: keywords}

	return entities, keywords
}

// nodeList returns all nodes in creation order
func (s *session) nodeList() []*model.Node {
	nodes := make([]*model.Node, 0, len(s.nodeOrder))
	for _, id := range s.nodeOrder {
		nodes = append(nodes, s.nodes[id])
	}
	return nodes
}

// nodesAtLevel returns the nodes created at a level, in creation order
func (s *session) nodesAtLevel(level int) []*model.Node {
	var nodes []*model.Node
	for _, id := range s.nodeOrder {
		if node := s.nodes[id]; node.Level == level {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// connected reports whether any edge joins the two ids, in either direction
func (s *session) connected(a, b string) bool {
	for _, edge := range s.edges {
		if edge.Connects(a, b) {
			return true
		}
	}
	return false
}
