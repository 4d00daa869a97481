package model

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
)

// NodeType represents the role of a node relative to the seed
type NodeType string

const (
	NodeTypeRoot      NodeType = "root"
	NodeTypePrimary   NodeType = "primary"
	NodeTypeSecondary NodeType = "secondary"
	NodeTypeTertiary  NodeType = "tertiary"
)

// ContentType is a coarse label assigned to a node at creation
type ContentType string

const (
	ContentTypeResearchPaper  ContentType = "research_paper"
	ContentTypeCodeRepository ContentType = "code_repository"
	ContentTypeProfile        ContentType = "profile"
	ContentTypeArticle        ContentType = "article"
	ContentTypeCompanyPage    ContentType = "company_page"
	ContentTypeWebpage        ContentType = "webpage"
)

// Node represents a discovered content item in the knowledge graph
type Node struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	URL             string      `json:"url"`
	Level           int         `json:"level"`
	NodeType        NodeType    `json:"node_type"`
	Summary         string      `json:"summary"`
	Author          string      `json:"author"`
	PublishedDate   string      `json:"published_date"`
	Domain          string      `json:"domain"`
	ContentType     ContentType `json:"content_type"`
	Keywords        []string    `json:"keywords"`
	Entities        []string    `json:"entities"`
	ImportanceScore float64     `json:"importance_score"`
}

// NewNodeID derives a stable node id from title, URL and level.
// Identical inputs always produce the identical id, so rebuilding a graph
// from the same collaborator responses reproduces the same ids.
func NewNodeID(title string, rawURL string, level int) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s_%s_%d", title, rawURL, level)))
	return hex.EncodeToString(sum[:])[:12]
}

// NodeTypeForLevel maps a level to its node type, capped at tertiary
func NodeTypeForLevel(level int) NodeType {
	switch level {
	case 0:
		return NodeTypeRoot
	case 1:
		return NodeTypePrimary
	case 2:
		return NodeTypeSecondary
	default:
		return NodeTypeTertiary
	}
}

// DomainFromURL extracts the host component of a URL.
// Returns an empty string for unparseable or host-less URLs.
func DomainFromURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}
