package model

// SearchResult is the shape of a single result returned by the external
// content-search collaborator (text search or similarity lookup).
type SearchResult struct {
	URL            string  `json:"url"`
	Title          string  `json:"title"`
	Summary        string  `json:"summary,omitempty"`
	Author         string  `json:"author,omitempty"`
	PublishedDate  string  `json:"publishedDate,omitempty"`
	Text           string  `json:"text,omitempty"`
	RelevanceScore float64 `json:"relevanceScore,omitempty"`
}

// SimilarityWeight returns the weight of the expansion edge that discovered
// this result, defaulting to 0.5 when the collaborator reported no score
func (r *SearchResult) SimilarityWeight() float64 {
	if r.RelevanceScore > 0 {
		return r.RelevanceScore
	}
	return 0.5
}
