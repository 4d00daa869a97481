package classify

import (
	"strings"

	"github.com/kgweaver/kgweaver/model"
)

// Classify assigns a coarse content type to a search result from its URL and
// title. Rules are evaluated in a fixed order and the first match wins; no
// external calls, no randomness.
func Classify(url string, title string) model.ContentType {
	url = strings.ToLower(url)
	title = strings.ToLower(title)

	switch {
	case strings.Contains(url, "arxiv.org") || strings.Contains(title, "research") || strings.Contains(title, "paper"):
		return model.ContentTypeResearchPaper
	case strings.Contains(url, "github.com"):
		return model.ContentTypeCodeRepository
	case strings.Contains(url, "linkedin.com"):
		return model.ContentTypeProfile
	case strings.Contains(url, "news") || strings.Contains(url, "blog"):
		return model.ContentTypeArticle
	case containsAny(title, "company", "corp", "inc", "about us"):
		return model.ContentTypeCompanyPage
	default:
		return model.ContentTypeWebpage
	}
}

func containsAny(s string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
