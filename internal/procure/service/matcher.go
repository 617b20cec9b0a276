package service

import "procure-service/internal/procure/model"

// Matcher is the approximate-match stage.
type Matcher interface {
	Suggest(description string) model.Suggestion
}

// NoopMatcher is used when fuzzy matching is switched off: nothing found, no score.
type NoopMatcher struct{}

func (NoopMatcher) Suggest(string) model.Suggestion { return model.Suggestion{} }

// CatalogMatcher scores the description against every catalog name and keeps
// the first maximum in catalog order.
type CatalogMatcher struct {
	catalog   *Catalog
	threshold float64
	score     Scorer
}

func NewCatalogMatcher(c *Catalog, threshold float64, score Scorer) *CatalogMatcher {
	if score == nil {
		score = TokenSortRatio
	}
	return &CatalogMatcher{catalog: c, threshold: threshold, score: score}
}

// Suggest accepts the best name iff its score >= threshold. The score is
// returned either way so near misses can be reviewed.
func (m *CatalogMatcher) Suggest(description string) model.Suggestion {
	names := m.catalog.Names()
	if len(names) == 0 {
		return model.Suggestion{}
	}
	q := Normalize(description)

	bestName := names[0]
	best := m.score(q, bestName)
	for _, n := range names[1:] {
		if s := m.score(q, n); s > best {
			best, bestName = s, n
		}
	}

	closest := m.catalog.Lookup(bestName)[0].Garment
	sug := model.Suggestion{Closest: &closest, Score: &best}
	if best >= m.threshold {
		g := closest
		sug.Garment = &g
	}
	return sug
}
