package service

import (
	"golang.org/x/sync/errgroup"

	"procure-service/internal/procure/model"
)

// Reconcile resolves every line: dictionary first, fuzzy always (kept for
// review), final = dictionary hit, else accepted fuzzy suggestion, else none.
// Output order equals input order. workers > 1 spreads lines over goroutines;
// each goroutine writes only its own slot.
func Reconcile(lines []model.PoLine, dict *Dictionary, m Matcher, workers int) []model.ResolvedLine {
	if m == nil {
		m = NoopMatcher{}
	}
	out := make([]model.ResolvedLine, len(lines))

	if workers <= 1 || len(lines) < 2 {
		for i := range lines {
			out[i] = resolveLine(lines[i], dict, m)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range lines {
		i := i
		g.Go(func() error {
			out[i] = resolveLine(lines[i], dict, m)
			return nil
		})
	}
	g.Wait() // workers never fail
	return out
}

func resolveLine(line model.PoLine, dict *Dictionary, m Matcher) model.ResolvedLine {
	rl := model.ResolvedLine{PoLine: line, Method: model.MethodNone}

	if g, ok := dict.Resolve(line.Description); ok {
		rl.Exact = &g
	}

	sug := m.Suggest(line.Description)
	rl.Suggested, rl.Closest, rl.Score = sug.Garment, sug.Closest, sug.Score

	switch {
	case rl.Exact != nil:
		final := *rl.Exact
		rl.Final, rl.Method = &final, model.MethodDictionary
	case rl.Suggested != nil:
		final := *rl.Suggested
		rl.Final, rl.Method = &final, model.MethodFuzzy
	}
	return rl
}
