package apps

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Filter returns the definitions matching query, in registration order.
// Fuzzy matches on the name win; when there are none, a substring match on
// name or ID is tried.
func Filter(defs []Definition, query string) []Definition {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return append([]Definition(nil), defs...)
	}
	names := make([]string, len(defs))
	for i, def := range defs {
		names[i] = def.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, names)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]Definition, 0, len(matches))
		for idx, def := range defs {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, def)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]Definition, 0, len(defs))
	for _, def := range defs {
		if strings.Contains(strings.ToLower(def.Name), lower) || strings.Contains(strings.ToLower(def.ID), lower) {
			filtered = append(filtered, def)
		}
	}
	return filtered
}

// BestMatch returns the index in defs that query most likely means: exact
// name or ID, then name prefix, then ID prefix, then the closest fuzzy
// match. It returns -1 only for an empty list.
func BestMatch(defs []Definition, query string) int {
	if len(defs) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, def := range defs {
		if strings.EqualFold(def.Name, trimmed) || strings.EqualFold(def.ID, trimmed) {
			return i
		}
	}
	for i, def := range defs {
		if strings.HasPrefix(strings.ToLower(def.Name), lower) {
			return i
		}
	}
	for i, def := range defs {
		if strings.HasPrefix(strings.ToLower(def.ID), lower) {
			return i
		}
	}
	names := make([]string, len(defs))
	for i, def := range defs {
		names[i] = def.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, names)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}
