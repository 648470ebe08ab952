package listing

import "strings"

// Search keeps the active events whose title contains text (case-insensitive) and whose
// category equals category. An empty category matches all.
func Search(events []ViewModel, text string, category Category) []ViewModel {
	needle := strings.ToLower(text)
	result := make([]ViewModel, 0, len(events))
	for _, e := range events {
		if !e.Status {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		if !strings.Contains(strings.ToLower(e.Title), needle) {
			continue
		}
		result = append(result, e)
	}
	return result
}

// WithIds keeps the events whose id is in ids, in their original order.
func WithIds(events []ViewModel, ids []int) []ViewModel {
	keep := make(map[int]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	result := make([]ViewModel, 0, len(ids))
	for _, e := range events {
		if keep[e.Id] {
			result = append(result, e)
		}
	}
	return result
}
