package trivia

import "math/rand"

// Paginate returns the 1-based page of a formatted result set, clipped to
// the input length. Pages past the end are an empty slice, not an error;
// only an empty unfiltered result set is a not-found condition, and that is
// the caller's call.
func Paginate(page int, items []QuestionView) []QuestionView {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * QuestionsPerPage
	if start >= len(items) {
		return []QuestionView{}
	}
	end := start + QuestionsPerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// pickRandom selects one element uniformly at random. Callers must check
// emptiness first.
func pickRandom(items []Question) Question {
	return items[rand.Intn(len(items))]
}
