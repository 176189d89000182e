package trivia

import (
	"errors"
	"strconv"
)

// QuestionsPerPage is the fixed page size for every paginated listing.
const QuestionsPerPage = 10

// QuizLength is the number of questions served before a quiz session ends.
const QuizLength = 5

// AllCategories is the quiz_category.type sentinel the frontend sends when
// the player picks "All". Inherited from the client UI; the wire value must
// stay bit-exact.
const AllCategories = "click"

// ErrNotFound marks an absent row or an empty result set that the API
// reports as 404.
var ErrNotFound = errors.New("resource not found")

// Question is a stored trivia question.
type Question struct {
	ID         int64
	Text       string
	Answer     string
	Difficulty int32
	CategoryID int64
}

// Category is a read-only display category, pre-seeded in the store.
type Category struct {
	ID   int64
	Type string
}

// QuestionView is the wire shape of a question.
type QuestionView struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int32  `json:"difficulty"`
	Category   int64  `json:"category"`
}

// View formats a stored question for the wire.
func (q Question) View() QuestionView {
	return QuestionView{
		ID:         q.ID,
		Question:   q.Text,
		Answer:     q.Answer,
		Difficulty: q.Difficulty,
		Category:   q.CategoryID,
	}
}

// CategoryMap renders categories as the id→type JSON object the frontend
// expects. JSON object keys are strings, so ids are printed in decimal.
func CategoryMap(categories []Category) map[string]string {
	m := make(map[string]string, len(categories))
	for _, c := range categories {
		m[strconv.FormatInt(c.ID, 10)] = c.Type
	}
	return m
}

func formatQuestions(questions []Question) []QuestionView {
	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, q.View())
	}
	return views
}

// CreateRequest carries a fully validated new question.
type CreateRequest struct {
	Question   string
	Answer     string
	Difficulty int32
	Category   int64
}

// SearchRequest carries a validated substring search.
type SearchRequest struct {
	Term string
}

// QuizCategory identifies the category a quiz draws from.
type QuizCategory struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// QuestionPage is the response payload for the paginated question listing.
type QuestionPage struct {
	Questions  []QuestionView
	Total      int
	Categories map[string]string
}

// SearchResult holds one page of matches plus the total match count.
type SearchResult struct {
	Questions []QuestionView
	Total     int
}

// CategoryQuestions holds every question of a single category.
type CategoryQuestions struct {
	Questions []QuestionView
	Total     int
	Category  int64
}
