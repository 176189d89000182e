package trivia

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// QuestionStore is the persistence collaborator for questions.
type QuestionStore interface {
	ListAll(ctx context.Context) ([]Question, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]Question, error)
	SearchByText(ctx context.Context, term string) ([]Question, error)
	ListExcluding(ctx context.Context, excluded []int64) ([]Question, error)
	ListByCategoryExcluding(ctx context.Context, categoryID int64, excluded []int64) ([]Question, error)
	Insert(ctx context.Context, q Question) (Question, error)
	Delete(ctx context.Context, id int64) error
}

// CategoryStore is the persistence collaborator for categories.
type CategoryStore interface {
	ListAll(ctx context.Context) ([]Category, error)
}

// Service composes store queries with pagination, search and quiz selection.
// It holds no state across requests; a quiz session lives entirely in the
// previous-question ids the client resubmits each turn.
type Service struct {
	questions  QuestionStore
	categories CategoryStore
	logger     zerolog.Logger
}

func NewService(questions QuestionStore, categories CategoryStore, logger zerolog.Logger) *Service {
	return &Service{
		questions:  questions,
		categories: categories,
		logger:     logger.With().Str("component", "trivia_service").Logger(),
	}
}

// Categories returns the id→type map of all categories. An empty category
// table is ErrNotFound.
func (s *Service) Categories(ctx context.Context) (map[string]string, error) {
	categories, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, ErrNotFound
	}
	return CategoryMap(categories), nil
}

// QuestionPage returns one page of the full question listing together with
// the total count and the category map. An empty question table is
// ErrNotFound; a page past the end is a success with zero questions.
func (s *Service) QuestionPage(ctx context.Context, page int) (QuestionPage, error) {
	questions, err := s.questions.ListAll(ctx)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list questions: %w", err)
	}
	if len(questions) == 0 {
		return QuestionPage{}, ErrNotFound
	}
	categories, err := s.categories.ListAll(ctx)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list categories: %w", err)
	}
	return QuestionPage{
		Questions:  Paginate(page, formatQuestions(questions)),
		Total:      len(questions),
		Categories: CategoryMap(categories),
	}, nil
}

// Search matches the term case-insensitively anywhere in the question text
// and returns one page of matches plus the total match count. Zero matches
// is ErrNotFound.
func (s *Service) Search(ctx context.Context, req SearchRequest, page int) (SearchResult, error) {
	matches, err := s.questions.SearchByText(ctx, req.Term)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search questions: %w", err)
	}
	if len(matches) == 0 {
		return SearchResult{}, ErrNotFound
	}
	return SearchResult{
		Questions: Paginate(page, formatQuestions(matches)),
		Total:     len(matches),
	}, nil
}

// Create inserts a new question and returns it with its store-assigned id.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Question, error) {
	created, err := s.questions.Insert(ctx, Question{
		Text:       req.Question,
		Answer:     req.Answer,
		Difficulty: req.Difficulty,
		CategoryID: req.Category,
	})
	if err != nil {
		return Question{}, fmt.Errorf("insert question: %w", err)
	}
	s.logger.Info().Int64("question_id", created.ID).Msg("question created")
	return created, nil
}

// Delete removes a question by id. An absent id is ErrNotFound; any other
// store failure is returned as-is for the handler to report as
// unprocessable.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.questions.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	s.logger.Info().Int64("question_id", id).Msg("question deleted")
	return nil
}

// CategoryQuestions returns every question in one category. Zero matches is
// ErrNotFound.
func (s *Service) CategoryQuestions(ctx context.Context, categoryID int64) (CategoryQuestions, error) {
	questions, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return CategoryQuestions{}, fmt.Errorf("list category %d questions: %w", categoryID, err)
	}
	if len(questions) == 0 {
		return CategoryQuestions{}, ErrNotFound
	}
	return CategoryQuestions{
		Questions: formatQuestions(questions),
		Total:     len(questions),
		Category:  categoryID,
	}, nil
}

// NextQuizQuestion picks one random question for a quiz turn, never one the
// client has already seen. It returns nil without error when the session is
// over (QuizLength previous questions) or no candidates remain; both are
// successful empty responses, not errors.
func (s *Service) NextQuizQuestion(ctx context.Context, previous []int64, category QuizCategory) (*QuestionView, error) {
	if len(previous) == QuizLength {
		return nil, nil
	}

	var (
		candidates []Question
		err        error
	)
	if category.Type == AllCategories {
		candidates, err = s.questions.ListExcluding(ctx, previous)
	} else {
		candidates, err = s.questions.ListByCategoryExcluding(ctx, category.ID, previous)
	}
	if err != nil {
		return nil, fmt.Errorf("list quiz candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	view := pickRandom(candidates).View()
	return &view, nil
}
