package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iamsaumya/Trivia/internal/trivia"
)

const questionColumns = "id, question, answer, difficulty, category_id"

// QuestionRepository implements trivia.QuestionStore over Postgres.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

var _ trivia.QuestionStore = (*QuestionRepository)(nil)

// ListAll returns every question ordered by id.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]trivia.Question, error) {
	return r.list(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		ORDER BY id
	`)
}

// ListByCategory returns every question in one category ordered by id.
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int64) ([]trivia.Question, error) {
	return r.list(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE category_id = $1
		ORDER BY id
	`, categoryID)
}

// SearchByText matches the term case-insensitively anywhere in the question
// text.
func (r *QuestionRepository) SearchByText(ctx context.Context, term string) ([]trivia.Question, error) {
	return r.list(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE question ILIKE '%' || $1 || '%'
		ORDER BY id
	`, term)
}

// ListExcluding returns every question whose id is not in the excluded set.
func (r *QuestionRepository) ListExcluding(ctx context.Context, excluded []int64) ([]trivia.Question, error) {
	return r.list(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE NOT (id = ANY($1))
		ORDER BY id
	`, excluded)
}

// ListByCategoryExcluding filters by category and excludes the id set.
func (r *QuestionRepository) ListByCategoryExcluding(ctx context.Context, categoryID int64, excluded []int64) ([]trivia.Question, error) {
	return r.list(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE category_id = $1 AND NOT (id = ANY($2))
		ORDER BY id
	`, categoryID, excluded)
}

// Insert stores a new question and returns it with the assigned id.
func (r *QuestionRepository) Insert(ctx context.Context, q trivia.Question) (trivia.Question, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO questions (question, answer, difficulty, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, q.Text, q.Answer, q.Difficulty, q.CategoryID).Scan(&q.ID)
	if err != nil {
		return trivia.Question{}, fmt.Errorf("insert question: %w", err)
	}
	return q, nil
}

// Delete removes a question by id. An id that matches no row is
// trivia.ErrNotFound.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if result.RowsAffected() == 0 {
		return trivia.ErrNotFound
	}
	return nil
}

func (r *QuestionRepository) list(ctx context.Context, query string, args ...interface{}) ([]trivia.Question, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []trivia.Question
	for rows.Next() {
		var q trivia.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Answer, &q.Difficulty, &q.CategoryID); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return questions, nil
}
