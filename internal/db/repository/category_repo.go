package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iamsaumya/Trivia/internal/trivia"
)

// CategoryRepository implements trivia.CategoryStore over Postgres.
// Categories are seeded by migration and read-only through the API.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

var _ trivia.CategoryStore = (*CategoryRepository)(nil)

// ListAll returns every category ordered by id.
func (r *CategoryRepository) ListAll(ctx context.Context) ([]trivia.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, type FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []trivia.Category
	for rows.Next() {
		var c trivia.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}
