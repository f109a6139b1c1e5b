package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"academy-backend/internal/domains/category"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the pgx-backed category repository
func NewPostgresRepository(pool *pgxpool.Pool) category.CategoryRepository {
	return &postgresRepository{
		pool: pool,
	}
}

const categoryColumns = `id, name, description, created_at, updated_at`

func (r *postgresRepository) Create(ctx context.Context, entity *category.Category) (*category.Category, error) {
	query := `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING ` + categoryColumns

	rows, err := r.pool.Query(ctx, query, entity.Name, entity.Description)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[category.Category])
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	found, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[category.Category])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &found, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowToStructByPos[category.Category])
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *postgresRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}
	return exists, nil
}
