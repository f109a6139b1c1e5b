package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"academy-backend/internal/domains/course/model"
	"academy-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func scanCourse(row pgx.CollectableRow) (model.Course, error) {
	var c model.Course
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Price,
		&c.Capacity,
		&c.StartDate,
		&c.EndDate,
		&c.Photo,
		&c.CategoryID,
		&c.CategoryName,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Course, int64, error) {
	// 1. Total for pagination
	countSQL, countArgs, err := buildCountQuery(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	// 2. Requested page
	listSQL, listArgs, err := buildListQuery(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	courses, err := pgx.CollectRows(rows, scanCourse)
	if err != nil {
		return nil, 0, fmt.Errorf("scan courses: %w", err)
	}

	return courses, total, nil
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]model.Course, error) {
	query, args, err := selectCourses().OrderBy("c.id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build export query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list all courses: %w", err)
	}

	courses, err := pgx.CollectRows(rows, scanCourse)
	if err != nil {
		return nil, fmt.Errorf("scan courses: %w", err)
	}
	return courses, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	query, args, err := selectCourses().Where(sq.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}

	course, err := pgx.CollectExactlyOneRow(rows, scanCourse)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}
	return &course, nil
}

func (r *postgresRepository) Create(ctx context.Context, course *model.Course) error {
	query, args, err := psql.Insert("courses").
		Columns("name", "description", "price", "capacity", "start_date", "end_date", "photo", "category_id").
		Values(course.Name, course.Description, course.Price, course.Capacity,
			course.StartDate, course.EndDate, course.Photo, course.CategoryID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt); err != nil {
		return fmt.Errorf("insert course: %w", err)
	}

	return r.fillCategoryName(ctx, course)
}

// Update locks the row, remembers the current photo, then overwrites every column.
// Concurrent updates to the same course are last-write-wins.
func (r *postgresRepository) Update(ctx context.Context, course *model.Course) (*string, error) {
	previous, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*string, error) {
		var photo *string
		err := tx.QueryRow(ctx, `SELECT photo FROM courses WHERE id = $1 FOR UPDATE`, course.ID).Scan(&photo)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrCourseNotFound
			}
			return nil, fmt.Errorf("lock course: %w", err)
		}

		query, args, err := psql.Update("courses").
			Set("name", course.Name).
			Set("description", course.Description).
			Set("price", course.Price).
			Set("capacity", course.Capacity).
			Set("start_date", course.StartDate).
			Set("end_date", course.EndDate).
			Set("photo", course.Photo).
			Set("category_id", course.CategoryID).
			Set("updated_at", sq.Expr("NOW()")).
			Where(sq.Eq{"id": course.ID}).
			Suffix("RETURNING created_at, updated_at").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build update: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).Scan(&course.CreatedAt, &course.UpdatedAt); err != nil {
			return nil, fmt.Errorf("update course: %w", err)
		}

		return photo, nil
	})
	if err != nil {
		return nil, err
	}

	if err := r.fillCategoryName(ctx, course); err != nil {
		return nil, err
	}
	return previous, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) (*model.Course, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("delete course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrCourseNotFound
	}

	return existing, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) fillCategoryName(ctx context.Context, course *model.Course) error {
	course.CategoryName = nil
	if course.CategoryID == nil {
		return nil
	}

	var name string
	err := r.pool.QueryRow(ctx, `SELECT name FROM categories WHERE id = $1`, *course.CategoryID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("load category name: %w", err)
	}
	course.CategoryName = &name
	return nil
}
