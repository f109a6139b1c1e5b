package repository

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"academy-backend/internal/domains/course/model"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var courseColumns = []string{
	"c.id", "c.name", "c.description", "c.price", "c.capacity",
	"c.start_date", "c.end_date", "c.photo", "c.category_id", "cat.name",
	"c.created_at", "c.updated_at",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// filterConditions translates a ListFilter into AND-ed WHERE conditions
func filterConditions(filter model.ListFilter) sq.And {
	filter = filter.Normalize()
	where := sq.And{}

	if filter.Search != "" {
		where = append(where, sq.ILike{"c.name": "%" + likeEscaper.Replace(filter.Search) + "%"})
	}
	if filter.CategoryID != nil {
		where = append(where, sq.Eq{"c.category_id": *filter.CategoryID})
	}
	if filter.LowCapacity {
		where = append(where, sq.Lt{"c.capacity": model.LowCapacityThreshold})
	}

	return where
}

func selectCourses() sq.SelectBuilder {
	return psql.Select(courseColumns...).
		From("courses c").
		LeftJoin("categories cat ON cat.id = c.category_id")
}

// buildListQuery selects one page of filtered courses
func buildListQuery(filter model.ListFilter) (string, []interface{}, error) {
	filter = filter.Normalize()
	return applyFilter(selectCourses(), filter).
		OrderBy("c.id DESC").
		Limit(uint64(model.PageSize)).
		Offset(uint64(filter.Offset())).
		ToSql()
}

// buildCountQuery counts every course matching filter
func buildCountQuery(filter model.ListFilter) (string, []interface{}, error) {
	return applyFilter(psql.Select("COUNT(*)").From("courses c"), filter).ToSql()
}

// applyFilter adds the WHERE clause only when at least one filter is active
func applyFilter(b sq.SelectBuilder, filter model.ListFilter) sq.SelectBuilder {
	if where := filterConditions(filter); len(where) > 0 {
		return b.Where(where)
	}
	return b
}
