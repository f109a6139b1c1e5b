package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy-backend/internal/domains/course/model"
)

func TestBuildListQuery_NoFilters(t *testing.T) {
	sql, args, err := buildListQuery(model.ListFilter{Page: 1})
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM courses c LEFT JOIN categories cat ON cat.id = c.category_id")
	assert.Contains(t, sql, "ORDER BY c.id DESC LIMIT 10 OFFSET 0")
	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
}

func TestBuildListQuery_AllFilters(t *testing.T) {
	cat := int64(3)
	sql, args, err := buildListQuery(model.ListFilter{Search: " 50%_off ", CategoryID: &cat, LowCapacity: true, Page: 2})
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE (c.name ILIKE $1 AND c.category_id = $2 AND c.capacity < $3)")
	assert.Contains(t, sql, "LIMIT 10 OFFSET 10")
	assert.Equal(t, []interface{}{`%50\%\_off%`, int64(3), 10}, args)
}

func TestBuildCountQuery(t *testing.T) {
	sql, args, err := buildCountQuery(model.ListFilter{Search: "ml"})
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM courses c WHERE (c.name ILIKE $1)", sql)
	assert.Equal(t, []interface{}{"%ml%"}, args)
}

func TestBuildListQuery_HugePageStaysInBigint(t *testing.T) {
	sql, _, err := buildListQuery(model.ParseListFilter("922337203685477590", "", "", ""))
	require.NoError(t, err)

	assert.Contains(t, sql, fmt.Sprintf("OFFSET %d", (model.MaxPage-1)*model.PageSize))
	assert.NotContains(t, sql, "OFFSET 9223372036854775890")
}
