package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy-backend/internal/domains/cart/model"
	"academy-backend/internal/domains/cart/repository"
	courseModel "academy-backend/internal/domains/course/model"
)

type stubCourses map[int64]courseModel.Course

func (s stubCourses) Get(ctx context.Context, id int64) (*courseModel.Course, error) {
	c, ok := s[id]
	if !ok {
		return nil, courseModel.ErrCourseNotFound
	}
	return &c, nil
}

func newCartService() (*CartService, stubCourses) {
	courses := stubCourses{
		1: {ID: 1, Name: "ML 101", Price: decimal.RequireFromString("99.99")},
		2: {ID: 2, Name: "Go 101", Price: decimal.RequireFromString("50.01")},
	}
	return NewCartService(repository.NewMemoryStore(), courses), courses
}

func TestAddListAndTotals(t *testing.T) {
	svc, _ := newCartService()
	ctx := context.Background()

	res, err := svc.Add(ctx, "s1", 2)
	require.NoError(t, err)
	assert.False(t, res.AlreadyInCart)

	_, err = svc.Add(ctx, "s1", 1)
	require.NoError(t, err)

	cart, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, 2, cart.Count)
	assert.Equal(t, int64(2), cart.Items[0].CourseID)
	assert.Equal(t, int64(1), cart.Items[1].CourseID)
	assert.Equal(t, "150.00", cart.Total.StringFixed(2))
}

func TestAddDuplicateKeepsOneEntry(t *testing.T) {
	svc, _ := newCartService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", 1)
	require.NoError(t, err)
	res, err := svc.Add(ctx, "s1", 1)
	require.NoError(t, err)
	assert.True(t, res.AlreadyInCart)

	cart, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Count)
}

func TestSnapshotIgnoresLaterCourseChanges(t *testing.T) {
	svc, courses := newCartService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", 1)
	require.NoError(t, err)

	changed := courses[1]
	changed.Price = decimal.RequireFromString("10")
	courses[1] = changed

	cart, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "99.99", cart.Items[0].Price.StringFixed(2))
}

func TestDuplicateAddReturnsOriginalSnapshot(t *testing.T) {
	svc, courses := newCartService()
	ctx := context.Background()

	first, err := svc.Add(ctx, "s1", 1)
	require.NoError(t, err)

	changed := courses[1]
	changed.Price = decimal.RequireFromString("10")
	changed.Name = "ML 101 (renamed)"
	courses[1] = changed

	again, err := svc.Add(ctx, "s1", 1)
	require.NoError(t, err)
	assert.True(t, again.AlreadyInCart)
	assert.Equal(t, "99.99", again.Entry.Price.StringFixed(2))
	assert.Equal(t, "ML 101", again.Entry.Name)
	assert.True(t, first.Entry.AddedAt.Equal(again.Entry.AddedAt))
}

func TestSessionsAreIsolated(t *testing.T) {
	svc, _ := newCartService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", 1)
	require.NoError(t, err)

	cart, err := svc.List(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, 0, cart.Count)
	assert.True(t, cart.Total.IsZero())
}

func TestRemoveAndClear(t *testing.T) {
	svc, _ := newCartService()
	ctx := context.Background()

	_, _ = svc.Add(ctx, "s1", 1)
	_, _ = svc.Add(ctx, "s1", 2)

	require.NoError(t, svc.Remove(ctx, "s1", 1))
	require.NoError(t, svc.Remove(ctx, "s1", 1))
	cart, _ := svc.List(ctx, "s1")
	assert.Equal(t, 1, cart.Count)

	require.NoError(t, svc.Clear(ctx, "s1"))
	cart, _ = svc.List(ctx, "s1")
	assert.Equal(t, 0, cart.Count)
}

func TestAddErrors(t *testing.T) {
	svc, _ := newCartService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", 99)
	assert.ErrorIs(t, err, courseModel.ErrCourseNotFound)

	_, err = svc.Add(ctx, " ", 1)
	assert.ErrorIs(t, err, model.ErrEmptySession)
}
