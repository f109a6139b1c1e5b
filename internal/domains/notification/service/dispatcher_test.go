package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy-backend/internal/domains/notification/model"
	"academy-backend/internal/domains/notification/repository"
	"academy-backend/internal/domains/user"
	"academy-backend/internal/infrastructure/queue"
	"academy-backend/internal/shared"
	"academy-backend/internal/shared/authz"
)

type stubAdmins struct {
	admins []user.User
	err    error
}

func (s stubAdmins) ListAdmins(ctx context.Context) ([]user.User, error) {
	return s.admins, s.err
}

type funcHandler struct {
	name string
	fn   func(ctx context.Context, event model.CourseCreated) error
}

func (h funcHandler) Name() string { return h.name }

func (h funcHandler) Handle(ctx context.Context, event model.CourseCreated) error {
	return h.fn(ctx, event)
}

func sampleEvent() model.CourseCreated {
	return model.CourseCreated{
		CourseID:   7,
		Name:       "ML 101",
		Price:      decimal.RequireFromString("99.99"),
		Capacity:   30,
		StartDate:  time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC),
		OccurredAt: time.Now(),
	}
}

func TestDispatchReturnsBeforeHandlersFinish(t *testing.T) {
	release := make(chan struct{})
	var done atomic.Int32

	slow := funcHandler{name: "slow", fn: func(ctx context.Context, event model.CourseCreated) error {
		<-release
		done.Add(1)
		return nil
	}}

	d := NewDispatcher(time.Second, slow, slow)
	d.Dispatch(context.Background(), sampleEvent())

	assert.Equal(t, int32(0), done.Load())
	close(release)
	d.Wait()
	assert.Equal(t, int32(2), done.Load())
}

func TestDispatchSurvivesCancelledRequestContext(t *testing.T) {
	var alive atomic.Value

	h := funcHandler{name: "ctx", fn: func(ctx context.Context, event model.CourseCreated) error {
		time.Sleep(10 * time.Millisecond)
		alive.Store(ctx.Err() == nil)
		return nil
	}}

	ctx, cancel := context.WithCancel(context.Background())
	d := NewDispatcher(time.Second, h)
	d.Dispatch(ctx, sampleEvent())
	cancel()
	d.Wait()

	assert.Equal(t, true, alive.Load())
}

func TestDispatchIsolatesFailures(t *testing.T) {
	var ran atomic.Int32

	failing := funcHandler{name: "failing", fn: func(ctx context.Context, event model.CourseCreated) error {
		return errors.New("boom")
	}}
	panicking := funcHandler{name: "panicking", fn: func(ctx context.Context, event model.CourseCreated) error {
		panic("unexpected")
	}}
	healthy := funcHandler{name: "healthy", fn: func(ctx context.Context, event model.CourseCreated) error {
		ran.Add(1)
		return nil
	}}

	d := NewDispatcher(time.Second, failing, panicking, healthy)
	assert.NotPanics(t, func() {
		d.Dispatch(context.Background(), sampleEvent())
		d.Wait()
	})
	assert.Equal(t, int32(1), ran.Load())
}

func TestDispatchAppliesTimeout(t *testing.T) {
	var deadline atomic.Bool

	h := funcHandler{name: "deadline", fn: func(ctx context.Context, event model.CourseCreated) error {
		<-ctx.Done()
		deadline.Store(errors.Is(ctx.Err(), context.DeadlineExceeded))
		return ctx.Err()
	}}

	d := NewDispatcher(20*time.Millisecond, h)
	d.Dispatch(context.Background(), sampleEvent())
	d.Wait()

	assert.True(t, deadline.Load())
}

func TestAuditLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := NewAuditLogHandler(zerolog.New(&buf))

	require.NoError(t, h.Handle(context.Background(), sampleEvent()))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "course created", entry["message"])
	assert.Equal(t, "ML 101", entry["name"])
	assert.Equal(t, "99.99", entry["price"])
	assert.Equal(t, float64(7), entry["course_id"])
	assert.Equal(t, "2030-01-01", entry["start_date"])
}

func TestAdminInboxHandler(t *testing.T) {
	repo := repository.NewMemoryRepository()
	admins := stubAdmins{admins: []user.User{
		{ID: uuid.New(), Name: "Root", Email: "root@academy.local", Role: authz.RoleAdmin},
		{ID: uuid.New(), Name: "Ops", Email: "ops@academy.local", Role: authz.RoleAdmin},
	}}

	h := NewAdminInboxHandler(admins, repo)
	require.NoError(t, h.Handle(context.Background(), sampleEvent()))

	all := repo.All()
	require.Len(t, all, 2)
	for _, n := range all {
		assert.Equal(t, "New: ML 101", n.Title)
		assert.Equal(t, model.NotificationTypeCourseCreated, n.Type)
		require.NotNil(t, n.Link)
		assert.Equal(t, "/courses/7", *n.Link)
	}

	failing := NewAdminInboxHandler(stubAdmins{err: errors.New("db down")}, repo)
	assert.Error(t, failing.Handle(context.Background(), sampleEvent()))
}

func TestAdminEmailHandlerEnqueues(t *testing.T) {
	rec := queue.NewRecordingEnqueuer()
	h := NewAdminEmailHandler(rec)

	require.NoError(t, h.Handle(context.Background(), sampleEvent()))

	tasks := rec.Tasks(shared.TypeCourseCreatedEmail)
	require.Len(t, tasks, 1)

	var payload shared.CourseCreatedEmailPayload
	require.NoError(t, json.Unmarshal(tasks[0].Payload(), &payload))
	assert.Equal(t, int64(7), payload.CourseID)
	assert.Equal(t, "ML 101", payload.CourseName)
	assert.Equal(t, "99.99", payload.Price)

	rec.Err = errors.New("redis down")
	assert.Error(t, h.Handle(context.Background(), sampleEvent()))
}
