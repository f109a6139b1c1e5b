package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"academy-backend/internal/domains/notification/model"
)

// EventHandler reacts to a created course. Handlers are independent:
// they run concurrently, in no particular order, and one failing never affects another.
type EventHandler interface {
	Name() string
	Handle(ctx context.Context, event model.CourseCreated) error
}

// Dispatcher fans a CourseCreated event out to every registered handler
// without blocking the caller.
type Dispatcher struct {
	handlers []EventHandler
	timeout  time.Duration
	wg       sync.WaitGroup
}

const defaultHandlerTimeout = 30 * time.Second

func NewDispatcher(timeout time.Duration, handlers ...EventHandler) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultHandlerTimeout
	}
	return &Dispatcher{
		handlers: handlers,
		timeout:  timeout,
	}
}

// Dispatch returns immediately. Handlers keep running after the request
// context is cancelled.
func (d *Dispatcher) Dispatch(ctx context.Context, event model.CourseCreated) {
	detached := context.WithoutCancel(ctx)

	for _, h := range d.handlers {
		d.wg.Add(1)
		go d.run(detached, h, event)
	}
}

// Wait blocks until every in-flight handler has returned
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) run(parent context.Context, h EventHandler, event model.CourseCreated) {
	defer d.wg.Done()

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("handler", h.Name()).
				Int64("course_id", event.CourseID).
				Err(fmt.Errorf("panic: %v", r)).
				Msg("Notification handler panicked")
		}
	}()

	ctx, cancel := context.WithTimeout(parent, d.timeout)
	defer cancel()

	start := time.Now()
	if err := h.Handle(ctx, event); err != nil {
		log.Error().
			Err(err).
			Str("handler", h.Name()).
			Int64("course_id", event.CourseID).
			Msg("Notification handler failed")
		return
	}

	log.Debug().
		Str("handler", h.Name()).
		Int64("course_id", event.CourseID).
		Dur("took", time.Since(start)).
		Msg("Notification handler finished")
}
