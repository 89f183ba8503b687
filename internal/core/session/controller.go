// Package session drives the two-point route selection flow shared by
// interactive front ends.
package session

import (
	"context"
	"sync"

	"github.com/samirrijal/routegrade/internal/core/domain"
)

// Planner computes a route plan between two points.
type Planner interface {
	Plan(ctx context.Context, start, end domain.GeoPoint) (*domain.RoutePlan, error)
}

// Presenter renders session output. Calls arrive from the goroutine that
// invoked Select or Reset.
type Presenter interface {
	SetBusy(busy bool)
	Clear()
	DrawSegments(segments []domain.Segment)
	ShowStats(stats domain.RouteStats)
	ShowError(err error)
	// ShowRaw displays the raw annotated points; nil hides the display.
	ShowRaw(points []domain.ElevationPoint)
}

// State is a snapshot of the selection. It is never mutated in place.
type State struct {
	Start      *domain.GeoPoint
	End        *domain.GeoPoint
	Plan       *domain.RoutePlan
	Generation uint64
}

// Complete reports whether both endpoints are selected.
func (s State) Complete() bool {
	return s.Start != nil && s.End != nil
}

// Controller owns the selection state and runs the route pipeline when the
// second point is picked.
type Controller struct {
	planner Planner
	view    Presenter

	mu      sync.Mutex
	state   State
	cancel  context.CancelFunc
	showRaw bool
}

func NewController(planner Planner, view Presenter) *Controller {
	return &Controller{planner: planner, view: view}
}

// State returns the current selection snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Select records a picked point. The first pick sets the start and returns
// (nil, nil). The second sets the end and plans the route. A pick after a
// completed pair starts a new selection.
//
// If Reset runs while the plan is in flight, the plan is discarded and
// ErrStaleResult is returned without touching the presenter.
func (c *Controller) Select(ctx context.Context, p domain.GeoPoint) (*domain.RoutePlan, error) {
	c.mu.Lock()
	if c.state.Complete() {
		c.resetLocked()
	}
	if c.state.Start == nil {
		c.state = State{Start: &p, Generation: c.state.Generation}
		c.mu.Unlock()
		return nil, nil
	}

	start := *c.state.Start
	gen := c.state.Generation
	c.state = State{Start: c.state.Start, End: &p, Generation: gen}

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()
	defer cancel()

	c.view.SetBusy(true)
	plan, err := c.planner.Plan(runCtx, start, p)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Generation != gen {
		return nil, domain.ErrStaleResult
	}
	c.cancel = nil
	c.view.SetBusy(false)

	if err != nil {
		c.view.ShowError(err)
		return nil, err
	}

	c.state = State{Start: c.state.Start, End: c.state.End, Plan: plan, Generation: gen}
	c.view.DrawSegments(plan.Profile.Segments)
	c.view.ShowStats(plan.Profile.Stats)
	if c.showRaw {
		c.view.ShowRaw(plan.Points)
	}
	return plan, nil
}

// Reset clears the selection and cancels any plan in flight.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state = State{Generation: c.state.Generation + 1}
	c.view.SetBusy(false)
	c.view.Clear()
}

// ToggleRaw flips the raw point display and returns the new setting.
func (c *Controller) ToggleRaw() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.showRaw = !c.showRaw
	switch {
	case !c.showRaw:
		c.view.ShowRaw(nil)
	case c.state.Plan != nil:
		c.view.ShowRaw(c.state.Plan.Points)
	}
	return c.showRaw
}
