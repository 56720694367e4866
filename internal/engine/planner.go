package engine

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"spacetraders-router/internal/graph"
)

// Target is one destination of a multi-destination plan.
type Target struct {
	Label  string // e.g. the faction whose headquarters this is
	Symbol string
}

// Result is the outcome of planning one Target.
type Result struct {
	Target Target
	Route  *graph.Route
	Found  bool
	Err    error // unknown symbol
}

// Planner answers route queries against one immutable graph. It is safe for
// concurrent use.
type Planner struct {
	graph   *graph.Graph
	workers int
	group   singleflight.Group
}

// NewPlanner wraps g. workers bounds PlanMany concurrency; values below 1 mean 1.
func NewPlanner(g *graph.Graph, workers int) *Planner {
	if workers < 1 {
		workers = 1
	}
	return &Planner{graph: g, workers: workers}
}

// Graph returns the graph the planner queries.
func (p *Planner) Graph() *graph.Graph { return p.graph }

type planned struct {
	route *graph.Route
	found bool
}

// Plan returns the fastest route from src to dst. Identical queries in flight
// at the same time share one search; callers must treat the route as read-only.
func (p *Planner) Plan(src, dst string) (*graph.Route, bool, error) {
	v, err, _ := p.group.Do(src+"\x00"+dst, func() (interface{}, error) {
		r, found, err := p.graph.Route(src, dst)
		return planned{r, found}, err
	})
	if err != nil {
		return nil, false, err
	}
	res := v.(planned)
	return res.route, res.found, nil
}

// PlanMany plans src to every target concurrently and returns results in
// target order. Per-target lookup failures land in Result.Err; the returned
// error is the context's error once ctx is done, and targets not yet planned
// are left zero.
func (p *Planner) PlanMany(ctx context.Context, src string, targets []Target) ([]Result, error) {
	results := make([]Result, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, t := range targets {
		if gctx.Err() != nil {
			break
		}
		i, t := i, t
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, found, err := p.Plan(src, t.Symbol)
			results[i] = Result{Target: t, Route: r, Found: found, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	// Wait cancels gctx, so check the caller's context.
	return results, ctx.Err()
}
