package engine

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"spacetraders-router/internal/catalog"
	"spacetraders-router/internal/config"
	"spacetraders-router/internal/graph"
)

func testGraph() *graph.Graph {
	market := []catalog.Trait{{Symbol: catalog.TraitMarketplace}}
	systems := []catalog.System{
		{Symbol: "S1", X: 0, Y: 0, Waypoints: []catalog.Waypoint{
			{Symbol: "J1", Type: catalog.WaypointTypeJumpGate},
			{Symbol: "M1", X: 30, Y: 40, Type: "PLANET", Traits: market},
		}},
		{Symbol: "S2", X: 1000, Y: 0, Waypoints: []catalog.Waypoint{
			{Symbol: "J2", Type: catalog.WaypointTypeJumpGate},
		}},
		{Symbol: "FAR", X: 50000, Y: 0, Waypoints: []catalog.Waypoint{
			{Symbol: "M9", Type: "PLANET", Traits: market},
		}},
	}
	return graph.Build(systems, config.DefaultShip())
}

func TestNewPlanner_ClampsWorkers(t *testing.T) {
	p := NewPlanner(testGraph(), 0)
	if p.workers != 1 {
		t.Errorf("workers = %d, want 1", p.workers)
	}
}

func TestPlan_MatchesGraph(t *testing.T) {
	g := testGraph()
	p := NewPlanner(g, 4)

	want, wantFound, err := g.Route("M1", "J2")
	if err != nil || !wantFound {
		t.Fatalf("graph.Route: %v found=%v", err, wantFound)
	}
	got, found, err := p.Plan("M1", "J2")
	if err != nil || !found {
		t.Fatalf("Plan: %v found=%v", err, found)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Plan = %+v, want %+v", got, want)
	}
	if got.Duration != 128 {
		t.Errorf("Duration = %d, want 128", got.Duration)
	}
}

func TestPlan_UnknownAndUnreachable(t *testing.T) {
	p := NewPlanner(testGraph(), 4)

	if _, _, err := p.Plan("M1", "NOPE"); !errors.Is(err, graph.ErrUnknownSymbol) {
		t.Errorf("err = %v, want ErrUnknownSymbol", err)
	}
	r, found, err := p.Plan("M1", "M9")
	if err != nil || found || r != nil {
		t.Errorf("unreachable: route=%v found=%v err=%v", r, found, err)
	}
}

func TestPlan_ConcurrentCallersAgree(t *testing.T) {
	p := NewPlanner(testGraph(), 4)
	want, _, _ := p.Plan("J2", "M1")

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, found, err := p.Plan("J2", "M1")
			if err != nil || !found || got.Duration != want.Duration || len(got.Legs) != len(want.Legs) {
				errs <- "mismatch"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

func TestPlanMany_OrderAndErrors(t *testing.T) {
	p := NewPlanner(testGraph(), 2)
	targets := []Target{
		{Label: "GATE", Symbol: "J2"},
		{Label: "BAD", Symbol: "NOPE"},
		{Label: "FAR", Symbol: "M9"},
		{Label: "HOME", Symbol: "M1"},
	}
	results, err := p.PlanMany(context.Background(), "M1", targets)
	if err != nil {
		t.Fatalf("PlanMany: %v", err)
	}
	if len(results) != len(targets) {
		t.Fatalf("len = %d, want %d", len(results), len(targets))
	}
	for i, r := range results {
		if r.Target != targets[i] {
			t.Errorf("result %d target = %+v, want %+v", i, r.Target, targets[i])
		}
	}
	if !results[0].Found || results[0].Route.Duration != 128 {
		t.Errorf("GATE = %+v", results[0])
	}
	if !errors.Is(results[1].Err, graph.ErrUnknownSymbol) {
		t.Errorf("BAD err = %v", results[1].Err)
	}
	if results[2].Found || results[2].Err != nil {
		t.Errorf("FAR = %+v, want no route", results[2])
	}
	if !results[3].Found || results[3].Route.Duration != 0 {
		t.Errorf("HOME = %+v, want trivial route", results[3])
	}
}

func TestPlanMany_CancelledContext(t *testing.T) {
	p := NewPlanner(testGraph(), 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := p.PlanMany(ctx, "M1", []Target{{Symbol: "J2"}, {Symbol: "J1"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	for i, r := range results {
		if r.Route != nil {
			t.Errorf("result %d planned after cancel: %+v", i, r)
		}
	}
}
