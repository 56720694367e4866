package graph

import (
	"errors"
	"reflect"
	"testing"

	"spacetraders-router/internal/catalog"
	"spacetraders-router/internal/config"
)

func smallTank(capacity, segment int) config.Ship {
	s := config.DefaultShip()
	s.FuelCapacity = capacity
	s.StartFuel = capacity
	s.FuelSegment = segment
	return s
}

func mustRoute(t *testing.T, g *Graph, src, dst string) *Route {
	t.Helper()
	r, found, err := g.Route(src, dst)
	if err != nil {
		t.Fatalf("Route(%s, %s): %v", src, dst, err)
	}
	if !found {
		t.Fatalf("Route(%s, %s): no route", src, dst)
	}
	return r
}

func TestRoute_MarketThroughGate(t *testing.T) {
	g := Build(twoGateUniverse(), config.DefaultShip())
	r := mustRoute(t, g, "M1", "J2")

	want := []Leg{
		{Travel: Travel{Nav, Burn}, From: "M1", To: "J1", Duration: 28, Elapsed: 28, Fuel: 100, FuelRemaining: 1350},
		{Travel: Travel{Kind: Jumpgate}, From: "J1", To: "J2", Duration: 100, Elapsed: 128, Fuel: 0, FuelRemaining: 1350},
	}
	if !reflect.DeepEqual(r.Legs, want) {
		t.Errorf("legs =\n%+v\nwant\n%+v", r.Legs, want)
	}
	if r.Duration != 128 {
		t.Errorf("Duration = %d, want 128", r.Duration)
	}
	if r.FuelUsed != 100 {
		t.Errorf("FuelUsed = %d, want 100", r.FuelUsed)
	}
	if r.Source != "M1" || r.Destination != "J2" {
		t.Errorf("endpoints = %s -> %s", r.Source, r.Destination)
	}
}

func TestRoute_RefuelOnArrival(t *testing.T) {
	g := Build(twoGateUniverse(), config.DefaultShip())
	r := mustRoute(t, g, "J2", "M1")

	if len(r.Legs) != 2 {
		t.Fatalf("legs = %+v", r.Legs)
	}
	last := r.Legs[1]
	if last.To != "M1" || !last.Refuel {
		t.Errorf("last leg = %+v, want refuel at M1", last)
	}
	if r.Duration != 128 {
		t.Errorf("Duration = %d, want 128", r.Duration)
	}
}

func TestRoute_SameSymbolIsTrivial(t *testing.T) {
	g := Build(twoGateUniverse(), config.DefaultShip())
	r := mustRoute(t, g, "J1", "J1")
	if len(r.Legs) != 0 || r.Duration != 0 || r.FuelUsed != 0 {
		t.Errorf("trivial route = %+v", r)
	}
}

func TestRoute_UnknownSymbol(t *testing.T) {
	g := Build(twoGateUniverse(), config.DefaultShip())
	if _, _, err := g.Route("NOPE", "J1"); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("unknown source err = %v", err)
	}
	if _, _, err := g.Route("J1", "NOPE"); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("unknown destination err = %v", err)
	}
}

func TestRoute_Unreachable(t *testing.T) {
	systems := []catalog.System{
		system("A", 0, 0, market("A1", 0, 0)),
		system("B", 20000, 0, market("B1", 0, 0)),
	}
	g := Build(systems, config.DefaultShip())
	r, found, err := g.Route("A1", "B1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found || r != nil {
		t.Errorf("found = %v, route = %+v, want no route", found, r)
	}
}

// lineUniverse: market A, bare system S1 60 away, market C 100 past S1.
func lineUniverse() []catalog.System {
	return []catalog.System{
		system("SA", 0, 0, market("A", 0, 0)),
		system("S1", 60, 0, planet("P", 0, 0)),
		system("SC", 160, 0, market("C", 0, 0)),
	}
}

func TestRoute_FuelLimitForcesDrift(t *testing.T) {
	g := Build(lineUniverse(), smallTank(100, 10))
	r := mustRoute(t, g, "A", "C")

	want := []Leg{
		{Travel: Travel{Warp, Cruise}, From: "A", To: "S1", Duration: 55, Elapsed: 55, Fuel: 60, FuelRemaining: 40},
		{Travel: Travel{Warp, Drift}, From: "S1", To: "C", Duration: 682, Elapsed: 737, Fuel: 1, FuelRemaining: 30, Refuel: true},
	}
	if !reflect.DeepEqual(r.Legs, want) {
		t.Errorf("legs =\n%+v\nwant\n%+v", r.Legs, want)
	}
	if r.Duration != 737 {
		t.Errorf("Duration = %d, want 737", r.Duration)
	}
}

func TestRoute_LargerTankIsFaster(t *testing.T) {
	g := Build(lineUniverse(), config.DefaultShip())
	r := mustRoute(t, g, "A", "C")
	if r.Duration >= 737 {
		t.Errorf("Duration = %d, want faster than the fuel-starved 737", r.Duration)
	}
}

func TestRoute_RefuelsBetweenMarkets(t *testing.T) {
	systems := []catalog.System{
		system("SA", 0, 0, market("A", 0, 0)),
		system("SB", 90, 0, market("B", 0, 0)),
		system("SC", 180, 0, market("C", 0, 0)),
	}
	g := Build(systems, smallTank(100, 10))
	r := mustRoute(t, g, "A", "C")

	if r.Duration != 150 {
		t.Errorf("Duration = %d, want 150", r.Duration)
	}
	if len(r.Legs) != 2 {
		t.Fatalf("legs = %+v", r.Legs)
	}
	for i, l := range r.Legs {
		if l.Travel != (Travel{Warp, Cruise}) || l.Fuel != 90 || l.FuelRemaining != 10 || !l.Refuel {
			t.Errorf("leg %d = %+v", i, l)
		}
	}
}

func TestRoute_StartFuelBelowCapacity(t *testing.T) {
	ship := smallTank(100, 10)
	ship.StartFuel = 50
	g := Build(lineUniverse(), ship)
	r := mustRoute(t, g, "A", "C")

	// 60 fuel for the cruise leg is not in the tank.
	for _, l := range r.Legs {
		if l.Travel.Mode != Drift {
			t.Errorf("leg %+v, want drift only", l)
		}
	}
}

func TestRoute_Idempotent(t *testing.T) {
	g := Build(twoGateUniverse(), config.DefaultShip())
	a := mustRoute(t, g, "M1", "S3")
	b := mustRoute(t, g, "M1", "S3")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("routes differ:\n%+v\n%+v", a, b)
	}
}

func TestDurationsFrom(t *testing.T) {
	g := Build(twoGateUniverse(), config.DefaultShip())
	got, err := g.DurationsFrom("M1")
	if err != nil {
		t.Fatalf("DurationsFrom: %v", err)
	}
	want := map[string]int{"M1": 0, "J1": 28, "J2": 128}
	for sym, d := range want {
		if got[sym] != d {
			t.Errorf("DurationsFrom[%s] = %d, want %d", sym, got[sym], d)
		}
	}
	if _, ok := got["S3"]; !ok {
		t.Error("S3 should be reachable by drift")
	}
	if _, err := g.DurationsFrom("NOPE"); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("err = %v, want ErrUnknownSymbol", err)
	}
}

func TestDurationsFrom_AgreesWithRoute(t *testing.T) {
	g := Build(lineUniverse(), smallTank(100, 10))
	all, err := g.DurationsFrom("A")
	if err != nil {
		t.Fatal(err)
	}
	for _, dst := range []string{"S1", "C"} {
		r := mustRoute(t, g, "A", dst)
		if all[dst] != r.Duration {
			t.Errorf("%s: DurationsFrom = %d, Route = %d", dst, all[dst], r.Duration)
		}
	}
}

func TestHeuristicDivisor(t *testing.T) {
	g := Build(nil, config.DefaultShip())
	if d := g.HeuristicDivisor(); d != 10 {
		t.Errorf("default divisor = %v, want 10", d)
	}
	fast := config.DefaultShip()
	fast.Speed = 300
	g = Build(nil, fast)
	if d := g.HeuristicDivisor(); d != 30 {
		t.Errorf("fast ship divisor = %v, want 30", d)
	}
}

func TestTravelString(t *testing.T) {
	tests := map[Travel]string{
		{Kind: Jumpgate}:          "Jumpgate",
		{Kind: Warp, Mode: Burn}:  "Warp(BURN)",
		{Kind: Nav, Mode: Drift}:  "Nav(DRIFT)",
		{Kind: Nav, Mode: Cruise}: "Nav(CRUISE)",
	}
	for tr, want := range tests {
		if got := tr.String(); got != want {
			t.Errorf("%#v.String() = %q, want %q", tr, got, want)
		}
	}
}
