package graph

import (
	"math"

	"spacetraders-router/internal/catalog"
	"spacetraders-router/internal/config"
)

// Travel-time constants. Effective speed is speed * mult / divisor; every
// leg pays a fixed departure overhead.
const (
	departureOverhead = 15
	navDivisor        = 15.0
	warpDivisor       = 20.0
	jumpDivisor       = 10.0

	cruiseMult = 1.0
	burnMult   = 2.0
	driftMult  = 0.1
)

// Build derives the routable nodes from systems and connects every ordered
// pair of distinct nodes with the edges the ship can fly.
func Build(systems []catalog.System, ship config.Ship) *Graph {
	g := &Graph{
		index: make(map[string]int),
		ship:  ship,
	}
	for i := range systems {
		g.addSystem(&systems[i])
	}

	g.adj = make([][]Edge, len(g.nodes))
	for i, from := range g.nodes {
		for j, to := range g.nodes {
			if i == j {
				continue
			}
			g.adj[i] = g.appendEdges(g.adj[i], from, to, j)
		}
	}
	return g
}

func (g *Graph) addSystem(sys *catalog.System) {
	sp := Point{sys.X, sys.Y}
	added := 0
	for k := range sys.Waypoints {
		w := &sys.Waypoints[k]
		wp := Point{w.X, w.Y}
		switch {
		case w.IsJumpGate():
			g.addNode(JumpgateNode{System: sp, Waypoint: wp}, w.Symbol)
		case w.IsMarketplace():
			g.addNode(MarketNode{System: sp, Waypoint: wp}, w.Symbol)
		default:
			continue
		}
		added++
	}
	if added == 0 && len(sys.Waypoints) > 0 {
		g.addNode(SystemNode{System: sp}, sys.Symbol)
	}
}

func (g *Graph) addNode(n RouteNode, symbol string) {
	if _, dup := g.index[symbol]; !dup {
		g.index[symbol] = len(g.nodes)
	}
	g.nodes = append(g.nodes, n)
	g.names = append(g.names, symbol)
}

func (g *Graph) appendEdges(edges []Edge, from, to RouteNode, j int) []Edge {
	_, refuel := to.(MarketNode)

	if a, ok := from.(JumpgateNode); ok {
		if b, ok := to.(JumpgateNode); ok {
			d := dist(a.System, b.System)
			if d <= g.ship.MaxJumpgateRange {
				duration := max(g.ship.MinJumpDuration, int(math.Round(float64(d)/jumpDivisor)))
				edges = append(edges, Edge{To: j, Travel: Travel{Kind: Jumpgate}, Duration: duration, Refuel: false})
			}
		}
	}

	sysDist := dist(from.SystemPoint(), to.SystemPoint())
	if sysDist == 0 {
		a, okA := waypointPoint(from)
		b, okB := waypointPoint(to)
		if !okA || !okB {
			// Two systems charted at the same coordinates; no local geometry to fly.
			return edges
		}
		d := dist(a, b)
		edges = g.appendFlight(edges, j, Nav, Cruise, d, d, navDivisor, cruiseMult, refuel)
		edges = g.appendFlight(edges, j, Nav, Burn, d, d*2, navDivisor, burnMult, refuel)
		edges = g.appendFlight(edges, j, Nav, Drift, d, g.ship.DriftFuelCost, navDivisor, driftMult, refuel)
		return edges
	}

	edges = g.appendFlight(edges, j, Warp, Burn, sysDist, sysDist*2, warpDivisor, burnMult, refuel)
	edges = g.appendFlight(edges, j, Warp, Cruise, sysDist, sysDist, warpDivisor, cruiseMult, refuel)
	if sysDist <= g.ship.MaxWarpRange {
		edges = g.appendFlight(edges, j, Warp, Drift, sysDist, g.ship.DriftFuelCost, warpDivisor, driftMult, refuel)
	}
	return edges
}

// appendFlight adds one Nav/Warp edge unless its fuel cost exceeds the tank.
func (g *Graph) appendFlight(edges []Edge, to int, kind TravelKind, mode FlightMode, d, fuel int, divisor, mult float64, refuel bool) []Edge {
	if fuel > g.ship.FuelCapacity {
		return edges
	}
	return append(edges, Edge{
		To:       to,
		Travel:   Travel{Kind: kind, Mode: mode},
		Duration: flightDuration(d, g.ship.Speed, mult, divisor),
		Fuel:     fuel,
		Refuel:   refuel,
	})
}

func flightDuration(d, speed int, mult, divisor float64) int {
	effective := float64(speed) * mult / divisor
	return departureOverhead + int(math.Round(float64(d)/effective))
}
