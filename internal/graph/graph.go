package graph

import (
	"errors"
	"fmt"
	"math"

	"spacetraders-router/internal/config"
)

// ErrUnknownSymbol is returned when a query names a symbol that is not a node.
var ErrUnknownSymbol = errors.New("unknown symbol")

// Point is an integer coordinate pair.
type Point struct {
	X, Y int
}

// dist is the Euclidean distance rounded to the nearest integer.
func dist(a, b Point) int {
	dx := int64(a.X - b.X)
	dy := int64(a.Y - b.Y)
	return int(math.Round(math.Sqrt(float64(dx*dx + dy*dy))))
}

// RouteNode is one routable location. It is one of JumpgateNode, MarketNode
// or SystemNode.
type RouteNode interface {
	// SystemPoint returns the owning system's universe coordinates.
	SystemPoint() Point
	isRouteNode()
}

// JumpgateNode is a jump gate waypoint.
type JumpgateNode struct {
	System   Point
	Waypoint Point
}

// MarketNode is a waypoint with a marketplace. Ships refuel on arrival.
type MarketNode struct {
	System   Point
	Waypoint Point
}

// SystemNode stands in for a whole system that has no jump gate or market.
type SystemNode struct {
	System Point
}

func (n JumpgateNode) SystemPoint() Point { return n.System }
func (n MarketNode) SystemPoint() Point   { return n.System }
func (n SystemNode) SystemPoint() Point   { return n.System }

func (JumpgateNode) isRouteNode() {}
func (MarketNode) isRouteNode()   {}
func (SystemNode) isRouteNode()   {}

// waypointPoint returns the local coordinates of waypoint-backed nodes.
func waypointPoint(n RouteNode) (Point, bool) {
	switch v := n.(type) {
	case JumpgateNode:
		return v.Waypoint, true
	case MarketNode:
		return v.Waypoint, true
	}
	return Point{}, false
}

// FlightMode trades fuel against speed.
type FlightMode int

const (
	Cruise FlightMode = iota
	Burn
	Drift
)

func (m FlightMode) String() string {
	switch m {
	case Cruise:
		return "CRUISE"
	case Burn:
		return "BURN"
	case Drift:
		return "DRIFT"
	}
	return fmt.Sprintf("FlightMode(%d)", int(m))
}

// TravelKind is the way an edge is flown.
type TravelKind int

const (
	Jumpgate TravelKind = iota // gate to gate
	Warp                       // between systems
	Nav                        // inside one system
)

// Travel is the method of an edge. Mode is meaningless for Jumpgate.
type Travel struct {
	Kind TravelKind
	Mode FlightMode
}

func (t Travel) String() string {
	switch t.Kind {
	case Jumpgate:
		return "Jumpgate"
	case Warp:
		return "Warp(" + t.Mode.String() + ")"
	case Nav:
		return "Nav(" + t.Mode.String() + ")"
	}
	return fmt.Sprintf("Travel(%d)", int(t.Kind))
}

// Edge is a directed arc to node To.
type Edge struct {
	To       int
	Travel   Travel
	Duration int  // seconds
	Fuel     int  // units consumed
	Refuel   bool // To is a market
}

// Graph is the routable node set plus adjacency. It is never mutated after
// Build, so concurrent queries need no locking.
type Graph struct {
	nodes []RouteNode
	names []string
	adj   [][]Edge
	index map[string]int
	ship  config.Ship
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Node returns node i.
func (g *Graph) Node(i int) RouteNode { return g.nodes[i] }

// Symbol returns the display symbol of node i.
func (g *Graph) Symbol(i int) string { return g.names[i] }

// Edges returns the outgoing edges of node i. Callers must not modify the slice.
func (g *Graph) Edges(i int) []Edge { return g.adj[i] }

// Ship returns the profile the graph was built for.
func (g *Graph) Ship() config.Ship { return g.ship }

// Lookup returns the node index for a symbol.
func (g *Graph) Lookup(symbol string) (int, error) {
	i, ok := g.index[symbol]
	if !ok {
		return -1, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}
	return i, nil
}

// Stats counts nodes by kind and edges.
type Stats struct {
	Jumpgates int
	Markets   int
	Systems   int
	Edges     int
}

// Stats returns node and edge counts.
func (g *Graph) Stats() Stats {
	var s Stats
	for _, n := range g.nodes {
		switch n.(type) {
		case JumpgateNode:
			s.Jumpgates++
		case MarketNode:
			s.Markets++
		case SystemNode:
			s.Systems++
		}
	}
	for _, edges := range g.adj {
		s.Edges += len(edges)
	}
	return s
}
