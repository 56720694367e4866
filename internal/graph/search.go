package graph

import "container/heap"

// state is a search node: a location plus the fuel left on arrival.
// Fuel is quantized to the ship's fuel segment, except on refuel
// (capacity) and at the start, so each node has a bounded number of states.
type state struct {
	node int
	fuel int
}

// Leg is one traversed edge of a route.
type Leg struct {
	Travel        Travel
	From          string
	To            string
	Duration      int // seconds
	Elapsed       int // seconds since departure, including this leg
	Fuel          int // fuel burned on this leg
	FuelRemaining int // quantized fuel on arrival, before any refuel
	Refuel        bool
}

// Route is an annotated minimum-time route.
type Route struct {
	Source      string
	Destination string
	Legs        []Leg
	Duration    int // seconds
	FuelUsed    int
}

// step applies the fuel transition of taking e with fuel units in the tank.
func (g *Graph) step(fuel int, e *Edge) (int, bool) {
	left := fuel - e.Fuel
	if left < 0 {
		return 0, false
	}
	if e.Refuel {
		return g.ship.FuelCapacity, true
	}
	return left / g.ship.FuelSegment * g.ship.FuelSegment, true
}

// HeuristicDivisor converts system distance into a lower bound on seconds.
// It is the larger of the jump gate divisor and the burn warp effective
// speed, so neither the fastest gate nor the fastest warp beats the estimate.
func (g *Graph) HeuristicDivisor() float64 {
	return max(jumpDivisor, float64(g.ship.Speed)*burnMult/warpDivisor)
}

func (g *Graph) heuristic(dest int) []int {
	target := g.nodes[dest].SystemPoint()
	div := g.HeuristicDivisor()
	h := make([]int, len(g.nodes))
	for i, n := range g.nodes {
		h[i] = int(float64(dist(n.SystemPoint(), target)) / div)
	}
	return h
}

// search is the per-query working state. Nothing in it is shared.
type search struct {
	g    *Graph
	best map[state]int
	prev map[state]state
	pq   priorityQueue
}

func (g *Graph) newSearch(start state, h0 int) *search {
	s := &search{
		g:    g,
		best: map[state]int{start: 0},
		prev: make(map[state]state),
		pq:   priorityQueue{{s: start, cost: 0, est: h0}},
	}
	heap.Init(&s.pq)
	return s
}

// run pops states in estimate order until goal accepts one or the frontier
// empties. h may be nil for a plain Dijkstra.
func (s *search) run(h []int, goal func(int) bool) (state, bool) {
	for s.pq.Len() > 0 {
		item := heap.Pop(&s.pq).(pqItem)
		if item.cost > s.best[item.s] {
			continue
		}
		if goal != nil && goal(item.s.node) {
			return item.s, true
		}
		edges := s.g.adj[item.s.node]
		for k := range edges {
			e := &edges[k]
			fuel, ok := s.g.step(item.s.fuel, e)
			if !ok {
				continue
			}
			next := state{e.To, fuel}
			cost := item.cost + e.Duration
			if d, seen := s.best[next]; !seen || cost < d {
				s.best[next] = cost
				s.prev[next] = item.s
				est := cost
				if h != nil {
					est += h[e.To]
				}
				heap.Push(&s.pq, pqItem{s: next, cost: cost, est: est})
			}
		}
	}
	return state{}, false
}

// Route finds the minimum-duration route from src to dst under the ship's
// fuel limit. found is false when dst cannot be reached; err is set only for
// unknown symbols. A route from a symbol to itself has no legs.
func (g *Graph) Route(src, dst string) (*Route, bool, error) {
	from, err := g.Lookup(src)
	if err != nil {
		return nil, false, err
	}
	to, err := g.Lookup(dst)
	if err != nil {
		return nil, false, err
	}
	if from == to {
		return &Route{Source: g.names[from], Destination: g.names[to]}, true, nil
	}

	h := g.heuristic(to)
	start := state{from, g.ship.StartFuel}
	s := g.newSearch(start, h[from])
	end, ok := s.run(h, func(n int) bool { return n == to })
	if !ok {
		return nil, false, nil
	}

	path := []state{end}
	for cur := end; cur != start; {
		cur = s.prev[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return g.annotate(path), true, nil
}

// annotate re-identifies the edge behind each hop of path: the shortest edge
// between the two nodes that reproduces the recorded fuel transition, the
// first in adjacency order on equal duration. Relaxation keeps exactly that
// edge, so the legs always sum to the searched duration.
func (g *Graph) annotate(path []state) *Route {
	r := &Route{
		Source:      g.names[path[0].node],
		Destination: g.names[path[len(path)-1].node],
		Legs:        make([]Leg, 0, len(path)-1),
	}
	fuel := path[0].fuel
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		var used *Edge
		edges := g.adj[a.node]
		for k := range edges {
			e := &edges[k]
			if e.To != b.node {
				continue
			}
			if f, ok := g.step(a.fuel, e); !ok || f != b.fuel {
				continue
			}
			if used == nil || e.Duration < used.Duration {
				used = e
			}
		}
		if used == nil {
			panic("graph: search recorded a hop with no matching edge")
		}

		left := (fuel - used.Fuel) / g.ship.FuelSegment * g.ship.FuelSegment
		r.Duration += used.Duration
		r.FuelUsed += used.Fuel
		r.Legs = append(r.Legs, Leg{
			Travel:        used.Travel,
			From:          g.names[a.node],
			To:            g.names[b.node],
			Duration:      used.Duration,
			Elapsed:       r.Duration,
			Fuel:          used.Fuel,
			FuelRemaining: left,
			Refuel:        used.Refuel,
		})
		fuel = left
		if used.Refuel {
			fuel = g.ship.FuelCapacity
		}
	}
	return r
}

// DurationsFrom runs an exhaustive search from src and returns the minimum
// duration to every reachable symbol, src included at 0.
func (g *Graph) DurationsFrom(src string) (map[string]int, error) {
	from, err := g.Lookup(src)
	if err != nil {
		return nil, err
	}
	s := g.newSearch(state{from, g.ship.StartFuel}, 0)
	s.run(nil, nil)

	out := make(map[string]int)
	for st, d := range s.best {
		name := g.names[st.node]
		if cur, ok := out[name]; !ok || d < cur {
			out[name] = d
		}
	}
	return out, nil
}

// Priority queue for the search: lowest estimate first, deeper state on ties.
type pqItem struct {
	s    state
	cost int
	est  int
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].est != pq[j].est {
		return pq[i].est < pq[j].est
	}
	return pq[i].cost > pq[j].cost
}
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
