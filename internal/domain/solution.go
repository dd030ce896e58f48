package domain

// Solution is a planned visiting order for a single day.
// Route and Arrivals are parallel sequences; a route never repeats a market.
// Solutions are immutable planning data once returned by an engine.
type Solution struct {
	Route         []int
	Arrivals      []Clock
	Visited       int
	TravelMinutes float64
	TotalMinutes  float64 // travel plus stay time for every visited market
	Feasible      bool
	Day           int
}

// EmptySolution is the explicit infeasible result used when no route exists.
// Callers must inspect Feasible rather than rely on errors.
func EmptySolution(day int) Solution {
	return Solution{
		Route:    []int{},
		Arrivals: []Clock{},
		Feasible: false,
		Day:      day,
	}
}

// MultiDaySolution aggregates per-day solutions for a whole planning run.
// A market appears in at most one day's route; the orchestrator enforces this.
type MultiDaySolution struct {
	Days         []Solution
	TotalVisited int
	Unvisited    []int
}
