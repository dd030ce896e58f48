package services

import (
	"math"
	"math/rand"

	"github.com/rs/zerolog"

	"market-tour-service/internal/domain"
)

// AntColonyConfig holds the metaheuristic hyperparameters.
type AntColonyConfig struct {
	NumAnts       int
	NumIterations int
	Alpha         float64 // pheromone importance
	Beta          float64 // distance heuristic importance
	Gamma         float64 // time-window urgency importance
	Evaporation   float64 // in [0,1]
	PheromoneInit float64
	Q             float64 // deposit scale
	UseElite      bool
	EliteWeight   float64
	Seed          int64
}

// applyDefaults fills zero values with the conventional defaults so a
// partially specified config still produces a working planner.
func (c AntColonyConfig) applyDefaults() AntColonyConfig {
	if c.NumAnts <= 0 {
		c.NumAnts = 50
	}
	if c.NumIterations <= 0 {
		c.NumIterations = 100
	}
	if c.PheromoneInit <= 0 {
		c.PheromoneInit = 1
	}
	if c.Q <= 0 {
		c.Q = 100
	}
	if c.UseElite && c.EliteWeight <= 0 {
		c.EliteWeight = 2
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
	return c
}

// colonyState is the mutable accumulation state of one Solve call: the
// pheromone matrix keyed by dense market index, the best feasible solution
// found so far, and the per-iteration convergence history. It is owned by
// the planner and threaded through each iteration step so a single iteration
// can be exercised in isolation.
type colonyState struct {
	pheromone   [][]float64
	best        *domain.Solution
	convergence []int
}

func newColonyState(n int, init float64) *colonyState {
	pheromone := make([][]float64, n)
	for i := range pheromone {
		row := make([]float64, n)
		for j := range row {
			row[j] = init
		}
		pheromone[i] = row
	}
	return &colonyState{pheromone: pheromone}
}

// AntColonyPlanner builds day tours with pheromone-guided probabilistic
// construction. Ants draw their next stop from the normalized distribution
// of pheromone^alpha * (1/travel)^beta * (1/timeUntilClose)^gamma over the
// feasible candidates only; infeasible candidates never enter the
// distribution. After every iteration the matrix evaporates
// multiplicatively, then each ant route of at least two stops deposits
// Q*visited/n on its directed edges, with an optional elite deposit stacked
// on the best-known route.
//
// All randomness comes from a single seeded stream, so repeated runs with
// the same problem, config, and seed reproduce the same ant routes and the
// same final solution.
type AntColonyPlanner struct {
	problem *domain.ProblemInstance
	cfg     AntColonyConfig
	rng     *rand.Rand
	state   *colonyState
	log     zerolog.Logger
}

func NewAntColonyPlanner(problem *domain.ProblemInstance, cfg AntColonyConfig, log zerolog.Logger) *AntColonyPlanner {
	cfg = cfg.applyDefaults()
	return &AntColonyPlanner{
		problem: problem,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		state:   newColonyState(len(problem.Markets), cfg.PheromoneInit),
		log:     log.With().Str("component", "aco_planner").Logger(),
	}
}

// ConvergenceHistory returns the best visited count recorded after each
// iteration of the most recent Solve call (0 before any feasible solution
// exists).
func (a *AntColonyPlanner) ConvergenceHistory() []int {
	out := make([]int, len(a.state.convergence))
	copy(out, a.state.convergence)
	return out
}

// Solve runs the configured number of iterations for one day and returns the
// best feasible solution found, or an explicit infeasible empty Solution if
// no ant ever produced one. Each call starts from a fresh colony: pheromone,
// best solution, and convergence history never leak between days, so a best
// route built from markets that are excluded today cannot shadow today's
// search. The random stream continues across calls.
func (a *AntColonyPlanner) Solve(day int, excluded []int) domain.Solution {
	stay := a.problem.StayDuration(day)
	a.state = newColonyState(len(a.problem.Markets), a.cfg.PheromoneInit)

	skip := make(map[int]bool, len(excluded))
	for _, id := range excluded {
		skip[id] = true
	}

	a.log.Info().
		Int("day", day).
		Int("iterations", a.cfg.NumIterations).
		Int("ants", a.cfg.NumAnts).
		Msg("starting ant colony run")

	for it := 0; it < a.cfg.NumIterations; it++ {
		a.runIteration(a.state, stay, skip)
	}

	if a.state.best == nil {
		a.log.Warn().Int("day", day).Msg("no feasible tour found")
		return domain.EmptySolution(day)
	}

	best := *a.state.best
	best.Day = day
	a.log.Info().
		Int("day", day).
		Int("visited", best.Visited).
		Msg("ant colony run complete")
	return best
}

// runIteration performs one full iteration: all ant constructions, the
// best-solution and convergence bookkeeping, and finally the pheromone
// update. The update runs strictly after every ant has finished reading the
// matrix; it is the only write in the iteration. The constructed solutions
// are returned for inspection.
func (a *AntColonyPlanner) runIteration(st *colonyState, stay int, skip map[int]bool) []domain.Solution {
	solutions := make([]domain.Solution, 0, a.cfg.NumAnts)
	for ant := 0; ant < a.cfg.NumAnts; ant++ {
		solutions = append(solutions, a.construct(st, stay, skip))
	}

	var iterBest *domain.Solution
	for i := range solutions {
		s := &solutions[i]
		if !s.Feasible {
			continue
		}
		if iterBest == nil || s.Visited > iterBest.Visited {
			iterBest = s
		}
	}
	if iterBest != nil && (st.best == nil || iterBest.Visited > st.best.Visited) {
		cp := *iterBest
		st.best = &cp
		a.log.Debug().Int("visited", cp.Visited).Msg("new best tour")
	}

	if st.best != nil {
		st.convergence = append(st.convergence, st.best.Visited)
	} else {
		st.convergence = append(st.convergence, 0)
	}

	a.updatePheromones(st, solutions)
	return solutions
}

// construct builds one ant's tour, starting at a uniformly random
// non-excluded market at its opening time.
func (a *AntColonyPlanner) construct(st *colonyState, stay int, skip map[int]bool) domain.Solution {
	available := make([]domain.Market, 0, len(a.problem.Markets))
	for _, m := range a.problem.Markets {
		if !skip[m.ID] {
			available = append(available, m)
		}
	}
	if len(available) == 0 {
		return domain.EmptySolution(0)
	}

	start := available[a.rng.Intn(len(available))]
	route := []int{start.ID}
	visited := map[int]bool{start.ID: true}

	t := start.Opening.Minutes()
	arrivals := []domain.Clock{domain.MinutesToClock(t)}
	currentID := start.ID

	for {
		nextID, ok := a.selectNext(st, currentID, visited, t, stay, skip)
		if !ok {
			break
		}

		next, _ := a.problem.MarketByID(nextID)
		t += float64(stay) + a.problem.TravelTime(currentID, nextID) + float64(a.problem.TransferBuffer)
		if !canVisit(next, t, stay) {
			break
		}
		if open := next.Opening.Minutes(); t < open {
			t = open
		}

		route = append(route, nextID)
		visited[nextID] = true
		arrivals = append(arrivals, domain.MinutesToClock(t))
		currentID = nextID
	}

	totalTravel := 0.0
	for i := 0; i < len(route)-1; i++ {
		totalTravel += a.problem.TravelTime(route[i], route[i+1])
	}

	return domain.Solution{
		Route:         route,
		Arrivals:      arrivals,
		Visited:       len(route),
		TravelMinutes: totalTravel,
		TotalMinutes:  totalTravel + float64(len(route)*stay),
		Feasible:      true,
	}
}

// selectNext draws the next market from the weighted distribution over
// feasible candidates. Candidates that cannot fit a full stay before closing
// are excluded from the distribution entirely.
func (a *AntColonyPlanner) selectNext(st *colonyState, currentID int, visited map[int]bool, t float64, stay int, skip map[int]bool) (int, bool) {
	curIdx := a.problem.IndexOf(currentID)

	ids := make([]int, 0, len(a.problem.Markets))
	weights := make([]float64, 0, len(a.problem.Markets))
	total := 0.0

	for _, m := range a.problem.Markets {
		if visited[m.ID] || skip[m.ID] {
			continue
		}

		distance := a.problem.TravelTime(currentID, m.ID)
		if distance == 0 {
			distance = 0.01
		}
		heuristic := 1.0 / distance

		arrival := t + float64(stay) + distance + float64(a.problem.TransferBuffer)
		timeUntilClose := m.Closing.Minutes() - arrival
		if timeUntilClose < float64(stay) {
			continue
		}
		urgency := 1.0 / math.Max(timeUntilClose, 1)

		w := math.Pow(st.pheromone[curIdx][a.problem.IndexOf(m.ID)], a.cfg.Alpha) *
			math.Pow(heuristic, a.cfg.Beta) *
			math.Pow(urgency, a.cfg.Gamma)
		ids = append(ids, m.ID)
		weights = append(weights, w)
		total += w
	}

	if len(ids) == 0 {
		return 0, false
	}
	if total <= 0 {
		return ids[0], true
	}

	// Roulette-wheel draw over the sum-normalized weights.
	r := a.rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r <= acc {
			return ids[i], true
		}
	}
	return ids[len(ids)-1], true
}

// updatePheromones evaporates the whole matrix multiplicatively, then applies
// the additive deposits for this iteration's ants and, when enabled, the
// elite deposit along the best-known route.
func (a *AntColonyPlanner) updatePheromones(st *colonyState, solutions []domain.Solution) {
	for _, row := range st.pheromone {
		for j := range row {
			row[j] *= 1 - a.cfg.Evaporation
		}
	}

	n := float64(len(a.problem.Markets))
	for _, s := range solutions {
		if !s.Feasible || len(s.Route) < 2 {
			continue
		}
		deposit := a.cfg.Q * float64(s.Visited) / n
		a.depositAlong(st, s.Route, deposit)
	}

	if a.cfg.UseElite && st.best != nil && len(st.best.Route) > 1 {
		deposit := a.cfg.Q * float64(st.best.Visited) * a.cfg.EliteWeight / n
		a.depositAlong(st, st.best.Route, deposit)
	}
}

func (a *AntColonyPlanner) depositAlong(st *colonyState, route []int, deposit float64) {
	for i := 0; i < len(route)-1; i++ {
		from := a.problem.IndexOf(route[i])
		to := a.problem.IndexOf(route[i+1])
		st.pheromone[from][to] += deposit
	}
}
