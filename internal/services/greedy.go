package services

import (
	"math"

	"github.com/rs/zerolog"

	"market-tour-service/internal/domain"
)

// Selection policies for the greedy engine.
const (
	PolicyNearest         = "nearest"
	PolicyEarliestClosing = "earliest_closing"
	PolicyTimeEfficient   = "time_efficient"
	PolicyHybrid          = "hybrid"
)

// GreedyPlanner builds a day tour with a deterministic multi-start
// constructive heuristic: every non-excluded market is tried as a route
// start, each start is extended by the configured selection policy until no
// extension is possible, and the route visiting the most markets wins.
//
// The planner is stateless between Solve calls and deterministic for a fixed
// problem instance.
type GreedyPlanner struct {
	problem          *domain.ProblemInstance
	policy           string
	distanceWeight   float64
	timeWindowWeight float64
	log              zerolog.Logger
}

// NewGreedyPlanner creates a greedy planner. An unrecognized policy name is
// not an error: selection silently falls back to the hybrid policy.
func NewGreedyPlanner(problem *domain.ProblemInstance, policy string, distanceWeight, timeWindowWeight float64, log zerolog.Logger) *GreedyPlanner {
	return &GreedyPlanner{
		problem:          problem,
		policy:           policy,
		distanceWeight:   distanceWeight,
		timeWindowWeight: timeWindowWeight,
		log:              log.With().Str("component", "greedy_planner").Logger(),
	}
}

// Solve plans one day, never reusing markets in excluded. It returns a
// feasible (possibly single-stop) Solution, or an explicit infeasible empty
// Solution when no startable market remains. Ties on visited count keep the
// first route found, in market-list order.
func (g *GreedyPlanner) Solve(day int, excluded []int) domain.Solution {
	stay := g.problem.StayDuration(day)

	skip := make(map[int]bool, len(excluded))
	for _, id := range excluded {
		skip[id] = true
	}

	var best domain.Solution
	found := false
	for _, start := range g.problem.Markets {
		if skip[start.ID] {
			continue
		}
		sol := g.construct(start, stay, skip)
		if sol.Feasible && (!found || sol.Visited > best.Visited) {
			best = sol
			found = true
		}
	}

	if !found {
		g.log.Warn().Int("day", day).Msg("no feasible tour found")
		return domain.EmptySolution(day)
	}

	best.Day = day
	g.log.Info().
		Str("policy", g.policy).
		Int("day", day).
		Int("visited", best.Visited).
		Msg("greedy tour planned")
	return best
}

// construct extends a route from the given start until the policy yields no
// candidate, or until the chosen candidate fails the feasibility test. The
// latter only happens under the nearest policy, which selects before
// filtering; the route then terminates rather than falling back to the next
// nearest feasible market.
func (g *GreedyPlanner) construct(start domain.Market, stay int, skip map[int]bool) domain.Solution {
	route := []int{start.ID}
	visited := map[int]bool{start.ID: true}

	t := start.Opening.Minutes()
	arrivals := []domain.Clock{domain.MinutesToClock(t)}
	currentID := start.ID

	for {
		next, ok := g.selectNext(currentID, visited, t, stay, skip)
		if !ok {
			break
		}

		t += float64(stay) + g.problem.TravelTime(currentID, next.ID) + float64(g.problem.TransferBuffer)
		if !canVisit(next, t, stay) {
			break
		}
		if open := next.Opening.Minutes(); t < open {
			t = open
		}

		route = append(route, next.ID)
		visited[next.ID] = true
		arrivals = append(arrivals, domain.MinutesToClock(t))
		currentID = next.ID
	}

	totalTravel := 0.0
	for i := 0; i < len(route)-1; i++ {
		totalTravel += g.problem.TravelTime(route[i], route[i+1])
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

// selectNext applies the configured policy to all unvisited, non-excluded
// markets in list order.
func (g *GreedyPlanner) selectNext(currentID int, visited map[int]bool, t float64, stay int, skip map[int]bool) (domain.Market, bool) {
	candidates := make([]domain.Market, 0, len(g.problem.Markets))
	for _, m := range g.problem.Markets {
		if visited[m.ID] || skip[m.ID] {
			continue
		}
		candidates = append(candidates, m)
	}
	if len(candidates) == 0 {
		return domain.Market{}, false
	}

	switch g.policy {
	case PolicyNearest:
		return g.selectNearest(currentID, candidates), true
	case PolicyEarliestClosing:
		return g.selectEarliestClosing(currentID, candidates, t, stay)
	case PolicyTimeEfficient:
		return g.selectTimeEfficient(currentID, candidates, t, stay)
	default:
		return g.selectHybrid(currentID, candidates, t, stay)
	}
}

// selectNearest picks the minimum-travel candidate without checking
// feasibility first; the construction loop applies the feasibility test to
// this single choice.
func (g *GreedyPlanner) selectNearest(currentID int, candidates []domain.Market) domain.Market {
	best := candidates[0]
	bestCost := g.problem.TravelTime(currentID, best.ID)
	for _, m := range candidates[1:] {
		if cost := g.problem.TravelTime(currentID, m.ID); cost < bestCost {
			bestCost = cost
			best = m
		}
	}
	return best
}

func (g *GreedyPlanner) selectEarliestClosing(currentID int, candidates []domain.Market, t float64, stay int) (domain.Market, bool) {
	var best domain.Market
	found := false
	for _, m := range candidates {
		arrival := projectedArrival(g.problem, currentID, m.ID, t, stay)
		if !canVisit(m, arrival, stay) {
			continue
		}
		if !found || m.Closing < best.Closing {
			best = m
			found = true
		}
	}
	return best, found
}

func (g *GreedyPlanner) selectTimeEfficient(currentID int, candidates []domain.Market, t float64, stay int) (domain.Market, bool) {
	var best domain.Market
	bestScore := math.Inf(1)
	found := false
	for _, m := range candidates {
		travel := g.problem.TravelTime(currentID, m.ID)
		arrival := t + float64(stay) + travel + float64(g.problem.TransferBuffer)
		if !canVisit(m, arrival, stay) {
			continue
		}
		score := travel / math.Max(1, m.Closing.Minutes()-arrival)
		if score < bestScore {
			bestScore = score
			best = m
			found = true
		}
	}
	return best, found
}

// selectHybrid scores feasible candidates by normalized travel cost and
// normalized closing urgency, weighted by the planner configuration.
func (g *GreedyPlanner) selectHybrid(currentID int, candidates []domain.Market, t float64, stay int) (domain.Market, bool) {
	type scored struct {
		market domain.Market
		travel float64
		slack  float64 // minutes between projected arrival and latest arrival
	}

	feasible := make([]scored, 0, len(candidates))
	maxTravel := 0.0
	maxSlack := 0.0
	for _, m := range candidates {
		travel := g.problem.TravelTime(currentID, m.ID)
		arrival := t + float64(stay) + travel + float64(g.problem.TransferBuffer)
		if !canVisit(m, arrival, stay) {
			continue
		}
		slack := m.LatestArrival(stay).Minutes() - arrival
		feasible = append(feasible, scored{market: m, travel: travel, slack: slack})
		if travel > maxTravel {
			maxTravel = travel
		}
		if slack > maxSlack {
			maxSlack = slack
		}
	}
	if len(feasible) == 0 {
		return domain.Market{}, false
	}

	var best domain.Market
	bestScore := math.Inf(1)
	for _, c := range feasible {
		normDist := c.travel / math.Max(maxTravel, 1)
		urgency := 1 - c.slack/math.Max(maxSlack, 1)
		score := g.distanceWeight*normDist + g.timeWindowWeight*urgency
		if score < bestScore {
			bestScore = score
			best = c.market
		}
	}
	return best, true
}
