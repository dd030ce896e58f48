package services

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-tour-service/internal/domain"
)

func testColonyConfig() AntColonyConfig {
	return AntColonyConfig{
		NumAnts:       10,
		NumIterations: 5,
		Alpha:         1,
		Beta:          2,
		Gamma:         1.5,
		Evaporation:   0.5,
		PheromoneInit: 1,
		Q:             100,
		UseElite:      true,
		EliteWeight:   2,
		Seed:          7,
	}
}

func TestAntColonyDefaultsFillZeroValues(t *testing.T) {
	p := openTriangle()
	a := NewAntColonyPlanner(p, AntColonyConfig{UseElite: true}, zerolog.Nop())

	assert.Equal(t, 50, a.cfg.NumAnts)
	assert.Equal(t, 100, a.cfg.NumIterations)
	assert.Equal(t, 1.0, a.cfg.PheromoneInit)
	assert.Equal(t, 100.0, a.cfg.Q)
	assert.Equal(t, 2.0, a.cfg.EliteWeight)
	assert.Equal(t, int64(42), a.cfg.Seed)
}

func TestAntColonySolveFindsFullTour(t *testing.T) {
	p := openTriangle()
	a := NewAntColonyPlanner(p, testColonyConfig(), zerolog.Nop())

	sol := a.Solve(1, nil)

	require.True(t, sol.Feasible)
	assert.Equal(t, 3, sol.Visited)
	assert.Equal(t, 1, sol.Day)
	assert.Len(t, sol.Arrivals, 3)

	seen := map[int]bool{}
	for _, id := range sol.Route {
		assert.False(t, seen[id], "market %d visited twice", id)
		seen[id] = true
	}

	// The pheromone matrix keeps its n x n shape and never goes negative.
	require.Len(t, a.state.pheromone, 3)
	for _, row := range a.state.pheromone {
		require.Len(t, row, 3)
		for _, v := range row {
			assert.GreaterOrEqual(t, v, 0.0)
		}
	}
}

func TestAntColonyIsReproducible(t *testing.T) {
	p := openTriangle()
	cfg := testColonyConfig()

	a := NewAntColonyPlanner(p, cfg, zerolog.Nop())
	b := NewAntColonyPlanner(p, cfg, zerolog.Nop())

	solA := a.Solve(1, nil)
	solB := b.Solve(1, nil)

	assert.Equal(t, solA, solB)
	assert.Equal(t, a.ConvergenceHistory(), b.ConvergenceHistory())
}

func TestAntColonyConvergenceHistory(t *testing.T) {
	p := openTriangle()
	a := NewAntColonyPlanner(p, testColonyConfig(), zerolog.Nop())

	a.Solve(1, nil)

	hist := a.ConvergenceHistory()
	require.Len(t, hist, 5)
	for i := 1; i < len(hist); i++ {
		assert.GreaterOrEqual(t, hist[i], hist[i-1], "best visited count must never regress")
	}
}

// With no travel entries every pairwise hop is unreachable, so every ant
// stays at its start. Single-stop routes deposit nothing, leaving pure
// multiplicative evaporation: init * (1-rho)^iterations on every edge.
func TestAntColonyEvaporationWithoutDeposits(t *testing.T) {
	markets := []domain.Market{
		mkMarket(1, 600, 1320),
		mkMarket(2, 600, 1320),
	}
	p := domain.NewProblemInstance(markets, domain.TravelTimes{}, 1, []int{30}, 0)

	cfg := testColonyConfig()
	cfg.NumAnts = 5
	cfg.NumIterations = 3
	a := NewAntColonyPlanner(p, cfg, zerolog.Nop())

	sol := a.Solve(1, nil)
	require.True(t, sol.Feasible)
	assert.Equal(t, 1, sol.Visited)

	for _, row := range a.state.pheromone {
		for _, v := range row {
			assert.InDelta(t, 0.125, v, 1e-12)
		}
	}
}

// The elite deposit only touches the pheromone update: with the same seed,
// the first iteration's ant constructions are identical with and without it,
// and the matrices diverge only once the update has run.
func TestAntColonyEliteDivergesOnlyAfterPheromoneUpdate(t *testing.T) {
	p := openTriangle()

	withElite := testColonyConfig()
	withoutElite := testColonyConfig()
	withoutElite.UseElite = false

	a := NewAntColonyPlanner(p, withElite, zerolog.Nop())
	b := NewAntColonyPlanner(p, withoutElite, zerolog.Nop())

	solsA := a.runIteration(a.state, 30, nil)
	solsB := b.runIteration(b.state, 30, nil)

	assert.Equal(t, solsA, solsB, "constructions must match up to the pheromone update")
	assert.NotEqual(t, a.state.pheromone, b.state.pheromone, "elite deposit must alter the update")
}

func TestAntColonyEliteChangesSearch(t *testing.T) {
	p := openTriangle()

	withElite := testColonyConfig()
	withoutElite := testColonyConfig()
	withoutElite.UseElite = false

	a := NewAntColonyPlanner(p, withElite, zerolog.Nop())
	b := NewAntColonyPlanner(p, withoutElite, zerolog.Nop())

	a.Solve(1, nil)
	b.Solve(1, nil)

	assert.NotEqual(t, a.state.pheromone, b.state.pheromone)
}

func TestAntColonyEmptyWhenEverythingExcluded(t *testing.T) {
	p := openTriangle()
	a := NewAntColonyPlanner(p, testColonyConfig(), zerolog.Nop())

	sol := a.Solve(2, []int{1, 2, 3})

	assert.False(t, sol.Feasible)
	assert.Empty(t, sol.Route)
	assert.Equal(t, 2, sol.Day)

	// Every iteration still records a convergence sample.
	assert.Len(t, a.ConvergenceHistory(), 5)
}

// A candidate whose remaining open time after arrival is even one minute
// short of a full stay never enters the selection distribution.
func TestAntColonySelectionSkipsTooTightWindows(t *testing.T) {
	build := func(closing domain.Clock) *AntColonyPlanner {
		markets := []domain.Market{
			mkMarket(1, 600, 1320),
			mkMarket(2, 600, closing),
		}
		travel := mkTravel(map[[2]int]float64{{1, 2}: 5})
		p := domain.NewProblemInstance(markets, travel, 1, []int{30}, 0)
		return NewAntColonyPlanner(p, testColonyConfig(), zerolog.Nop())
	}

	// Arrival is 600+30+5 = 635; a 30 minute stay needs closing >= 665.
	a := build(664)
	_, ok := a.selectNext(a.state, 1, map[int]bool{1: true}, 600, 30, nil)
	assert.False(t, ok)

	a = build(665)
	id, ok := a.selectNext(a.state, 1, map[int]bool{1: true}, 600, 30, nil)
	require.True(t, ok)
	assert.Equal(t, 2, id)
}

// Repeated Solve calls on one planner start from a fresh colony: the second
// day's search cannot inherit the first day's best route or its history.
func TestAntColonySolveStartsFresh(t *testing.T) {
	p := openTriangle()
	a := NewAntColonyPlanner(p, testColonyConfig(), zerolog.Nop())

	first := a.Solve(1, nil)
	require.Equal(t, 3, first.Visited)

	second := a.Solve(2, first.Route)
	assert.False(t, second.Feasible)
	assert.Empty(t, second.Route)
	assert.Len(t, a.ConvergenceHistory(), 5, "history must cover the latest call only")

	// A later day with markets left plans only from the leftovers.
	third := a.Solve(2, []int{first.Route[0]})
	require.True(t, third.Feasible)
	assert.Equal(t, 2, third.Visited)
	assert.NotContains(t, third.Route, first.Route[0])
}

func TestAntColonyRespectsExclusions(t *testing.T) {
	p := openTriangle()
	a := NewAntColonyPlanner(p, testColonyConfig(), zerolog.Nop())

	sol := a.Solve(1, []int{2})

	require.True(t, sol.Feasible)
	assert.NotContains(t, sol.Route, 2)
	assert.Equal(t, 2, sol.Visited)
}
