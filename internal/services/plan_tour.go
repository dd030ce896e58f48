package services

import "market-tour-service/internal/domain"

// TourPlanner plans a single day, never visiting markets in excluded.
// Both engines implement it.
type TourPlanner interface {
	Solve(day int, excluded []int) domain.Solution
}

// PlanTour runs the planner for every day of the problem in order, carrying
// the cumulative exclusion set forward so a market is visited on at most one
// day. There is no backtracking across days: once a day's route consumes a
// market it stays excluded even if a later day could have used it better.
func PlanTour(problem *domain.ProblemInstance, planner TourPlanner) domain.MultiDaySolution {
	excluded := make([]int, 0, len(problem.Markets))
	days := make([]domain.Solution, 0, problem.NumDays)

	for day := 1; day <= problem.NumDays; day++ {
		sol := planner.Solve(day, excluded)
		days = append(days, sol)
		excluded = append(excluded, sol.Route...)
	}

	total := 0
	seen := make(map[int]bool, len(excluded))
	for _, sol := range days {
		total += sol.Visited
		for _, id := range sol.Route {
			seen[id] = true
		}
	}

	unvisited := make([]int, 0, len(problem.Markets))
	for _, m := range problem.Markets {
		if !seen[m.ID] {
			unvisited = append(unvisited, m.ID)
		}
	}

	return domain.MultiDaySolution{
		Days:         days,
		TotalVisited: total,
		Unvisited:    unvisited,
	}
}
