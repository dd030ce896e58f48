package dto

// TourRequest overrides the planner defaults for a single request. Omitted
// fields keep their defaults, so an empty object plans one day with the
// default engine.
type TourRequest struct {
	Algorithm      string  `json:"algorithm"`
	NumDays        int     `json:"num_days"`
	StayMinutes    []int   `json:"stay_minutes"`
	TransferBuffer *int    `json:"transfer_buffer"`
	Greedy         *Greedy `json:"greedy"`
	ACO            *ACO    `json:"aco"`
}

type Greedy struct {
	Policy           string   `json:"policy"`
	DistanceWeight   *float64 `json:"distance_weight"`
	TimeWindowWeight *float64 `json:"time_window_weight"`
}

type ACO struct {
	NumAnts       int      `json:"num_ants"`
	NumIterations int      `json:"num_iterations"`
	Alpha         *float64 `json:"alpha"`
	Beta          *float64 `json:"beta"`
	Gamma         *float64 `json:"gamma"`
	Evaporation   *float64 `json:"evaporation"`
	PheromoneInit *float64 `json:"pheromone_init"`
	Q             *float64 `json:"q"`
	UseElite      *bool    `json:"use_elite"`
	EliteWeight   *float64 `json:"elite_weight"`
	Seed          *int64   `json:"seed"`
}

type DayPlanResponse struct {
	Day           int      `json:"day"`
	Route         []int    `json:"route"`
	Arrivals      []string `json:"arrivals"`
	Visited       int      `json:"visited"`
	TravelMinutes float64  `json:"travel_minutes"`
	TotalMinutes  float64  `json:"total_minutes"`
	Feasible      bool     `json:"feasible"`
}

type TourResponse struct {
	Algorithm    string            `json:"algorithm"`
	Days         []DayPlanResponse `json:"days"`
	TotalVisited int               `json:"total_visited"`
	Unvisited    []int             `json:"unvisited"`
}
