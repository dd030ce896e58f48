package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PlannerConfig is the full planning configuration, loadable from YAML.
type PlannerConfig struct {
	Problem   ProblemConfig   `yaml:"problem"`
	Algorithm AlgorithmConfig `yaml:"algorithm"`
	Greedy    GreedyConfig    `yaml:"greedy"`
	ACO       ACOConfig       `yaml:"aco"`
	Data      DataConfig      `yaml:"data"`
	Output    OutputConfig    `yaml:"output"`
}

type ProblemConfig struct {
	NumDays        int   `yaml:"num_days"`
	StayMinutes    []int `yaml:"stay_minutes"`
	TransferBuffer int   `yaml:"transfer_buffer"`
}

type AlgorithmConfig struct {
	// Type selects the engine: "aco" or "greedy".
	Type string `yaml:"type"`
}

type GreedyConfig struct {
	Policy           string  `yaml:"policy"`
	DistanceWeight   float64 `yaml:"distance_weight"`
	TimeWindowWeight float64 `yaml:"time_window_weight"`
}

type ACOConfig struct {
	NumAnts       int     `yaml:"num_ants"`
	NumIterations int     `yaml:"num_iterations"`
	Alpha         float64 `yaml:"alpha"`
	Beta          float64 `yaml:"beta"`
	Gamma         float64 `yaml:"gamma"`
	Evaporation   float64 `yaml:"evaporation"`
	PheromoneInit float64 `yaml:"pheromone_init"`
	Q             float64 `yaml:"q"`
	UseElite      bool    `yaml:"use_elite"`
	EliteWeight   float64 `yaml:"elite_weight"`
	Seed          int64   `yaml:"seed"`
}

type DataConfig struct {
	MarketsPath     string `yaml:"markets_path"`
	TravelTimesPath string `yaml:"travel_times_path"`
}

type OutputConfig struct {
	ResultsDir string `yaml:"results_dir"`
	Verbose    bool   `yaml:"verbose"`
}

// Default returns the conventional planner configuration.
func Default() PlannerConfig {
	return PlannerConfig{
		Problem: ProblemConfig{
			NumDays:        1,
			StayMinutes:    []int{30},
			TransferBuffer: 5,
		},
		Algorithm: AlgorithmConfig{Type: "aco"},
		Greedy: GreedyConfig{
			Policy:           "hybrid",
			DistanceWeight:   0.4,
			TimeWindowWeight: 0.6,
		},
		ACO: ACOConfig{
			NumAnts:       50,
			NumIterations: 100,
			Alpha:         1.0,
			Beta:          2.0,
			Gamma:         1.5,
			Evaporation:   0.5,
			PheromoneInit: 1.0,
			Q:             100.0,
			UseElite:      true,
			EliteWeight:   2.0,
			Seed:          42,
		},
		Data: DataConfig{
			MarketsPath:     "data/markets.json",
			TravelTimesPath: "data/travel_times.json",
		},
		Output: OutputConfig{
			ResultsDir: "results",
			Verbose:    true,
		},
	}
}

// LoadPlannerConfig reads a YAML file over the defaults, so partial files
// only override what they mention.
func LoadPlannerConfig(path string) (PlannerConfig, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return PlannerConfig{}, fmt.Errorf("load planner config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return PlannerConfig{}, fmt.Errorf("load planner config: parse %q: %w", path, err)
	}

	return cfg, nil
}
