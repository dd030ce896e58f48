package domain

// ProblemInstance holds all input data for one planning run.
// It is built once from external data and is read-only afterwards.
type ProblemInstance struct {
	Markets        []Market
	Travel         TravelTimes
	NumDays        int
	StayDurations  []int // one per day, minutes
	TransferBuffer int   // extra minutes per inter-stop transition

	index map[int]int // market ID -> dense index, fixed at construction
}

const defaultStayMinutes = 30

// NewProblemInstance builds a ProblemInstance and assigns every market a
// stable dense index used by per-pair state such as pheromone matrices.
// Stay durations shorter than numDays are padded by repeating the last value.
func NewProblemInstance(markets []Market, travel TravelTimes, numDays int, stayDurations []int, transferBuffer int) *ProblemInstance {
	if numDays < 1 {
		numDays = 1
	}

	stays := make([]int, 0, numDays)
	stays = append(stays, stayDurations...)
	if len(stays) == 0 {
		stays = append(stays, defaultStayMinutes)
	}
	for len(stays) < numDays {
		stays = append(stays, stays[len(stays)-1])
	}
	stays = stays[:numDays]

	index := make(map[int]int, len(markets))
	for i, m := range markets {
		index[m.ID] = i
	}

	return &ProblemInstance{
		Markets:        markets,
		Travel:         travel,
		NumDays:        numDays,
		StayDurations:  stays,
		TransferBuffer: transferBuffer,
		index:          index,
	}
}

// TravelTime returns the travel minutes between two markets (see TravelTimes.Get).
func (p *ProblemInstance) TravelTime(from, to int) float64 {
	return p.Travel.Get(from, to)
}

// MarketByID looks up a market by identifier.
func (p *ProblemInstance) MarketByID(id int) (Market, bool) {
	i, ok := p.index[id]
	if !ok {
		return Market{}, false
	}
	return p.Markets[i], true
}

// IndexOf returns the dense index assigned to a market ID, or -1 if unknown.
func (p *ProblemInstance) IndexOf(id int) int {
	i, ok := p.index[id]
	if !ok {
		return -1
	}
	return i
}

// StayDuration returns the dwell minutes for a 1-based day number.
func (p *ProblemInstance) StayDuration(day int) int {
	return p.StayDurations[day-1]
}

// EarliestOpening returns the earliest opening time across all markets.
func (p *ProblemInstance) EarliestOpening() Clock {
	earliest := Clock(24 * 60)
	for _, m := range p.Markets {
		if m.Opening < earliest {
			earliest = m.Opening
		}
	}
	return earliest
}

// LatestClosing returns the latest closing time across all markets.
func (p *ProblemInstance) LatestClosing() Clock {
	latest := Clock(0)
	for _, m := range p.Markets {
		if m.Closing > latest {
			latest = m.Closing
		}
	}
	return latest
}
