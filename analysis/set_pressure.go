// Package analysis summarizes how the accesses of a trace spread across the
// sets of a cache.
package analysis

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/sarchlab/cachesim/mem/cache"
	"gonum.org/v1/gonum/stat"
)

type setCounters struct {
	accesses  uint64
	hits      uint64
	misses    uint64
	evictions uint64
}

// SetPressure counts accesses, misses, and evictions per set.
type SetPressure struct {
	numSets int
	sets    map[uint64]*setCounters
}

// NewSetPressure creates an analyzer for a cache with numSets sets.
func NewSetPressure(numSets int) *SetPressure {
	return &SetPressure{
		numSets: numSets,
		sets:    make(map[uint64]*setCounters),
	}
}

// Record counts the result of a single access.
func (p *SetPressure) Record(r cache.AccessResult) {
	c, ok := p.sets[r.SetIndex]
	if !ok {
		c = &setCounters{}
		p.sets[r.SetIndex] = c
	}

	c.accesses++

	switch r.Outcome {
	case cache.Hit:
		c.hits++
	case cache.Miss:
		c.misses++
	case cache.MissWithEviction:
		c.misses++
		c.evictions++
	}
}

// SetPressureSummary describes the distribution of misses over the sets.
type SetPressureSummary struct {
	NumSets     int     `json:"num_sets"`
	TouchedSets int     `json:"touched_sets"`
	MeanMisses  float64 `json:"mean_misses"`
	StdMisses   float64 `json:"std_misses"`
	HottestSet  uint64  `json:"hottest_set"`
	MaxMisses   uint64  `json:"max_misses"`
}

// Summary computes the mean and the standard deviation of the number of
// misses per set. Sets that are never accessed count as zero misses.
func (p *SetPressure) Summary() SetPressureSummary {
	s := SetPressureSummary{
		NumSets:     p.numSets,
		TouchedSets: len(p.sets),
	}

	if p.numSets == 0 {
		return s
	}

	misses := make([]float64, 0, len(p.sets)+1)
	weights := make([]float64, 0, len(p.sets)+1)

	for _, setID := range p.sortedSetIDs() {
		c := p.sets[setID]
		misses = append(misses, float64(c.misses))
		weights = append(weights, 1)

		if c.misses > s.MaxMisses {
			s.MaxMisses = c.misses
			s.HottestSet = setID
		}
	}

	untouched := p.numSets - len(p.sets)
	if untouched > 0 {
		misses = append(misses, 0)
		weights = append(weights, float64(untouched))
	}

	if p.numSets == 1 {
		s.MeanMisses = misses[0]
		return s
	}

	s.MeanMisses, s.StdMisses = stat.MeanStdDev(misses, weights)

	return s
}

func (p *SetPressure) sortedSetIDs() []uint64 {
	ids := make([]uint64, 0, len(p.sets))
	for id := range p.sets {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// WriteCSV writes one row per accessed set.
func (p *SetPressure) WriteCSV(w io.Writer) error {
	csvWriter := csv.NewWriter(w)

	header := []string{"Set", "Accesses", "Hits", "Misses", "Evictions"}
	if err := csvWriter.Write(header); err != nil {
		return err
	}

	for _, setID := range p.sortedSetIDs() {
		c := p.sets[setID]

		record := []string{
			strconv.FormatUint(setID, 10),
			strconv.FormatUint(c.accesses, 10),
			strconv.FormatUint(c.hits, 10),
			strconv.FormatUint(c.misses, 10),
			strconv.FormatUint(c.evictions, 10),
		}

		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	csvWriter.Flush()

	return csvWriter.Error()
}
