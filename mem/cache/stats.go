package cache

import "fmt"

// Stats accumulates the outcomes of cache accesses.
type Stats struct {
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
}

// Record counts an outcome. An eviction is also a miss.
func (s *Stats) Record(o Outcome) {
	switch o {
	case Hit:
		s.Hits++
	case Miss:
		s.Misses++
	case MissWithEviction:
		s.Misses++
		s.Evictions++
	default:
		panic(fmt.Sprintf("unknown outcome %d", o))
	}
}

// Accesses returns the number of accesses counted.
func (s Stats) Accesses() uint64 {
	return s.Hits + s.Misses
}

// HitRate returns the fraction of accesses that hit. It is 0 when nothing
// is counted.
func (s Stats) HitRate() float64 {
	if s.Accesses() == 0 {
		return 0
	}

	return float64(s.Hits) / float64(s.Accesses())
}

func (s Stats) String() string {
	return fmt.Sprintf("hits:%d misses:%d evictions:%d",
		s.Hits, s.Misses, s.Evictions)
}
