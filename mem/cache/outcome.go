package cache

// Outcome classifies a single cache access.
type Outcome int

// All the possible outcomes of an access.
const (
	Hit Outcome = iota
	Miss
	MissWithEviction
)

func (o Outcome) String() string {
	switch o {
	case Hit:
		return "hit"
	case Miss:
		return "miss"
	case MissWithEviction:
		return "miss eviction"
	default:
		return "unknown"
	}
}

// IsMiss tells if the access had to fill a line.
func (o Outcome) IsMiss() bool {
	return o == Miss || o == MissWithEviction
}

// AccessResult describes what happened in a single access.
type AccessResult struct {
	Outcome  Outcome
	SetIndex uint64
	Tag      uint64
	WayID    int

	// EvictedTag is only meaningful when Outcome is MissWithEviction.
	EvictedTag uint64
}
