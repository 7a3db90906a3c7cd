package traits

// Rarity labels, from most to least common.
const (
	Common   = "Common"
	Uncommon = "Uncommon"
	Rare     = "Rare!"
	Epic     = "EPIC RARE!"
)

// Band thresholds on the total score.
const (
	UncommonFrom = 6
	RareFrom     = 8
	EpicFrom     = 12
)

// Score collects the rarity contributed by each randomized facet.
type Score struct {
	Body       int
	Background int
	Name       int
}

// Total sums the three contributions.
func (s Score) Total() int {
	return s.Body + s.Background + s.Name
}

// Label returns the rarity label for the total.
func (s Score) Label() string {
	return Band(s.Total())
}

// Band maps a total score to its label.
func Band(total int) string {
	switch {
	case total >= EpicFrom:
		return Epic
	case total >= RareFrom:
		return Rare
	case total >= UncommonFrom:
		return Uncommon
	default:
		return Common
	}
}
