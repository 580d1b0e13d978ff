package curate

import (
	"fmt"

	"github.com/amonks/journey/data"
)

const (
	MinCreativity = 1
	MaxCreativity = 10
)

// A Policy maps a creativity level in [MinCreativity, MaxCreativity] to a
// fixed profile. Resolve must be pure.
type Policy interface {
	Name() string
	Resolve(level int) (data.CreativityProfile, error)
}

var (
	// Breadth trades top tracks from more and more similar artists for
	// recommendations as the level rises.
	Breadth Policy = breadthPolicy{}

	// Strictness anchors a shrinking share of the pool on the seed artist and
	// fills the rest with recommendations.
	Strictness Policy = strictnessPolicy{}
)

// PolicyByName returns "breadth" or "strictness".
func PolicyByName(name string) (Policy, error) {
	switch name {
	case Breadth.Name():
		return Breadth, nil
	case Strictness.Name():
		return Strictness, nil
	default:
		return nil, fmt.Errorf("%w: unknown creativity policy '%s'", ErrInvalidArgument, name)
	}
}

func checkLevel(level int) error {
	if level < MinCreativity || level > MaxCreativity {
		return fmt.Errorf("%w: creativity level %d is outside [%d, %d]", ErrInvalidArgument, level, MinCreativity, MaxCreativity)
	}
	return nil
}

type breadthPolicy struct{}

// indexed by level-1: use top tracks, similar artists, recommendation limit
var breadthTable = [MaxCreativity]struct {
	topTracks       bool
	breadth, recLim int
}{
	{true, 0, 0},
	{true, 3, 0},
	{true, 5, 0},
	{true, 15, 0},
	{true, 15, 25},
	{true, 15, 50},
	{true, 10, 50},
	{false, 4, 100},
	{false, 0, 100},
	{false, 0, 20},
}

func (breadthPolicy) Name() string { return "breadth" }

func (p breadthPolicy) Resolve(level int) (data.CreativityProfile, error) {
	if err := checkLevel(level); err != nil {
		return data.CreativityProfile{}, err
	}
	row := breadthTable[level-1]
	return data.CreativityProfile{
		Policy:               p.Name(),
		UseTopTracks:         row.topTracks,
		SimilarArtistBreadth: row.breadth,
		RecommendationLimit:  row.recLim,
	}, nil
}

type strictnessPolicy struct{}

// percent, indexed by level-1
var strictnessTable = [MaxCreativity]int{100, 90, 80, 70, 60, 50, 40, 30, 20, 10}

func (strictnessPolicy) Name() string { return "strictness" }

// Strictness returns the percentage for a level.
func (strictnessPolicy) Strictness(level int) (int, error) {
	if err := checkLevel(level); err != nil {
		return 0, err
	}
	return strictnessTable[level-1], nil
}

func (p strictnessPolicy) Resolve(level int) (data.CreativityProfile, error) {
	strictness, err := p.Strictness(level)
	if err != nil {
		return data.CreativityProfile{}, err
	}
	return data.CreativityProfile{
		Policy:               p.Name(),
		UseTopTracks:         strictness >= 50,
		SimilarArtistBreadth: 0,
		RecommendationLimit:  max(100-strictness, 10),
	}, nil
}
