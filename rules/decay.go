package rules

import "github.com/pkg/errors"

const (
	// AgeAlive is the age of a fully alive cell.
	AgeAlive uint8 = 100
	// AgeAfterglow is the age a cell drops to on the tick it dies.
	AgeAfterglow uint8 = AgeAlive / 2

	// DecayRuleName selects ApplyDecayRule.
	DecayRuleName = "decay"
	// ClassicRuleName selects ApplyConwayRules.
	ClassicRuleName = "classic"
)

// ErrUnknownRule is returned by Lookup for an unregistered rule name.
var ErrUnknownRule = errors.New("unknown rule")

// Rule maps the number of fully alive Moore neighbours and the current age
// of a cell to its age in the next generation.
type Rule func(neighbors int, age uint8) uint8

/*
ApplyDecayRule applies the aging variant of Conway's rules.

Birth and survival follow the classic rule and set the age to AgeAlive. A cell
that dies leaves an afterglow at AgeAfterglow which then fades by one per
generation until it reaches 0. Only cells at AgeAlive count as neighbours.
*/
func ApplyDecayRule(neighbors int, age uint8) uint8 {
	switch {
	case neighbors == 3, neighbors == 2 && age == AgeAlive:
		return AgeAlive
	case age == AgeAlive:
		return AgeAfterglow
	case age >= 1:
		return age - 1
	default:
		return 0
	}
}

// Lookup returns the rule registered under name
func Lookup(name string) (Rule, error) {
	switch name {
	case DecayRuleName, "":
		return ApplyDecayRule, nil
	case ClassicRuleName:
		return ApplyConwayRules, nil
	}
	return nil, errors.Wrapf(ErrUnknownRule, "[Lookup] %q", name)
}
