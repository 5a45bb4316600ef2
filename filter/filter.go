// Package filter evaluates expr expressions against characters.
//
// Expressions see the character's fields as variables (Name, Status, Species,
// Type, Gender, Origin, Location, EpisodeCount, EpisodeIDs, Created, ID) and a
// small set of helpers:
//
//	statusIs("alive") and Species == "Human"
//	hasSubstr(Origin, "earth") or hasEpisode(1)
//	EpisodeCount > 10 && !hasPrefix(Name, "mr")
package filter

import (
	"strings"

	"github.com/s0up4200/rickdex/rickmorty"
)

// ParseAndCreateFilter compiles expression into a predicate. An empty expression matches everything.
func ParseAndCreateFilter(expression string) (func(rickmorty.Character) bool, error) {
	if strings.TrimSpace(expression) == "" {
		return func(rickmorty.Character) bool { return true }, nil
	}

	compiled, err := NewExprCompiler().Compile(expression)
	if err != nil {
		return nil, err
	}

	return compiled.Evaluate, nil
}

// Apply returns the characters matching filter, in their original order
func Apply(filter Filter, characters []rickmorty.Character) []rickmorty.Character {
	matches := make([]rickmorty.Character, 0, len(characters))
	for _, character := range characters {
		if filter.Evaluate(character) {
			matches = append(matches, character)
		}
	}
	return matches
}

// Func adapts a predicate to the Filter interface
type Func func(rickmorty.Character) bool

// Evaluate calls f
func (f Func) Evaluate(character rickmorty.Character) bool {
	return f(character)
}
