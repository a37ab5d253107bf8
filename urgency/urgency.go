// Package urgency provides the built-in urgency formulas that can be plugged
// into the simulator, addressable by name from the command line or a scenario file.
package urgency

import (
	"fmt"
	customerrors "hiring-simulator/errors"
	"hiring-simulator/models"
	"sort"
)

// DefaultName is the formula used when a scenario does not name one.
const DefaultName = "deficit"

// monthLength scales Paced; it matches the simulated month.
const monthLength = 30

var registry = map[string]models.UrgencyFunc[float64]{
	"deficit": Deficit,
	"ratio":   Ratio,
	"paced":   Paced,
}

// Every built-in formula scores a need at its target, or above it, as 0.
// Scores are therefore never negative and never collide with the -1
// "not yet evaluated" marker.

// Deficit is the number of hires still missing to reach the target.
func Deficit(_, assigned, target int) (float64, error) {
	return missing(assigned, target), nil
}

// Ratio is the missing headcount as a fraction of the target.
// A zero target never needs anyone, so it scores 0.
func Ratio(_, assigned, target int) (float64, error) {
	if target == 0 {
		return 0, nil
	}
	return missing(assigned, target) / float64(target), nil
}

// Paced weights the deficit by how far into the month the day is,
// so the same gap grows more pressing as the month runs out.
func Paced(day, assigned, target int) (float64, error) {
	return missing(assigned, target) * float64(day) / monthLength, nil
}

func missing(assigned, target int) float64 {
	return float64(max(target-assigned, 0))
}

// Lookup returns the formula registered under name.
func Lookup(name string) (models.UrgencyFunc[float64], error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", customerrors.ErrUnknownUrgency, name, Names())
	}
	return fn, nil
}

// Names returns the registered formula names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
