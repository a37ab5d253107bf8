package simulator

import (
	"hiring-simulator/models"
)

const (
	// FirstDay and LastDay bound the simulated month, inclusive.
	FirstDay = 1
	LastDay  = 30

	// Unevaluated is recorded for every need until the first hiring day.
	Unevaluated = -1
)

// Input holds everything a run needs besides the urgency function.
// Days outside [FirstDay, LastDay] are never visited and are therefore ignored.
// Counts are not validated.
type Input struct {
	Weekends   models.DaySet
	HiringDays models.DaySet
	Targets    models.Headcount
	Initial    models.Headcount
}

// Simulate walks days FirstDay..LastDay in order. On each hiring day it scores
// all three needs with urgency, using the counts as they stand at the start of
// that day, and hires one unit into the need picked by SelectNeed. Scores carry
// over to the following days until the next hiring day re-evaluates them.
//
// An error returned by urgency aborts the run and is returned unchanged.
func Simulate[T models.Number](in Input, urgency models.UrgencyFunc[T]) (*models.Result[T], error) {
	days := make([]int, 0, LastDay-FirstDay+1)
	records := make([]models.UrgencyRecord[T], 0, LastDay-FirstDay+1)
	decisions := make([]models.Decision, 0, len(in.HiringDays))

	assigned := in.Initial
	scores := [3]T{T(Unevaluated), T(Unevaluated), T(Unevaluated)}

	// in.Weekends is accepted but does not influence hiring yet: a weekend
	// that is also a hiring day is evaluated like any other day.
	for d := FirstDay; d <= LastDay; d++ {
		if in.HiringDays.Contains(d) {
			for _, n := range models.Needs {
				u, err := urgency(d, assigned.Of(n), in.Targets.Of(n))
				if err != nil {
					return nil, err
				}
				scores[n.Index()] = u
			}

			need, ok := SelectNeed(scores)
			if ok {
				assigned[need.Index()]++
			}
			decisions = append(decisions, models.Decision{Day: d, Need: need, Hired: ok})
		}

		days = append(days, d)
		records = append(records, models.UrgencyRecord[T]{Day: d, Urgency: scores})
	}

	return &models.Result[T]{
		Days:      days,
		Records:   records,
		Decisions: decisions,
		Targets:   in.Targets,
		Initial:   in.Initial,
		Final:     assigned,
	}, nil
}

// SelectNeed applies the tie-break policy to one day's scores. The first
// matching rule wins:
//
//  1. need 1 strictly above both others
//  2. need 2 strictly above both others
//  3. need 3 above at least one other
//  4. all equal, or needs 1 and 2 tied: need 2
//  5. needs 1 and 3 tied: need 1
//  6. needs 2 and 3 tied: need 2
//
// The boolean is false when no rule matches. With totally ordered scores that
// cannot happen; it does happen once a NaN is involved.
func SelectNeed[T models.Number](u [3]T) (models.Need, bool) {
	u1, u2, u3 := u[0], u[1], u[2]

	switch {
	case u1 > u2 && u1 > u3:
		return models.Need1, true
	case u2 > u1 && u2 > u3:
		return models.Need2, true
	case u3 > u1 || u3 > u2:
		return models.Need3, true
	case u1 == u2 && u2 == u3:
		return models.Need2, true
	case u1 == u2:
		return models.Need2, true
	case u1 == u3:
		return models.Need1, true
	case u2 == u3:
		return models.Need2, true
	}
	return 0, false
}
