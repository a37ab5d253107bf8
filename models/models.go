package models

import "fmt"

// Need identifies one of the three staffing needs (squads) tracked by a run.
type Need int

const (
	Need1 Need = iota + 1
	Need2
	Need3
)

// Needs lists every need in priority order.
var Needs = [...]Need{Need1, Need2, Need3}

// Index returns the zero-based slot of the need inside a Headcount or urgency triple.
func (n Need) Index() int {
	return int(n) - 1
}

func (n Need) String() string {
	return fmt.Sprintf("Need %d", int(n))
}

// Headcount holds one count per need, indexed by Need.Index().
type Headcount [3]int

// Of returns the count stored for a need.
func (h Headcount) Of(n Need) int {
	return h[n.Index()]
}

// Total returns the sum across all needs.
func (h Headcount) Total() int {
	return h[0] + h[1] + h[2]
}

// DaySet is a set of 1-based day indices.
type DaySet map[int]struct{}

// NewDaySet builds a DaySet from the given days. Duplicates collapse.
func NewDaySet(days ...int) DaySet {
	set := make(DaySet, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}
	return set
}

// Contains reports whether day is in the set. A nil set contains nothing.
func (s DaySet) Contains(day int) bool {
	_, ok := s[day]
	return ok
}

// Number is the set of numeric types an urgency function may return. Unsigned
// types are excluded because every score must be able to hold the -1 sentinel.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~float32 | ~float64
}

// UrgencyFunc scores how badly a need requires a hire on a given day.
// Implementations must never return -1, which marks "not yet evaluated".
type UrgencyFunc[T Number] func(day, assigned, target int) (T, error)

// UrgencyRecord holds the three urgency scores in effect on a day.
type UrgencyRecord[T Number] struct {
	Day     int  `json:"day"`
	Urgency [3]T `json:"urgency"`
}

// Of returns the urgency recorded for a need.
func (r UrgencyRecord[T]) Of(n Need) T {
	return r.Urgency[n.Index()]
}

// Decision is the outcome of a single hiring day.
type Decision struct {
	Day int `json:"day"`
	// Need is zero when Hired is false.
	Need  Need `json:"need,omitempty"`
	Hired bool `json:"hired"`
}

// Result is the full outcome of one simulated month.
type Result[T Number] struct {
	Days      []int
	Records   []UrgencyRecord[T]
	Decisions []Decision
	Targets   Headcount
	Initial   Headcount
	Final     Headcount
}

// Series returns the per-day urgency sequence of a single need, in day order.
func (r *Result[T]) Series(n Need) []T {
	series := make([]T, len(r.Records))
	for i, rec := range r.Records {
		series[i] = rec.Of(n)
	}
	return series
}

// Hires returns how many hires each need received during the run.
func (r *Result[T]) Hires() Headcount {
	var h Headcount
	for i := range h {
		h[i] = r.Final[i] - r.Initial[i]
	}
	return h
}

// Scenario bundles every input of a run as read from a scenario file or flags.
type Scenario struct {
	Weekends   []int
	HiringDays []int
	Targets    Headcount
	Assigned   Headcount
	Urgency    string
}
