package simulator_test

import (
	"errors"
	"hiring-simulator/models"
	"hiring-simulator/simulator"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deficit(_, assigned, target int) (int, error) {
	return target - assigned, nil
}

func unevaluated() [3]int {
	return [3]int{simulator.Unevaluated, simulator.Unevaluated, simulator.Unevaluated}
}

func TestSimulate(t *testing.T) {
	tests := map[string]struct {
		input     simulator.Input
		final     models.Headcount
		decisions []models.Decision
		// expected maps a 1-based day to its urgency triple; days not listed are unevaluated
		expected map[int][3]int
	}{
		"AllTied_FavorsNeed2": {
			input: simulator.Input{
				HiringDays: models.NewDaySet(10),
				Targets:    models.Headcount{5, 5, 5},
				Initial:    models.Headcount{0, 0, 0},
			},
			final:     models.Headcount{0, 1, 0},
			decisions: []models.Decision{{Day: 10, Need: models.Need2, Hired: true}},
			expected: func() map[int][3]int {
				m := make(map[int][3]int)
				for d := 10; d <= 30; d++ {
					m[d] = [3]int{5, 5, 5}
				}
				return m
			}(),
		},
		"Need1_StrictlyGreatest": {
			input: simulator.Input{
				HiringDays: models.NewDaySet(5),
				Targets:    models.Headcount{3, 3, 3},
				Initial:    models.Headcount{0, 1, 2},
			},
			final:     models.Headcount{1, 1, 2},
			decisions: []models.Decision{{Day: 5, Need: models.Need1, Hired: true}},
			expected: func() map[int][3]int {
				m := make(map[int][3]int)
				for d := 5; d <= 30; d++ {
					m[d] = [3]int{3, 2, 1}
				}
				return m
			}(),
		},
		"ScoresCarryOverUntilReevaluated": {
			input: simulator.Input{
				HiringDays: models.NewDaySet(5, 10),
				Targets:    models.Headcount{5, 5, 5},
			},
			// Day 5: (5,5,5) -> need 2. Day 10: (5,4,5) -> need 3 beats need 2.
			final: models.Headcount{0, 1, 1},
			decisions: []models.Decision{
				{Day: 5, Need: models.Need2, Hired: true},
				{Day: 10, Need: models.Need3, Hired: true},
			},
			expected: func() map[int][3]int {
				m := make(map[int][3]int)
				for d := 5; d < 10; d++ {
					m[d] = [3]int{5, 5, 5}
				}
				for d := 10; d <= 30; d++ {
					m[d] = [3]int{5, 4, 5}
				}
				return m
			}(),
		},
		"NoHiringDays": {
			input: simulator.Input{
				Targets: models.Headcount{5, 5, 5},
				Initial: models.Headcount{1, 2, 3},
			},
			final:     models.Headcount{1, 2, 3},
			decisions: []models.Decision{},
			expected:  map[int][3]int{},
		},
		"HiringDaysOutsideMonthIgnored": {
			input: simulator.Input{
				HiringDays: models.NewDaySet(-3, 0, 31, 100),
				Targets:    models.Headcount{5, 5, 5},
			},
			final:     models.Headcount{0, 0, 0},
			decisions: []models.Decision{},
			expected:  map[int][3]int{},
		},
		"LastDayOnly": {
			input: simulator.Input{
				HiringDays: models.NewDaySet(30),
				Targets:    models.Headcount{1, 2, 3},
			},
			final:     models.Headcount{0, 0, 1},
			decisions: []models.Decision{{Day: 30, Need: models.Need3, Hired: true}},
			expected:  map[int][3]int{30: {1, 2, 3}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			result, err := simulator.Simulate(tt.input, deficit)
			require.NoError(t, err)

			require.Len(t, result.Days, simulator.LastDay)
			require.Len(t, result.Records, simulator.LastDay)
			for i, rec := range result.Records {
				day := i + simulator.FirstDay
				assert.Equal(t, day, result.Days[i])
				assert.Equal(t, day, rec.Day)

				want, ok := tt.expected[day]
				if !ok {
					want = unevaluated()
				}
				assert.Equal(t, want, rec.Urgency, "day %d", day)
			}

			assert.Equal(t, tt.final, result.Final)
			assert.Equal(t, tt.input.Initial, result.Initial)
			assert.Equal(t, tt.input.Targets, result.Targets)
			assert.Equal(t, tt.decisions, result.Decisions)
		})
	}
}

func TestSimulate_FullMonth(t *testing.T) {
	result, err := simulator.Simulate(simulator.Input{
		Weekends:   models.NewDaySet(6, 7, 13, 14, 20, 21, 27, 28),
		HiringDays: models.NewDaySet(5, 10, 15, 20, 25, 30),
		Targets:    models.Headcount{5, 5, 5},
	}, deficit)
	require.NoError(t, err)

	// 5:(5,5,5)->2  10:(5,4,5)->3  15:(5,4,4)->1  20:(4,4,4)->2  25:(4,3,4)->3  30:(4,3,3)->1
	assert.Equal(t, models.Headcount{2, 2, 2}, result.Final)
	assert.Equal(t, models.Headcount{2, 2, 2}, result.Hires())

	var winners []models.Need
	for _, d := range result.Decisions {
		require.True(t, d.Hired)
		winners = append(winners, d.Need)
	}
	assert.Equal(t, []models.Need{
		models.Need2, models.Need3, models.Need1,
		models.Need2, models.Need3, models.Need1,
	}, winners)

	assert.Equal(t, [3]int{4, 3, 3}, result.Records[29].Urgency)
	assert.Equal(t, []int{-1, -1, -1, -1, 5, 5, 5, 5, 5, 5}, result.Series(models.Need1)[:10])
}

func TestSimulate_WeekendsHaveNoEffect(t *testing.T) {
	base := simulator.Input{
		HiringDays: models.NewDaySet(1, 6, 7, 12, 13),
		Targets:    models.Headcount{4, 2, 3},
	}
	withWeekends := base
	withWeekends.Weekends = models.NewDaySet(6, 7, 13, 14)

	plain, err := simulator.Simulate(base, deficit)
	require.NoError(t, err)
	weekend, err := simulator.Simulate(withWeekends, deficit)
	require.NoError(t, err)

	assert.Equal(t, plain, weekend)
}

func TestSimulate_PropagatesUrgencyError(t *testing.T) {
	boom := errors.New("urgency backend unavailable")
	calls := 0
	failing := func(day, assigned, target int) (float64, error) {
		calls++
		if day == 15 {
			return 0, boom
		}
		return float64(target - assigned), nil
	}

	result, err := simulator.Simulate(simulator.Input{
		HiringDays: models.NewDaySet(5, 15, 25),
		Targets:    models.Headcount{3, 3, 3},
	}, failing)

	assert.Nil(t, result)
	assert.Equal(t, boom, err)
	// Three calls on day 5, then the first call on day 15 fails.
	assert.Equal(t, 4, calls)
}

func TestSimulate_UrgencySeesCurrentCounts(t *testing.T) {
	type call struct{ day, assigned, target int }
	var calls []call
	recording := func(day, assigned, target int) (int, error) {
		calls = append(calls, call{day, assigned, target})
		return target - assigned, nil
	}

	_, err := simulator.Simulate(simulator.Input{
		HiringDays: models.NewDaySet(2, 4),
		Targets:    models.Headcount{3, 3, 3},
		Initial:    models.Headcount{0, 1, 2},
	}, recording)
	require.NoError(t, err)

	assert.Equal(t, []call{
		{2, 0, 3}, {2, 1, 3}, {2, 2, 3},
		// need 1 was hired on day 2
		{4, 1, 3}, {4, 1, 3}, {4, 2, 3},
	}, calls)
}

func TestSimulate_NaNSkipsHire(t *testing.T) {
	// need 1 scores NaN, need 2 beats need 3: no rule matches.
	scores := map[int]float64{1: math.NaN(), 2: 2, 3: 1}
	byTarget := func(_, _, target int) (float64, error) {
		return scores[target], nil
	}

	result, err := simulator.Simulate(simulator.Input{
		HiringDays: models.NewDaySet(3, 9),
		Targets:    models.Headcount{1, 2, 3},
	}, byTarget)
	require.NoError(t, err)

	assert.Equal(t, models.Headcount{0, 0, 0}, result.Final)
	assert.Equal(t, []models.Decision{
		{Day: 3, Hired: false},
		{Day: 9, Hired: false},
	}, result.Decisions)
}

func TestSimulate_Deterministic(t *testing.T) {
	in := simulator.Input{
		HiringDays: models.NewDaySet(2, 3, 5, 8, 13, 21),
		Targets:    models.Headcount{7, 3, 5},
		Initial:    models.Headcount{1, 0, 2},
	}
	ratio := func(day, assigned, target int) (float64, error) {
		return float64(target-assigned) / float64(target) * float64(day), nil
	}

	first, err := simulator.Simulate(in, ratio)
	require.NoError(t, err)
	second, err := simulator.Simulate(in, ratio)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSimulate_AtMostOneHirePerDay(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		hiring := make([]int, 0)
		for d := simulator.FirstDay; d <= simulator.LastDay; d++ {
			if rng.Intn(3) == 0 {
				hiring = append(hiring, d)
			}
		}
		table := make(map[[3]int]int)
		random := func(day, assigned, target int) (int, error) {
			key := [3]int{day, assigned, target}
			if _, ok := table[key]; !ok {
				table[key] = rng.Intn(4)
			}
			return table[key], nil
		}

		in := simulator.Input{
			HiringDays: models.NewDaySet(hiring...),
			Targets:    models.Headcount{rng.Intn(6), rng.Intn(6), rng.Intn(6)},
			Initial:    models.Headcount{rng.Intn(3), rng.Intn(3), rng.Intn(3)},
		}
		result, err := simulator.Simulate(in, random)
		require.NoError(t, err)

		require.Len(t, result.Decisions, len(hiring))
		hired := 0
		for _, d := range result.Decisions {
			// integers are totally ordered, so every hiring day hires
			require.True(t, d.Hired, "run %d day %d", run, d.Day)
			hired++
		}
		assert.Equal(t, hired, result.Final.Total()-in.Initial.Total())
		for _, n := range models.Needs {
			assert.GreaterOrEqual(t, result.Final.Of(n), in.Initial.Of(n))
		}
	}
}

func TestSelectNeed(t *testing.T) {
	nan := math.NaN()

	tests := map[string]struct {
		urgency [3]float64
		need    models.Need
		hired   bool
	}{
		"Need1_Dominates":            {urgency: [3]float64{3, 1, 1}, need: models.Need1, hired: true},
		"Need2_Dominates":            {urgency: [3]float64{1, 3, 1}, need: models.Need2, hired: true},
		"Need3_Dominates":            {urgency: [3]float64{1, 1, 3}, need: models.Need3, hired: true},
		"Need3_TiesNeed2AboveNeed1":  {urgency: [3]float64{1, 5, 5}, need: models.Need3, hired: true},
		"Need3_TiesNeed1AboveNeed2":  {urgency: [3]float64{5, 1, 5}, need: models.Need3, hired: true},
		"Need2_AboveNeed3AboveNeed1": {urgency: [3]float64{1, 3, 2}, need: models.Need2, hired: true},
		"AllEqual":                   {urgency: [3]float64{2, 2, 2}, need: models.Need2, hired: true},
		"Need1Need2Tied_AboveNeed3":  {urgency: [3]float64{5, 5, 1}, need: models.Need2, hired: true},
		"Sentinels":                  {urgency: [3]float64{-1, -1, -1}, need: models.Need2, hired: true},
		"NaN_Need1_Need2Need3Tied":   {urgency: [3]float64{nan, 1, 1}, need: models.Need2, hired: true},
		"NaN_Need2_Need1Need3Tied":   {urgency: [3]float64{1, nan, 1}, need: models.Need1, hired: true},
		"NaN_Need1_NoRuleMatches":    {urgency: [3]float64{nan, 2, 1}, hired: false},
		"AllNaN":                     {urgency: [3]float64{nan, nan, nan}, hired: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			need, hired := simulator.SelectNeed(tt.urgency)
			assert.Equal(t, tt.hired, hired)
			assert.Equal(t, tt.need, need)
		})
	}
}

func TestSelectNeed_TotalOrderAlwaysHires(t *testing.T) {
	for a := 0; a < 4; a++ {
		for b := 0; b < 4; b++ {
			for c := 0; c < 4; c++ {
				_, hired := simulator.SelectNeed([3]int{a, b, c})
				assert.True(t, hired, "(%d,%d,%d)", a, b, c)
			}
		}
	}
}
