package parser

import (
	"errors"
	"fmt"
	customerrors "hiring-simulator/errors"
	"hiring-simulator/metrics"
	"hiring-simulator/models"
	"hiring-simulator/simulator"
	"hiring-simulator/urgency"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// scenarioFile mirrors the YAML layout of a scenario.
type scenarioFile struct {
	Weekends   []int  `yaml:"weekends"`
	HiringDays []int  `yaml:"hiring_days"`
	Targets    []int  `yaml:"targets"`
	Assigned   []int  `yaml:"assigned"`
	Urgency    string `yaml:"urgency"`
}

// Parse reads a YAML scenario from the reader.
//
//	weekends: [6, 7, 13, 14]
//	hiring_days: [5, 10, 15]
//	targets: [5, 5, 5]
//	assigned: [0, 1, 2]
//	urgency: deficit
//
// Unknown keys are rejected. targets must list exactly one value per need;
// assigned may be omitted, in which case every need starts at zero. Day
// values are passed through untouched: days outside the simulated month are
// simply never visited.
func Parse(r io.Reader) (*models.Scenario, error) {
	start := time.Now()
	defer func() {
		metrics.ParserDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	scenario, err := parse(r)
	if err != nil {
		metrics.ParserErrorsTotal.WithLabelValues(errorType(err)).Inc()
		return nil, err
	}
	return scenario, nil
}

func parse(r io.Reader) (*models.Scenario, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw scenarioFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("empty document")
		}
		return nil, &customerrors.ParseError{
			Field: "scenario",
			Err:   fmt.Errorf("%w: %v", customerrors.ErrInvalidScenario, err),
		}
	}

	targets, err := parseHeadcount("targets", raw.Targets)
	if err != nil {
		return nil, err
	}

	var assigned models.Headcount
	if len(raw.Assigned) > 0 {
		assigned, err = parseHeadcount("assigned", raw.Assigned)
		if err != nil {
			return nil, err
		}
	}

	name := strings.TrimSpace(raw.Urgency)
	if name == "" {
		name = urgency.DefaultName
	}

	return &models.Scenario{
		Weekends:   raw.Weekends,
		HiringDays: raw.HiringDays,
		Targets:    targets,
		Assigned:   assigned,
		Urgency:    name,
	}, nil
}

// ParseHeadcount converts a list of per-need counts into a Headcount.
// The list must hold exactly three non-negative values.
func ParseHeadcount(field string, values []int) (models.Headcount, error) {
	h, err := parseHeadcount(field, values)
	if err != nil {
		metrics.ParserErrorsTotal.WithLabelValues(errorType(err)).Inc()
		return models.Headcount{}, err
	}
	return h, nil
}

func parseHeadcount(field string, values []int) (models.Headcount, error) {
	var h models.Headcount
	if len(values) != len(h) {
		return h, &customerrors.ParseError{
			Field: field,
			Value: fmt.Sprint(values),
			Err:   customerrors.ErrInvalidNeedCount,
		}
	}
	for i, v := range values {
		if v < 0 {
			return models.Headcount{}, &customerrors.ParseError{
				Field: field,
				Value: strconv.Itoa(v),
				Err:   customerrors.ErrNegativeCount,
			}
		}
		h[i] = v
	}
	return h, nil
}

// ParseDays parses a comma separated day list such as "5,10,20-22".
// Ranges are inclusive and only expand to the days inside the simulated
// month; single days are kept as given. Blank entries are skipped and an
// empty string yields an empty list.
func ParseDays(field, s string) ([]int, error) {
	days, err := parseDays(field, s)
	if err != nil {
		metrics.ParserErrorsTotal.WithLabelValues(errorType(err)).Inc()
		return nil, err
	}
	return days, nil
}

func parseDays(field, s string) ([]int, error) {
	days := make([]int, 0)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		first, err := parseDay(field, part, lo)
		if err != nil {
			return nil, err
		}
		if !isRange {
			days = append(days, first)
			continue
		}

		last, err := parseDay(field, part, hi)
		if err != nil {
			return nil, err
		}
		if last < first {
			return nil, &customerrors.ParseError{
				Field: field,
				Value: part,
				Err:   customerrors.ErrInvalidRange,
			}
		}
		for d := max(first, simulator.FirstDay); d <= min(last, simulator.LastDay); d++ {
			days = append(days, d)
		}
	}
	return days, nil
}

func parseDay(field, part, value string) (int, error) {
	d, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, &customerrors.ParseError{
			Field: field,
			Value: part,
			Err:   fmt.Errorf("%w: %v", customerrors.ErrInvalidDay, err),
		}
	}
	return d, nil
}

// errorType maps a parse failure to the metrics label used for it.
func errorType(err error) string {
	switch {
	case errors.Is(err, customerrors.ErrInvalidNeedCount):
		return "invalid_need_count"
	case errors.Is(err, customerrors.ErrNegativeCount):
		return "negative_count"
	case errors.Is(err, customerrors.ErrInvalidDay):
		return "invalid_day"
	case errors.Is(err, customerrors.ErrInvalidRange):
		return "invalid_range"
	case errors.Is(err, customerrors.ErrInvalidScenario):
		return "invalid_scenario"
	default:
		return "other"
	}
}
