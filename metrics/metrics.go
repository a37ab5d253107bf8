// Package metrics provides Prometheus observability metrics for the hiring simulator.
// It includes Critical and Important metrics for business and operational visibility.
package metrics

import (
	"hiring-simulator/models"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// CRITICAL METRICS - Business Impact Visibility
// =============================================================================

// HeadcountTarget tracks the expected headcount of each need.
var HeadcountTarget = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "simulator",
	Name:      "headcount_target",
	Help:      "Expected headcount per need",
}, []string{"need"})

// HeadcountAssigned tracks the headcount of each need at the end of the run.
var HeadcountAssigned = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "simulator",
	Name:      "headcount_assigned",
	Help:      "Designated headcount per need after the last hiring day",
}, []string{"need"})

// HeadcountShortfall tracks target minus assigned per need.
// Negative values mean the need was overstaffed.
var HeadcountShortfall = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "simulator",
	Name:      "headcount_shortfall",
	Help:      "Expected minus designated headcount per need",
}, []string{"need"})

// HiresTotal counts hires handed to each need.
var HiresTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "simulator",
	Name:      "hires_total",
	Help:      "Total hires designated to each need",
}, []string{"need"})

// FinalUrgency tracks the urgency in effect on the last simulated day.
var FinalUrgency = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "simulator",
	Name:      "final_urgency",
	Help:      "Urgency score per need on the last simulated day",
}, []string{"need"})

// =============================================================================
// IMPORTANT METRICS - Operational Health
// =============================================================================

// HiringDaysTotal counts evaluated hiring days.
var HiringDaysTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "simulator",
	Name:      "hiring_days_total",
	Help:      "Total hiring days evaluated",
})

// UndecidedDaysTotal counts hiring days on which no need won the tie-break.
// Non-zero values usually mean the urgency function produced NaN.
var UndecidedDaysTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "simulator",
	Name:      "undecided_days_total",
	Help:      "Hiring days on which no hire was designated",
})

// SimulationDurationSeconds tracks time to run a simulation.
var SimulationDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "simulator",
	Name:      "duration_seconds",
	Help:      "Time taken to simulate the month",
	Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
})

// ParserErrorsTotal tracks parse errors by error type.
var ParserErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "errors_total",
	Help:      "Total parse errors by error type",
}, []string{"error_type"})

// ParserDurationSeconds tracks time to parse scenario files.
var ParserDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "parser",
	Name:      "duration_seconds",
	Help:      "Time taken to parse a scenario file",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
})

// =============================================================================
// Helper Functions
// =============================================================================

// ResetSimulationGauges resets all per-run gauges before a new observation.
func ResetSimulationGauges() {
	HeadcountTarget.Reset()
	HeadcountAssigned.Reset()
	HeadcountShortfall.Reset()
	FinalUrgency.Reset()
}

// ObserveResult records the outcome of a finished run.
func ObserveResult[T models.Number](result *models.Result[T]) {
	ResetSimulationGauges()

	hires := result.Hires()
	for _, n := range models.Needs {
		label := needLabel(n)
		HeadcountTarget.WithLabelValues(label).Set(float64(result.Targets.Of(n)))
		HeadcountAssigned.WithLabelValues(label).Set(float64(result.Final.Of(n)))
		HeadcountShortfall.WithLabelValues(label).Set(float64(result.Targets.Of(n) - result.Final.Of(n)))
		HiresTotal.WithLabelValues(label).Add(float64(hires.Of(n)))
		if len(result.Records) > 0 {
			FinalUrgency.WithLabelValues(label).Set(float64(result.Records[len(result.Records)-1].Of(n)))
		}
	}

	for _, d := range result.Decisions {
		HiringDaysTotal.Inc()
		if !d.Hired {
			UndecidedDaysTotal.Inc()
		}
	}
}

func needLabel(n models.Need) string {
	return strconv.Itoa(int(n))
}
