package main

import (
	"fmt"
	"hiring-simulator/formatter"
	"hiring-simulator/logger"
	"hiring-simulator/metrics"
	"hiring-simulator/models"
	"hiring-simulator/parser"
	"hiring-simulator/simulator"
	"hiring-simulator/urgency"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

var cli struct {
	Scenario    string `help:"YAML scenario file. When set, the day, headcount and urgency flags are ignored." type:"existingfile"`
	Weekends    string `help:"Weekend days, e.g. 6,7,13-14. Currently informational only." default:"6,7,13,14,20,21,27,28"`
	HiringDays  string `help:"Days on which a hire is decided, e.g. 5,10,15-16." default:"5,10,15,20,25,30"`
	Targets     []int  `help:"Expected headcount for needs 1, 2 and 3." default:"5,5,5"`
	Assigned    []int  `help:"Initial headcount for needs 1, 2 and 3." default:"0,0,0"`
	Urgency     string `help:"Urgency formula (${enum})." enum:"${urgencies}" default:"${default_urgency}"`
	Format      string `help:"Output format (${enum})." enum:"text,json,csv,chart" default:"text"`
	ChartHeight int    `help:"Plot rows used by the chart format." default:"12"`
	MetricsAddr string `help:"Address to expose Prometheus metrics (e.g., :9090)."`
	PushURL     string `help:"Pushgateway URL to push metrics to (e.g., http://localhost:9091)." name:"push-url"`
	Wait        bool   `help:"Keep process running after completion to allow for metric scraping."`
	Debug       bool   `help:"Enable debug logging."`
	LogFile     string `help:"Also write logs to this file, rotated." type:"path"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("hiring-simulator"),
		kong.Description("Simulate a month of hiring decisions across three needs."),
		kong.UsageOnError(),
		kong.Vars{
			"urgencies":       strings.Join(urgency.Names(), ","),
			"default_urgency": urgency.DefaultName,
		},
	)

	runID := uuid.New().String()
	if err := logger.Init(logger.Config{Debug: cli.Debug, File: cli.LogFile, RunID: runID}); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	// Start metrics server if address provided
	if cli.MetricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			logger.Info("Metrics server listening", "addr", cli.MetricsAddr+"/metrics")
			if err := http.ListenAndServe(cli.MetricsAddr, nil); err != nil {
				logger.Error("Metrics server error", "error", err)
			}
		}()
	}

	scenario, err := loadScenario()
	if err != nil {
		logger.Error("Invalid scenario", "error", err)
		os.Exit(1)
	}
	logger.Debug("Scenario loaded",
		"hiring_days", scenario.HiringDays,
		"weekends", scenario.Weekends,
		"targets", scenario.Targets,
		"assigned", scenario.Assigned,
		"urgency", scenario.Urgency,
	)
	for _, d := range scenario.HiringDays {
		if d < simulator.FirstDay || d > simulator.LastDay {
			logger.Warn("Hiring day outside the simulated month is ignored", "day", d)
		}
	}

	urgencyFn, err := urgency.Lookup(scenario.Urgency)
	if err != nil {
		logger.Error("Invalid urgency function", "error", err)
		os.Exit(1)
	}

	start := time.Now()
	result, err := simulator.Simulate(simulator.Input{
		Weekends:   models.NewDaySet(scenario.Weekends...),
		HiringDays: models.NewDaySet(scenario.HiringDays...),
		Targets:    scenario.Targets,
		Initial:    scenario.Assigned,
	}, urgencyFn)
	metrics.SimulationDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		logger.Error("Simulation failed", "error", err)
		os.Exit(1)
	}
	metrics.ObserveResult(result)

	for _, d := range result.Decisions {
		if !d.Hired {
			logger.Warn("No need selected on hiring day", "day", d.Day, "urgency", result.Records[d.Day-simulator.FirstDay].Urgency)
			continue
		}
		logger.Debug("Hire designated", "day", d.Day, "need", int(d.Need))
	}

	// Output based on format
	switch cli.Format {
	case "json":
		out, err := formatter.FormatJSON(result)
		if err != nil {
			logger.Error("Formatting result", "error", err)
			os.Exit(1)
		}
		fmt.Println(out)
	case "csv":
		fmt.Print(formatter.FormatCSV(result))
	case "chart":
		fmt.Print(formatter.FormatChart(result, cli.ChartHeight))
		fmt.Print(formatter.FormatText(result))
	default: // "text"
		fmt.Print(formatter.FormatText(result))
	}

	// Handle metrics pushing or waiting
	if cli.PushURL != "" {
		jobName := "hiring_simulator"
		if err := push.New(cli.PushURL, jobName).Grouping("run_id", runID).Gatherer(metrics.Registry).Push(); err != nil {
			logger.Error("Error pushing to Pushgateway", "error", err)
		} else {
			logger.Info("Metrics successfully pushed to Pushgateway")
		}
	}

	if cli.Wait && cli.MetricsAddr != "" {
		logger.Info("Process kept alive for metric scraping. Press Ctrl+C to exit.")
		// Wait for interrupt signal
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logger.Info("Exiting...")
	} else if cli.MetricsAddr != "" && cli.PushURL == "" {
		// Small delay to allow final scrape if not waiting explicitly
		time.Sleep(100 * time.Millisecond)
	}
}

// loadScenario reads the scenario file when one is given and falls back to the flags otherwise.
func loadScenario() (*models.Scenario, error) {
	if cli.Scenario != "" {
		file, err := os.Open(cli.Scenario)
		if err != nil {
			return nil, fmt.Errorf("opening scenario: %w", err)
		}
		defer file.Close()
		return parser.Parse(file)
	}

	weekends, err := parser.ParseDays("weekends", cli.Weekends)
	if err != nil {
		return nil, err
	}
	hiringDays, err := parser.ParseDays("hiring-days", cli.HiringDays)
	if err != nil {
		return nil, err
	}
	targets, err := parser.ParseHeadcount("targets", cli.Targets)
	if err != nil {
		return nil, err
	}
	assigned, err := parser.ParseHeadcount("assigned", cli.Assigned)
	if err != nil {
		return nil, err
	}

	return &models.Scenario{
		Weekends:   weekends,
		HiringDays: hiringDays,
		Targets:    targets,
		Assigned:   assigned,
		Urgency:    cli.Urgency,
	}, nil
}
