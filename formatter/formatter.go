package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"hiring-simulator/models"
	"strings"
)

// ReportData holds prepared result data used by the JSON formatter
type ReportData struct {
	Days      []int             `json:"days"`
	Needs     []NeedData        `json:"needs"`
	Decisions []models.Decision `json:"decisions"`
}

// NeedData summarises one need over the whole run
type NeedData struct {
	Need       int   `json:"need"`
	Target     int   `json:"target"`
	Initial    int   `json:"initial"`
	Designated int   `json:"designated"`
	Urgency    []any `json:"urgency"`
}

// prepareReportData flattens a result into per-need series for export
func prepareReportData[T models.Number](result *models.Result[T]) *ReportData {
	needs := make([]NeedData, 0, len(models.Needs))
	for _, n := range models.Needs {
		series := result.Series(n)
		values := make([]any, len(series))
		for i, v := range series {
			values[i] = v
		}
		needs = append(needs, NeedData{
			Need:       int(n),
			Target:     result.Targets.Of(n),
			Initial:    result.Initial.Of(n),
			Designated: result.Final.Of(n),
			Urgency:    values,
		})
	}

	decisions := result.Decisions
	if decisions == nil {
		decisions = make([]models.Decision, 0)
	}

	return &ReportData{
		Days:      result.Days,
		Needs:     needs,
		Decisions: decisions,
	}
}

// FormatText returns the hiring summary: expected versus designated headcount per need
func FormatText[T models.Number](result *models.Result[T]) string {
	var sb strings.Builder
	sb.WriteString("Hires:\n")
	for _, n := range models.Needs {
		sb.WriteString(fmt.Sprintf("%s - Expected %d Designated %d\n",
			n, result.Targets.Of(n), result.Final.Of(n)))
	}
	return sb.String()
}

// FormatJSON returns the JSON representation of the result.
// It fails when an urgency score is not representable in JSON (NaN or Inf).
func FormatJSON[T models.Number](result *models.Result[T]) (string, error) {
	data := prepareReportData(result)
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding result: %w", err)
	}
	return string(jsonBytes), nil
}

// FormatCSV returns one row per simulated day with the urgency of each need
func FormatCSV[T models.Number](result *models.Result[T]) string {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	// Write header
	header := []string{"Day"}
	for _, n := range models.Needs {
		header = append(header, n.String())
	}
	writer.Write(header)

	for _, rec := range result.Records {
		row := []string{fmt.Sprintf("%d", rec.Day)}
		for _, n := range models.Needs {
			row = append(row, fmt.Sprint(rec.Of(n)))
		}
		writer.Write(row)
	}

	writer.Flush()
	return sb.String()
}
