package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"qoe-simulator/models"
)

// ThresholdData groups the run results of one threshold, ordered by arrival
// rate, prepared for all formatters.
type ThresholdData struct {
	Threshold int                `json:"threshold"`
	Runs      []models.RunResult `json:"runs"`
}

// prepareSweepData orders the sweep results by threshold for stable output
func prepareSweepData(result *models.SweepResult) []ThresholdData {
	thresholds := make([]int, len(result.Thresholds))
	copy(thresholds, result.Thresholds)
	sort.Ints(thresholds)

	data := make([]ThresholdData, 0, len(thresholds))
	for _, threshold := range thresholds {
		data = append(data, ThresholdData{
			Threshold: threshold,
			Runs:      result.ByThreshold[threshold],
		})
	}
	return data
}

// FormatText returns the text representation of the sweep results
func FormatText(result *models.SweepResult) string {
	data := prepareSweepData(result)
	var sb strings.Builder

	for _, td := range data {
		sb.WriteString(fmt.Sprintf("Threshold to simplify: %d\n", td.Threshold))
		sb.WriteString("  rate     mean_wait  mean_qoe  extra_agents  completed\n")
		for _, run := range td.Runs {
			sb.WriteString(fmt.Sprintf("  %-8s %-10.4f %-9.4f %-13.4f %d\n",
				formatRate(run.ArrivalRate), run.MeanWaitTime, run.MeanQoE,
				run.MeanExtraAgents, run.CompletedRequests))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatJSON returns the JSON representation of the sweep results
func FormatJSON(result *models.SweepResult) string {
	data := prepareSweepData(result)
	jsonBytes, _ := json.MarshalIndent(data, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV representation of the sweep results. One row per
// (threshold, arrival rate) cell; this is the table the external plotting
// collaborator consumes.
func FormatCSV(result *models.SweepResult) string {
	data := prepareSweepData(result)
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	writer.Write([]string{
		"Threshold", "Arrival Rate", "Mean Wait Time", "Mean QoE",
		"Mean Extra Agents", "Completed Requests",
	})

	for _, td := range data {
		for _, run := range td.Runs {
			writer.Write([]string{
				strconv.Itoa(run.Threshold),
				formatRate(run.ArrivalRate),
				strconv.FormatFloat(run.MeanWaitTime, 'f', 6, 64),
				strconv.FormatFloat(run.MeanQoE, 'f', 6, 64),
				strconv.FormatFloat(run.MeanExtraAgents, 'f', 6, 64),
				strconv.Itoa(run.CompletedRequests),
			})
		}
	}

	writer.Flush()
	return sb.String()
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'g', -1, 64)
}
