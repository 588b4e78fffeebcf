package importer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"sid/internal/models"
)

const topTypeCount = 5

// blankCategory stands in for rows whose type is empty or whitespace-only.
const blankCategory = "(blank)"

// Summarize derives the metric table from the full persisted state and the
// just-completed run. The output order is fixed; the caller overwrites the
// summary table with it as a whole.
func Summarize(rows []models.PersistedRow, result models.ImportResult) []models.MetricRow {
	metrics := []models.MetricRow{
		{Metric: "Total rows in sheet", Value: strconv.Itoa(len(rows))},
		{Metric: "Inserted", Value: strconv.Itoa(result.Inserted)},
		{Metric: "Updated", Value: strconv.Itoa(result.Updated)},
		{Metric: "Skipped", Value: strconv.Itoa(result.Skipped)},
	}

	if len(rows) == 0 {
		return metrics
	}

	counts := make(map[string]int)
	var order []string
	for _, row := range rows {
		category := strings.TrimSpace(row.Type)
		if category == "" {
			category = blankCategory
		}
		if _, seen := counts[category]; !seen {
			order = append(order, category)
		}
		counts[category]++
	}

	metrics = append(metrics, models.MetricRow{
		Metric: "Distinct types",
		Value:  strconv.Itoa(len(counts)),
	})

	// Descending by count; ties keep first-encountered order so the result
	// is reproducible across runs.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	top := min(topTypeCount, len(order))
	for i := 0; i < top; i++ {
		metrics = append(metrics, models.MetricRow{
			Metric: fmt.Sprintf("Top type #%d", i+1),
			Value:  fmt.Sprintf("%s: %d", order[i], counts[order[i]]),
		})
	}

	return metrics
}
