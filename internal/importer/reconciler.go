package importer

import (
	"time"

	"sid/internal/models"
)

// Reconcile classifies incoming records against the existing rows and emits
// the writes to perform. It is a pure function: the caller applies the
// returned batched inserts and in-place updates against the store.
//
// Every row written in one run carries the same now timestamp, so writes
// from the same execution are trivially correlatable.
func Reconcile(existing []models.PersistedRow, incoming []models.Record, mode models.ImportMode, now time.Time) ([]models.PersistedRow, map[int64]models.PersistedRow, models.ImportResult) {
	// Single forward pass: when storage already holds duplicate ids the
	// last row wins.
	byId := make(map[string]int64, len(existing))
	if mode == models.ModeUpsert {
		for _, row := range existing {
			byId[row.Id] = row.Pos
		}
	}

	var toInsert []models.PersistedRow
	toUpdate := make(map[int64]models.PersistedRow)
	result := models.ImportResult{TotalFetched: len(incoming)}

	for _, rec := range incoming {
		if rec.Id == "" {
			result.Skipped++
			continue
		}

		row := models.PersistedRow{
			Ts:        now,
			Id:        rec.Id,
			Name:      rec.Name,
			Type:      rec.Type,
			Dimension: rec.Dimension,
		}

		if mode == models.ModeUpsert {
			if pos, ok := byId[rec.Id]; ok {
				row.Pos = pos
				toUpdate[pos] = row
				result.Updated++
				continue
			}
		}

		// The lookup covers pre-existing rows only: an id appearing twice
		// in one run is appended twice and converges on the next run.
		toInsert = append(toInsert, row)
		result.Inserted++
	}

	return toInsert, toUpdate, result
}
