package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"sid/internal/importer"
	"sid/internal/models"
	"sid/internal/providers"
	"sid/internal/store"
)

// ErrRunInProgress rejects a second concurrent trigger; at most one run
// executes per process.
var ErrRunInProgress = errors.New("an import run is already in progress")

// ErrImportFailed is the single operator-visible outcome of any failed run.
// The execution log carries the details.
var ErrImportFailed = errors.New("import failed, see the execution log")

type ImportServiceInterface interface {
	RunImport(ctx context.Context) (*models.RunReport, error)
	ClearData(ctx context.Context) error
	Rows(ctx context.Context) ([]models.PersistedRow, error)
	RowCount(ctx context.Context) (int, error)
	Summary(ctx context.Context) ([]models.MetricRow, error)
	RecentLogs(ctx context.Context, limit int) ([]models.LogEntry, error)
}

type ImportService struct {
	store   *store.Store
	fetcher importer.FetcherInterface
	logger  providers.Logger
	clock   providers.Clock
	metrics providers.MetricsProviderInterface
	running atomic.Bool
}

func NewImportService(st *store.Store, fetcher importer.FetcherInterface, logger providers.Logger, clock providers.Clock, metrics providers.MetricsProviderInterface) ImportServiceInterface {
	return &ImportService{
		store:   st,
		fetcher: fetcher,
		logger:  logger,
		clock:   clock,
		metrics: metrics,
	}
}

func (is *ImportService) RunImport(ctx context.Context) (*models.RunReport, error) {
	if !is.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer is.running.Store(false)

	runId := uuid.NewString()
	is.logger.Infof(providers.TypeImport, "Import run %s starting", runId)

	report, err := is.run(ctx, runId)
	if err != nil {
		is.metrics.IncRunsTotal("error")
		is.logger.Errorf(providers.TypeImport, "Import run %s failed: %s", runId, err)
		// Best effort: when the store itself is the failing component this
		// append fails too and the zerolog line above is all that remains.
		appendErr := is.store.Logs.Append(ctx, models.LogEntry{
			Ts:      is.clock.Now(),
			Level:   models.LevelError,
			Message: "Import failed",
			Context: map[string]any{"run_id": runId, "error": err.Error()},
		})
		if appendErr != nil {
			is.logger.Errorf(providers.TypeImport, "Failed to append execution log entry: %s", appendErr)
		}
		return nil, ErrImportFailed
	}

	is.metrics.IncRunsTotal("ok")
	is.logger.Infof(providers.TypeImport, "Import run %s done: inserted=%d updated=%d skipped=%d in %s",
		runId, report.Result.Inserted, report.Result.Updated, report.Result.Skipped, report.Duration)
	return report, nil
}

func (is *ImportService) run(ctx context.Context, runId string) (*models.RunReport, error) {
	start := is.clock.Now()

	cfg, err := is.loadRunConfig(ctx, runId)
	if err != nil {
		return nil, err
	}

	records, err := is.fetcher.Fetch(ctx, cfg.ApiUrl, cfg.MaxPages, runId)
	if err != nil {
		return nil, err
	}

	existing, err := is.store.Data.List(ctx)
	if err != nil {
		return nil, err
	}

	toInsert, toUpdate, result := importer.Reconcile(existing, records, cfg.Mode, start)

	if err := is.store.Data.Append(ctx, toInsert); err != nil {
		return nil, err
	}
	for pos, row := range toUpdate {
		if err := is.store.Data.UpdateAt(ctx, pos, row); err != nil {
			return nil, err
		}
	}

	rows, err := is.store.Data.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := is.store.Summary.Replace(ctx, importer.Summarize(rows, result)); err != nil {
		return nil, err
	}

	duration := is.clock.Now().Sub(start)
	entry := models.LogEntry{
		Ts:      is.clock.Now(),
		Level:   models.LevelInfo,
		Message: "Import completed",
		Context: map[string]any{
			"run_id":        runId,
			"mode":          string(cfg.Mode),
			"inserted":      result.Inserted,
			"updated":       result.Updated,
			"skipped":       result.Skipped,
			"total_fetched": result.TotalFetched,
			"duration_ms":   duration.Milliseconds(),
		},
	}
	if err := is.store.Logs.Append(ctx, entry); err != nil {
		return nil, err
	}

	is.metrics.AddRecords("inserted", result.Inserted)
	is.metrics.AddRecords("updated", result.Updated)
	is.metrics.AddRecords("skipped", result.Skipped)
	is.metrics.SetRowsTotal(len(rows))
	is.metrics.ObserveRunDuration(duration)

	return &models.RunReport{RunId: runId, Result: result, Duration: duration}, nil
}

// loadRunConfig reads the config table, seeding the documented sample
// defaults when it is empty.
func (is *ImportService) loadRunConfig(ctx context.Context, runId string) (models.RunConfig, error) {
	kv, err := is.store.RunCfg.All(ctx)
	if err != nil {
		return models.RunConfig{}, err
	}

	if len(kv) == 0 {
		kv = models.DefaultRunConfig()
		if err := is.store.RunCfg.Seed(ctx, kv); err != nil {
			return models.RunConfig{}, err
		}
		entry := models.LogEntry{
			Ts:      is.clock.Now(),
			Level:   models.LevelInfo,
			Message: "Seeded default run config",
			Context: map[string]any{"run_id": runId},
		}
		if err := is.store.Logs.Append(ctx, entry); err != nil {
			return models.RunConfig{}, err
		}
		is.logger.Infof(providers.TypeImport, "Config table was empty, seeded defaults")
	}

	return models.ParseRunConfig(kv)
}

func (is *ImportService) ClearData(ctx context.Context) error {
	if err := is.store.Data.Clear(ctx); err != nil {
		return err
	}
	entry := models.LogEntry{
		Ts:      is.clock.Now(),
		Level:   models.LevelInfo,
		Message: "Data cleared",
	}
	if err := is.store.Logs.Append(ctx, entry); err != nil {
		return err
	}
	is.metrics.SetRowsTotal(0)
	is.logger.Infof(providers.TypeImport, "Data table cleared")
	return nil
}

func (is *ImportService) Rows(ctx context.Context) ([]models.PersistedRow, error) {
	return is.store.Data.List(ctx)
}

func (is *ImportService) RowCount(ctx context.Context) (int, error) {
	return is.store.Data.Count(ctx)
}

func (is *ImportService) Summary(ctx context.Context) ([]models.MetricRow, error) {
	return is.store.Summary.All(ctx)
}

func (is *ImportService) RecentLogs(ctx context.Context, limit int) ([]models.LogEntry, error) {
	return is.store.Logs.Recent(ctx, limit)
}
