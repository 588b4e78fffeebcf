package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sid/internal/importer"
	"sid/internal/models"
	"sid/internal/store"
	"sid/internal/structures"
	"sid/internal/testutil"
)

var serviceTestNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type serviceFixture struct {
	service ImportServiceInterface
	store   *store.Store
	clock   *testutil.MockClock
	metrics *testutil.MockMetrics
}

func newServiceFixture(t *testing.T, fetcher importer.FetcherInterface) *serviceFixture {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	clock := testutil.NewMockClock(serviceTestNow)
	metrics := testutil.NewMockMetrics()
	return &serviceFixture{
		service: NewImportService(st, fetcher, &testutil.MockLogger{}, clock, metrics),
		store:   st,
		clock:   clock,
		metrics: metrics,
	}
}

// newHTTPFixture wires a real fetcher against an httptest server and seeds
// the run config to point at it.
func newHTTPFixture(t *testing.T, handler http.HandlerFunc, maxPages int, mode string) *serviceFixture {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	require.NoError(t, st.RunCfg.Seed(ctx, map[string]string{
		"api_url":   server.URL,
		"max_pages": strconv.Itoa(maxPages),
		"mode":      mode,
	}))

	conf := &structures.Config{}
	conf.Importer.FetchTimeout = 2 * time.Second

	clock := testutil.NewMockClock(serviceTestNow)
	metrics := testutil.NewMockMetrics()
	logger := &testutil.MockLogger{}
	fetcher := importer.NewPageFetcher(conf, testutil.NewMockArchive(), st, logger, metrics, clock)

	return &serviceFixture{
		service: NewImportService(st, fetcher, logger, clock, metrics),
		store:   st,
		clock:   clock,
		metrics: metrics,
	}
}

func pageBody(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

func TestRunImport_FirstRunInsertsAll(t *testing.T) {
	f := newHTTPFixture(t, func(w http.ResponseWriter, r *http.Request) {
		pageBody(w, `{"results":[{"id":1,"name":"Earth (C-137)","type":"Planet","dimension":"Dimension C-137"}]}`)
	}, 1, "upsert")
	ctx := context.Background()

	report, err := f.service.RunImport(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, report.RunId)
	assert.Equal(t, models.ImportResult{Inserted: 1, TotalFetched: 1}, report.Result)

	rows, err := f.service.Rows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0].Id)
	assert.Equal(t, "Earth (C-137)", rows[0].Name)
	assert.True(t, rows[0].Ts.Equal(serviceTestNow))

	metrics, err := f.service.Summary(ctx)
	require.NoError(t, err)
	assert.Contains(t, metrics, models.MetricRow{Metric: "Total rows in sheet", Value: "1"})
	assert.Contains(t, metrics, models.MetricRow{Metric: "Inserted", Value: "1"})
	assert.Contains(t, metrics, models.MetricRow{Metric: "Top type #1", Value: "Planet: 1"})

	logs, err := f.service.RecentLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Import completed", logs[0].Message)
	assert.Equal(t, report.RunId, logs[0].Context["run_id"])

	assert.Equal(t, 1, f.metrics.Runs["ok"])
	assert.Equal(t, 1, f.metrics.Records["inserted"])
}

func TestRunImport_SecondRunUpdatesInPlace(t *testing.T) {
	var name atomic.Value
	name.Store("Earth")
	f := newHTTPFixture(t, func(w http.ResponseWriter, r *http.Request) {
		pageBody(w, `{"results":[{"id":"1","name":"`+name.Load().(string)+`","type":"Planet"}]}`)
	}, 1, "upsert")
	ctx := context.Background()

	_, err := f.service.RunImport(ctx)
	require.NoError(t, err)

	name.Store("Earth (Replacement)")
	f.clock.Advance(time.Hour)

	report, err := f.service.RunImport(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ImportResult{Updated: 1, TotalFetched: 1}, report.Result)

	rows, err := f.service.Rows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1, "upsert must not grow the table")
	assert.Equal(t, "Earth (Replacement)", rows[0].Name)
	assert.True(t, rows[0].Ts.Equal(serviceTestNow.Add(time.Hour)), "update refreshes the timestamp")

	metrics, err := f.service.Summary(ctx)
	require.NoError(t, err)
	assert.Contains(t, metrics, models.MetricRow{Metric: "Inserted", Value: "0"})
	assert.Contains(t, metrics, models.MetricRow{Metric: "Updated", Value: "1"})
}

func TestRunImport_AppendModeAlwaysGrows(t *testing.T) {
	f := newHTTPFixture(t, func(w http.ResponseWriter, r *http.Request) {
		pageBody(w, `{"results":[{"id":"1","name":"Earth","type":"Planet"}]}`)
	}, 1, "append")
	ctx := context.Background()

	_, err := f.service.RunImport(ctx)
	require.NoError(t, err)
	report, err := f.service.RunImport(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ImportResult{Inserted: 1, TotalFetched: 1}, report.Result)

	count, err := f.service.RowCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRunImport_MidPageFailureLeavesDataUntouched(t *testing.T) {
	var failPageTwo atomic.Bool
	f := newHTTPFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if failPageTwo.Load() && r.URL.Query().Get("page") == "2" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		pageBody(w, `{"results":[{"id":"`+r.URL.Query().Get("page")+`","name":"Earth","type":"Planet"}]}`)
	}, 3, "upsert")
	ctx := context.Background()

	_, err := f.service.RunImport(ctx)
	require.NoError(t, err)
	before, err := f.service.Rows(ctx)
	require.NoError(t, err)
	require.Len(t, before, 3)

	failPageTwo.Store(true)
	_, err = f.service.RunImport(ctx)
	require.ErrorIs(t, err, ErrImportFailed)

	after, err := f.service.Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after, "a failed fetch must not write any row")

	logs, err := f.service.RecentLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "Import failed", logs[0].Message)
	assert.Equal(t, "Non-200 response", logs[1].Message)
	assert.Equal(t, "Import completed", logs[2].Message)

	assert.Equal(t, 1, f.metrics.Runs["error"])
}

func TestRunImport_SeedsDefaultsWhenConfigEmpty(t *testing.T) {
	fetcher := &testutil.MockFetcher{
		RecordsFn: func(baseUrl string, maxPages int) ([]models.Record, error) {
			assert.Equal(t, "https://rickandmortyapi.com/api/location", baseUrl)
			assert.Equal(t, 3, maxPages)
			return []models.Record{{Id: "1", Name: "Earth"}}, nil
		},
	}
	f := newServiceFixture(t, fetcher)
	ctx := context.Background()

	_, err := f.service.RunImport(ctx)
	require.NoError(t, err)

	cfg, err := f.store.RunCfg.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultRunConfig(), cfg)

	logs, err := f.service.RecentLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "Seeded default run config", logs[1].Message)
}

func TestRunImport_InvalidConfigFailsRun(t *testing.T) {
	fetcher := &testutil.MockFetcher{
		RecordsFn: func(string, int) ([]models.Record, error) {
			t.Fatal("fetch must not run with an invalid config")
			return nil, nil
		},
	}
	f := newServiceFixture(t, fetcher)
	ctx := context.Background()

	require.NoError(t, f.store.RunCfg.Seed(ctx, map[string]string{
		"api_url":   "http://example.test",
		"max_pages": "zero",
	}))

	_, err := f.service.RunImport(ctx)
	require.ErrorIs(t, err, ErrImportFailed)

	logs, err := f.service.RecentLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Import failed", logs[0].Message)
	assert.Contains(t, logs[0].Context["error"], "max_pages")
}

func TestRunImport_RejectsConcurrentRuns(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var firstCall atomic.Bool
	fetcher := &testutil.MockFetcher{
		RecordsFn: func(string, int) ([]models.Record, error) {
			if firstCall.CompareAndSwap(false, true) {
				close(started)
			}
			<-release
			return nil, nil
		},
	}
	f := newServiceFixture(t, fetcher)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := f.service.RunImport(ctx)
		done <- err
	}()

	<-started
	_, err := f.service.RunImport(ctx)
	assert.ErrorIs(t, err, ErrRunInProgress)

	close(release)
	require.NoError(t, <-done)

	_, err = f.service.RunImport(ctx)
	assert.NoError(t, err, "the guard releases once the run finishes")
}

func TestClearData(t *testing.T) {
	f := newHTTPFixture(t, func(w http.ResponseWriter, r *http.Request) {
		pageBody(w, `{"results":[{"id":"1","name":"Earth","type":"Planet"}]}`)
	}, 1, "upsert")
	ctx := context.Background()

	_, err := f.service.RunImport(ctx)
	require.NoError(t, err)

	require.NoError(t, f.service.ClearData(ctx))

	count, err := f.service.RowCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	logs, err := f.service.RecentLogs(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "Data cleared", logs[0].Message)
}
