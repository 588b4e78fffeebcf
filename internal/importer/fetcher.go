package importer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"

	"sid/internal/importer/interfaces"
	"sid/internal/models"
	"sid/internal/providers"
	"sid/internal/store"
	"sid/internal/structures"
)

const defaultFetchTimeout = 30 * time.Second

type FetcherInterface interface {
	Fetch(ctx context.Context, baseUrl string, maxPages int, runId string) ([]models.Record, error)
}

// PageFetcher requests pages strictly in order 1..maxPages, each fully
// resolved before the next. Any page failure aborts the whole fetch: a
// partial import is worse than a clean failure for a reporting pipeline.
type PageFetcher struct {
	client  *http.Client
	archive interfaces.ArchiveInterface
	runLog  *store.LogStore
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	clock   providers.Clock
}

func NewPageFetcher(conf *structures.Config, archive interfaces.ArchiveInterface, st *store.Store, logger providers.Logger, metrics providers.MetricsProviderInterface, clock providers.Clock) FetcherInterface {
	timeout := conf.Importer.FetchTimeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &PageFetcher{
		client:  &http.Client{Timeout: timeout},
		archive: archive,
		runLog:  st.Logs,
		logger:  logger,
		metrics: metrics,
		clock:   clock,
	}
}

func (f *PageFetcher) Fetch(ctx context.Context, baseUrl string, maxPages int, runId string) ([]models.Record, error) {
	var records []models.Record

	for page := 1; page <= maxPages; page++ {
		pageRecords, err := f.fetchPage(ctx, baseUrl, page, runId)
		if err != nil {
			return nil, err
		}
		records = append(records, pageRecords...)
		f.metrics.AddPagesFetched(1)
	}

	f.logger.Infof(providers.TypeImport, "Fetched %d pages, %d records", maxPages, len(records))
	return records, nil
}

func (f *PageFetcher) fetchPage(ctx context.Context, baseUrl string, page int, runId string) ([]models.Record, error) {
	url := fmt.Sprintf("%s?page=%d", baseUrl, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &models.FetchError{Page: page, Reason: "invalid request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	res, err := f.client.Do(req)
	if err != nil {
		f.logPageFailure(ctx, "Request failed", runId, page, map[string]any{"url": url, "error": err.Error()})
		return nil, &models.FetchError{Page: page, Reason: "request failed", Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		f.logPageFailure(ctx, "Non-200 response", runId, page, map[string]any{"url": url, "status": res.StatusCode})
		return nil, &models.FetchError{Page: page, Status: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		f.logPageFailure(ctx, "Unreadable response body", runId, page, map[string]any{"url": url, "error": err.Error()})
		return nil, &models.FetchError{Page: page, Reason: "unreadable body", Err: err}
	}

	if err := f.archive.StorePage(runId, page, body); err != nil {
		return nil, fmt.Errorf("archive page %d: %w", page, err)
	}

	items, err := decodeResults(body)
	if err != nil {
		f.logPageFailure(ctx, "Unexpected response shape", runId, page, map[string]any{"url": url, "error": err.Error()})
		return nil, &models.FetchError{Page: page, Reason: "unexpected response shape", Err: err}
	}

	records := make([]models.Record, 0, len(items))
	for _, item := range items {
		if record, ok := normalizeItem(item); ok {
			records = append(records, record)
		}
	}

	f.logger.Debugf(providers.TypeImport, "Page %d: %d items, %d kept", page, len(items), len(records))
	return records, nil
}

// decodeResults requires the body to be a JSON object carrying a `results`
// array; absence or a wrong type is a shape error.
func decodeResults(body []byte) ([]map[string]any, error) {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("body is not a JSON object: %w", err)
	}

	raw, ok := payload["results"]
	if !ok {
		return nil, fmt.Errorf("missing results field")
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("results is not an array")
	}

	items := make([]map[string]any, 0, len(list))
	for _, el := range list {
		if m, ok := el.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items, nil
}

// normalizeItem stringifies and trims the known fields. Items missing id or
// name after trim are dropped silently, not counted as errors.
func normalizeItem(item map[string]any) (models.Record, bool) {
	record := models.Record{
		Id:        stringField(item, "id"),
		Name:      stringField(item, "name"),
		Type:      stringField(item, "type"),
		Dimension: stringField(item, "dimension"),
	}
	if record.Id == "" || record.Name == "" {
		return models.Record{}, false
	}
	return record, true
}

func stringField(item map[string]any, key string) string {
	return strings.TrimSpace(cast.ToString(item[key]))
}

func (f *PageFetcher) logPageFailure(ctx context.Context, message, runId string, page int, context map[string]any) {
	context["run_id"] = runId
	context["page"] = page
	entry := models.LogEntry{
		Ts:      f.clock.Now(),
		Level:   models.LevelError,
		Message: message,
		Context: context,
	}
	// Best effort: a failing log append must not mask the fetch error.
	if err := f.runLog.Append(ctx, entry); err != nil {
		f.logger.Errorf(providers.TypeImport, "Failed to append execution log entry: %s", err)
	}
}
