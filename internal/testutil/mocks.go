package testutil

import (
	"context"
	"strconv"
	"sync"
	"time"

	"sid/internal/models"
	"sid/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogLine
}

type LogLine struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogLine{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockClock implements providers.Clock with a settable instant.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockClock(now time.Time) *MockClock {
	return &MockClock{now: now}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data = make(map[string][]byte)
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu       sync.Mutex
	Runs     map[string]int
	Records  map[string]int
	Pages    int
	RowsSeen []int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{Runs: make(map[string]int), Records: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) ObserveRunDuration(_ time.Duration)               {}

func (m *MockMetrics) IncRunsTotal(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Runs[outcome]++
}

func (m *MockMetrics) AddPagesFetched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Pages += n
}

func (m *MockMetrics) AddRecords(action string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records[action] += n
}

func (m *MockMetrics) SetRowsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RowsSeen = append(m.RowsSeen, count)
}

// MockCompressor implements interfaces.CompressorInterface with injectable
// behavior. Defaults to identity.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockArchive implements interfaces.ArchiveInterface and records pages.
type MockArchive struct {
	mu    sync.Mutex
	Pages map[string][]byte // "<runId>-<page>" -> body
	Err   error
}

func NewMockArchive() *MockArchive {
	return &MockArchive{Pages: make(map[string][]byte)}
}

func (m *MockArchive) StorePage(runId string, page int, body []byte) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Pages[runId+"-"+strconv.Itoa(page)] = append([]byte(nil), body...)
	return nil
}

// MockFetcher implements importer.FetcherInterface.
type MockFetcher struct {
	RecordsFn func(baseUrl string, maxPages int) ([]models.Record, error)
	Calls     int
}

func (m *MockFetcher) Fetch(_ context.Context, baseUrl string, maxPages int, _ string) ([]models.Record, error) {
	m.Calls++
	return m.RecordsFn(baseUrl, maxPages)
}
