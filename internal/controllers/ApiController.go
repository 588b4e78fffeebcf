package controllers

import (
	"errors"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"

	"sid/internal/providers"
	"sid/internal/services"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 500
)

type ApiController struct {
	logger  providers.Logger
	service services.ImportServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.ImportServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) RunImport(w http.ResponseWriter, r *http.Request) {
	report, err := ac.service.RunImport(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrRunInProgress) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ac.cache.Clear()

	gson, err := json.Marshal(report)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) ClearData(w http.ResponseWriter, r *http.Request) {
	if err := ac.service.ClearData(r.Context()); err != nil {
		ac.logger.Errorf(providers.TypeApi, "Clear data failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) GetData(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "data", func() (any, error) {
		return ac.service.Rows(r.Context())
	})
}

func (ac *ApiController) GetSummary(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "summary", func() (any, error) {
		return ac.service.Summary(r.Context())
	})
}

func (ac *ApiController) GetLogs(w http.ResponseWriter, r *http.Request) {
	limit := defaultLogLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		limit = min(n, maxLogLimit)
	}

	ac.serveFromCacheOrCompute(w, "logs:"+strconv.Itoa(limit), func() (any, error) {
		return ac.service.RecentLogs(r.Context(), limit)
	})
}
