package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"company-search/internal/common/config"
	"company-search/internal/common/logger"
	"company-search/internal/common/metrics"
)

var (
	ErrBackendUnavailable = errors.New("SEARCH_BACKEND_UNAVAILABLE")
	ErrQueryFailed        = errors.New("SEARCH_QUERY_FAILED")
	ErrSearchTimeout      = errors.New("SEARCH_TIMEOUT")
	ErrIndexNotFound      = errors.New("INDEX_NOT_FOUND")
)

// Service runs the full pipeline: build the engine query, execute it with a
// bounded timeout, and normalize the raw response. It is stateless; one
// Service may serve arbitrarily many concurrent requests over the shared
// engine client.
type Service struct {
	client  *elasticsearch.Client
	builder *Builder
	logger  logger.Logger
	timeout time.Duration
}

func NewService(client *elasticsearch.Client, builder *Builder, cfg config.SearchConfig, log logger.Logger) *Service {
	return &Service{
		client:  client,
		builder: builder,
		logger:  log.With(map[string]interface{}{"component": "search"}),
		timeout: time.Duration(cfg.EngineTimeout) * time.Millisecond,
	}
}

// Search executes one request end to end. The engine call is the only
// suspension point; cancelling ctx aborts it and discards partial work.
func (s *Service) Search(ctx context.Context, req Request) (*Response, error) {
	started := time.Now()

	body := s.builder.Build(req)
	index := s.builder.ResolveIndices(req)

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: encode query: %v", ErrQueryFailed, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(strings.Split(index, ",")...),
		s.client.Search.WithBody(bytes.NewReader(payload)),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			metrics.EngineErrors.WithLabelValues("SEARCH_TIMEOUT").Inc()
			metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("%w: %v", ErrSearchTimeout, err)
		}
		metrics.EngineErrors.WithLabelValues("SEARCH_BACKEND_UNAVAILABLE").Inc()
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		switch {
		case res.StatusCode == http.StatusNotFound:
			metrics.EngineErrors.WithLabelValues("INDEX_NOT_FOUND").Inc()
			return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, index)
		case res.StatusCode >= http.StatusInternalServerError || res.StatusCode == http.StatusTooManyRequests:
			metrics.EngineErrors.WithLabelValues("SEARCH_BACKEND_UNAVAILABLE").Inc()
			return nil, fmt.Errorf("%w: engine status %s", ErrBackendUnavailable, res.Status())
		default:
			metrics.EngineErrors.WithLabelValues("SEARCH_QUERY_FAILED").Inc()
			return nil, fmt.Errorf("%w: engine status %s", ErrQueryFailed, res.Status())
		}
	}

	var raw map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: decode response: %v", ErrQueryFailed, err)
	}

	normalized := NormalizeResponse(raw, req.Locale, req.CountryScope)

	metrics.SearchRequestsTotal.WithLabelValues("success").Inc()
	metrics.SearchDuration.WithLabelValues(index).Observe(time.Since(started).Seconds())
	s.logger.Debug("search completed", map[string]interface{}{
		"index":      index,
		"total":      normalized.Total,
		"durationMs": time.Since(started).Milliseconds(),
	})

	return &normalized, nil
}
