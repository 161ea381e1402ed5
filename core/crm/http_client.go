package crm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"crm-matcher/core/apperror"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPClient talks to a Pipedrive-style v1 REST API. It paces requests with a
// token-bucket limiter and retries rate-limited or failed requests a bounded
// number of times before surfacing an external fetch error.
type HTTPClient struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewHTTPClient creates a CRM client from configuration.
func NewHTTPClient(cfg Config, logger *zap.Logger) *HTTPClient {
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 500
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	return &HTTPClient{
		cfg:     cfg,
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger,
	}
}

// apiEnvelope is the common CRM response wrapper.
type apiEnvelope struct {
	Success        bool            `json:"success"`
	Data           json.RawMessage `json:"data"`
	Error          string          `json:"error"`
	AdditionalData struct {
		Pagination struct {
			MoreItemsInCollection bool `json:"more_items_in_collection"`
		} `json:"pagination"`
	} `json:"additional_data"`
}

// FetchFilterDefinition resolves a filter id against GET /filters/{id}.
func (c *HTTPClient) FetchFilterDefinition(ctx context.Context, filterID string) (*FilterDefinition, error) {
	env, status, err := c.get(ctx, "filters/"+filterID, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound || !env.Success || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, apperror.New(apperror.KindFilterNotFound, "filter %s not found in CRM", filterID)
	}

	var raw struct {
		ID         json.Number     `json:"id"`
		Name       string          `json:"name"`
		Conditions json.RawMessage `json:"conditions"`
	}
	if err := json.Unmarshal(env.Data, &raw); err != nil {
		return nil, apperror.Wrap(apperror.KindExternalFetch, err, "decode filter %s definition", filterID)
	}

	return &FilterDefinition{
		ID:         raw.ID.String(),
		Name:       raw.Name,
		Conditions: raw.Conditions,
	}, nil
}

// FetchOrganizationsForFilter pulls GET /organizations?filter_id={id} page by
// page until the CRM reports no more items.
func (c *HTTPClient) FetchOrganizationsForFilter(ctx context.Context, filterID string) ([]Organization, error) {
	return c.fetchOrganizations(ctx, filterID)
}

// FetchAllOrganizations pulls GET /organizations without a filter, page by page.
func (c *HTTPClient) FetchAllOrganizations(ctx context.Context) ([]Organization, error) {
	return c.fetchOrganizations(ctx, "")
}

func (c *HTTPClient) fetchOrganizations(ctx context.Context, filterID string) ([]Organization, error) {
	var all []Organization
	start := 0

	for {
		params := url.Values{}
		if filterID != "" {
			params.Set("filter_id", filterID)
		}
		params.Set("start", strconv.Itoa(start))
		params.Set("limit", strconv.Itoa(c.cfg.PageLimit))

		env, status, err := c.get(ctx, "organizations", params)
		if err != nil {
			return nil, err
		}
		if status == http.StatusNotFound || !env.Success {
			if filterID == "" {
				return nil, apperror.New(apperror.KindExternalFetch, "organization listing rejected: %s", env.Error)
			}
			return nil, apperror.New(apperror.KindFilterNotFound, "filter %s not found in CRM", filterID)
		}

		var page []struct {
			ID   json.Number `json:"id"`
			Name string      `json:"name"`
		}
		if len(env.Data) > 0 && string(env.Data) != "null" {
			if err := json.Unmarshal(env.Data, &page); err != nil {
				return nil, apperror.Wrap(apperror.KindExternalFetch, err, "decode organizations page for filter %s", filterID)
			}
		}
		if len(page) == 0 {
			break
		}

		for _, org := range page {
			all = append(all, Organization{ExternalID: org.ID.String(), Name: org.Name})
		}

		c.logger.Debug("Fetched organizations page",
			zap.String("filter_id", filterID),
			zap.Int("page_size", len(page)),
			zap.Int("total", len(all)),
		)

		if !env.AdditionalData.Pagination.MoreItemsInCollection {
			break
		}
		start += c.cfg.PageLimit
	}

	return all, nil
}

// get performs one logical GET with pacing, bounded retry on 429 and transport
// failures, and envelope decoding. The returned status is the final HTTP status.
func (c *HTTPClient) get(ctx context.Context, endpoint string, params url.Values) (*apiEnvelope, int, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.cfg.APIToken)
	reqURL := fmt.Sprintf("%s/%s?%s", c.cfg.BaseURL, endpoint, params.Encode())

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, apperror.Wrap(apperror.KindExternalFetch, err, "request pacing interrupted")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, 0, apperror.Wrap(apperror.KindExternalFetch, err, "build request for %s", endpoint)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			if waitErr := c.backoff(ctx, attempt); waitErr != nil {
				return nil, 0, apperror.Wrap(apperror.KindExternalFetch, waitErr, "fetch %s", endpoint)
			}
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			_ = resp.Body.Close()
			c.logger.Warn("CRM rate limited, backing off",
				zap.String("endpoint", endpoint),
				zap.Int("attempt", attempt+1),
			)
			lastErr = fmt.Errorf("rate limited (HTTP 429)")
			if waitErr := c.backoff(ctx, attempt); waitErr != nil {
				return nil, 0, apperror.Wrap(apperror.KindExternalFetch, waitErr, "fetch %s", endpoint)
			}
			continue
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = err
			if waitErr := c.backoff(ctx, attempt); waitErr != nil {
				return nil, 0, apperror.Wrap(apperror.KindExternalFetch, waitErr, "fetch %s", endpoint)
			}
			continue
		}

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error (HTTP %d)", resp.StatusCode)
			if waitErr := c.backoff(ctx, attempt); waitErr != nil {
				return nil, 0, apperror.Wrap(apperror.KindExternalFetch, waitErr, "fetch %s", endpoint)
			}
			continue
		}

		var env apiEnvelope
		if len(body) > 0 {
			if err := json.Unmarshal(body, &env); err != nil {
				return nil, resp.StatusCode, apperror.Wrap(apperror.KindExternalFetch, err, "decode response from %s", endpoint)
			}
		}
		return &env, resp.StatusCode, nil
	}

	return nil, 0, apperror.Wrap(apperror.KindExternalFetch, lastErr, "fetch %s exhausted %d retries", endpoint, c.cfg.MaxRetries)
}

// backoff sleeps with exponential growth between attempts, honoring ctx.
func (c *HTTPClient) backoff(ctx context.Context, attempt int) error {
	delay := time.Duration(1<<attempt) * 500 * time.Millisecond
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
