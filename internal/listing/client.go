// Package listing talks to the jobs backend listings endpoints.
package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/riya-n/step204-2020/internal/config"
	"github.com/riya-n/step204-2020/internal/errors"
	"github.com/riya-n/step204-2020/internal/filter"
	"github.com/riya-n/step204-2020/internal/models"
	"github.com/riya-n/step204-2020/internal/telemetry"
)

var tracer = telemetry.GetTracer("step204/webapp/listing")

const (
	listingsPath = "/jobs/listings"
	jobsMadePath = "/my-jobs"
)

// Query holds the seven listings parameters. Limits are the post-default
// values (0 and max int stand in for unset). PageIndex is 0-based.
type Query struct {
	Region    string
	SortBy    filter.SortField
	MinLimit  int64
	MaxLimit  int64
	Order     filter.SortOrder
	PageSize  int
	PageIndex int
}

type Client interface {
	// FetchListings performs one GET to the listings endpoint. It does
	// not retry; callers surface a generic message on failure.
	FetchListings(ctx context.Context, q Query) (*models.JobPage, error)

	// FetchJobsMade retrieves the job posts made by the business user
	// identified by the forwarded session cookie.
	FetchJobsMade(ctx context.Context, session *http.Cookie, pageSize, pageIndex int) (*models.JobPage, error)
}

type httpClient struct {
	client *http.Client
	logger *zap.Logger
	config *config.Config
}

func NewClient(logger *zap.Logger, config *config.Config) Client {
	return &httpClient{
		client: &http.Client{
			Timeout: config.JobsAPITimeout,
		},
		logger: logger,
		config: config,
	}
}

func (c *httpClient) FetchListings(ctx context.Context, q Query) (*models.JobPage, error) {
	ctx, span := tracer.Start(ctx, "FetchListings")
	defer span.End()

	params := url.Values{}
	params.Set("region", q.Region)
	params.Set("sortBy", string(q.SortBy))
	params.Set("minLimit", strconv.FormatInt(q.MinLimit, 10))
	params.Set("maxLimit", strconv.FormatInt(q.MaxLimit, 10))
	params.Set("order", string(q.Order))
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	params.Set("pageIndex", strconv.Itoa(q.PageIndex))

	reqURL := c.config.JobsAPIBaseURL + listingsPath + "?" + params.Encode()
	span.SetAttributes(
		telemetry.String("http.url", reqURL),
		telemetry.String("listings.region", q.Region),
		telemetry.String("listings.order", string(q.Order)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Internal("creating listings request", err)
	}

	return c.doJobPage(req)
}

func (c *httpClient) FetchJobsMade(ctx context.Context, session *http.Cookie, pageSize, pageIndex int) (*models.JobPage, error) {
	ctx, span := tracer.Start(ctx, "FetchJobsMade")
	defer span.End()

	if pageSize <= 0 || pageIndex < 0 {
		return nil, errors.Invariant(
			fmt.Sprintf("illegal pagination params: pageSize=%d pageIndex=%d", pageSize, pageIndex), nil)
	}

	params := url.Values{}
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("pageIndex", strconv.Itoa(pageIndex))

	reqURL := c.config.JobsAPIBaseURL + jobsMadePath + "?" + params.Encode()
	span.SetAttributes(telemetry.String("http.url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Internal("creating jobs-made request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if session != nil {
		req.AddCookie(session)
	}

	return c.doJobPage(req)
}

func (c *httpClient) doJobPage(req *http.Request) (*models.JobPage, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("failed to execute request",
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return nil, errors.Transport("executing request", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("unexpected status code",
			zap.String("url", req.URL.String()),
			zap.Int("status_code", resp.StatusCode))
		return nil, errors.Transport(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	var page models.JobPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		c.logger.Error("failed to decode response", zap.Error(err))
		return nil, errors.Transport("decoding response", err)
	}

	c.logger.Debug("fetched job page",
		zap.Int("jobs", len(page.JobList)),
		zap.Int("total_count", page.TotalCount))

	return &page, nil
}
