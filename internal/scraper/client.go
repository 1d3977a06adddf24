package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/unq-dapp-grupoM/futbol-api/internal/cache"
	"github.com/unq-dapp-grupoM/futbol-api/pkg/errors"
)

// Client is the HTTP client for the external scraper-service. Payloads are
// opaque JSON passed through to callers unchanged. Successful responses are
// cached in Redis when a cache is attached.
type Client struct {
	baseURL  string
	http     *http.Client
	cache    *cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewClient creates a scraper client with an explicit request timeout. A
// timed-out or failed upstream call is never treated as success.
func NewClient(baseURL string, timeout time.Duration, c *cache.Cache, cacheTTL time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// SearchPlayer looks a player up by name. The scraper answers with a list;
// the first element is the payload.
func (c *Client) SearchPlayer(ctx context.Context, playerName string) (json.RawMessage, error) {
	query := url.Values{"playerName": {playerName}}
	body, err := c.get(ctx, "player:"+playerName, "/api/scrape/player", query, playerNotFound(playerName))
	if err != nil {
		return nil, err
	}
	return firstElement(body, playerNotFound(playerName))
}

// SearchTeam looks a team up by name.
func (c *Client) SearchTeam(ctx context.Context, teamName string) (json.RawMessage, error) {
	notFound := fmt.Sprintf("Team with name '%s' not found.", teamName)
	query := url.Values{"teamName": {teamName}}
	body, err := c.get(ctx, "team:"+teamName, "/api/scrape/team", query, notFound)
	if err != nil {
		return nil, err
	}
	return firstElement(body, notFound)
}

// FutureMatches returns the upcoming matches for a team.
func (c *Client) FutureMatches(ctx context.Context, teamName string) (json.RawMessage, error) {
	notFound := fmt.Sprintf("Team with name '%s' not found.", teamName)
	query := url.Values{"teamName": {teamName}}
	return c.get(ctx, "futureMatches:"+teamName, "/api/scrape/team/futureMatches", query, notFound)
}

// PerformanceMetrics returns the performance metrics for a player.
func (c *Client) PerformanceMetrics(ctx context.Context, playerName string) (json.RawMessage, error) {
	path := "/api/analysis/" + url.PathEscape(playerName) + "/performanceMetrics"
	return c.get(ctx, "metrics:"+playerName, path, nil, playerNotFound(playerName))
}

// Prediction returns the predicted performance for a player's next match.
func (c *Client) Prediction(ctx context.Context, playerName, opponent string, isHome bool, position string) (json.RawMessage, error) {
	path := "/api/analysis/" + url.PathEscape(playerName) + "/prediction"
	query := url.Values{
		"opponent": {opponent},
		"isHome":   {strconv.FormatBool(isHome)},
		"position": {position},
	}
	cacheKey := fmt.Sprintf("prediction:%s:%s:%t:%s", playerName, opponent, isHome, position)
	return c.get(ctx, cacheKey, path, query, playerNotFound(playerName))
}

// ConvertData asks the scraper to convert raw player data into the analysis
// format. Conversion mutates upstream state, so it bypasses the cache.
func (c *Client) ConvertData(ctx context.Context, playerName string) (json.RawMessage, error) {
	path := "/api/analysis/" + url.PathEscape(playerName) + "/convert-data"
	body, err := c.do(ctx, http.MethodPost, path, nil, playerNotFound(playerName))
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		fallback := fmt.Sprintf(`{"message":"Operation completed for %s"}`, playerName)
		return json.RawMessage(fallback), nil
	}
	return body, nil
}

// Comparison returns the comparative analysis for a player across periods.
func (c *Client) Comparison(ctx context.Context, playerName string) (json.RawMessage, error) {
	path := "/api/analysis/" + url.PathEscape(playerName) + "/comparison"
	return c.get(ctx, "comparison:"+playerName, path, nil, playerNotFound(playerName))
}

func playerNotFound(playerName string) string {
	return fmt.Sprintf("Player with name '%s' not found.", playerName)
}

// get performs a cached GET. Cache errors degrade to an upstream call.
func (c *Client) get(ctx context.Context, cacheKey, path string, query url.Values, notFoundMsg string) (json.RawMessage, error) {
	if cached, err := c.cache.GetScrape(ctx, cacheKey); err == nil && cached != nil {
		c.logger.Debug("Scraper cache hit", zap.String("key", cacheKey))
		return cached, nil
	}

	body, err := c.do(ctx, http.MethodGet, path+encodeQuery(query), nil, notFoundMsg)
	if err != nil {
		return nil, err
	}

	c.cache.SetScrape(ctx, cacheKey, body, c.cacheTTL)
	return body, nil
}

func (c *Client) do(ctx context.Context, method, pathAndQuery string, body io.Reader, notFoundMsg string) (json.RawMessage, error) {
	target := c.baseURL + pathAndQuery

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternalServer)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Calling scraper service", zap.String("method", method), zap.String("url", target))

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("Scraper service call failed", zap.String("url", target), zap.Error(err))
		return nil, errors.Wrap(err, errors.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrUpstreamUnavailable)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.WithMessage(errors.ErrNotFound, notFoundMsg)
	case resp.StatusCode >= 400:
		c.logger.Error("Scraper service returned an error",
			zap.String("url", target), zap.Int("status", resp.StatusCode))
		return nil, errors.WithMessage(errors.ErrUpstreamUnavailable,
			fmt.Sprintf("Scraper service responded with status %d", resp.StatusCode))
	}

	return payload, nil
}

func encodeQuery(query url.Values) string {
	if len(query) == 0 {
		return ""
	}
	return "?" + query.Encode()
}

// firstElement collapses a JSON list response to its first element. An empty
// or null list means the entity was not found.
func firstElement(body json.RawMessage, notFoundMsg string) (json.RawMessage, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(body, &list); err != nil {
		// Not a list; pass the payload through untouched.
		return body, nil
	}
	if len(list) == 0 {
		return nil, errors.WithMessage(errors.ErrNotFound, notFoundMsg)
	}
	return list[0], nil
}
