// Package oddsapi implements the client for the primary odds aggregator,
// owning rate limiting, retry with backoff, and response caching.
package oddsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/oddsfeed/internal/adapters"
	applogger "github.com/yourusername/oddsfeed/internal/logger"
	"github.com/yourusername/oddsfeed/internal/markets"
	"github.com/yourusername/oddsfeed/internal/metrics"
	"github.com/yourusername/oddsfeed/internal/models"
)

// DefaultBaseURL is the production odds aggregator endpoint.
const DefaultBaseURL = "https://api.the-odds-api.com/v4"

// sportKeys maps canonical sports to the aggregator's sport keys. Soccer
// defaults to the Premier League feed.
var sportKeys = map[models.Sport]string{
	models.SportNFL:             "americanfootball_nfl",
	models.SportNBA:             "basketball_nba",
	models.SportMLB:             "baseball_mlb",
	models.SportNHL:             "icehockey_nhl",
	models.SportNCAAF:           "americanfootball_ncaaf",
	models.SportNCAAB:           "basketball_ncaab",
	models.SportSoccer:          "soccer_epl",
	models.SportPremierLeague:   "soccer_epl",
	models.SportLaLiga:          "soccer_spain_la_liga",
	models.SportChampionsLeague: "soccer_uefa_champs_league",
	models.SportMMA:             "mma_mixed_martial_arts",
	models.SportUFC:             "mma_mixed_martial_arts",
}

// SportKey returns the provider key for a sport.
func SportKey(sport models.Sport) (string, bool) {
	key, ok := sportKeys[sport]
	return key, ok
}

// Config holds the client settings, read once at construction.
type Config struct {
	BaseURL            string
	APIKey             string
	Regions            string
	OddsFormat         string
	RequestTimeout     time.Duration
	MaxRetries         int
	CacheTTL           time.Duration
	RetryWaitBase      time.Duration // backoff base unit, doubled per retry
	MinRequestInterval time.Duration // shared cadence between physical calls
}

// DefaultConfig returns the recommended client settings.
func DefaultConfig() Config {
	return Config{
		BaseURL:            DefaultBaseURL,
		Regions:            "us",
		OddsFormat:         string(models.FormatAmerican),
		RequestTimeout:     30 * time.Second,
		MaxRetries:         3,
		CacheTTL:           15 * time.Minute,
		RetryWaitBase:      1 * time.Second,
		MinRequestInterval: 1 * time.Second,
	}
}

// Client is the request gateway for the primary odds aggregator. One client
// owns its cache and cadence state; concurrent fetches through one client
// share a single rate-limit clock.
type Client struct {
	httpClient *retryablehttp.Client
	limiter    *rate.Limiter
	cache      *cache.Cache
	cfg        Config
	registry   *adapters.Registry
	logger     *logrus.Logger
	fetchLog   *applogger.FetchLogger

	mu           sync.Mutex
	requestCount int
}

// New creates a gateway client. The registry resolves the adapter used to
// normalize responses; a nil registry gets the built-in one.
func New(cfg Config, registry *adapters.Registry, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if registry == nil {
		registry = adapters.NewRegistry(logger)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 1
	}

	c := &Client{
		limiter:  rate.NewLimiter(rate.Every(cfg.MinRequestInterval), 1),
		cache:    cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		cfg:      cfg,
		registry: registry,
		logger:   logger,
		fetchLog: applogger.NewFetchLogger(logger),
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.RequestTimeout
	retryClient.RetryMax = cfg.MaxRetries - 1
	retryClient.CheckRetry = checkRetry
	retryClient.Backoff = doublingBackoff(cfg.RetryWaitBase)
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil
	retryClient.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		c.mu.Lock()
		c.requestCount++
		count := c.requestCount
		c.mu.Unlock()
		metrics.APIRequestsTotal.Inc()
		logger.WithFields(logrus.Fields{
			"request": count,
			"attempt": attempt + 1,
			"path":    req.URL.Path,
		}).Debug("odds api request")
	}
	c.httpClient = retryClient

	return c
}

// checkRetry retries provider rate limits and network timeouts; every other
// failure is final. Authentication failures in particular must not burn
// retry budget.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return true, nil
		}
		return false, err
	}
	return resp.StatusCode == http.StatusTooManyRequests, nil
}

// doublingBackoff waits base, 2x base, 4x base between attempts.
func doublingBackoff(base time.Duration) retryablehttp.Backoff {
	return func(_, _ time.Duration, attemptNum int, _ *http.Response) time.Duration {
		return base << attemptNum
	}
}

// RequestCount returns the number of physical provider calls made by this
// client.
func (c *Client) RequestCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requestCount
}

// GetOdds fetches the raw odds payload for one sport. Empty regions,
// markets, or format arguments fall back to the configured defaults (the
// markets default is the universal basics string). Responses are cached per
// (sport, regions, markets, format) for the configured TTL; only successes
// are cached.
func (c *Client) GetOdds(ctx context.Context, sport models.Sport, regions, marketList, oddsFormat string) (json.RawMessage, error) {
	if c.cfg.APIKey == "" {
		return nil, NewConfigurationError("odds API key not configured")
	}

	sportKey, ok := SportKey(sport)
	if !ok {
		return nil, &UnsupportedSportError{Sport: sport}
	}

	if regions == "" {
		regions = c.cfg.Regions
	}
	if marketList == "" {
		marketList = markets.DefaultMarkets
	}
	if oddsFormat == "" {
		oddsFormat = c.cfg.OddsFormat
	}

	cacheKey := fmt.Sprintf("%s|%s|%s|%s", sportKey, regions, marketList, oddsFormat)
	if cached, found := c.cache.Get(cacheKey); found {
		metrics.CacheHitsTotal.Inc()
		c.fetchLog.LogCacheResult(cacheKey, true)
		return cached.(json.RawMessage), nil
	}
	metrics.CacheMissesTotal.Inc()
	c.fetchLog.LogCacheResult(cacheKey, false)

	body, err := c.fetch(ctx, sportKey, regions, marketList, oddsFormat)
	if err != nil {
		metrics.APIFailuresTotal.Inc()
		return nil, err
	}

	c.cache.Set(cacheKey, json.RawMessage(body), cache.DefaultExpiration)
	return body, nil
}

// fetch performs the rate-limited, retried physical request.
func (c *Client) fetch(ctx context.Context, sportKey, regions, marketList, oddsFormat string) ([]byte, error) {
	// Shared cadence: all fetches through this client observe one clock.
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter interrupted: %w", err)
	}

	query := url.Values{}
	query.Set("apiKey", c.cfg.APIKey)
	query.Set("regions", regions)
	query.Set("markets", marketList)
	query.Set("oddsFormat", oddsFormat)
	endpoint := fmt.Sprintf("%s/sports/%s/odds?%s", c.cfg.BaseURL, sportKey, query.Encode())

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, &TransientError{Attempts: c.cfg.MaxRetries, Cause: err}
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if remaining := resp.Header.Get("x-requests-remaining"); remaining != "" {
		if quota, convErr := strconv.ParseFloat(remaining, 64); convErr == nil {
			metrics.ProviderQuotaRemaining.Set(quota)
		}
		c.fetchLog.LogQuotaRemaining(remaining)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, &TransientError{Attempts: c.cfg.MaxRetries, Cause: readErr}
		}
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, NewAuthenticationError("invalid API key", nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		// Still rate limited after the full backoff schedule.
		return nil, &RateLimitError{Attempts: c.cfg.MaxRetries}
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}

// GetGames fetches and normalizes games for one sport, building the market
// string from the requested bet types.
func (c *Client) GetGames(ctx context.Context, sport models.Sport, betTypes []models.BetType) ([]models.Game, error) {
	marketList := markets.ForBetTypes(betTypes, sport)

	raw, err := c.GetOdds(ctx, sport, "", marketList, "")
	if err != nil {
		return nil, err
	}

	adapter := c.registry.Get(string(models.SourceOddsAPI))
	games, err := adapter.AdaptToGames(raw, sport)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize odds payload: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"sport":   sport,
		"markets": marketList,
		"games":   len(games),
	}).Info("fetched games with odds")
	return games, nil
}

// GetGamesWithOdds fetches games for multiple sports. The market string is
// recomputed per sport because market validity differs by sport. A failure
// for one sport is logged and recorded as an empty list; only configuration
// and authentication failures abort the whole batch.
func (c *Client) GetGamesWithOdds(ctx context.Context, sports []models.Sport, betTypes []models.BetType) (map[models.Sport][]models.Game, error) {
	results := make(map[models.Sport][]models.Game, len(sports))

	for _, sport := range sports {
		games, err := c.GetGames(ctx, sport, betTypes)
		if err != nil {
			if IsFatal(err) {
				return nil, err
			}
			c.logger.WithField("sport", sport).WithError(err).Error("failed to fetch odds")
			results[sport] = []models.Game{}
			continue
		}
		results[sport] = games
	}
	return results, nil
}
