// Package espn implements the secondary data client against ESPN's public
// scoreboard endpoints. It is fetch-only: no caching, no retry, a single
// bounded request per call.
package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/oddsfeed/internal/adapters"
	"github.com/yourusername/oddsfeed/internal/models"
	"github.com/yourusername/oddsfeed/internal/oddsapi"
)

// DefaultBaseURL is the public scoreboard API root.
const DefaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports"

// sportPaths maps canonical sports to scoreboard URL segments. Soccer and
// combat sports are not served here; callers get team stats for the US
// leagues only.
var sportPaths = map[models.Sport]string{
	models.SportNFL:   "football/nfl",
	models.SportNBA:   "basketball/nba",
	models.SportMLB:   "baseball/mlb",
	models.SportNHL:   "hockey/nhl",
	models.SportNCAAF: "football/college-football",
	models.SportNCAAB: "basketball/mens-college-basketball",
}

// SportPath returns the scoreboard path segment for a sport.
func SportPath(sport models.Sport) (string, bool) {
	path, ok := sportPaths[sport]
	return path, ok
}

// Config holds the secondary client settings.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// DefaultConfig returns the recommended settings.
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		RequestTimeout: 30 * time.Second,
	}
}

// Client fetches scoreboard data. No API key is required.
type Client struct {
	httpClient *http.Client
	cfg        Config
	adapter    adapters.SourceAdapter
	logger     *logrus.Logger
}

// New creates a scoreboard client.
func New(cfg Config, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		cfg:        cfg,
		adapter:    adapters.NewESPNAdapter(logger),
		logger:     logger,
	}
}

// GetScoreboard fetches the raw scoreboard payload for one sport.
func (c *Client) GetScoreboard(ctx context.Context, sport models.Sport) (json.RawMessage, error) {
	path, ok := SportPath(sport)
	if !ok {
		return nil, &oddsapi.UnsupportedSportError{Sport: sport}
	}

	endpoint := fmt.Sprintf("%s/%s/scoreboard", c.cfg.BaseURL, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scoreboard request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scoreboard returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read scoreboard response: %w", err)
	}
	return body, nil
}

// GetGames fetches and normalizes scoreboard games. The returned games carry
// team records and statistics but no betting odds.
func (c *Client) GetGames(ctx context.Context, sport models.Sport) ([]models.Game, error) {
	raw, err := c.GetScoreboard(ctx, sport)
	if err != nil {
		return nil, err
	}

	games, err := c.adapter.AdaptToGames(raw, sport)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize scoreboard payload: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"sport": sport,
		"games": len(games),
	}).Info("fetched scoreboard games")
	return games, nil
}
