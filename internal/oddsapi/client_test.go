package oddsapi

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/oddsfeed/internal/adapters"
	"github.com/yourusername/oddsfeed/internal/models"
)

const sampleOddsBody = `[
  {
    "id": "abc123",
    "sport_key": "americanfootball_nfl",
    "commence_time": "2026-01-11T18:00:00Z",
    "home_team": "Kansas City Chiefs",
    "away_team": "Buffalo Bills",
    "bookmakers": [
      {
        "key": "draftkings",
        "title": "DraftKings",
        "markets": [
          {
            "key": "h2h",
            "outcomes": [
              {"name": "Kansas City Chiefs", "price": -150},
              {"name": "Buffalo Bills", "price": 130}
            ]
          }
        ]
      }
    ]
  }
]`

func testClientLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL
	cfg.APIKey = "test-key"
	cfg.MaxRetries = 3
	cfg.RetryWaitBase = time.Millisecond
	cfg.MinRequestInterval = 0
	cfg.CacheTTL = time.Minute

	logger := testClientLogger()
	return New(cfg, adapters.NewRegistry(logger), logger), server
}

func TestGetOddsMissingAPIKey(t *testing.T) {
	cfg := DefaultConfig()
	client := New(cfg, nil, testClientLogger())

	_, err := client.GetOdds(context.Background(), models.SportNFL, "", "", "")

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.True(t, IsFatal(err))
	assert.Equal(t, 0, client.RequestCount())
}

func TestGetOddsUnsupportedSport(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})

	_, err := client.GetOdds(context.Background(), models.Sport("Cricket"), "", "", "")

	var sportErr *UnsupportedSportError
	require.ErrorAs(t, err, &sportErr)
	assert.Equal(t, 0, client.RequestCount())
}

func TestGetOddsCachesResponse(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(sampleOddsBody))
	})

	first, err := client.GetOdds(context.Background(), models.SportNFL, "", "", "")
	require.NoError(t, err)

	second, err := client.GetOdds(context.Background(), models.SportNFL, "", "", "")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, 1, client.RequestCount())
	assert.Equal(t, []byte(first), []byte(second))
}

func TestGetOddsLogsCacheLookupsAndQuota(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-requests-remaining", "482")
		w.Write([]byte(sampleOddsBody))
	}))
	t.Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL
	cfg.APIKey = "test-key"
	cfg.RetryWaitBase = time.Millisecond
	cfg.MinRequestInterval = 0
	cfg.CacheTTL = time.Minute

	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})
	client := New(cfg, adapters.NewRegistry(testClientLogger()), logger)

	_, err := client.GetOdds(context.Background(), models.SportNFL, "", "", "")
	require.NoError(t, err)
	_, err = client.GetOdds(context.Background(), models.SportNFL, "", "", "")
	require.NoError(t, err)

	var hits, misses int
	quotaLogged := false
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		switch entry["msg"] {
		case "Cache lookup":
			assert.Equal(t, "fetch", entry["component"])
			if entry["cache_hit"] == true {
				hits++
			} else {
				misses++
			}
		case "Provider quota update":
			assert.Equal(t, "fetch", entry["component"])
			assert.Equal(t, "482", entry["requests_remaining"])
			quotaLogged = true
		}
	}
	assert.Equal(t, 1, misses, "first lookup goes to the provider")
	assert.Equal(t, 1, hits, "second lookup is served from cache")
	assert.True(t, quotaLogged, "quota header must be logged")
}

func TestGetOddsCacheKeyIncludesParameters(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte("[]"))
	})

	_, err := client.GetOdds(context.Background(), models.SportNFL, "", "h2h", "")
	require.NoError(t, err)

	_, err = client.GetOdds(context.Background(), models.SportNFL, "", "h2h,spreads", "")
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetOddsRetriesRateLimit(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(sampleOddsBody))
	})

	raw, err := client.GetOdds(context.Background(), models.SportNFL, "", "", "")

	require.NoError(t, err)
	assert.JSONEq(t, sampleOddsBody, string(raw))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, 3, client.RequestCount())
}

func TestGetOddsRateLimitExhaustsRetries(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.GetOdds(context.Background(), models.SportNFL, "", "", "")

	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, 3, rateErr.Attempts)
	assert.False(t, IsFatal(err))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetOddsAuthFailureDoesNotRetry(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.GetOdds(context.Background(), models.SportNFL, "", "", "")

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.True(t, IsFatal(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetOddsFailureNotCached(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("[]"))
	})

	_, err := client.GetOdds(context.Background(), models.SportNFL, "", "", "")
	require.Error(t, err)

	_, err = client.GetOdds(context.Background(), models.SportNFL, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetOddsSendsQueryParameters(t *testing.T) {
	var gotQuery map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"apiKey":     q.Get("apiKey"),
			"regions":    q.Get("regions"),
			"markets":    q.Get("markets"),
			"oddsFormat": q.Get("oddsFormat"),
		}
		w.Write([]byte("[]"))
	})

	_, err := client.GetOdds(context.Background(), models.SportNBA, "", "", "")
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotQuery["apiKey"])
	assert.Equal(t, "us", gotQuery["regions"])
	assert.Equal(t, "h2h,spreads,totals", gotQuery["markets"])
	assert.Equal(t, "american", gotQuery["oddsFormat"])
}

func TestGetGamesNormalizesPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleOddsBody))
	})

	games, err := client.GetGames(context.Background(), models.SportNFL, []models.BetType{models.BetMoneyline})

	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Kansas City Chiefs", games[0].HomeTeam)
	assert.Equal(t, "Buffalo Bills", games[0].AwayTeam)
	assert.Len(t, games[0].Odds, 2)
}

func TestGetGamesWithOddsPartialFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sports/basketball_nba/odds" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(sampleOddsBody))
	})

	results, err := client.GetGamesWithOdds(context.Background(),
		[]models.Sport{models.SportNFL, models.SportNBA},
		[]models.BetType{models.BetMoneyline})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Len(t, results[models.SportNFL], 1)
	assert.Empty(t, results[models.SportNBA])
}

func TestGetGamesWithOddsAbortsOnFatal(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.GetGamesWithOdds(context.Background(),
		[]models.Sport{models.SportNFL, models.SportNBA},
		[]models.BetType{models.BetMoneyline})

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, 1, client.RequestCount())
}

func TestSportKey(t *testing.T) {
	tests := []struct {
		sport models.Sport
		want  string
		ok    bool
	}{
		{models.SportNFL, "americanfootball_nfl", true},
		{models.SportSoccer, "soccer_epl", true},
		{models.SportUFC, "mma_mixed_martial_arts", true},
		{models.Sport("Cricket"), "", false},
	}
	for _, tt := range tests {
		key, ok := SportKey(tt.sport)
		assert.Equal(t, tt.ok, ok, "sport %s", tt.sport)
		assert.Equal(t, tt.want, key, "sport %s", tt.sport)
	}
}
