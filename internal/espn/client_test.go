package espn

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/oddsfeed/internal/models"
	"github.com/yourusername/oddsfeed/internal/oddsapi"
)

const scoreboardBody = `{
  "events": [
    {
      "id": "401547403",
      "date": "2026-01-11T18:00:00Z",
      "name": "Buffalo Bills at Kansas City Chiefs",
      "competitions": [
        {
          "competitors": [
            {
              "homeAway": "home",
              "team": {"displayName": "Kansas City Chiefs"},
              "records": [{"summary": "14-3"}],
              "score": "27"
            },
            {
              "homeAway": "away",
              "team": {"displayName": "Buffalo Bills"},
              "records": [{"summary": "13-4"}],
              "score": "24"
            }
          ]
        }
      ]
    }
  ]
}`

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL
	return New(cfg, testLogger())
}

func TestGetScoreboardRequestPath(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"events": []}`))
	})

	_, err := client.GetScoreboard(context.Background(), models.SportNCAAB)

	require.NoError(t, err)
	assert.Equal(t, "/basketball/mens-college-basketball/scoreboard", gotPath)
}

func TestGetScoreboardUnsupportedSport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events": []}`))
	})

	_, err := client.GetScoreboard(context.Background(), models.SportUFC)

	var sportErr *oddsapi.UnsupportedSportError
	require.ErrorAs(t, err, &sportErr)
	assert.Equal(t, models.SportUFC, sportErr.Sport)
}

func TestGetScoreboardErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.GetScoreboard(context.Background(), models.SportNFL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestGetGamesNormalizesScoreboard(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(scoreboardBody))
	})

	games, err := client.GetGames(context.Background(), models.SportNFL)

	require.NoError(t, err)
	require.Len(t, games, 1)
	game := games[0]
	assert.Equal(t, "Kansas City Chiefs", game.HomeTeam)
	assert.Equal(t, "Buffalo Bills", game.AwayTeam)
	require.NotNil(t, game.HomeStats)
	require.NotNil(t, game.HomeStats.Wins)
	assert.Equal(t, 14, *game.HomeStats.Wins)
	assert.Empty(t, game.Odds)
}

func TestSportPath(t *testing.T) {
	tests := []struct {
		sport models.Sport
		want  string
		ok    bool
	}{
		{models.SportNFL, "football/nfl", true},
		{models.SportNHL, "hockey/nhl", true},
		{models.SportSoccer, "", false},
	}
	for _, tt := range tests {
		path, ok := SportPath(tt.sport)
		assert.Equal(t, tt.ok, ok, "sport %s", tt.sport)
		assert.Equal(t, tt.want, path, "sport %s", tt.sport)
	}
}
