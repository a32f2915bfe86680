package adapters

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/oddsfeed/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

const oddsAPIPayload = `[
  {
    "id": "abc123",
    "sport_key": "americanfootball_nfl",
    "commence_time": "2025-11-02T18:00:00Z",
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
          },
          {
            "key": "spreads",
            "outcomes": [
              {"name": "Kansas City Chiefs", "price": -110, "point": -3.5},
              {"name": "Buffalo Bills", "price": -110, "point": 3.5}
            ]
          },
          {
            "key": "some_new_market",
            "outcomes": [
              {"name": "Kansas City Chiefs"}
            ]
          }
        ]
      }
    ]
  }
]`

func TestOddsAPIAdapterAdaptToGames(t *testing.T) {
	adapter := NewOddsAPIAdapter(testLogger())

	games, err := adapter.AdaptToGames(json.RawMessage(oddsAPIPayload), models.SportNFL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}

	game := games[0]
	if game.HomeTeam != "Kansas City Chiefs" || game.AwayTeam != "Buffalo Bills" {
		t.Errorf("unexpected teams: %s vs %s", game.HomeTeam, game.AwayTeam)
	}
	if game.StartTime == nil {
		t.Fatal("expected a start time")
	}
	if game.StartTime.UTC().Format("2006-01-02T15:04:05") != "2025-11-02T18:00:00" {
		t.Errorf("unexpected start time: %v", game.StartTime)
	}
	if len(game.Odds) != 5 {
		t.Fatalf("expected 5 odds entries, got %d", len(game.Odds))
	}

	ml := game.Odds[0]
	if ml.BetType != models.BetMoneyline || ml.Price != "-150" || ml.Sportsbook != "DraftKings" {
		t.Errorf("unexpected moneyline entry: %+v", ml)
	}
	if ml.Format != models.FormatAmerican {
		t.Errorf("expected american format tag, got %q", ml.Format)
	}

	spread := game.Odds[2]
	if spread.BetType != models.BetSpread || spread.Line != "-3.5" {
		t.Errorf("unexpected spread entry: %+v", spread)
	}

	// Unrecognized market key defaults to moneyline; missing price is "N/A".
	unknown := game.Odds[4]
	if unknown.BetType != models.BetMoneyline {
		t.Errorf("unrecognized market should map to moneyline, got %q", unknown.BetType)
	}
	if unknown.Price != "N/A" {
		t.Errorf("missing price should be \"N/A\", got %q", unknown.Price)
	}
}

func TestOddsAPIAdapterSkipsMalformedRecords(t *testing.T) {
	payload := `[
	  {"home_team": "A", "away_team": "B", "commence_time": "2025-11-02T18:00:00Z", "bookmakers": []},
	  "not an object",
	  {"home_team": "C", "away_team": "D", "commence_time": "bogus", "bookmakers": []}
	]`

	adapter := NewOddsAPIAdapter(testLogger())
	games, err := adapter.AdaptToGames(json.RawMessage(payload), models.SportNBA)
	if err != nil {
		t.Fatalf("bad individual records must not fail the batch: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	// Unparseable commence time leaves the start TBD rather than skipping.
	if games[1].StartTime != nil {
		t.Errorf("expected TBD start time, got %v", games[1].StartTime)
	}
}

func TestOddsAPIAdapterRejectsNonArrayPayload(t *testing.T) {
	adapter := NewOddsAPIAdapter(testLogger())
	if _, err := adapter.AdaptToGames(json.RawMessage(`{"events": []}`), models.SportNFL); err == nil {
		t.Error("expected an error for a non-array payload")
	}
}

func TestOddsAPIAdapterMissingTeams(t *testing.T) {
	adapter := NewOddsAPIAdapter(testLogger())
	games, err := adapter.AdaptToGames(json.RawMessage(`[{"bookmakers": []}]`), models.SportMLB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	if games[0].HomeTeam != "Unknown" || games[0].AwayTeam != "Unknown" {
		t.Errorf("missing team names should default to Unknown: %+v", games[0])
	}
}
