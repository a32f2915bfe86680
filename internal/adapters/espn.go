package adapters

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/oddsfeed/internal/metrics"
	"github.com/yourusername/oddsfeed/internal/models"
)

// ESPNAdapter normalizes ESPN scoreboard payloads. This source carries team
// statistics but no betting odds, so the games it produces have empty odds
// lists.
type ESPNAdapter struct {
	logger *logrus.Logger
}

// NewESPNAdapter creates an adapter for the secondary stats source.
func NewESPNAdapter(logger *logrus.Logger) *ESPNAdapter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ESPNAdapter{logger: logger}
}

type espnScoreboard struct {
	Events []json.RawMessage `json:"events"`
}

type espnEvent struct {
	Competitions []espnCompetition `json:"competitions"`
}

type espnCompetition struct {
	Date        string           `json:"date"`
	Venue       *espnVenue       `json:"venue"`
	Competitors []espnCompetitor `json:"competitors"`
}

type espnVenue struct {
	FullName string `json:"fullName"`
}

type espnCompetitor struct {
	HomeAway   string          `json:"homeAway"`
	Score      string          `json:"score"`
	Team       espnTeam        `json:"team"`
	Records    []espnRecord    `json:"records"`
	Statistics []espnStatistic `json:"statistics"`
}

type espnTeam struct {
	DisplayName string `json:"displayName"`
}

type espnRecord struct {
	Summary string `json:"summary"`
}

type espnStatistic struct {
	Name         string `json:"name"`
	DisplayValue string `json:"displayValue"`
}

// Name returns the source-type identifier.
func (a *ESPNAdapter) Name() string {
	return string(models.SourceESPN)
}

// AdaptToGames converts a scoreboard payload (an object with an events
// array) into canonical games carrying team statistics. Malformed or
// incomplete events are skipped, never fatal.
func (a *ESPNAdapter) AdaptToGames(raw json.RawMessage, sport models.Sport) ([]models.Game, error) {
	var board espnScoreboard
	if err := json.Unmarshal(raw, &board); err != nil {
		return nil, fmt.Errorf("espn payload is not a scoreboard object: %w", err)
	}

	games := make([]models.Game, 0, len(board.Events))
	for i, rawEvent := range board.Events {
		var event espnEvent
		if err := json.Unmarshal(rawEvent, &event); err != nil {
			metrics.RecordsSkippedTotal.Inc()
			a.logger.WithFields(logrus.Fields{
				"sport": sport,
				"index": i,
			}).WithError(err).Warn("skipping malformed scoreboard event")
			continue
		}

		game, ok := a.buildGame(&event, sport)
		if !ok {
			metrics.RecordsSkippedTotal.Inc()
			a.logger.WithFields(logrus.Fields{
				"sport": sport,
				"index": i,
			}).Warn("skipping scoreboard event without both teams")
			continue
		}
		games = append(games, game)
	}
	return games, nil
}

func (a *ESPNAdapter) buildGame(event *espnEvent, sport models.Sport) (models.Game, bool) {
	if len(event.Competitions) == 0 {
		return models.Game{}, false
	}
	competition := event.Competitions[0]

	game := models.Game{Sport: sport, Odds: []models.Odds{}}
	for _, competitor := range competition.Competitors {
		name := competitor.Team.DisplayName
		if name == "" {
			name = "Unknown"
		}
		stats := parseTeamStats(&competitor, name)

		if competitor.HomeAway == "home" {
			game.HomeTeam = name
			game.HomeStats = stats
		} else {
			game.AwayTeam = name
			game.AwayStats = stats
		}
	}

	if game.HomeTeam == "" || game.AwayTeam == "" {
		return models.Game{}, false
	}

	if competition.Date != "" {
		if start, err := parseCommenceTime(competition.Date); err == nil {
			game.StartTime = &start
		}
	}
	if competition.Venue != nil {
		game.Venue = competition.Venue.FullName
	}
	return game, true
}

// parseTeamStats builds the stats attachment for one competitor. The "W-L"
// summary splits on the first hyphen; non-numeric parts simply omit the
// counts rather than failing.
func parseTeamStats(competitor *espnCompetitor, name string) *models.TeamStats {
	stats := &models.TeamStats{TeamName: name}

	if len(competitor.Records) > 0 {
		winPart, lossPart, found := strings.Cut(competitor.Records[0].Summary, "-")
		if found {
			if wins, err := strconv.Atoi(winPart); err == nil {
				stats.Wins = &wins
			}
			if losses, err := strconv.Atoi(lossPart); err == nil {
				stats.Losses = &losses
			}
		}
	}

	if len(competitor.Statistics) > 0 {
		stats.Additional = make(map[string]string, len(competitor.Statistics))
		for _, s := range competitor.Statistics {
			if s.Name != "" && s.DisplayValue != "" {
				stats.Additional[s.Name] = s.DisplayValue
			}
		}
	}
	if competitor.Score != "" {
		if stats.Additional == nil {
			stats.Additional = make(map[string]string, 1)
		}
		stats.Additional["score"] = competitor.Score
	}
	return stats
}
