package adapters

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/oddsfeed/internal/markets"
	"github.com/yourusername/oddsfeed/internal/metrics"
	"github.com/yourusername/oddsfeed/internal/models"
)

// OddsAPIAdapter normalizes The Odds API event payloads.
type OddsAPIAdapter struct {
	logger *logrus.Logger
}

// NewOddsAPIAdapter creates an adapter for the primary odds aggregator.
func NewOddsAPIAdapter(logger *logrus.Logger) *OddsAPIAdapter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &OddsAPIAdapter{logger: logger}
}

// oddsAPIEvent mirrors one event object from the aggregator.
type oddsAPIEvent struct {
	ID           string        `json:"id"`
	CommenceTime string        `json:"commence_time"`
	HomeTeam     string        `json:"home_team"`
	AwayTeam     string        `json:"away_team"`
	Bookmakers   []oddsAPIBook `json:"bookmakers"`
}

type oddsAPIBook struct {
	Key     string          `json:"key"`
	Title   string          `json:"title"`
	Markets []oddsAPIMarket `json:"markets"`
}

type oddsAPIMarket struct {
	Key      string           `json:"key"`
	Outcomes []oddsAPIOutcome `json:"outcomes"`
}

type oddsAPIOutcome struct {
	Name  string       `json:"name"`
	Price *json.Number `json:"price"`
	Point *json.Number `json:"point"`
}

// Name returns the source-type identifier.
func (a *OddsAPIAdapter) Name() string {
	return string(models.SourceOddsAPI)
}

// AdaptToGames converts an aggregator response (a JSON array of events) into
// canonical games. Events that fail to parse are skipped with a logged
// reason.
func (a *OddsAPIAdapter) AdaptToGames(raw json.RawMessage, sport models.Sport) ([]models.Game, error) {
	var events []json.RawMessage
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("odds api payload is not an event array: %w", err)
	}

	games := make([]models.Game, 0, len(events))
	skipped := 0
	for i, rawEvent := range events {
		var event oddsAPIEvent
		if err := json.Unmarshal(rawEvent, &event); err != nil {
			a.logger.WithFields(logrus.Fields{
				"sport": sport,
				"index": i,
			}).WithError(err).Warn("skipping malformed event record")
			skipped++
			continue
		}
		games = append(games, a.buildGame(&event, sport))
	}

	if skipped > 0 {
		metrics.RecordsSkippedTotal.Add(float64(skipped))
		a.logger.WithFields(logrus.Fields{
			"sport":   sport,
			"skipped": skipped,
			"parsed":  len(games),
		}).Warn("some event records were skipped")
	}
	return games, nil
}

func (a *OddsAPIAdapter) buildGame(event *oddsAPIEvent, sport models.Sport) models.Game {
	game := models.Game{
		Sport:    sport,
		HomeTeam: orUnknown(event.HomeTeam),
		AwayTeam: orUnknown(event.AwayTeam),
	}

	if event.CommenceTime != "" {
		if start, err := parseCommenceTime(event.CommenceTime); err == nil {
			game.StartTime = &start
		} else {
			a.logger.WithField("commence_time", event.CommenceTime).
				WithError(err).Warn("unparseable commence time, leaving start TBD")
		}
	}

	captured := time.Now()
	for _, book := range event.Bookmakers {
		sportsbook := orUnknown(book.Title)
		for _, market := range book.Markets {
			betType := markets.BetTypeFor(market.Key)
			for _, outcome := range market.Outcomes {
				game.Odds = append(game.Odds, models.Odds{
					Sportsbook: sportsbook,
					BetType:    betType,
					Price:      priceString(outcome.Price),
					Format:     models.FormatAmerican,
					Line:       lineString(outcome.Point),
					CapturedAt: captured,
				})
			}
		}
	}
	return game
}

// parseCommenceTime normalizes the provider's ISO-8601 "Z" timestamps to a
// fixed-offset UTC time.
func parseCommenceTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, strings.Replace(s, "Z", "+00:00", 1))
}

// priceString keeps the provider's native numeric text. A missing price is
// quoted as "N/A" rather than failing the record.
func priceString(n *json.Number) string {
	if n == nil || n.String() == "" {
		return "N/A"
	}
	return n.String()
}

func lineString(n *json.Number) string {
	if n == nil {
		return ""
	}
	return n.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
