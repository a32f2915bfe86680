package oddsmath

import (
	"fmt"
	"sort"

	"github.com/yourusername/oddsfeed/internal/models"
)

// GroupByBetType buckets a game's odds by canonical bet type.
func GroupByBetType(g *models.Game) map[models.BetType][]models.Odds {
	grouped := make(map[models.BetType][]models.Odds)
	for _, o := range g.Odds {
		grouped[o.BetType] = append(grouped[o.BetType], o)
	}
	return grouped
}

// BySportsbook organizes a game's odds for one bet type by sportsbook, for
// cross-book comparison.
func BySportsbook(g *models.Game, betType models.BetType) map[string][]models.Odds {
	byBook := make(map[string][]models.Odds)
	for _, o := range g.Odds {
		if o.BetType == betType {
			byBook[o.Sportsbook] = append(byBook[o.Sportsbook], o)
		}
	}
	return byBook
}

// BestPerBetType finds the best available price for each bet type in a game,
// using positive-odds comparison.
func BestPerBetType(g *models.Game) map[models.BetType]models.Odds {
	best := make(map[models.BetType]models.Odds)
	for betType, odds := range GroupByBetType(g) {
		if b, ok := BestOdds(odds, true); ok {
			best[betType] = b
		}
	}
	return best
}

// Summary describes the odds coverage of one game.
type Summary struct {
	TotalOdds   int
	Sportsbooks []string
	BetTypes    []models.BetType
}

// Summarize reports how many quotes a game carries and from whom.
func Summarize(g *models.Game) Summary {
	books := make(map[string]bool)
	betTypes := make(map[models.BetType]bool)
	for _, o := range g.Odds {
		books[o.Sportsbook] = true
		betTypes[o.BetType] = true
	}

	s := Summary{TotalOdds: len(g.Odds)}
	for b := range books {
		s.Sportsbooks = append(s.Sportsbooks, b)
	}
	for bt := range betTypes {
		s.BetTypes = append(s.BetTypes, bt)
	}
	sort.Strings(s.Sportsbooks)
	sort.Slice(s.BetTypes, func(i, j int) bool { return s.BetTypes[i] < s.BetTypes[j] })
	return s
}

// FormatOdds renders a quote for display: spreads and totals include the
// line ("-3.5 (-110)"), moneylines are just the price.
func FormatOdds(o models.Odds) string {
	if o.Line != "" {
		return fmt.Sprintf("%s (%s)", o.Line, o.Price)
	}
	return o.Price
}

// FormatGameSummary renders a one-line description of a game and its odds
// coverage, e.g. "Bills @ Chiefs - 06:00 PM - 45 odds from 3 books".
func FormatGameSummary(g *models.Game) string {
	timeStr := "TBD"
	if g.StartTime != nil {
		timeStr = g.StartTime.Format("03:04 PM")
	}
	s := Summarize(g)
	return fmt.Sprintf("%s @ %s - %s - %d odds from %d books",
		g.AwayTeam, g.HomeTeam, timeStr, s.TotalOdds, len(s.Sportsbooks))
}
