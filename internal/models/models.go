// Package models defines the canonical game and odds model shared by all
// data sources.
package models

import (
	"fmt"
	"time"
)

// Sport identifies a supported sport or league.
type Sport string

const (
	SportNFL             Sport = "NFL"
	SportNBA             Sport = "NBA"
	SportMLB             Sport = "MLB"
	SportNHL             Sport = "NHL"
	SportNCAAF           Sport = "NCAAF"
	SportNCAAB           Sport = "NCAAB"
	SportSoccer          Sport = "Soccer"
	SportPremierLeague   Sport = "Premier League"
	SportLaLiga          Sport = "La Liga"
	SportChampionsLeague Sport = "Champions League"
	SportMMA             Sport = "MMA"
	SportUFC             Sport = "UFC"
)

// IsSoccer reports whether the sport belongs to the soccer family.
func (s Sport) IsSoccer() bool {
	switch s {
	case SportSoccer, SportPremierLeague, SportLaLiga, SportChampionsLeague:
		return true
	}
	return false
}

// IsFootball reports whether the sport is American football.
func (s Sport) IsFootball() bool {
	return s == SportNFL || s == SportNCAAF
}

// IsBasketball reports whether the sport is basketball.
func (s Sport) IsBasketball() bool {
	return s == SportNBA || s == SportNCAAB
}

// BetType is the canonical identifier for a bet category. The set is closed;
// provider market keys map onto it through the markets catalog.
type BetType string

const (
	BetMoneyline BetType = "moneyline"
	BetSpread    BetType = "spread"
	BetTotals    BetType = "totals"
	BetOverUnder BetType = "over_under"
	BetParlay    BetType = "parlay"
	BetTeaser    BetType = "teaser"
	BetProp      BetType = "prop"
	BetFutures   BetType = "futures"
	BetLive      BetType = "live"
)

// OddsFormat tags the notation an odds string is quoted in.
type OddsFormat string

const (
	FormatAmerican   OddsFormat = "american"
	FormatDecimal    OddsFormat = "decimal"
	FormatFractional OddsFormat = "fractional"
)

// Odds is one quoted price from one sportsbook. Immutable after creation.
type Odds struct {
	Sportsbook string     `json:"sportsbook"`
	BetType    BetType    `json:"bet_type"`
	Price      string     `json:"price"` // native format, e.g. "+150", "-200"
	Format     OddsFormat `json:"odds_format"`
	Line       string     `json:"line,omitempty"` // spread or total threshold, e.g. "-3.5"
	CapturedAt time.Time  `json:"captured_at"`
}

// TeamStats is an optional secondary-source attachment carrying team form.
type TeamStats struct {
	TeamName   string            `json:"team_name"`
	Wins       *int              `json:"wins,omitempty"`
	Losses     *int              `json:"losses,omitempty"`
	Injuries   []string          `json:"injuries,omitempty"`
	RecentForm string            `json:"recent_form,omitempty"`
	Additional map[string]string `json:"additional_stats,omitempty"`
}

// Game is one scheduled contest with its collected odds. Games are created
// by a source adapter per fetch and are not mutated afterwards; FilterOdds
// returns a new Game rather than modifying the receiver.
type Game struct {
	Sport     Sport      `json:"sport"`
	HomeTeam  string     `json:"home_team"`
	AwayTeam  string     `json:"away_team"`
	StartTime *time.Time `json:"start_time,omitempty"`
	Venue     string     `json:"venue,omitempty"`
	HomeStats *TeamStats `json:"home_stats,omitempty"`
	AwayStats *TeamStats `json:"away_stats,omitempty"`
	Odds      []Odds     `json:"odds"`
	Notes     string     `json:"notes,omitempty"`
}

// Key returns the deduplication identity for the game. Two games with the
// same key are the same contest.
func (g *Game) Key() string {
	ts := "TBD"
	if g.StartTime != nil {
		ts = g.StartTime.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("%s_%s_%s_%s", g.Sport, g.HomeTeam, g.AwayTeam, ts)
}

// FilterOdds returns a copy of the game keeping only odds accepted by keep.
func (g *Game) FilterOdds(keep func(Odds) bool) Game {
	filtered := Game{
		Sport:     g.Sport,
		HomeTeam:  g.HomeTeam,
		AwayTeam:  g.AwayTeam,
		StartTime: g.StartTime,
		Venue:     g.Venue,
		HomeStats: g.HomeStats,
		AwayStats: g.AwayStats,
		Notes:     g.Notes,
	}
	for _, o := range g.Odds {
		if keep(o) {
			filtered.Odds = append(filtered.Odds, o)
		}
	}
	return filtered
}

// DataSource identifies where a payload came from.
type DataSource string

const (
	SourceOddsAPI DataSource = "odds_api"
	SourceESPN    DataSource = "espn_api"
	SourceGeneric DataSource = "custom"
)

// FetchResult wraps the outcome of one per-sport fetch. Batch callers always
// receive a result value; only configuration and authentication failures
// interrupt a whole batch.
type FetchResult struct {
	Sport     Sport
	Games     []Game
	Err       error
	Source    DataSource
	FetchedAt time.Time
}

// OK reports whether the fetch produced usable data.
func (r FetchResult) OK() bool {
	return r.Err == nil
}
