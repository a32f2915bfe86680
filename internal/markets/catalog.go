// Package markets maintains the catalog mapping canonical bet types to the
// odds aggregator's market keys, including per-sport market validity.
package markets

import (
	"strings"

	"github.com/yourusername/oddsfeed/internal/models"
)

// DefaultMarkets is the universal fallback market string used when a request
// resolves to no explicit markets.
const DefaultMarkets = "h2h,spreads,totals"

// Entry describes one provider market.
type Entry struct {
	Key      string
	BetType  models.BetType
	Display  string
	Category string
}

// Catalog entries are fixed at startup. The provider adds markets over time;
// keys not listed here still resolve through the fail-open validity rules
// and the moneyline bet-type fallback.
var entries = []Entry{
	{Key: "h2h", BetType: models.BetMoneyline, Display: "Moneyline", Category: "featured"},
	{Key: "spreads", BetType: models.BetSpread, Display: "Point Spread", Category: "featured"},
	{Key: "totals", BetType: models.BetTotals, Display: "Totals (Over/Under)", Category: "featured"},
	{Key: "outrights", BetType: models.BetFutures, Display: "Outright Winner", Category: "futures"},

	{Key: "alternate_spreads", BetType: models.BetSpread, Display: "Alternate Spreads", Category: "alternate"},
	{Key: "alternate_totals", BetType: models.BetTotals, Display: "Alternate Totals", Category: "alternate"},

	{Key: "h2h_3_way", BetType: models.BetMoneyline, Display: "3-Way Moneyline", Category: "soccer"},
	{Key: "btts", BetType: models.BetProp, Display: "Both Teams To Score", Category: "soccer"},
	{Key: "draw_no_bet", BetType: models.BetMoneyline, Display: "Draw No Bet", Category: "soccer"},

	{Key: "h2h_q1", BetType: models.BetMoneyline, Display: "1st Quarter Moneyline", Category: "quarters"},
	{Key: "spreads_q1", BetType: models.BetSpread, Display: "1st Quarter Spread", Category: "quarters"},
	{Key: "totals_q1", BetType: models.BetTotals, Display: "1st Quarter Totals", Category: "quarters"},

	{Key: "h2h_h1", BetType: models.BetMoneyline, Display: "1st Half Moneyline", Category: "halves"},
	{Key: "spreads_h1", BetType: models.BetSpread, Display: "1st Half Spread", Category: "halves"},
	{Key: "totals_h1", BetType: models.BetTotals, Display: "1st Half Totals", Category: "halves"},

	{Key: "h2h_p1", BetType: models.BetMoneyline, Display: "1st Period Moneyline", Category: "periods"},
	{Key: "spreads_p1", BetType: models.BetSpread, Display: "1st Period Spread", Category: "periods"},
	{Key: "totals_p1", BetType: models.BetTotals, Display: "1st Period Totals", Category: "periods"},

	{Key: "totals_1st_5_innings", BetType: models.BetTotals, Display: "1st 5 Innings Totals", Category: "innings"},
	{Key: "spreads_1st_5_innings", BetType: models.BetSpread, Display: "1st 5 Innings Run Line", Category: "innings"},
	{Key: "h2h_1st_5_innings", BetType: models.BetMoneyline, Display: "1st 5 Innings Moneyline", Category: "innings"},

	{Key: "player_pass_tds", BetType: models.BetProp, Display: "Passing Touchdowns", Category: "props"},
	{Key: "player_pass_yds", BetType: models.BetProp, Display: "Passing Yards", Category: "props"},
	{Key: "player_rush_yds", BetType: models.BetProp, Display: "Rushing Yards", Category: "props"},
	{Key: "player_points", BetType: models.BetProp, Display: "Player Points", Category: "props"},
	{Key: "player_rebounds", BetType: models.BetProp, Display: "Player Rebounds", Category: "props"},
	{Key: "player_assists", BetType: models.BetProp, Display: "Player Assists", Category: "props"},
	{Key: "batter_home_runs", BetType: models.BetProp, Display: "Batter Home Runs", Category: "props"},
	{Key: "pitcher_strikeouts", BetType: models.BetProp, Display: "Pitcher Strikeouts", Category: "props"},
	{Key: "player_goal_scorer_anytime", BetType: models.BetProp, Display: "Anytime Goal Scorer", Category: "props"},
	{Key: "player_shots_on_goal", BetType: models.BetProp, Display: "Shots On Goal", Category: "props"},
}

var byKey = func() map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.Key] = e
	}
	return m
}()

// Bet types that only exist client-side: either composed of other selections
// (parlay, teaser) or aliases of real markets (live, over_under). They never
// map to a provider market.
var clientSideOnly = map[models.BetType]bool{
	models.BetParlay:    true,
	models.BetTeaser:    true,
	models.BetLive:      true,
	models.BetOverUnder: true,
}

// Canonical bet type to the single provider key requested for it. Prop and
// futures bet types fan out to many keys and have no single mapping.
var betTypeKeys = map[models.BetType]string{
	models.BetMoneyline: "h2h",
	models.BetSpread:    "spreads",
	models.BetTotals:    "totals",
	models.BetFutures:   "outrights",
}

// KeyFor returns the provider market key requested for a bet type, if any.
func KeyFor(bt models.BetType) (string, bool) {
	key, ok := betTypeKeys[bt]
	return key, ok
}

// BetTypeFor maps a provider market key back to a canonical bet type.
// Unrecognized keys default to moneyline so a new provider market never
// fails normalization.
func BetTypeFor(key string) models.BetType {
	if e, ok := byKey[key]; ok {
		return e.BetType
	}
	return models.BetMoneyline
}

// Lookup returns the catalog entry for a provider key.
func Lookup(key string) (Entry, bool) {
	e, ok := byKey[key]
	return e, ok
}

// Entries returns the full catalog, in declaration order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// validityRule classifies one band of market keys. Rules are evaluated top
// to bottom and the first match wins; the ordering is load-bearing because
// broad rules (basics, alternates) intentionally shadow the narrower
// segment rules below them.
type validityRule struct {
	matches func(key string) bool
	valid   func(sport models.Sport) bool
}

func anySport(models.Sport) bool { return true }

var validityRules = []validityRule{
	// Universal basic markets.
	{
		matches: func(key string) bool {
			return key == "h2h" || key == "spreads" || key == "totals"
		},
		valid: anySport,
	},
	// Alternate lines exist wherever the base market exists.
	{
		matches: func(key string) bool { return strings.HasPrefix(key, "alternate_") },
		valid:   anySport,
	},
	// Soccer-only markets.
	{
		matches: func(key string) bool {
			return key == "h2h_3_way" || key == "btts" || key == "draw_no_bet"
		},
		valid: func(s models.Sport) bool { return s.IsSoccer() },
	},
	// Quarter segments: football and basketball.
	{
		matches: hasSegmentSuffix("_q1", "_q2", "_q3", "_q4"),
		valid: func(s models.Sport) bool {
			return s.IsFootball() || s.IsBasketball()
		},
	},
	// Half segments: every sport with halves, which is everything but soccer
	// (a soccer half is quoted as its own 3-way market).
	{
		matches: hasSegmentSuffix("_h1", "_h2"),
		valid:   func(s models.Sport) bool { return !s.IsSoccer() },
	},
	// Period segments: hockey.
	{
		matches: hasSegmentSuffix("_p1", "_p2", "_p3"),
		valid:   func(s models.Sport) bool { return s == models.SportNHL },
	},
	// Inning segments: baseball.
	{
		matches: func(key string) bool { return strings.Contains(key, "_innings") },
		valid:   func(s models.Sport) bool { return s == models.SportMLB },
	},
	// Football player props.
	{
		matches: hasAnyPrefix("player_pass_", "player_rush_", "player_reception"),
		valid:   func(s models.Sport) bool { return s.IsFootball() },
	},
	// Basketball player props.
	{
		matches: func(key string) bool {
			switch key {
			case "player_points", "player_rebounds", "player_assists", "player_threes":
				return true
			}
			return false
		},
		valid: func(s models.Sport) bool { return s.IsBasketball() },
	},
	// Baseball player props.
	{
		matches: hasAnyPrefix("batter_", "pitcher_"),
		valid:   func(s models.Sport) bool { return s == models.SportMLB },
	},
	// Hockey player props.
	{
		matches: hasAnyPrefix("player_goal_scorer", "player_shots_on_goal"),
		valid:   func(s models.Sport) bool { return s == models.SportNHL },
	},
}

func hasSegmentSuffix(suffixes ...string) func(string) bool {
	return func(key string) bool {
		for _, suf := range suffixes {
			if strings.HasSuffix(key, suf) {
				return true
			}
		}
		return false
	}
}

func hasAnyPrefix(prefixes ...string) func(string) bool {
	return func(key string) bool {
		for _, pre := range prefixes {
			if strings.HasPrefix(key, pre) {
				return true
			}
		}
		return false
	}
}

// IsValidForSport reports whether a provider market key applies to a sport.
// Unrecognized keys are valid by default: the provider catalog grows faster
// than this table, and requesting an inapplicable market is harmless while
// silently dropping a real one is not.
func IsValidForSport(key string, sport models.Sport) bool {
	for _, rule := range validityRules {
		if rule.matches(key) {
			return rule.valid(sport)
		}
	}
	return true
}

// ForBetTypes builds the comma-joined provider market string for a request.
// Client-side-only bet types are filtered out before mapping, keys invalid
// for the sport are dropped, duplicates keep their first-seen position, and
// an empty result falls back to DefaultMarkets.
func ForBetTypes(betTypes []models.BetType, sport models.Sport) string {
	var keys []string
	seen := make(map[string]bool)

	for _, bt := range betTypes {
		if clientSideOnly[bt] {
			continue
		}
		key, ok := KeyFor(bt)
		if !ok {
			continue
		}
		if !IsValidForSport(key, sport) {
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}

	if len(keys) == 0 {
		return DefaultMarkets
	}
	return strings.Join(keys, ",")
}
