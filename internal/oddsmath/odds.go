// Package oddsmath implements numeric operations over American-format odds:
// parsing, implied probability, best-price selection, and parlay combination.
package oddsmath

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/oddsfeed/internal/models"
)

// EvenMoney is the neutral American odds string, also the parlay default.
const EvenMoney = "+100"

// Value converts an American odds string to its numeric value for
// comparison. "EVEN" and "EV" are even money (100); a leading "+" is
// stripped. Unparseable input yields 0 with a logged warning, never an
// error.
func Value(odds string) float64 {
	s := strings.ToUpper(strings.TrimSpace(odds))
	if s == "EVEN" || s == "EV" {
		return 100.0
	}

	s = strings.ReplaceAll(s, "+", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		logrus.WithField("odds", odds).Warn("invalid odds format")
		return 0.0
	}
	return v
}

// ImpliedProbability returns the implied win probability of an American
// odds string as a percentage rounded to two decimals.
//
// Positive odds: 100 / (v + 100). Negative odds: |v| / (|v| + 100).
func ImpliedProbability(odds string) float64 {
	v := Value(odds)

	var p float64
	if v >= 0 {
		p = 100 / (v + 100) * 100
	} else {
		p = math.Abs(v) / (math.Abs(v) + 100) * 100
	}
	return math.Round(p*100) / 100
}

// BestOdds selects the best entry from a list. With maximize true the
// greatest numeric value wins (positive-odds comparison, +150 beats +120);
// with maximize false the smallest absolute value wins (negative-odds
// comparison, -120 beats -150). The second return is false when the list
// is empty: no odds available is a result, not an error.
func BestOdds(odds []models.Odds, maximize bool) (models.Odds, bool) {
	if len(odds) == 0 {
		return models.Odds{}, false
	}

	best := odds[0]
	bestVal := Value(best.Price)
	for _, o := range odds[1:] {
		v := Value(o.Price)
		if maximize {
			if v > bestVal {
				best, bestVal = o, v
			}
		} else if math.Abs(v) < math.Abs(bestVal) {
			best, bestVal = o, v
		}
	}
	return best, true
}

// Range returns the extremes of a list by raw signed value: best is the
// maximum, worst the minimum. This is deliberately a different selection
// rule from BestOdds, which is sign-aware; call sites comparing a whole
// market want the signed spread, not the cheapest price.
func Range(odds []models.Odds) (best, worst models.Odds, ok bool) {
	if len(odds) == 0 {
		return models.Odds{}, models.Odds{}, false
	}

	best, worst = odds[0], odds[0]
	bestVal := Value(best.Price)
	worstVal := bestVal
	for _, o := range odds[1:] {
		v := Value(o.Price)
		if v > bestVal {
			best, bestVal = o, v
		}
		if v < worstVal {
			worst, worstVal = o, v
		}
	}
	return best, worst, true
}

// ToDecimal converts one American odds string to decimal (multiplicative)
// odds. Only signed integer strings are accepted here; the reported bool is
// false for anything else.
func ToDecimal(odds string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(odds), "+"))
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return decimal.Decimal{}, false
	}

	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)
	if v >= 0 {
		return one.Add(decimal.NewFromInt(v).Div(hundred)), true
	}
	return one.Add(hundred.Div(decimal.NewFromInt(-v))), true
}

// CombineParlay combines the legs of a parlay into a single American odds
// string: each leg is converted to decimal odds, the decimals are
// multiplied, and the product is converted back. Legs that fail to parse
// are skipped; an empty or all-unparseable input yields EvenMoney.
func CombineParlay(legs []string) string {
	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)

	combined := one
	parsed := 0
	for _, leg := range legs {
		d, ok := ToDecimal(leg)
		if !ok {
			logrus.WithField("odds", leg).Warn("invalid parlay leg, skipping")
			continue
		}
		combined = combined.Mul(d)
		parsed++
	}

	if parsed == 0 || combined.LessThanOrEqual(one) {
		return EvenMoney
	}

	if combined.GreaterThanOrEqual(decimal.NewFromInt(2)) {
		american := combined.Sub(one).Mul(hundred).Round(0).IntPart()
		return fmt.Sprintf("+%d", american)
	}
	american := hundred.Neg().Div(combined.Sub(one)).Round(0).IntPart()
	return strconv.FormatInt(american, 10)
}
