package oddsmath

import (
	"math"
	"strconv"
	"testing"

	"github.com/yourusername/oddsfeed/internal/models"
)

func TestValue(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"+150", 150.0},
		{"-200", -200.0},
		{"+100", 100.0},
		{"EVEN", 100.0},
		{"EV", 100.0},
		{"even", 100.0},
		{" +120 ", 120.0},
		{"350", 350.0},
		{"garbage", 0.0},
		{"", 0.0},
	}

	for _, tt := range tests {
		if got := Value(tt.input); got != tt.want {
			t.Errorf("Value(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestImpliedProbability(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"+150", 40.0},  // 100/250
		{"-200", 66.67}, // 200/300
		{"+100", 50.0},
		{"EVEN", 50.0},
		{"-110", 52.38},
		{"+250", 28.57},
		{"garbage", 100.0}, // value 0 implies 100/(0+100)
	}

	for _, tt := range tests {
		got := ImpliedProbability(tt.input)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ImpliedProbability(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestImpliedProbabilityFormula(t *testing.T) {
	// Spot-check the formula against a range of values on both sides.
	for _, v := range []int{0, 50, 100, 150, 300, 1200} {
		want := math.Round(100*100/float64(v+100)*100) / 100
		got := ImpliedProbability("+" + strconv.Itoa(v))
		if got != want {
			t.Errorf("positive %d: got %v, want %v", v, got, want)
		}
	}
	for _, v := range []int{-110, -150, -200, -500} {
		abs := float64(-v)
		want := math.Round(abs/(abs+100)*100*100) / 100
		got := ImpliedProbability(strconv.Itoa(v))
		if got != want {
			t.Errorf("negative %d: got %v, want %v", v, got, want)
		}
	}
}

func TestBestOddsMaximize(t *testing.T) {
	odds := []models.Odds{
		{Sportsbook: "DraftKings", Price: "+120"},
		{Sportsbook: "FanDuel", Price: "+150"},
		{Sportsbook: "BetMGM", Price: "+135"},
	}

	best, ok := BestOdds(odds, true)
	if !ok {
		t.Fatal("expected a result")
	}
	if best.Price != "+150" || best.Sportsbook != "FanDuel" {
		t.Errorf("BestOdds maximize picked %+v", best)
	}
}

func TestBestOddsMinimizeAbsolute(t *testing.T) {
	odds := []models.Odds{
		{Sportsbook: "DraftKings", Price: "-150"},
		{Sportsbook: "FanDuel", Price: "-120"},
		{Sportsbook: "BetMGM", Price: "-135"},
	}

	best, ok := BestOdds(odds, false)
	if !ok {
		t.Fatal("expected a result")
	}
	if best.Price != "-120" {
		t.Errorf("BestOdds minimize picked %q, want -120", best.Price)
	}
}

func TestBestOddsEmpty(t *testing.T) {
	if _, ok := BestOdds(nil, true); ok {
		t.Error("empty input must report no odds available, not a value")
	}
}

func TestRange(t *testing.T) {
	odds := []models.Odds{
		{Sportsbook: "A", Price: "-150"},
		{Sportsbook: "B", Price: "+140"},
		{Sportsbook: "C", Price: "-120"},
		{Sportsbook: "D", Price: "+110"},
	}

	best, worst, ok := Range(odds)
	if !ok {
		t.Fatal("expected a result")
	}
	// Range is raw signed max/min, not the sign-aware BestOdds rule.
	if best.Price != "+140" {
		t.Errorf("Range best = %q, want +140", best.Price)
	}
	if worst.Price != "-150" {
		t.Errorf("Range worst = %q, want -150", worst.Price)
	}

	if _, _, ok := Range(nil); ok {
		t.Error("empty input must report no result")
	}
}

func TestToDecimal(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"+150", "2.5", true},
		{"-200", "1.5", true},
		{"+100", "2", true},
		{"-100", "2", true},
		{"-110", "1.9090909090909091", true},
		{"EVEN", "", false}, // parlay legs must be signed integers
		{"abc", "", false},
	}

	for _, tt := range tests {
		d, ok := ToDecimal(tt.input)
		if ok != tt.ok {
			t.Errorf("ToDecimal(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && d.String() != tt.want {
			t.Errorf("ToDecimal(%q) = %s, want %s", tt.input, d.String(), tt.want)
		}
	}
}

func TestCombineParlay(t *testing.T) {
	tests := []struct {
		name string
		legs []string
		want string
	}{
		// 2.5 * 1.5 = 3.75 -> +275
		{"two legs", []string{"+150", "-200"}, "+275"},
		// Empty input is the neutral default.
		{"empty", nil, "+100"},
		{"all unparseable", []string{"EVEN", "junk"}, "+100"},
		// Bad legs skipped silently, valid legs still combine.
		{"mixed validity", []string{"+150", "junk", "-200"}, "+275"},
		// Single positive leg round-trips.
		{"single plus", []string{"+300"}, "+300"},
		// 1.9090... * 1.9090... = 3.644..  -> +264
		{"two favorites to plus money", []string{"-110", "-110"}, "+264"},
		// Single short favorite stays negative: decimal 1.5 -> -200.
		{"single favorite", []string{"-200"}, "-200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CombineParlay(tt.legs); got != tt.want {
				t.Errorf("CombineParlay(%v) = %q, want %q", tt.legs, got, tt.want)
			}
		})
	}
}
