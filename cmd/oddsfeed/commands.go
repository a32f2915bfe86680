package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/oddsfeed/internal/markets"
	"github.com/yourusername/oddsfeed/internal/models"
	"github.com/yourusername/oddsfeed/internal/oddsmath"
)

var (
	fetchSports   []string
	fetchBetTypes []string
	showBest      bool
)

func init() {
	fetchCmd.Flags().StringSliceVarP(&fetchSports, "sports", "s", []string{"NFL"}, "Sports to fetch (NFL, NBA, MLB, NHL, ...)")
	fetchCmd.Flags().StringSliceVarP(&fetchBetTypes, "bet-types", "b", []string{"moneyline"}, "Bet types to request")
	fetchCmd.Flags().BoolVar(&showBest, "best", false, "Show only the best price per bet type")

	marketsCmd.Flags().StringSliceVarP(&fetchBetTypes, "bet-types", "b", []string{"moneyline", "spread", "totals"}, "Bet types to map")
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch current odds for the given sports",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		sports := parseSports(fetchSports)
		betTypes := parseBetTypes(fetchBetTypes)

		batch, err := oddsSvc.FetchBatch(ctx, sports, betTypes)
		if err != nil {
			return err
		}

		for _, result := range batch.Results {
			if !result.OK() {
				fmt.Printf("\n%s: fetch failed: %v\n", result.Sport, result.Err)
				continue
			}
			fmt.Printf("\n%s (%d games)\n", result.Sport, len(result.Games))
			for i := range result.Games {
				game := &result.Games[i]
				fmt.Printf("  %s\n", oddsmath.FormatGameSummary(game))
				if showBest {
					for betType, odds := range oddsmath.BestPerBetType(game) {
						fmt.Printf("    best %s: %s @ %s\n", betType, oddsmath.FormatOdds(odds), odds.Sportsbook)
					}
				}
			}
		}
		fmt.Printf("\nprovider requests this session: %d\n", oddsClient.RequestCount())
		return nil
	},
}

var marketsCmd = &cobra.Command{
	Use:   "markets [sport]",
	Short: "Show the provider market string for a sport and bet types",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sport := models.SportNFL
		if len(args) == 1 {
			sport = normalizeSport(args[0])
		}

		betTypes := parseBetTypes(fetchBetTypes)
		marketList := markets.ForBetTypes(betTypes, sport)
		fmt.Printf("%s: %s\n", sport, marketList)

		for _, key := range strings.Split(marketList, ",") {
			if entry, ok := markets.Lookup(key); ok {
				fmt.Printf("  %-22s %s\n", key, entry.Display)
			}
		}
		return nil
	},
}

var impliedCmd = &cobra.Command{
	Use:   "implied <odds>...",
	Short: "Convert American odds to implied win probabilities",
	Args:  cobra.MinimumNArgs(1),
	// Pure math, no provider access needed.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		for _, arg := range args {
			prob := oddsmath.ImpliedProbability(arg)
			fmt.Printf("%-8s -> %.2f%%\n", arg, prob)
		}
	},
}

var parlayCmd = &cobra.Command{
	Use:   "parlay <odds>...",
	Short: "Combine American odds legs into a single parlay price",
	Args:  cobra.MinimumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		combined := oddsmath.CombineParlay(args)
		fmt.Printf("%s -> %s (implied %.2f%%)\n",
			strings.Join(args, " + "), combined, oddsmath.ImpliedProbability(combined))
	},
}

var knownSports = []models.Sport{
	models.SportNFL, models.SportNBA, models.SportMLB, models.SportNHL,
	models.SportNCAAF, models.SportNCAAB, models.SportSoccer,
	models.SportPremierLeague, models.SportLaLiga, models.SportChampionsLeague,
	models.SportMMA, models.SportUFC,
}

// normalizeSport matches user input against supported sports without
// case sensitivity; unknown names pass through for downstream rejection.
func normalizeSport(name string) models.Sport {
	trimmed := strings.TrimSpace(name)
	for _, s := range knownSports {
		if strings.EqualFold(trimmed, string(s)) {
			return s
		}
	}
	return models.Sport(trimmed)
}

func parseSports(names []string) []models.Sport {
	sports := make([]models.Sport, 0, len(names))
	for _, name := range names {
		sports = append(sports, normalizeSport(name))
	}
	return sports
}

func parseBetTypes(names []string) []models.BetType {
	betTypes := make([]models.BetType, 0, len(names))
	for _, name := range names {
		betTypes = append(betTypes, models.BetType(strings.ToLower(strings.TrimSpace(name))))
	}
	return betTypes
}
