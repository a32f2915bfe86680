// Package service orchestrates odds retrieval across data sources and
// attaches secondary team statistics to primary games.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/oddsfeed/internal/espn"
	applogger "github.com/yourusername/oddsfeed/internal/logger"
	"github.com/yourusername/oddsfeed/internal/metrics"
	"github.com/yourusername/oddsfeed/internal/models"
	"github.com/yourusername/oddsfeed/internal/oddsapi"
)

// OddsFetcher is the primary-source surface the service depends on.
type OddsFetcher interface {
	GetGames(ctx context.Context, sport models.Sport, betTypes []models.BetType) ([]models.Game, error)
}

// StatsFetcher is the secondary-source surface providing team records.
type StatsFetcher interface {
	GetGames(ctx context.Context, sport models.Sport) ([]models.Game, error)
}

// Archiver persists fetched odds snapshots. Optional; a nil archiver
// disables write-through.
type Archiver interface {
	ArchiveBatch(ctx context.Context, batchID uuid.UUID, games []models.Game) error
}

// OddsService combines the primary odds gateway with the secondary stats
// client and optionally archives each batch.
type OddsService struct {
	odds     OddsFetcher
	stats    StatsFetcher
	archiver Archiver
	logger   *logrus.Logger
	fetchLog *applogger.FetchLogger
}

// New creates the service. stats and archiver may be nil, disabling
// enrichment and write-through respectively.
func New(odds OddsFetcher, stats StatsFetcher, archiver Archiver, logger *logrus.Logger) *OddsService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &OddsService{
		odds:     odds,
		stats:    stats,
		archiver: archiver,
		logger:   logger,
		fetchLog: applogger.NewFetchLogger(logger),
	}
}

// Batch is one completed multi-sport fetch.
type Batch struct {
	ID        uuid.UUID
	FetchedAt time.Time
	Results   []models.FetchResult
}

// Games flattens the batch into a single slice.
func (b Batch) Games() []models.Game {
	var all []models.Game
	for _, r := range b.Results {
		all = append(all, r.Games...)
	}
	return all
}

// FetchBatch retrieves games for every requested sport, enriches them with
// team statistics where the secondary source covers the sport, and archives
// the batch when an archiver is configured. Per-sport failures surface as
// failed results; only fatal gateway errors abort the batch.
func (s *OddsService) FetchBatch(ctx context.Context, sports []models.Sport, betTypes []models.BetType) (Batch, error) {
	batch := Batch{ID: uuid.New(), FetchedAt: time.Now().UTC()}
	start := time.Now()
	s.fetchLog.LogBatchStart(batch.ID.String(), sportNames(sports), betTypeNames(betTypes))

	total := 0
	for _, sport := range sports {
		games, err := s.odds.GetGames(ctx, sport, betTypes)
		if err != nil {
			if IsFatal(err) {
				return Batch{}, err
			}
			s.fetchLog.LogSportFailure(batch.ID.String(), string(sport), err)
			batch.Results = append(batch.Results, models.FetchResult{
				Sport:     sport,
				Games:     []models.Game{},
				Source:    models.SourceOddsAPI,
				FetchedAt: batch.FetchedAt,
				Err:       err,
			})
			continue
		}
		games = s.EnrichWithTeamStats(ctx, sport, games)
		batch.Results = append(batch.Results, models.FetchResult{
			Sport:     sport,
			Games:     games,
			Source:    models.SourceOddsAPI,
			FetchedAt: batch.FetchedAt,
		})
		total += len(games)
	}
	metrics.GamesFetched.Set(float64(total))
	s.fetchLog.LogBatchComplete(batch.ID.String(), total, time.Since(start), s.requestCount())

	if s.archiver != nil {
		if err := s.archiver.ArchiveBatch(ctx, batch.ID, batch.Games()); err != nil {
			// Fetched data is still good; archival is best-effort.
			s.logger.WithField("batch_id", batch.ID).WithError(err).Error("failed to archive batch")
		} else {
			metrics.SnapshotsArchivedTotal.Add(float64(total))
		}
	}
	return batch, nil
}

// FetchSport retrieves and enriches games for a single sport.
func (s *OddsService) FetchSport(ctx context.Context, sport models.Sport, betTypes []models.BetType) ([]models.Game, error) {
	games, err := s.odds.GetGames(ctx, sport, betTypes)
	if err != nil {
		return nil, err
	}
	return s.EnrichWithTeamStats(ctx, sport, games), nil
}

// EnrichWithTeamStats joins secondary team stats onto primary games by sport
// plus both team names. The input slice is never modified; enriched games
// come back as copies. Stats failures never fail a fetch.
func (s *OddsService) EnrichWithTeamStats(ctx context.Context, sport models.Sport, games []models.Game) []models.Game {
	if s.stats == nil || len(games) == 0 {
		return games
	}
	if _, ok := espn.SportPath(sport); !ok {
		return games
	}

	statsGames, err := s.stats.GetGames(ctx, sport)
	if err != nil {
		s.logger.WithField("sport", sport).WithError(err).Warn("team stats unavailable")
		return games
	}

	type matchup struct {
		home, away string
	}
	index := make(map[matchup]models.Game, len(statsGames))
	for _, sg := range statsGames {
		index[matchup{sg.HomeTeam, sg.AwayTeam}] = sg
	}

	out := make([]models.Game, len(games))
	copy(out, games)

	enriched := 0
	for i := range out {
		sg, ok := index[matchup{out[i].HomeTeam, out[i].AwayTeam}]
		if !ok {
			continue
		}
		if out[i].HomeStats == nil {
			out[i].HomeStats = sg.HomeStats
		}
		if out[i].AwayStats == nil {
			out[i].AwayStats = sg.AwayStats
		}
		enriched++
	}
	s.logger.WithFields(logrus.Fields{
		"sport":    sport,
		"enriched": enriched,
		"games":    len(out),
	}).Debug("team stats enrichment")
	return out
}

// requestCount reports the gateway's physical call count when the fetcher
// exposes one.
func (s *OddsService) requestCount() int {
	if counter, ok := s.odds.(interface{ RequestCount() int }); ok {
		return counter.RequestCount()
	}
	return 0
}

func sportNames(sports []models.Sport) []string {
	names := make([]string, len(sports))
	for i, sport := range sports {
		names[i] = string(sport)
	}
	return names
}

func betTypeNames(betTypes []models.BetType) []string {
	names := make([]string, len(betTypes))
	for i, bt := range betTypes {
		names[i] = string(bt)
	}
	return names
}

// IsFatal reports whether a batch error is a configuration or credential
// problem that retrying cannot fix.
func IsFatal(err error) bool {
	return oddsapi.IsFatal(err)
}
