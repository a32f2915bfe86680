// Package repository persists fetched odds snapshots to the archive database.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/oddsfeed/internal/database"
	"github.com/yourusername/oddsfeed/internal/models"
)

// Snapshot is one archived odds row: a single sportsbook price for a game
// at capture time.
type Snapshot struct {
	BatchID    uuid.UUID
	Sport      models.Sport
	HomeTeam   string
	AwayTeam   string
	StartTime  *time.Time
	Sportsbook string
	BetType    models.BetType
	Price      string
	Line       string
	Format     models.OddsFormat
	CapturedAt time.Time
}

// OddsRepository is the archive surface used by the service layer.
type OddsRepository interface {
	ArchiveBatch(ctx context.Context, batchID uuid.UUID, games []models.Game) error
	GetRecent(ctx context.Context, sport models.Sport, since time.Time) ([]Snapshot, error)
	GetByBatch(ctx context.Context, batchID uuid.UUID) ([]Snapshot, error)
}

// PostgresOddsRepository implements OddsRepository for PostgreSQL
type PostgresOddsRepository struct {
	db *database.DB
}

// NewPostgresOddsRepository creates a new odds repository
func NewPostgresOddsRepository(db *database.DB) OddsRepository {
	return &PostgresOddsRepository{db: db}
}

var snapshotColumns = []string{
	"batch_id", "sport", "home_team", "away_team", "start_time",
	"sportsbook", "bet_type", "price", "line", "odds_format", "captured_at",
}

// snapshotRows flattens games into COPY rows, one per sportsbook price.
// Games without odds produce no rows.
func snapshotRows(batchID uuid.UUID, games []models.Game) [][]interface{} {
	var rows [][]interface{}
	for _, game := range games {
		for _, odds := range game.Odds {
			rows = append(rows, []interface{}{
				batchID, string(game.Sport), game.HomeTeam, game.AwayTeam, game.StartTime,
				odds.Sportsbook, string(odds.BetType), odds.Price, odds.Line,
				string(odds.Format), odds.CapturedAt,
			})
		}
	}
	return rows
}

// ArchiveBatch flattens games into snapshot rows and bulk inserts them
// using COPY.
func (r *PostgresOddsRepository) ArchiveBatch(ctx context.Context, batchID uuid.UUID, games []models.Game) error {
	rows := snapshotRows(batchID, games)
	if len(rows) == 0 {
		return nil
	}

	count, err := r.db.GetPool().CopyFrom(ctx,
		pgx.Identifier{"odds_snapshots"}, snapshotColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to batch insert odds snapshots: %w", err)
	}
	if count != int64(len(rows)) {
		return fmt.Errorf("inserted %d rows, expected %d", count, len(rows))
	}

	return nil
}

const snapshotSelect = `
	SELECT batch_id, sport, home_team, away_team, start_time,
	       sportsbook, bet_type, price, line, odds_format, captured_at
	FROM odds_snapshots
`

// GetRecent retrieves snapshots for a sport captured at or after since.
func (r *PostgresOddsRepository) GetRecent(ctx context.Context, sport models.Sport, since time.Time) ([]Snapshot, error) {
	query := snapshotSelect + `WHERE sport = $1 AND captured_at >= $2 ORDER BY captured_at ASC`

	rows, err := r.db.GetPool().Query(ctx, query, string(sport), since)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent snapshots: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

// GetByBatch retrieves every snapshot archived under one batch ID.
func (r *PostgresOddsRepository) GetByBatch(ctx context.Context, batchID uuid.UUID) ([]Snapshot, error) {
	query := snapshotSelect + `WHERE batch_id = $1 ORDER BY sport, home_team, away_team`

	rows, err := r.db.GetPool().Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query batch snapshots: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

func scanSnapshots(rows pgx.Rows) ([]Snapshot, error) {
	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		var sport, betType, format string
		err := rows.Scan(
			&s.BatchID, &sport, &s.HomeTeam, &s.AwayTeam, &s.StartTime,
			&s.Sportsbook, &betType, &s.Price, &s.Line, &format, &s.CapturedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		s.Sport = models.Sport(sport)
		s.BetType = models.BetType(betType)
		s.Format = models.OddsFormat(format)
		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}
