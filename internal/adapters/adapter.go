// Package adapters normalizes provider payloads into the canonical game
// model. Each source format has its own adapter; a registry resolves a
// source-type string to an adapter and stays open for runtime registration.
package adapters

import (
	"encoding/json"

	"github.com/yourusername/oddsfeed/internal/models"
)

// SourceAdapter converts one provider's raw payload into canonical games.
// A malformed individual record is logged and skipped, never fatal to the
// batch; the returned error covers payload-level failures only (the payload
// is not the shape this adapter reads at all).
type SourceAdapter interface {
	AdaptToGames(raw json.RawMessage, sport models.Sport) ([]models.Game, error)

	// Name returns the source-type identifier this adapter handles.
	Name() string
}
