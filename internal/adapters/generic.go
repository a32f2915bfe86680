package adapters

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/oddsfeed/internal/models"
)

// GenericAdapter is the extension point for bespoke provider formats. It
// holds a field-mapping configuration (our field name -> provider field
// path) but the mapping engine itself is not implemented yet: AdaptToGames
// always returns an empty result. Callers must not rely on it performing
// mapping until that engine exists.
type GenericAdapter struct {
	mapping map[string]string
	logger  *logrus.Logger
}

// NewGenericAdapter creates a generic adapter with the given field mapping.
func NewGenericAdapter(mapping map[string]string, logger *logrus.Logger) *GenericAdapter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &GenericAdapter{mapping: mapping, logger: logger}
}

// Name returns the source-type identifier.
func (a *GenericAdapter) Name() string {
	return string(models.SourceGeneric)
}

// Mapping returns the configured field mapping.
func (a *GenericAdapter) Mapping() map[string]string {
	return a.mapping
}

// AdaptToGames returns an empty result: the configurable mapping engine is
// not implemented.
func (a *GenericAdapter) AdaptToGames(raw json.RawMessage, sport models.Sport) ([]models.Game, error) {
	a.logger.WithField("sport", sport).
		Warn("generic adapter has no mapping engine, returning no games")
	return []models.Game{}, nil
}
