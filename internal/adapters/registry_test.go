package adapters

import (
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/oddsfeed/internal/models"
)

func TestRegistryResolvesBuiltins(t *testing.T) {
	registry := NewRegistry(testLogger())

	tests := []struct {
		sourceType string
		wantName   string
	}{
		{"odds_api", "odds_api"},
		{"ODDS_API", "odds_api"}, // lookups are case-insensitive
		{"espn_api", "espn_api"},
		{" custom ", "custom"},
	}

	for _, tt := range tests {
		adapter := registry.Get(tt.sourceType)
		if adapter == nil {
			t.Fatalf("Get(%q) returned nil", tt.sourceType)
		}
		if adapter.Name() != tt.wantName {
			t.Errorf("Get(%q).Name() = %q, want %q", tt.sourceType, adapter.Name(), tt.wantName)
		}
	}
}

func TestRegistryUnknownFallsBackToGeneric(t *testing.T) {
	registry := NewRegistry(testLogger())

	adapter := registry.Get("somebody_elses_api")
	if _, ok := adapter.(*GenericAdapter); !ok {
		t.Fatalf("expected generic adapter fallback, got %T", adapter)
	}

	games, err := adapter.AdaptToGames(json.RawMessage(`{}`), models.SportNFL)
	if err != nil {
		t.Fatalf("generic adapter must not fail: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("generic adapter must return an empty result, got %d games", len(games))
	}
}

type fakeAdapter struct{}

func (fakeAdapter) Name() string { return "fake" }
func (fakeAdapter) AdaptToGames(raw json.RawMessage, sport models.Sport) ([]models.Game, error) {
	return []models.Game{{Sport: sport, HomeTeam: "H", AwayTeam: "A"}}, nil
}

func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry(testLogger())

	err := registry.Register("fake", func(*logrus.Logger) SourceAdapter { return fakeAdapter{} })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	adapter := registry.Get("FAKE")
	games, err := adapter.AdaptToGames(nil, models.SportMLB)
	if err != nil || len(games) != 1 {
		t.Errorf("registered adapter not used: games=%v err=%v", games, err)
	}
}

func TestRegistryKnown(t *testing.T) {
	registry := NewRegistry(testLogger())

	if err := registry.Register("fake", func(*logrus.Logger) SourceAdapter { return fakeAdapter{} }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := registry.Known()
	want := []string{"custom", "espn_api", "fake", "odds_api"}
	if len(got) != len(want) {
		t.Fatalf("Known() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Known()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistryRegisterRejectsBadConstructors(t *testing.T) {
	registry := NewRegistry(testLogger())

	if err := registry.Register("", func(*logrus.Logger) SourceAdapter { return fakeAdapter{} }); err == nil {
		t.Error("expected error for empty name")
	}
	if err := registry.Register("nil_ctor", nil); err == nil {
		t.Error("expected error for nil constructor")
	}
	if err := registry.Register("nil_adapter", func(*logrus.Logger) SourceAdapter { return nil }); err == nil {
		t.Error("expected error for constructor producing nil")
	}
}
