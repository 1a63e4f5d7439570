package games

import (
	_ "embed"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/osse101/SlotHouse_Go/internal/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Game pairs a catalog configuration with its engine
type Game struct {
	Config domain.GameConfig
	Engine Engine
}

// Registry resolves game identifiers. Read-only once built.
type Registry struct {
	games map[domain.GameID]*Game
	order []domain.GameID
}

type catalogFile struct {
	Games []catalogEntry `yaml:"games"`
}

type catalogEntry struct {
	domain.GameConfig `yaml:",inline"`
	RTP               string `yaml:"rtp"`
}

// DefaultEngines returns the compiled engines of every supported game
func DefaultEngines() []Engine {
	return []Engine{Classic{}, Cyber{}, Ancient{}}
}

// NewRegistry builds the registry from the embedded catalog and the default engines
func NewRegistry() (*Registry, error) {
	return LoadRegistry(defaultCatalog, DefaultEngines()...)
}

// LoadRegistry parses a YAML catalog and binds every entry to its engine
func LoadRegistry(catalog []byte, engines ...Engine) (*Registry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(catalog, &file); err != nil {
		return nil, fmt.Errorf("failed to parse game catalog: %w", err)
	}
	if len(file.Games) == 0 {
		return nil, fmt.Errorf("game catalog is empty")
	}

	byID := make(map[domain.GameID]Engine, len(engines))
	for _, e := range engines {
		byID[e.ID()] = e
	}

	r := &Registry{games: make(map[domain.GameID]*Game, len(file.Games))}
	for _, entry := range file.Games {
		cfg := entry.GameConfig
		cfg.ID = domain.ParseGameID(string(cfg.ID))

		rtp, err := decimal.NewFromString(entry.RTP)
		if err != nil {
			return nil, fmt.Errorf("game %s: invalid rtp %q: %w", cfg.ID, entry.RTP, err)
		}
		cfg.RTP = rtp

		engine, ok := byID[cfg.ID]
		if !ok {
			return nil, fmt.Errorf("game %s: no engine registered", cfg.ID)
		}
		if err := validateConfig(cfg, engine); err != nil {
			return nil, fmt.Errorf("game %s: %w", cfg.ID, err)
		}
		if _, dup := r.games[cfg.ID]; dup {
			return nil, fmt.Errorf("game %s: duplicate catalog entry", cfg.ID)
		}

		r.games[cfg.ID] = &Game{Config: cfg, Engine: engine}
		r.order = append(r.order, cfg.ID)
	}

	return r, nil
}

func validateConfig(cfg domain.GameConfig, engine Engine) error {
	if cfg.DisplayName == "" {
		return fmt.Errorf("display name is required")
	}
	if cfg.ReelCount != engine.ReelCount() {
		return fmt.Errorf("reel count %d does not match engine (%d)", cfg.ReelCount, engine.ReelCount())
	}
	if !slices.Equal(cfg.Symbols, engine.Symbols()) {
		return fmt.Errorf("symbol set %v does not match engine %v", cfg.Symbols, engine.Symbols())
	}
	if cfg.MinBet <= 0 || cfg.MaxBet < cfg.MinBet {
		return fmt.Errorf("invalid bet bounds [%d, %d]", cfg.MinBet, cfg.MaxBet)
	}
	switch cfg.Volatility {
	case domain.VolatilityLow, domain.VolatilityMedium, domain.VolatilityHigh:
	default:
		return fmt.Errorf("unknown volatility %q", cfg.Volatility)
	}
	if !cfg.RTP.IsPositive() || cfg.RTP.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("rtp %s out of range (0, 1]", cfg.RTP)
	}
	return nil
}

// Resolve returns the game for id, matched case-insensitively
func (r *Registry) Resolve(id string) (*Game, error) {
	g, ok := r.games[domain.ParseGameID(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownGame, id)
	}
	return g, nil
}

// Config returns a copy of the configuration for id
func (r *Registry) Config(id string) (domain.GameConfig, error) {
	g, err := r.Resolve(id)
	if err != nil {
		return domain.GameConfig{}, err
	}
	return g.Config.Clone(), nil
}

// List returns copies of every configuration in catalog order
func (r *Registry) List() []domain.GameConfig {
	out := make([]domain.GameConfig, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.games[id].Config.Clone())
	}
	return out
}
