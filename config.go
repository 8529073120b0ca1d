package depot

import (
	"errors"
	"io/fs"
	"math"
	"os"

	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPageSize        = 1000
	DefaultInitialCapacity = 100
	DefaultMaxEntities     = math.MaxUint64
	DefaultLogLevel        = "info"
)

// Config holds the fixed ceilings of a storage. MaxComponents is not part of
// it: slots are process-wide, so that ceiling is a compile-time constant.
type Config struct {
	// MaxEntities caps the number of ids ever handed out at once.
	MaxEntities uint64 `yaml:"max_entities" config:"DEPOT_MAX_ENTITIES"`
	// PageSize is the number of ids covered by one sparse page.
	PageSize int `yaml:"page_size" config:"DEPOT_PAGE_SIZE"`
	// InitialCapacity is the dense capacity reserved per store.
	InitialCapacity int    `yaml:"initial_capacity" config:"DEPOT_INITIAL_CAPACITY"`
	LogLevel        string `yaml:"log_level" config:"DEPOT_LOG_LEVEL"`
}

func DefaultConfig() Config {
	return Config{
		MaxEntities:     DefaultMaxEntities,
		PageSize:        DefaultPageSize,
		InitialCapacity: DefaultInitialCapacity,
		LogLevel:        DefaultLogLevel,
	}
}

// LoadConfig starts from the defaults, overlays the YAML file at path if one
// is given and exists, then overlays DEPOT_* environment variables.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, eris.Wrapf(err, "reading config %s", path)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, eris.Wrapf(err, "parsing config %s", path)
			}
		}
	}

	if err := config.FromEnv().To(&cfg); err != nil {
		return Config{}, eris.Wrap(err, "reading config from environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxEntities == 0 {
		return eris.New("max_entities must be positive")
	}
	if c.PageSize <= 0 {
		return eris.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.InitialCapacity < 0 {
		return eris.Errorf("initial_capacity must not be negative, got %d", c.InitialCapacity)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return eris.Wrapf(err, "invalid log_level %q", c.LogLevel)
	}
	return nil
}

func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Option configures a storage built by Factory.NewStorage.
type Option func(*storage)

// WithConfig replaces the default ceilings. Non-positive sizes fall back to
// their defaults.
func WithConfig(cfg Config) Option {
	return func(sto *storage) {
		if cfg.MaxEntities == 0 {
			cfg.MaxEntities = DefaultMaxEntities
		}
		if cfg.PageSize <= 0 {
			cfg.PageSize = DefaultPageSize
		}
		if cfg.InitialCapacity < 0 {
			cfg.InitialCapacity = DefaultInitialCapacity
		}
		sto.cfg = cfg
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(sto *storage) {
		sto.logger = logger
	}
}
