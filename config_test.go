package depot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "depot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
max_entities: 5000
page_size: 256
log_level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(5000), cfg.MaxEntities)
	assert.Equal(t, 256, cfg.PageSize)
	assert.Equal(t, DefaultInitialCapacity, cfg.InitialCapacity)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "page_size: 256\n")
	t.Setenv("DEPOT_PAGE_SIZE", "64")
	t.Setenv("DEPOT_LOG_LEVEL", "warn")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.PageSize)
	assert.Equal(t, zerolog.WarnLevel, cfg.Level())
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"Malformed yaml", "page_size: [1, 2\n"},
		{"Zero page size", "page_size: 0\n"},
		{"Negative capacity", "initial_capacity: -1\n"},
		{"Zero entities", "max_entities: 0\n"},
		{"Unknown level", "log_level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.contents))
			assert.Error(t, err)
		})
	}
}

func TestWithConfigSanitizes(t *testing.T) {
	sto := Factory.NewStorage(WithConfig(Config{PageSize: -3, InitialCapacity: -1}))
	cfg := sto.internal().cfg

	assert.Equal(t, uint64(DefaultMaxEntities), cfg.MaxEntities)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
	assert.Equal(t, DefaultInitialCapacity, cfg.InitialCapacity)

	_, err := sto.CreateEntity()
	assert.NoError(t, err)
}
