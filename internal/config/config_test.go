package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "1323", cfg.Port)
	assert.Equal(t, StorageSQLite, cfg.Storage)
	assert.Equal(t, "cookshelf.db", cfg.DBPath)
}

func TestNewConfigEnvOverride(t *testing.T) {
	t.Setenv("COOKSHELF_STORAGE", StorageMemory)
	t.Setenv("COOKSHELF_PORT", "8080")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "8080", cfg.Port)
}

func TestNewConfigRejectsUnknownStorage(t *testing.T) {
	t.Setenv("COOKSHELF_STORAGE", "floppy")

	_, err := NewConfig()
	assert.NotNil(t, err)
}
