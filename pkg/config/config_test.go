package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xkitsune/solstat/pkg/detect"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.Enabled("address_balance"))
}

func TestValidateRejectsUnknownDetector(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Detectors["not_a_real_detector"] = true
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not_a_real_detector")
}

func TestEnabledFalseDisablesDetector(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Detectors["sstore"] = false
	assert.False(t, cfg.Enabled("sstore"))
	assert.False(t, cfg.Enabled("SSTORE"))
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solstat.toml")
	require.NoError(t, os.WriteFile(path, []byte("[detectors]\nsstore = false\n\n[output]\ndir = \"out\"\ncolor = false\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Enabled("sstore"))
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.False(t, cfg.Output.Color)
}

func TestActiveIDsExcludesDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Detectors["sstore"] = false
	ids := cfg.ActiveIDs()

	sstoreID, ok := detect.Lookup("sstore")
	require.True(t, ok)
	for _, id := range ids {
		assert.NotEqual(t, sstoreID, id)
	}
	assert.Greater(t, len(ids), 1)
	assert.Equal(t, len(detect.All())-1, len(ids))
}
