package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xkitsune/solstat/pkg/detect"
)

func TestParseDetectorNames(t *testing.T) {
	ids, err := parseDetectorNames("sstore, floating_pragma ,address_balance")
	require.NoError(t, err)
	assert.Len(t, ids, 3)

	sstoreID, _ := detect.Lookup("sstore")
	assert.Contains(t, ids, sstoreID)
}

func TestParseDetectorNamesRejectsUnknown(t *testing.T) {
	_, err := parseDetectorNames("not_a_detector")
	require.Error(t, err)
}

func TestDefaultConfigTOMLListsEveryDetector(t *testing.T) {
	toml := defaultConfigTOML()
	for _, info := range detect.All() {
		assert.Contains(t, toml, info.Name+" = true")
	}
	assert.Contains(t, toml, "[output]")
	assert.Contains(t, toml, "[exclude]")
}
