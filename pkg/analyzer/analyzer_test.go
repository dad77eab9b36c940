package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xkitsune/solstat/pkg/detect"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestRunFindsAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Vault.sol", `pragma solidity ^0.8.16;contract C{function f()public{uint256 b=address(this).balance;}}`)
	writeFile(t, dir, "Vault.t.sol", `pragma solidity ^0.8.16;contract CTest{function f()public{uint256 b=address(this).balance;}}`)

	result, warnings, err := Run(context.Background(), dir, Options{Detectors: []detect.ID{detect.AddressBalance, detect.FloatingPragma}})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Len(t, result[detect.AddressBalance], 1)
	assert.Equal(t, "Vault.sol", result[detect.AddressBalance][0].File)
	assert.Len(t, result[detect.FloatingPragma], 1)
}

func TestRunSkipsUnparseableFileWithWarning(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Broken.sol", `contract C{`)

	result, warnings, err := Run(context.Background(), dir, Options{Detectors: []detect.ID{detect.FloatingPragma}})
	require.NoError(t, err)
	assert.Len(t, warnings, 1)
	assert.Empty(t, result)
}
