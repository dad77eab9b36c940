package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xkitsune/solstat/pkg/config"
)

func write(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanDirFindsSolFilesAndSkipsTestFiles(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Vault.sol", "contract Vault {}")
	write(t, dir, "Vault.t.sol", "contract VaultTest {}")
	write(t, dir, "README.md", "not solidity")
	write(t, dir, "lib/Token.sol", "contract Token {}")

	files, err := New(nil).ScanDir(dir)
	require.NoError(t, err)

	var bases []string
	for _, f := range files {
		bases = append(bases, filepath.Base(f))
	}
	assert.ElementsMatch(t, []string{"Vault.sol", "Token.sol"}, bases)
}

func TestScanDirHonoursExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Vault.sol", "contract Vault {}")
	write(t, dir, "mocks/Mock.sol", "contract Mock {}")

	cfg := config.DefaultConfig()
	cfg.Exclude.Patterns = []string{"mocks"}

	files, err := New(cfg).ScanDir(dir)
	require.NoError(t, err)

	var bases []string
	for _, f := range files {
		bases = append(bases, filepath.Base(f))
	}
	assert.ElementsMatch(t, []string{"Vault.sol"}, bases)
}

func TestScanDirSkipsSymlinkEscapingRoot(t *testing.T) {
	outside := t.TempDir()
	write(t, outside, "Outside.sol", "contract Outside {}")

	root := t.TempDir()
	write(t, root, "Inside.sol", "contract Inside {}")

	link := filepath.Join(root, "escape")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := New(nil).ScanDir(root)
	require.NoError(t, err)

	var bases []string
	for _, f := range files {
		bases = append(bases, filepath.Base(f))
	}
	assert.ElementsMatch(t, []string{"Inside.sol"}, bases)
}

func TestIsSolidityFile(t *testing.T) {
	assert.True(t, isSolidityFile("Vault.sol"))
	assert.False(t, isSolidityFile("Vault.t.sol"))
	assert.False(t, isSolidityFile("Vault.go"))
}
