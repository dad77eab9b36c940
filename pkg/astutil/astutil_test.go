package astutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xkitsune/solstat/internal/solidity"
)

func TestTypeBits(t *testing.T) {
	cases := []struct {
		name string
		want uint16
	}{
		{"address", 256},
		{"address payable", 256},
		{"bool", 1},
		{"uint256", 256},
		{"uint8", 8},
		{"uint", 256},
		{"int128", 128},
		{"bytes32", 256},
		{"bytes4", 32},
		{"bytes", 256},
		{"string", 256},
	}
	for _, c := range cases {
		got := TypeBits(&solidity.TypeName{Kind: solidity.TypeKindElementary, Name: c.name})
		assert.Equalf(t, c.want, got, "TypeBits(%s)", c.name)
	}

	assert.Equal(t, uint16(256), TypeBits(&solidity.TypeName{Kind: solidity.TypeKindMapping}))
	assert.Equal(t, uint16(256), TypeBits(nil))
}

func TestSlotsUsed(t *testing.T) {
	assert.Equal(t, uint32(0), SlotsUsed(nil))
	assert.Equal(t, uint32(1), SlotsUsed([]uint16{256}))
	assert.Equal(t, uint32(2), SlotsUsed([]uint16{256, 1}))
	assert.Equal(t, uint32(1), SlotsUsed([]uint16{1, 1, 254}))
	assert.Equal(t, uint32(1), SlotsUsed([]uint16{128, 128}))
}

func TestSlotsUsedSortedNeverWorse(t *testing.T) {
	widths := []uint16{256, 1, 256, 1, 256}
	sorted := []uint16{1, 1, 256, 256, 256}
	assert.LessOrEqual(t, SlotsUsed(sorted), SlotsUsed(widths))
}

func TestLineOf(t *testing.T) {
	src := "line1\nline2\nline3"
	assert.Equal(t, 1, LineOf(0, src))
	assert.Equal(t, 1+2, LineOf(len(src), src))
	assert.Equal(t, 2, LineOf(6, src))
	assert.Equal(t, 1, LineOf(0, ""))
}

func TestSolidityVersion(t *testing.T) {
	src := "pragma solidity ^0.8.16;\ncontract C{}"
	su, _, err := solidity.Parse(0, src)
	require.NoError(t, err)
	v, ok := SolidityVersion(su)
	require.True(t, ok)
	assert.Equal(t, Version{0, 8, 16}, v)
}

func TestStorageVariablesExcludesMappingsAndFilters(t *testing.T) {
	src := `contract C {
		uint256 a;
		bool constant b = true;
		address immutable c;
		mapping(address => uint256) balances;
	}`
	su, _, err := solidity.Parse(0, src)
	require.NoError(t, err)

	all := StorageVariables(su, false, false)
	assert.Contains(t, all, "a")
	assert.Contains(t, all, "b")
	assert.Contains(t, all, "c")
	assert.NotContains(t, all, "balances")

	noConst := StorageVariables(su, true, false)
	assert.NotContains(t, noConst, "b")
	assert.Contains(t, noConst, "c")

	noImmutable := StorageVariables(su, false, true)
	assert.NotContains(t, noImmutable, "c")
	assert.Contains(t, noImmutable, "b")
}
