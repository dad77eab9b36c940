package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xkitsune/solstat/internal/solidity"
)

func parse(t *testing.T, src string) *solidity.SourceUnit {
	t.Helper()
	su, _, err := solidity.Parse(0, src)
	require.NoError(t, err)
	return su
}

func TestWalkFindsBinaryExprsInsideNestedBlocks(t *testing.T) {
	su := parse(t, `pragma solidity ^0.8.0;
contract C {
    function f(uint256 a, uint256 b) public pure returns (uint256) {
        if (a > b) {
            return a + b;
        }
        return a - b;
    }
}
`)
	found := WalkOne(KindBinary, su)
	assert.Len(t, found, 3) // a > b, a + b, a - b
}

func TestKindOfDistinguishesAssignFromBinary(t *testing.T) {
	su := parse(t, `pragma solidity ^0.8.0;
contract C {
    uint256 x;
    function f() public {
        x += 1;
    }
}
`)
	assigns := WalkOne(KindAssign, su)
	binaries := WalkOne(KindBinary, su)
	assert.Len(t, assigns, 1)
	assert.Empty(t, binaries)
}

func TestLocOfReturnsByteRange(t *testing.T) {
	su := parse(t, `pragma solidity ^0.8.0;
contract C { uint256 x; }
`)
	nodes := WalkOne(KindContractDefinition, su)
	require.Len(t, nodes, 1)
	loc := LocOf(nodes[0])
	assert.Equal(t, 0, loc.File)
	assert.Greater(t, loc.End, loc.Start)
}
