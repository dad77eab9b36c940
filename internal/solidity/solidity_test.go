package solidity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContractShape(t *testing.T) {
	src := `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.16;

contract Vault {
    uint256 public balance;
    uint256 private constant FEE = 10;

    constructor() {
        balance = 0;
    }

    function deposit(uint256 amount) public payable {
        balance += amount;
        for (uint256 i = 0; i < amount; i++) {
            unchecked { i++; }
        }
    }
}
`
	su, diags, err := Parse(0, src)
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.NotNil(t, su)
	require.Len(t, su.Parts, 2) // pragma + contract

	pragma, ok := su.Parts[0].(*PragmaDirective)
	require.True(t, ok)
	assert.Equal(t, "solidity", pragma.Name)
	assert.Contains(t, pragma.Value, "0.8.16")

	contract, ok := su.Parts[1].(*ContractDefinition)
	require.True(t, ok)
	assert.Equal(t, "Vault", contract.Name)
	assert.GreaterOrEqual(t, len(contract.Parts), 3)
}

func TestParseRejectsUnterminatedContract(t *testing.T) {
	_, _, err := Parse(0, `contract C{`)
	require.Error(t, err)
}

func TestParseUsingDirectiveAndStruct(t *testing.T) {
	src := `pragma solidity ^0.8.0;
contract Lib {
    struct Point { uint256 x; uint256 y; }
    using SafeMath for uint256;
}
`
	su, _, err := Parse(0, src)
	require.NoError(t, err)
	require.Len(t, su.Parts, 2)
}

func TestParseModifierWithArgs(t *testing.T) {
	src := `pragma solidity ^0.8.0;
contract Owned {
    address owner;
    modifier onlyOwner() { require(msg.sender == owner); _; }

    function destroy() public onlyOwner {
        selfdestruct(payable(owner));
    }
}
`
	_, _, err := Parse(0, src)
	require.NoError(t, err)
}
