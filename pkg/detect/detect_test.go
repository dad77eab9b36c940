package detect

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

func TestEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		detect Func
		want   int
	}{
		{
			"address_balance",
			`contract C{function f()public{uint256 b=address(this).balance;bal++;} function g(address a)public{uint256 b=address(a).balance;}}`,
			detectAddressBalance, 2,
		},
		{
			"floating_pragma",
			`pragma solidity ^0.8.16;contract C{}`,
			detectFloatingPragma, 1,
		},
		{
			"arbitrary_from_in_transferfrom",
			`contract C{function a(address from,address to,uint256 x)public{t.transferFrom(from,to,x);}
			function b(address to,uint256 x)public{t.transferFrom(msg.sender,to,x);}}`,
			detectArbitraryFromInTransferFrom, 1,
		},
		{
			"unprotected_selfdestruct",
			`contract C{function f()public{selfdestruct(msg.sender);} function g()public{require(msg.sender==owner);selfdestruct(msg.sender);} function h()public onlyOwner{selfdestruct(msg.sender);}}`,
			detectUnprotectedSelfdestruct, 1,
		},
		{
			"pack_storage_variables",
			`contract C{uint256 a;uint256 b;bool c;uint256 d;bool e;}
			contract D{uint256 a;uint256 b;uint256 c;bool d;bool e;}`,
			detectPackStorageVariables, 1,
		},
		{
			"divide_before_multiply",
			`contract C{function f()public{uint x=1/2*3;uint y=1*2/3;uint z=(1/2)*3;}}`,
			detectDivideBeforeMultiply, 2,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			su := parse(t, c.src)
			got := c.detect(su)
			assert.Lenf(t, got, c.want, "%s findings: %v", c.name, got)
		})
	}
}

func TestAddressZero(t *testing.T) {
	su := parse(t, `contract C{function f(address x)public view returns(bool){return x==address(0);}}`)
	assert.Len(t, detectAddressZero(su), 1)
}

func TestBoolEqualsBool(t *testing.T) {
	su := parse(t, `contract C{function f(bool x)public pure returns(bool){return x==true;}}`)
	assert.Len(t, detectBoolEqualsBool(su), 1)
}

func TestAssignUpdateArrayValue(t *testing.T) {
	su := parse(t, `contract C{uint256[] a; function f()public{a[0]=a[0]+1;}}`)
	assert.Len(t, detectAssignUpdateArrayValue(su), 1)
}

func TestCacheArrayLength(t *testing.T) {
	su := parse(t, `contract C{uint256[] a; function f()public{for(uint256 i=0;i<a.length;i++){}}}`)
	assert.Len(t, detectCacheArrayLength(su), 1)
}

func TestConstantVariables(t *testing.T) {
	su := parse(t, `contract C{uint256 a; uint256 b; function f()public{b=1;}}`)
	got := detectConstantVariables(su)
	assert.Len(t, got, 1)
}

func TestImmutableVariables(t *testing.T) {
	su := parse(t, `contract C{uint256 a; uint256 b; constructor(){a=1;} function f()public{b=2;}}`)
	got := detectImmutableVariables(su)
	assert.Len(t, got, 1)
}

func TestIncrementDecrementExcludesUncheckedPreform(t *testing.T) {
	su := parse(t, `contract C{function f()public{uint256 x; unchecked{++x;} x++;}}`)
	got := detectIncrementDecrement(su)
	// ++x inside unchecked is excluded; x++ outside unchecked is not.
	assert.Len(t, got, 1)
}

func TestMemoryToCalldata(t *testing.T) {
	su := parse(t, `contract C{function f(uint256[] memory a)public pure{} function g(uint256[] memory b)public{b[0]=1;}}`)
	got := detectMemoryToCalldata(su)
	assert.Len(t, got, 1)
}

func TestMultipleRequire(t *testing.T) {
	su := parse(t, `contract C{function f(bool a,bool b)public{require(a&&b);}}`)
	assert.Len(t, detectMultipleRequire(su), 1)
}

func TestPackStructVariables(t *testing.T) {
	su := parse(t, `contract C{struct S{uint256 a;bool b;uint256 c;bool d;}}`)
	assert.Len(t, detectPackStructVariables(su), 1)
}

func TestPayableFunction(t *testing.T) {
	su := parse(t, `contract C{function f()public{} function g()public payable{}}`)
	assert.Len(t, detectPayableFunction(su), 1)
}

func TestPrivateConstant(t *testing.T) {
	su := parse(t, `contract C{uint256 public constant A=1; uint256 private constant B=2;}`)
	assert.Len(t, detectPrivateConstant(su), 1)
}

func TestSafeMathVersions(t *testing.T) {
	pre := parse(t, `pragma solidity 0.7.6;contract C{using SafeMath for uint256;function f(uint256 a,uint256 b)public pure returns(uint256){return a.add(b);}}`)
	assert.Len(t, detectSafeMathPre080(pre), 1)
	assert.Len(t, detectSafeMathPost080(pre), 0)

	post := parse(t, `pragma solidity 0.8.10;contract C{using SafeMath for uint256;function f(uint256 a,uint256 b)public pure returns(uint256){return a.add(b);}}`)
	assert.Len(t, detectSafeMathPost080(post), 1)
	assert.Len(t, detectSafeMathPre080(post), 0)
}

func TestShiftMath(t *testing.T) {
	su := parse(t, `contract C{function f(uint256 x)public pure returns(uint256){return x*8;}}`)
	assert.Len(t, detectShiftMath(su), 1)
}

func TestSolidityKeccak256(t *testing.T) {
	su := parse(t, `contract C{function f(bytes memory b)public pure returns(bytes32){return keccak256(b);}}`)
	assert.Len(t, detectSolidityKeccak256(su), 1)
}

func TestSstore(t *testing.T) {
	su := parse(t, `contract C{uint256 a;function f()public{a=1;}}`)
	assert.Len(t, detectSstore(su), 1)
}

func TestStringErrorsAndShortRevertString(t *testing.T) {
	post := parse(t, `pragma solidity 0.8.10;contract C{function f(bool c)public{require(c,"fail");}}`)
	assert.Len(t, detectStringErrors(post), 1)
	assert.Len(t, detectShortRevertString(post), 0)

	longMsg := `contract C{function f(bool c)public{require(c,"this message is long enough to matter");}}`
	pre := parse(t, `pragma solidity 0.7.6;`+longMsg)
	assert.Len(t, detectShortRevertString(pre), 1)
	assert.Len(t, detectStringErrors(pre), 0)
}

func TestOptimalComparison(t *testing.T) {
	su := parse(t, `contract C{function f(uint256 x)public pure returns(bool){return x>=1;}}`)
	assert.Len(t, detectOptimalComparison(su), 1)
}

func TestUnsafeERC20Operation(t *testing.T) {
	su := parse(t, `contract C{function f(address token,address to,uint256 x)public{IERC20(token).transfer(to,x);}}`)
	assert.Len(t, detectUnsafeERC20Operation(su), 1)
}

func TestConstructorOrder(t *testing.T) {
	su := parse(t, `contract C{function f()public{} constructor(){}}`)
	assert.Len(t, detectConstructorOrder(su), 1)

	ok := parse(t, `contract C{constructor(){} function f()public{}}`)
	assert.Len(t, detectConstructorOrder(ok), 0)
}

func TestPrivateVarsLeadingUnderscore(t *testing.T) {
	su := parse(t, `contract C{uint256 private a; uint256 public _b;}`)
	assert.Len(t, detectPrivateVarsLeadingUnderscore(su), 2)
}

func TestPrivateFuncLeadingUnderscore(t *testing.T) {
	su := parse(t, `contract C{function _a()public{} function b()private{}}`)
	assert.Len(t, detectPrivateFuncLeadingUnderscore(su), 2)
}

func TestLookup(t *testing.T) {
	id, ok := Lookup("Address_Balance")
	require.True(t, ok)
	assert.Equal(t, AddressBalance, id)

	_, ok = Lookup("not_a_real_detector")
	assert.False(t, ok)
}

func TestAllCoversEveryDetector(t *testing.T) {
	infos := All()
	assert.Len(t, infos, int(numDetectors))
	for _, info := range infos {
		assert.NotEmpty(t, info.Name)
		assert.NotNil(t, info.Func)
	}
}
