package detect

import (
	"fmt"
	"strings"
)

// Info is one detector's static metadata: its report identity and the
// description template the report assembler prints above its findings.
type Info struct {
	ID          ID
	Name        string // config/report identifier, e.g. "address_balance"
	Category    Category
	Severity    Severity
	Title       string
	Description string
	Func        Func
}

var registry [numDetectors]Info

func register(id ID, name string, cat Category, sev Severity, title, desc string, fn Func) {
	registry[id] = Info{ID: id, Name: name, Category: cat, Severity: sev, Title: title, Description: desc, Func: fn}
}

func init() {
	register(AddressBalance, "address_balance", Optimization, SeverityGas,
		"Address balance",
		"Using `address(this).balance` costs more gas than the `selfbalance()` opcode reachable through inline assembly.",
		detectAddressBalance)

	register(AddressZero, "address_zero", Optimization, SeverityGas,
		"Address zero comparison",
		"Comparing an address against `address(0)` can be written more cheaply than constructing the zero address through a cast.",
		detectAddressZero)

	register(AssignUpdateArrayValue, "assign_update_array_value", Optimization, SeverityGas,
		"Assign update array value",
		"An array element is reassigned using its own current value; the compound-assignment form (`+=`, `-=`, ...) saves a second storage read.",
		detectAssignUpdateArrayValue)

	register(BoolEqualsBool, "bool_equals_bool", Optimization, SeverityGas,
		"Boolean equality comparison",
		"Comparing a boolean expression against a boolean literal is redundant; the expression (or its negation) already evaluates to a boolean.",
		detectBoolEqualsBool)

	register(CacheArrayLength, "cache_array_length", Optimization, SeverityGas,
		"Cache array length",
		"A `for` loop condition re-reads `.length` on every iteration. Caching it in a local variable before the loop saves repeated storage or calldata reads.",
		detectCacheArrayLength)

	register(ConstantVariables, "constant_variables", Optimization, SeverityGas,
		"Constant variables",
		"A state variable is never reassigned after declaration and could be marked `constant`, avoiding a storage slot entirely.",
		detectConstantVariables)

	register(ImmutableVariables, "immutable_variables", Optimization, SeverityGas,
		"Immutable variables",
		"A state variable is only ever assigned once, in the constructor, and could be marked `immutable`, avoiding a storage slot on every subsequent read.",
		detectImmutableVariables)

	register(IncrementDecrement, "increment_decrement", Optimization, SeverityGas,
		"Increment/decrement",
		"A pre-increment/decrement (`++x`) is cheaper than its post-form (`x++`) since the post-form must keep the prior value around.",
		detectIncrementDecrement)

	register(MemoryToCalldata, "memory_to_calldata", Optimization, SeverityGas,
		"Memory to calldata",
		"A `memory` function parameter is never written to and could be declared `calldata` instead, avoiding a copy into memory.",
		detectMemoryToCalldata)

	register(MultipleRequire, "multiple_require", Optimization, SeverityGas,
		"Multiple require",
		"A `require` with an `&&`-joined condition can be split into separate `require` statements so a failing first clause reverts without evaluating the rest.",
		detectMultipleRequire)

	register(PackStorageVariables, "pack_storage_variables", Optimization, SeverityGas,
		"Pack storage variables",
		"This contract's state variables would occupy fewer storage slots if reordered by size, since adjacent small variables can share a slot.",
		detectPackStorageVariables)

	register(PackStructVariables, "pack_struct_variables", Optimization, SeverityGas,
		"Pack struct variables",
		"This struct's fields would occupy fewer storage slots if reordered by size.",
		detectPackStructVariables)

	register(PayableFunction, "payable_function", Optimization, SeverityGas,
		"Payable function",
		"A public or external function without `payable` carries an implicit check that `msg.value == 0` on every call; marking it `payable` removes that check where receiving ether is acceptable.",
		detectPayableFunction)

	register(PrivateConstant, "private_constant", Optimization, SeverityGas,
		"Private constant",
		"A `constant` variable is inlined at compile time regardless of visibility; declaring it `private` avoids generating an unused public getter.",
		detectPrivateConstant)

	register(SafeMathPre080, "safe_math_pre_080", Optimization, SeverityGas,
		"SafeMath usage (pre-0.8.0)",
		"SafeMath arithmetic is used under a pre-0.8.0 pragma, where overflow checks are not a compiler default; this is expected, not redundant, usage.",
		detectSafeMathPre080)

	register(SafeMathPost080, "safe_math_post_080", Optimization, SeverityGas,
		"SafeMath usage (post-0.8.0)",
		"SafeMath arithmetic is used under a 0.8.0+ pragma, where the compiler already reverts on overflow; the library calls are redundant gas.",
		detectSafeMathPost080)

	register(ShiftMath, "shift_math", Optimization, SeverityGas,
		"Shift instead of multiply/divide",
		"Multiplying or dividing by a power of two can be replaced by a bit shift, which is cheaper than the `MUL`/`DIV` opcodes.",
		detectShiftMath)

	register(SolidityKeccak256, "solidity_keccak256", Optimization, SeverityGas,
		"keccak256 usage",
		"`keccak256` is called here; if its arguments are constant, the hash can be precomputed at compile time instead of recomputed on every call.",
		detectSolidityKeccak256)

	register(SolidityMath, "solidity_math", Optimization, SeverityGas,
		"Inline-assembly arithmetic candidate",
		"This arithmetic expression is a candidate for inline-assembly `add`/`sub`/`mul`/`div` with manual overflow checks; review before rewriting, since the saving is not guaranteed.",
		detectSolidityMath)

	register(Sstore, "sstore", Optimization, SeverityGas,
		"Storage write",
		"A direct assignment to a state variable triggers an `SSTORE`; review whether the write is necessary on every call or could be batched.",
		detectSstore)

	register(StringErrors, "string_errors", Optimization, SeverityGas,
		"String error message",
		"`require` is called with a string revert message under a 0.8.4+ pragma, where a custom error is cheaper to deploy and revert with.",
		detectStringErrors)

	register(ShortRevertString, "short_revert_string", Optimization, SeverityGas,
		"Long revert string",
		"`require` is called with a revert string of 32 characters or more under a pre-0.8.4 pragma; shortening it saves deployment and revert gas.",
		detectShortRevertString)

	register(OptimalComparison, "optimal_comparison", Optimization, SeverityGas,
		"Non-strict comparison",
		"A `>=`/`<=` comparison can be rewritten as `>`/`<` against an adjusted bound, which compiles to a cheaper opcode.",
		detectOptimalComparison)

	register(ArbitraryFromInTransferFrom, "arbitrary_from_in_transferfrom", Vulnerability, SeverityHigh,
		"Arbitrary `from` in transferFrom",
		"A function passes its own parameter as the `from` argument of `transferFrom`/`safeTransferFrom`; any caller can name an arbitrary victim whose tokens get pulled, provided an allowance exists.",
		detectArbitraryFromInTransferFrom)

	register(DivideBeforeMultiply, "divide_before_multiply", Vulnerability, SeverityHigh,
		"Divide before multiply",
		"A division is performed before a later multiplication in the same expression, compounding the truncation integer division already introduces.",
		detectDivideBeforeMultiply)

	register(FloatingPragma, "floating_pragma", Vulnerability, SeverityHigh,
		"Floating pragma",
		"The pragma's version clause contains `^`, allowing compilation with a range of compiler versions instead of pinning a single audited one.",
		detectFloatingPragma)

	register(UnprotectedSelfdestruct, "unprotected_selfdestruct", Vulnerability, SeverityHigh,
		"Unprotected selfdestruct",
		"`selfdestruct`/`suicide` is reachable from a public or external function with no access-control guard, letting any caller destroy the contract.",
		detectUnprotectedSelfdestruct)

	register(UnsafeERC20Operation, "unsafe_erc20_operation", Vulnerability, SeverityHigh,
		"Unsafe ERC20 operation",
		"`transfer`/`transferFrom`/`approve` is called on a token; tokens that return `false` instead of reverting on failure fail silently unless that return value is checked. Every such call is listed, whether or not its return value is checked.",
		detectUnsafeERC20Operation)

	register(ConstructorOrder, "constructor_order", QA, SeverityInfo,
		"Constructor order",
		"The constructor is declared after at least one other function (modifiers aside, receive and fallback included); convention places the constructor first.",
		detectConstructorOrder)

	register(PrivateVarsLeadingUnderscore, "private_vars_leading_underscore", QA, SeverityInfo,
		"Leading underscore naming (variables)",
		"A state variable's name doesn't follow the leading-underscore convention for its visibility (private/internal names start with `_`, public/external ones don't).",
		detectPrivateVarsLeadingUnderscore)

	register(PrivateFuncLeadingUnderscore, "private_func_leading_underscore", QA, SeverityInfo,
		"Leading underscore naming (functions)",
		"A function's name doesn't follow the leading-underscore convention for its visibility (private/internal names start with `_`, public/external ones don't).",
		detectPrivateFuncLeadingUnderscore)
}

var byName map[string]ID

func init() {
	byName = make(map[string]ID, numDetectors)
	for id := ID(0); id < numDetectors; id++ {
		byName[registry[id].Name] = id
	}
}

// All returns every detector's metadata, in catalogue order.
func All() []Info {
	out := make([]Info, numDetectors)
	copy(out, registry[:])
	return out
}

// Get returns the metadata for a detector ID.
func Get(id ID) Info { return registry[id] }

// Lookup resolves a configuration-file detector name (case-insensitive) to
// its ID. The second return value is false for an unrecognized name, which
// callers must treat as a fatal configuration error.
func Lookup(name string) (ID, bool) {
	id, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// MustLookup is Lookup for callers (tests, internal wiring) that already
// know the name is valid; it panics otherwise.
func MustLookup(name string) ID {
	id, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("detect: unknown detector %q", name))
	}
	return id
}
