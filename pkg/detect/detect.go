// Package detect holds solstat's detector library: one pure function per
// rule, each walking a parsed compilation unit with pkg/ast.Walk and
// returning the set of source locations that triggered it.
package detect

import "github.com/0xkitsune/solstat/internal/solidity"

// Locs is the location set a detector returns. Plain map instead of a
// dedicated set type: detectors only ever insert and the driver only ever
// ranges over the result.
type Locs map[solidity.Loc]struct{}

func newLocs() Locs { return make(Locs) }

func (s Locs) add(loc solidity.Loc) { s[loc] = struct{}{} }

// Category groups detectors the way the report orders them.
type Category int

const (
	Vulnerability Category = iota
	Optimization
	QA
)

func (c Category) String() string {
	switch c {
	case Vulnerability:
		return "Vulnerabilities"
	case Optimization:
		return "Optimizations"
	case QA:
		return "QA"
	default:
		return "Unknown"
	}
}

// Severity is the fixed per-category severity label findings carry.
type Severity string

const (
	SeverityHigh Severity = "High"
	SeverityGas  Severity = "Gas"
	SeverityInfo Severity = "Informational"
)

// ID names one detector, in the declaration order §4.4 of the
// specification catalogues them (grouped Optimizations, Vulnerabilities,
// QA; the report instead orders categories Vulnerabilities first).
type ID int

const (
	AddressBalance ID = iota
	AddressZero
	AssignUpdateArrayValue
	BoolEqualsBool
	CacheArrayLength
	ConstantVariables
	ImmutableVariables
	IncrementDecrement
	MemoryToCalldata
	MultipleRequire
	PackStorageVariables
	PackStructVariables
	PayableFunction
	PrivateConstant
	SafeMathPre080
	SafeMathPost080
	ShiftMath
	SolidityKeccak256
	SolidityMath
	Sstore
	StringErrors
	ShortRevertString
	OptimalComparison

	ArbitraryFromInTransferFrom
	DivideBeforeMultiply
	FloatingPragma
	UnprotectedSelfdestruct
	UnsafeERC20Operation

	ConstructorOrder
	PrivateVarsLeadingUnderscore
	PrivateFuncLeadingUnderscore

	numDetectors
)

// Func is a detector's signature: a pure function from a parsed
// compilation unit to the set of locations it flags.
type Func func(*solidity.SourceUnit) Locs
