package detect

import (
	"strings"

	"github.com/0xkitsune/solstat/internal/solidity"
	"github.com/0xkitsune/solstat/pkg/ast"
)

// asAddressCast reports whether e is `address(arg)` or `address payable(arg)`
// and, if so, returns its single argument.
func asAddressCast(e solidity.Expression) (solidity.Expression, bool) {
	call, ok := e.(*solidity.FunctionCallExpr)
	if !ok || len(call.Args) != 1 {
		return nil, false
	}
	typ, ok := call.Callee.(*solidity.TypeExpr)
	if !ok || typ.Type == nil {
		return nil, false
	}
	if typ.Type.Name != "address" && typ.Type.Name != "address payable" {
		return nil, false
	}
	return call.Args[0], true
}

// isAddressZero reports whether e is `address(0)`.
func isAddressZero(e solidity.Expression) bool {
	arg, ok := asAddressCast(e)
	if !ok {
		return false
	}
	n, ok := arg.(*solidity.NumberLiteralExpr)
	return ok && n.Value == "0"
}

func isBoolLiteral(e solidity.Expression) bool {
	_, ok := e.(*solidity.BoolLiteralExpr)
	return ok
}

func identifierName(e solidity.Expression) (string, bool) {
	id, ok := e.(*solidity.IdentifierExpr)
	if !ok {
		return "", false
	}
	return id.Name, true
}

func memberOf(e solidity.Expression) (*solidity.MemberAccessExpr, bool) {
	m, ok := e.(*solidity.MemberAccessExpr)
	return m, ok
}

// calleeIdentifier returns the bare identifier name a FunctionCallExpr
// invokes, e.g. "require" in `require(x)`, or "" if the callee isn't a bare
// identifier (it might be a MemberAccessExpr or a type cast instead).
func calleeIdentifier(call *solidity.FunctionCallExpr) (string, bool) {
	return identifierName(call.Callee)
}

// isMsgSender reports whether e is the member access `msg.sender`.
func isMsgSender(e solidity.Expression) bool {
	m, ok := memberOf(e)
	if !ok || m.Member != "sender" {
		return false
	}
	name, ok := identifierName(m.Expr)
	return ok && name == "msg"
}

// sameExpr reports whether two expressions are syntactically identical for
// the narrow shapes detectors compare: bare identifiers and numeric-literal
// array subscripts, e.g. `a[3]` vs `a[3]`.
func sameExpr(a, b solidity.Expression) bool {
	switch av := a.(type) {
	case *solidity.IdentifierExpr:
		bv, ok := b.(*solidity.IdentifierExpr)
		return ok && av.Name == bv.Name
	case *solidity.NumberLiteralExpr:
		bv, ok := b.(*solidity.NumberLiteralExpr)
		return ok && av.Value == bv.Value
	case *solidity.ArraySubscriptExpr:
		bv, ok := b.(*solidity.ArraySubscriptExpr)
		if !ok || av.Index == nil || bv.Index == nil {
			return false
		}
		return sameExpr(av.Base, bv.Base) && sameExpr(av.Index, bv.Index)
	default:
		return false
	}
}

// compoundArithmeticOps is the set of binary operators assign_update_array_value
// treats as a rewrite-to-compound-assignment opportunity.
var compoundArithmeticOps = map[solidity.BinaryOp]bool{
	solidity.OpAdd: true, solidity.OpSubtract: true, solidity.OpMultiply: true,
	solidity.OpDivide: true, solidity.OpModulo: true,
	solidity.OpShiftLeft: true, solidity.OpShiftRight: true,
	solidity.OpBitwiseAnd: true, solidity.OpBitwiseOr: true, solidity.OpBitwiseXor: true,
}

// functionBody returns the node to walk for a function's body, or nil if it
// has none (an interface/abstract declaration).
func functionBody(fn *solidity.FunctionDefinition) any {
	if fn.Body == nil {
		return nil
	}
	return fn.Body
}

// walkFunctionDefinitions returns every FunctionDefinition in the unit.
func walkFunctionDefinitions(su *solidity.SourceUnit) []*solidity.FunctionDefinition {
	nodes := ast.WalkOne(ast.KindFunctionDefinition, su)
	out := make([]*solidity.FunctionDefinition, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.(*solidity.FunctionDefinition))
	}
	return out
}

// lowerHasAny reports whether s, lowercased, equals any of candidates.
func lowerHasAny(s string, candidates ...string) bool {
	l := strings.ToLower(s)
	for _, c := range candidates {
		if l == c {
			return true
		}
	}
	return false
}
