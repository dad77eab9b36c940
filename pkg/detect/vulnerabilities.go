package detect

import (
	"strings"

	"github.com/0xkitsune/solstat/internal/solidity"
	"github.com/0xkitsune/solstat/pkg/ast"
)

// detectArbitraryFromInTransferFrom flags `token.transferFrom(from, ...)`
// calls where `from` is a function's own parameter rather than `msg.sender`
// — a classic approve-and-drain vector when the caller can name any victim.
func detectArbitraryFromInTransferFrom(su *solidity.SourceUnit) Locs {
	out := newLocs()
	for _, fn := range walkFunctionDefinitions(su) {
		if fn.Body == nil || len(fn.Params) == 0 {
			continue
		}
		params := make(map[string]bool)
		for _, p := range fn.Params {
			if p.Decl != nil && p.Decl.Name != "" {
				params[p.Decl.Name] = true
			}
		}
		if len(params) == 0 {
			continue
		}
		for _, n := range ast.WalkOne(ast.KindExpressionStatement, fn.Body) {
			stmt := n.(*solidity.ExpressionStatement)
			call, ok := stmt.Expr.(*solidity.FunctionCallExpr)
			if !ok {
				continue
			}
			m, ok := memberOf(call.Callee)
			if !ok || !lowerHasAny(m.Member, "transferfrom", "safetransferfrom") {
				continue
			}
			if len(call.Args) == 0 {
				continue
			}
			name, ok := identifierName(call.Args[0])
			if ok && params[name] {
				out.add(call.NodeLoc)
			}
		}
	}
	return out
}

// descendMultiplyLhs walks a Multiply node's left-operand chain through
// nested Multiply and Parenthesis nodes looking for a Divide.
func descendMultiplyLhs(e solidity.Expression) bool {
	for {
		switch v := e.(type) {
		case *solidity.BinaryExpr:
			switch v.Op {
			case solidity.OpDivide:
				return true
			case solidity.OpMultiply:
				e = v.Left
				continue
			}
			return false
		case *solidity.ParenthesisExpr:
			e = v.Inner
			continue
		default:
			return false
		}
	}
}

var divideBeforeMultiplyDescendOps = map[solidity.BinaryOp]bool{
	solidity.OpAdd: true, solidity.OpSubtract: true, solidity.OpModulo: true,
	solidity.OpBitwiseAnd: true, solidity.OpBitwiseOr: true, solidity.OpBitwiseXor: true,
	solidity.OpShiftLeft: true, solidity.OpShiftRight: true,
}

// descendAssignDivideRhs walks an AssignDivide's right-operand chain through
// Divide, Parenthesis, and the listed additive/bitwise binary nodes looking
// for a Multiply.
func descendAssignDivideRhs(e solidity.Expression) bool {
	for {
		switch v := e.(type) {
		case *solidity.BinaryExpr:
			if v.Op == solidity.OpMultiply {
				return true
			}
			if v.Op == solidity.OpDivide || divideBeforeMultiplyDescendOps[v.Op] {
				e = v.Left
				continue
			}
			return false
		case *solidity.ParenthesisExpr:
			e = v.Inner
			continue
		default:
			return false
		}
	}
}

// detectDivideBeforeMultiply flags integer division performed before a
// later multiplication, which compounds the truncation Solidity's integer
// division already introduces.
func detectDivideBeforeMultiply(su *solidity.SourceUnit) Locs {
	out := newLocs()
	for _, n := range ast.WalkOne(ast.KindBinary, su) {
		b := n.(*solidity.BinaryExpr)
		if b.Op == solidity.OpMultiply && descendMultiplyLhs(b.Left) {
			out.add(b.NodeLoc)
		}
	}
	for _, n := range ast.WalkOne(ast.KindAssign, su) {
		a := n.(*solidity.AssignExpr)
		if a.Op == solidity.OpAssignDivide && descendAssignDivideRhs(a.Right) {
			out.add(a.NodeLoc)
		}
	}
	return out
}

// detectFloatingPragma flags a `pragma solidity` version clause containing
// `^`, which lets the contract compile with a range of compiler versions
// instead of pinning one.
func detectFloatingPragma(su *solidity.SourceUnit) Locs {
	out := newLocs()
	for _, n := range ast.WalkOne(ast.KindPragmaDirective, su) {
		pd := n.(*solidity.PragmaDirective)
		if strings.Contains(pd.Value, "^") {
			out.add(pd.NodeLoc)
		}
	}
	return out
}

// callHasMsgSenderComparison reports whether call has, as one of its direct
// arguments, an `==`/`!=` comparison involving msg.sender on either side.
func callHasMsgSenderComparison(call *solidity.FunctionCallExpr) bool {
	for _, arg := range call.Args {
		b, ok := arg.(*solidity.BinaryExpr)
		if !ok || !isComparison(b.Op) {
			continue
		}
		if isMsgSender(b.Left) || isMsgSender(b.Right) {
			return true
		}
	}
	return false
}

// callPassesMsgSenderMember reports whether call has, as a direct argument,
// the MemberAccess `msg.sender`.
func callPassesMsgSenderMember(call *solidity.FunctionCallExpr) bool {
	for _, arg := range call.Args {
		if isMsgSender(arg) {
			return true
		}
	}
	return false
}

// modifierGuardsAccess reports whether any base-or-modifier entry's name
// substring-matches "only" (case-insensitive), the `onlyOwner` convention.
func modifierGuardsAccess(fn *solidity.FunctionDefinition) bool {
	for _, m := range fn.Modifiers {
		if strings.Contains(strings.ToLower(m.Name), "only") {
			return true
		}
	}
	return false
}

// bodyHasAccessControlCall reports whether any other call in body guards
// access via a msg.sender comparison or msg.sender argument.
func bodyHasAccessControlCall(body any, skip *solidity.FunctionCallExpr) bool {
	for _, n := range ast.WalkOne(ast.KindFunctionCall, body) {
		call := n.(*solidity.FunctionCallExpr)
		if call == skip {
			continue
		}
		if callHasMsgSenderComparison(call) || callPassesMsgSenderMember(call) {
			return true
		}
	}
	return false
}

// detectUnprotectedSelfdestruct flags `selfdestruct`/`suicide` calls in a
// public/external, non-constructor function that carries none of the three
// access-control shapes §4.4.26 recognizes: an `only*`-style modifier, a
// msg.sender comparison elsewhere in the body, or a direct msg.sender
// argument elsewhere in the body.
func detectUnprotectedSelfdestruct(su *solidity.SourceUnit) Locs {
	out := newLocs()
	for _, fn := range walkFunctionDefinitions(su) {
		if fn.Ty == solidity.FunctionTyConstructor || fn.Body == nil {
			continue
		}
		if fn.Visibility != solidity.VisibilityPublic && fn.Visibility != solidity.VisibilityExternal {
			continue
		}
		if modifierGuardsAccess(fn) {
			continue
		}
		for _, n := range ast.WalkOne(ast.KindFunctionCall, fn.Body) {
			call := n.(*solidity.FunctionCallExpr)
			name, ok := calleeIdentifier(call)
			if !ok || (name != "selfdestruct" && name != "suicide") {
				continue
			}
			if bodyHasAccessControlCall(fn.Body, call) {
				continue
			}
			out.add(call.NodeLoc)
		}
	}
	return out
}

var unsafeERC20Members = map[string]bool{"transfer": true, "transferFrom": true, "approve": true}

// detectUnsafeERC20Operation flags `.transfer`/`.transferFrom`/`.approve`
// member accesses: tokens that don't return a bool, or that return false
// instead of reverting, silently fail unless the caller checks the
// return value.
func detectUnsafeERC20Operation(su *solidity.SourceUnit) Locs {
	out := newLocs()
	for _, n := range ast.WalkOne(ast.KindMemberAccess, su) {
		m := n.(*solidity.MemberAccessExpr)
		if unsafeERC20Members[m.Member] {
			out.add(m.NodeLoc)
		}
	}
	return out
}
