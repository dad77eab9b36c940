package detect

import (
	"math/big"

	"github.com/0xkitsune/solstat/internal/solidity"
	"github.com/0xkitsune/solstat/pkg/ast"
	"github.com/0xkitsune/solstat/pkg/astutil"
)

// detectAddressBalance flags `address(x).balance`: selfbalance() is cheaper
// than reading balance through an address cast when x is this contract.
func detectAddressBalance(su *solidity.SourceUnit) Locs {
	out := newLocs()
	for _, n := range ast.WalkOne(ast.KindMemberAccess, su) {
		m := n.(*solidity.MemberAccessExpr)
		if m.Member != "balance" {
			continue
		}
		if _, ok := asAddressCast(m.Expr); ok {
			out.add(m.NodeLoc)
		}
	}
	return out
}

func isComparison(op solidity.BinaryOp) bool {
	return op == solidity.OpEqual || op == solidity.OpNotEqual
}

// detectAddressZero flags `x == address(0)` / `x != address(0)` comparisons.
func detectAddressZero(su *solidity.SourceUnit) Locs {
	out := newLocs()
	for _, n := range ast.WalkOne(ast.KindBinary, su) {
		b := n.(*solidity.BinaryExpr)
		if !isComparison(b.Op) {
			continue
		}
		if isAddressZero(b.Left) || isAddressZero(b.Right) {
			out.add(b.NodeLoc)
		}
	}
	return out
}

// detectAssignUpdateArrayValue flags `a[k] = a[k] <op> x` (or the mirrored
// `a[k] = x <op> a[k]`), rewritable as a compound assignment.
func detectAssignUpdateArrayValue(su *solidity.SourceUnit) Locs {
	out := newLocs()
	for _, n := range ast.WalkOne(ast.KindAssign, su) {
		a := n.(*solidity.AssignExpr)
		if a.Op != solidity.OpAssign {
			continue
		}
		sub, ok := a.Left.(*solidity.ArraySubscriptExpr)
		if !ok {
			continue
		}
		bin, ok := a.Right.(*solidity.BinaryExpr)
		if !ok || !compoundArithmeticOps[bin.Op] {
			continue
		}
		if sameExpr(sub, bin.Left) || sameExpr(sub, bin.Right) {
			out.add(a.NodeLoc)
		}
	}
	return out
}

// detectBoolEqualsBool flags `x == true`/`x != false`-style comparisons
// against a boolean literal; the literal is redundant.
func detectBoolEqualsBool(su *solidity.SourceUnit) Locs {
	out := newLocs()
	for _, n := range ast.WalkOne(ast.KindBinary, su) {
		b := n.(*solidity.BinaryExpr)
		if !isComparison(b.Op) {
			continue
		}
		if isBoolLiteral(b.Left) || isBoolLiteral(b.Right) {
			out.add(b.NodeLoc)
		}
	}
	return out
}

// detectCacheArrayLength flags `.length` accesses inside a `for` loop's
// condition, which re-reads the length on every iteration.
func detectCacheArrayLength(su *solidity.SourceUnit) Locs {
	out := newLocs()
	for _, n := range ast.WalkOne(ast.KindFor, su) {
		f := n.(*solidity.ForStatement)
		if f.Cond == nil {
			continue
		}
		for _, m := range ast.WalkOne(ast.KindMemberAccess, f.Cond) {
			ma := m.(*solidity.MemberAccessExpr)
			if ma.Member == "length" {
				out.add(ma.NodeLoc)
			}
		}
	}
	return out
}

// writeTargetName returns the identifier name an assignment, compound
// assignment, or increment/decrement expression writes to, when its target
// is a bare identifier (not a member access or subscript).
func writeTargetName(e solidity.Expression) (string, bool) {
	switch v := e.(type) {
	case *solidity.AssignExpr:
		return identifierName(v.Left)
	case *solidity.UnaryExpr:
		if v.Op == solidity.OpPreIncrement || v.Op == solidity.OpPreDecrement {
			return identifierName(v.Operand)
		}
	case *solidity.PostfixExpr:
		return identifierName(v.Operand)
	}
	return "", false
}

// detectConstantVariables flags non-constant, non-mapping state variables
// that are never reassigned after declaration and so could be `constant`.
func detectConstantVariables(su *solidity.SourceUnit) Locs {
	out := newLocs()
	table := astutil.StorageVariables(su, true, false)
	if len(table) == 0 {
		return out
	}

	remove := func(e solidity.Expression) {
		if name, ok := writeTargetName(e); ok {
			delete(table, name)
		}
	}
	for _, n := range ast.WalkOne(ast.KindAssign, su) {
		remove(n.(*solidity.AssignExpr))
	}
	for _, n := range ast.WalkOne(ast.KindUnary, su) {
		remove(n.(*solidity.UnaryExpr))
	}
	for _, n := range ast.WalkOne(ast.KindPostfix, su) {
		remove(n.(*solidity.PostfixExpr))
	}

	for _, v := range table {
		out.add(v.Loc)
	}
	return out
}

// isValueTypeInitializer reports whether e is a value-type expression
// suitable to seed an `immutable` assignment: not a string literal, and not
// a call producing dynamic bytes (`bytes(...)`, `abi.encode*(...)`).
func isValueTypeInitializer(e solidity.Expression) bool {
	if _, ok := e.(*solidity.StringLiteralExpr); ok {
		return false
	}
	call, ok := e.(*solidity.FunctionCallExpr)
	if !ok {
		return true
	}
	if typ, ok := call.Callee.(*solidity.TypeExpr); ok && typ.Type != nil && typ.Type.Name == "bytes" {
		return false
	}
	if m, ok := call.Callee.(*solidity.MemberAccessExpr); ok {
		if id, ok := identifierName(m.Expr); ok && id == "abi" && len(m.Member) >= 6 && m.Member[:6] == "encode" {
			return false
		}
	}
	return true
}

// detectImmutableVariables flags state variables assigned in a constructor
// to a value-type expression and never written outside a constructor —
// candidates for `immutable`. The number of constructor assignments is not
// counted.
func detectImmutableVariables(su *solidity.SourceUnit) Locs {
	out := newLocs()
	table := astutil.StorageVariables(su, true, true)
	if len(table) == 0 {
		return out
	}

	candidates := make(map[string]solidity.Loc)
	for _, fn := range walkFunctionDefinitions(su) {
		if fn.Ty != solidity.FunctionTyConstructor || fn.Body == nil {
			continue
		}
		for _, n := range ast.WalkOne(ast.KindAssign, fn.Body) {
			a := n.(*solidity.AssignExpr)
			if a.Op != solidity.OpAssign {
				continue
			}
			name, ok := identifierName(a.Left)
			if !ok {
				continue
			}
			v, known := table[name]
			if !known || !isValueTypeInitializer(a.Right) {
				continue
			}
			candidates[name] = v.Loc
		}
	}

	for _, fn := range walkFunctionDefinitions(su) {
		if fn.Ty == solidity.FunctionTyConstructor || fn.Body == nil {
			continue
		}
		for _, n := range ast.WalkOne(ast.KindAssign, fn.Body) {
			if name, ok := writeTargetName(n.(*solidity.AssignExpr)); ok {
				delete(candidates, name)
			}
		}
		for _, n := range ast.WalkOne(ast.KindUnary, fn.Body) {
			if name, ok := writeTargetName(n.(*solidity.UnaryExpr)); ok {
				delete(candidates, name)
			}
		}
		for _, n := range ast.WalkOne(ast.KindPostfix, fn.Body) {
			if name, ok := writeTargetName(n.(*solidity.PostfixExpr)); ok {
				delete(candidates, name)
			}
		}
	}

	for _, loc := range candidates {
		out.add(loc)
	}
	return out
}

// detectIncrementDecrement flags pre/post increment and decrement
// expressions, with one deliberate asymmetry: pre-forms (`++x`) inside an
// unchecked block are excluded (the overflow check they'd otherwise trade
// away is already off), but post-forms (`x++`) are never excluded, since
// they are strictly more expensive than the pre-form regardless of
// overflow checking.
func detectIncrementDecrement(su *solidity.SourceUnit) Locs {
	excluded := make(map[solidity.Loc]bool)
	for _, n := range ast.WalkOne(ast.KindBlock, su) {
		block := n.(*solidity.BlockStatement)
		if !block.Unchecked {
			continue
		}
		for _, u := range ast.WalkOne(ast.KindUnary, block) {
			un := u.(*solidity.UnaryExpr)
			if un.Op == solidity.OpPreIncrement || un.Op == solidity.OpPreDecrement {
				excluded[un.NodeLoc] = true
			}
		}
	}

	out := newLocs()
	for _, n := range ast.WalkOne(ast.KindUnary, su) {
		un := n.(*solidity.UnaryExpr)
		if un.Op != solidity.OpPreIncrement && un.Op != solidity.OpPreDecrement {
			continue
		}
		if !excluded[un.NodeLoc] {
			out.add(un.NodeLoc)
		}
	}
	for _, n := range ast.WalkOne(ast.KindPostfix, su) {
		out.add(n.(*solidity.PostfixExpr).NodeLoc)
	}
	return out
}

// detectMemoryToCalldata flags `memory` function parameters that are never
// written to in the function body and so could be `calldata`.
func detectMemoryToCalldata(su *solidity.SourceUnit) Locs {
	out := newLocs()
	for _, fn := range walkFunctionDefinitions(su) {
		if fn.Body == nil {
			continue
		}
		params := make(map[string]solidity.Loc)
		for _, p := range fn.Params {
			if p.Decl != nil && p.Decl.Storage == solidity.StorageLocationMemory && p.Decl.Name != "" {
				params[p.Decl.Name] = p.Decl.Loc
			}
		}
		if len(params) == 0 {
			continue
		}
		for _, n := range ast.WalkOne(ast.KindAssign, fn.Body) {
			a := n.(*solidity.AssignExpr)
			var name string
			var ok bool
			switch lhs := a.Left.(type) {
			case *solidity.IdentifierExpr:
				name, ok = lhs.Name, true
			case *solidity.ArraySubscriptExpr:
				name, ok = identifierName(lhs.Base)
			}
			if ok {
				delete(params, name)
			}
		}
		for _, loc := range params {
			out.add(loc)
		}
	}
	return out
}

// detectMultipleRequire flags `require(a && b)`, rewritable as two
// `require`s so a failing first clause reverts with less gas spent
// evaluating the second.
func detectMultipleRequire(su *solidity.SourceUnit) Locs {
	out := newLocs()
	for _, n := range ast.WalkOne(ast.KindFunctionCall, su) {
		call := n.(*solidity.FunctionCallExpr)
		name, ok := calleeIdentifier(call)
		if !ok || name != "require" {
			continue
		}
		for _, arg := range call.Args {
			if b, ok := arg.(*solidity.BinaryExpr); ok && b.Op == solidity.OpAnd {
				out.add(call.NodeLoc)
				break
			}
		}
	}
	return out
}

// contractVariableWidths returns the storage-variable widths of a contract
// in declaration order, excluding constant/immutable variables (which never
// occupy a storage slot).
func contractVariableWidths(cd *solidity.ContractDefinition) []uint16 {
	var widths []uint16
	for _, part := range cd.Parts {
		vd, ok := part.(*solidity.VariableDefinition)
		if !ok || vd.Constant || vd.Immutable {
			continue
		}
		widths = append(widths, astutil.TypeBits(vd.Type))
	}
	return widths
}

// detectPackStorageVariables flags contracts whose storage variables would
// use fewer slots if reordered by size.
func detectPackStorageVariables(su *solidity.SourceUnit) Locs {
	out := newLocs()
	for _, n := range ast.WalkOne(ast.KindContractDefinition, su) {
		cd := n.(*solidity.ContractDefinition)
		widths := contractVariableWidths(cd)
		if len(widths) > 1 && astutil.Packable(widths) {
			out.add(cd.NodeLoc)
		}
	}
	return out
}

// detectPackStructVariables is pack_storage_variables's struct-scoped
// sibling: flags structs whose fields would pack tighter if reordered.
func detectPackStructVariables(su *solidity.SourceUnit) Locs {
	out := newLocs()
	for _, n := range ast.WalkOne(ast.KindStructDefinition, su) {
		sd := n.(*solidity.StructDefinition)
		widths := make([]uint16, 0, len(sd.Fields))
		for _, f := range sd.Fields {
			widths = append(widths, astutil.TypeBits(f.Type))
		}
		if len(widths) > 1 && astutil.Packable(widths) {
			out.add(sd.NodeLoc)
		}
	}
	return out
}

// detectPayableFunction flags public/external functions with a body that
// are not marked `payable` — candidates to add it if they are ever meant to
// receive ether, since the mutability check itself costs gas on every call.
func detectPayableFunction(su *solidity.SourceUnit) Locs {
	out := newLocs()
	for _, fn := range walkFunctionDefinitions(su) {
		if fn.Body == nil {
			continue
		}
		if fn.Visibility != solidity.VisibilityPublic && fn.Visibility != solidity.VisibilityExternal {
			continue
		}
		if fn.Mutability != solidity.MutabilityPayable {
			out.add(fn.NodeLoc)
		}
	}
	return out
}

// detectPrivateConstant flags `constant` state variables with an explicit
// non-private visibility; constants are inlined at compile time, so a wider
// visibility than `private` buys nothing.
func detectPrivateConstant(su *solidity.SourceUnit) Locs {
	out := newLocs()
	table := astutil.StorageVariables(su, false, true)
	for _, v := range table {
		if !v.Constant || !v.HasVisibility {
			continue
		}
		if v.Visibility != solidity.VisibilityPrivate {
			out.add(v.Loc)
		}
	}
	return out
}

func usesSafeMath(su *solidity.SourceUnit) bool {
	for _, n := range ast.WalkOne(ast.KindUsing, su) {
		if n.(*solidity.UsingDirective).Library == "SafeMath" {
			return true
		}
	}
	return false
}

var safeMathMembers = map[string]bool{"add": true, "sub": true, "mul": true, "div": true}

func detectSafeMathCalls(su *solidity.SourceUnit) Locs {
	out := newLocs()
	for _, n := range ast.WalkOne(ast.KindFunctionCall, su) {
		call := n.(*solidity.FunctionCallExpr)
		m, ok := memberOf(call.Callee)
		if ok && safeMathMembers[m.Member] {
			out.add(m.NodeLoc)
		}
	}
	return out
}

// detectSafeMathPre080 flags SafeMath library calls on a pre-0.8 pragma,
// where overflow traps are not a compiler default and SafeMath still earns
// its gas cost.
func detectSafeMathPre080(su *solidity.SourceUnit) Locs {
	v, ok := astutil.SolidityVersion(su)
	if !ok || v.Minor >= 8 || !usesSafeMath(su) {
		return newLocs()
	}
	return detectSafeMathCalls(su)
}

// detectSafeMathPost080 flags SafeMath library calls on a 0.8+ pragma,
// where the compiler already traps overflow and SafeMath is redundant gas.
func detectSafeMathPost080(su *solidity.SourceUnit) Locs {
	v, ok := astutil.SolidityVersion(su)
	if !ok || v.Minor < 8 || !usesSafeMath(su) {
		return newLocs()
	}
	return detectSafeMathCalls(su)
}

// isPositivePowerOfTwo parses a decimal literal as an unsigned 128-bit
// integer and reports whether it's a positive power of two. Unparseable or
// out-of-range literals are silently treated as a non-match, per spec.
func isPositivePowerOfTwo(value string) bool {
	n := new(big.Int)
	if _, ok := n.SetString(value, 10); !ok {
		return false
	}
	if n.Sign() <= 0 {
		return false
	}
	max := new(big.Int).Lsh(big.NewInt(1), 128)
	if n.Cmp(max) >= 0 {
		return false
	}
	minusOne := new(big.Int).Sub(n, big.NewInt(1))
	and := new(big.Int).And(n, minusOne)
	return and.Sign() == 0
}

func isPowerOfTwoLiteral(e solidity.Expression) bool {
	n, ok := e.(*solidity.NumberLiteralExpr)
	return ok && isPositivePowerOfTwo(n.Value)
}

// detectShiftMath flags multiplications/divisions by a power-of-two literal
// that could be a bit shift instead.
func detectShiftMath(su *solidity.SourceUnit) Locs {
	out := newLocs()
	for _, n := range ast.WalkOne(ast.KindBinary, su) {
		b := n.(*solidity.BinaryExpr)
		if b.Op != solidity.OpMultiply && b.Op != solidity.OpDivide {
			continue
		}
		if isPowerOfTwoLiteral(b.Left) || isPowerOfTwoLiteral(b.Right) {
			out.add(b.NodeLoc)
		}
	}
	return out
}

// detectSolidityKeccak256 flags `keccak256(...)` calls, each a candidate for
// a precomputed constant or inline assembly depending on its arguments.
func detectSolidityKeccak256(su *solidity.SourceUnit) Locs {
	out := newLocs()
	for _, n := range ast.WalkOne(ast.KindFunctionCall, su) {
		call := n.(*solidity.FunctionCallExpr)
		if id, ok := call.Callee.(*solidity.IdentifierExpr); ok && id.Name == "keccak256" {
			out.add(id.NodeLoc)
		}
	}
	return out
}

// detectSolidityMath flags every add/sub/mul/div expression as a candidate
// for inline-assembly replacement; it only surfaces candidates, it does not
// prove the rewrite is a net win.
func detectSolidityMath(su *solidity.SourceUnit) Locs {
	out := newLocs()
	ops := map[solidity.BinaryOp]bool{
		solidity.OpAdd: true, solidity.OpSubtract: true,
		solidity.OpMultiply: true, solidity.OpDivide: true,
	}
	for _, n := range ast.WalkOne(ast.KindBinary, su) {
		b := n.(*solidity.BinaryExpr)
		if ops[b.Op] {
			out.add(b.NodeLoc)
		}
	}
	return out
}

// detectSstore flags direct assignments to storage variables, each an
// SSTORE; callers reviewing the report can judge whether the write could be
// batched or cached.
func detectSstore(su *solidity.SourceUnit) Locs {
	out := newLocs()
	table := astutil.StorageVariables(su, true, true)
	for _, n := range ast.WalkOne(ast.KindAssign, su) {
		a := n.(*solidity.AssignExpr)
		name, ok := identifierName(a.Left)
		if ok {
			if _, known := table[name]; known {
				out.add(a.NodeLoc)
			}
		}
	}
	return out
}

func versionAtLeast084(v astutil.Version) bool {
	if v.Major > 0 {
		return true
	}
	if v.Minor != 8 {
		return v.Minor > 8
	}
	return v.Patch >= 4
}

func lastStringLiteralArg(call *solidity.FunctionCallExpr) (*solidity.StringLiteralExpr, bool) {
	if len(call.Args) == 0 {
		return nil, false
	}
	s, ok := call.Args[len(call.Args)-1].(*solidity.StringLiteralExpr)
	return s, ok
}

// detectStringErrors flags `require(cond, "message")` on Solidity >= 0.8.4,
// where a custom error is cheaper than a revert string.
func detectStringErrors(su *solidity.SourceUnit) Locs {
	out := newLocs()
	v, ok := astutil.SolidityVersion(su)
	if !ok || !versionAtLeast084(v) {
		return out
	}
	for _, n := range ast.WalkOne(ast.KindFunctionCall, su) {
		call := n.(*solidity.FunctionCallExpr)
		name, ok := calleeIdentifier(call)
		if !ok || name != "require" {
			continue
		}
		if s, ok := lastStringLiteralArg(call); ok {
			out.add(s.NodeLoc)
		}
	}
	return out
}

// detectShortRevertString flags `require(cond, "long message")` on Solidity
// < 0.8.4, where custom errors aren't available but long revert strings
// still cost extra gas to deploy and revert with.
func detectShortRevertString(su *solidity.SourceUnit) Locs {
	out := newLocs()
	v, ok := astutil.SolidityVersion(su)
	if !ok || versionAtLeast084(v) {
		return out
	}
	for _, n := range ast.WalkOne(ast.KindFunctionCall, su) {
		call := n.(*solidity.FunctionCallExpr)
		name, ok := calleeIdentifier(call)
		if !ok || name != "require" {
			continue
		}
		if s, ok := lastStringLiteralArg(call); ok && len(s.Value) >= 32 {
			out.add(s.NodeLoc)
		}
	}
	return out
}

// detectOptimalComparison flags `>=`/`<=` comparisons, each replaceable by
// `>`/`<` against an adjusted bound.
func detectOptimalComparison(su *solidity.SourceUnit) Locs {
	out := newLocs()
	for _, n := range ast.WalkOne(ast.KindBinary, su) {
		b := n.(*solidity.BinaryExpr)
		if b.Op == solidity.OpMoreEqual || b.Op == solidity.OpLessEqual {
			out.add(b.NodeLoc)
		}
	}
	return out
}
