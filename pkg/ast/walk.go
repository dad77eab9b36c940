package ast

import "github.com/0xkitsune/solstat/internal/solidity"

// Walk performs an exhaustive pre-order depth-first traversal starting at
// root, collecting every node whose Kind is in kinds. It recurses into
// every structurally possible child position — type expressions,
// initializers, call arguments, for-loop clauses, ternary branches, and a
// try-statement's success params/body — with two deliberate exceptions
// carried over from the reference traversal this is grounded on: catch
// clauses are not descended into, and assembly/continue/break statements
// have no children to descend into in the first place.
//
// root may be a *solidity.SourceUnit, any SourceUnitPart/ContractPart,
// Statement, or Expression. The return order is the order nodes are first
// visited.
func Walk(kinds map[Kind]bool, root any) []any {
	var out []any
	walk(root, kinds, &out)
	return out
}

// WalkOne is a convenience wrapper for the common single-kind case.
func WalkOne(k Kind, root any) []any {
	return Walk(map[Kind]bool{k: true}, root)
}

func visit(node any, kinds map[Kind]bool, out *[]any) {
	if node == nil {
		return
	}
	if kinds[KindOf(node)] {
		*out = append(*out, node)
	}
}

func walk(node any, kinds map[Kind]bool, out *[]any) {
	if node == nil {
		return
	}
	visit(node, kinds, out)

	switch n := node.(type) {
	case *solidity.SourceUnit:
		for _, part := range n.Parts {
			walk(part, kinds, out)
		}

	// ---- source-unit / contract parts ----
	case *solidity.ContractDefinition:
		for _, b := range n.Base {
			for _, a := range b.Args {
				walk(a, kinds, out)
			}
		}
		for _, part := range n.Parts {
			walk(part, kinds, out)
		}
	case *solidity.FunctionDefinition:
		for _, p := range n.Params {
			walkParam(p, kinds, out)
		}
		for _, m := range n.Modifiers {
			for _, a := range m.Args {
				walk(a, kinds, out)
			}
		}
		for _, p := range n.Returns {
			walkParam(p, kinds, out)
		}
		if n.Body != nil {
			walk(n.Body, kinds, out)
		}
	case *solidity.VariableDefinition:
		walkTypeName(n.Type, kinds, out)
		if n.Initializer != nil {
			walk(n.Initializer, kinds, out)
		}
	case *solidity.StructDefinition:
		for _, f := range n.Fields {
			walkTypeName(f.Type, kinds, out)
		}
	case *solidity.EventDefinition:
		for _, f := range n.Fields {
			walkTypeName(f.Type, kinds, out)
		}
	case *solidity.ErrorDefinition:
		for _, f := range n.Fields {
			walkTypeName(f.Type, kinds, out)
		}
	case *solidity.TypeDefinition:
		walkTypeName(n.Type, kinds, out)
	case *solidity.UsingDirective:
		if n.Type != nil {
			walkTypeName(n.Type, kinds, out)
		}
	case *solidity.EnumDefinition, *solidity.PragmaDirective, *solidity.ImportDirective, *solidity.StraySemicolon:
		// no children

	// ---- statements ----
	case *solidity.BlockStatement:
		for _, s := range n.Statements {
			walk(s, kinds, out)
		}
	case *solidity.IfStatement:
		walk(n.Cond, kinds, out)
		walk(n.Then, kinds, out)
		if n.Else != nil {
			walk(n.Else, kinds, out)
		}
	case *solidity.WhileStatement:
		walk(n.Cond, kinds, out)
		walk(n.Body, kinds, out)
	case *solidity.ForStatement:
		if n.Init != nil {
			walk(n.Init, kinds, out)
		}
		if n.Cond != nil {
			walk(n.Cond, kinds, out)
		}
		if n.Post != nil {
			walk(n.Post, kinds, out)
		}
		if n.Body != nil {
			walk(n.Body, kinds, out)
		}
	case *solidity.DoWhileStatement:
		walk(n.Body, kinds, out)
		walk(n.Cond, kinds, out)
	case *solidity.TryStatement:
		// Only the success clause (expr, return params, body) is a target
		// of traversal; catch clauses are deliberately not walked.
		walk(n.Expr, kinds, out)
		for _, p := range n.ReturnParams {
			walkParam(p, kinds, out)
		}
		walk(n.Body, kinds, out)
	case *solidity.ExpressionStatement:
		walk(n.Expr, kinds, out)
	case *solidity.VariableDefinitionStatement:
		if n.Decl != nil {
			walkTypeName(n.Decl.Type, kinds, out)
		}
		if n.Initializer != nil {
			walk(n.Initializer, kinds, out)
		}
	case *solidity.ReturnStatement:
		if n.Value != nil {
			walk(n.Value, kinds, out)
		}
	case *solidity.RevertStatement:
		for _, a := range n.Args {
			walk(a, kinds, out)
		}
	case *solidity.RevertNamedArgsStatement:
		for _, a := range n.Args {
			walk(a.Value, kinds, out)
		}
	case *solidity.EmitStatement:
		walk(n.Event, kinds, out)
	case *solidity.OpaqueStatement, *solidity.ArgsStatement:
		// assembly/continue/break: no children

	// ---- expressions ----
	case *solidity.BinaryExpr:
		walk(n.Left, kinds, out)
		walk(n.Right, kinds, out)
	case *solidity.AssignExpr:
		walk(n.Left, kinds, out)
		walk(n.Right, kinds, out)
	case *solidity.UnaryExpr:
		walk(n.Operand, kinds, out)
	case *solidity.PostfixExpr:
		walk(n.Operand, kinds, out)
	case *solidity.ArrayLiteralExpr:
		for _, e := range n.Elements {
			walk(e, kinds, out)
		}
	case *solidity.ArraySliceExpr:
		walk(n.Base, kinds, out)
		if n.Low != nil {
			walk(n.Low, kinds, out)
		}
		if n.High != nil {
			walk(n.High, kinds, out)
		}
	case *solidity.ArraySubscriptExpr:
		walk(n.Base, kinds, out)
		if n.Index != nil {
			walk(n.Index, kinds, out)
		}
	case *solidity.MemberAccessExpr:
		walk(n.Expr, kinds, out)
	case *solidity.FunctionCallExpr:
		walk(n.Callee, kinds, out)
		for _, a := range n.Args {
			walk(a, kinds, out)
		}
	case *solidity.NamedFunctionCallExpr:
		walk(n.Callee, kinds, out)
		for _, a := range n.Args {
			walk(a.Value, kinds, out)
		}
	case *solidity.CallOptionsExpr:
		walk(n.Callee, kinds, out)
		for _, o := range n.Options {
			walk(o.Value, kinds, out)
		}
	case *solidity.ParenthesisExpr:
		walk(n.Inner, kinds, out)
	case *solidity.TernaryExpr:
		walk(n.Cond, kinds, out)
		walk(n.True, kinds, out)
		walk(n.False, kinds, out)
	case *solidity.TypeExpr:
		walkTypeName(n.Type, kinds, out)
	case *solidity.UnitExpr:
		walk(n.Value, kinds, out)
	case *solidity.ListExpr:
		for _, p := range n.Params {
			walkParam(p, kinds, out)
		}
	case *solidity.BoolLiteralExpr, *solidity.NumberLiteralExpr, *solidity.RationalNumberLiteralExpr,
		*solidity.HexNumberLiteralExpr, *solidity.HexLiteralExpr, *solidity.StringLiteralExpr,
		*solidity.AddressLiteralExpr, *solidity.IdentifierExpr, *solidity.ThisExpr:
		// terminal: no children
	}
}

func walkParam(p solidity.Param, kinds map[Kind]bool, out *[]any) {
	if p.Decl != nil {
		walkTypeName(p.Decl.Type, kinds, out)
	}
}

func walkTypeName(t *solidity.TypeName, kinds map[Kind]bool, out *[]any) {
	if t == nil {
		return
	}
	switch t.Kind {
	case solidity.TypeKindMapping:
		walk(t.MappingKey, kinds, out)
		walk(t.MappingValue, kinds, out)
	case solidity.TypeKindFunction:
		for _, p := range t.FuncParams {
			walkParam(p, kinds, out)
		}
		for _, p := range t.FuncReturns {
			walkParam(p, kinds, out)
		}
		for _, m := range t.FuncAttributes {
			for _, a := range m.Args {
				walk(a, kinds, out)
			}
		}
		for _, m := range t.FuncReturnAttrNames {
			for _, a := range m.Args {
				walk(a, kinds, out)
			}
		}
	case solidity.TypeKindArray:
		walkTypeName(t.ArrayBase, kinds, out)
		if t.ArrayLength != nil {
			walk(t.ArrayLength, kinds, out)
		}
	}
}
