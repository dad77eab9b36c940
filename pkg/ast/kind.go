// Package ast tags the concrete node types internal/solidity produces with
// a closed Kind enum and walks the tree collecting nodes of requested
// kinds. Detectors are written against Kind, not against internal/solidity's
// concrete types, so a detector never needs a type switch of its own.
package ast

import "github.com/0xkitsune/solstat/internal/solidity"

// Kind tags a syntax-tree node by its concrete shape. The zero value,
// KindNone, is what KindOf returns for the statements it does not classify
// (assembly, continue, break, and bare-argument statements) and for
// anything it does not recognize.
type Kind int

const (
	KindNone Kind = iota

	// Statements
	KindBlock
	KindIf
	KindWhile
	KindFor
	KindDoWhile
	KindTry
	KindExpressionStatement
	KindVariableDefinitionStatement
	KindReturn
	KindRevert
	KindRevertNamedArgs
	KindEmit

	// Expressions
	KindBinary
	KindAssign
	KindUnary
	KindPostfix
	KindArrayLiteral
	KindArraySlice
	KindArraySubscript
	KindMemberAccess
	KindFunctionCall
	KindNamedFunctionCall
	KindCallOptions
	KindParenthesis
	KindTernary
	KindType
	KindUnit
	KindList
	KindBoolLiteral
	KindNumberLiteral
	KindRationalNumberLiteral
	KindHexNumberLiteral
	KindHexLiteral
	KindStringLiteral
	KindAddressLiteral
	KindVariable
	KindThis

	// Source-unit / contract parts
	KindPragmaDirective
	KindImportDirective
	KindStraySemicolon
	KindUsing
	KindEnumDefinition
	KindEventDefinition
	KindErrorDefinition
	KindStructDefinition
	KindTypeDefinition
	KindVariableDefinition
	KindFunctionDefinition
	KindContractDefinition
)

// KindOf classifies a node produced by internal/solidity. Every expression
// type, literals included, has its own Kind; the opaque statements
// (assembly, continue, break) and argument-only statements share KindNone.
func KindOf(node any) Kind {
	switch node.(type) {
	case *solidity.BlockStatement:
		return KindBlock
	case *solidity.IfStatement:
		return KindIf
	case *solidity.WhileStatement:
		return KindWhile
	case *solidity.ForStatement:
		return KindFor
	case *solidity.DoWhileStatement:
		return KindDoWhile
	case *solidity.TryStatement:
		return KindTry
	case *solidity.ExpressionStatement:
		return KindExpressionStatement
	case *solidity.VariableDefinitionStatement:
		return KindVariableDefinitionStatement
	case *solidity.ReturnStatement:
		return KindReturn
	case *solidity.RevertStatement:
		return KindRevert
	case *solidity.RevertNamedArgsStatement:
		return KindRevertNamedArgs
	case *solidity.EmitStatement:
		return KindEmit
	case *solidity.OpaqueStatement:
		return KindNone
	case *solidity.ArgsStatement:
		return KindNone

	case *solidity.BinaryExpr:
		return KindBinary
	case *solidity.AssignExpr:
		return KindAssign
	case *solidity.UnaryExpr:
		return KindUnary
	case *solidity.PostfixExpr:
		return KindPostfix
	case *solidity.ArrayLiteralExpr:
		return KindArrayLiteral
	case *solidity.ArraySliceExpr:
		return KindArraySlice
	case *solidity.ArraySubscriptExpr:
		return KindArraySubscript
	case *solidity.MemberAccessExpr:
		return KindMemberAccess
	case *solidity.FunctionCallExpr:
		return KindFunctionCall
	case *solidity.NamedFunctionCallExpr:
		return KindNamedFunctionCall
	case *solidity.CallOptionsExpr:
		return KindCallOptions
	case *solidity.ParenthesisExpr:
		return KindParenthesis
	case *solidity.TernaryExpr:
		return KindTernary
	case *solidity.TypeExpr:
		return KindType
	case *solidity.UnitExpr:
		return KindUnit
	case *solidity.ListExpr:
		return KindList
	case *solidity.BoolLiteralExpr:
		return KindBoolLiteral
	case *solidity.NumberLiteralExpr:
		return KindNumberLiteral
	case *solidity.RationalNumberLiteralExpr:
		return KindRationalNumberLiteral
	case *solidity.HexNumberLiteralExpr:
		return KindHexNumberLiteral
	case *solidity.HexLiteralExpr:
		return KindHexLiteral
	case *solidity.StringLiteralExpr:
		return KindStringLiteral
	case *solidity.AddressLiteralExpr:
		return KindAddressLiteral
	case *solidity.IdentifierExpr:
		return KindVariable
	case *solidity.ThisExpr:
		return KindThis

	case *solidity.PragmaDirective:
		return KindPragmaDirective
	case *solidity.ImportDirective:
		return KindImportDirective
	case *solidity.StraySemicolon:
		return KindStraySemicolon
	case *solidity.UsingDirective:
		return KindUsing
	case *solidity.EnumDefinition:
		return KindEnumDefinition
	case *solidity.EventDefinition:
		return KindEventDefinition
	case *solidity.ErrorDefinition:
		return KindErrorDefinition
	case *solidity.StructDefinition:
		return KindStructDefinition
	case *solidity.TypeDefinition:
		return KindTypeDefinition
	case *solidity.VariableDefinition:
		return KindVariableDefinition
	case *solidity.FunctionDefinition:
		return KindFunctionDefinition
	case *solidity.ContractDefinition:
		return KindContractDefinition

	default:
		return KindNone
	}
}

// LocOf returns the source location of any node Walk can visit, or the
// zero Loc if node's type carries no location (nil or unrecognized).
func LocOf(node any) solidity.Loc {
	switch n := node.(type) {
	case *solidity.BlockStatement:
		return n.NodeLoc
	case *solidity.IfStatement:
		return n.NodeLoc
	case *solidity.WhileStatement:
		return n.NodeLoc
	case *solidity.ForStatement:
		return n.NodeLoc
	case *solidity.DoWhileStatement:
		return n.NodeLoc
	case *solidity.TryStatement:
		return n.NodeLoc
	case *solidity.ExpressionStatement:
		return n.NodeLoc
	case *solidity.VariableDefinitionStatement:
		return n.NodeLoc
	case *solidity.ReturnStatement:
		return n.NodeLoc
	case *solidity.RevertStatement:
		return n.NodeLoc
	case *solidity.RevertNamedArgsStatement:
		return n.NodeLoc
	case *solidity.EmitStatement:
		return n.NodeLoc
	case *solidity.OpaqueStatement:
		return n.NodeLoc
	case *solidity.BinaryExpr:
		return n.NodeLoc
	case *solidity.AssignExpr:
		return n.NodeLoc
	case *solidity.UnaryExpr:
		return n.NodeLoc
	case *solidity.PostfixExpr:
		return n.NodeLoc
	case *solidity.ArrayLiteralExpr:
		return n.NodeLoc
	case *solidity.ArraySliceExpr:
		return n.NodeLoc
	case *solidity.ArraySubscriptExpr:
		return n.NodeLoc
	case *solidity.MemberAccessExpr:
		return n.NodeLoc
	case *solidity.FunctionCallExpr:
		return n.NodeLoc
	case *solidity.NamedFunctionCallExpr:
		return n.NodeLoc
	case *solidity.CallOptionsExpr:
		return n.NodeLoc
	case *solidity.ParenthesisExpr:
		return n.NodeLoc
	case *solidity.TernaryExpr:
		return n.NodeLoc
	case *solidity.TypeExpr:
		return n.NodeLoc
	case *solidity.UnitExpr:
		return n.NodeLoc
	case *solidity.ListExpr:
		return n.NodeLoc
	case *solidity.BoolLiteralExpr:
		return n.NodeLoc
	case *solidity.NumberLiteralExpr:
		return n.NodeLoc
	case *solidity.RationalNumberLiteralExpr:
		return n.NodeLoc
	case *solidity.HexNumberLiteralExpr:
		return n.NodeLoc
	case *solidity.HexLiteralExpr:
		return n.NodeLoc
	case *solidity.StringLiteralExpr:
		return n.NodeLoc
	case *solidity.AddressLiteralExpr:
		return n.NodeLoc
	case *solidity.IdentifierExpr:
		return n.NodeLoc
	case *solidity.ThisExpr:
		return n.NodeLoc
	case *solidity.PragmaDirective:
		return n.NodeLoc
	case *solidity.ImportDirective:
		return n.NodeLoc
	case *solidity.StraySemicolon:
		return n.NodeLoc
	case *solidity.UsingDirective:
		return n.NodeLoc
	case *solidity.EnumDefinition:
		return n.NodeLoc
	case *solidity.EventDefinition:
		return n.NodeLoc
	case *solidity.ErrorDefinition:
		return n.NodeLoc
	case *solidity.StructDefinition:
		return n.NodeLoc
	case *solidity.TypeDefinition:
		return n.NodeLoc
	case *solidity.VariableDefinition:
		return n.NodeLoc
	case *solidity.FunctionDefinition:
		return n.NodeLoc
	case *solidity.ContractDefinition:
		return n.NodeLoc
	default:
		return solidity.Loc{}
	}
}
