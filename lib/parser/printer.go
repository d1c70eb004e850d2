package parser

import (
	"fmt"
	"strings"
)

// Dump renders a node as an indented tree with source lines, matching
// the closed variant set exhaustively. Useful for tooling and tests.
func Dump(n Node) string {
	var b strings.Builder
	writeNode(&b, n, 0)
	return b.String()
}

func writeNode(b *strings.Builder, n Node, depth int) {
	if n == nil {
		line(b, depth, "nil")
		return
	}

	switch v := n.(type) {
	case *Program:
		line(b, depth, "Program")
		writeStmts(b, v.Stmts, depth+1)
	case *FunctionDef:
		line(b, depth, "FunctionDef: %s (line %d)", v.Name, v.Line)
		for _, param := range v.Params {
			line(b, depth+1, "Param: %s", param)
		}
		writeStmts(b, v.Body, depth+1)
	case *ClassDef:
		if v.Parent != "" {
			line(b, depth, "ClassDef: %s(%s) (line %d)", v.Name, v.Parent, v.Line)
		} else {
			line(b, depth, "ClassDef: %s (line %d)", v.Name, v.Line)
		}
		writeStmts(b, v.Body, depth+1)
	case *IfStmt:
		line(b, depth, "If (line %d)", v.Line)
		for _, branch := range v.Branches {
			line(b, depth+1, "Branch (line %d)", branch.Line)
			writeNode(b, branch.Cond, depth+2)
			writeStmts(b, branch.Body, depth+2)
		}
		if v.Else != nil {
			line(b, depth+1, "Else")
			writeStmts(b, v.Else, depth+2)
		}
	case *WhileStmt:
		line(b, depth, "While (line %d)", v.Line)
		writeNode(b, v.Cond, depth+1)
		writeStmts(b, v.Body, depth+1)
	case *ForStmt:
		line(b, depth, "For: %s (line %d)", v.Var, v.Line)
		writeNode(b, v.Iter, depth+1)
		writeStmts(b, v.Body, depth+1)
	case *TryStmt:
		line(b, depth, "Try (line %d)", v.Line)
		writeStmts(b, v.Body, depth+1)
		for _, h := range v.Handlers {
			if h.Type != "" {
				line(b, depth+1, "Handler: %s (line %d)", h.Type, h.Line)
			} else {
				line(b, depth+1, "Handler (line %d)", h.Line)
			}
			writeStmts(b, h.Body, depth+2)
		}
		if v.Finally != nil {
			line(b, depth+1, "Finally")
			writeStmts(b, v.Finally, depth+2)
		}
	case *ImportStmt:
		line(b, depth, "Import: %s (line %d)", strings.Join(v.Modules, ", "), v.Line)
	case *AssignStmt:
		line(b, depth, "Assign: %s (line %d)", v.Name, v.Line)
		writeNode(b, v.Value, depth+1)
	case *ExprStmt:
		line(b, depth, "ExprStmt (line %d)", v.Line)
		writeNode(b, v.X, depth+1)
	case *ReturnStmt:
		line(b, depth, "Return (line %d)", v.Line)
		if v.Value != nil {
			writeNode(b, v.Value, depth+1)
		}
	case *BreakStmt:
		line(b, depth, "Break (line %d)", v.Line)
	case *ContinueStmt:
		line(b, depth, "Continue (line %d)", v.Line)
	case *MatchStmt:
		line(b, depth, "Match (line %d)", v.Line)
		writeNode(b, v.Subject, depth+1)
		for _, c := range v.Cases {
			if c.Pattern == nil {
				line(b, depth+1, "Case: _ (line %d)", c.Line)
			} else {
				line(b, depth+1, "Case (line %d)", c.Line)
				writeNode(b, c.Pattern, depth+2)
			}
			writeStmts(b, c.Body, depth+2)
		}
	case *BinaryExpr:
		line(b, depth, "BinaryOp: %s (line %d)", v.Op, v.Line)
		writeNode(b, v.Left, depth+1)
		writeNode(b, v.Right, depth+1)
	case *UnaryExpr:
		line(b, depth, "UnaryOp: %s (line %d)", v.Op, v.Line)
		writeNode(b, v.Operand, depth+1)
	case *CallExpr:
		line(b, depth, "Call (line %d)", v.Line)
		writeNode(b, v.Fn, depth+1)
		for _, arg := range v.Args {
			writeNode(b, arg, depth+1)
		}
	case *AttrExpr:
		line(b, depth, "Attribute: %s (line %d)", v.Name, v.Line)
		writeNode(b, v.X, depth+1)
	case *Ident:
		line(b, depth, "Identifier: %s (line %d)", v.Name, v.Line)
	case *NumberLit:
		line(b, depth, "Number: %s (line %d)", v.Value, v.Line)
	case *StringLit:
		line(b, depth, "String: %q (line %d)", v.Value, v.Line)
	case *BoolLit:
		line(b, depth, "Bool: %t (line %d)", v.Value, v.Line)
	case *BadExpr:
		line(b, depth, "BadExpr (line %d)", v.Line)
	default:
		line(b, depth, "Unknown(%T)", n)
	}
}

func writeStmts(b *strings.Builder, stmts []Stmt, depth int) {
	for _, s := range stmts {
		writeNode(b, s, depth)
	}
}

func line(b *strings.Builder, depth int, format string, args ...interface{}) {
	b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(b, format, args...)
	b.WriteByte('\n')
}
