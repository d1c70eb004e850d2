package parser

// Node is any node of the syntax tree. Every node carries the source
// line it started on, for diagnostics.
type Node interface {
	Pos() int
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of every parse, even a failed one.
type Program struct {
	Stmts []Stmt
}

func (p *Program) Pos() int {
	if len(p.Stmts) > 0 {
		return p.Stmts[0].Pos()
	}
	return 1
}

// FunctionDef is a quest definition: quest name(params): body.
type FunctionDef struct {
	Line   int
	Name   string
	Params []string
	Body   []Stmt
}

// ClassDef is a guild definition, with an optional parent guild.
type ClassDef struct {
	Line   int
	Name   string
	Parent string
	Body   []Stmt
}

// CondBranch is one (condition, block) pair of an IfStmt.
type CondBranch struct {
	Line int
	Cond Expr
	Body []Stmt
}

// IfStmt folds a spot header, its counter clauses and an optional dodge
// clause into one node. Branches are ordered top to bottom and evaluate
// first-true-wins.
type IfStmt struct {
	Line     int
	Branches []CondBranch
	Else     []Stmt
}

// WhileStmt is a replay loop.
type WhileStmt struct {
	Line int
	Cond Expr
	Body []Stmt
}

// ForStmt is a farm loop: farm var in iter: body.
type ForStmt struct {
	Line int
	Var  string
	Iter Expr
	Body []Stmt
}

// Handler is one gameOver clause. An empty Type marks the untyped
// catch-all.
type Handler struct {
	Line int
	Type string
	Body []Stmt
}

// TryStmt is an embark block with its handlers and optional savePoint
// cleanup block. Handlers keep source order even when misordered.
type TryStmt struct {
	Line     int
	Body     []Stmt
	Handlers []Handler
	Finally  []Stmt
}

// ImportStmt is a summon statement naming one or more modules.
type ImportStmt struct {
	Line    int
	Modules []string
}

// AssignStmt binds the value of an expression to a name. Compound
// assignments are desugared before this node is built.
type AssignStmt struct {
	Line  int
	Name  string
	Value Expr
}

// ExprStmt is an expression in statement position, such as a call.
type ExprStmt struct {
	Line int
	X    Expr
}

// ReturnStmt is a reward statement. Value is nil for a bare reward.
type ReturnStmt struct {
	Line  int
	Value Expr
}

type BreakStmt struct {
	Line int
}

type ContinueStmt struct {
	Line int
}

// MatchCase is one case clause. A nil Pattern is the wildcard.
type MatchCase struct {
	Line    int
	Pattern Expr
	Body    []Stmt
}

// MatchStmt is an encounter statement with its ordered case clauses.
// Cases keep source order even when a wildcard appears early.
type MatchStmt struct {
	Line    int
	Subject Expr
	Cases   []MatchCase
}

func (s *FunctionDef) Pos() int  { return s.Line }
func (s *ClassDef) Pos() int     { return s.Line }
func (s *IfStmt) Pos() int       { return s.Line }
func (s *WhileStmt) Pos() int    { return s.Line }
func (s *ForStmt) Pos() int      { return s.Line }
func (s *TryStmt) Pos() int      { return s.Line }
func (s *ImportStmt) Pos() int   { return s.Line }
func (s *AssignStmt) Pos() int   { return s.Line }
func (s *ExprStmt) Pos() int     { return s.Line }
func (s *ReturnStmt) Pos() int   { return s.Line }
func (s *BreakStmt) Pos() int    { return s.Line }
func (s *ContinueStmt) Pos() int { return s.Line }
func (s *MatchStmt) Pos() int    { return s.Line }

func (s *FunctionDef) stmtNode()  {}
func (s *ClassDef) stmtNode()     {}
func (s *IfStmt) stmtNode()       {}
func (s *WhileStmt) stmtNode()    {}
func (s *ForStmt) stmtNode()      {}
func (s *TryStmt) stmtNode()      {}
func (s *ImportStmt) stmtNode()   {}
func (s *AssignStmt) stmtNode()   {}
func (s *ExprStmt) stmtNode()     {}
func (s *ReturnStmt) stmtNode()   {}
func (s *BreakStmt) stmtNode()    {}
func (s *ContinueStmt) stmtNode() {}
func (s *MatchStmt) stmtNode()    {}

// BinaryExpr applies Op to Left and Right.
type BinaryExpr struct {
	Line        int
	Op          string
	Left, Right Expr
}

// UnaryExpr applies a prefix operator to its operand.
type UnaryExpr struct {
	Line    int
	Op      string
	Operand Expr
}

// CallExpr invokes Fn with ordered arguments.
type CallExpr struct {
	Line int
	Fn   Expr
	Args []Expr
}

// AttrExpr is attribute access: X.Name.
type AttrExpr struct {
	Line int
	X    Expr
	Name string
}

type Ident struct {
	Line int
	Name string
}

// NumberLit keeps the literal as written; a dot marks a float.
type NumberLit struct {
	Line  int
	Value string
}

// StringLit holds the unquoted, unescaped text.
type StringLit struct {
	Line  int
	Value string
}

type BoolLit struct {
	Line  int
	Value bool
}

// BadExpr stands in where an expression could not be parsed, so the
// surrounding tree survives.
type BadExpr struct {
	Line int
}

func (e *BinaryExpr) Pos() int { return e.Line }
func (e *UnaryExpr) Pos() int  { return e.Line }
func (e *CallExpr) Pos() int   { return e.Line }
func (e *AttrExpr) Pos() int   { return e.Line }
func (e *Ident) Pos() int      { return e.Line }
func (e *NumberLit) Pos() int  { return e.Line }
func (e *StringLit) Pos() int  { return e.Line }
func (e *BoolLit) Pos() int    { return e.Line }
func (e *BadExpr) Pos() int    { return e.Line }

func (e *BinaryExpr) exprNode() {}
func (e *UnaryExpr) exprNode()  {}
func (e *CallExpr) exprNode()   {}
func (e *AttrExpr) exprNode()   {}
func (e *Ident) exprNode()      {}
func (e *NumberLit) exprNode()  {}
func (e *StringLit) exprNode()  {}
func (e *BoolLit) exprNode()    {}
func (e *BadExpr) exprNode()    {}
