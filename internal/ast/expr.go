package ast

import "plcc/internal/source"

type Expr interface {
	Span() source.Span
	exprNode()
}

type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNotEq
	OpLt
	OpLtEq
	OpGt
	OpGtEq
	OpAnd
	OpOr
	OpXor
)

var binaryOpText = [...]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "MOD",
	OpEq: "=", OpNotEq: "<>", OpLt: "<", OpLtEq: "<=", OpGt: ">", OpGtEq: ">=",
	OpAnd: "AND", OpOr: "OR", OpXor: "XOR",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// IsComparison reports whether op yields BOOL regardless of operand type.
func (op BinaryOp) IsComparison() bool {
	return op >= OpEq && op <= OpGtEq
}

type UnaryOp uint8

const (
	OpNeg UnaryOp = iota
	OpNot
)

func (op UnaryOp) String() string {
	if op == OpNot {
		return "NOT"
	}
	return "-"
}

// Ident references a variable, POU or global by name.
type Ident struct {
	Name string
	Sp   source.Span
}

// MemberExpr is `X.Name`.
type MemberExpr struct {
	X    Expr
	Name string
	Sp   source.Span
}

type IntLit struct {
	Value int64
	Sp    source.Span
}

type RealLit struct {
	Value float64
	Text  string
	Sp    source.Span
}

type BoolLit struct {
	Value bool
	Sp    source.Span
}

// StringLit holds the decoded literal value, escapes already applied.
type StringLit struct {
	Value string
	Sp    source.Span
}

type BinaryExpr struct {
	Op   BinaryOp
	X, Y Expr
	Sp   source.Span
}

type UnaryExpr struct {
	Op UnaryOp
	X  Expr
	Sp source.Span
}

type ArgKind uint8

const (
	ArgPositional ArgKind = iota
	ArgInput              // name := value
	ArgOutput             // name => target
)

type Arg struct {
	Kind  ArgKind
	Name  string // formal parameter, empty for positional
	Value Expr
	Sp    source.Span
}

// CallExpr invokes a POU. Callee is an Ident for functions and programs and
// an Ident or MemberExpr naming an instance for function blocks.
type CallExpr struct {
	Callee Expr
	Args   []Arg
	Sp     source.Span
}

func (e *Ident) Span() source.Span      { return e.Sp }
func (e *MemberExpr) Span() source.Span { return e.Sp }
func (e *IntLit) Span() source.Span     { return e.Sp }
func (e *RealLit) Span() source.Span    { return e.Sp }
func (e *BoolLit) Span() source.Span    { return e.Sp }
func (e *StringLit) Span() source.Span  { return e.Sp }
func (e *BinaryExpr) Span() source.Span { return e.Sp }
func (e *UnaryExpr) Span() source.Span  { return e.Sp }
func (e *CallExpr) Span() source.Span   { return e.Sp }

func (*Ident) exprNode()      {}
func (*MemberExpr) exprNode() {}
func (*IntLit) exprNode()     {}
func (*RealLit) exprNode()    {}
func (*BoolLit) exprNode()    {}
func (*StringLit) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*UnaryExpr) exprNode()  {}
func (*CallExpr) exprNode()   {}
