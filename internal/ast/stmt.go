package ast

import "plcc/internal/source"

type Stmt interface {
	Span() source.Span
	stmtNode()
}

// AssignStmt is `target := value;`.
type AssignStmt struct {
	Target Expr
	Value  Expr
	Sp     source.Span
}

// ExprStmt is an expression evaluated for its effects, usually a call.
type ExprStmt struct {
	X  Expr
	Sp source.Span
}

type EmptyStmt struct {
	Sp source.Span
}

func (s *AssignStmt) Span() source.Span { return s.Sp }
func (s *ExprStmt) Span() source.Span   { return s.Sp }
func (s *EmptyStmt) Span() source.Span  { return s.Sp }

func (*AssignStmt) stmtNode() {}
func (*ExprStmt) stmtNode()   {}
func (*EmptyStmt) stmtNode()  {}
