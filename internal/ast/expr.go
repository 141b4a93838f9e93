package ast

// Expr is the closed set of expressions: *Ident, *IntegerLiteral,
// *Addition and *Multiplication.
type Expr interface {
	Node
	isExpr()
}

func (*Ident) isExpr() {}

func (*IntegerLiteral) isExpr() {}

func (*Addition) isExpr() {}

func (*Multiplication) isExpr() {}

// Stmt is a statement inside a block or program.
type Stmt interface {
	Node
	isStmt()
}

func (*Initialization) isStmt() {}

func (*WhileLoop) isStmt() {}

func (*Comment) isStmt() {}
