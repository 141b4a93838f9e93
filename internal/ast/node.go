package ast

import "loom/token"

type Position = token.Position

// Node is implemented by every AST node. Nodes are built bottom-up by the
// parser and never mutated afterwards; children are owned by exactly one
// parent.
type Node interface {
	NodePos() Position
	NodeType() NodeType
	String() string
}

type Ident struct {
	Pos  Position
	Name string
}

type IntegerLiteral struct {
	Pos   Position
	Value uint64
}

// Addition and Multiplication take their position from the left operand.
type Addition struct {
	Pos   Position
	Left  Expr
	Right Expr
}

type Multiplication struct {
	Pos   Position
	Left  Expr
	Right Expr
}

type Comment struct {
	Pos  Position
	Text string
}

type Initialization struct {
	Pos   Position
	Name  *Ident
	Value Expr
}

type Block struct {
	Pos        Position
	Statements []Stmt
}

type WhileLoop struct {
	Pos       Position
	Condition Expr
	Block     *Block
}

// Program is the root produced by the program entry rule.
type Program struct {
	Pos        Position
	Statements []Stmt
}

func (i *Ident) NodePos() Position { return i.Pos }
func (*Ident) NodeType() NodeType  { return IDENT }

func (l *IntegerLiteral) NodePos() Position { return l.Pos }
func (*IntegerLiteral) NodeType() NodeType  { return INTEGER_LITERAL }

func (a *Addition) NodePos() Position { return a.Pos }
func (*Addition) NodeType() NodeType  { return ADDITION }

func (m *Multiplication) NodePos() Position { return m.Pos }
func (*Multiplication) NodeType() NodeType  { return MULTIPLICATION }

func (c *Comment) NodePos() Position { return c.Pos }
func (*Comment) NodeType() NodeType  { return COMMENT }

func (i *Initialization) NodePos() Position { return i.Pos }
func (*Initialization) NodeType() NodeType  { return INITIALIZATION }

func (b *Block) NodePos() Position { return b.Pos }
func (*Block) NodeType() NodeType  { return BLOCK }

func (w *WhileLoop) NodePos() Position { return w.Pos }
func (*WhileLoop) NodeType() NodeType  { return WHILE_LOOP }

func (p *Program) NodePos() Position { return p.Pos }
func (*Program) NodeType() NodeType  { return PROGRAM }
