package grammar

import (
	"fmt"
	"strconv"

	"loom/internal/ast"
)

// ToAST converts the parse tree into the AST produced by the combinator
// parser's program rule.
func (p *Program) ToAST() (*ast.Program, error) {
	prog := &ast.Program{Pos: p.Pos}
	if len(p.Statements) == 0 {
		prog.Pos = ast.Position{}
	}
	stmts, err := convertStatements(p.Statements)
	if err != nil {
		return nil, err
	}
	prog.Statements = stmts
	return prog, nil
}

func convertStatements(in []*Statement) ([]ast.Stmt, error) {
	var out []ast.Stmt
	for _, s := range in {
		stmt, err := s.toAST()
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

func (s *Statement) toAST() (ast.Stmt, error) {
	switch {
	case s.Let != nil:
		return s.Let.toAST()
	case s.While != nil:
		return s.While.toAST()
	}
	return nil, fmt.Errorf("%s: empty statement", s.Pos)
}

func (l *LetStmt) toAST() (*ast.Initialization, error) {
	value, err := l.Value.toAST()
	if err != nil {
		return nil, err
	}
	return &ast.Initialization{
		Pos:   l.Pos,
		Name:  &ast.Ident{Pos: l.Name.Pos, Name: l.Name.Value},
		Value: value,
	}, nil
}

func (w *WhileStmt) toAST() (*ast.WhileLoop, error) {
	cond, err := w.Condition.toAST()
	if err != nil {
		return nil, err
	}
	body, err := w.Body.toAST()
	if err != nil {
		return nil, err
	}
	return &ast.WhileLoop{Pos: w.Pos, Condition: cond, Block: body}, nil
}

func (b *Block) toAST() (*ast.Block, error) {
	stmts, err := convertStatements(b.Statements)
	if err != nil {
		return nil, err
	}
	return &ast.Block{Pos: b.Pos, Statements: stmts}, nil
}

func (e *Expr) toAST() (ast.Expr, error) {
	left, err := e.Operand.toAST()
	if err != nil {
		return nil, err
	}
	if e.Tail == nil {
		return left, nil
	}

	right, err := e.Tail.Rest.toAST()
	if err != nil {
		return nil, err
	}
	if e.Tail.Op == "*" {
		return &ast.Multiplication{Pos: left.NodePos(), Left: left, Right: right}, nil
	}
	return &ast.Addition{Pos: left.NodePos(), Left: left, Right: right}, nil
}

func (o *Operand) toAST() (ast.Expr, error) {
	switch {
	case o.Int != nil:
		v, err := strconv.ParseUint(*o.Int, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: integer literal %s does not fit in 64 bits", o.Pos, *o.Int)
		}
		return &ast.IntegerLiteral{Pos: o.Pos, Value: v}, nil
	case o.Ident != nil:
		return &ast.Ident{Pos: o.Pos, Name: *o.Ident}, nil
	}
	return nil, fmt.Errorf("%s: empty operand", o.Pos)
}
