package parser

import (
	"errors"
	"sort"

	"loom/internal/ast"
	"loom/token"
)

// Grammar is the loom grammar assembled once as a graph of combinator
// values. Rules that recurse (Expression, Statement, Block) refer to each
// other through the fields of the same Grammar, so no package-level
// mutable registry is involved.
type Grammar struct {
	Identifier     *Comb
	Integer        *Comb
	Comment        *Comb
	Expression     *Comb
	Initialization *Comb
	WhileLoop      *Comb
	Statement      *Comb
	Block          *Comb
	Program        *Comb

	operand        *Comb
	initialization *Comb
	whileLoop      *Comb
	openBrace      *Comb
	closeBrace     *Comb

	precedence bool
}

type Option func(*Grammar)

// WithPrecedence replaces the flat right-recursive Expression rule with
// precedence climbing: '*' binds tighter than '+' and both associate to
// the left.
func WithPrecedence() Option {
	return func(g *Grammar) {
		g.precedence = true
	}
}

func NewGrammar(opts ...Option) *Grammar {
	g := &Grammar{}
	for _, opt := range opts {
		opt(g)
	}

	g.Identifier = Node("Identifier", parseIdentifier)
	g.Integer = Node("IntegerLiteral", parseIntegerLiteral)
	g.Comment = Node("Comment", parseComment)
	if g.precedence {
		g.Expression = Node("Expression", g.parsePrecedenceExpression)
	} else {
		g.Expression = Node("Expression", g.parseExpression)
	}
	g.Initialization = Node("Initialization", g.parseInitialization)
	g.WhileLoop = Node("WhileLoop", g.parseWhileLoop)
	g.Statement = Node("Statement", g.parseStatement)
	g.Block = Node("Block", g.parseBlock)
	g.Program = Node("Program", g.parseProgram)

	// numeric literals are tried first
	g.operand = g.Integer.Or(g.Identifier)

	g.initialization = Terminal(token.LET).
		Then(g.Identifier).
		Then(Terminal(token.ASSIGN)).
		Then(g.Expression).
		Then(Terminal(token.SEMICOLON))

	g.whileLoop = Terminal(token.WHILE).
		Then(Terminal(token.LPAREN)).
		Then(g.Expression).
		Then(Terminal(token.RPAREN)).
		Then(g.Block)

	g.openBrace = Terminal(token.LBRACE)
	g.closeBrace = Terminal(token.RBRACE)

	return g
}

// Entry returns the rule registered under name.
func (g *Grammar) Entry(name string) (*Comb, bool) {
	c, ok := g.entries()[name]
	return c, ok
}

// EntryNames lists the names accepted by Entry, sorted.
func EntryNames() []string {
	names := make([]string, 0, 8)
	for name := range (&Grammar{}).entries() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (g *Grammar) entries() map[string]*Comb {
	return map[string]*Comb{
		"program":        g.Program,
		"statement":      g.Statement,
		"block":          g.Block,
		"while":          g.WhileLoop,
		"initialization": g.Initialization,
		"expression":     g.Expression,
		"identifier":     g.Identifier,
		"integer":        g.Integer,
	}
}

func parseIdentifier(s *token.Stream) (ast.Node, error) {
	tok, ok := s.Advance()
	if !ok {
		return nil, errEOF("identifier")
	}
	if tok.Kind != token.IDENTIFIER {
		return nil, errWrongTokenKind(tok, "identifier")
	}
	return &ast.Ident{Pos: tok.Position, Name: tok.Text}, nil
}

func parseIntegerLiteral(s *token.Stream) (ast.Node, error) {
	tok, ok := s.Advance()
	if !ok {
		return nil, errEOF("integer literal")
	}
	if tok.Kind != token.INTEGER {
		return nil, errWrongTokenKind(tok, "integer literal")
	}
	return &ast.IntegerLiteral{Pos: tok.Position, Value: tok.Value}, nil
}

func parseComment(s *token.Stream) (ast.Node, error) {
	tok, ok := s.Advance()
	if !ok {
		return nil, errEOF("comment")
	}
	if tok.Kind != token.COMMENT {
		return nil, errWrongTokenKind(tok, "comment")
	}
	return &ast.Comment{Pos: tok.Position, Text: tok.Text}, nil
}

func (g *Grammar) parseOperand(s *token.Stream) (ast.Expr, error) {
	nodes, err := g.operand.Parse(s)
	if err != nil {
		// name both alternatives instead of only the last one tried
		var pe *ParseError
		if errors.As(err, &pe) {
			switch pe.Kind {
			case UnexpectedEOF:
				return nil, errEOF(operandDescription)
			case WrongTokenKind:
				return nil, errWrongTokenKind(*pe.Found, operandDescription)
			}
		}
		return nil, err
	}
	return nodes[0].(ast.Expr), nil
}

const operandDescription = "integer literal or identifier"

func isTerminator(k token.Kind) bool {
	return k == token.SEMICOLON || k == token.RPAREN
}

// parseExpression reads an operand and, if an operator follows, recurses
// into the full Expression rule for the right-hand side. '+' and '*'
// therefore share one precedence level and associate to the right:
// 1*2+3 is Multiplication(1, Addition(2, 3)).
func (g *Grammar) parseExpression(s *token.Stream) (ast.Node, error) {
	left, err := g.parseOperand(s)
	if err != nil {
		return nil, err
	}

	next, ok := s.Peek()
	if !ok || isTerminator(next.Kind) {
		return left, nil
	}
	if next.Kind != token.PLUS && next.Kind != token.STAR {
		return nil, errUnhandled(next, "expression")
	}
	s.Advance()

	nodes, err := g.Expression.Parse(s)
	if err != nil {
		return nil, err
	}
	return binary(next.Kind, left, nodes[0].(ast.Expr)), nil
}

var binaryPrecedence = map[token.Kind]int{
	token.PLUS: 1,
	token.STAR: 2,
}

func (g *Grammar) parsePrecedenceExpression(s *token.Stream) (ast.Node, error) {
	expr, err := g.climb(s, 1)
	if err != nil {
		return nil, err
	}
	return expr, nil
}

func (g *Grammar) climb(s *token.Stream, minPrec int) (ast.Expr, error) {
	left, err := g.parseOperand(s)
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := s.Peek()
		if !ok || isTerminator(tok.Kind) {
			break
		}
		prec, isOp := binaryPrecedence[tok.Kind]
		if !isOp {
			return nil, errUnhandled(tok, "expression")
		}
		if prec < minPrec {
			break
		}

		s.Advance()
		right, err := g.climb(s, prec+1)
		if err != nil {
			return nil, err
		}
		left = binary(tok.Kind, left, right)
	}

	return left, nil
}

func binary(op token.Kind, left, right ast.Expr) ast.Expr {
	if op == token.STAR {
		return &ast.Multiplication{Pos: left.NodePos(), Left: left, Right: right}
	}
	return &ast.Addition{Pos: left.NodePos(), Left: left, Right: right}
}

func startPos(s *token.Stream) token.Position {
	tok, _ := s.Peek()
	return tok.Position
}

func (g *Grammar) parseInitialization(s *token.Stream) (ast.Node, error) {
	pos := startPos(s)
	nodes, err := g.initialization.Parse(s)
	if err != nil {
		return nil, err
	}
	return &ast.Initialization{
		Pos:   pos,
		Name:  nodes[0].(*ast.Ident),
		Value: nodes[1].(ast.Expr),
	}, nil
}

func (g *Grammar) parseWhileLoop(s *token.Stream) (ast.Node, error) {
	pos := startPos(s)
	nodes, err := g.whileLoop.Parse(s)
	if err != nil {
		return nil, err
	}
	return &ast.WhileLoop{
		Pos:       pos,
		Condition: nodes[0].(ast.Expr),
		Block:     nodes[1].(*ast.Block),
	}, nil
}

// parseStatement picks the alternative from the leading token. The
// alternatives start with distinct tokens, so this accepts what the ordered
// choice Initialization | WhileLoop | Comment accepts, but a failure is
// reported from the statement that was written and nothing is parsed twice.
func (g *Grammar) parseStatement(s *token.Stream) (ast.Node, error) {
	tok, ok := s.Peek()
	if !ok {
		return nil, errEOF("statement")
	}
	var alt *Comb
	switch tok.Kind {
	case token.LET:
		alt = g.Initialization
	case token.WHILE:
		alt = g.WhileLoop
	case token.COMMENT:
		alt = g.Comment
	default:
		s.Advance()
		return nil, errUnhandled(tok, "statement position")
	}
	nodes, err := alt.Parse(s)
	if err != nil {
		return nil, err
	}
	return nodes[0], nil
}

// parseBlock reads '{' statement* '}'. Repetition lives here because the
// combinator algebra has no repetition primitive.
func (g *Grammar) parseBlock(s *token.Stream) (ast.Node, error) {
	pos := startPos(s)
	if _, err := g.openBrace.Parse(s); err != nil {
		return nil, err
	}

	block := &ast.Block{Pos: pos}
	for {
		tok, ok := s.Peek()
		if !ok || tok.Kind == token.RBRACE {
			break
		}
		nodes, err := g.Statement.Parse(s)
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, nodes[0].(ast.Stmt))
	}

	if _, err := g.closeBrace.Parse(s); err != nil {
		return nil, err
	}
	return block, nil
}

func (g *Grammar) parseProgram(s *token.Stream) (ast.Node, error) {
	prog := &ast.Program{Pos: startPos(s)}
	for !s.AtEnd() {
		nodes, err := g.Statement.Parse(s)
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, nodes[0].(ast.Stmt))
	}
	return prog, nil
}
