package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

type Program struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	Statements []*Statement `@@*`
}

type Statement struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Let    *LetStmt   `  @@`
	While  *WhileStmt `| @@`
}

type PosIdent struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  string `(?! "let" | "while" | "fn") @Ident`
}

type LetStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   PosIdent `"let" @@ "="`
	Value  *Expr    `@@ ";"`
}

type WhileStmt struct {
	Pos       lexer.Position
	EndPos    lexer.Position
	Condition *Expr  `"while" "(" @@ ")"`
	Body      *Block `@@`
}

type Block struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	Statements []*Statement `"{" @@* "}"`
}

// Expr is right-recursive: an operand optionally followed by an operator
// and another Expr. Both operators share one precedence level.
type Expr struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Operand *Operand  `@@`
	Tail    *ExprTail `@@?`
}

type ExprTail struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Op     string `@("+" | "*")`
	Rest   *Expr  `@@`
}

type Operand struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Int    *string `  @Integer`
	Ident  *string `| (?! "let" | "while" | "fn") @Ident`
}
