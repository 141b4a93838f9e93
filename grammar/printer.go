package grammar

import (
	"fmt"
	"strings"
)

func indent(level int) string {
	return strings.Repeat("    ", level)
}

func (p *Program) String() string {
	var b strings.Builder
	for _, s := range p.Statements {
		b.WriteString(s.StringWithIndent(0))
	}
	return b.String()
}

func (s *Statement) StringWithIndent(level int) string {
	switch {
	case s.Let != nil:
		return indent(level) + s.Let.String() + "\n"
	case s.While != nil:
		return s.While.StringWithIndent(level)
	}
	return ""
}

func (l *LetStmt) String() string {
	return fmt.Sprintf("let %s = %s;", l.Name.Value, l.Value)
}

func (w *WhileStmt) StringWithIndent(level int) string {
	return fmt.Sprintf("%swhile (%s) %s", indent(level), w.Condition, w.Body.StringWithIndent(level))
}

func (b *Block) StringWithIndent(level int) string {
	if len(b.Statements) == 0 {
		return "{}\n"
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b.Statements {
		sb.WriteString(s.StringWithIndent(level + 1))
	}
	sb.WriteString(indent(level) + "}\n")
	return sb.String()
}

func (e *Expr) String() string {
	if e.Tail == nil {
		return e.Operand.String()
	}
	return fmt.Sprintf("%s %s %s", e.Operand, e.Tail.Op, e.Tail.Rest)
}

func (o *Operand) String() string {
	switch {
	case o.Int != nil:
		return *o.Int
	case o.Ident != nil:
		return *o.Ident
	}
	return ""
}
