package ast

import (
	"fmt"
	"strconv"
	"strings"
)

func (i *Ident) String() string {
	return i.Name
}

func (l *IntegerLiteral) String() string {
	return strconv.FormatUint(l.Value, 10)
}

func (a *Addition) String() string {
	return fmt.Sprintf("(%s + %s)", a.Left.String(), a.Right.String())
}

func (m *Multiplication) String() string {
	return fmt.Sprintf("(%s * %s)", m.Left.String(), m.Right.String())
}

func (c *Comment) String() string {
	return "//" + c.Text
}

func (i *Initialization) String() string {
	return fmt.Sprintf("let %s = %s;", i.Name.String(), i.Value.String())
}

func (b *Block) String() string {
	if len(b.Statements) == 0 {
		return "{}"
	}

	var sb strings.Builder
	sb.WriteString("{\n")
	for _, stmt := range b.Statements {
		sb.WriteString("  " + strings.ReplaceAll(stmt.String(), "\n", "\n  ") + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}

func (w *WhileLoop) String() string {
	return fmt.Sprintf("while (%s) %s", w.Condition.String(), w.Block.String())
}

func (p *Program) String() string {
	parts := make([]string, len(p.Statements))
	for i, stmt := range p.Statements {
		parts[i] = stmt.String()
	}
	return strings.Join(parts, "\n")
}

// Debug renders the tree structure with variant names, e.g.
// Addition(Num(1), Multiplication(Num(2), Id(x))).
func Debug(node Node) string {
	var sb strings.Builder
	writeDebug(&sb, node)
	return sb.String()
}

func writeDebug(sb *strings.Builder, node Node) {
	switch n := node.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *Ident:
		fmt.Fprintf(sb, "Id(%s)", n.Name)
	case *IntegerLiteral:
		fmt.Fprintf(sb, "Num(%d)", n.Value)
	case *Addition:
		writeBinary(sb, "Addition", n.Left, n.Right)
	case *Multiplication:
		writeBinary(sb, "Multiplication", n.Left, n.Right)
	case *Comment:
		fmt.Fprintf(sb, "Comment(%q)", n.Text)
	case *Initialization:
		fmt.Fprintf(sb, "Initialization{name: %q, value: ", n.Name.Name)
		writeDebug(sb, n.Value)
		sb.WriteString("}")
	case *WhileLoop:
		sb.WriteString("WhileLoop{condition: ")
		writeDebug(sb, n.Condition)
		sb.WriteString(", block: ")
		writeDebug(sb, n.Block)
		sb.WriteString("}")
	case *Block:
		writeList(sb, "Block", n.Statements)
	case *Program:
		writeList(sb, "Program", n.Statements)
	default:
		fmt.Fprintf(sb, "%s(%s)", node.NodeType(), node.String())
	}
}

func writeBinary(sb *strings.Builder, name string, left, right Expr) {
	sb.WriteString(name + "(")
	writeDebug(sb, left)
	sb.WriteString(", ")
	writeDebug(sb, right)
	sb.WriteString(")")
}

func writeList(sb *strings.Builder, name string, stmts []Stmt) {
	sb.WriteString(name + "[")
	for i, stmt := range stmts {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeDebug(sb, stmt)
	}
	sb.WriteString("]")
}
