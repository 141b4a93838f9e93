package parser

import (
	"fmt"

	"github.com/tliron/commonlog"

	"loom/internal/ast"
	"loom/token"
)

type Variant int

const (
	VariantTerminal Variant = iota
	VariantNode
	VariantSequence
	VariantEither
	VariantOptional
)

// Rule parses one AST production starting at the current stream position.
// It advances the stream as far as it needs and does not roll back on
// failure; enclosing Either and Optional combinators do that.
type Rule func(s *token.Stream) (ast.Node, error)

// Comb is an immutable grammar rule value. It holds no parse state, so one
// value can be parsed against any number of streams.
type Comb struct {
	variant Variant
	kind    token.Kind // terminal
	name    string     // node
	rule    Rule       // node
	first   *Comb      // sequence, either, optional
	second  *Comb      // sequence, either
}

// Terminal requires the next token to be of kind. It contributes no node.
func Terminal(kind token.Kind) *Comb {
	return &Comb{variant: VariantTerminal, kind: kind}
}

// Node delegates to rule, which yields exactly one node.
func Node(name string, rule Rule) *Comb {
	return &Comb{variant: VariantNode, name: name, rule: rule}
}

func Sequence(first, second *Comb) *Comb {
	return &Comb{variant: VariantSequence, first: first, second: second}
}

func Either(left, right *Comb) *Comb {
	return &Comb{variant: VariantEither, first: left, second: right}
}

func Optional(inner *Comb) *Comb {
	return &Comb{variant: VariantOptional, first: inner}
}

// Then builds Sequence(c, next).
func (c *Comb) Then(next *Comb) *Comb {
	return Sequence(c, next)
}

// Or builds Either(c, alt).
func (c *Comb) Or(alt *Comb) *Comb {
	return Either(c, alt)
}

// Opt builds Optional(c).
func (c *Comb) Opt() *Comb {
	return Optional(c)
}

func (c *Comb) Variant() Variant {
	return c.variant
}

func (c *Comb) String() string {
	switch c.variant {
	case VariantTerminal:
		return fmt.Sprintf("Terminal(%s)", c.kind)
	case VariantNode:
		return fmt.Sprintf("Node(%s)", c.name)
	case VariantSequence:
		return fmt.Sprintf("Sequence(%s, %s)", c.first, c.second)
	case VariantEither:
		return fmt.Sprintf("Either(%s, %s)", c.first, c.second)
	case VariantOptional:
		return fmt.Sprintf("Optional(%s)", c.first)
	}
	return fmt.Sprintf("Comb(%d)", c.variant)
}

// Parse interprets the rule against s. Either and Optional are the only
// variants that absorb a failure, and they always restore the index they
// saw on entry before doing so. Sequence leaves the stream wherever the
// failing child stopped.
func (c *Comb) Parse(s *token.Stream) ([]ast.Node, error) {
	switch c.variant {
	case VariantTerminal:
		tok, ok := s.Advance()
		if !ok {
			return nil, errEOF(c.kind.Describe())
		}
		if tok.Kind != c.kind {
			return nil, errUnexpectedToken(tok, c.kind)
		}
		return nil, nil

	case VariantNode:
		node, err := c.rule(s)
		if err != nil {
			return nil, err
		}
		return []ast.Node{node}, nil

	case VariantSequence:
		first, err := c.first.Parse(s)
		if err != nil {
			return nil, err
		}
		second, err := c.second.Parse(s)
		if err != nil {
			return nil, err
		}
		return append(first, second...), nil

	case VariantEither:
		start := s.Index()
		nodes, err := c.first.Parse(s)
		if err == nil {
			return nodes, nil
		}
		traceRollback(c, s.Index(), start, err)
		s.SetIndex(start)
		return c.second.Parse(s)

	case VariantOptional:
		start := s.Index()
		nodes, err := c.first.Parse(s)
		if err != nil {
			traceRollback(c, s.Index(), start, err)
			s.SetIndex(start)
			return nil, nil
		}
		return nodes, nil
	}

	panic(fmt.Sprintf("parser: unknown combinator variant %d", c.variant))
}

func traceRollback(c *Comb, from, to int, cause error) {
	log := commonlog.GetLogger("loom.parser")
	if !log.AllowLevel(commonlog.Debug) {
		return
	}
	log.Debugf("%s: rolling back %d -> %d: %s", c, from, to, cause)
}
