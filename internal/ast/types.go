package ast

import "strconv"

type NodeType int

const (
	ILLEGAL NodeType = iota

	COMMENT

	// Leaves
	IDENT
	INTEGER_LITERAL

	// Expressions
	ADDITION
	MULTIPLICATION

	// Statements
	INITIALIZATION
	WHILE_LOOP

	BLOCK
	PROGRAM
)

var nodeTypeNames = [...]string{
	ILLEGAL:         "ILLEGAL",
	COMMENT:         "COMMENT",
	IDENT:           "IDENT",
	INTEGER_LITERAL: "INTEGER_LITERAL",
	ADDITION:        "ADDITION",
	MULTIPLICATION:  "MULTIPLICATION",
	INITIALIZATION:  "INITIALIZATION",
	WHILE_LOOP:      "WHILE_LOOP",
	BLOCK:           "BLOCK",
	PROGRAM:         "PROGRAM",
}

func (t NodeType) String() string {
	if t >= 0 && int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return "NodeType(" + strconv.Itoa(int(t)) + ")"
}
