package ast

// Inspect traverses the tree depth-first in source order, calling f for
// each node. If f returns false the children of that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}

	switch n := node.(type) {
	case *Addition:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *Multiplication:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *Initialization:
		Inspect(n.Name, f)
		Inspect(n.Value, f)
	case *WhileLoop:
		Inspect(n.Condition, f)
		Inspect(n.Block, f)
	case *Block:
		for _, stmt := range n.Statements {
			Inspect(stmt, f)
		}
	case *Program:
		for _, stmt := range n.Statements {
			Inspect(stmt, f)
		}
	}
}
