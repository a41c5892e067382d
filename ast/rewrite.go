package ast

import "regexp"

// SkipNode splices n's children into n.Parent's child list at n's slot, then
// removes n. A no-op if n has no children (nothing to promote) or no parent
// (nothing to splice into). Safe to call twice: the second call finds n
// already detached and does nothing.
func SkipNode (n *Node) {
	if len(n.Children) == 0 || n.Parent == nil {
		return
	}

	idx := n.indexInParent()
	if idx < 0 {
		return
	}

	parent := n.Parent
	for _, c := range n.Children {
		c.Parent = parent
	}

	replaced := make([]*Node, 0, len(parent.Children)-1+len(n.Children))
	replaced = append(replaced, parent.Children[:idx]...)
	replaced = append(replaced, n.Children...)
	replaced = append(replaced, parent.Children[idx+1:]...)
	parent.Children = replaced

	n.Parent = nil
	n.Children = nil
}

// UseMiddle requires n to have exactly three children and keeps the middle one,
// splicing it into n's place the way SkipNode would (typically used to drop a
// pair of parentheses or brackets around an inner expression). Violating the
// three-child arity is a programming bug and panics.
func UseMiddle (n *Node) {
	if len(n.Children) != 3 {
		panic("ast: UseMiddle requires exactly three children")
	}

	middle := n.Children[1]
	n.Children = []*Node{middle}
	SkipNode(n)
}

// RemoveNode detaches n from its parent; n's children are discarded along with it.
func RemoveNode (n *Node) {
	if n.Parent == nil {
		return
	}

	idx := n.indexInParent()
	if idx < 0 {
		return
	}

	parent := n.Parent
	parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
	n.Parent = nil
}

// RemoveTerminals drops every child of n that itself has no children (a terminal leaf).
func RemoveTerminals (n *Node) {
	kept := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if len(c.Children) == 0 {
			c.Parent = nil
			continue
		}
		kept = append(kept, c)
	}
	n.Children = kept
}

// RemoveTerminalsMatch drops every child of n whose Text matches the regex pat,
// used to strip fixed punctuation (commas, semicolons) out of a reduced node.
func RemoveTerminalsMatch (n *Node, pat string) {
	re := regexp.MustCompile(pat)
	kept := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if re.MatchString(c.Text) {
			c.Parent = nil
			continue
		}
		kept = append(kept, c)
	}
	n.Children = kept
}

// SplitMatch partitions n.Children into the nodes before the first child whose
// Text matches pat, and the nodes after it (the matching child itself is
// dropped from both halves). If no child matches, prefix is all of n.Children
// and suffix is empty.
func SplitMatch (n *Node, pat string) (prefix, suffix []*Node) {
	re := regexp.MustCompile(pat)
	for i, c := range n.Children {
		if re.MatchString(c.Text) {
			return n.Children[:i], n.Children[i+1:]
		}
	}
	return n.Children, nil
}
