package ast

import (
	"testing"

	"github.com/ava12/vema/lexer"
)

func leaf (name, text string) *Node {
	return New(name, text)
}

func TestSkipNodeSplicesChildrenAndIsIdempotent (t *testing.T) {
	root := New("root", "")
	mid := New("paren", "")
	a := leaf("IDENTIFIER", "a")
	b := leaf("IDENTIFIER", "b")

	root.AddChild(mid)
	mid.AddChild(a)
	mid.AddChild(b)

	SkipNode(mid)
	if len(root.Children) != 2 || root.Children[0] != a || root.Children[1] != b {
		t.Fatalf("expecting a,b spliced into root, got %+v", root.Children)
	}
	if a.Parent != root || b.Parent != root {
		t.Fatal("expecting reparented children")
	}

	// second call: mid is detached, must be a no-op
	SkipNode(mid)
	if len(root.Children) != 2 {
		t.Fatal("second SkipNode call must be a no-op")
	}
}

func TestSkipNodeNoOpWithoutChildren (t *testing.T) {
	root := New("root", "")
	leafNode := leaf("x", "x")
	root.AddChild(leafNode)

	SkipNode(leafNode)
	if len(root.Children) != 1 || root.Children[0] != leafNode {
		t.Fatal("expecting childless node untouched")
	}
}

func TestUseMiddleKeepsMiddleChild (t *testing.T) {
	root := New("root", "")
	group := New("group", "")
	open := leaf("OPEN_PAREN", "(")
	inner := leaf("expr", "1")
	close_ := leaf("CLOSE_PAREN", ")")

	root.AddChild(group)
	group.AddChild(open)
	group.AddChild(inner)
	group.AddChild(close_)

	UseMiddle(group)
	if len(root.Children) != 1 || root.Children[0] != inner {
		t.Fatalf("expecting only inner spliced into root, got %+v", root.Children)
	}
}

func TestUseMiddleWrongArityPanics (t *testing.T) {
	defer func () {
		if recover() == nil {
			t.Fatal("expecting panic")
		}
	}()
	n := New("n", "")
	n.AddChild(leaf("a", "a"))
	UseMiddle(n)
}

func TestRemoveTerminals (t *testing.T) {
	root := New("root", "")
	terminal := leaf("OPERATOR", "+")
	nonTerminal := New("expr", "")
	nonTerminal.AddChild(leaf("NUMBER_LITERAL", "1"))

	root.AddChild(terminal)
	root.AddChild(nonTerminal)

	RemoveTerminals(root)
	if len(root.Children) != 1 || root.Children[0] != nonTerminal {
		t.Fatalf("expecting terminal dropped, got %+v", root.Children)
	}
}

func TestRemoveTerminalsMatchAndSplitMatch (t *testing.T) {
	root := New("root", "")
	a := leaf("IDENTIFIER", "a")
	comma := leaf("OPERATOR", ",")
	b := leaf("IDENTIFIER", "b")
	root.AddChild(a)
	root.AddChild(comma)
	root.AddChild(b)

	prefix, suffix := SplitMatch(root, `^,$`)
	if len(prefix) != 1 || prefix[0] != a || len(suffix) != 1 || suffix[0] != b {
		t.Fatalf("unexpected split: %+v / %+v", prefix, suffix)
	}

	RemoveTerminalsMatch(root, `^,$`)
	if len(root.Children) != 2 || root.Children[0] != a || root.Children[1] != b {
		t.Fatalf("expecting comma stripped, got %+v", root.Children)
	}
}

func TestLiteralIdentifier (t *testing.T) {
	n := leaf("IDENTIFIER", "abc")
	if err := Literal(lexer.IDENTIFIER, n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Type != VALUE || n.Value.Kind != StringValue || n.Value.Str != "abc" {
		t.Fatalf("unexpected node: %+v", n)
	}
}

func TestLiteralNumber (t *testing.T) {
	cases := []struct {
		text string
		kind ValueKind
		uint uint64
		flt  float64
	}{
		{"0xFF", UintValue, 255, 0},
		{"10", UintValue, 10, 0},
		{"3.14", FloatValue, 0, 3.14},
	}

	for _, c := range cases {
		n := leaf("NUMBER_LITERAL", c.text)
		if err := Literal(lexer.NUMBER_LITERAL, n); err != nil {
			t.Fatalf("%q: unexpected error: %v", c.text, err)
		}
		if n.Value.Kind != c.kind {
			t.Fatalf("%q: expecting kind %v, got %v", c.text, c.kind, n.Value.Kind)
		}
		if c.kind == UintValue && n.Value.Uint != c.uint {
			t.Fatalf("%q: expecting %d, got %d", c.text, c.uint, n.Value.Uint)
		}
		if c.kind == FloatValue && n.Value.Float != c.flt {
			t.Fatalf("%q: expecting %v, got %v", c.text, c.flt, n.Value.Float)
		}
	}
}

func TestToNumberRejectsGarbage (t *testing.T) {
	if _, ok := ToNumber(""); ok {
		t.Fatal("expecting empty text to fail")
	}
	if _, ok := ToNumber("12abc"); ok {
		t.Fatal("expecting trailing garbage to fail")
	}
}

func TestLiteralStringUnescape (t *testing.T) {
	n := leaf("STRING_LITERAL", `"a\nb"`)
	if err := Literal(lexer.STRING_LITERAL, n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Value.Str != "a\nb" {
		t.Fatalf("expecting %q, got %q", "a\nb", n.Value.Str)
	}
}

func TestOpToName (t *testing.T) {
	if OpToName("+") != "plus" {
		t.Fatalf("unexpected: %q", OpToName("+"))
	}
	if OpToName("@") != "I DONT KNOW @" {
		t.Fatalf("unexpected fallback: %q", OpToName("@"))
	}
}

func TestBinaryCollapsesChain (t *testing.T) {
	n := New("expr", "")
	a := leaf("NUMBER_LITERAL", "1")
	plus1 := leaf("OPERATOR", "+")
	b := leaf("NUMBER_LITERAL", "2")
	plus2 := leaf("OPERATOR", "+")
	c := leaf("NUMBER_LITERAL", "3")
	for _, child := range []*Node{a, plus1, b, plus2, c} {
		n.AddChild(child)
	}

	Binary(n)
	if n.Name != "plus" {
		t.Fatalf("expecting renamed to plus, got %q", n.Name)
	}
	if len(n.Children) != 3 || n.Children[0] != a || n.Children[1] != b || n.Children[2] != c {
		t.Fatalf("expecting operators dropped, got %+v", n.Children)
	}
}

func TestUnaryCollapses (t *testing.T) {
	n := New("expr", "")
	minus := leaf("OPERATOR", "-")
	operand := leaf("NUMBER_LITERAL", "1")
	n.AddChild(minus)
	n.AddChild(operand)

	Unary(n)
	if n.Name != "minus" || len(n.Children) != 1 || n.Children[0] != operand {
		t.Fatalf("unexpected result: %+v", n)
	}
}

func TestStringExpressionStripsCommas (t *testing.T) {
	n := New("strexpr", "")
	a := leaf("STRING_LITERAL", `"a"`)
	comma := leaf("OPERATOR", ",")
	b := leaf("STRING_LITERAL", `"b"`)
	n.AddChild(a)
	n.AddChild(comma)
	n.AddChild(b)

	StringExpression(n)
	if n.Type != STRING_EXPRESSION || n.Name != "string_expression" {
		t.Fatalf("unexpected node: %+v", n)
	}
	if len(n.Children) != 2 || n.Children[0] != a || n.Children[1] != b {
		t.Fatalf("expecting comma stripped, got %+v", n.Children)
	}
}

func TestTraversalHelpers (t *testing.T) {
	root := New("root", "")
	a := leaf("a", "a")
	b := leaf("b", "b")
	c := leaf("c", "c")
	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(c)

	if SiblingIndex(b) != 1 {
		t.Fatalf("expecting index 1, got %d", SiblingIndex(b))
	}
	if NthChild(root, -1) != c {
		t.Fatal("expecting last child via negative index")
	}
	if NthSibling(a, 2) != c {
		t.Fatal("expecting sibling two slots over")
	}
	if NumOfChildren(root, AllLevels) != 3 {
		t.Fatalf("expecting 3, got %d", NumOfChildren(root, AllLevels))
	}
	if FirstTokenNode(root) != a || LastTokenNode(root) != c {
		t.Fatal("expecting leftmost/rightmost leaves")
	}
	if NextTokenNode(a) != b || PrevTokenNode(c) != b {
		t.Fatal("expecting adjacency via NextTokenNode/PrevTokenNode")
	}
}
