package ast

import (
	"strconv"
	"strings"

	"github.com/ava12/vema"
	"github.com/ava12/vema/lexer"
)

// Literal sets n's Type to VALUE and fills n.Value from n.Text according to kind:
// IDENTIFIER stores the raw text, NUMBER_LITERAL parses it with ToNumber, and
// STRING_LITERAL unescapes it. Any other kind, or a NUMBER_LITERAL that fails to
// parse, is reported as an error rather than panicked — unlike UseMiddle's arity
// check, a malformed literal is an ordinary grammar-author mistake, not a library bug.
func Literal (kind lexer.Kind, n *Node) error {
	n.Type = VALUE

	switch kind {
	case lexer.IDENTIFIER:
		n.Value = StringVal(n.Text)
		return nil

	case lexer.NUMBER_LITERAL:
		v, ok := ToNumber(n.Text)
		if !ok {
			return vema.FormatError(AstErrors, "invalid numeric literal %q", n.Text)
		}
		n.Value = v
		return nil

	case lexer.STRING_LITERAL:
		n.Value = StringVal(unescapeString(n.Text))
		return nil

	default:
		return vema.FormatError(AstErrors, "literal: unsupported token kind %v", kind)
	}
}

// ToNumber parses a NUMBER_LITERAL token's text: a "0x"/"0X" prefix selects base-16
// parsing into a 64-bit unsigned integer, a '.'/'e'/'E' anywhere selects float64
// parsing, and otherwise the whole text is parsed as a base-10 unsigned integer.
// In every branch the entire text must parse; a partial match (e.g. "12abc") fails.
// This always parses the complete decimal text, unlike the original implementation's
// decimal branch, which discarded the first two characters.
func ToNumber (text string) (Value, bool) {
	if text == "" {
		return Value{}, false
	}

	if len(text) > 2 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X') {
		v, err := strconv.ParseUint(text[2:], 16, 64)
		if err != nil {
			return Value{}, false
		}
		return UintVal(v), true
	}

	if strings.ContainsAny(text, ".eE") {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, false
		}
		return FloatVal(v), true
	}

	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return Value{}, false
	}
	return UintVal(v), true
}

// unescapeString strips a STRING_LITERAL's surrounding quotes, then resolves
// \", \n and \r escapes left to right; a backslash that starts a recognized
// escape is consumed along with it, so a literal backslash followed by one of
// these characters is never double-unescaped.
func unescapeString (text string) string {
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}

	var sb strings.Builder
	i := 0
	for i < len(text) {
		if text[i] == '\\' && i+1 < len(text) {
			switch text[i+1] {
			case '"':
				sb.WriteByte('"')
				i += 2
				continue
			case 'n':
				sb.WriteByte('\n')
				i += 2
				continue
			case 'r':
				sb.WriteByte('\r')
				i += 2
				continue
			case '\\':
				sb.WriteByte('\\')
				i += 2
				continue
			}
		}

		sb.WriteByte(text[i])
		i++
	}
	return sb.String()
}

var opNames = map[string]string{
	"+": "plus", "-": "minus", "*": "mul", "/": "div", "%": "mod",
	"&": "bin_and", "|": "bin_or", "<<": "shl", ">>": "shr",
	"==": "eq", "!=": "ne", "<": "lt", ">": "gt", "<=": "le", ">=": "ge",
	"&&": "logical_and", "||": "logical_or", "++": "inc", "--": "dec",
}

// OpToName maps an operator lexeme to a human-readable name from a fixed table.
// An operator not in the table yields "I DONT KNOW " + op, matching the original
// implementation's fallback verbatim.
func OpToName (op string) string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "I DONT KNOW " + op
}

// Unary collapses a two-child node (operator, operand) produced by a prefix unary
// rule: n is renamed after the operator and the operator leaf is dropped, leaving
// only the operand as n's child. The operator is always taken from the first
// child, so a postfix (operand, operator) node is not recognized. Violating the
// two-child arity is a grammar-construction bug and panics.
func Unary (n *Node) {
	if len(n.Children) != 2 {
		panic("ast: Unary requires exactly two children (operator, operand)")
	}

	op, operand := n.Children[0], n.Children[1]
	n.Name = OpToName(op.Text)
	op.Parent = nil
	n.Children = []*Node{operand}
}

// Binary collapses a node shaped like a left-associative operator chain —
// operand, op, operand, op, operand, ... (an odd number of children, at least
// three) — into a node renamed after its first operator, keeping only the
// operand children and dropping every operator leaf. Violating the arity is a
// grammar-construction bug and panics.
func Binary (n *Node) {
	if len(n.Children) < 3 || len(n.Children)%2 == 0 {
		panic("ast: Binary requires an odd number of children >= 3 (operand, op, operand, ...)")
	}

	n.Name = OpToName(n.Children[1].Text)

	operands := make([]*Node, 0, len(n.Children)/2+1)
	for i, c := range n.Children {
		if i%2 == 1 {
			c.Parent = nil
			continue
		}
		operands = append(operands, c)
	}
	n.Children = operands
}

// StringExpression renames n to "string_expression", tags it STRING_EXPRESSION,
// and strips comma-terminal separators out of its children.
func StringExpression (n *Node) {
	n.Name = "string_expression"
	n.Type = STRING_EXPRESSION
	RemoveTerminalsMatch(n, `^,$`)
}
