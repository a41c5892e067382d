package parser

import (
	"strings"

	"github.com/ava12/vema/lexer"
)

// Walk runs every Action attached to a matched node in m's subtree, post-order
// (children before parents), so an outer rule's action can rely on its children's
// actions having already run.
func Walk (m *Match) {
	if m == nil {
		return
	}

	for _, c := range m.Children {
		Walk(c)
	}

	if m.Matched && m.Action != nil {
		m.Action(m)
	}
}

// ToString concatenates the raw text of every token in [begin, end).
func ToString (begin, end lexer.TokenIter) string {
	var sb strings.Builder
	cur := begin
	for !cur.IsEnd() && !cur.Equal(end) {
		sb.WriteString(cur.Text())
		next, err := cur.Next()
		if err != nil {
			break
		}
		cur = next
	}
	return sb.String()
}

// MatchText returns the source text spanned by m.
func MatchText (m *Match) string {
	return ToString(m.Begin, m.End)
}

// Reach reports the farthest position reached anywhere in m's subtree, matched
// or not. Callers use it on a failed top-level Match to report the best partial
// parse: the position where the grammar actually got stuck.
func Reach (m *Match) lexer.TokenIter {
	return reach(m)
}
