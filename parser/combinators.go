package parser

import (
	"github.com/ava12/vema/lexer"
)

// reach finds the farthest position reached by m or any of its descendants,
// matched or not, used to decide which branch of a failed Or gets reported.
func reach (m *Match) lexer.TokenIter {
	best := m.Begin
	if m.Matched && best.Less(m.End) {
		best = m.End
	}
	for _, c := range m.Children {
		if cr := reach(c); best.Less(cr) {
			best = cr
		}
	}
	return best
}

// Then builds a Rule matching a followed immediately by b.
func Then (a, b *Rule) *Rule {
	r := newRule(a.Name + " >> " + b.Name)
	r.MustConsumeToken = a.MustConsumeToken || b.MustConsumeToken
	r.children = append(r.children, a)
	r.children = append(r.children, b)
	r.matcher = func (pos lexer.TokenIter) (*Match, lexer.TokenIter, error) {
		am, aNext, err := a.GetMatch(pos)
		if err != nil {
			return nil, pos, err
		}
		if !am.Matched {
			return &Match{Begin: pos, End: pos, Children: []*Match{am}}, pos, nil
		}

		bm, bNext, err := b.GetMatch(aNext)
		if err != nil {
			return nil, pos, err
		}
		if !bm.Matched {
			return &Match{Begin: pos, End: pos, Children: []*Match{am, bm}}, pos, nil
		}

		return &Match{Matched: true, Begin: pos, End: bNext, Children: []*Match{am, bm}}, bNext, nil
	}
	return r
}

// Or builds a Rule matching a, falling back to b if a fails.
// If both fail, the failed Match keeps as its child whichever branch's parse
// reached furthest into the input, to help callers pinpoint the best partial parse.
func Or (a, b *Rule) *Rule {
	r := newRule(a.Name + " | " + b.Name)
	r.MustConsumeToken = a.MustConsumeToken || b.MustConsumeToken
	r.children = append(r.children, a)
	r.children = append(r.children, b)
	r.matcher = func (pos lexer.TokenIter) (*Match, lexer.TokenIter, error) {
		am, aNext, err := a.GetMatch(pos)
		if err != nil {
			return nil, pos, err
		}
		if am.Matched {
			return &Match{Matched: true, Begin: pos, End: aNext, Children: []*Match{am}}, aNext, nil
		}

		bm, bNext, err := b.GetMatch(pos)
		if err != nil {
			return nil, pos, err
		}
		if bm.Matched {
			return &Match{Matched: true, Begin: pos, End: bNext, Children: []*Match{bm}}, bNext, nil
		}

		winner := am
		if reach(am).Less(reach(bm)) {
			winner = bm
		}
		return &Match{Begin: pos, End: pos, Children: []*Match{winner}}, pos, nil
	}
	return r
}

// Star builds a Rule matching zero or more consecutive occurrences of a greedily.
// A zero-progress match of a (a succeeds without consuming a token) stops the loop
// rather than looping forever.
func Star (a *Rule) *Rule {
	r := newRule("*" + a.Name)
	r.MustConsumeToken = false
	r.children = append(r.children, a)
	r.matcher = func (pos lexer.TokenIter) (*Match, lexer.TokenIter, error) {
		m := &Match{Matched: true, Begin: pos, End: pos}
		cur := pos
		for !cur.IsEnd() {
			cm, next, err := a.GetMatch(cur)
			if err != nil {
				return nil, pos, err
			}
			if !cm.Matched {
				break
			}
			m.Children = append(m.Children, cm)
			if !cur.Less(next) {
				break
			}
			cur = next
		}
		m.End = cur
		return m, cur, nil
	}
	return r
}

// Until builds a Rule matching the shortest run of a's that is followed by b,
// i.e. a non-greedy "keep taking a until b matches". Fails if end of input is
// reached, or a itself fails, before b ever matches.
func Until (a, b *Rule) *Rule {
	r := newRule(a.Name + " / " + b.Name)
	r.MustConsumeToken = a.MustConsumeToken || b.MustConsumeToken
	r.children = append(r.children, a)
	r.children = append(r.children, b)
	r.matcher = func (pos lexer.TokenIter) (*Match, lexer.TokenIter, error) {
		var prefix []*Match
		cur := pos
		for {
			bm, bNext, err := b.GetMatch(cur)
			if err != nil {
				return nil, pos, err
			}
			if bm.Matched {
				children := append(append([]*Match{}, prefix...), bm)
				return &Match{Matched: true, Begin: pos, End: bNext, Children: children}, bNext, nil
			}

			if cur.IsEnd() {
				children := append(append([]*Match{}, prefix...), bm)
				return &Match{Begin: pos, End: pos, Children: children}, pos, nil
			}

			am, aNext, err := a.GetMatch(cur)
			if err != nil {
				return nil, pos, err
			}
			if !am.Matched {
				children := append(append([]*Match{}, prefix...), am)
				return &Match{Begin: pos, End: pos, Children: children}, pos, nil
			}

			prefix = append(prefix, am)
			if !cur.Less(aNext) {
				return &Match{Begin: pos, End: pos, Children: prefix}, pos, nil
			}
			cur = aNext
		}
	}
	return r
}

// Opt builds a Rule that always succeeds: a if it matches, an empty match otherwise.
func Opt (a *Rule) *Rule {
	r := newRule("-" + a.Name)
	r.MustConsumeToken = false
	r.children = append(r.children, a)
	r.matcher = func (pos lexer.TokenIter) (*Match, lexer.TokenIter, error) {
		if pos.IsEnd() {
			return &Match{Matched: true, Begin: pos, End: pos}, pos, nil
		}

		am, next, err := a.GetMatch(pos)
		if err != nil {
			return nil, pos, err
		}
		if am.Matched {
			return &Match{Matched: true, Begin: pos, End: next, Children: []*Match{am}}, next, nil
		}
		return &Match{Matched: true, Begin: pos, End: pos, Children: []*Match{am}}, pos, nil
	}
	return r
}

// Plus builds a Rule matching one or more consecutive occurrences of a: a followed by *a.
func Plus (a *Rule) *Rule {
	r := Then(a, Star(a))
	r.Name = "+" + a.Name
	return r
}

// Not builds a Rule implementing negative lookahead: it fails if a matches at pos,
// and otherwise succeeds by consuming exactly one token (so it cannot match at end
// of input).
func Not (a *Rule) *Rule {
	r := newRule("!" + a.Name)
	r.MustConsumeToken = true
	r.children = append(r.children, a)
	r.matcher = func (pos lexer.TokenIter) (*Match, lexer.TokenIter, error) {
		am, _, err := a.GetMatch(pos)
		if err != nil {
			return nil, pos, err
		}
		if am.Matched || pos.IsEnd() {
			return &Match{Begin: pos, End: pos, Children: []*Match{am}}, pos, nil
		}

		next, err := pos.Next()
		if err != nil {
			return nil, pos, err
		}
		return &Match{Matched: true, Begin: pos, End: next, Children: []*Match{am}}, next, nil
	}
	return r
}

// Newline builds a Rule that evaluates a with newline-significant whitespace surfaced,
// by toggling the shared Lexer's SkipNewline flag around the call.
func Newline (a *Rule) *Rule {
	r := newRule("newline(" + a.Name + ")")
	r.MustConsumeToken = a.MustConsumeToken
	r.children = append(r.children, a)
	r.matcher = func (pos lexer.TokenIter) (*Match, lexer.TokenIter, error) {
		pos.StartNewline()
		m, next, err := a.GetMatch(pos)
		next.StopNewline()
		return m, next, err
	}
	return r
}
