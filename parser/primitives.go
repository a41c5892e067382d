package parser

import (
	"fmt"
	"regexp"

	"github.com/ava12/vema/lexer"
)

// Terminal builds a Rule matching a single token of the given kind.
func Terminal (kind lexer.Kind) *Rule {
	r := newRule(kind.String())
	r.matcher = func (pos lexer.TokenIter) (*Match, lexer.TokenIter, error) {
		if pos.IsEnd() || pos.Kind() != kind {
			return &Match{Begin: pos, End: pos}, pos, nil
		}

		next, err := pos.Next()
		if err != nil {
			return nil, pos, err
		}
		return &Match{Matched: true, Begin: pos, End: next}, next, nil
	}
	return r
}

// Regex builds a Rule matching a single token whose text fully matches pattern.
// pattern is anchored on both ends; it need not (and should not) include ^ or $.
func Regex (pattern string) *Rule {
	re := regexp.MustCompile("^(?:" + pattern + ")$")
	r := newRule(fmt.Sprintf("/%s/", pattern))
	r.matcher = func (pos lexer.TokenIter) (*Match, lexer.TokenIter, error) {
		if pos.IsEnd() || !re.MatchString(pos.Text()) {
			return &Match{Begin: pos, End: pos}, pos, nil
		}

		next, err := pos.Next()
		if err != nil {
			return nil, pos, err
		}
		return &Match{Matched: true, Begin: pos, End: next}, next, nil
	}
	return r
}

// Forward returns a placeholder Rule named name, to be completed later with Assign.
// Using it before Assign is called is a programming error.
func Forward (name string) *Rule {
	r := newRule(name)
	r.matcher = func (pos lexer.TokenIter) (*Match, lexer.TokenIter, error) {
		panic("parser: forward-declared rule " + name + " used before Assign")
	}
	return r
}
