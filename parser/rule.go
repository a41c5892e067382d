// Package parser implements a packrat grammar-combinator engine: Rules are built by
// composing primitives with operators and evaluated against a lexer.TokenIter stream,
// producing a tree of Match records.
package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ava12/vema"
	"github.com/ava12/vema/lexer"
)

// DiagnosticSink receives the message of any lexer error caught at the combinator
// boundary (a failed match is returned to the caller; nothing here is thrown).
var DiagnosticSink io.Writer = os.Stderr

// Action runs on a successful Match during a post-order Walk.
type Action func (m *Match)

// Predicate gates a provisional Match; returning false downgrades it to a failure
// at the rule's starting position.
type Predicate func (m *Match) bool

// Matcher is the core per-Rule matching function: given a starting position it
// returns the resulting Match and the position immediately after it, advancing
// only on success (matched == false implies the returned position equals pos).
type Matcher func (pos lexer.TokenIter) (*Match, lexer.TokenIter, error)

// Match is the result of applying a Rule at a token position; a node in the parse tree.
// Children are retained whether or not the rule matched, so callers can walk a failed
// parse to its rightmost successful descendant for error reporting.
type Match struct {
	Matched bool
	Name    string
	Begin   lexer.TokenIter
	End     lexer.TokenIter
	Action  Action
	Children []*Match
}

type memoResult struct {
	match *Match
	next  lexer.TokenIter
}

var nextRuleID int

// Rule is a named node in a DAG: a matcher function plus an optional action and
// predicate. Rules support in-place reassignment (Assign) so that a rule can be
// forward-declared and defined later, enabling directly-recursive grammars.
type Rule struct {
	id   int
	Name string

	// MustConsumeToken is true iff this rule requires at least one input token,
	// used to short-circuit matching at end-of-stream without invoking matcher.
	MustConsumeToken bool

	matcher   Matcher
	action    Action
	predicate Predicate

	// children lists direct rule references in composition order,
	// used only to break ownership cycles on Reset.
	children []*Rule

	memo map[int]*memoResult
}

func newRule (name string) *Rule {
	nextRuleID++
	return &Rule{
		id:               nextRuleID,
		Name:             name,
		MustConsumeToken: true,
		memo:             map[int]*memoResult{},
	}
}

// GetMatch applies r at pos, consulting and updating r's memoization cache.
// A *vema.Error (the lexer's error type) returned while matching is logged to
// DiagnosticSink and converted to an ordinary failed Match at pos; any other error
// is propagated to the caller.
func (r *Rule) GetMatch (pos lexer.TokenIter) (*Match, lexer.TokenIter, error) {
	if r.MustConsumeToken && pos.IsEnd() {
		return &Match{Name: r.Name, Begin: pos, End: pos}, pos, nil
	}

	// the cache is keyed by character offset; an entry is reused only for the very
	// same iterator, so a Rule applied to another stream is matched afresh
	key := pos.Begin()
	if cached, ok := r.memo[key]; ok && cached.match.Begin == pos {
		return cached.match, cached.next, nil
	}

	match, next, err := r.matcher(pos)
	if err != nil {
		if lexErr, ok := err.(*vema.Error); ok {
			fmt.Fprintln(DiagnosticSink, lexErr.Error())
			match = &Match{Begin: pos, End: pos}
			next = pos
		} else {
			return nil, pos, err
		}
	}

	match.Name = r.Name
	if match.Matched && r.action != nil {
		match.Action = r.action
	}

	if match.Matched && r.predicate != nil && !r.predicate(match) {
		match.Matched = false
		match.End = pos
		next = pos
	}

	r.memo[key] = &memoResult{match, next}
	return match, next, nil
}

// WithAction attaches fn to r; fn runs on m during a post-order Walk whenever r matches.
// Mirrors the combinator-notation `rule[fn]`.
func (r *Rule) WithAction (fn Action) *Rule {
	r.action = fn
	return r
}

// When attaches a semantic predicate to r. Mirrors the combinator-notation `rule(pred)`.
func (r *Rule) When (pred Predicate) *Rule {
	r.predicate = pred
	return r
}

// Assign replaces r's interior (matcher, action, predicate, name, children) with src's,
// keeping r's handle and identity stable. Earlier closures that captured r observe the
// new definition; this is how forward-declared rules are completed.
func (r *Rule) Assign (src *Rule) {
	r.Name = src.Name
	r.MustConsumeToken = src.MustConsumeToken
	r.matcher = src.matcher
	r.action = src.action
	r.predicate = src.predicate
	r.children = src.children
	r.memo = map[int]*memoResult{}
}

// Reset clears r's matcher/action/predicate and memo, recursively resetting its
// children first (moved out before recursion so cycles in the rule DAG cannot
// re-enter an already-reset rule).
func (r *Rule) Reset () {
	r.reset(&idSet{})
}

func (r *Rule) reset (visited *idSet) {
	if visited.add(r.id) {
		return
	}

	children := r.children
	r.children = nil
	for _, child := range children {
		child.reset(visited)
	}

	r.matcher = nil
	r.action = nil
	r.predicate = nil
	r.memo = nil
}

// Dump writes r's rule DAG to w, indented by depth, visiting each rule at most once
// (the DAG may be cyclic through forward-declared rules).
func (r *Rule) Dump (w io.Writer) {
	r.dump(w, 0, &idSet{})
}

func (r *Rule) dump (w io.Writer, depth int, visited *idSet) {
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), r.Name)
	if visited.add(r.id) {
		return
	}

	for _, c := range r.children {
		c.dump(w, depth+1, visited)
	}
}
