// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rule

import (
	"fmt"

	"github.com/tokenrules/tokrule/token"
)

// Sequence matches rules in order, concatenating their matched tokens. It
// requires at least 2 rules; use the rules directly for a single-rule
// "sequence".
//
// Fails at construction time (wraps [ErrInvalidRule]) if len(rules) < 2.
func Sequence(rules ...Rule) (Rule, error) {
	if len(rules) < 2 {
		return nil, fmt.Errorf("%w: sequence requires at least 2 rules, got %d", ErrInvalidRule, len(rules))
	}
	cp := append([]Rule(nil), rules...)
	return sequenceRule{rules: cp}, nil
}

type sequenceRule struct {
	rules []Rule
}

func (seq sequenceRule) Match(s *token.Stream, ctx *Context) (Match, bool) {
	return commit(s, func(cp *token.Stream) (Match, bool) {
		start := cp.CurrentIndex()
		var tokens []token.Token
		for _, r := range seq.rules {
			m, ok := r.Match(cp, ctx)
			if !ok {
				return Match{}, false
			}
			tokens = append(tokens, m.Tokens...)
		}
		return Match{Start: start, End: cp.CurrentIndex(), Tokens: tokens, MatchingRule: seq}, true
	})
}

// AnyOf tries each rule in declaration order on a fresh attempt and returns
// the first success (PEG-style ordered choice, not longest-match). It
// requires at least 1 rule.
//
// Fails at construction time (wraps [ErrInvalidRule]) if len(rules) == 0.
func AnyOf(rules ...Rule) (Rule, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: any-of requires at least 1 rule", ErrInvalidRule)
	}
	cp := append([]Rule(nil), rules...)
	return anyOfRule{rules: cp}, nil
}

type anyOfRule struct {
	rules []Rule
}

func (a anyOfRule) Match(s *token.Stream, ctx *Context) (Match, bool) {
	return commit(s, func(cp *token.Stream) (Match, bool) {
		for _, r := range a.rules {
			if m, ok := r.Match(cp, ctx); ok {
				return Match{Start: m.Start, End: m.End, Tokens: m.Tokens, MatchingRule: a}, true
			}
		}
		return Match{}, false
	})
}

// Optional tries r; on failure, it still succeeds with an empty match,
// provided the stream is not already exhausted (it fails only past end).
func Optional(r Rule) Rule {
	return optionalRule{inner: r}
}

type optionalRule struct {
	inner Rule
}

func (o optionalRule) Match(s *token.Stream, ctx *Context) (Match, bool) {
	return commit(s, func(cp *token.Stream) (Match, bool) {
		if m, ok := o.inner.Match(cp, ctx); ok {
			return Match{Start: m.Start, End: m.End, Tokens: m.Tokens, MatchingRule: o}, true
		}

		start := cp.CurrentIndex()
		if !cp.HasMoreTokens() {
			return Match{}, false
		}
		return Match{Start: start, End: start, MatchingRule: o}, true
	})
}

// Unbounded, passed as Repeat's max, allows an unlimited number of
// repetitions.
const Unbounded = -1

// Repeat greedily matches r between min and max times (max == [Unbounded]
// for no upper limit), stopping at the first failure, at max repetitions,
// or after two consecutive empty matches (whichever comes first — the
// latter guards against an infinitely-looping rule that matches empty
// forever). It succeeds iff it matched at least min times.
//
// Fails at construction time (wraps [ErrInvalidRule]) if min < 0, or if max
// is bounded and less than max(1, min).
func Repeat(r Rule, min, max int) (Rule, error) {
	if min < 0 {
		return nil, fmt.Errorf("%w: repeat min must be >= 0, got %d", ErrInvalidRule, min)
	}
	if max != Unbounded {
		required := min
		if required < 1 {
			required = 1
		}
		if max < required {
			return nil, fmt.Errorf("%w: repeat max (%d) must be >= max(1,min) (%d)", ErrInvalidRule, max, required)
		}
	}
	return repeatRule{inner: r, min: min, max: max}, nil
}

type repeatRule struct {
	inner    Rule
	min, max int
}

func (rr repeatRule) Match(s *token.Stream, ctx *Context) (Match, bool) {
	return commit(s, func(cp *token.Stream) (Match, bool) {
		start := cp.CurrentIndex()
		var tokens []token.Token
		count := 0
		consecutiveEmpty := 0

		for rr.max == Unbounded || count < rr.max {
			m, ok := rr.inner.Match(cp, ctx)
			if !ok {
				break
			}
			tokens = append(tokens, m.Tokens...)
			count++

			if m.Empty() {
				consecutiveEmpty++
				if consecutiveEmpty >= 2 {
					break
				}
			} else {
				consecutiveEmpty = 0
			}
		}

		if count < rr.min {
			return Match{}, false
		}
		return Match{Start: start, End: cp.CurrentIndex(), Tokens: tokens, MatchingRule: rr}, true
	})
}

// Boundary matches start, then content repeatedly until end matches at the
// current position (checked via lookahead, without consuming), then matches
// end. It fails if start or end cannot eventually be matched, or if content
// stalls (matches empty) without end becoming satisfied.
func Boundary(start, content, end Rule) Rule {
	return boundaryRule{start: start, content: content, end: end}
}

type boundaryRule struct {
	start, content, end Rule
}

func (b boundaryRule) Match(s *token.Stream, ctx *Context) (Match, bool) {
	return commit(s, func(cp *token.Stream) (Match, bool) {
		mStart, ok := b.start.Match(cp, ctx)
		if !ok {
			return Match{}, false
		}
		tokens := append([]token.Token(nil), mStart.Tokens...)

		for {
			probe := cp.CopyWithIndex(cp.CurrentIndex())
			if _, ok := b.end.Match(probe, ctx); ok {
				break
			}

			mContent, ok := b.content.Match(cp, ctx)
			if !ok {
				return Match{}, false
			}
			if mContent.Empty() {
				// Content made no progress and end still doesn't match:
				// this boundary can never close.
				return Match{}, false
			}
			tokens = append(tokens, mContent.Tokens...)
		}

		mEnd, ok := b.end.Match(cp, ctx)
		if !ok {
			return Match{}, false
		}
		tokens = append(tokens, mEnd.Tokens...)

		return Match{Start: mStart.Start, End: cp.CurrentIndex(), Tokens: tokens, MatchingRule: b}, true
	})
}

// Polarity selects whether a [Lookahead] or [Lookbehind] assertion requires
// its inner rule to match (Positive) or to fail to match (Negative).
type Polarity int

const (
	Positive Polarity = iota
	Negative
)

// Lookahead runs r against the tokens starting at the current position,
// without consuming any of them, and succeeds with an empty match iff r's
// success matches polarity.
func Lookahead(r Rule, polarity Polarity) Rule {
	return lookaroundRule{inner: r, behind: false, polarity: polarity}
}

// Lookbehind is like [Lookahead] but runs r against
// [token.Stream.LookbehindStream] — the tokens before the current position,
// in reverse.
func Lookbehind(r Rule, polarity Polarity) Rule {
	return lookaroundRule{inner: r, behind: true, polarity: polarity}
}

type lookaroundRule struct {
	inner    Rule
	behind   bool
	polarity Polarity
}

func (l lookaroundRule) Match(s *token.Stream, ctx *Context) (Match, bool) {
	return commit(s, func(cp *token.Stream) (Match, bool) {
		at := cp.CurrentIndex()

		var probe *token.Stream
		if l.behind {
			probe = cp.LookbehindStream()
		} else {
			probe = cp.CopyWithIndex(at)
		}

		_, matched := l.inner.Match(probe, ctx)
		if matched != (l.polarity == Positive) {
			return Match{}, false
		}
		return Match{Start: at, End: at, MatchingRule: l}, true
	})
}

// Capture runs r; on success, it stores r's matched tokens under key in the
// context (overwriting any previous capture under that key) and propagates
// the match unchanged.
func Capture(key string, r Rule) Rule {
	return captureRule{key: key, inner: r}
}

type captureRule struct {
	key   string
	inner Rule
}

func (c captureRule) Match(s *token.Stream, ctx *Context) (Match, bool) {
	return commit(s, func(cp *token.Stream) (Match, bool) {
		m, ok := c.inner.Match(cp, ctx)
		if !ok {
			return Match{}, false
		}
		ctx.CaptureTokens(c.key, m.Tokens)
		return Match{Start: m.Start, End: m.End, Tokens: m.Tokens, MatchingRule: c}, true
	})
}

// ReferenceMode selects what a [Reference] rule looks up under its key.
type ReferenceMode int

const (
	// RuleRef looks up a named rule defined via [Context.DefineRule] and
	// delegates to it.
	RuleRef ReferenceMode = iota
	// TokensRef looks up a named captured token list (see [Capture]) and
	// matches a sequence of value-equality atoms synthesized from it.
	TokensRef
	// DynamicRef behaves as RuleRef or TokensRef, whichever is bound under
	// the key — and fails to match if both or neither are bound.
	DynamicRef
)

// Reference looks up key in the context at match time and delegates to
// whatever mode selects. See [ReferenceMode].
func Reference(key string, mode ReferenceMode) Rule {
	return referenceRule{key: key, mode: mode}
}

type referenceRule struct {
	key  string
	mode ReferenceMode
}

func (r referenceRule) Match(s *token.Stream, ctx *Context) (Match, bool) {
	return commit(s, func(cp *token.Stream) (Match, bool) {
		rule, hasRule := ctx.RuleReference(r.key)
		toks, hasTokens := ctx.CapturedTokens(r.key)

		switch r.mode {
		case RuleRef:
			if !hasRule {
				return Match{}, false
			}
			return delegateReference(r, rule, cp, ctx)
		case TokensRef:
			if !hasTokens {
				return Match{}, false
			}
			return matchTokenReplay(r, toks, cp)
		case DynamicRef:
			if hasRule == hasTokens {
				// Neither or both bound: spec requires exactly one.
				return Match{}, false
			}
			if hasRule {
				return delegateReference(r, rule, cp, ctx)
			}
			return matchTokenReplay(r, toks, cp)
		default:
			return Match{}, false
		}
	})
}

func delegateReference(r referenceRule, target Rule, cp *token.Stream, ctx *Context) (Match, bool) {
	m, ok := target.Match(cp, ctx)
	if !ok {
		return Match{}, false
	}
	return Match{Start: m.Start, End: m.End, Tokens: m.Tokens, MatchingRule: r}, true
}

// matchTokenReplay matches a sequence of tokens whose values equal, in
// order, the values of want (value-equality, per the spec's resolution of
// the back-reference comparison question — see DESIGN.md).
func matchTokenReplay(r referenceRule, want []token.Token, cp *token.Stream) (Match, bool) {
	start := cp.CurrentIndex()
	var tokens []token.Token
	for _, w := range want {
		tok, err := cp.ReadToken()
		if err != nil || tok.Value() != w.Value() {
			return Match{}, false
		}
		tokens = append(tokens, tok)
	}
	return Match{Start: start, End: cp.CurrentIndex(), Tokens: tokens, MatchingRule: r}, true
}

// Recursive matches opening, then content (which may call back into this
// very rule through the self value passed to the content factory), then
// closing, producing a single contiguous match spanning the whole opening-
// through-closing span.
//
// Left recursion is not supported: content must consume at least one token
// (directly, or via opening/closing of a nested Recursive call) before it
// can recurse, or matching never terminates.
func Recursive(opening, closing Rule, content func(self Rule) Rule) Rule {
	rr := &recursiveRule{opening: opening, closing: closing}
	rr.content = content(&selfReference{target: rr})
	return rr
}

type recursiveRule struct {
	opening Rule
	closing Rule
	content Rule
}

func (rr *recursiveRule) Match(s *token.Stream, ctx *Context) (Match, bool) {
	return commit(s, func(cp *token.Stream) (Match, bool) {
		mOpen, ok := rr.opening.Match(cp, ctx)
		if !ok {
			return Match{}, false
		}
		tokens := append([]token.Token(nil), mOpen.Tokens...)

		mContent, ok := rr.content.Match(cp, ctx)
		if !ok {
			return Match{}, false
		}
		tokens = append(tokens, mContent.Tokens...)

		mClose, ok := rr.closing.Match(cp, ctx)
		if !ok {
			return Match{}, false
		}
		tokens = append(tokens, mClose.Tokens...)

		return Match{Start: mOpen.Start, End: cp.CurrentIndex(), Tokens: tokens, MatchingRule: rr}, true
	})
}

// selfReference is the "self" value handed to a Recursive rule's content
// factory: matching it means matching the whole enclosing Recursive rule
// again, from the top.
type selfReference struct {
	target *recursiveRule
}

func (s *selfReference) Match(stream *token.Stream, ctx *Context) (Match, bool) {
	return s.target.Match(stream, ctx)
}
