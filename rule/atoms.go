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
	"regexp"
	"strings"

	"github.com/tokenrules/tokrule/token"
)

// Anchor selects which boundary a [StartAnchor] or [EndAnchor] checks.
type Anchor int

const (
	// Document anchors check the very start or end of the stream.
	Document Anchor = iota
	// Line anchors check for a line break between the current token and
	// its neighbor.
	Line
)

// Value matches a single token whose value equals literal exactly.
func Value(literal string) Rule {
	return valueRule{literal: literal}
}

// ValueFold matches a single token whose value equals literal, ignoring
// case.
func ValueFold(literal string) Rule {
	return valueRule{literal: literal, fold: true}
}

type valueRule struct {
	literal string
	fold    bool
}

func (v valueRule) Match(s *token.Stream, ctx *Context) (Match, bool) {
	return commit(s, func(cp *token.Stream) (Match, bool) {
		start := cp.CurrentIndex()
		tok, err := cp.ReadToken()
		if err != nil {
			return Match{}, false
		}

		equal := tok.Value() == v.literal
		if v.fold {
			equal = strings.EqualFold(tok.Value(), v.literal)
		}
		if !equal {
			return Match{}, false
		}
		return Match{Start: start, End: cp.CurrentIndex(), Tokens: []token.Token{tok}, MatchingRule: v}, true
	})
}

// Pattern matches a single token whose whole value matches the compiled
// regular expression expr.
//
// Fails at construction time (wraps [ErrInvalidRule]) if expr does not
// compile.
func Pattern(expr string) (Rule, error) {
	re, err := regexp.Compile(`\A(?:` + expr + `)\z`)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid pattern %q: %v", ErrInvalidRule, expr, err)
	}
	return patternRule{expr: expr, re: re}, nil
}

// MustPattern is like [Pattern] but panics if expr does not compile. Meant
// for static, known-good patterns defined at package scope.
func MustPattern(expr string) Rule {
	r, err := Pattern(expr)
	if err != nil {
		panic(err)
	}
	return r
}

type patternRule struct {
	expr string
	re   *regexp.Regexp
}

func (p patternRule) Match(s *token.Stream, ctx *Context) (Match, bool) {
	return commit(s, func(cp *token.Stream) (Match, bool) {
		start := cp.CurrentIndex()
		tok, err := cp.ReadToken()
		if err != nil {
			return Match{}, false
		}
		if !p.re.MatchString(tok.Value()) {
			return Match{}, false
		}
		return Match{Start: start, End: cp.CurrentIndex(), Tokens: []token.Token{tok}, MatchingRule: p}, true
	})
}

// Always consumes one non-shadow token, matching empty at the end of the
// stream instead of failing.
func Always() Rule {
	return alwaysRule{}
}

type alwaysRule struct{}

func (alwaysRule) Match(s *token.Stream, ctx *Context) (Match, bool) {
	return commit(s, func(cp *token.Stream) (Match, bool) {
		start := cp.CurrentIndex()
		if !cp.HasMoreTokens() {
			return Match{Start: start, End: start, MatchingRule: alwaysRule{}}, true
		}
		tok, err := cp.ReadToken()
		if err != nil {
			return Match{}, false
		}
		return Match{Start: start, End: cp.CurrentIndex(), Tokens: []token.Token{tok}, MatchingRule: alwaysRule{}}, true
	})
}

// Never never matches.
func Never() Rule {
	return neverRule{}
}

type neverRule struct{}

func (neverRule) Match(*token.Stream, *Context) (Match, bool) {
	return Match{}, false
}

// StartAnchor matches an empty span when the stream's cursor sits at a
// start boundary: Document means index 0; Line means the previous
// non-shadow token sits on an earlier line, or its value contains a
// newline. Never consumes a token.
func StartAnchor(kind Anchor) Rule {
	return startAnchorRule{kind: kind}
}

type startAnchorRule struct {
	kind Anchor
}

func (a startAnchorRule) Match(s *token.Stream, ctx *Context) (Match, bool) {
	return commit(s, func(cp *token.Stream) (Match, bool) {
		at := cp.CurrentIndex()

		switch a.kind {
		case Document:
			if at != 0 {
				return Match{}, false
			}
		case Line:
			if at == 0 {
				return Match{Start: at, End: at, MatchingRule: a}, true
			}
			behind := cp.LookbehindStream()
			prev, err := behind.CurrentToken()
			if err != nil {
				return Match{}, false
			}
			cur, err := cp.CurrentToken()
			if err != nil {
				return Match{}, false
			}
			if !crossesLine(prev, cur) {
				return Match{}, false
			}
		}
		return Match{Start: at, End: at, MatchingRule: a}, true
	})
}

// EndAnchor matches an empty span when the stream's cursor sits at an end
// boundary: Document means no more tokens remain; Line means the document
// has ended, or the current token sits on an earlier line than the next
// one, or the current token's value contains a newline. Never consumes a
// token.
func EndAnchor(kind Anchor) Rule {
	return endAnchorRule{kind: kind}
}

type endAnchorRule struct {
	kind Anchor
}

func (a endAnchorRule) Match(s *token.Stream, ctx *Context) (Match, bool) {
	return commit(s, func(cp *token.Stream) (Match, bool) {
		at := cp.CurrentIndex()

		switch a.kind {
		case Document:
			if cp.HasMoreTokens() {
				return Match{}, false
			}
		case Line:
			if !cp.HasMoreTokens() {
				return Match{Start: at, End: at, MatchingRule: a}, true
			}
			cur, err := cp.CurrentToken()
			if err != nil {
				return Match{}, false
			}
			ahead := cp.LookaheadStream()
			_, _ = ahead.ReadToken() // skip cur itself
			next, err := ahead.CurrentToken()
			if err != nil {
				// No next token: treat as document end, which also ends a line.
				return Match{Start: at, End: at, MatchingRule: a}, true
			}
			if !crossesLine(cur, next) {
				return Match{}, false
			}
		}
		return Match{Start: at, End: at, MatchingRule: a}, true
	})
}

// crossesLine reports whether b begins on a later line than a ends on, or a
// contains an embedded newline, for positioned tokens. For unpositioned
// tokens, it falls back to checking a's value for an embedded newline.
func crossesLine(a, b token.Token) bool {
	if strings.Contains(a.Value(), "\n") {
		return true
	}
	ap, bp := a.Position(), b.Position()
	if ap.IsSet() && bp.IsSet() {
		return bp.Line() > ap.Line()
	}
	return false
}
