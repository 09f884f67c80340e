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

// Package rule implements the token rule engine's matcher: atoms,
// combinators, quantifiers, assertions, references, and recursion over a
// [token.Stream], carried in a [Context] of named rule references and named
// captured token lists.
package rule

import "github.com/tokenrules/tokrule/token"

// Rule is a matcher that attempts to consume tokens starting at a stream's
// current index.
//
// Match either returns a successful [Match] and leaves the stream advanced
// to the match's end, or returns false and leaves the stream's cursor
// exactly where it was. Implementations achieve this by operating on a copy
// of the stream and committing only on success; see [commit].
type Rule interface {
	Match(s *token.Stream, ctx *Context) (Match, bool)
}

// Not returns a rule that matches exactly when r does not match at the same
// position. It consumes one non-shadow token on success, except at the end
// of the stream, where it still succeeds with an empty match. It fails only
// when r itself matches.
func Not(r Rule) Rule {
	return notRule{inner: r}
}

// Group returns a rule that, on success of r, replaces the match's matched
// tokens with a single [token.Group] token concatenating them, keeping the
// same start/end span.
func Group(r Rule) Rule {
	return groupRule{inner: r}
}

// commit runs attempt on a fresh working copy of s positioned at s's current
// index. If attempt succeeds, the copy's progress is committed back onto s;
// otherwise s is left untouched.
func commit(s *token.Stream, attempt func(cp *token.Stream) (Match, bool)) (Match, bool) {
	cp := s.CopyWithIndex(s.CurrentIndex())
	m, ok := attempt(cp)
	if !ok {
		return Match{}, false
	}
	_ = s.AdvanceToStream(cp)
	return m, true
}

type notRule struct {
	inner Rule
}

func (n notRule) Match(s *token.Stream, ctx *Context) (Match, bool) {
	return commit(s, func(cp *token.Stream) (Match, bool) {
		probe := cp.CopyWithIndex(cp.CurrentIndex())
		if _, ok := n.inner.Match(probe, ctx); ok {
			return Match{}, false
		}

		start := cp.CurrentIndex()
		if !cp.HasMoreTokens() {
			return Match{Start: start, End: start, MatchingRule: n}, true
		}
		tok, err := cp.ReadToken()
		if err != nil {
			return Match{}, false
		}
		return Match{Start: start, End: cp.CurrentIndex(), Tokens: []token.Token{tok}, MatchingRule: n}, true
	})
}

type groupRule struct {
	inner Rule
}

func (g groupRule) Match(s *token.Stream, ctx *Context) (Match, bool) {
	return commit(s, func(cp *token.Stream) (Match, bool) {
		m, ok := g.inner.Match(cp, ctx)
		if !ok {
			return Match{}, false
		}
		grouped := token.NewGroup(m.Tokens)
		return Match{Start: m.Start, End: m.End, Tokens: []token.Token{grouped}, MatchingRule: g}, true
	})
}
