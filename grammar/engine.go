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

package grammar

import (
	"github.com/tokenrules/tokrule/rule"
	"github.com/tokenrules/tokrule/token"
)

// Process runs g over tokens in a single left-to-right sweep: at each raw
// index, the first matching entry's action output is spliced in, and the
// index is forced forward by at least one token before continuing. The
// input is never mutated.
func Process(g *Grammar, tokens []token.Token) []token.Token {
	return processWithContext(g, g.ctx, tokens)
}

func processWithContext(g *Grammar, ctx *rule.Context, tokens []token.Token) []token.Token {
	current := append([]token.Token(nil), tokens...)
	return onePass(g, ctx, current)
}

// onePass scans current left to right exactly once, splicing in the first
// matching entry's action output wherever an entry matches.
//
// A single [token.Stream] spans the whole sweep (repositioned via SetIndex
// before each attempt) rather than a fresh stream per position, so that
// document-relative rules — [rule.Document] anchors, [rule.Line] anchors
// reading back across already-visited tokens — see real, stream-global
// indices and neighbors instead of a re-zeroed local window.
//
// A matched span is never revisited within this sweep: the raw index jumps
// straight to the match's end (or, for a zero-width match, forward by one
// token), so an action whose output would itself satisfy the same or a
// later entry — e.g. wrapping a keyword in markers that still contain the
// keyword's own value — is not re-triggered. This is what makes a single
// sweep always terminate, per the one-pass splice algorithm.
func onePass(g *Grammar, ctx *rule.Context, current []token.Token) []token.Token {
	out := make([]token.Token, 0, len(current))
	stream := token.NewStream(current, true)
	i := 0

	for i < len(current) {
		if err := stream.SetIndex(i); err != nil {
			out = append(out, current[i])
			i++
			continue
		}

		entry, m, ok := matchFirst(g, stream, ctx)
		if !ok {
			out = append(out, current[i])
			i++
			continue
		}

		consumed := m.End - m.Start
		if consumed < 0 {
			consumed = 0
		}
		replacement := entry.Action(ctx, m, current)
		out = append(out, replacement...)

		if consumed < 1 {
			out = append(out, current[i])
			i++
			continue
		}
		i = m.End
	}

	return out
}

func matchFirst(g *Grammar, stream *token.Stream, ctx *rule.Context) (Entry, rule.Match, bool) {
	for _, e := range g.entries {
		if m, ok := e.Match.Match(stream, ctx); ok {
			return e, m, true
		}
	}
	return Entry{}, rule.Match{}, false
}
