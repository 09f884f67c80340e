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

package action

import (
	"fmt"
	"regexp"

	"github.com/tokenrules/tokrule/rule"
	"github.com/tokenrules/tokrule/token"
)

// Func replaces a successful match's tokens with the tokens spliced back
// into the stream in their place. raw is the full token list the match was
// found in (m.Start/m.End index into it); implementations must not mutate
// it.
type Func func(ctx *rule.Context, m rule.Match, raw []token.Token) []token.Token

// Identity returns the matched tokens unchanged.
func Identity() Func {
	return func(_ *rule.Context, m rule.Match, _ []token.Token) []token.Token {
		return append([]token.Token(nil), m.Tokens...)
	}
}

// GroupingMode selects which tokens [Grouping] folds into its replacement
// [token.Group].
type GroupingMode int

const (
	// Matched groups only the tokens the rule actually matched, dropping
	// any shadow tokens that fell within the match's span.
	Matched GroupingMode = iota
	// All groups every raw token in the match's span, shadow tokens
	// included.
	All
)

// Grouping replaces the match with a single [token.Group] token, chosen by
// mode.
func Grouping(mode GroupingMode) Func {
	return func(_ *rule.Context, m rule.Match, raw []token.Token) []token.Token {
		switch mode {
		case All:
			return []token.Token{token.NewGroup(append([]token.Token(nil), raw[m.Start:m.End]...))}
		default:
			return []token.Token{token.NewGroup(m.Tokens)}
		}
	}
}

// Filter keeps only the matched tokens for which keep returns true,
// dropping the rest from the stream.
func Filter(keep func(token.Token) bool) Func {
	return func(_ *rule.Context, m rule.Match, _ []token.Token) []token.Token {
		out := make([]token.Token, 0, len(m.Tokens))
		for _, tok := range m.Tokens {
			if keep(tok) {
				out = append(out, tok)
			}
		}
		return out
	}
}

// Skip drops every matched token for which drop returns true, keeping the
// rest. It is Filter with the predicate inverted.
func Skip(drop func(token.Token) bool) Func {
	return Filter(func(tok token.Token) bool { return !drop(tok) })
}

// Extract moves every matched token for which pred returns true out of the
// stream and into *sink, in order, leaving the remaining tokens in place.
func Extract(pred func(token.Token) bool, sink *[]token.Token) Func {
	return func(_ *rule.Context, m rule.Match, _ []token.Token) []token.Token {
		out := make([]token.Token, 0, len(m.Tokens))
		for _, tok := range m.Tokens {
			if pred(tok) {
				*sink = append(*sink, tok)
			} else {
				out = append(out, tok)
			}
		}
		return out
	}
}

// Convert maps every matched token through f, in place.
func Convert(f func(token.Token) token.Token) Func {
	return func(_ *rule.Context, m rule.Match, _ []token.Token) []token.Token {
		out := make([]token.Token, len(m.Tokens))
		for i, tok := range m.Tokens {
			out[i] = f(tok)
		}
		return out
	}
}

// Split replaces each matched token with the non-empty pieces obtained by
// splitting its value on expr, preserving each piece's position when the
// original token was positioned (assuming, as is true for any value that
// does not itself contain a line break, that every piece stays on the
// original's line).
//
// Fails at construction time (wraps [ErrInvalidArgument]) if expr does not
// compile.
func Split(expr string) (Func, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid split pattern %q: %v", ErrInvalidArgument, expr, err)
	}

	return func(_ *rule.Context, m rule.Match, _ []token.Token) []token.Token {
		var out []token.Token
		for _, tok := range m.Tokens {
			value := tok.Value()
			beg := 0
			for _, loc := range re.FindAllStringIndex(value, -1) {
				if piece := value[beg:loc[0]]; piece != "" {
					out = append(out, splitPiece(tok, piece, beg))
				}
				beg = loc[1]
			}
			if piece := value[beg:]; piece != "" {
				out = append(out, splitPiece(tok, piece, beg))
			}
		}
		return out
	}, nil
}

func splitPiece(orig token.Token, piece string, offset int) token.Token {
	pos := orig.Position()
	if !pos.IsSet() {
		t, _ := token.Unpositioned(piece)
		return t
	}
	t, _ := token.Positioned(piece, pos.Line(), pos.CharInLine()+offset, pos.Absolute()+offset)
	return t
}

// Transform hands the matched tokens to g and splices back whatever it
// returns, as an escape hatch for replacements the other actions can't
// express.
func Transform(g func([]token.Token) []token.Token) Func {
	return func(_ *rule.Context, m rule.Match, _ []token.Token) []token.Token {
		return g(append([]token.Token(nil), m.Tokens...))
	}
}

// Wrap surrounds the matched tokens with a prefix and a suffix token, each
// unpositioned.
func Wrap(prefix, suffix string) Func {
	return func(_ *rule.Context, m rule.Match, _ []token.Token) []token.Token {
		out := make([]token.Token, 0, len(m.Tokens)+2)
		if prefix != "" {
			if tok, err := token.Unpositioned(prefix); err == nil {
				out = append(out, tok)
			}
		}
		out = append(out, m.Tokens...)
		if suffix != "" {
			if tok, err := token.Unpositioned(suffix); err == nil {
				out = append(out, tok)
			}
		}
		return out
	}
}

// Annotate wraps every matched token with metadata, merging into any
// metadata the token already carries (new keys win; see [token.Wrap]).
func Annotate(metadata map[string]string) Func {
	return func(_ *rule.Context, m rule.Match, _ []token.Token) []token.Token {
		out := make([]token.Token, len(m.Tokens))
		for i, tok := range m.Tokens {
			wrapped, err := token.Wrap(tok, metadata)
			if err != nil {
				out[i] = tok
				continue
			}
			out[i] = wrapped
		}
		return out
	}
}

// Index wraps every matched token with a strictly increasing index starting
// at start. A token that is already Indexed is passed through unchanged,
// rather than being wrapped a second time.
func Index(start int) Func {
	return func(_ *rule.Context, m rule.Match, _ []token.Token) []token.Token {
		out := make([]token.Token, len(m.Tokens))
		next := start
		for i, tok := range m.Tokens {
			if tok.Kind() == token.Indexed {
				out[i] = tok
				continue
			}
			wrapped, err := token.WrapIndex(tok, next)
			if err != nil {
				out[i] = tok
				continue
			}
			out[i] = wrapped
			next++
		}
		return out
	}
}
