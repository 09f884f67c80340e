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

package token

import (
	"fmt"
	"strings"
)

// EscapeSentinel is the rune that must prefix an [Escaped] token's value.
const EscapeSentinel = '\\'

// Nil is the nil [Token], i.e. the zero value. It is not a member of any of
// the six variants; [Token.Nil] reports true for it and every other method
// on it returns a zero-ish result.
var Nil Token

// Token is a single lexical unit, in one of six variants: Simple, Escaped,
// Annotated, Indexed, Shadow, and Group. The zero value is the nil token,
// used to denote the absence of a token.
//
// Token is an immutable value type; once constructed it is always safe to
// copy and share across goroutines.
type Token struct {
	valid    bool
	kind     Kind
	value    string
	pos      Position
	inner    *Token
	metadata map[string]string
	index    int
	children []Token
}

// Unpositioned constructs a [Simple] token with no source position.
//
// Fails if value is empty.
func Unpositioned(value string) (Token, error) {
	if value == "" {
		return Token{}, fmt.Errorf("%w: Unpositioned requires a non-empty value", ErrInvalidArgument)
	}
	return Token{valid: true, kind: Simple, value: value}, nil
}

// Positioned constructs a [Simple] token at the given source position.
//
// Fails if value is empty or any position component is negative.
func Positioned(value string, line, charInLine, absolute int) (Token, error) {
	if value == "" {
		return Token{}, fmt.Errorf("%w: Positioned requires a non-empty value", ErrInvalidArgument)
	}
	pos, err := NewPosition(line, charInLine, absolute)
	if err != nil {
		return Token{}, err
	}
	return Token{valid: true, kind: Simple, value: value, pos: pos}, nil
}

// EscapedUnpositioned constructs an [Escaped] token with no source position.
//
// Fails if value does not begin with [EscapeSentinel] or is shorter than two
// runes.
func EscapedUnpositioned(value string) (Token, error) {
	if err := checkEscaped(value); err != nil {
		return Token{}, err
	}
	return Token{valid: true, kind: Escaped, value: value}, nil
}

// EscapedPositioned constructs an [Escaped] token at the given source
// position.
//
// Fails if value does not begin with [EscapeSentinel], is shorter than two
// runes, or any position component is negative.
func EscapedPositioned(value string, line, charInLine, absolute int) (Token, error) {
	if err := checkEscaped(value); err != nil {
		return Token{}, err
	}
	pos, err := NewPosition(line, charInLine, absolute)
	if err != nil {
		return Token{}, err
	}
	return Token{valid: true, kind: Escaped, value: value, pos: pos}, nil
}

func checkEscaped(value string) error {
	if len([]rune(value)) < 2 || !strings.HasPrefix(value, string(EscapeSentinel)) {
		return fmt.Errorf("%w: escaped token value must begin with %q and be at least two runes, got %q",
			ErrInvalidArgument, string(EscapeSentinel), value)
	}
	return nil
}

// ShadowUnpositioned constructs a [Shadow] token with no source position.
//
// Fails if value is empty.
func ShadowUnpositioned(value string) (Token, error) {
	if value == "" {
		return Token{}, fmt.Errorf("%w: ShadowUnpositioned requires a non-empty value", ErrInvalidArgument)
	}
	return Token{valid: true, kind: Shadow, value: value}, nil
}

// ShadowPositioned constructs a [Shadow] token at the given source position.
//
// Fails if value is empty or any position component is negative.
func ShadowPositioned(value string, line, charInLine, absolute int) (Token, error) {
	if value == "" {
		return Token{}, fmt.Errorf("%w: ShadowPositioned requires a non-empty value", ErrInvalidArgument)
	}
	pos, err := NewPosition(line, charInLine, absolute)
	if err != nil {
		return Token{}, err
	}
	return Token{valid: true, kind: Shadow, value: value, pos: pos}, nil
}

// Wrap wraps inner in an [Annotated] token carrying metadata.
//
// If inner is already Annotated, the two metadata maps are merged (new
// values win on key collision) rather than producing nested Annotated
// layers, and the wrapper still points at inner's own inner token.
//
// Fails if inner is the nil token.
func Wrap(inner Token, metadata map[string]string) (Token, error) {
	if inner.Nil() {
		return Token{}, fmt.Errorf("%w: Wrap requires a non-nil inner token", ErrInvalidArgument)
	}

	merged := make(map[string]string, len(metadata))
	target := inner
	if inner.kind == Annotated {
		for k, v := range inner.metadata {
			merged[k] = v
		}
		target = *inner.inner
	}
	for k, v := range metadata {
		merged[k] = v
	}

	innerCopy := target
	return Token{valid: true, kind: Annotated, inner: &innerCopy, metadata: merged}, nil
}

// WrapIndex wraps inner in an [Indexed] token carrying index.
//
// Fails if inner is the nil token or index is negative.
func WrapIndex(inner Token, index int) (Token, error) {
	if inner.Nil() {
		return Token{}, fmt.Errorf("%w: WrapIndex requires a non-nil inner token", ErrInvalidArgument)
	}
	if index < 0 {
		return Token{}, fmt.Errorf("%w: WrapIndex requires a non-negative index, got %d", ErrInvalidArgument, index)
	}
	innerCopy := inner
	return Token{valid: true, kind: Indexed, inner: &innerCopy, index: index}, nil
}

// NewGroup wraps children in a single [Group] token. children may be empty,
// in which case the group's Value is "" and its Position is unset.
func NewGroup(children []Token) Token {
	cp := make([]Token, len(children))
	copy(cp, children)
	return Token{valid: true, kind: Group, children: cp}
}

// Nil reports whether t is the zero value.
func (t Token) Nil() bool {
	return !t.valid
}

// Kind returns which of the six variants t is.
//
// Returns [Simple] for the nil token, matching the convention that an
// absent token behaves as an empty Simple token wherever possible.
func (t Token) Kind() Kind {
	return t.kind
}

// Value returns the text this token stands for. For [Annotated] and
// [Indexed] tokens this is the inner token's value; for [Group] tokens this
// is the concatenation of each child's value, in order.
func (t Token) Value() string {
	switch t.kind {
	case Annotated, Indexed:
		return t.inner.Value()
	case Group:
		var b strings.Builder
		for _, c := range t.children {
			b.WriteString(c.Value())
		}
		return b.String()
	default:
		return t.value
	}
}

// Position returns this token's source position. For [Annotated] and
// [Indexed] tokens this is the inner token's position. For [Group] tokens
// this is the first child's position, or an unset Position if the group has
// no children.
func (t Token) Position() Position {
	switch t.kind {
	case Annotated, Indexed:
		return t.inner.Position()
	case Group:
		if len(t.children) == 0 {
			return Position{}
		}
		return t.children[0].Position()
	default:
		return t.pos
	}
}

// Inner returns the wrapped token for [Annotated] and [Indexed] tokens, and
// the nil token otherwise.
func (t Token) Inner() Token {
	if t.kind != Annotated && t.kind != Indexed {
		return Nil
	}
	return *t.inner
}

// Metadata returns the metadata map of an [Annotated] token, or nil for
// every other variant. The returned map must be treated as read-only.
func (t Token) Metadata() map[string]string {
	if t.kind != Annotated {
		return nil
	}
	return t.metadata
}

// Index returns the index of an [Indexed] token, or 0 for every other
// variant.
func (t Token) Index() int {
	if t.kind != Indexed {
		return 0
	}
	return t.index
}

// Children returns the ordered inner tokens of a [Group] token, or nil for
// every other variant. The returned slice must be treated as read-only.
func (t Token) Children() []Token {
	if t.kind != Group {
		return nil
	}
	return t.children
}

// Equal reports whether t and other are the same variant with the same
// value, position, and (for wrappers) the same payload and inner token.
func (t Token) Equal(other Token) bool {
	if t.valid != other.valid {
		return false
	}
	if !t.valid {
		return true
	}
	if t.kind != other.kind {
		return false
	}

	switch t.kind {
	case Simple, Escaped, Shadow:
		return t.value == other.value && t.pos == other.pos
	case Annotated:
		if len(t.metadata) != len(other.metadata) {
			return false
		}
		for k, v := range t.metadata {
			if ov, ok := other.metadata[k]; !ok || ov != v {
				return false
			}
		}
		return t.inner.Equal(*other.inner)
	case Indexed:
		return t.index == other.index && t.inner.Equal(*other.inner)
	case Group:
		if len(t.children) != len(other.children) {
			return false
		}
		for i := range t.children {
			if !t.children[i].Equal(other.children[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String implements [fmt.Stringer].
func (t Token) String() string {
	if t.Nil() {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%q)", t.kind, t.Value())
}
