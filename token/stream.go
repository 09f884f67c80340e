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

// Stream is a cursor over an ordered token sequence. Shadow tokens remain in
// the backing sequence and count toward Size, but are invisible to
// CurrentToken, ReadToken, and HasMoreTokens: the cursor is always advanced
// past them on any move.
//
// A mutable Stream is meant to be owned by a single matcher invocation;
// rules that need to backtrack construct a fresh copy (see CopyWithIndex and
// friends) rather than mutating a shared Stream.
type Stream struct {
	tokens  []Token
	cursor  int
	mutable bool
}

// NewStream constructs a Stream over a copy of tokens, positioned at the
// first non-shadow token.
func NewStream(tokens []Token, mutable bool) *Stream {
	cp := make([]Token, len(tokens))
	copy(cp, tokens)
	return &Stream{tokens: cp, cursor: skipForward(cp, 0), mutable: mutable}
}

func skipForward(tokens []Token, i int) int {
	switch {
	case i < 0:
		i = 0
	case i > len(tokens):
		i = len(tokens)
	}
	for i < len(tokens) && tokens[i].Kind().IsSkippable() {
		i++
	}
	return i
}

// Size returns the number of tokens in the backing sequence, including
// shadow tokens.
func (s *Stream) Size() int {
	return len(s.tokens)
}

// IsEmpty reports whether the backing sequence has no tokens at all.
func (s *Stream) IsEmpty() bool {
	return len(s.tokens) == 0
}

// AllTokens returns a read-only snapshot of every token in the backing
// sequence, including shadow tokens.
func (s *Stream) AllTokens() []Token {
	cp := make([]Token, len(s.tokens))
	copy(cp, s.tokens)
	return cp
}

// Mutable reports whether this Stream accepts cursor-moving operations.
func (s *Stream) Mutable() bool {
	return s.mutable
}

// CurrentIndex returns the cursor's raw index into the backing sequence.
func (s *Stream) CurrentIndex() int {
	return s.cursor
}

// CurrentToken returns the token at the cursor without advancing it.
//
// Fails with [ErrEndOfStream] if no non-shadow token remains.
func (s *Stream) CurrentToken() (Token, error) {
	if s.cursor >= len(s.tokens) {
		return Nil, ErrEndOfStream
	}
	return s.tokens[s.cursor], nil
}

// HasMoreTokens reports whether a non-shadow token exists at or after the
// cursor.
func (s *Stream) HasMoreTokens() bool {
	return s.cursor < len(s.tokens)
}

// ReadToken returns the token at the cursor and advances past it to the next
// non-shadow index.
//
// Fails with [ErrImmutable] if the stream is immutable, or [ErrEndOfStream]
// if no non-shadow token remains.
func (s *Stream) ReadToken() (Token, error) {
	if !s.mutable {
		return Nil, ErrImmutable
	}
	if s.cursor >= len(s.tokens) {
		return Nil, ErrEndOfStream
	}
	tok := s.tokens[s.cursor]
	s.cursor = skipForward(s.tokens, s.cursor+1)
	return tok, nil
}

// SetIndex moves the cursor to i, clamped to [0, Size], then advances it to
// the next non-shadow index.
//
// Fails with [ErrImmutable] if the stream is immutable.
func (s *Stream) SetIndex(i int) error {
	if !s.mutable {
		return ErrImmutable
	}
	s.cursor = skipForward(s.tokens, i)
	return nil
}

// MoveBy shifts the cursor by offset (which may be negative), then advances
// it to the next non-shadow index.
//
// Fails with [ErrImmutable] if the stream is immutable.
func (s *Stream) MoveBy(offset int) error {
	if !s.mutable {
		return ErrImmutable
	}
	s.cursor = skipForward(s.tokens, s.cursor+offset)
	return nil
}

// Reset moves the cursor back to the start of the stream.
//
// Fails with [ErrImmutable] if the stream is immutable.
func (s *Stream) Reset() error {
	return s.SetIndex(0)
}

// AdvanceToStream moves this stream's cursor to match other's raw index.
// This is how a matcher commits the progress made on a working copy back
// onto the stream it was copied from.
//
// Fails with [ErrImmutable] if this stream is immutable.
func (s *Stream) AdvanceToStream(other *Stream) error {
	return s.SetIndex(other.cursor)
}

// CopyWithIndex returns a new, independently mutable Stream sharing this
// one's backing sequence, with its cursor set to i (clamped and
// shadow-skipped).
func (s *Stream) CopyWithIndex(i int) *Stream {
	return &Stream{tokens: s.tokens, cursor: skipForward(s.tokens, i), mutable: true}
}

// CopyWithOffset is shorthand for CopyWithIndex(CurrentIndex() + offset).
func (s *Stream) CopyWithOffset(offset int) *Stream {
	return s.CopyWithIndex(s.cursor + offset)
}

// CopyFromZero is shorthand for CopyWithIndex(0).
func (s *Stream) CopyFromZero() *Stream {
	return s.CopyWithIndex(0)
}

// Reversed returns a new Stream over the reverse of this one's backing
// sequence, with the cursor mapped to the same point between tokens: if this
// stream's cursor is at raw index p of n, the reversed stream's cursor is at
// n-p (then shadow-skipped), so its current token is the last non-shadow
// token before p and its unconsumed tokens are this stream's consumed
// prefix, reversed.
func (s *Stream) Reversed() *Stream {
	n := len(s.tokens)
	rev := make([]Token, n)
	for i, t := range s.tokens {
		rev[n-1-i] = t
	}
	return &Stream{tokens: rev, cursor: skipForward(rev, n-s.cursor), mutable: true}
}

// LookaheadStream returns a fresh Stream over the tokens from the cursor to
// the end of the sequence, positioned at its own index 0.
func (s *Stream) LookaheadStream() *Stream {
	sub := append([]Token(nil), s.tokens[s.cursor:]...)
	return &Stream{tokens: sub, cursor: skipForward(sub, 0), mutable: true}
}

// LookbehindStream returns a fresh Stream over the reverse of the tokens
// before the cursor, positioned at its own index 0. Combined with
// LookaheadStream, this lets a rule look in either direction from the
// current position without disturbing s.
func (s *Stream) LookbehindStream() *Stream {
	pre := s.tokens[:s.cursor]
	n := len(pre)
	rev := make([]Token, n)
	for i, t := range pre {
		rev[n-1-i] = t
	}
	return &Stream{tokens: rev, cursor: skipForward(rev, 0), mutable: true}
}
