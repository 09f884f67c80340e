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

import "fmt"

// Position is a token's location in its source file. The zero value is not
// a valid Position; use [Position.IsSet] to distinguish a real position
// from an unpositioned token.
type Position struct {
	line, charInLine, absolute int
	set                        bool
}

// NewPosition constructs a Position from a line number, a character offset
// within that line, and an absolute character offset into the file. All
// three must be non-negative.
func NewPosition(line, charInLine, absolute int) (Position, error) {
	if line < 0 || charInLine < 0 || absolute < 0 {
		return Position{}, fmt.Errorf("%w: position components must be non-negative, got (line=%d, char=%d, absolute=%d)",
			ErrInvalidArgument, line, charInLine, absolute)
	}
	return Position{line: line, charInLine: charInLine, absolute: absolute, set: true}, nil
}

// IsSet reports whether this Position carries real coordinates, as opposed
// to standing in for an unpositioned token.
func (p Position) IsSet() bool {
	return p.set
}

// Line returns the zero-based line number. Meaningless if !p.IsSet().
func (p Position) Line() int {
	return p.line
}

// CharInLine returns the zero-based character offset within Line. Meaningless
// if !p.IsSet().
func (p Position) CharInLine() int {
	return p.charInLine
}

// Absolute returns the zero-based character offset from the start of the
// file. Meaningless if !p.IsSet().
func (p Position) Absolute() int {
	return p.absolute
}

// String implements [fmt.Stringer].
func (p Position) String() string {
	if !p.set {
		return "<unpositioned>"
	}
	return fmt.Sprintf("%d:%d", p.line, p.charInLine)
}
