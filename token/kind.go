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

// Kind identifies which of the six token variants a [Token] is.
type Kind byte

const (
	// Simple is a plain value+position token.
	Simple Kind = iota
	// Escaped is a value+position token whose value begins with an escape
	// sentinel and is at least two runes long.
	Escaped
	// Annotated wraps an inner token with a key-value metadata map.
	Annotated
	// Indexed wraps an inner token with a non-negative integer index.
	Indexed
	// Shadow is a token the Stream cursor skips over, such as whitespace.
	Shadow
	// Group holds an ordered run of inner tokens under a synthetic span.
	Group
)

// IsSkippable reports whether tokens of this kind are invisible to
// [Stream.CurrentToken], [Stream.ReadToken], and [Stream.HasMoreTokens].
//
// Only Shadow tokens are skippable; everything else, including the tokens
// nested inside a Group, participates in ordinary matching.
func (k Kind) IsSkippable() bool {
	return k == Shadow
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case Simple:
		return "Simple"
	case Escaped:
		return "Escaped"
	case Annotated:
		return "Annotated"
	case Indexed:
		return "Indexed"
	case Shadow:
		return "Shadow"
	case Group:
		return "Group"
	default:
		return fmt.Sprintf("token.Kind(%d)", byte(k))
	}
}
