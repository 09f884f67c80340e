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

package interval

import "github.com/tokenrules/tokrule/token"

// BuildSpanIndex walks every positioned token in stream (including shadow
// tokens) and returns a Map from byte offset to the token covering it.
//
// Tokens with no position (synthetic tokens produced by an action, such as
// a Group built from pieces of other files) or an empty value are skipped,
// since they do not occupy a meaningful byte range.
func BuildSpanIndex(stream *token.Stream) *Map[int, token.Token] {
	idx := &Map[int, token.Token]{}
	for _, tok := range stream.AllTokens() {
		if tok.Nil() {
			continue
		}
		pos := tok.Position()
		if !pos.IsSet() {
			continue
		}
		value := tok.Value()
		if value == "" {
			continue
		}
		start := pos.Absolute()
		idx.Insert(start, start+len(value), tok)
	}
	return idx
}
