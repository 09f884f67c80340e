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

import "github.com/tokenrules/tokrule/token"

// Match describes a successful [Rule.Match]: the half-open span of raw
// stream indices it consumed, the non-shadow tokens it actually matched
// (which may be fewer than End-Start if shadow tokens fell within the
// span), and the rule that produced it.
type Match struct {
	Start, End   int
	Tokens       []token.Token
	MatchingRule Rule
}

// Empty reports whether this match consumed no tokens (Start == End).
func (m Match) Empty() bool {
	return m.Start == m.End
}
