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

import "errors"

// ErrInvalidArgument is the sentinel for a bad constructor argument. No
// constructor in this package wraps it: capture and reference keys are not
// validated, and a negative Repeat bound wraps [ErrInvalidRule].
var ErrInvalidArgument = errors.New("rule: invalid argument")

// ErrInvalidRule is wrapped by structurally forbidden combinators, such as a
// Sequence with fewer than two rules, a Repeat with max < max(1, min), or a
// Pattern built from an unparseable regular expression.
var ErrInvalidRule = errors.New("rule: invalid rule")
