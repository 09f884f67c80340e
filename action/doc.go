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

// Package action implements the token actions a grammar rule runs over a
// successful [rule.Match] to produce the replacement tokens spliced into the
// stream. Actions never fail at match time: anything that can go wrong about
// an action (an invalid regular expression, say) is rejected when the action
// is constructed, not while a grammar is running.
package action
