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

// Package grammar assembles named [rule.Rule]/[action.Func] pairs into a
// [Grammar] and runs it in a single left-to-right sweep over a token list:
// at each position, the first entry (in declaration order) that matches has
// its action's replacement spliced in, and the scan jumps past the spliced
// span rather than revisiting it.
package grammar
