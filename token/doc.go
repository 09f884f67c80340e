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

// Package token defines the token model and stream abstraction consumed by
// the rule engine in the sibling rule, action, and grammar packages.
//
// A Token is a small immutable value with six variants: Simple, Escaped,
// Annotated, Indexed, Shadow, and Group. The package itself never produces
// tokens from source text — that is the job of an external tokenizer — but
// it owns construction, equality, and the Stream cursor that rules match
// against.
package token
