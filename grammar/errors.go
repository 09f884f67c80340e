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

package grammar

import "errors"

// ErrInvalidArgument is wrapped when a rule entry is defined with an empty
// name or a nil rule.
var ErrInvalidArgument = errors.New("grammar: invalid argument")

// ErrDuplicateRule is wrapped when a rule entry is defined under a name
// that's already in use in the same builder.
var ErrDuplicateRule = errors.New("grammar: duplicate rule name")
