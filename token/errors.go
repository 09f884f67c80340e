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

import "errors"

// ErrInvalidArgument is a sentinel error wrapped by every construction-time
// validation failure in this package: an empty value, a malformed escape,
// a negative position component, or a negative index.
var ErrInvalidArgument = errors.New("token: invalid argument")

// ErrEndOfStream is returned by [Stream.CurrentToken] and [Stream.ReadToken]
// when no non-shadow token remains at or after the cursor.
var ErrEndOfStream = errors.New("token: end of stream")

// ErrImmutable is returned by any Stream method that would mutate the
// cursor of a stream constructed with mutable=false.
var ErrImmutable = errors.New("token: stream is immutable")
