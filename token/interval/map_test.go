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

package interval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenrules/tokrule/token"
	"github.com/tokenrules/tokrule/token/interval"
)

func TestMapGetFindsCoveringInterval(t *testing.T) {
	t.Parallel()

	var m interval.Map[int, string]
	m.Insert(0, 3, "abc")
	m.Insert(3, 5, "de")

	got := m.Get(1)
	require.True(t, got.Found)
	assert.Equal(t, "abc", got.Value)

	got = m.Get(4)
	require.True(t, got.Found)
	assert.Equal(t, "de", got.Value)

	assert.False(t, m.Get(10).Found)
}

func TestMapInsertPanicsOnOverlap(t *testing.T) {
	t.Parallel()

	var m interval.Map[int, string]
	m.Insert(0, 5, "a")

	assert.Panics(t, func() {
		m.Insert(3, 8, "b")
	})
}

func TestMapInsertPanicsOnEmptyOrBackwardsRange(t *testing.T) {
	t.Parallel()

	var m interval.Map[int, string]
	assert.Panics(t, func() {
		m.Insert(5, 5, "a")
	})
	assert.Panics(t, func() {
		m.Insert(5, 2, "a")
	})
}

func TestBuildSpanIndexCoversPositionedTokens(t *testing.T) {
	t.Parallel()

	a, err := token.Positioned("foo", 0, 0, 0)
	require.NoError(t, err)
	b, err := token.Positioned("bar", 0, 4, 4)
	require.NoError(t, err)
	synthetic := token.NewGroup(nil)

	s := token.NewStream([]token.Token{a, b, synthetic}, true)
	idx := interval.BuildSpanIndex(s)

	assert.Equal(t, 2, idx.Len())

	got := idx.Get(1)
	require.True(t, got.Found)
	assert.Equal(t, "foo", got.Value.Value())

	got = idx.Get(5)
	require.True(t, got.Found)
	assert.Equal(t, "bar", got.Value.Value())

	assert.False(t, idx.Get(3).Found)
}
