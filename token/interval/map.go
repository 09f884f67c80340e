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

import (
	"fmt"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints"
)

// Map is an interval map from non-overlapping, half-open intervals [start,
// end) with endpoints in K to values of type V.
//
// Unlike a general-purpose interval tree, Map assumes its caller's
// intervals never overlap (true of token spans, which tile a file without
// gaps or repeats): Insert panics if the new interval overlaps an existing
// one, rather than trying to describe the overlap.
//
// The zero value is ready to use.
type Map[K constraints.Ordered, V any] struct {
	tree btree.Map[K, entry[K, V]]
}

type entry[K constraints.Ordered, V any] struct {
	start K
	value V
}

// Interval is an entry returned by [Map.Get] and [Map.Intervals]. A zero
// Interval (Found == false) means no interval covers the queried key.
type Interval[K constraints.Ordered, V any] struct {
	Start, End K
	Value      V
	Found      bool
}

// Get looks up the interval that contains key, if one exists.
func (m *Map[K, V]) Get(key K) Interval[K, V] {
	it := m.tree.Iter()
	if !it.Seek(key) {
		return Interval[K, V]{}
	}
	// Intervals are half-open: one ending exactly at key does not cover it.
	if it.Key() == key && !it.Next() {
		return Interval[K, V]{}
	}
	e := it.Value()
	if key < e.start {
		return Interval[K, V]{}
	}
	return Interval[K, V]{Start: e.start, End: it.Key(), Value: e.value, Found: true}
}

// Insert adds the half-open interval [start, end) to the map, associated
// with value.
//
// Panics if start >= end, or if [start, end) overlaps any interval already
// present.
func (m *Map[K, V]) Insert(start, end K, value V) {
	if start >= end {
		panic(fmt.Sprintf("interval: start (%v) must be < end (%v)", start, end))
	}

	it := m.tree.Iter()
	found := it.Seek(start)
	if found && it.Key() == start {
		// An interval ending exactly at start is adjacent, not overlapping;
		// the next one up is the only candidate for an overlap.
		found = it.Next()
	}
	if found {
		e := it.Value()
		if end > e.start {
			panic(fmt.Sprintf("interval: [%v, %v) overlaps existing interval [%v, %v)", start, end, e.start, it.Key()))
		}
	}

	m.tree.Set(end, entry[K, V]{start: start, value: value})
}

// Len returns the number of intervals stored in the map.
func (m *Map[K, V]) Len() int {
	return m.tree.Len()
}

// Intervals returns every interval in the map, in ascending order of Start.
func (m *Map[K, V]) Intervals() []Interval[K, V] {
	out := make([]Interval[K, V], 0, m.tree.Len())
	m.tree.Scan(func(end K, e entry[K, V]) bool {
		out = append(out, Interval[K, V]{Start: e.start, End: end, Value: e.value, Found: true})
		return true
	})
	return out
}
