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

import (
	"fmt"

	"github.com/tokenrules/tokrule/action"
	"github.com/tokenrules/tokrule/rule"
)

// Entry is one named (rule, action) pair in a [Grammar]: when Match
// succeeds during a scan, Action is run over the [rule.Match] to produce
// the tokens spliced back into the stream.
type Entry struct {
	Name   string
	Match  rule.Rule
	Action action.Func
}

// Builder assembles a [Grammar] from an insertion-ordered set of named
// entries. Entries are tried in the order they were defined; the first to
// match at a given position wins.
type Builder struct {
	entries []Entry
	seen    map[string]bool
	ctx     *rule.Context
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		seen: make(map[string]bool),
		ctx:  rule.NewContext(),
	}
}

// Define adds a named entry. name becomes available to [rule.Reference]
// rules defined anywhere in this (or a later) entry, including within r
// itself via closures, since rule lookups happen at match time against the
// shared context.
//
// Fails (wraps [ErrInvalidArgument]) if name is empty or r is nil, and
// (wraps [ErrDuplicateRule]) if name was already defined on this builder.
func (b *Builder) Define(name string, r rule.Rule, act action.Func) error {
	if name == "" {
		return fmt.Errorf("%w: rule name must not be empty", ErrInvalidArgument)
	}
	if r == nil {
		return fmt.Errorf("%w: rule %q must not be nil", ErrInvalidArgument, name)
	}
	if b.seen[name] {
		return fmt.Errorf("%w: %q", ErrDuplicateRule, name)
	}
	if act == nil {
		act = action.Identity()
	}

	b.seen[name] = true
	b.entries = append(b.entries, Entry{Name: name, Match: r, Action: act})
	b.ctx.DefineRule(name, r)
	return nil
}

// Build snapshots the builder's entries into an immutable Grammar. The
// builder remains usable afterward; further Define calls do not affect
// grammars already built.
func (b *Builder) Build() *Grammar {
	entries := append([]Entry(nil), b.entries...)
	return &Grammar{entries: entries, ctx: b.ctx.Clone()}
}

// Grammar is an immutable, ready-to-run set of rule entries.
type Grammar struct {
	entries []Entry
	ctx     *rule.Context
}

// Entries returns the grammar's entries in declaration order.
func (g *Grammar) Entries() []Entry {
	return append([]Entry(nil), g.entries...)
}
