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

// Tracer is a hook for observing rule match attempts. A Context stores the
// Tracer set with [Context.SetTracer] and passes it on in [Context.Clone],
// but no rule, combinator or grammar in this module calls OnAttempt, so an
// attached Tracer receives no calls. Nil is the default.
type Tracer interface {
	// OnAttempt receives the rule that was tried, the raw stream index it
	// was tried at, and whether it succeeded.
	OnAttempt(r Rule, at int, matched bool)
}

// Context carries the mutable state a grammar run shares across every rule
// it evaluates: named rule references (for [Reference]) and named captured
// token lists (for [Capture] and [Reference] in TOKENS mode).
//
// A Context is meant to be owned by a single engine run; see [Context.Clone]
// for safely fanning a grammar's rules out across concurrent runs.
type Context struct {
	rules    map[string]Rule
	captures map[string][]token.Token
	tracer   Tracer
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{
		rules:    make(map[string]Rule),
		captures: make(map[string][]token.Token),
	}
}

// DefineRule associates key with r, last-write-wins. An empty key is
// accepted here; only the grammar builder rejects it (see grammar.Builder).
func (c *Context) DefineRule(key string, r Rule) {
	c.rules[key] = r
}

// RuleReference looks up the rule defined under key.
func (c *Context) RuleReference(key string) (Rule, bool) {
	r, ok := c.rules[key]
	return r, ok
}

// CaptureTokens stores a defensive copy of tokens under key, last-write-wins.
func (c *Context) CaptureTokens(key string, tokens []token.Token) {
	cp := make([]token.Token, len(tokens))
	copy(cp, tokens)
	c.captures[key] = cp
}

// CapturedTokens returns the token list stored under key. The returned
// slice must be treated as read-only.
func (c *Context) CapturedTokens(key string) ([]token.Token, bool) {
	toks, ok := c.captures[key]
	return toks, ok
}

// SetTracer attaches (or, passed nil, detaches) a Tracer to this Context.
func (c *Context) SetTracer(t Tracer) {
	c.tracer = t
}

func (c *Context) trace(r Rule, at int, matched bool) {
	if c.tracer != nil {
		c.tracer.OnAttempt(r, at, matched)
	}
}

// Clone returns a Context with the same rule definitions (rules are
// immutable values, safe to share) but independent capture storage, so
// concurrent engine runs over the same grammar never observe each other's
// captures.
func (c *Context) Clone() *Context {
	clone := NewContext()
	for k, v := range c.rules {
		clone.rules[k] = v
	}
	for k, v := range c.captures {
		cp := make([]token.Token, len(v))
		copy(cp, v)
		clone.captures[k] = cp
	}
	clone.tracer = c.tracer
	return clone
}
