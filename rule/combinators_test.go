package rule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenrules/tokrule/rule"
	"github.com/tokenrules/tokrule/token"
)

func word(t *testing.T, v string) token.Token {
	t.Helper()
	tok, err := token.Unpositioned(v)
	require.NoError(t, err)
	return tok
}

func streamOf(t *testing.T, values ...string) *token.Stream {
	t.Helper()
	toks := make([]token.Token, len(values))
	for i, v := range values {
		toks[i] = word(t, v)
	}
	return token.NewStream(toks, true)
}

func TestSequenceRejectsFewerThanTwoRules(t *testing.T) {
	t.Parallel()

	_, err := rule.Sequence(rule.Value("a"))
	assert.Error(t, err)
}

func TestSequenceMatchesInOrderAndConcatenatesTokens(t *testing.T) {
	t.Parallel()

	s := streamOf(t, "a", "b", "c")
	seq, err := rule.Sequence(rule.Value("a"), rule.Value("b"))
	require.NoError(t, err)

	m, ok := seq.Match(s, rule.NewContext())
	require.True(t, ok)
	assert.Equal(t, 0, m.Start)
	assert.Equal(t, 2, m.End)
	require.Len(t, m.Tokens, 2)
	assert.Equal(t, "a", m.Tokens[0].Value())
	assert.Equal(t, "b", m.Tokens[1].Value())
	assert.Equal(t, 2, s.CurrentIndex())
}

func TestSequenceLeavesStreamUntouchedOnFailure(t *testing.T) {
	t.Parallel()

	s := streamOf(t, "a", "x")
	seq, err := rule.Sequence(rule.Value("a"), rule.Value("b"))
	require.NoError(t, err)

	_, ok := seq.Match(s, rule.NewContext())
	assert.False(t, ok)
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestAnyOfRejectsEmptyRuleList(t *testing.T) {
	t.Parallel()

	_, err := rule.AnyOf()
	assert.Error(t, err)
}

func TestAnyOfTriesInOrderedChoiceNotLongestMatch(t *testing.T) {
	t.Parallel()

	s := streamOf(t, "a")
	// first alternative matches (and would be chosen even if a later
	// alternative could also match); ordered choice, not longest match.
	any, err := rule.AnyOf(rule.Value("a"), rule.Always())
	require.NoError(t, err)

	m, ok := any.Match(s, rule.NewContext())
	require.True(t, ok)
	assert.Equal(t, "a", m.Tokens[0].Value())
}

func TestAnyOfFallsThroughToLaterAlternative(t *testing.T) {
	t.Parallel()

	s := streamOf(t, "b")
	any, err := rule.AnyOf(rule.Value("a"), rule.Value("b"))
	require.NoError(t, err)

	m, ok := any.Match(s, rule.NewContext())
	require.True(t, ok)
	assert.Equal(t, "b", m.Tokens[0].Value())
}

func TestOptionalSucceedsEmptyWhenInnerFails(t *testing.T) {
	t.Parallel()

	s := streamOf(t, "x")
	opt := rule.Optional(rule.Value("a"))

	m, ok := opt.Match(s, rule.NewContext())
	require.True(t, ok)
	assert.True(t, m.Empty())
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestOptionalFailsPastEndOfStream(t *testing.T) {
	t.Parallel()

	s := streamOf(t)
	opt := rule.Optional(rule.Value("a"))

	_, ok := opt.Match(s, rule.NewContext())
	assert.False(t, ok)
}

func TestRepeatRejectsInvalidBounds(t *testing.T) {
	t.Parallel()

	_, err := rule.Repeat(rule.Always(), -1, 3)
	assert.Error(t, err)

	_, err = rule.Repeat(rule.Always(), 2, 1)
	assert.Error(t, err)

	_, err = rule.Repeat(rule.Always(), 0, 0)
	assert.Error(t, err)
}

func TestRepeatGreedilyStopsAtMax(t *testing.T) {
	t.Parallel()

	digit, err := rule.Pattern(`[0-9]`)
	require.NoError(t, err)
	rep, err := rule.Repeat(digit, 2, 4)
	require.NoError(t, err)

	s := streamOf(t, "1", "2", "3", "4", "5")
	m, ok := rep.Match(s, rule.NewContext())
	require.True(t, ok)
	assert.Len(t, m.Tokens, 4)
	assert.Equal(t, 4, s.CurrentIndex())
}

func TestRepeatFailsBelowMinimum(t *testing.T) {
	t.Parallel()

	digit, err := rule.Pattern(`[0-9]`)
	require.NoError(t, err)
	rep, err := rule.Repeat(digit, 3, 4)
	require.NoError(t, err)

	s := streamOf(t, "1", "2", "x")
	_, ok := rep.Match(s, rule.NewContext())
	assert.False(t, ok)
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestRepeatStopsAfterTwoConsecutiveEmptyMatches(t *testing.T) {
	t.Parallel()

	// Optional(Never()) matches empty on every attempt while a token remains,
	// so on a one-token stream only the "two consecutive empty matches"
	// guard can end this unbounded loop.
	inner := rule.Optional(rule.Never())
	rep, err := rule.Repeat(inner, 0, rule.Unbounded)
	require.NoError(t, err)

	s := streamOf(t, "a")
	m, ok := rep.Match(s, rule.NewContext())
	require.True(t, ok)
	assert.True(t, m.Empty())
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestBoundaryCapturesUpToLookaheadTerminator(t *testing.T) {
	t.Parallel()

	s := streamOf(t, "a", "//", "b", "c", "\n", "d")
	require.NoError(t, s.MoveBy(1)) // park at "//"

	end, err := rule.AnyOf(rule.Lookahead(rule.Value("\n"), rule.Positive), rule.EndAnchor(rule.Document))
	require.NoError(t, err)
	comment := rule.Boundary(rule.Value("//"), rule.Always(), end)

	m, ok := comment.Match(s, rule.NewContext())
	require.True(t, ok)
	require.Len(t, m.Tokens, 3)
	assert.Equal(t, []string{"//", "b", "c"}, tokenValues(m.Tokens))
	assert.Equal(t, 4, s.CurrentIndex())
}

func tokenValues(toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Value()
	}
	return out
}

func TestLookaheadDoesNotConsume(t *testing.T) {
	t.Parallel()

	s := streamOf(t, "a", "b")
	la := rule.Lookahead(rule.Value("a"), rule.Positive)

	m, ok := la.Match(s, rule.NewContext())
	require.True(t, ok)
	assert.True(t, m.Empty())
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestLookaheadNegativeFailsWhenInnerMatches(t *testing.T) {
	t.Parallel()

	s := streamOf(t, "a")
	la := rule.Lookahead(rule.Value("a"), rule.Negative)

	_, ok := la.Match(s, rule.NewContext())
	assert.False(t, ok)
}

func TestLookbehindChecksPrecedingTokens(t *testing.T) {
	t.Parallel()

	s := streamOf(t, "a", "b")
	require.NoError(t, s.MoveBy(1))

	lb := rule.Lookbehind(rule.Value("a"), rule.Positive)
	m, ok := lb.Match(s, rule.NewContext())
	require.True(t, ok)
	assert.True(t, m.Empty())
	assert.Equal(t, 1, s.CurrentIndex())
}

func TestCaptureStoresMatchedTokensForReference(t *testing.T) {
	t.Parallel()

	s := streamOf(t, "x", "x")
	ctx := rule.NewContext()
	cap := rule.Capture("tag", rule.Value("x"))

	_, ok := cap.Match(s, ctx)
	require.True(t, ok)

	ref := rule.Reference("tag", rule.TokensRef)
	m, ok := ref.Match(s, ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, tokenValues(m.Tokens))
}

func TestReferenceTokensFailsWhenValuesDiffer(t *testing.T) {
	t.Parallel()

	s := streamOf(t, "x", "y")
	ctx := rule.NewContext()
	cap := rule.Capture("tag", rule.Value("x"))
	_, ok := cap.Match(s, ctx)
	require.True(t, ok)

	ref := rule.Reference("tag", rule.TokensRef)
	_, ok = ref.Match(s, ctx)
	assert.False(t, ok)
}

func TestReferenceRuleDelegatesToNamedRule(t *testing.T) {
	t.Parallel()

	ctx := rule.NewContext()
	ctx.DefineRule("digit", rule.MustPattern(`[0-9]`))

	s := streamOf(t, "7")
	ref := rule.Reference("digit", rule.RuleRef)
	m, ok := ref.Match(s, ctx)
	require.True(t, ok)
	assert.Equal(t, "7", m.Tokens[0].Value())
}

func TestReferenceDynamicFailsWhenBothOrNeitherBound(t *testing.T) {
	t.Parallel()

	s := streamOf(t, "x")
	ctx := rule.NewContext()
	ref := rule.Reference("missing", rule.DynamicRef)

	_, ok := ref.Match(s, ctx)
	assert.False(t, ok)

	ctx.DefineRule("missing", rule.Value("x"))
	ctx.CaptureTokens("missing", []token.Token{word(t, "x")})
	_, ok = ref.Match(s, ctx)
	assert.False(t, ok)
}

func TestRecursiveMatchesBalancedNesting(t *testing.T) {
	t.Parallel()

	open := rule.Value("(")
	closeParen := rule.Value(")")
	atom := rule.MustPattern(`[a-z]`)

	balanced := rule.Recursive(open, closeParen, func(self rule.Rule) rule.Rule {
		any, err := rule.AnyOf(self, atom)
		require.NoError(t, err)
		return any
	})

	s := streamOf(t, "(", "(", "x", ")", ")")
	grouped := rule.Group(balanced)
	m, ok := grouped.Match(s, rule.NewContext())
	require.True(t, ok)
	require.Len(t, m.Tokens, 1)
	assert.Equal(t, "((x))", m.Tokens[0].Value())
	assert.Equal(t, 5, s.CurrentIndex())
}

func TestRecursiveFailsWhenClosingMissing(t *testing.T) {
	t.Parallel()

	open := rule.Value("(")
	closeParen := rule.Value(")")
	atom := rule.MustPattern(`[a-z]`)

	var balanced rule.Rule
	balanced = rule.Recursive(open, closeParen, func(self rule.Rule) rule.Rule {
		any, err := rule.AnyOf(self, atom)
		require.NoError(t, err)
		return any
	})

	s := streamOf(t, "(", "x")
	_, ok := balanced.Match(s, rule.NewContext())
	assert.False(t, ok)
	assert.Equal(t, 0, s.CurrentIndex())
}
