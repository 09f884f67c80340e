package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenrules/tokrule/action"
	"github.com/tokenrules/tokrule/rule"
	"github.com/tokenrules/tokrule/token"
)

func tok(t *testing.T, v string) token.Token {
	t.Helper()
	got, err := token.Unpositioned(v)
	require.NoError(t, err)
	return got
}

func values(toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Value()
	}
	return out
}

func TestIdentityReturnsMatchedTokens(t *testing.T) {
	t.Parallel()

	m := rule.Match{Tokens: []token.Token{tok(t, "a")}}
	out := action.Identity()(rule.NewContext(), m, nil)
	assert.Equal(t, []string{"a"}, values(out))
}

func TestGroupingMatchedUsesOnlyMatchedTokens(t *testing.T) {
	t.Parallel()

	raw := []token.Token{tok(t, "a"), tok(t, "shadow"), tok(t, "b")}
	m := rule.Match{Start: 0, End: 3, Tokens: []token.Token{raw[0], raw[2]}}

	out := action.Grouping(action.Matched)(rule.NewContext(), m, raw)
	require.Len(t, out, 1)
	assert.Equal(t, "ab", out[0].Value())
}

func TestGroupingAllUsesFullRawSpan(t *testing.T) {
	t.Parallel()

	raw := []token.Token{tok(t, "a"), tok(t, "X"), tok(t, "b")}
	m := rule.Match{Start: 0, End: 3, Tokens: []token.Token{raw[0], raw[2]}}

	out := action.Grouping(action.All)(rule.NewContext(), m, raw)
	require.Len(t, out, 1)
	assert.Equal(t, "aXb", out[0].Value())
}

func TestFilterKeepsOnlyMatchingTokens(t *testing.T) {
	t.Parallel()

	m := rule.Match{Tokens: []token.Token{tok(t, "a"), tok(t, "1")}}
	out := action.Filter(func(tk token.Token) bool { return tk.Value() == "a" })(rule.NewContext(), m, nil)
	assert.Equal(t, []string{"a"}, values(out))
}

func TestSkipDropsMatchingTokens(t *testing.T) {
	t.Parallel()

	m := rule.Match{Tokens: []token.Token{tok(t, "a"), tok(t, "1")}}
	out := action.Skip(func(tk token.Token) bool { return tk.Value() == "a" })(rule.NewContext(), m, nil)
	assert.Equal(t, []string{"1"}, values(out))
}

func TestExtractMovesMatchingTokensIntoSink(t *testing.T) {
	t.Parallel()

	var sink []token.Token
	m := rule.Match{Tokens: []token.Token{tok(t, "a"), tok(t, "1"), tok(t, "b")}}

	out := action.Extract(func(tk token.Token) bool {
		_, err := token.Unpositioned(tk.Value())
		return err == nil && tk.Value() == "1"
	}, &sink)(rule.NewContext(), m, nil)

	assert.Equal(t, []string{"a", "b"}, values(out))
	assert.Equal(t, []string{"1"}, values(sink))
}

func TestConvertMapsEveryToken(t *testing.T) {
	t.Parallel()

	m := rule.Match{Tokens: []token.Token{tok(t, "a"), tok(t, "b")}}
	out := action.Convert(func(tk token.Token) token.Token {
		up, _ := token.Unpositioned(tk.Value() + "!")
		return up
	})(rule.NewContext(), m, nil)
	assert.Equal(t, []string{"a!", "b!"}, values(out))
}

func TestSplitProducesNonEmptyPieces(t *testing.T) {
	t.Parallel()

	splitFn, err := action.Split(`,`)
	require.NoError(t, err)

	m := rule.Match{Tokens: []token.Token{tok(t, "a,,b")}}
	out := splitFn(rule.NewContext(), m, nil)
	assert.Equal(t, []string{"a", "b"}, values(out))
}

func TestSplitRejectsInvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := action.Split(`(`)
	assert.Error(t, err)
}

func TestWrapAddsPrefixAndSuffix(t *testing.T) {
	t.Parallel()

	m := rule.Match{Tokens: []token.Token{tok(t, "a")}}
	out := action.Wrap("<", ">")(rule.NewContext(), m, nil)
	assert.Equal(t, []string{"<", "a", ">"}, values(out))
}

func TestAnnotateAttachesMetadata(t *testing.T) {
	t.Parallel()

	m := rule.Match{Tokens: []token.Token{tok(t, "a")}}
	out := action.Annotate(map[string]string{"k": "v"})(rule.NewContext(), m, nil)
	require.Len(t, out, 1)
	assert.Equal(t, token.Annotated, out[0].Kind())
	assert.Equal(t, "v", out[0].Metadata()["k"])
}

func TestIndexAssignsIncreasingIndicesAndSkipsAlreadyIndexed(t *testing.T) {
	t.Parallel()

	already, err := token.WrapIndex(tok(t, "x"), 99)
	require.NoError(t, err)

	m := rule.Match{Tokens: []token.Token{tok(t, "a"), tok(t, "b"), already}}
	out := action.Index(0)(rule.NewContext(), m, nil)

	require.Len(t, out, 3)
	assert.Equal(t, 0, out[0].Index())
	assert.Equal(t, 1, out[1].Index())
	assert.Equal(t, 99, out[2].Index())
}
