package aigen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"prd-studio-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if len(history) > 0 {
		s.lastPrompt = history[len(history)-1].Content
	}
	return s.response, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.lastPrompt = prompt
	return s.response, s.err
}

func TestGenerateStripsThinking(t *testing.T) {
	stub := &stubProvider{response: "<think>the user wants a summary</think>## Goals\n\nShip it."}
	gen := NewGenerator(stub)

	res, err := gen.Generate(context.Background(), Request{Kind: KindSummarize, Instruction: "summarize"})
	require.NoError(t, err)

	assert.Equal(t, "## Goals\n\nShip it.", res.Content)
	assert.Equal(t, "the user wants a summary", res.Reasoning)
	assert.Greater(t, res.TokensUsed, 0)
}

func TestGenerateClassifiesFailure(t *testing.T) {
	stub := &stubProvider{err: llm.ErrMissingAPIKey}
	gen := NewGenerator(stub)

	_, err := gen.Generate(context.Background(), Request{Kind: KindDraftPRD, Instruction: "draft"})
	require.Error(t, err)

	var failure *Failure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, llm.ClassAuth, failure.Class)
	assert.Equal(t, "Invalid API key", failure.Message)
}

func TestGeneratePromptIncludesDocument(t *testing.T) {
	stub := &stubProvider{response: "ok"}
	gen := NewGenerator(stub)

	_, err := gen.Generate(context.Background(), Request{
		Kind:        KindDraftPRD,
		DocContext:  "Existing PRD body",
		Instruction: "extend the scope section",
	})
	require.NoError(t, err)

	assert.Contains(t, stub.lastPrompt, "<document>")
	assert.Contains(t, stub.lastPrompt, "Existing PRD body")
	assert.Contains(t, stub.lastPrompt, "extend the scope section")
}

func TestGenerateFencedJSONList(t *testing.T) {
	stub := &stubProvider{response: "```json\n[{\"title\": \"Login\", \"priority\": \"high\"}]\n```"}
	gen := NewGenerator(stub)

	res, err := gen.Generate(context.Background(), Request{Kind: KindGenerateFeatures, Instruction: "features"})
	require.NoError(t, err)

	items, err := ParseFeatureList(res.Content)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Login", items[0].Title)
	assert.Equal(t, "high", items[0].Priority)
}

func TestGenerateUsesHistory(t *testing.T) {
	stub := &stubProvider{response: "continued"}
	gen := NewGenerator(stub)

	_, err := gen.Generate(context.Background(), Request{
		Kind:        KindChat,
		Instruction: "and then?",
		History:     []llm.Message{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "hello"}},
	})
	require.NoError(t, err)
	assert.Contains(t, stub.lastPrompt, "and then?")
}

func TestTruncateContext(t *testing.T) {
	long := strings.Repeat("line of requirements text\n", 2000)
	clipped := TruncateContext(long)

	assert.LessOrEqual(t, len([]rune(clipped)), maxContextChars)
	assert.True(t, strings.HasSuffix(clipped, "requirements text"), "should cut on a line boundary")

	short := "small document"
	assert.Equal(t, short, TruncateContext(short))
}

func TestStripThinkingUnclosed(t *testing.T) {
	content, reasoning := StripThinking("answer first <think>never closed")
	assert.Equal(t, "answer first", content)
	assert.Equal(t, "never closed", reasoning)
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", "plain text", "plain text"},
		{"bare fence", "```\n[1]\n```", "[1]"},
		{"lang fence", "```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"inline json after fence", "```[1,2]```", "[1,2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.in))
		})
	}
}

func TestParseTaskListWithProse(t *testing.T) {
	raw := "Here are the tasks:\n[{\"title\": \"Set up repo\", \"estimated_hours\": 3}]\nLet me know."
	items, err := ParseTaskList(raw)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Set up repo", items[0].Title)
	assert.Equal(t, 3.0, items[0].EstimatedHours)
}

func TestParseFeatureListInvalid(t *testing.T) {
	_, err := ParseFeatureList("the model rambled and returned no json")
	assert.Error(t, err)
}
