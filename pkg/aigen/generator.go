package aigen

import (
	"context"
	"unicode/utf8"

	"prd-studio-be/pkg/llm"
)

// Request carries one generation call.
type Request struct {
	Kind        Kind
	DocContext  string
	Instruction string
	History     []llm.Message
	Options     []llm.Option
}

// Result is the post-processed model output. TokensUsed is an estimate;
// none of the wired providers report usage, so we approximate at four
// characters per token.
type Result struct {
	Content    string
	Reasoning  string
	TokensUsed int
}

// Failure is a classified provider error with a message safe to show to
// the user.
type Failure struct {
	Class   llm.ErrorClass
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }
func (f *Failure) Unwrap() error { return f.Err }

// Generator turns document context plus an instruction into model
// output, applying prompt shaping on the way in and thinking/fence
// cleanup on the way out.
type Generator struct {
	provider llm.LLMProvider
}

func NewGenerator(provider llm.LLMProvider) *Generator {
	return &Generator{provider: provider}
}

func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	prompt := newPromptBuilder(req.Kind, req.DocContext, req.Instruction).Build()

	var raw string
	var err error
	if len(req.History) > 0 {
		history := append(append([]llm.Message{}, req.History...), llm.Message{Role: "user", Content: prompt})
		raw, err = g.provider.Chat(ctx, history, req.Options...)
	} else {
		raw, err = g.provider.Generate(ctx, prompt, req.Options...)
	}
	if err != nil {
		class := llm.Classify(err)
		return nil, &Failure{Class: class, Message: llm.UserMessage(class), Err: err}
	}

	content, reasoning := StripThinking(raw)
	if req.Kind == KindGenerateFeatures || req.Kind == KindGenerateTasks {
		content = StripFences(content)
	}

	return &Result{
		Content:    content,
		Reasoning:  reasoning,
		TokensUsed: EstimateTokens(prompt) + EstimateTokens(raw),
	}, nil
}

// EstimateTokens approximates token usage from text length.
func EstimateTokens(text string) int {
	return utf8.RuneCountInString(text) / 4
}
