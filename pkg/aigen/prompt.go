package aigen

import (
	"fmt"
	"strings"
)

// Kind selects the prompt recipe for a generation request
type Kind string

const (
	KindDraftPRD         Kind = "draft_prd"
	KindGenerateFeatures Kind = "generate_features"
	KindGenerateTasks    Kind = "generate_tasks"
	KindImproveWriting   Kind = "improve_writing"
	KindSummarize        Kind = "summarize"
	KindChat             Kind = "chat"
)

// maxContextChars bounds the document text injected into a prompt.
// Roughly 3k tokens; generous for PRDs while staying inside small
// local-model context windows.
const maxContextChars = 12000

// TruncateContext clips document text to the prompt budget, cutting at
// a line boundary when one is close to the limit.
func TruncateContext(text string) string {
	runes := []rune(text)
	if len(runes) <= maxContextChars {
		return text
	}
	clipped := string(runes[:maxContextChars])
	if nl := strings.LastIndex(clipped, "\n"); nl > maxContextChars-500 {
		clipped = clipped[:nl]
	}
	return clipped
}

// promptBuilder shapes the final prompt from document context and the
// user instruction.
type promptBuilder struct {
	kind        Kind
	docContext  string
	instruction string
}

func newPromptBuilder(kind Kind, docContext, instruction string) *promptBuilder {
	return &promptBuilder{
		kind:        kind,
		docContext:  TruncateContext(docContext),
		instruction: instruction,
	}
}

func (b *promptBuilder) Build() string {
	var prompt strings.Builder

	b.writeDocument(&prompt)
	b.writeTask(&prompt)
	b.writeFormat(&prompt)
	b.writeInstruction(&prompt)

	return prompt.String()
}

func (b *promptBuilder) writeDocument(prompt *strings.Builder) {
	if b.docContext == "" {
		return
	}
	prompt.WriteString("<document>\n")
	prompt.WriteString(b.docContext)
	prompt.WriteString("\n</document>\n\n")
}

func (b *promptBuilder) writeTask(prompt *strings.Builder) {
	prompt.WriteString("<task>\n")
	switch b.kind {
	case KindDraftPRD:
		prompt.WriteString("You are a senior product manager drafting a Product Requirements Document.\n")
		prompt.WriteString("Write a complete, well-structured PRD in markdown based on the instruction and any existing document content.\n")
	case KindGenerateFeatures:
		prompt.WriteString("You are a product analyst. Derive a list of concrete product features from the document.\n")
		prompt.WriteString("Each feature needs a title, a one-paragraph description, a priority, a delivery phase and an effort estimate.\n")
	case KindGenerateTasks:
		prompt.WriteString("You are an engineering lead. Break the document down into implementation tasks.\n")
		prompt.WriteString("Each task needs a title, a description, a priority, the role that should own it and an hour estimate.\n")
	case KindImproveWriting:
		prompt.WriteString("You are an editor. Rewrite the given text to be clearer and more concise while preserving meaning.\n")
	case KindSummarize:
		prompt.WriteString("Summarize the document: capture the goals, the scope and the key decisions.\n")
	default:
		prompt.WriteString("You are an assistant helping the user iterate on their product document.\n")
		prompt.WriteString("Ground your answer in the document content when it is relevant.\n")
	}
	prompt.WriteString("</task>\n\n")
}

func (b *promptBuilder) writeFormat(prompt *strings.Builder) {
	switch b.kind {
	case KindGenerateFeatures:
		prompt.WriteString("<format>\n")
		prompt.WriteString(`Respond with ONLY a JSON array, no other text: [{"title": "...", "description": "...", "priority": "high|medium|low", "phase": "...", "estimated_effort": "..."}]`)
		prompt.WriteString("\n</format>\n\n")
	case KindGenerateTasks:
		prompt.WriteString("<format>\n")
		prompt.WriteString(`Respond with ONLY a JSON array, no other text: [{"title": "...", "description": "...", "priority": "high|medium|low", "role": "...", "estimated_hours": 0}]`)
		prompt.WriteString("\n</format>\n\n")
	default:
		prompt.WriteString("<format>\nRespond in plain markdown.\n</format>\n\n")
	}
}

func (b *promptBuilder) writeInstruction(prompt *strings.Builder) {
	prompt.WriteString("<instruction>\n")
	prompt.WriteString(b.instruction)
	prompt.WriteString("\n</instruction>\n")
	prompt.WriteString(fmt.Sprintf("\nNow perform the %s task.", string(b.kind)))
}
