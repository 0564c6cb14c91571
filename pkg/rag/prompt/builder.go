// Package prompt assembles the user-visible half of each model
// request: the question or code plus whatever retrieved passages ground
// it. System prompts live in internal/constant; this package only
// shapes the user message.
package prompt

import (
	"fmt"
	"strings"
)

// ForQuery embeds retrieved passages as context ahead of the research
// question.
func ForQuery(question string, contexts []string) string {
	var b strings.Builder
	writeContexts(&b, "Context", contexts)
	b.WriteString("User question: ")
	b.WriteString(question)
	return b.String()
}

// ForChat prefixes the chat message with lightweight research context
// the model may ignore when unrelated.
func ForChat(message string, contexts []string) string {
	if len(contexts) == 0 {
		return message
	}
	var b strings.Builder
	b.WriteString("Relevant research context (use only if related to the question):\n")
	b.WriteString(strings.Join(contexts, "\n\n"))
	b.WriteString("\n\nUser message: ")
	b.WriteString(message)
	return b.String()
}

// ForGenerate states the target language and optionally grounds the
// request in retrieved passages.
func ForGenerate(description, language string, contexts []string) string {
	var b strings.Builder
	if len(contexts) > 0 {
		b.WriteString("Relevant research context (incorporate applicable algorithms/patterns):\n")
		b.WriteString(strings.Join(contexts, "\n\n"))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Generate %s code for the following:\n\n%s", language, description)
	return b.String()
}

// ForAnalyze pairs the code under review with its research context.
func ForAnalyze(code string, contexts []string) string {
	var b strings.Builder
	writeContexts(&b, "Context", contexts)
	b.WriteString("Selected code:\n")
	b.WriteString(code)
	return b.String()
}

func writeContexts(b *strings.Builder, label string, contexts []string) {
	if len(contexts) == 0 {
		return
	}
	b.WriteString(label)
	b.WriteString(":\n\n")
	b.WriteString(strings.Join(contexts, "\n\n"))
	b.WriteString("\n\n")
}
