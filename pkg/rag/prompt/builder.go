package prompt

import (
	"strings"

	"docuchat-be/pkg/llm"
)

// Builder assembles the instruction prompt from retrieved context, the user
// query and prior turns.
type Builder struct {
	contextTexts []string
	query        string
	history      []llm.Message
}

func NewBuilder(contextTexts []string, query string, history []llm.Message) *Builder {
	return &Builder{
		contextTexts: contextTexts,
		query:        query,
		history:      history,
	}
}

// Build produces the full prompt: an optional conversation transcript
// (oldest first) followed by the RAG instruction block. When the context
// block is empty a variant template permits best-effort general-knowledge
// answering.
func (b *Builder) Build() string {
	var prompt strings.Builder

	b.writeHistory(&prompt)
	b.writeInstruction(&prompt)

	return prompt.String()
}

func (b *Builder) writeHistory(prompt *strings.Builder) {
	if len(b.history) == 0 {
		return
	}

	prompt.WriteString("Previous conversation:\n")
	for _, msg := range b.history {
		role := "User"
		if msg.Role == "assistant" {
			role = "Assistant"
		}
		prompt.WriteString(role)
		prompt.WriteString(": ")
		prompt.WriteString(msg.Content)
		prompt.WriteString("\n")
	}
	prompt.WriteString("\n\n")
}

func (b *Builder) writeInstruction(prompt *strings.Builder) {
	contextBlock := strings.TrimSpace(strings.Join(b.contextTexts, "\n\n"))

	if contextBlock != "" {
		prompt.WriteString("You are an AI assistant helping users with information from documentation.\n")
		prompt.WriteString("Answer the user's question based ONLY on the provided context.\n")
		prompt.WriteString("If the context doesn't contain relevant information, clearly state that you don't have enough information to answer.\n\n")
		prompt.WriteString("CONTEXT:\n")
		prompt.WriteString(contextBlock)
		prompt.WriteString("\n\n")
	} else {
		prompt.WriteString("You are an AI assistant helping users with information from documentation.\n")
		prompt.WriteString("The system tried to find relevant context for the user's question but couldn't find any relevant information.\n")
		prompt.WriteString("Try to answer the user's question based on your general knowledge, but acknowledge that you don't have specific documentation context.\n\n")
	}

	prompt.WriteString("QUESTION:\n")
	prompt.WriteString(b.query)
	prompt.WriteString("\n\nANSWER:")
}
