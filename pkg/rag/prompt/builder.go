package prompt

import (
	"strings"

	"ollama-chat-be/pkg/llm"
	"ollama-chat-be/pkg/store"
)

const (
	toolInstruction = "Use ONLY the information in the context above. Do not fabricate links, names, or identities that are not present in it."

	documentLabel = "Context from uploaded documents:"

	closingInstruction = "Answer the user's question using the context above when it is relevant."
)

// Builder assembles the final message list sent to inference from the
// session's system prompt, retrieved document context, tool/search context
// and the full conversation history.
type Builder struct {
	systemPrompt string
	docContext   string
	toolContext  string
	history      []store.Message
}

func NewBuilder(systemPrompt, docContext, toolContext string, history []store.Message) *Builder {
	return &Builder{
		systemPrompt: systemPrompt,
		docContext:   docContext,
		toolContext:  toolContext,
		history:      history,
	}
}

// Build produces the ordered message list. When any of system prompt,
// tool context or document context is present, exactly one leading system
// message carries all of them in a fixed order; the stored history follows
// unmodified and untruncated. The whole history is resent every turn, so
// session length is bounded only by the model's own context tolerance.
func (b *Builder) Build() []llm.Message {
	messages := make([]llm.Message, 0, len(b.history)+1)

	if system := b.buildSystemContent(); system != "" {
		messages = append(messages, llm.Message{Role: store.RoleSystem, Content: system})
	}

	for _, msg := range b.history {
		messages = append(messages, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	return messages
}

func (b *Builder) buildSystemContent() string {
	if b.systemPrompt == "" && b.docContext == "" && b.toolContext == "" {
		return ""
	}

	var sb strings.Builder
	b.writeSystemPrompt(&sb)
	b.writeToolContext(&sb)
	b.writeDocumentContext(&sb)
	b.writeClosing(&sb)
	return sb.String()
}

func (b *Builder) writeSystemPrompt(sb *strings.Builder) {
	if b.systemPrompt == "" {
		return
	}
	sb.WriteString(b.systemPrompt)
	sb.WriteString("\n\n")
}

func (b *Builder) writeToolContext(sb *strings.Builder) {
	if b.toolContext == "" {
		return
	}
	sb.WriteString(b.toolContext)
	sb.WriteString("\n\n")
	sb.WriteString(toolInstruction)
	sb.WriteString("\n\n")
}

func (b *Builder) writeDocumentContext(sb *strings.Builder) {
	if b.docContext == "" {
		return
	}
	sb.WriteString(documentLabel)
	sb.WriteString("\n")
	sb.WriteString(b.docContext)
	sb.WriteString("\n\n")
}

func (b *Builder) writeClosing(sb *strings.Builder) {
	if b.toolContext == "" && b.docContext == "" {
		return
	}
	sb.WriteString(closingInstruction)
}
