package llm

import (
	"context"
	"strings"
)

const (
	maxChatContent  = 10000
	maxChatConcepts = 10
)

// ChatTurn is one prior message in a conversation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatContext is the learning context for an assistant conversation.
// SearchContext, when set, carries formatted web-search results the
// model should lean on for questions outside the document.
type ChatContext struct {
	Content       string
	Concepts      []string
	DocumentTitle string
	SearchContext string
}

// Chat runs one turn of the learning assistant conversation.
func (c *Client) Chat(ctx context.Context, message string, chatCtx ChatContext, history []ChatTurn) (string, error) {
	content := chatCtx.Content
	if len(content) > maxChatContent {
		content = content[:maxChatContent]
	}

	concepts := make([]string, 0, len(chatCtx.Concepts))
	for _, concept := range chatCtx.Concepts {
		if concept != "" && len(concepts) < maxChatConcepts {
			concepts = append(concepts, concept)
		}
	}

	var systemPrompt strings.Builder
	systemPrompt.WriteString("You are a helpful AI assistant for a learning platform. ")
	if chatCtx.DocumentTitle != "" {
		systemPrompt.WriteString("The user is learning about: " + chatCtx.DocumentTitle + ". ")
	}
	if len(concepts) > 0 {
		systemPrompt.WriteString("Key concepts: " + strings.Join(concepts, ", ") + ". ")
	}
	if content != "" {
		systemPrompt.WriteString("You have access to the document context below.\n\nDocument excerpt: " + content)
	} else {
		systemPrompt.WriteString("If the user's question is outside your knowledge or the document context, use the web search results provided to give accurate information.")
	}
	systemPrompt.WriteString("\n\nBe helpful, concise, and actionable. If you're not sure about something, say so and offer to search for more information.")

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: systemPrompt.String()})
	for _, turn := range history {
		role := turn.Role
		if role != "user" && role != "assistant" {
			continue
		}
		messages = append(messages, Message{Role: role, Content: turn.Content})
	}

	userMessage := message
	if chatCtx.SearchContext != "" {
		userMessage += "\n\nWeb search results:\n" + chatCtx.SearchContext
	}
	messages = append(messages, Message{Role: "user", Content: userMessage})

	response, err := c.Complete(ctx, messages, 0.6, 1000)
	if err != nil {
		return "", err
	}
	return stripThinking(response), nil
}
