package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const maxAskConcepts = 15

const askSystemPrompt = `You are a helpful tutor. Answer the user's question using the provided document context. If the answer is not supported by the context, say what is missing and answer generally without inventing specific details. Keep it concise and actionable. Respond ONLY as JSON: { "answer": "..." }.`

// AskContext is the optional document context for a Q&A request.
type AskContext struct {
	Content       string
	Concepts      []string
	DocumentTitle string
}

// Ask answers a question against the given document context.
func (c *Client) Ask(ctx context.Context, question string, askCtx AskContext) (string, error) {
	content := askCtx.Content
	if len(content) > maxAnalyzeContent {
		content = content[:maxAnalyzeContent]
	}

	concepts := make([]string, 0, len(askCtx.Concepts))
	for _, concept := range askCtx.Concepts {
		if concept != "" && len(concepts) < maxAskConcepts {
			concepts = append(concepts, concept)
		}
	}

	var parts []string
	if askCtx.DocumentTitle != "" {
		parts = append(parts, "Document title: "+askCtx.DocumentTitle)
	}
	if len(concepts) > 0 {
		parts = append(parts, "Key concepts: "+strings.Join(concepts, "; "))
	}
	if content != "" {
		parts = append(parts, "Document excerpt: "+content)
	}
	parts = append(parts, "Question: "+question)

	response, err := c.Complete(ctx, []Message{
		{Role: "system", Content: askSystemPrompt},
		{Role: "user", Content: strings.Join(parts, "\n\n")},
	}, 0.4, 0)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal([]byte(extractJSON(stripThinking(response))), &parsed); err != nil {
		return "", fmt.Errorf("parse answer response: %w", err)
	}
	return parsed.Answer, nil
}
