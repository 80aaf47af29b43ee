package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

const maxAnalyzeContent = 15000

// StudyTask is one actionable study task from an analysis.
type StudyTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Duration  string `json:"duration"`
	Completed bool   `json:"completed"`
}

// StudyPlan is the structured result of analyzing a transcript or
// document: key concepts plus an actionable task checklist.
type StudyPlan struct {
	Concepts []string    `json:"concepts"`
	Tasks    []StudyTask `json:"tasks"`
}

const analyzeSystemPrompt = `You are an educational content analyzer. Given a document's text content, extract:
1. Key concepts (5-7 main ideas/topics covered)
2. Action tasks (6-10 actionable study tasks with time estimates)

Respond in JSON format:
{
  "concepts": ["concept 1", "concept 2", ...],
  "tasks": [
    {"id": "1", "title": "Task description", "duration": "X min", "completed": false},
    ...
  ]
}

Make tasks specific and actionable. Time estimates should be realistic (5-30 min each).`

// AnalyzeStudyPlan extracts a study plan from raw text. Content beyond
// the model's comfortable context is truncated, not rejected.
func (c *Client) AnalyzeStudyPlan(ctx context.Context, content, documentTitle string) (*StudyPlan, error) {
	if len(content) > maxAnalyzeContent {
		content = content[:maxAnalyzeContent]
	}

	userPrompt := "Analyze this document"
	if documentTitle != "" {
		userPrompt += fmt.Sprintf(" titled %q", documentTitle)
	}
	userPrompt += " and create a study plan:\n\n" + content

	response, err := c.Complete(ctx, []Message{
		{Role: "system", Content: analyzeSystemPrompt},
		{Role: "user", Content: userPrompt},
	}, 0.7, 0)
	if err != nil {
		return nil, err
	}

	var plan StudyPlan
	if err := json.Unmarshal([]byte(extractJSON(stripThinking(response))), &plan); err != nil {
		return nil, fmt.Errorf("parse study plan response: %w", err)
	}
	return &plan, nil
}
