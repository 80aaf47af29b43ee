package models

import "time"

// Task is one checklist item in a saved course. The JSON shape matches
// what the study-plan analysis produces.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Duration  string `json:"duration"`
	Completed bool   `json:"completed"`
}

// Course is a saved study plan for a video or uploaded document.
// VideoID doubles as the document identifier for PDF-based courses.
type Course struct {
	ID         string    `json:"id"`
	VideoID    string    `json:"videoId"`
	Title      string    `json:"title"`
	Concepts   []string  `json:"concepts"`
	Tasks      []Task    `json:"tasks"`
	Transcript string    `json:"transcript,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
