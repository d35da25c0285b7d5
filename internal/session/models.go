package session

import "github.com/tienganhkids/megatest/internal/megatest"

// Test is a validated mega test published for learners.
type Test struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Level     megatest.Level    `json:"level"`
	CreatedBy string            `json:"created_by,omitempty"`
	CreatedAt int64             `json:"created_at,omitempty"`
	Content   megatest.MegaTest `json:"content"`
}

// TestSummary is the list-view projection of a test.
type TestSummary struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Level     megatest.Level `json:"level"`
	Questions int            `json:"questions"`
	CreatedAt int64          `json:"created_at,omitempty"`
}

type Attempt struct {
	ID          string         `json:"id"`
	TestID      string         `json:"test_id"`
	UserID      string         `json:"user_id"`
	Status      string         `json:"status"` // in_progress|submitted
	Correct     int            `json:"correct"`
	Total       int            `json:"total"`
	Score       string         `json:"score,omitempty"`       // "7,4"
	CorrectText string         `json:"correctText,omitempty"` // "37/50"
	Responses   map[string]any `json:"responses"`             // questionID -> response payload
	StartedAt   int64          `json:"started_at,omitempty"`
	SubmittedAt int64          `json:"submitted_at,omitempty"`
}
