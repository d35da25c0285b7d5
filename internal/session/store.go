package session

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/tienganhkids/megatest/internal/grading"
)

var (
	ErrTestNotFound    = errors.New("test not found")
	ErrAttemptNotFound = errors.New("attempt not found")
	ErrSubmitted       = errors.New("attempt already submitted")
)

type ListOpts struct {
	Level  string
	Limit  int
	Offset int
}

type AttemptListOpts struct {
	TestID string
	UserID string
	Status string // optional: in_progress|submitted
	Limit  int
	Offset int
}

type Store interface {
	PutTest(t Test) error
	GetTest(id string) (Test, error) // learner-safe: answer keys stripped
	GetTestFull(ctx context.Context, id string) (Test, error)
	ListTests(ctx context.Context, opts ListOpts) ([]TestSummary, error)

	NewAttempt(testID, userID string) (Attempt, error)
	SaveResponses(attemptID string, resp map[string]any) (Attempt, error)
	Submit(attemptID string) (Attempt, error)
	GetAttempt(id string) (Attempt, error)
	ListAttempts(ctx context.Context, opts AttemptListOpts) ([]Attempt, error)
}

type memoryStore struct {
	mu       sync.RWMutex
	tests    map[string]Test
	attempts map[string]Attempt
	grader   grading.Grader
}

func NewInMemoryStore(g grading.Grader) Store {
	return &memoryStore{
		tests:    map[string]Test{},
		attempts: map[string]Attempt{},
		grader:   g,
	}
}

func (m *memoryStore) PutTest(t Test) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().Unix()
	}
	m.tests[t.ID] = t
	return nil
}

func (m *memoryStore) GetTest(id string) (Test, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tests[id]
	if !ok {
		return Test{}, ErrTestNotFound
	}
	t.Content = t.Content.Redacted()
	return t, nil
}

func (m *memoryStore) GetTestFull(_ context.Context, id string) (Test, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tests[id]
	if !ok {
		return Test{}, ErrTestNotFound
	}
	return t, nil
}

func (m *memoryStore) ListTests(_ context.Context, opts ListOpts) ([]TestSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]TestSummary, 0, len(m.tests))
	for _, t := range m.tests {
		if opts.Level != "" && string(t.Level) != opts.Level {
			continue
		}
		out = append(out, TestSummary{
			ID:        t.ID,
			Title:     t.Title,
			Level:     t.Level,
			Questions: t.Content.TotalQuestions(),
			CreatedAt: t.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return window(out, opts.Offset, opts.Limit), nil
}

func (m *memoryStore) NewAttempt(testID, userID string) (Attempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tests[testID]
	if !ok {
		return Attempt{}, ErrTestNotFound
	}
	a := Attempt{
		ID:        newID(),
		TestID:    testID,
		UserID:    userID,
		Status:    "in_progress",
		Total:     t.Content.TotalQuestions(),
		Responses: map[string]any{},
		StartedAt: time.Now().Unix(),
	}
	m.attempts[a.ID] = a
	return a, nil
}

func (m *memoryStore) SaveResponses(attemptID string, resp map[string]any) (Attempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.attempts[attemptID]
	if !ok {
		return Attempt{}, ErrAttemptNotFound
	}
	if a.Status == "submitted" {
		return Attempt{}, ErrSubmitted
	}
	for k, v := range resp {
		a.Responses[k] = v
	}
	m.attempts[attemptID] = a
	return a, nil
}

func (m *memoryStore) Submit(attemptID string) (Attempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.attempts[attemptID]
	if !ok {
		return Attempt{}, ErrAttemptNotFound
	}
	if a.Status == "submitted" {
		return a, nil
	}
	t, ok := m.tests[a.TestID]
	if !ok {
		return Attempt{}, ErrTestNotFound
	}
	sum, err := m.grader.GradeTest(t.Content, a.Responses)
	if err != nil {
		return Attempt{}, err
	}
	a.Correct = sum.Correct
	a.Total = sum.Total
	a.Score = sum.Report.Score
	a.CorrectText = sum.Report.CorrectText
	a.Status = "submitted"
	a.SubmittedAt = time.Now().Unix()
	m.attempts[attemptID] = a
	return a, nil
}

func (m *memoryStore) GetAttempt(id string) (Attempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.attempts[id]
	if !ok {
		return Attempt{}, ErrAttemptNotFound
	}
	return a, nil
}

func (m *memoryStore) ListAttempts(_ context.Context, opts AttemptListOpts) ([]Attempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Attempt, 0, len(m.attempts))
	for _, a := range m.attempts {
		if opts.TestID != "" && a.TestID != opts.TestID {
			continue
		}
		if opts.UserID != "" && a.UserID != opts.UserID {
			continue
		}
		if opts.Status != "" && a.Status != opts.Status {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt > out[j].StartedAt })
	return window(out, opts.Offset, opts.Limit), nil
}

func newID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 36)
}

func window[T any](in []T, offset, limit int) []T {
	if offset >= len(in) {
		return []T{}
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
