package session

import (
	"context"
	"errors"
	"testing"

	"github.com/tienganhkids/megatest/internal/grading"
	"github.com/tienganhkids/megatest/internal/megatest"
)

func smallTest(id string, level megatest.Level) Test {
	return Test{
		ID:    id,
		Title: "Mega Test " + string(level),
		Level: level,
		Content: megatest.MegaTest{
			Level: level,
			MultipleChoice: []megatest.MultipleChoiceQ{
				{ID: "mc-1", Question: "She ___ tea.", Options: []string{"drink", "drinks", "drinking", "drank"}, CorrectAnswer: 1, Level: level},
			},
			FillBlank: []megatest.FillBlankQ{
				{ID: "fb-1", Question: "I ___ a cat.", CorrectAnswer: "have", Level: level},
			},
			TrueFalse: []megatest.TrueFalseQ{
				{ID: "tf-1", Statement: "Cats can fly.", Answer: false, Level: level},
			},
		},
	}
}

func TestGetTestRedactsAnswers(t *testing.T) {
	s := NewInMemoryStore(grading.NewGrader())
	if err := s.PutTest(smallTest("t1", megatest.LevelA1)); err != nil {
		t.Fatalf("PutTest: %v", err)
	}

	got, err := s.GetTest("t1")
	if err != nil {
		t.Fatalf("GetTest: %v", err)
	}
	if got.Content.MultipleChoice[0].CorrectAnswer != -1 {
		t.Error("learner view must not carry the multiple choice answer")
	}
	if got.Content.FillBlank[0].CorrectAnswer != "" {
		t.Error("learner view must not carry the fill blank answer")
	}

	full, err := s.GetTestFull(context.Background(), "t1")
	if err != nil {
		t.Fatalf("GetTestFull: %v", err)
	}
	if full.Content.MultipleChoice[0].CorrectAnswer != 1 {
		t.Error("full view must keep the answer key")
	}

	if _, err := s.GetTest("missing"); !errors.Is(err, ErrTestNotFound) {
		t.Errorf("err = %v, want ErrTestNotFound", err)
	}
}

func TestAttemptLifecycle(t *testing.T) {
	s := NewInMemoryStore(grading.NewGrader())
	if err := s.PutTest(smallTest("t1", megatest.LevelA1)); err != nil {
		t.Fatalf("PutTest: %v", err)
	}

	a, err := s.NewAttempt("t1", "student-1")
	if err != nil {
		t.Fatalf("NewAttempt: %v", err)
	}
	if a.Status != "in_progress" || a.Total != 3 {
		t.Fatalf("attempt = %+v, want in_progress with 3 questions", a)
	}

	if _, err := s.SaveResponses(a.ID, map[string]any{"mc-1": 1, "tf-1": false}); err != nil {
		t.Fatalf("SaveResponses: %v", err)
	}
	// Later saves merge with earlier ones.
	if _, err := s.SaveResponses(a.ID, map[string]any{"fb-1": "have"}); err != nil {
		t.Fatalf("SaveResponses: %v", err)
	}

	done, err := s.Submit(a.ID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if done.Status != "submitted" || done.Correct != 3 || done.Total != 3 {
		t.Errorf("submitted = %+v, want 3/3 correct", done)
	}
	if done.Score != "10,0" || done.CorrectText != "3/3" {
		t.Errorf("score = %q %q, want 10,0 and 3/3", done.Score, done.CorrectText)
	}

	// Submit is idempotent; the graded result comes back unchanged.
	again, err := s.Submit(a.ID)
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if again.SubmittedAt != done.SubmittedAt || again.Correct != done.Correct {
		t.Error("second submit must not regrade")
	}

	if _, err := s.SaveResponses(a.ID, map[string]any{"mc-1": 0}); !errors.Is(err, ErrSubmitted) {
		t.Errorf("save after submit err = %v, want ErrSubmitted", err)
	}
}

func TestNewAttemptUnknownTest(t *testing.T) {
	s := NewInMemoryStore(grading.NewGrader())
	if _, err := s.NewAttempt("missing", "student-1"); !errors.Is(err, ErrTestNotFound) {
		t.Errorf("err = %v, want ErrTestNotFound", err)
	}
}

func TestListTestsFilterAndPage(t *testing.T) {
	s := NewInMemoryStore(grading.NewGrader())
	for i, tc := range []struct {
		id    string
		level megatest.Level
	}{
		{"t1", megatest.LevelA1},
		{"t2", megatest.LevelA2},
		{"t3", megatest.LevelA2},
	} {
		tt := smallTest(tc.id, tc.level)
		tt.CreatedAt = int64(100 + i)
		if err := s.PutTest(tt); err != nil {
			t.Fatalf("PutTest: %v", err)
		}
	}

	a2, err := s.ListTests(context.Background(), ListOpts{Level: "A2"})
	if err != nil {
		t.Fatalf("ListTests: %v", err)
	}
	if len(a2) != 2 {
		t.Fatalf("got %d A2 tests, want 2", len(a2))
	}
	if a2[0].ID != "t3" {
		t.Errorf("newest first, got %s", a2[0].ID)
	}
	if a2[0].Questions != 3 {
		t.Errorf("question count = %d, want 3", a2[0].Questions)
	}

	page, err := s.ListTests(context.Background(), ListOpts{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("ListTests: %v", err)
	}
	if len(page) != 1 || page[0].ID != "t2" {
		t.Errorf("page = %+v, want just t2", page)
	}

	empty, err := s.ListTests(context.Background(), ListOpts{Offset: 10})
	if err != nil {
		t.Fatalf("ListTests: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("offset past end should be empty, got %d", len(empty))
	}
}

func TestListAttemptsFilters(t *testing.T) {
	s := NewInMemoryStore(grading.NewGrader())
	if err := s.PutTest(smallTest("t1", megatest.LevelA1)); err != nil {
		t.Fatalf("PutTest: %v", err)
	}
	if err := s.PutTest(smallTest("t2", megatest.LevelA2)); err != nil {
		t.Fatalf("PutTest: %v", err)
	}

	a1, _ := s.NewAttempt("t1", "alice")
	a2, _ := s.NewAttempt("t2", "alice")
	if _, err := s.NewAttempt("t1", "bob"); err != nil {
		t.Fatalf("NewAttempt: %v", err)
	}
	if _, err := s.Submit(a1.ID); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	ctx := context.Background()
	mine, err := s.ListAttempts(ctx, AttemptListOpts{UserID: "alice"})
	if err != nil {
		t.Fatalf("ListAttempts: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("alice has %d attempts, want 2", len(mine))
	}

	open, err := s.ListAttempts(ctx, AttemptListOpts{UserID: "alice", Status: "in_progress"})
	if err != nil {
		t.Fatalf("ListAttempts: %v", err)
	}
	if len(open) != 1 || open[0].ID != a2.ID {
		t.Errorf("open attempts = %+v, want just the t2 attempt", open)
	}

	byTest, err := s.ListAttempts(ctx, AttemptListOpts{TestID: "t1"})
	if err != nil {
		t.Fatalf("ListAttempts: %v", err)
	}
	if len(byTest) != 2 {
		t.Errorf("t1 has %d attempts, want 2", len(byTest))
	}
}
