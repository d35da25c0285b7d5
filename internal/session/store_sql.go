package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/tienganhkids/megatest/internal/grading"
	"github.com/tienganhkids/megatest/internal/megatest"
)

type SQLStore struct {
	db     *sql.DB
	grader grading.Grader
}

func NewSQLStore(db *sql.DB, g grading.Grader) *SQLStore {
	return &SQLStore{db: db, grader: g}
}

func (s *SQLStore) PutTest(t Test) error {
	cj, err := json.Marshal(t.Content)
	if err != nil {
		return err
	}
	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().Unix()
	}
	_, err = s.db.Exec(`INSERT INTO tests (id,title,level,created_by,content_json,created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, level=EXCLUDED.level, content_json=EXCLUDED.content_json`,
		t.ID, t.Title, string(t.Level), t.CreatedBy, string(cj), t.CreatedAt)
	return err
}

func (s *SQLStore) GetTest(id string) (Test, error) {
	t, err := s.getTest(id)
	if err != nil {
		return Test{}, err
	}
	// Strip answer keys when serving to learners.
	t.Content = t.Content.Redacted()
	return t, nil
}

func (s *SQLStore) GetTestFull(_ context.Context, id string) (Test, error) {
	return s.getTest(id)
}

func (s *SQLStore) getTest(id string) (Test, error) {
	row := s.db.QueryRow(`SELECT id,title,level,created_by,content_json,created_at FROM tests WHERE id=$1`, id)
	var t Test
	var level, cjson string
	if err := row.Scan(&t.ID, &t.Title, &level, &t.CreatedBy, &cjson, &t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Test{}, ErrTestNotFound
		}
		return Test{}, err
	}
	t.Level = megatest.Level(level)
	if err := json.Unmarshal([]byte(cjson), &t.Content); err != nil {
		return Test{}, err
	}
	return t, nil
}

func (s *SQLStore) ListTests(ctx context.Context, opts ListOpts) ([]TestSummary, error) {
	if opts.Limit <= 0 || opts.Limit > 200 {
		opts.Limit = 50
	}
	q := `SELECT id,title,level,content_json,created_at FROM tests`
	args := []any{}
	if opts.Level != "" {
		q += ` WHERE level=$1`
		args = append(args, opts.Level)
	}
	q += ` ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TestSummary{}
	skip := opts.Offset
	for rows.Next() {
		var sum TestSummary
		var level, cjson string
		if err := rows.Scan(&sum.ID, &sum.Title, &level, &cjson, &sum.CreatedAt); err != nil {
			return nil, err
		}
		if skip > 0 {
			skip--
			continue
		}
		sum.Level = megatest.Level(level)
		var content megatest.MegaTest
		if err := json.Unmarshal([]byte(cjson), &content); err == nil {
			sum.Questions = content.TotalQuestions()
		}
		out = append(out, sum)
		if len(out) >= opts.Limit {
			break
		}
	}
	return out, rows.Err()
}

func (s *SQLStore) NewAttempt(testID, userID string) (Attempt, error) {
	t, err := s.getTest(testID)
	if err != nil {
		return Attempt{}, err
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
	rj, _ := json.Marshal(a.Responses)
	_, err = s.db.Exec(`INSERT INTO attempts (id,test_id,user_id,status,correct,total,responses_json,started_at)
		VALUES ($1,$2,$3,'in_progress',0,$4,$5,$6)`,
		a.ID, testID, userID, a.Total, string(rj), a.StartedAt)
	if err != nil {
		return Attempt{}, err
	}
	return a, nil
}

func (s *SQLStore) SaveResponses(attemptID string, resp map[string]any) (Attempt, error) {
	a, err := s.GetAttempt(attemptID)
	if err != nil {
		return Attempt{}, err
	}
	if a.Status == "submitted" {
		return Attempt{}, ErrSubmitted
	}
	if a.Responses == nil {
		a.Responses = map[string]any{}
	}
	for k, v := range resp {
		a.Responses[k] = v
	}
	buf, _ := json.Marshal(a.Responses)
	if _, err := s.db.Exec(`UPDATE attempts SET responses_json=$1 WHERE id=$2`, string(buf), attemptID); err != nil {
		return Attempt{}, err
	}
	return s.GetAttempt(attemptID)
}

// Submit grades the attempt against the full test. Resubmitting returns the
// recorded result unchanged.
func (s *SQLStore) Submit(attemptID string) (Attempt, error) {
	a, err := s.GetAttempt(attemptID)
	if err != nil {
		return Attempt{}, err
	}
	if a.Status == "submitted" {
		return a, nil
	}

	t, err := s.getTest(a.TestID)
	if err != nil {
		return Attempt{}, err
	}
	sum, err := s.grader.GradeTest(t.Content, a.Responses)
	if err != nil {
		return Attempt{}, err
	}

	buf, _ := json.Marshal(a.Responses)
	_, err = s.db.Exec(`UPDATE attempts SET status='submitted', correct=$1, total=$2, score=$3, correct_text=$4, responses_json=$5, submitted_at=$6 WHERE id=$7`,
		sum.Correct, sum.Total, sum.Report.Score, sum.Report.CorrectText, string(buf), time.Now().Unix(), attemptID)
	if err != nil {
		return Attempt{}, err
	}
	return s.GetAttempt(attemptID)
}

func (s *SQLStore) GetAttempt(id string) (Attempt, error) {
	row := s.db.QueryRow(`SELECT id,test_id,user_id,status,correct,total,score,correct_text,responses_json,started_at,COALESCE(submitted_at,0) FROM attempts WHERE id=$1`, id)
	var a Attempt
	var rjson string
	if err := row.Scan(&a.ID, &a.TestID, &a.UserID, &a.Status, &a.Correct, &a.Total, &a.Score, &a.CorrectText, &rjson, &a.StartedAt, &a.SubmittedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Attempt{}, ErrAttemptNotFound
		}
		return Attempt{}, err
	}
	if err := json.Unmarshal([]byte(rjson), &a.Responses); err != nil {
		a.Responses = map[string]any{}
	}
	return a, nil
}

func (s *SQLStore) ListAttempts(ctx context.Context, opts AttemptListOpts) ([]Attempt, error) {
	if opts.Limit <= 0 || opts.Limit > 200 {
		opts.Limit = 50
	}
	q := `SELECT id,test_id,user_id,status,correct,total,score,correct_text,responses_json,started_at,COALESCE(submitted_at,0) FROM attempts WHERE 1=1`
	args := []any{}
	n := 0
	add := func(cond, val string) {
		n++
		q += ` AND ` + cond + `$` + strconv.Itoa(n)
		args = append(args, val)
	}
	if opts.TestID != "" {
		add("test_id=", opts.TestID)
	}
	if opts.UserID != "" {
		add("user_id=", opts.UserID)
	}
	if opts.Status != "" {
		add("status=", opts.Status)
	}
	n++
	q += ` ORDER BY started_at DESC LIMIT $` + strconv.Itoa(n)
	args = append(args, opts.Limit)
	n++
	q += ` OFFSET $` + strconv.Itoa(n)
	args = append(args, opts.Offset)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Attempt{}
	for rows.Next() {
		var a Attempt
		var rjson string
		if err := rows.Scan(&a.ID, &a.TestID, &a.UserID, &a.Status, &a.Correct, &a.Total, &a.Score, &a.CorrectText, &rjson, &a.StartedAt, &a.SubmittedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(rjson), &a.Responses); err != nil {
			a.Responses = map[string]any{}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

