package grading

import (
	"errors"
	"testing"
)

func TestScore(t *testing.T) {
	cases := []struct {
		correct, total int
		score, text    string
	}{
		{37, 50, "7,4", "37/50"},
		{50, 50, "10,0", "50/50"},
		{0, 50, "0,0", "0/50"},
		{1, 3, "3,3", "1/3"},
		{2, 3, "6,7", "2/3"},
		{45, 50, "9,0", "45/50"},
	}
	for _, c := range cases {
		rep, err := Score(c.correct, c.total)
		if err != nil {
			t.Fatalf("Score(%d,%d): %v", c.correct, c.total, err)
		}
		if rep.Score != c.score {
			t.Errorf("Score(%d,%d).Score = %q, want %q", c.correct, c.total, rep.Score, c.score)
		}
		if rep.CorrectText != c.text {
			t.Errorf("Score(%d,%d).CorrectText = %q, want %q", c.correct, c.total, rep.CorrectText, c.text)
		}
	}
}

func TestScoreInvalidTotal(t *testing.T) {
	for _, total := range []int{0, -1} {
		if _, err := Score(5, total); !errors.Is(err, ErrInvalidTotal) {
			t.Errorf("Score(5,%d) err = %v, want ErrInvalidTotal", total, err)
		}
	}
}
