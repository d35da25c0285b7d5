package grading

import "testing"

func TestIsRewriteCorrect(t *testing.T) {
	correct := "I am not as tall as her."
	variants := []string{"I'm not as tall as her."}

	cases := []struct {
		answer string
		want   bool
	}{
		{"I am not as tall as her.", true},
		{"i am not as tall as her", true},
		{"  I AM not as   tall as her!  ", true},
		{"I'm not as tall as her.", true},
		{"Im not as tall as her", true}, // apostrophes are stripped
		{"I am as tall as her.", false},
		{"", false},
		{"   ", false},
	}
	for _, c := range cases {
		if got := IsRewriteCorrect(c.answer, correct, variants); got != c.want {
			t.Errorf("IsRewriteCorrect(%q) = %v, want %v", c.answer, got, c.want)
		}
	}
}

func TestIsFillBlankCorrect(t *testing.T) {
	if !IsFillBlankCorrect("  Have ", "have") {
		t.Error("case and spacing must not matter")
	}
	if IsFillBlankCorrect("has", "have") {
		t.Error("different word must be wrong")
	}
	if IsFillBlankCorrect("", "have") {
		t.Error("empty answer must be wrong")
	}
}

func TestIsScrambleCorrect(t *testing.T) {
	if !IsScrambleCorrect("he has a bat", "He has a bat.") {
		t.Error("punctuation and casing must not matter")
	}
	if IsScrambleCorrect("a bat has he", "He has a bat.") {
		t.Error("wrong order must be wrong")
	}
}
