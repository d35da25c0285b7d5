package grading

import "github.com/tienganhkids/megatest/internal/megatest"

// IsRewriteCorrect accepts the canonical rewritten sentence or any of its
// allowed variants, compared after normalization.
func IsRewriteCorrect(answer, correct string, variants []string) bool {
	got := megatest.Normalize(answer)
	if got == "" {
		return false
	}
	if got == megatest.Normalize(correct) {
		return true
	}
	for _, v := range variants {
		if got == megatest.Normalize(v) {
			return true
		}
	}
	return false
}

// IsFillBlankCorrect compares a single-word answer after normalization.
func IsFillBlankCorrect(answer, correct string) bool {
	got := megatest.Normalize(answer)
	return got != "" && got == megatest.Normalize(correct)
}

// IsScrambleCorrect compares the reordered sentence after normalization, so
// casing and punctuation never cost the learner a point.
func IsScrambleCorrect(answer, correct string) bool {
	got := megatest.Normalize(answer)
	return got != "" && got == megatest.Normalize(correct)
}
